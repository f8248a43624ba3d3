package shelfcmder_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	shelfcmder "github.com/papercomputeco/shelf/cmd/shelf"
	"github.com/papercomputeco/shelf/pkg/utils"
)

func TestShelf(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Shelf Command Suite")
}

var _ = Describe("NewShelfCmd", func() {
	It("registers every subcommand", func() {
		cmd := shelfcmder.NewShelfCmd()
		names := make([]string, 0, len(cmd.Commands()))
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}
		Expect(names).To(ContainElements("plan", "read", "items", "graph", "serve", "init", "config", "version"))
	})

	It("has global debug and config-dir flags", func() {
		cmd := shelfcmder.NewShelfCmd()
		Expect(cmd.PersistentFlags().Lookup("debug")).NotTo(BeNil())
		Expect(cmd.PersistentFlags().Lookup("config-dir")).NotTo(BeNil())
	})

	It("prints the version", func() {
		var out bytes.Buffer
		cmd := shelfcmder.NewShelfCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"version"})
		Expect(cmd.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("Version: " + utils.Version))
	})
})
