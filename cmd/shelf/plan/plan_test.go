package plancmder_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	shelfcmder "github.com/papercomputeco/shelf/cmd/shelf"
	plancmder "github.com/papercomputeco/shelf/cmd/shelf/plan"
	"github.com/papercomputeco/shelf/pkg/dotdir"
	"github.com/papercomputeco/shelf/pkg/recommend"
)

func TestPlan(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Plan Command Suite")
}

var samplePlan = &recommend.Recommendation{
	Want: recommend.Item{Index: 2, ID: "deep-sea-voyage.txt", Title: "Deep Sea Voyage"},
	From: recommend.Item{Index: 0, ID: "little-red-hen.txt", Title: "Little Red Hen"},
	Steps: []recommend.Item{
		{Index: 0, ID: "little-red-hen.txt", Title: "Little Red Hen"},
		{Index: 1, ID: "farmyard-tales.txt", Title: "Farmyard Tales"},
		{Index: 2, ID: "deep-sea-voyage.txt", Title: "Deep Sea Voyage"},
	},
	Distance: 1.159,
	Routes: []recommend.Route{
		{
			From:      recommend.Item{Index: 0, ID: "little-red-hen.txt", Title: "Little Red Hen"},
			Reachable: true,
			Distance:  1.159,
		},
		{
			From: recommend.Item{Index: 3, ID: "lonely-lighthouse.txt", Title: "Lonely Lighthouse"},
		},
	},
}

var _ = Describe("NewPlanCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := plancmder.NewPlanCmd()
		Expect(cmd.Use).To(Equal("plan"))
	})

	It("registers the graph flags", func() {
		cmd := plancmder.NewPlanCmd()
		for _, name := range []string{"read", "want", "json", "all", "markdown", "corpus", "policy", "threshold", "top-k", "distance"} {
			Expect(cmd.Flags().Lookup(name)).NotTo(BeNil(), name)
		}
	})
})

var _ = Describe("Render", func() {
	It("numbers every step and marks the read item", func() {
		var buf bytes.Buffer
		plancmder.Render(&buf, samplePlan, false)

		out := buf.String()
		Expect(out).To(ContainSubstring("Little Red Hen"))
		Expect(out).To(ContainSubstring("(read)"))
		Expect(out).To(ContainSubstring("Farmyard Tales"))
		Expect(out).To(ContainSubstring("1.159"))
		Expect(out).NotTo(ContainSubstring("Lonely Lighthouse"))
	})

	It("prints every route with --all", func() {
		var buf bytes.Buffer
		plancmder.Render(&buf, samplePlan, true)
		Expect(buf.String()).To(ContainSubstring("Lonely Lighthouse"))
		Expect(buf.String()).To(ContainSubstring("not connected"))
	})
})

var _ = Describe("Markdown", func() {
	It("lists the steps with the read item struck through", func() {
		md := plancmder.Markdown(samplePlan, false)
		Expect(md).To(HavePrefix("# Reading plan: Deep Sea Voyage"))
		Expect(md).To(ContainSubstring("1. ~~Little Red Hen~~"))
		Expect(md).To(ContainSubstring("2. Farmyard Tales"))
		Expect(md).NotTo(ContainSubstring("## Routes"))
	})

	It("adds a routes table with --all", func() {
		md := plancmder.Markdown(samplePlan, true)
		Expect(md).To(ContainSubstring("## Routes"))
		Expect(md).To(ContainSubstring("| Lonely Lighthouse | - | not connected |"))
	})
})

var _ = Describe("Plan command execution", func() {
	var (
		tmpDir    string
		corpusDir string
		configDir string
	)

	write := func(name, text string) {
		Expect(os.WriteFile(filepath.Join(corpusDir, name), []byte(text), 0o600)).To(Succeed())
	}

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := shelfcmder.NewShelfCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"plan", "--config-dir", configDir, "--corpus", corpusDir}, args...))
		err := cmd.Execute()
		return out.String(), err
	}

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		corpusDir = filepath.Join(tmpDir, "corpus")
		configDir = filepath.Join(tmpDir, ".shelf")
		Expect(os.MkdirAll(corpusDir, 0o755)).To(Succeed())

		write("a-hen.txt", "the red hen baked bread in the farm kitchen")
		write("b-farm.txt", "the farm hen found wheat and baked bread")
		write("c-sea.txt", "the submarine dived under the ocean waves near the farm")
		write("d-waves.txt", "ocean waves crashed as the submarine surfaced")
	})

	It("prints the plan as JSON", func() {
		out, err := run("--read", "a-hen", "--want", "d-waves", "--json")
		Expect(err).NotTo(HaveOccurred())

		var rec recommend.Recommendation
		Expect(json.Unmarshal([]byte(out), &rec)).To(Succeed())
		Expect(rec.From.ID).To(Equal("a-hen.txt"))
		Expect(rec.Want.ID).To(Equal("d-waves.txt"))
		Expect(rec.Routes).To(BeEmpty())
	})

	It("falls back to the read log", func() {
		ddm := dotdir.NewManager()
		log := &dotdir.ReadLog{}
		log.Add("b-farm.txt")
		Expect(ddm.SaveReadLog(log, configDir)).To(Succeed())

		out, err := run("--want", "d-waves", "--json")
		Expect(err).NotTo(HaveOccurred())

		var rec recommend.Recommendation
		Expect(json.Unmarshal([]byte(out), &rec)).To(Succeed())
		Expect(rec.From.ID).To(Equal("b-farm.txt"))
	})

	It("fails when nothing has been read", func() {
		_, err := run("--want", "d-waves")
		Expect(err).To(MatchError(ContainSubstring("nothing has been read yet")))
	})

	It("fails for unknown items", func() {
		_, err := run("--read", "a-hen", "--want", "moby-dick")
		Expect(err).To(MatchError(ContainSubstring("moby-dick")))
	})

	It("requires --want", func() {
		_, err := run("--read", "a-hen")
		Expect(err).To(HaveOccurred())
	})
})
