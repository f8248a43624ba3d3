package dotdir_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/shelf/pkg/dotdir"
)

var _ = Describe("ReadLog", func() {
	var (
		tmpDir string
		m      *dotdir.Manager
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		m = dotdir.NewManager()
	})

	It("adds items once, in order", func() {
		l := &dotdir.ReadLog{}
		Expect(l.Add("hen.txt", "fox.txt", "hen.txt", "")).To(Equal(2))
		Expect(l.Add("fox.txt")).To(Equal(0))
		Expect(l.Items).To(Equal([]string{"hen.txt", "fox.txt"}))
	})

	It("removes items", func() {
		l := &dotdir.ReadLog{Items: []string{"a", "b", "c"}}
		Expect(l.Remove("b", "z")).To(Equal(1))
		Expect(l.Items).To(Equal([]string{"a", "c"}))
	})

	It("returns an empty log when nothing is saved", func() {
		l, err := m.LoadReadLog(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Items).To(BeEmpty())
	})

	It("round trips through read.json", func() {
		l := &dotdir.ReadLog{}
		l.Add("little-red-hen.txt")
		Expect(m.SaveReadLog(l, tmpDir)).To(Succeed())
		Expect(filepath.Join(tmpDir, "read.json")).To(BeAnExistingFile())

		loaded, err := m.LoadReadLog(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Items).To(Equal([]string{"little-red-hen.txt"}))
		Expect(loaded.UpdatedAt).NotTo(BeZero())
	})

	It("returns an error for invalid JSON", func() {
		Expect(os.WriteFile(filepath.Join(tmpDir, "read.json"), []byte("not json"), 0o600)).To(Succeed())
		_, err := m.LoadReadLog(tmpDir)
		Expect(err).To(HaveOccurred())
	})

	It("refuses to save a nil log", func() {
		Expect(m.SaveReadLog(nil, tmpDir)).NotTo(Succeed())
	})

	It("clears the log, even when absent", func() {
		Expect(m.ClearReadLog(tmpDir)).To(Succeed())
		Expect(m.SaveReadLog(&dotdir.ReadLog{Items: []string{"a"}}, tmpDir)).To(Succeed())
		Expect(m.ClearReadLog(tmpDir)).To(Succeed())
		Expect(filepath.Join(tmpDir, "read.json")).NotTo(BeAnExistingFile())
	})
})
