// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package harness_test

import (
	"github.com/mdhender/ippc/harness"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
)

var _ = Describe("Discover", func() {
	var fs afero.Fs

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
		for _, path := range []string{
			"/tests/b.src",
			"/tests/a.src",
			"/tests/a.rc",
			"/tests/notes.txt",
			"/tests/nested/c.src",
			"/tests/nested/deeper/d.src",
		} {
			Expect(afero.WriteFile(fs, path, []byte(".IPPcode21\n"), 0644)).To(Succeed())
		}
	})

	sources := func(cases []harness.Case) []string {
		var list []string
		for _, c := range cases {
			list = append(list, c.Source)
		}
		return list
	}

	It("should find sources in the root only", func() {
		cases, err := harness.Discover(fs, "/tests", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(sources(cases)).To(Equal([]string{"/tests/a.src", "/tests/b.src"}))
	})

	It("should search subdirectories when recursive", func() {
		cases, err := harness.Discover(fs, "/tests", true)
		Expect(err).NotTo(HaveOccurred())
		Expect(sources(cases)).To(Equal([]string{
			"/tests/a.src",
			"/tests/b.src",
			"/tests/nested/c.src",
			"/tests/nested/deeper/d.src",
		}))
	})

	It("should name the sibling files", func() {
		cases, err := harness.Discover(fs, "/tests/nested", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(cases).To(HaveLen(1))
		Expect(cases[0]).To(Equal(harness.Case{
			Name:       "c",
			Dir:        "/tests/nested",
			Source:     "/tests/nested/c.src",
			Input:      "/tests/nested/c.in",
			Output:     "/tests/nested/c.out",
			ReturnCode: "/tests/nested/c.rc",
		}))
	})

	It("should reject a missing root", func() {
		_, err := harness.Discover(fs, "/missing", false)
		var fileErr *harness.ErrFile
		Expect(err).To(BeAssignableToTypeOf(fileErr))
		Expect(harness.ReasonCode(err)).To(Equal(harness.ReasonFile))
	})

	It("should reject a root that is a file", func() {
		_, err := harness.Discover(fs, "/tests/a.src", false)
		Expect(err).To(HaveOccurred())
	})
})
