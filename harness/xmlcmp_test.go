// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package harness_test

import (
	"github.com/mdhender/ippc/harness"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CompareXML", func() {
	const want = `<?xml version="1.0" encoding="UTF-8"?>
<program language="IPPcode21">
  <instruction order="1" opcode="WRITE">
    <arg1 type="string">a&amp;b&apos;</arg1>
  </instruction>
</program>
`

	It("should ignore layout and attribute order", func() {
		got := `<program language="IPPcode21"><instruction opcode="WRITE" order="1">` +
			`<arg1 type="string">a&amp;b'</arg1></instruction></program>`
		diff, err := harness.CompareXML([]byte(got), []byte(want))
		Expect(err).NotTo(HaveOccurred())
		Expect(diff).To(BeEmpty())
	})

	It("should treat an empty element like an element with no text", func() {
		equal, err := harness.EqualXML([]byte(`<a><b/></a>`), []byte("<a>\n  <b></b>\n</a>"))
		Expect(err).NotTo(HaveOccurred())
		Expect(equal).To(BeTrue())
	})

	It("should report a different attribute value", func() {
		got := `<program language="IPPcode21"><instruction order="2" opcode="WRITE">` +
			`<arg1 type="string">a&amp;b'</arg1></instruction></program>`
		diff, err := harness.CompareXML([]byte(got), []byte(want))
		Expect(err).NotTo(HaveOccurred())
		Expect(diff).To(ContainSubstring("/program/instruction[1]: attribute"))
	})

	It("should report different text", func() {
		got := `<program language="IPPcode21"><instruction order="1" opcode="WRITE">` +
			`<arg1 type="string">a&amp;b</arg1></instruction></program>`
		diff, err := harness.CompareXML([]byte(got), []byte(want))
		Expect(err).NotTo(HaveOccurred())
		Expect(diff).To(ContainSubstring("/program/instruction[1]/arg1[1]: text"))
	})

	It("should report missing children", func() {
		diff, err := harness.CompareXML([]byte(`<program language="IPPcode21"/>`), []byte(want))
		Expect(err).NotTo(HaveOccurred())
		Expect(diff).To(Equal("/program: got 0 children, want 1"))
	})

	It("should fail on a document without a root", func() {
		_, err := harness.CompareXML([]byte(want), nil)
		Expect(err).To(HaveOccurred())
		Expect(harness.ReasonCode(err)).To(Equal(harness.ReasonXML))
	})
})
