// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package harness_test

import (
	"context"
	"errors"

	gomock "github.com/golang/mock/gomock"
	"github.com/mdhender/ippc/harness"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
)

const moveXML = `<?xml version="1.0" encoding="UTF-8"?>
<program language="IPPcode21">
	<instruction opcode="MOVE" order="1">
		<arg1 type="var">GF@x</arg1>
		<arg2 type="int">5</arg2>
	</instruction>
</program>
`

var _ = Describe("Runner", func() {
	var (
		ctx    context.Context
		fs     afero.Fs
		runner *harness.Runner
	)

	write := func(path, data string) {
		Expect(afero.WriteFile(fs, path, []byte(data), 0644)).To(Succeed())
	}

	result := func(report *harness.Report, name string) harness.Result {
		for _, r := range report.Results {
			if r.Case.Name == name {
				return r
			}
		}
		Fail("no result for " + name)
		return harness.Result{}
	}

	BeforeEach(func() {
		ctx = context.Background()
		fs = afero.NewMemMapFs()
		runner = harness.NewRunner(nil)
		runner.SetFS(fs)
		Expect(fs.MkdirAll("/tests", 0755)).To(Succeed())
	})

	Context("when the expected results match", func() {
		BeforeEach(func() {
			write("/tests/move.src", ".IPPcode21\nMOVE GF@x int@5\n")
			write("/tests/move.out", moveXML)
			write("/tests/move.rc", "0\n")

			write("/tests/syntax.src", ".IPPcode21\nMOVE GF@x\n")
			write("/tests/syntax.rc", "22")

			write("/tests/header.src", "MOVE GF@x int@5\n")
			write("/tests/header.rc", "21")

			write("/tests/lexical.src", ".IPPcode21\nWRITE int@five\n")
			write("/tests/lexical.rc", "23")

			write("/tests/args.src", ".IPPcode21\n")
			write("/tests/args.in", "--source=file.src\n")
			write("/tests/args.rc", "10")
		})

		It("should pass every case", func() {
			report, err := runner.RunDir(ctx, "/tests", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Root).To(Equal("/tests"))
			Expect(report.Results).To(HaveLen(5))
			for _, r := range report.Results {
				Expect(r.Passed).To(BeTrue(), "%s: %s", r.Case.Name, r.Detail)
				Expect(r.GotCode).To(Equal(r.WantCode))
			}
			Expect(report.Passed()).To(Equal(5))
			Expect(report.Failed()).To(BeZero())
			Expect(report.Failures()).To(BeEmpty())
		})
	})

	Context("when the expected results differ", func() {
		BeforeEach(func() {
			write("/tests/code.src", ".IPPcode21\nMOVE GF@x\n")
			write("/tests/code.rc", "0")

			write("/tests/output.src", ".IPPcode21\nMOVE GF@x int@6\n")
			write("/tests/output.out", moveXML)

			write("/tests/badrc.src", ".IPPcode21\n")
			write("/tests/badrc.rc", "zero")

			write("/tests/noout.src", ".IPPcode21\n")
		})

		It("should record why each case failed", func() {
			report, err := runner.RunDir(ctx, "/tests", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Failed()).To(Equal(4))

			code := result(report, "code")
			Expect(code.Reason).To(Equal(harness.ReasonExitCode))
			Expect(code.WantCode).To(Equal(0))
			Expect(code.GotCode).To(Equal(22))

			Expect(result(report, "output").Reason).To(Equal(harness.ReasonOutput))
			Expect(result(report, "badrc").Reason).To(Equal(harness.ReasonReturnCode))
			Expect(result(report, "noout").Reason).To(Equal(harness.ReasonXML))
		})
	})

	It("should create missing files when asked", func() {
		write("/tests/fresh.src", ".IPPcode21\nBREAK\n")
		runner.SetCreateMissing(true)

		report, err := runner.RunDir(ctx, "/tests", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Results).To(HaveLen(1))

		rc, err := afero.ReadFile(fs, "/tests/fresh.rc")
		Expect(err).NotTo(HaveOccurred())
		Expect(string(rc)).To(Equal("0"))
		for _, path := range []string{"/tests/fresh.in", "/tests/fresh.out"} {
			data, err := afero.ReadFile(fs, path)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(BeEmpty())
		}
	})

	It("should leave missing files alone by default", func() {
		write("/tests/fresh.src", ".IPPcode21\nBREAK\n")

		_, err := runner.RunDir(ctx, "/tests", false)
		Expect(err).NotTo(HaveOccurred())
		ok, err := afero.Exists(fs, "/tests/fresh.rc")
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("should stop when the context is cancelled", func() {
		write("/tests/a.src", ".IPPcode21\n")
		cases, err := harness.Discover(fs, "/tests", false)
		Expect(err).NotTo(HaveOccurred())

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		report, err := runner.Run(cancelled, cases)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(report.Results).To(BeEmpty())
	})

	Context("with a store", func() {
		var (
			mockCtrl  *gomock.Controller
			mockStore *MockRunStore
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			mockStore = NewMockRunStore(mockCtrl)
			runner.SetStore(mockStore)
			write("/tests/a.src", ".IPPcode21\n")
			write("/tests/a.out", `<program language="IPPcode21"/>`)
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should save the finished report", func() {
			var saved *harness.Report
			mockStore.EXPECT().
				InsertRun(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, report *harness.Report) error {
					saved = report
					return nil
				})

			report, err := runner.RunDir(ctx, "/tests", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(BeIdenticalTo(report))
			Expect(saved.Finished).NotTo(BeZero())
		})

		It("should return store errors with the report", func() {
			mockStore.EXPECT().
				InsertRun(gomock.Any(), gomock.Any()).
				Return(errors.New("disk full"))

			report, err := runner.RunDir(ctx, "/tests", false)
			var storeErr *harness.ErrStore
			Expect(errors.As(err, &storeErr)).To(BeTrue())
			Expect(report.Passed()).To(Equal(1))
		})
	})
})
