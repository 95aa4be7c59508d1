package monitoring

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ProgressBar", func() {
	It("should move items from in progress to finished", func() {
		bar := &ProgressBar{Total: 10}

		bar.IncrementInProgress(4)
		bar.MoveInProgressToFinished(3)
		bar.IncrementFinished(1)

		Expect(bar.InProgress).To(Equal(uint64(1)))
		Expect(bar.Finished).To(Equal(uint64(4)))

		bar.SetFinished(10)
		Expect(bar.Finished).To(Equal(uint64(10)))
	})
})
