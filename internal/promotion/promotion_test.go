package promotion_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/edumaster/internal/promotion"
)

var _ = Describe("Decide", func() {
	criteria := promotion.Criteria{MinimumAttendance: 75, MinimumPercentage: 40}

	DescribeTable("applies attendance before score",
		func(attendance, percentage float64, c promotion.Criteria, want promotion.Outcome) {
			Expect(promotion.Decide(attendance, percentage, c)).To(Equal(want))
		},
		Entry("meets both", 80.0, 55.0, criteria, promotion.OutcomePromote),
		Entry("exactly at both thresholds", 75.0, 40.0, criteria, promotion.OutcomePromote),
		Entry("low attendance with a high score", 60.0, 99.0, criteria, promotion.OutcomeDetainAttendance),
		Entry("low attendance and low score", 60.0, 10.0, criteria, promotion.OutcomeDetainAttendance),
		Entry("low score only", 90.0, 39.9, criteria, promotion.OutcomeDetainPercentage),
		Entry("zero thresholds are ignored", 0.0, 0.0, promotion.Criteria{}, promotion.OutcomePromote),
		Entry("only a score threshold", 0.0, 30.0, promotion.Criteria{MinimumPercentage: 33}, promotion.OutcomeDetainPercentage),
	)
})
