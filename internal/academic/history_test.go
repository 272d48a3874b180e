package academic_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/academic"
	academicDatamodel "github.com/frahmantamala/edumaster/internal/core/datamodel/academic"
)

var _ = Describe("History status", func() {
	DescribeTable("CanTransition",
		func(from, to string, allowed bool) {
			Expect(academic.CanTransition(from, to)).To(Equal(allowed))
		},
		Entry("active to promoted", academic.HistoryActive, academic.HistoryPromoted, true),
		Entry("active to detained", academic.HistoryActive, academic.HistoryDetained, true),
		Entry("active to transferred", academic.HistoryActive, academic.HistoryTransferred, true),
		Entry("active to graduated", academic.HistoryActive, academic.HistoryGraduated, true),
		Entry("active to left", academic.HistoryActive, academic.HistoryLeft, true),
		Entry("active to active", academic.HistoryActive, academic.HistoryActive, false),
		Entry("promoted to detained", academic.HistoryPromoted, academic.HistoryDetained, false),
		Entry("graduated to active", academic.HistoryGraduated, academic.HistoryActive, false),
		Entry("transferred to left", academic.HistoryTransferred, academic.HistoryLeft, false),
		Entry("unknown target", academic.HistoryActive, "expelled", false),
	)

	It("refuses to move a closed record", func() {
		h := &academicDatamodel.History{SessionStatus: academic.HistoryPromoted}
		err := academic.Transition(h, academic.HistoryDetained)
		Expect(errors.Is(err, internal.ErrHistoryNotActive)).To(BeTrue())
		Expect(h.SessionStatus).To(Equal(academic.HistoryPromoted))
	})

	It("moves an active record", func() {
		h := &academicDatamodel.History{SessionStatus: academic.HistoryActive}
		Expect(academic.Transition(h, academic.HistoryGraduated)).To(Succeed())
		Expect(h.SessionStatus).To(Equal(academic.HistoryGraduated))
	})
})
