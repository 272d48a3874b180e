package dates_test

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/edumaster/internal/core/common/dates"
)

func TestDates(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dates Suite")
}

var _ = Describe("Date", func() {
	type payload struct {
		On *dates.Date `json:"on"`
	}

	It("accepts a plain date", func() {
		var p payload
		Expect(json.Unmarshal([]byte(`{"on":"2024-06-01"}`), &p)).To(Succeed())
		Expect(p.On.Ptr()).NotTo(BeNil())
		Expect(*p.On.Ptr()).To(Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	})

	It("accepts an RFC 3339 timestamp", func() {
		var p payload
		Expect(json.Unmarshal([]byte(`{"on":"2024-06-01T10:30:00Z"}`), &p)).To(Succeed())
		Expect(p.On.Hour()).To(Equal(10))
	})

	It("leaves a missing date nil", func() {
		var p payload
		Expect(json.Unmarshal([]byte(`{}`), &p)).To(Succeed())
		Expect(p.On.Ptr()).To(BeNil())
	})

	It("rejects garbage", func() {
		var p payload
		Expect(json.Unmarshal([]byte(`{"on":"June first"}`), &p)).NotTo(Succeed())
	})

	It("marshals as a calendar date", func() {
		out, err := json.Marshal(dates.Date{Time: time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC)})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(Equal(`"2024-06-01"`))
	})

	It("truncates to midnight", func() {
		Expect(dates.StartOfDay(time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC)).Hour()).To(Equal(0))
	})
})
