package scheduler_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/edumaster/internal"
	"github.com/frahmantamala/edumaster/internal/scheduler"
)

func TestScheduler(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Scheduler Suite")
}

type countingMarker struct {
	calls atomic.Int64
	err   error
}

func (m *countingMarker) MarkOverdue(ctx context.Context) (int64, error) {
	m.calls.Add(1)
	if m.err != nil {
		return 0, m.err
	}
	return 3, nil
}

var _ = Describe("Scheduler", func() {
	var (
		s     *scheduler.Scheduler
		fees  *countingMarker
		books *countingMarker
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		s = scheduler.New(slogger)
		fees = &countingMarker{}
		books = &countingMarker{}
	})

	AfterEach(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Shutdown(ctx)
	})

	It("builds both overdue jobs from config", func() {
		cfg := internal.SchedulerConfig{OverdueFeesSpec: "@hourly", OverdueBooksSpec: "0 2 * * *"}
		jobs := scheduler.OverdueJobs(cfg, fees, books)
		Expect(jobs).To(HaveLen(2))
		for _, job := range jobs {
			Expect(s.Add(job)).To(Succeed())
		}

		n, err := s.RunNow(scheduler.JobOverdueBooks)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(3)))
		Expect(books.calls.Load()).To(Equal(int64(1)))
		Expect(fees.calls.Load()).To(BeZero())
	})

	It("rejects invalid specs and duplicate names", func() {
		Expect(s.Add(scheduler.Job{Name: "bad", Spec: "every now and then", Run: fees.MarkOverdue})).NotTo(Succeed())
		Expect(s.Add(scheduler.Job{Name: "fees", Spec: "@daily", Run: fees.MarkOverdue})).To(Succeed())
		Expect(s.Add(scheduler.Job{Name: "fees", Spec: "@hourly", Run: fees.MarkOverdue})).NotTo(Succeed())
	})

	It("surfaces job errors and unknown jobs", func() {
		fees.err = errors.New("db down")
		Expect(s.Add(scheduler.Job{Name: "fees", Spec: "@daily", Run: fees.MarkOverdue})).To(Succeed())
		_, err := s.RunNow("fees")
		Expect(err).To(MatchError("db down"))

		_, err = s.RunNow("missing")
		Expect(err).To(HaveOccurred())
	})

	It("runs jobs on their schedule once started", func() {
		Expect(s.Add(scheduler.Job{Name: "fees", Spec: "@every 1s", Run: fees.MarkOverdue})).To(Succeed())
		s.Start()
		Eventually(fees.calls.Load, 3*time.Second, 100*time.Millisecond).Should(BeNumerically(">=", 1))
	})
})
