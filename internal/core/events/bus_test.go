package events_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/edumaster/internal/core/events"
	"github.com/frahmantamala/edumaster/pkg/logger"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		bus = events.NewEventBus(logger.LoggerWrapper())
	})

	It("delivers synchronously to every subscriber", func() {
		var calls int32
		handler := func(ctx context.Context, e events.Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}
		bus.Subscribe(events.EventTypeStudentGraduated, handler)
		bus.Subscribe(events.EventTypeStudentGraduated, handler)

		err := bus.PublishSync(context.Background(), events.NewStudentGraduatedEvent(1, 2, 3))
		Expect(err).NotTo(HaveOccurred())
		Expect(atomic.LoadInt32(&calls)).To(Equal(int32(2)))
	})

	It("surfaces handler errors on sync publish", func() {
		bus.Subscribe(events.EventTypeTransferApproved, func(ctx context.Context, e events.Event) error {
			return errors.New("boom")
		})
		err := bus.PublishSync(context.Background(), events.NewTransferApprovedEvent(1, 2, "TC1", 3))
		Expect(err).To(HaveOccurred())
	})

	It("delivers asynchronously", func() {
		var calls int32
		bus.Subscribe(events.EventTypePromotionCompleted, func(ctx context.Context, e events.Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})
		Expect(bus.Publish(context.Background(), events.NewPromotionCompletedEvent(1, 2, 3, 1, 0, 9))).To(Succeed())
		Eventually(func() int32 { return atomic.LoadInt32(&calls) }).Should(Equal(int32(1)))
	})

	It("ignores events without subscribers", func() {
		Expect(bus.PublishSync(context.Background(), events.NewSessionCurrentChangedEvent(4, 1))).To(Succeed())
	})

	It("waits on shutdown for deliveries already in flight", func() {
		var handled int32
		release := make(chan struct{})
		bus.Subscribe(events.EventTypeStudentGraduated, func(ctx context.Context, e events.Event) error {
			<-release
			atomic.AddInt32(&handled, 1)
			return nil
		})
		Expect(bus.Publish(context.Background(), events.NewStudentGraduatedEvent(1, 2, 3))).To(Succeed())

		go func() {
			time.Sleep(20 * time.Millisecond)
			close(release)
		}()
		Expect(bus.Shutdown(context.Background())).To(Succeed())
		Expect(atomic.LoadInt32(&handled)).To(Equal(int32(1)))
	})

	It("refuses asynchronous events after shutdown", func() {
		Expect(bus.Shutdown(context.Background())).To(Succeed())
		err := bus.Publish(context.Background(), events.NewStudentGraduatedEvent(1, 2, 3))
		Expect(err).To(MatchError(events.ErrBusClosed))
	})

	It("gives up waiting when the shutdown context ends", func() {
		release := make(chan struct{})
		defer close(release)
		bus.Subscribe(events.EventTypeTransferApproved, func(ctx context.Context, e events.Event) error {
			<-release
			return nil
		})
		Expect(bus.Publish(context.Background(), events.NewTransferApprovedEvent(1, 2, "TC1", 3))).To(Succeed())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		Expect(bus.Shutdown(ctx)).To(MatchError(context.DeadlineExceeded))
	})

	It("reports a panicking subscriber as a failure", func() {
		bus.Subscribe(events.EventTypeRoleChanged, func(ctx context.Context, e events.Event) error {
			panic("bad subscriber")
		})
		err := bus.PublishSync(context.Background(), events.NewRoleChangedEvent(1, "update", 2))
		Expect(err).To(MatchError(ContainSubstring("bad subscriber")))
	})

	It("carries payload data", func() {
		e := events.NewPromotionCompletedEvent(1, 2, 5, 2, 1, 7)
		Expect(e.EventID()).NotTo(BeEmpty())
		Expect(e.Payload()).To(HaveKeyWithValue("promoted", 5))
	})
})
