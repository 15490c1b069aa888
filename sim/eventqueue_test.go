package sim

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

func behavesLikeEventQueue(newQueue func() EventQueue) {
	var (
		mockCtrl *gomock.Controller
		queue    EventQueue
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		queue = newQueue()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should pop in order", func() {
		numEvents := 100
		for i := 0; i < numEvents; i++ {
			event := NewMockEvent(mockCtrl)
			event.EXPECT().
				Time().
				Return(VTimeInCycle(rand.Intn(1000))).
				AnyTimes()
			queue.Push(event)
		}

		now := VTimeInCycle(0)
		for i := 0; i < numEvents; i++ {
			event := queue.Pop()
			Expect(event.Time()).To(BeNumerically(">=", now))
			now = event.Time()
		}
	})

	It("should keep the push order of same-cycle events", func() {
		events := make([]Event, 0)
		for i := 0; i < 20; i++ {
			event := NewMockEvent(mockCtrl)
			event.EXPECT().Time().Return(VTimeInCycle(5 + i%2)).AnyTimes()
			events = append(events, event)
			queue.Push(event)
		}

		for i := 0; i < 20; i += 2 {
			Expect(queue.Pop()).To(BeIdenticalTo(events[i]))
		}

		for i := 1; i < 20; i += 2 {
			Expect(queue.Pop()).To(BeIdenticalTo(events[i]))
		}
	})

	It("should peek without removing", func() {
		event := NewMockEvent(mockCtrl)
		event.EXPECT().Time().Return(VTimeInCycle(3)).AnyTimes()
		queue.Push(event)

		Expect(queue.Peek()).To(BeIdenticalTo(event))
		Expect(queue.Len()).To(Equal(1))
	})
}

var _ = Describe("EventQueueImpl", func() {
	behavesLikeEventQueue(func() EventQueue { return NewEventQueue() })
})

var _ = Describe("Insertion Queue", func() {
	behavesLikeEventQueue(func() EventQueue { return NewInsertionQueue() })
})
