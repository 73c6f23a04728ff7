package event

import (
	"sync"
	"sync/atomic"
	"testing"
)

type pingEvent struct {
	Seq int
}

type pongEvent struct {
	Seq int
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()

	var got pingEvent
	var calls int
	Subscribe(bus, func(ev pingEvent) {
		got = ev
		calls++
	})

	Publish(bus, pingEvent{Seq: 7})

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if got.Seq != 7 {
		t.Errorf("expected Seq 7, got %d", got.Seq)
	}
}

func TestBus_RegistrationOrder(t *testing.T) {
	bus := NewBus()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		Subscribe(bus, func(pingEvent) {
			order = append(order, i)
		})
	}

	Publish(bus, pingEvent{})

	if len(order) != 5 {
		t.Fatalf("expected 5 invocations, got %d", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Errorf("position %d: expected subscriber %d, got %d", i, i, v)
		}
	}
}

func TestBus_TypeIsolation(t *testing.T) {
	bus := NewBus()

	var pings, pongs int
	Subscribe(bus, func(pingEvent) { pings++ })
	Subscribe(bus, func(pongEvent) { pongs++ })

	Publish(bus, pingEvent{})
	Publish(bus, pingEvent{})
	Publish(bus, pongEvent{})

	if pings != 2 {
		t.Errorf("expected 2 ping deliveries, got %d", pings)
	}
	if pongs != 1 {
		t.Errorf("expected 1 pong delivery, got %d", pongs)
	}
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := NewBus()

	// Must not panic or error
	Publish(bus, pingEvent{Seq: 1})
}

func TestBus_UnsubscribeIdempotent(t *testing.T) {
	bus := NewBus()

	var calls int
	sub := Subscribe(bus, func(pingEvent) { calls++ })

	sub.Unsubscribe()
	sub.Unsubscribe()

	Publish(bus, pingEvent{})

	if calls != 0 {
		t.Errorf("expected no calls after unsubscribe, got %d", calls)
	}
	if sub.Active() {
		t.Error("expected subscription to be inactive")
	}
}

func TestBus_SelfUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus()

	var calls int
	var sub *Subscription
	sub = Subscribe(bus, func(pingEvent) {
		calls++
		sub.Unsubscribe()
	})

	Publish(bus, pingEvent{})
	Publish(bus, pingEvent{})

	if calls != 1 {
		t.Errorf("expected exactly 1 call, got %d", calls)
	}
}

func TestBus_UnsubscribeOtherDuringPublish(t *testing.T) {
	bus := NewBus()

	var secondCalls int
	var second *Subscription
	Subscribe(bus, func(pingEvent) {
		second.Unsubscribe()
	})
	second = Subscribe(bus, func(pingEvent) {
		secondCalls++
	})

	// The first subscriber deactivates the second before it runs; the
	// in-flight snapshot must honor that.
	Publish(bus, pingEvent{})

	if secondCalls != 0 {
		t.Errorf("expected deactivated subscriber to be skipped, got %d calls", secondCalls)
	}
}

func TestBus_SubscribeDuringPublish(t *testing.T) {
	bus := NewBus()

	var lateCalls int
	Subscribe(bus, func(pingEvent) {
		Subscribe(bus, func(pingEvent) { lateCalls++ })
	})

	Publish(bus, pingEvent{})
	if lateCalls != 0 {
		t.Errorf("subscriber added mid-publish must not see the current event, got %d calls", lateCalls)
	}

	Publish(bus, pingEvent{})
	if lateCalls != 1 {
		t.Errorf("expected 1 call on the next publish, got %d", lateCalls)
	}
}

func TestBus_LazyPrune(t *testing.T) {
	bus := NewBus()

	subs := make([]*Subscription, 4)
	for i := range subs {
		subs[i] = Subscribe(bus, func(pingEvent) {})
	}
	for _, s := range subs {
		s.Unsubscribe()
	}

	if n := ActiveSubscribers[pingEvent](bus); n != 0 {
		t.Fatalf("expected 0 active subscribers, got %d", n)
	}

	// Registry entries linger until the next publish of the same type.
	Publish(bus, pingEvent{})

	bus.mu.Lock()
	remaining := len(bus.subs[typeOf[pingEvent]()])
	bus.mu.Unlock()
	if remaining != 0 {
		t.Errorf("expected registry pruned to 0 entries, got %d", remaining)
	}
}

func TestBus_SubscriberPanic(t *testing.T) {
	bus := NewBus()

	var afterPanic int
	Subscribe(bus, func(pingEvent) {
		panic("subscriber failure")
	})
	Subscribe(bus, func(pingEvent) {
		afterPanic++
	})

	Publish(bus, pingEvent{})

	if afterPanic != 1 {
		t.Errorf("expected subscriber after the panicking one to run, got %d calls", afterPanic)
	}
}

func TestBus_Close(t *testing.T) {
	bus := NewBus()

	var calls int
	sub := Subscribe(bus, func(pingEvent) { calls++ })

	bus.Close()
	bus.Close() // idempotent

	if !bus.Closed() {
		t.Error("expected bus to report closed")
	}
	if sub.Active() {
		t.Error("expected close to deactivate subscriptions")
	}

	Publish(bus, pingEvent{})
	if calls != 0 {
		t.Errorf("expected no deliveries after close, got %d", calls)
	}

	// Unsubscribe after close is a safe no-op.
	sub.Unsubscribe()

	late := Subscribe(bus, func(pingEvent) { calls++ })
	if late.Active() {
		t.Error("expected subscribe on a closed bus to return an inert handle")
	}
}

func TestBus_NilCallback(t *testing.T) {
	bus := NewBus()

	sub := Subscribe[pingEvent](bus, nil)
	if sub.Active() {
		t.Error("expected nil callback to yield an inert handle")
	}

	Publish(bus, pingEvent{})
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var delivered atomic.Int64
	Subscribe(bus, func(pingEvent) {
		delivered.Add(1)
	})

	const goroutines = 50
	const perGoroutine = 20

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				Publish(bus, pingEvent{Seq: j})
			}
		}()
	}
	wg.Wait()

	if got := delivered.Load(); got != goroutines*perGoroutine {
		t.Errorf("expected %d deliveries, got %d", goroutines*perGoroutine, got)
	}
}

func TestBus_ConcurrentSubscribeUnsubscribe(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				sub := Subscribe(bus, func(pingEvent) {})
				Publish(bus, pingEvent{})
				sub.Unsubscribe()
			}
		}()
	}
	wg.Wait()

	Publish(bus, pingEvent{})
	if n := ActiveSubscribers[pingEvent](bus); n != 0 {
		t.Errorf("expected 0 active subscribers after churn, got %d", n)
	}
}

func BenchmarkBus_Publish(b *testing.B) {
	bus := NewBus()
	Subscribe(bus, func(pingEvent) {})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Publish(bus, pingEvent{Seq: i})
	}
}

func BenchmarkBus_Publish10Subscribers(b *testing.B) {
	bus := NewBus()
	for i := 0; i < 10; i++ {
		Subscribe(bus, func(pingEvent) {})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Publish(bus, pingEvent{Seq: i})
	}
}
