package queue

import (
	"sync"
	"testing"

	"github.com/jacobpatterson1549/cross-tiles/game/message"
)

func TestQueuePreservesOrder(t *testing.T) {
	q := New()
	texts := []string{"a", "b", "c", "d"}
	for _, text := range texts {
		q.Put(message.Notification{Text: text})
	}
	for i, want := range texts {
		m, ok := q.Get()
		switch {
		case !ok:
			t.Fatalf("message %v: queue unexpectedly closed", i)
		case m.(message.Notification).Text != want:
			t.Errorf("message %v: wanted %q, got %q", i, want, m.(message.Notification).Text)
		}
	}
}

func TestQueueGetBlocksUntilPut(t *testing.T) {
	q := New()
	done := make(chan message.Message)
	go func() {
		m, _ := q.Get()
		done <- m
	}()
	q.Put(message.Shutdown{})
	if m := <-done; m.Type() != message.ShutdownType {
		t.Errorf("wanted shutdown message, got %v", m)
	}
}

func TestQueueCloseDrains(t *testing.T) {
	q := New()
	q.Put(message.Notification{Text: "pending"})
	q.Close()
	q.Put(message.Notification{Text: "dropped"})
	if m, ok := q.Get(); !ok || m.(message.Notification).Text != "pending" {
		t.Errorf("wanted buffered message after close, got %v (ok=%v)", m, ok)
	}
	if m, ok := q.Get(); ok {
		t.Errorf("wanted closed queue after drain, got %v", m)
	}
}

func TestQueueCloseUnblocksGet(t *testing.T) {
	q := New()
	done := make(chan bool)
	go func() {
		_, ok := q.Get()
		done <- ok
	}()
	q.Close()
	if ok := <-done; ok {
		t.Error("wanted ok=false from Get on closed empty queue")
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := New()
	const producers, perProducer = 8, 50
	var wg sync.WaitGroup
	wg.Add(producers)
	for i := 0; i < producers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				q.Put(message.Notification{Text: "x"})
			}
		}()
	}
	wg.Wait()
	q.Close()
	n := 0
	for {
		if _, ok := q.Get(); !ok {
			break
		}
		n++
	}
	if want := producers * perProducer; n != want {
		t.Errorf("wanted %v messages, got %v", want, n)
	}
}
