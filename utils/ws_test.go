package utils

import (
	"sync"
	"sync/atomic"
	"testing"
)

// overlapWriter flags any write that starts while another is in flight.
type overlapWriter struct {
	inFlight int32
	overlaps int32
	writes   int32
}

func (w *overlapWriter) WriteMessage(messageType int, data []byte) error {
	if atomic.AddInt32(&w.inFlight, 1) > 1 {
		atomic.AddInt32(&w.overlaps, 1)
	}
	atomic.AddInt32(&w.writes, 1)
	atomic.AddInt32(&w.inFlight, -1)
	return nil
}

func TestPushToUserSerializesWrites(t *testing.T) {
	const userID = uint(7001)
	w := &overlapWriter{}
	registerWriter(userID, w)
	defer unregisterWriter(userID, w)

	const pushers = 16
	var wg sync.WaitGroup
	wg.Add(pushers)
	for i := 0; i < pushers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				PushToUser(userID, "order.status_changed", "update")
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&w.overlaps); got != 0 {
		t.Errorf("%d overlapping writes on one connection", got)
	}
	if got := atomic.LoadInt32(&w.writes); got != pushers*50 {
		t.Errorf("writes = %d, want %d", got, pushers*50)
	}
}

func TestUnregisterStopsDelivery(t *testing.T) {
	const userID = uint(7002)
	w := &overlapWriter{}
	registerWriter(userID, w)
	unregisterWriter(userID, w)

	PushToUser(userID, "order.delivered", "done")
	if got := atomic.LoadInt32(&w.writes); got != 0 {
		t.Errorf("unregistered connection received %d writes", got)
	}
}
