package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManager_After_Fires(t *testing.T) {
	m := NewManager()
	defer m.Close()

	var fired atomic.Int32
	m.After(50*time.Millisecond, func() {
		fired.Add(1)
	})

	time.Sleep(300 * time.Millisecond)
	if fired.Load() != 1 {
		t.Fatalf("Expected timer to fire exactly once, fired %d times", fired.Load())
	}
}

func TestManager_Cancel(t *testing.T) {
	m := NewManager()
	defer m.Close()

	var fired atomic.Int32
	id := m.After(100*time.Millisecond, func() {
		fired.Add(1)
	})
	m.Cancel(id)

	time.Sleep(300 * time.Millisecond)
	if fired.Load() != 0 {
		t.Fatal("Canceled timer should not fire")
	}
}

func TestManager_CancelUnknownIsNoop(t *testing.T) {
	m := NewManager()
	defer m.Close()

	m.Cancel(9999)
}

func TestManager_FiresInOrder(t *testing.T) {
	m := NewManager()
	defer m.Close()

	order := make(chan int, 2)
	m.After(200*time.Millisecond, func() { order <- 2 })
	m.After(50*time.Millisecond, func() { order <- 1 })

	first := <-order
	second := <-order
	if first != 1 || second != 2 {
		t.Fatalf("Expected firing order 1 then 2, got %d then %d", first, second)
	}
}
