package event

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmitOrder(t *testing.T) {
	t.Parallel()

	emitter := New()

	var calls []string
	emitter.On("data", func(args ...any) { calls = append(calls, "first:"+args[0].(string)) })
	emitter.On("data", func(args ...any) { calls = append(calls, "second:"+args[0].(string)) })
	emitter.Prepend("data", func(args ...any) { calls = append(calls, "prepended:"+args[0].(string)) })

	if !emitter.Emit("data", "x") {
		t.Fatal("expected listeners to be reported")
	}
	if emitter.Emit("end") {
		t.Fatal("expected no listeners for end")
	}

	expected := []string{"prepended:x", "first:x", "second:x"}
	if diff := cmp.Diff(expected, calls); diff != "" {
		t.Errorf("calls mismatch (-expected +got):\n%s", diff)
	}
}

func TestOnce(t *testing.T) {
	t.Parallel()

	emitter := New()

	count := 0
	emitter.Once("finish", func(...any) { count++ })

	emitter.Emit("finish")
	emitter.Emit("finish")

	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	if n := emitter.ListenerCount("finish"); n != 0 {
		t.Fatalf("listener count = %d, want 0", n)
	}
}

func TestRemoveListener(t *testing.T) {
	t.Parallel()

	var emitter Emitter

	count := 0
	listener := emitter.On("data", func(...any) { count++ })
	emitter.On("end", func(...any) {})

	if diff := cmp.Diff([]string{"data", "end"}, emitter.EventNames()); diff != "" {
		t.Errorf("event names mismatch (-expected +got):\n%s", diff)
	}

	emitter.Off("data", listener)
	emitter.Emit("data")

	if count != 0 {
		t.Fatalf("removed listener was called")
	}
	if diff := cmp.Diff([]string{"end"}, emitter.EventNames()); diff != "" {
		t.Errorf("event names mismatch (-expected +got):\n%s", diff)
	}

	emitter.RemoveAllListeners()
	if names := emitter.EventNames(); len(names) != 0 {
		t.Fatalf("expected no event names, got %v", names)
	}
}

func TestRemoveDuringEmit(t *testing.T) {
	t.Parallel()

	emitter := New()

	var calls []string
	var second *Listener
	emitter.On("data", func(...any) {
		calls = append(calls, "first")
		emitter.RemoveListener("data", second)
	})
	second = emitter.On("data", func(...any) { calls = append(calls, "second") })

	emitter.Emit("data")
	emitter.Emit("data")

	if diff := cmp.Diff([]string{"first", "second", "first"}, calls); diff != "" {
		t.Errorf("calls mismatch (-expected +got):\n%s", diff)
	}
}

func TestConcurrentEmit(t *testing.T) {
	t.Parallel()

	emitter := New()

	var mu sync.Mutex
	count := 0
	emitter.On("data", func(...any) {
		mu.Lock()
		defer mu.Unlock()
		count++
	})

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			emitter.Emit("data")
		}()
	}
	wg.Wait()

	if count != 10 {
		t.Fatalf("count = %d, want 10", count)
	}
}
