package pipeline

import (
	"context"
	"sync"
	"testing"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}

	var order []int
	r.Register(func(ctx context.Context, ev *Event) error {
		order = append(order, 1)
		return nil
	})
	r.Register(func(ctx context.Context, ev *Event) error {
		order = append(order, 2)
		return nil
	})

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	for _, p := range r.snapshot() {
		if err := p(context.Background(), &Event{}); err != nil {
			t.Fatalf("preprocessor returned %v", err)
		}
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("run order = %v, want [1 2]", order)
	}
}

func TestRegistryRegisterNil(t *testing.T) {
	r := NewRegistry()
	r.Register(nil)
	if r.Len() != 0 {
		t.Errorf("Len() = %d after registering nil, want 0", r.Len())
	}
}

func TestRegistryConcurrentRegister(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Register(func(ctx context.Context, ev *Event) error { return nil })
		}()
	}
	wg.Wait()
	if r.Len() != 16 {
		t.Errorf("Len() = %d, want 16", r.Len())
	}
}
