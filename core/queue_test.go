package core

import (
	"context"
	"testing"
)

// TestFIFOTaskQueue_Order verifies FIFO ordering
// Given: A queue with tasks pushed in sequence
// When: Tasks are popped
// Then: Dequeue order equals enqueue order
func TestFIFOTaskQueue_Order(t *testing.T) {
	// Arrange
	q := NewFIFOTaskQueue()
	var order []int

	for i := 0; i < 10; i++ {
		i := i
		if !q.Push(func(ctx context.Context) { order = append(order, i) }) {
			t.Fatalf("Push %d returned false on unbounded queue", i)
		}
	}

	// Act
	for {
		task, ok := q.Pop()
		if !ok {
			break
		}
		task(context.Background())
	}

	// Assert
	if len(order) != 10 {
		t.Fatalf("popped %d tasks, want 10", len(order))
	}
	for i, v := range order {
		if v != i {
			t.Errorf("order[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestFIFOTaskQueue_PopEmpty(t *testing.T) {
	q := NewFIFOTaskQueue()

	if task, ok := q.Pop(); ok || task != nil {
		t.Error("Pop on empty queue should return (nil, false)")
	}
	if !q.IsEmpty() {
		t.Error("IsEmpty() = false for empty queue")
	}
}

// TestFIFOTaskQueue_Bounded verifies the optional queue bound
// Given: A bounded queue with limit 2
// When: A third task is pushed
// Then: Push returns false and the queue length stays 2
func TestFIFOTaskQueue_Bounded(t *testing.T) {
	q := NewBoundedFIFOTaskQueue(2)
	noop := func(ctx context.Context) {}

	if !q.Push(noop) || !q.Push(noop) {
		t.Fatal("pushes within the limit must succeed")
	}
	if q.Push(noop) {
		t.Error("push beyond the limit must fail")
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}

	// Popping frees a slot
	q.Pop()
	if !q.Push(noop) {
		t.Error("push after pop must succeed again")
	}
}

func TestFIFOTaskQueue_Clear(t *testing.T) {
	q := NewFIFOTaskQueue()
	noop := func(ctx context.Context) {}

	for i := 0; i < 5; i++ {
		q.Push(noop)
	}
	q.Clear()

	if q.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", q.Len())
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop after Clear should return false")
	}
}

// TestFIFOTaskQueue_Compaction verifies capacity shrinks after heavy churn.
func TestFIFOTaskQueue_Compaction(t *testing.T) {
	q := NewFIFOTaskQueue()
	noop := func(ctx context.Context) {}

	for i := 0; i < 1000; i++ {
		q.Push(noop)
	}
	for i := 0; i < 995; i++ {
		q.Pop()
	}
	q.MaybeCompact()

	if q.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", q.Len())
	}
	// Remaining tasks survive compaction
	for i := 0; i < 5; i++ {
		if _, ok := q.Pop(); !ok {
			t.Fatalf("Pop %d after compaction failed", i)
		}
	}
}
