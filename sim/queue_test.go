package sim

import "testing"

func TestItemQueue_Enqueue_PreservesFIFOOrder(t *testing.T) {
	// GIVEN an empty queue
	q := NewItemQueue()

	// WHEN items 3, 1, 2 are enqueued
	q.Enqueue(3)
	q.Enqueue(1)
	q.Enqueue(2)

	// THEN Items() returns them in arrival order
	want := []int64{3, 1, 2}
	items := q.Items()
	if len(items) != len(want) {
		t.Fatalf("Items: got %d elements, want %d", len(items), len(want))
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("Items[%d]: got %d, want %d", i, items[i], want[i])
		}
	}
}

func TestNewItemQueue_CopiesInput(t *testing.T) {
	// GIVEN a starting slice
	start := []int64{79, 98}

	// WHEN a queue is built from it and the slice is modified afterwards
	q := NewItemQueue(start...)
	start[0] = -1

	// THEN the queue is unaffected
	if q.Items()[0] != 79 {
		t.Errorf("queue aliases caller slice: got %d, want 79", q.Items()[0])
	}
}

func TestItemQueue_TakeAll_EmptiesQueue(t *testing.T) {
	// GIVEN a queue with [A, B]
	q := NewItemQueue(10, 20)

	// WHEN TakeAll is called
	taken := q.TakeAll()

	// THEN both items are returned and the queue is empty
	if len(taken) != 2 || taken[0] != 10 || taken[1] != 20 {
		t.Errorf("TakeAll: got %v, want [10 20]", taken)
	}
	if q.Len() != 0 {
		t.Errorf("Len after TakeAll: got %d, want 0", q.Len())
	}
}

func TestItemQueue_TakeAll_LaterEnqueueDoesNotTouchSnapshot(t *testing.T) {
	// GIVEN a snapshot taken from a queue
	q := NewItemQueue(1, 2)
	taken := q.TakeAll()

	// WHEN new items are enqueued
	q.Enqueue(3)

	// THEN the snapshot keeps its contents and length
	if len(taken) != 2 || taken[0] != 1 || taken[1] != 2 {
		t.Errorf("snapshot changed: %v", taken)
	}
	if q.Len() != 1 || q.Items()[0] != 3 {
		t.Errorf("queue after enqueue: %v", q)
	}
}

func TestItemQueue_TakeAll_Empty(t *testing.T) {
	q := NewItemQueue()
	if got := q.TakeAll(); len(got) != 0 {
		t.Errorf("TakeAll on empty queue: got %v", got)
	}
}

func TestItemQueue_String(t *testing.T) {
	q := NewItemQueue(20, 23, 27)
	if got := q.String(); got != "[20 23 27]" {
		t.Errorf("String: got %q", got)
	}
	if got := NewItemQueue().String(); got != "[]" {
		t.Errorf("String on empty: got %q", got)
	}
}
