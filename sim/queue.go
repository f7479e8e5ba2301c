// Implements the ItemQueue, which holds the items an agent has yet to inspect.
// Items are enqueued when thrown to the agent.

package sim

import (
	"fmt"
	"strings"
)

// ItemQueue is a FIFO queue of item values owned by a single agent.
type ItemQueue struct {
	items []int64
}

// NewItemQueue returns a queue holding a copy of items in order.
func NewItemQueue(items ...int64) *ItemQueue {
	q := &ItemQueue{}
	if len(items) > 0 {
		q.items = append(make([]int64, 0, len(items)), items...)
	}
	return q
}

// Enqueue adds an item to the back of the queue.
func (q *ItemQueue) Enqueue(item int64) {
	q.items = append(q.items, item)
}

// Len returns the number of items in the queue.
func (q *ItemQueue) Len() int {
	return len(q.items)
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage; callers MUST NOT
// append to or reslice it.
func (q *ItemQueue) Items() []int64 {
	return q.items
}

// TakeAll removes every item from the queue and hands the backing slice to
// the caller. Items enqueued afterwards land in fresh storage, so the caller
// iterates a stable snapshot even when it throws items back to this queue.
func (q *ItemQueue) TakeAll() []int64 {
	taken := q.items
	q.items = nil
	return taken
}

func (q *ItemQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range q.items {
		sb.WriteString(fmt.Sprint(val))
		if i < len(q.items)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
