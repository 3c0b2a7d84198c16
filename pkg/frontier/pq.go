package frontier

import (
	"container/heap"

	"github.com/aretw0/labyrinth/pkg/domain"
)

type priorityItem struct {
	Node         domain.Node
	Priority     int
	Sequence     uint64
	IndexInQueue int
}

// priorityQueue is a min-heap on Priority, then insertion Sequence.
type priorityQueue []*priorityItem

func (queue priorityQueue) Len() int { return len(queue) }
func (queue priorityQueue) Less(i, j int) bool {
	if queue[i].Priority != queue[j].Priority {
		return queue[i].Priority < queue[j].Priority
	}
	return queue[i].Sequence < queue[j].Sequence
}
func (queue priorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *priorityQueue) Push(x any) {
	item := x.(*priorityItem)
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *priorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	*queue = oldQueue[:n-1]
	return item
}

// ordered is the shared core of the Greedy and A* frontiers.
type ordered struct {
	queue    priorityQueue
	states   stateSet
	sequence uint64
}

func newOrdered() ordered {
	return ordered{states: make(stateSet)}
}

func (o *ordered) push(node domain.Node, priority int) {
	heap.Push(&o.queue, &priorityItem{Node: node, Priority: priority, Sequence: o.sequence})
	o.sequence++
	o.states.add(node.State)
}

func (o *ordered) pop() (domain.Node, error) {
	if o.queue.Len() == 0 {
		return domain.Node{}, domain.ErrEmptyFrontier
	}
	item := heap.Pop(&o.queue).(*priorityItem)
	o.states.remove(item.Node.State)
	return item.Node, nil
}

func (o *ordered) ContainsState(state domain.Cell) bool { return o.states.contains(state) }
func (o *ordered) Empty() bool                          { return o.queue.Len() == 0 }
func (o *ordered) Len() int                             { return o.queue.Len() }
