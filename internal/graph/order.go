package graph

import (
	"container/heap"
	"slices"
)

type readyItem struct {
	id       string
	priority int
}

// readyQueue pops the lowest priority first, then the smallest id.
type readyQueue []readyItem

func (q readyQueue) Len() int { return len(q) }

func (q readyQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}

	return q[i].id < q[j].id
}

func (q readyQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *readyQueue) Push(x any) {
	*q = append(*q, x.(readyItem))
}

func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]

	return item
}

// kahn runs on an acyclic graph, so every task ends up in the order.
func (g *TaskGraph) kahn() []string {
	inDegree := make(map[string]int, len(g.tasks))
	queue := make(readyQueue, 0, len(g.roots))

	for id, task := range g.tasks {
		inDegree[id] = len(g.revAdj[id])

		if inDegree[id] == 0 {
			queue = append(
				queue,
				readyItem{
					id:       id,
					priority: task.Priority,
				},
			)
		}
	}

	heap.Init(&queue)

	result := make([]string, 0, len(g.tasks))

	for queue.Len() > 0 {
		item := heap.Pop(&queue).(readyItem)
		result = append(result, item.id)

		for _, successor := range g.adj[item.id] {
			inDegree[successor]--

			if inDegree[successor] == 0 {
				heap.Push(
					&queue,
					readyItem{
						id:       successor,
						priority: g.tasks[successor].Priority,
					},
				)
			}
		}
	}

	return result
}

// Order is a total order consistent with precedence.
// Among ready tasks the lower priority goes first, then the smaller id,
// so the result does not depend on input order.
func (g *TaskGraph) Order() []string {
	return slices.Clone(g.order)
}
