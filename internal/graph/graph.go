package graph

import (
	"fmt"
	"slices"
	"sort"

	goerrors "github.com/TudorHulban/go-errors"

	"github.com/TudorHulban/taskscheduler/internal/domain"
)

// TaskGraph is the precedence DAG. Edges run predecessor to successor.
// It is immutable once built.
type TaskGraph struct {
	tasks  map[string]*domain.Task
	adj    map[string][]string
	revAdj map[string][]string

	roots  []string
	leaves []string
	order  []string
}

// Build indexes the tasks and wires the predecessor edges.
// Duplicate edges collapse. Unknown predecessors, duplicate ids and cycles
// are reported as *ErrStructural.
func Build(tasks []*domain.Task) (*TaskGraph, error) {
	g := TaskGraph{
		tasks:  make(map[string]*domain.Task, len(tasks)),
		adj:    make(map[string][]string, len(tasks)),
		revAdj: make(map[string][]string, len(tasks)),
	}

	for ix, task := range tasks {
		if task == nil {
			return nil,
				goerrors.ErrNilInput{
					InputName: fmt.Sprintf("tasks[%d]", ix),
				}
		}

		if _, exists := g.tasks[task.ID]; exists {
			return nil,
				&ErrStructural{
					Issue:  ErrDuplicateTask,
					TaskID: task.ID,
				}
		}

		g.tasks[task.ID] = task
	}

	edgeSet := make(map[[2]string]bool)

	addEdge := func(from, to string) {
		key := [2]string{from, to}
		if edgeSet[key] {
			return
		}

		edgeSet[key] = true

		g.adj[from] = append(g.adj[from], to)
		g.revAdj[to] = append(g.revAdj[to], from)
	}

	for _, id := range g.ids() {
		for _, predecessor := range g.tasks[id].Predecessors {
			if _, exists := g.tasks[predecessor]; !exists {
				return nil,
					&ErrStructural{
						Issue:     ErrDanglingPredecessor,
						TaskID:    id,
						Reference: predecessor,
					}
			}

			addEdge(predecessor, id)
		}
	}

	for id := range g.adj {
		sort.Strings(g.adj[id])
	}

	for id := range g.revAdj {
		sort.Strings(g.revAdj[id])
	}

	for _, id := range g.ids() {
		if len(g.revAdj[id]) == 0 {
			g.roots = append(g.roots, id)
		}

		if len(g.adj[id]) == 0 {
			g.leaves = append(g.leaves, id)
		}
	}

	if cycle := g.detectCycle(); cycle != nil {
		return nil,
			&ErrStructural{
				Issue:  ErrCyclicDependency,
				TaskID: cycle[0],
				Cycle:  cycle,
			}
	}

	g.order = g.kahn()

	return &g,
		nil
}

func (g *TaskGraph) ids() []string {
	result := make([]string, 0, len(g.tasks))

	for id := range g.tasks {
		result = append(result, id)
	}

	sort.Strings(result)

	return result
}

// detectCycle walks the graph depth first coloring nodes white, gray and black.
// A gray successor closes a cycle, which is rebuilt through the parent links.
func (g *TaskGraph) detectCycle() []string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.tasks))
	parent := make(map[string]string, len(g.tasks))

	var dfs func(node string) []string

	dfs = func(node string) []string {
		color[node] = gray

		for _, next := range g.adj[node] {
			if color[next] == gray {
				cycle := []string{next, node}

				for current := node; current != next; {
					current = parent[current]
					cycle = append(cycle, current)
				}

				slices.Reverse(cycle)

				return cycle
			}

			if color[next] == white {
				parent[next] = node

				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}

		color[node] = black

		return nil
	}

	for _, id := range g.ids() {
		if color[id] != white {
			continue
		}

		if cycle := dfs(id); cycle != nil {
			return cycle
		}
	}

	return nil
}

func (g *TaskGraph) Len() int {
	return len(g.tasks)
}

func (g *TaskGraph) Task(id string) (*domain.Task, bool) {
	task, exists := g.tasks[id]

	return task, exists
}

// Roots are the tasks without predecessors, sorted by id.
func (g *TaskGraph) Roots() []string {
	return slices.Clone(g.roots)
}

// Leaves are the tasks nothing depends on, sorted by id.
func (g *TaskGraph) Leaves() []string {
	return slices.Clone(g.leaves)
}

func (g *TaskGraph) Successors(id string) []string {
	return slices.Clone(g.adj[id])
}

func (g *TaskGraph) Predecessors(id string) []string {
	return slices.Clone(g.revAdj[id])
}

// Descendants returns every task reachable from id, sorted.
func (g *TaskGraph) Descendants(id string) []string {
	visited := make(map[string]bool)
	stack := slices.Clone(g.adj[id])

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[node] {
			continue
		}

		visited[node] = true
		stack = append(stack, g.adj[node]...)
	}

	result := make([]string, 0, len(visited))

	for node := range visited {
		result = append(result, node)
	}

	sort.Strings(result)

	return result
}
