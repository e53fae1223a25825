package kgraph

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/slices"
)

// Validation limits to prevent pathological cases
const (
	MaxNodes  = 10000
	MaxFanOut = 1000
)

// Validate performs all topology validations and reports whether the graph
// is cyclic. Returns early on first error.
func (g *Graph) Validate(policy CyclePolicy) (bool, error) {
	if len(g.Nodes) > MaxNodes {
		return false, fmt.Errorf("%w: node count %d exceeds maximum %d",
			ErrInvalidTopology, len(g.Nodes), MaxNodes)
	}

	// 1. Every input needs a producer, otherwise the node would block forever
	if err := g.validateInputs(); err != nil {
		return false, fmt.Errorf("graph validation failed: %w", err)
	}

	// 2. Cycles, according to the policy
	cycle := g.findCycle()
	if cycle == nil {
		return false, nil
	}
	switch policy {
	case AllowCycles:
		return true, nil
	case RejectCycles:
		return true, fmt.Errorf("graph validation failed: %w: %s", ErrCycleDetected, formatPath(cycle))
	default:
		return true, fmt.Errorf("graph validation failed: %w: %s (choose a policy with WithCyclePolicy)",
			ErrCycleDetected, formatPath(cycle))
	}
}

// validateInputs checks that every declared input port is connected.
func (g *Graph) validateInputs() error {
	var missing []string
	for _, id := range g.NodeOrder {
		node := g.Nodes[id]
		for i, e := range node.Incoming {
			if e == nil {
				missing = append(missing, fmt.Sprintf("%s.%s", id, node.Inputs[i].Name))
			}
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing) // Deterministic error message
		return fmt.Errorf("%w: %s", ErrUnconnectedInput, strings.Join(missing, ", "))
	}
	return nil
}

// findCycle uses Depth-First Search (DFS) to find a cycle and returns its
// path, first node repeated at the end. Returns nil for acyclic graphs.
// Time complexity: O(V + E) where V is vertices and E is edges.
func (g *Graph) findCycle() []NodeID {
	visited := make(map[NodeID]bool, len(g.Nodes))
	recStack := make(map[NodeID]bool, len(g.Nodes))

	var dfs func(NodeID, []NodeID) []NodeID
	dfs = func(nodeID NodeID, path []NodeID) []NodeID {
		visited[nodeID] = true
		recStack[nodeID] = true
		path = append(path, nodeID)

		for _, childID := range g.Nodes[nodeID].Children() {
			if !visited[childID] {
				if cycle := dfs(childID, path); cycle != nil {
					return cycle
				}
			} else if recStack[childID] {
				start := slices.Index(path, childID)
				cycle := slices.Clone(path[start:])
				return append(cycle, childID)
			}
		}

		recStack[nodeID] = false
		return nil
	}

	// Check all nodes in insertion order (handles disconnected components)
	for _, nodeID := range g.NodeOrder {
		if !visited[nodeID] {
			if cycle := dfs(nodeID, nil); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

func formatPath(path []NodeID) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = string(id)
	}
	return strings.Join(parts, " -> ")
}

// insertSorted inserts an item into a sorted slice maintaining sort order.
func insertSorted(slice []NodeID, item NodeID) []NodeID {
	idx := sort.Search(len(slice), func(i int) bool {
		return slice[i] >= item
	})
	return slices.Insert(slice, idx, item)
}

// topologicalSort creates a deterministic topological ordering using Kahn's algorithm.
// Time complexity: O(V log V + E) where V is vertices and E is edges.
func (g *Graph) topologicalSort() ([]NodeID, error) {
	inDegree := make(map[NodeID]int, len(g.Nodes))
	for nodeID := range g.Nodes {
		inDegree[nodeID] = 0
	}
	for _, node := range g.Nodes {
		for _, childID := range node.Children() {
			inDegree[childID]++
		}
	}

	// Use sorted slice for deterministic ordering
	queue := make([]NodeID, 0, len(g.Nodes)/4)
	for nodeID, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, nodeID)
		}
	}
	slices.Sort(queue)

	result := make([]NodeID, 0, len(g.Nodes))
	for len(queue) > 0 {
		nodeID := queue[0]
		queue = queue[1:]
		result = append(result, nodeID)

		children := g.Nodes[nodeID].Children()
		slices.Sort(children)

		for _, childID := range children {
			inDegree[childID]--
			if inDegree[childID] == 0 {
				queue = insertSorted(queue, childID)
			}
		}
	}

	// If we didn't process all nodes, there must be a cycle
	if len(result) != len(g.Nodes) {
		return nil, fmt.Errorf("%w: topological sort failed", ErrCycleDetected)
	}
	return result, nil
}

// reachableFromSources returns every node with a path from a node without
// inputs.
func (g *Graph) reachableFromSources() map[NodeID]bool {
	reachable := make(map[NodeID]bool, len(g.Nodes))
	var mark func(NodeID)
	mark = func(id NodeID) {
		if reachable[id] {
			return
		}
		reachable[id] = true
		for _, childID := range g.Nodes[id].Children() {
			mark(childID)
		}
	}
	for _, id := range g.NodeOrder {
		if g.Nodes[id].Type() == NodeTypeSource {
			mark(id)
		}
	}
	return reachable
}
