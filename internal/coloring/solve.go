package coloring

// removal records a color pruned from a neighbor's domain by forward
// checking.
type removal struct {
	node  int
	color int
}

// choicePoint is one level of the backtracking search: the node being
// colored, the candidates it had when the level was entered, the next
// candidate to try and the prunings caused by the current assignment.
type choicePoint struct {
	node       int
	candidates []int
	next       int
	assigned   bool
	removals   []removal
}

// Solve 4-colors the graph using minimum-remaining-values ordering with
// forward checking. The search keeps its state on an explicit stack of
// choice points instead of recursing. It returns false when the search space
// is exhausted; every node is then left uncolored.
func (g *Graph) Solve() bool {
	for i := range g.Nodes {
		g.Nodes[i].Color = Uncolored
		g.Nodes[i].domain = []int{0, 1, 2, 3}
	}
	first := g.selectUnassigned()
	if first < 0 {
		return true
	}

	stack := []*choicePoint{g.enter(first)}
	for len(stack) > 0 {
		cp := stack[len(stack)-1]
		if cp.assigned {
			g.undo(cp)
		}

		descended := false
		for cp.next < len(cp.candidates) {
			c := cp.candidates[cp.next]
			cp.next++
			if !g.consistent(cp.node, c) {
				continue
			}
			if !g.assign(cp, c) {
				g.undo(cp)
				continue
			}
			n := g.selectUnassigned()
			if n < 0 {
				return true
			}
			stack = append(stack, g.enter(n))
			descended = true
			break
		}
		if !descended {
			stack = stack[:len(stack)-1]
		}
	}
	return false
}

func (g *Graph) enter(node int) *choicePoint {
	return &choicePoint{node: node, candidates: append([]int(nil), g.Nodes[node].domain...)}
}

// assign colors cp.node with c and prunes c from every uncolored neighbor.
// It reports false as soon as a neighbor's domain runs empty; the prunings
// made so far are kept on cp for undo.
func (g *Graph) assign(cp *choicePoint, c int) bool {
	g.Nodes[cp.node].Color = c
	cp.assigned = true
	cp.removals = cp.removals[:0]
	for _, nb := range g.Nodes[cp.node].Neighbors {
		n := &g.Nodes[nb]
		if n.Color != Uncolored {
			continue
		}
		idx := indexOf(n.domain, c)
		if idx < 0 {
			continue
		}
		n.domain = append(n.domain[:idx], n.domain[idx+1:]...)
		cp.removals = append(cp.removals, removal{node: nb, color: c})
		if len(n.domain) == 0 {
			return false
		}
	}
	return true
}

// undo restores the prunings of cp and clears its node's color. Restored
// colors are appended, so domain order reflects the search history.
func (g *Graph) undo(cp *choicePoint) {
	for _, r := range cp.removals {
		g.Nodes[r.node].domain = append(g.Nodes[r.node].domain, r.color)
	}
	cp.removals = cp.removals[:0]
	g.Nodes[cp.node].Color = Uncolored
	cp.assigned = false
}

func (g *Graph) consistent(node, c int) bool {
	for _, nb := range g.Nodes[node].Neighbors {
		if g.Nodes[nb].Color == c {
			return false
		}
	}
	return true
}

// selectUnassigned returns the uncolored node with the smallest domain, the
// lowest index winning ties, or -1 when every node is colored.
func (g *Graph) selectUnassigned() int {
	best := -1
	bestSize := NumColors + 1
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Color == Uncolored && len(n.domain) < bestSize {
			best = i
			bestSize = len(n.domain)
		}
	}
	return best
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
