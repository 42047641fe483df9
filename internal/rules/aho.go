package rules

// acNode is one state of the automaton. out lists every pattern ending at
// this state, including those inherited through failure links.
type acNode struct {
	next map[byte]int32
	fail int32
	out  []int32
}

// automaton is an Aho-Corasick multi-pattern matcher. It is read-only after
// build and safe for concurrent use.
type automaton struct {
	nodes   []acNode
	lengths []int
}

func newAutomaton() *automaton {
	return &automaton{nodes: []acNode{{next: make(map[byte]int32)}}}
}

// add inserts pattern and returns its id.
func (a *automaton) add(pattern []byte) int32 {
	cur := int32(0)

	for _, b := range pattern {
		nxt, ok := a.nodes[cur].next[b]
		if !ok {
			a.nodes = append(a.nodes, acNode{next: make(map[byte]int32)})
			nxt = int32(len(a.nodes) - 1)
			a.nodes[cur].next[b] = nxt
		}

		cur = nxt
	}

	id := int32(len(a.lengths))
	a.lengths = append(a.lengths, len(pattern))
	a.nodes[cur].out = append(a.nodes[cur].out, id)

	return id
}

// build computes failure links breadth first.
func (a *automaton) build() {
	queue := make([]int32, 0, len(a.nodes[0].next))

	for _, child := range a.nodes[0].next {
		a.nodes[child].fail = 0
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for b, child := range a.nodes[n].next {
			f := a.nodes[n].fail
			for f != 0 {
				if _, ok := a.nodes[f].next[b]; ok {
					break
				}

				f = a.nodes[f].fail
			}

			if target, ok := a.nodes[f].next[b]; ok && target != child {
				a.nodes[child].fail = target
			} else {
				a.nodes[child].fail = 0
			}

			if inherited := a.nodes[a.nodes[child].fail].out; len(inherited) > 0 {
				a.nodes[child].out = append(a.nodes[child].out, inherited...)
			}

			queue = append(queue, child)
		}
	}
}

func (a *automaton) empty() bool {
	return len(a.lengths) == 0
}

// scan reports every occurrence of every pattern in data as (id, offset).
// It returns false from the callback to stop early.
func (a *automaton) scan(data []byte, emit func(id int32, offset int) bool) {
	cur := int32(0)

	for i, b := range data {
		for {
			if nxt, ok := a.nodes[cur].next[b]; ok {
				cur = nxt
				break
			}

			if cur == 0 {
				break
			}

			cur = a.nodes[cur].fail
		}

		for _, id := range a.nodes[cur].out {
			if !emit(id, i-a.lengths[id]+1) {
				return
			}
		}
	}
}
