// Package tree implements the Barnes–Hut tree: a left-child/right-sibling
// hierarchy built in a single pass over a Morton-sorted particle range by
// grouping successively coarser common key prefixes, per
// original_source/dyn/barnes_hut.h.
package tree

// noChild marks the absence of a child or sibling link in the arena.
const noChild int32 = -1

type node[S any] struct {
	lo, hi         int32 // half-open index range into the caller's particle slice
	child, sibling int32 // arena indices, or noChild
	summary        S
}

// Tree is an arena of nodes addressed by int32 index rather than pointers,
// per spec.md §9's recommendation: this keeps the tree trivially relocatable
// and makes bulk release a single slice drop instead of per-node frees.
type Tree[S any] struct {
	nodes []node[S]
	root  int32
}

// Empty reports whether the tree has no particles.
func (t *Tree[S]) Empty() bool {
	return t == nil || t.root == noChild
}

// RootSummary returns the root's disk summary (spanning every particle) and
// true, or the zero value and false if the tree is empty.
func (t *Tree[S]) RootSummary() (s S, ok bool) {
	if t.Empty() {
		return s, false
	}
	return t.nodes[t.root].summary, true
}

// Build constructs a tree over particles, which must already be sorted in
// ascending Morton order. key returns the particle's full-precision Morton
// key (the mask argument is reserved for callers that want to recompute
// coarser prefixes directly rather than mask a cached key; this
// implementation always calls it once per particle with an all-ones mask
// and derives every coarser prefix by bitwise AND, since that is equivalent
// for any key function that is itself a pure bit-masking operation) along
// with whether the particle has a representable key at all (false for the
// Morton "no key" sentinel). summarize builds a disk summary for a
// contiguous particle sub-range [lo, hi).
func Build[P any, S any](particles []P, key func(p *P, mask uint64) (uint64, bool), summarize func(particles []P, lo, hi int) S) *Tree[S] {
	n := int32(len(particles))
	t := &Tree[S]{root: noChild}
	if n == 0 {
		return t
	}

	keyVal := make([]uint64, n)
	keyOK := make([]bool, n)
	cur := make([]int32, n)
	for i := int32(0); i < n; i++ {
		kv, ok := key(&particles[i], ^uint64(0))
		keyVal[i], keyOK[i] = kv, ok
		cur[i] = t.alloc(i, i+1, noChild, noChild, summarize(particles, int(i), int(i+1)))
	}
	linkSiblings(t, cur)

	rep := func(idx int32) (uint64, bool) {
		lo := t.nodes[idx].lo
		return keyVal[lo], keyOK[lo]
	}

	mask := ^uint64(0)
	mask <<= 2
	for mask != 0 {
		cur = groupLayer(t, particles, cur, mask, rep, summarize)
		mask <<= 2
	}

	root := t.alloc(0, n, cur[0], noChild, summarize(particles, 0, int(n)))
	t.root = root
	return t
}

func groupLayer[P any, S any](t *Tree[S], particles []P, cur []int32, mask uint64, rep func(int32) (uint64, bool), summarize func([]P, int, int) S) []int32 {
	out := make([]int32, 0, len(cur))
	i := 0
	for i < len(cur) {
		z0, ok0 := rep(cur[i])
		j := i + 1
		for j < len(cur) {
			zj, okj := rep(cur[j])
			if !ok0 || !okj || (zj&mask) != (z0&mask) {
				break
			}
			j++
		}
		if j-i == 1 {
			// A run of one is reused as its own parent; nothing allocated.
			out = append(out, cur[i])
		} else {
			lo := t.nodes[cur[i]].lo
			hi := t.nodes[cur[j-1]].hi
			// Sever the last child's stale link to whatever followed it in
			// the lower layer; it now terminates this parent's child chain.
			t.nodes[cur[j-1]].sibling = noChild
			parent := t.alloc(lo, hi, cur[i], noChild, summarize(particles, int(lo), int(hi)))
			out = append(out, parent)
		}
		i = j
	}
	linkSiblings(t, out)
	return out
}

func linkSiblings[S any](t *Tree[S], layer []int32) {
	for i := 0; i < len(layer)-1; i++ {
		t.nodes[layer[i]].sibling = layer[i+1]
	}
	if len(layer) > 0 {
		t.nodes[layer[len(layer)-1]].sibling = noChild
	}
}

func (t *Tree[S]) alloc(lo, hi int32, child, sibling int32, summary S) int32 {
	t.nodes = append(t.nodes, node[S]{lo: lo, hi: hi, child: child, sibling: sibling, summary: summary})
	return int32(len(t.nodes) - 1)
}

// Traverse performs a depth-first descent using an explicit stack (never
// language recursion, since chains can be thousands deep when particles are
// nearly collinear in Z-order). The root is unconditionally entered: its
// children are pushed without consulting visit. For every subsequently
// popped node, visit is invoked with its summary and particle range; if it
// returns true, the node's children are pushed, otherwise that subtree is
// pruned.
func (t *Tree[S]) Traverse(visit func(summary S, lo, hi int32) bool) {
	if t.Empty() {
		return
	}
	root := t.nodes[t.root]
	stack := make([]int32, 0, 64)
	for c := root.child; c != noChild; c = t.nodes[c].sibling {
		stack = append(stack, c)
	}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := t.nodes[idx]
		if visit(nd.summary, nd.lo, nd.hi) {
			for c := nd.child; c != noChild; c = t.nodes[c].sibling {
				stack = append(stack, c)
			}
		}
	}
}

// Leaves returns the particle-index ranges of every leaf, via an explicit
// stack so that the "debug leaf count" and coverage checks never recurse.
func (t *Tree[S]) Leaves() [][2]int32 {
	if t.Empty() {
		return nil
	}
	var leaves [][2]int32
	stack := []int32{t.root}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := t.nodes[idx]
		if nd.child == noChild {
			leaves = append(leaves, [2]int32{nd.lo, nd.hi})
			continue
		}
		for c := nd.child; c != noChild; c = t.nodes[c].sibling {
			stack = append(stack, c)
		}
	}
	return leaves
}

// LeafCount returns the number of leaves, computed iteratively.
func (t *Tree[S]) LeafCount() int {
	return len(t.Leaves())
}

// Release drops the arena. The whole tree is freed in one step, as spec.md
// §5 recommends for a pool/arena allocator; Go's garbage collector makes an
// explicit iterative per-node free unnecessary once nothing references the
// backing slice.
func (t *Tree[S]) Release() {
	t.nodes = nil
	t.root = noChild
}
