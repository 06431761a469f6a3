package match

import "sort"

// resolve selects a conflict-free subset of edges with the given strategy.
func resolve(s Strategy, edges []edge, nPred, nRef int) []edge {
	switch s {
	case NearestFirst:
		return resolveNearestFirst(edges, nPred, nRef)
	case Optimal:
		return resolveOptimal(edges, nPred, nRef)
	default:
		return resolveGreedy(edges, nPred, nRef)
	}
}

// resolveGreedy accepts edges in (dist, pred, ref) order while both ends are free.
// Complexity: O(E log E).
func resolveGreedy(edges []edge, nPred, nRef int) []edge {
	sorted := append([]edge(nil), edges...)
	sort.Slice(sorted, func(a, b int) bool { return lessEdge(sorted[a], sorted[b]) })

	usedPred := make([]bool, nPred)
	usedRef := make([]bool, nRef)
	var out []edge
	for _, e := range sorted {
		if usedPred[e.pred] || usedRef[e.ref] {
			continue
		}
		usedPred[e.pred], usedRef[e.ref] = true, true
		out = append(out, e)
	}

	return out
}

// resolveNearestFirst walks predicted items in input order; each takes its
// nearest free reference, ties to the lower reference index.
// Complexity: O(E).
func resolveNearestFirst(edges []edge, nPred, nRef int) []edge {
	byPred := make([][]edge, nPred)
	for _, e := range edges {
		byPred[e.pred] = append(byPred[e.pred], e)
	}

	usedRef := make([]bool, nRef)
	var out []edge
	for _, cands := range byPred {
		best := -1
		for k, e := range cands {
			if usedRef[e.ref] {
				continue
			}
			if best < 0 || e.dist < cands[best].dist || (e.dist == cands[best].dist && e.ref < cands[best].ref) {
				best = k
			}
		}
		if best >= 0 {
			usedRef[cands[best].ref] = true
			out = append(out, cands[best])
		}
	}

	return out
}

// resolveOptimal splits the compatibility graph into connected components and
// solves each one with the Hungarian method. Components are tiny for
// physiological event trains, so the cubic solver stays cheap.
func resolveOptimal(edges []edge, nPred, nRef int) []edge {
	adj := make([][]int, nPred+nRef) // node ids: pred i → i, ref j → nPred+j
	for k, e := range edges {
		adj[e.pred] = append(adj[e.pred], k)
		adj[nPred+e.ref] = append(adj[nPred+e.ref], k)
	}

	seen := make([]bool, nPred+nRef)
	var out []edge
	for root := 0; root < nPred; root++ {
		if seen[root] || len(adj[root]) == 0 {
			continue
		}
		// Breadth-first walk collecting the component's nodes and edges.
		var preds, refs, comp []int
		queue := []int{root}
		seen[root] = true
		edgeSeen := map[int]bool{}
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			if node < nPred {
				preds = append(preds, node)
			} else {
				refs = append(refs, node-nPred)
			}
			for _, k := range adj[node] {
				if !edgeSeen[k] {
					edgeSeen[k] = true
					comp = append(comp, k)
				}
				other := edges[k].pred
				if node < nPred {
					other = nPred + edges[k].ref
				}
				if !seen[other] {
					seen[other] = true
					queue = append(queue, other)
				}
			}
		}
		out = append(out, solveComponent(edges, comp, preds, refs)...)
	}

	return out
}

// solveComponent runs the assignment on one component.
func solveComponent(edges []edge, comp, preds, refs []int) []edge {
	sort.Ints(preds)
	sort.Ints(refs)
	row := make(map[int]int, len(preds))
	for i, p := range preds {
		row[p] = i
	}
	col := make(map[int]int, len(refs))
	for j, r := range refs {
		col[r] = j
	}

	maxDist := 0.0
	for _, k := range comp {
		maxDist = max(maxDist, edges[k].dist)
	}
	forbidden := (maxDist + 1) * float64(max(len(preds), len(refs))+1)

	cost := make([][]float64, len(preds))
	owner := make([][]int, len(preds))
	for i := range cost {
		cost[i] = make([]float64, len(refs))
		owner[i] = make([]int, len(refs))
		for j := range cost[i] {
			cost[i][j] = forbidden
			owner[i][j] = -1
		}
	}
	for _, k := range comp {
		i, j := row[edges[k].pred], col[edges[k].ref]
		cost[i][j] = edges[k].dist
		owner[i][j] = k
	}

	var out []edge
	for i, j := range hungarianAssign(cost, forbidden) {
		if j >= 0 && owner[i][j] >= 0 {
			out = append(out, edges[owner[i][j]])
		}
	}

	return out
}
