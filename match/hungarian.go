package match

// hungarianAssign solves the rectangular assignment problem for an n×m cost
// matrix with the Kuhn–Munkres method (potentials, Jonker–Volgenant style).
// It returns assign[i] = column of row i, or -1 when row i is left
// unassigned or only reaches a cell costing >= forbidden.
//
// The matrix is padded to square with forbidden-cost cells. Every padded
// assignment costs the same, so padding does not change which real cells win.
//
// Complexity: O(d³), d = max(n, m).
func hungarianAssign(cost [][]float64, forbidden float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	m := len(cost[0])
	assign := make([]int, n)
	for i := range assign {
		assign[i] = -1
	}
	if m == 0 {
		return assign
	}

	dim := max(n, m)
	c := make([][]float64, dim)
	for i := range c {
		c[i] = make([]float64, dim)
		for j := range c[i] {
			if i < n && j < m {
				c[i][j] = cost[i][j]
			} else {
				c[i][j] = forbidden
			}
		}
	}

	// 1-indexed internals; column 0 is the virtual start column.
	const inf = 1e300
	u := make([]float64, dim+1)
	v := make([]float64, dim+1)
	p := make([]int, dim+1)   // p[j] = row matched to column j
	way := make([]int, dim+1) // previous column on the augmenting path
	minv := make([]float64, dim+1)
	used := make([]bool, dim+1)

	for i := 1; i <= dim; i++ {
		p[0] = i
		j0 := 0
		for j := 1; j <= dim; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= dim; j++ {
				if used[j] {
					continue
				}
				cur := c[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			if j1 < 0 {
				break
			}
			for j := 0; j <= dim; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			p[j0] = p[way[j0]]
			j0 = way[j0]
		}
	}

	for j := 1; j <= dim; j++ {
		i := p[j] - 1
		if i >= 0 && i < n && j-1 < m && cost[i][j-1] < forbidden {
			assign[i] = j - 1
		}
	}

	return assign
}
