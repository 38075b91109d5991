// Package cluster implements agglomerative hierarchical clustering over
// the rows of a dense matrix, with the average, complete and single
// linkage rules of standard statistical toolkits.
package cluster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Method selects the linkage rule used to merge clusters.
type Method string

const (
	Average  Method = "average"
	Complete Method = "complete"
	Single   Method = "single"
)

// ParseMethod maps a method name to a Method.
func ParseMethod(name string) (Method, error) {
	switch m := Method(name); m {
	case Average, Complete, Single:
		return m, nil
	}
	return "", fmt.Errorf("unknown linkage method %q", name)
}

// Merge records one agglomeration step. A and B index either leaves
// (0..n-1) or earlier merges (n+i for step i).
type Merge struct {
	A, B int
	Dist float64
	Size int
}

// Linkage clusters the rows of data using Euclidean distances. It
// returns the n-1 merges in the order they were made.
func Linkage(data [][]float64, method Method) ([]Merge, error) {
	n := len(data)
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 observations to cluster, got %d", n)
	}
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}

	// Distances between all clusters, indexed by cluster id. Leaves are
	// 0..n-1; merge i creates cluster n+i.
	total := 2*n - 1
	dist := make([][]float64, total)
	for i := range dist {
		dist[i] = make([]float64, total)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := floats.Distance(data[i], data[j], 2)
			dist[i][j], dist[j][i] = d, d
		}
	}
	size := make([]int, total)
	active := make([]int, n)
	for i := 0; i < n; i++ {
		size[i] = 1
		active[i] = i
	}

	merges := make([]Merge, 0, n-1)
	for step := 0; step < n-1; step++ {
		bi, bj := -1, -1
		best := math.Inf(1)
		for x := 0; x < len(active); x++ {
			for y := x + 1; y < len(active); y++ {
				if d := dist[active[x]][active[y]]; d < best {
					best, bi, bj = d, x, y
				}
			}
		}
		a, b := active[bi], active[bj]
		id := n + step
		size[id] = size[a] + size[b]
		merges = append(merges, Merge{A: a, B: b, Dist: best, Size: size[id]})

		// Lance-Williams update for the new cluster's distances.
		for _, c := range active {
			if c == a || c == b {
				continue
			}
			da, db := dist[a][c], dist[b][c]
			var d float64
			switch method {
			case Single:
				d = math.Min(da, db)
			case Complete:
				d = math.Max(da, db)
			default:
				d = (float64(size[a])*da + float64(size[b])*db) / float64(size[id])
			}
			dist[id][c], dist[c][id] = d, d
		}

		// bi < bj, so removing bj first keeps bi valid.
		active = append(active[:bj], active[bj+1:]...)
		active[bi] = id
	}
	return merges, nil
}

// LeafOrder returns the dendrogram's left-to-right leaf ordering.
func LeafOrder(merges []Merge, n int) []int {
	if n == 1 {
		return []int{0}
	}
	order := make([]int, 0, n)
	var walk func(id int)
	walk = func(id int) {
		if id < n {
			order = append(order, id)
			return
		}
		m := merges[id-n]
		walk(m.A)
		walk(m.B)
	}
	walk(n + len(merges) - 1)
	return order
}
