package mdcgen

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

// maxPlacementAttempts bounds the rejection sampling for an unoccupied grid
// cell per cluster. Enumerable grids then fall back to picking uniformly
// among the remaining free cells, so clusters occupy distinct cells whenever
// the grid has capacity for them. Only when no free cell exists (or the grid
// is too large to enumerate, where a 30-draw miss is vanishingly rare) is
// the last drawn cell reused; that reuse is the documented wrap policy for
// NClusters exceeding the cell count.
const maxPlacementAttempts = 30

// centroidGrid is the output of centroid placement: the centroid matrix plus
// the intersection index (grid cell per cluster) and the dimension index
// (cell boundaries per dimension) consumed later by the outlier injector.
type centroidGrid struct {
	// centroids is flat row-major, nClusters rows × nDims columns.
	centroids []float64
	// cells[k] is cluster k's grid coordinate, one cell index per dimension.
	cells [][]int
	// boundaries[d] holds the nIntersections+1 cell edges of dimension d.
	boundaries [][]float64
	// cellWidth is the scaled width of one grid cell.
	cellWidth      float64
	nIntersections int
	nDims          int
}

// cellKey encodes a grid coordinate for occupancy lookups.
func cellKey(cell []int) string {
	var b strings.Builder
	for i, c := range cell {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(c))
	}
	return b.String()
}

// placeCentroids lays cluster centers on an nDims-dimensional grid with
// nIntersections cells per dimension. Each dimension spans one unit before
// scaling; the whole grid is scaled by the inverse of the mean compactness,
// so low compactness yields wider, more separated placements. Every cluster
// is assigned a random cell, distinct from previously occupied cells as long
// as the grid has a free one; cells are reused only past capacity (see
// maxPlacementAttempts). The centroid sits at the cell center.
func placeCentroids(nClusters, nDims, nIntersections int, compactness []float64, rng *rand.Rand) *centroidGrid {
	meanCompactness := 0.0
	for _, c := range compactness {
		meanCompactness += c
	}
	meanCompactness /= float64(len(compactness))

	baseWidth := 1.0 / float64(nIntersections)
	cellWidth := baseWidth / meanCompactness

	boundaries := make([][]float64, nDims)
	for d := range boundaries {
		edges := make([]float64, nIntersections+1)
		for i := range edges {
			edges[i] = float64(i) * cellWidth
		}
		boundaries[d] = edges
	}

	occupied := make(map[string]bool, nClusters)
	cells := make([][]int, nClusters)
	centroids := make([]float64, nClusters*nDims)
	totalCells, enumerable := countCells(nIntersections, nDims)

	for k := 0; k < nClusters; k++ {
		cell := make([]int, nDims)
		key := ""
		for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
			for d := range cell {
				cell[d] = rng.IntN(nIntersections)
			}
			if key = cellKey(cell); !occupied[key] {
				break
			}
		}
		if occupied[key] && enumerable && len(occupied) < totalCells {
			free := freeCells(nIntersections, nDims, totalCells, occupied)
			copy(cell, free[rng.IntN(len(free))])
			key = cellKey(cell)
		}
		occupied[key] = true
		cells[k] = cell

		for d, c := range cell {
			centroids[k*nDims+d] = (float64(c) + 0.5) * cellWidth
		}
	}

	return &centroidGrid{
		centroids:      centroids,
		cells:          cells,
		boundaries:     boundaries,
		cellWidth:      cellWidth,
		nIntersections: nIntersections,
		nDims:          nDims,
	}
}

// centroid returns cluster k's center as a slice view into the matrix.
func (g *centroidGrid) centroid(k int) []float64 {
	return g.centroids[k*g.nDims : (k+1)*g.nDims]
}
