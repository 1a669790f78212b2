package mdcgen

import "math/rand/v2"

// enumerableCellLimit caps how many grid cells the injector will enumerate
// to find unoccupied ones. Larger grids are rejection-sampled instead.
const enumerableCellLimit = 1 << 20

// maxOutlierAttempts bounds rejection sampling per outlier before falling
// back to out-of-grid placement.
const maxOutlierAttempts = 100

// placeOutliers produces nOutliers points inside grid cells not occupied by
// any cluster, uniformly positioned within their cell. Small grids pick
// uniformly among enumerated free cells; large grids rejection-sample, where
// a collision with an occupied cell is vanishingly rare. If no unoccupied
// cell exists, every outlier is placed beyond the grid's outer boundary
// instead, so the injector never fails.
//
// Returns a flat row-major matrix with nOutliers rows and dims columns.
func placeOutliers(grid *centroidGrid, nOutliers, dims int, rng *rand.Rand) []float64 {
	if nOutliers == 0 {
		return nil
	}

	occupied := make(map[string]bool, len(grid.cells))
	for _, cell := range grid.cells {
		occupied[cellKey(cell)] = true
	}

	totalCells, enumerable := countCells(grid.nIntersections, dims)
	points := make([]float64, nOutliers*dims)
	cell := make([]int, dims)

	if enumerable && len(occupied) >= totalCells {
		// Every cell is taken: place all outliers past the outer boundary.
		for i := 0; i < nOutliers; i++ {
			placeBeyondGrid(points[i*dims:(i+1)*dims], grid, rng)
		}
		return points
	}

	var free [][]int
	if enumerable {
		free = freeCells(grid.nIntersections, dims, totalCells, occupied)
	}

	for i := 0; i < nOutliers; i++ {
		row := points[i*dims : (i+1)*dims]

		if free != nil {
			copy(cell, free[rng.IntN(len(free))])
			placeWithinCell(row, grid, cell, rng)
			continue
		}

		found := false
		for attempt := 0; attempt < maxOutlierAttempts; attempt++ {
			for d := range cell {
				cell[d] = rng.IntN(grid.nIntersections)
			}
			if !occupied[cellKey(cell)] {
				found = true
				break
			}
		}
		if found {
			placeWithinCell(row, grid, cell, rng)
		} else {
			placeBeyondGrid(row, grid, rng)
		}
	}

	return points
}

// countCells computes nIntersections^dims, reporting false once the count
// exceeds enumerableCellLimit (avoids overflow on high dimensionality).
func countCells(nIntersections, dims int) (int, bool) {
	total := 1
	for d := 0; d < dims; d++ {
		total *= nIntersections
		if total > enumerableCellLimit {
			return 0, false
		}
	}
	return total, true
}

// freeCells enumerates unoccupied grid coordinates in lexicographic order.
func freeCells(nIntersections, dims, totalCells int, occupied map[string]bool) [][]int {
	free := make([][]int, 0, totalCells-len(occupied))
	cell := make([]int, dims)
	for idx := 0; idx < totalCells; idx++ {
		rem := idx
		for d := dims - 1; d >= 0; d-- {
			cell[d] = rem % nIntersections
			rem /= nIntersections
		}
		if !occupied[cellKey(cell)] {
			free = append(free, append([]int(nil), cell...))
		}
	}
	return free
}

// placeWithinCell positions dst uniformly inside the given grid cell, using
// the dimension index's cell boundaries.
func placeWithinCell(dst []float64, grid *centroidGrid, cell []int, rng *rand.Rand) {
	for d := range dst {
		lo := grid.boundaries[d][cell[d]]
		hi := grid.boundaries[d][cell[d]+1]
		dst[d] = lo + rng.Float64()*(hi-lo)
	}
}

// placeBeyondGrid positions dst outside the grid's outer boundary, between
// one and two cell widths past the last edge of each dimension.
func placeBeyondGrid(dst []float64, grid *centroidGrid, rng *rand.Rand) {
	for d := range dst {
		outer := grid.boundaries[d][grid.nIntersections]
		dst[d] = outer + (1+rng.Float64())*grid.cellWidth
	}
}
