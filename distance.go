package mdcgen

import "math"

// DistanceMetric measures the distance between two points of equal
// dimensionality. It is used for the per-cluster distance-to-centroid
// statistics, the inter-centroid distance matrix, and the Silhouette score.
type DistanceMetric interface {
	Distance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 {
	var maxVal float64
	for i := range a {
		if v := math.Abs(a[i] - b[i]); v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// ComputePairwiseDistances computes the full n×n distance matrix for flat
// row-major data with n rows and dims columns. Returns a flat []float64 of
// length n×n, symmetric with zero diagonal.
func ComputePairwiseDistances(data []float64, n, dims int, metric DistanceMetric) []float64 {
	result := make([]float64, n*n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := metric.Distance(data[i*dims:(i+1)*dims], data[j*dims:(j+1)*dims])
			result[i*n+j] = d
			result[j*n+i] = d
		}
	}

	return result
}

// ComputePairwiseDistancesParallel computes the full n×n distance matrix
// using multiple goroutines. numWorkers controls the degree of parallelism;
// if <= 1, it falls back to single-threaded ComputePairwiseDistances.
//
// The result is bitwise identical to ComputePairwiseDistances.
func ComputePairwiseDistancesParallel(data []float64, n, dims int, metric DistanceMetric, numWorkers int) []float64 {
	if numWorkers <= 1 || n <= 1 {
		return ComputePairwiseDistances(data, n, dims, metric)
	}

	result := make([]float64, n*n)

	// Split rows across workers. Each worker handles a contiguous range of
	// "source" rows and computes dist(i,j) for all j > i in that range.
	// Since row ranges don't overlap, no synchronization is needed for writes.
	parallelRanges(n, numWorkers, func(start, end int) {
		for i := start; i < end; i++ {
			for j := i + 1; j < n; j++ {
				d := metric.Distance(data[i*dims:(i+1)*dims], data[j*dims:(j+1)*dims])
				result[i*n+j] = d
				result[j*n+i] = d
			}
		}
	})

	return result
}

// distancesToPoint computes the distance from each row of flat row-major data
// to a single reference point.
func distancesToPoint(data []float64, n, dims int, point []float64, metric DistanceMetric) []float64 {
	result := make([]float64, n)
	for i := 0; i < n; i++ {
		result[i] = metric.Distance(data[i*dims:(i+1)*dims], point)
	}
	return result
}
