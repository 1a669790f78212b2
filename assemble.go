package mdcgen

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// assemble concatenates the per-cluster clouds (translated by their
// centroids) and the outlier block into the final dataset, builds the label
// vector, and computes the per-cluster distance statistics plus the
// inter-centroid distance matrix.
//
// The dataset buffer is pre-sized: row counts are known up front, so each
// cluster and the outlier block are written at fixed offsets.
func assemble(cfg *Config, grid *centroidGrid, clouds [][]float64, outliers []float64) *Result {
	dims := cfg.NDimensions
	rows := cfg.NDatapoints + cfg.NOutliers

	flat := make([]float64, rows*dims)
	labels := make([]int, rows)
	points := make([][]float64, rows)
	for i := range points {
		points[i] = flat[i*dims : (i+1)*dims : (i+1)*dims]
	}

	offset := 0
	for k, cloud := range clouds {
		center := grid.centroid(k)
		n := cfg.PointsPerCluster[k]
		for i := 0; i < n; i++ {
			row := points[offset+i]
			for d := 0; d < dims; d++ {
				row[d] = cloud[i*dims+d] + center[d]
			}
			labels[offset+i] = k + 1
		}
		offset += n
	}
	copy(flat[offset*dims:], outliers)

	stats := make([]ClusterStats, cfg.NClusters)
	offset = 0
	for k := range stats {
		n := cfg.PointsPerCluster[k]
		block := flat[offset*dims : (offset+n)*dims]
		stats[k] = clusterStats(block, n, dims, grid.centroid(k), cfg.Metric)
		offset += n
	}

	centroids := make([][]float64, cfg.NClusters)
	for k := range centroids {
		centroids[k] = grid.centroid(k)
	}

	return &Result{
		Points:            points,
		Labels:            labels,
		Centroids:         centroids,
		Stats:             stats,
		CentroidDistances: ComputePairwiseDistances(grid.centroids, cfg.NClusters, dims, cfg.Metric),
		flat:              flat,
	}
}

// clusterStats computes the median, mean, and standard deviation of the
// distances from a placed cluster's points to its centroid.
func clusterStats(block []float64, n, dims int, center []float64, metric DistanceMetric) ClusterStats {
	dists := distancesToPoint(block, n, dims, center, metric)

	mean := stat.Mean(dists, nil)
	std := 0.0
	if n > 1 {
		std = stat.StdDev(dists, nil)
	}

	sort.Float64s(dists)
	median := stat.Quantile(0.5, stat.Empirical, dists, nil)

	return ClusterStats{Median: median, Mean: mean, Std: std}
}
