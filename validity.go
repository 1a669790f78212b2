package mdcgen

import "math"

// Validity holds the optional cluster-separation metrics. Fields for a
// metric that was not requested stay at their zero values.
type Validity struct {
	// Silhouette is the mean silhouette coefficient over all cluster points
	// (outlier rows excluded), in [-1, 1]. Higher means better separated.
	Silhouette float64

	// GStrict, GRelaxed, and GMin are the global overlap indices: the
	// point-count-weighted means of the per-cluster values below. Values
	// approaching or exceeding 1 indicate touching or overlapping clusters.
	GStrict  float64
	GRelaxed float64
	GMin     float64

	// ClusterStrict, ClusterRelaxed, and ClusterMin hold each cluster's
	// worst overlap ratio against any other cluster, using mean+std, mean,
	// and median distance-to-centroid as the cluster radius respectively.
	ClusterStrict  []float64
	ClusterRelaxed []float64
	ClusterMin     []float64
}

// computeValidity evaluates the requested metrics over the finalized dataset
// and the statistics computed during assembly.
func computeValidity(cfg *Config, res *Result) *Validity {
	v := &Validity{}

	if cfg.GIndices {
		strict := make([]float64, cfg.NClusters)
		relaxed := make([]float64, cfg.NClusters)
		minimum := make([]float64, cfg.NClusters)
		for k, s := range res.Stats {
			strict[k] = worstOverlap(res.Stats, res.CentroidDistances, k, s.Mean+s.Std, func(o ClusterStats) float64 { return o.Mean + o.Std })
			relaxed[k] = worstOverlap(res.Stats, res.CentroidDistances, k, s.Mean, func(o ClusterStats) float64 { return o.Mean })
			minimum[k] = worstOverlap(res.Stats, res.CentroidDistances, k, s.Median, func(o ClusterStats) float64 { return o.Median })
		}
		v.ClusterStrict = strict
		v.ClusterRelaxed = relaxed
		v.ClusterMin = minimum
		v.GStrict = weightedMean(strict, cfg.PointsPerCluster)
		v.GRelaxed = weightedMean(relaxed, cfg.PointsPerCluster)
		v.GMin = weightedMean(minimum, cfg.PointsPerCluster)
	}

	if cfg.Silhouette {
		v.Silhouette = meanSilhouette(res.flat, res.Labels, cfg.NDimensions, cfg.NClusters, cfg.Metric, cfg.Workers)
	}

	return v
}

// worstOverlap returns cluster k's largest overlap ratio against any other
// cluster: (radius_k + radius_j) / centroidDistance(k, j). A single cluster
// has no neighbor and scores 0; coincident centroids score +Inf.
func worstOverlap(stats []ClusterStats, centroidDist []float64, k int, radius float64, other func(ClusterStats) float64) float64 {
	nClusters := len(stats)
	worst := 0.0
	for j := 0; j < nClusters; j++ {
		if j == k {
			continue
		}
		d := centroidDist[k*nClusters+j]
		var ratio float64
		if d == 0 {
			ratio = math.Inf(1)
		} else {
			ratio = (radius + other(stats[j])) / d
		}
		if ratio > worst {
			worst = ratio
		}
	}
	return worst
}

// weightedMean averages per-cluster values weighted by cluster point counts.
func weightedMean(values []float64, weights []int) float64 {
	var sum, total float64
	for k, v := range values {
		w := float64(weights[k])
		sum += v * w
		total += w
	}
	return sum / total
}

// meanSilhouette computes the mean silhouette coefficient over all rows with
// a positive label. Outlier rows (label 0) are excluded both as scored
// points and as neighbor clusters; singleton clusters score 0. Returns 0
// when fewer than two clusters exist.
func meanSilhouette(flat []float64, labels []int, dims, nClusters int, metric DistanceMetric, workers int) float64 {
	if nClusters < 2 {
		return 0
	}

	// Outlier rows never contribute a distance, so drop them before the
	// O(rows²) matrix rather than skipping them inside it.
	flat, labels = clusterRowsOnly(flat, labels, dims)
	rows := len(labels)
	if rows == 0 {
		return 0
	}

	dist := ComputePairwiseDistancesParallel(flat, rows, dims, metric, workers)

	sizes := make([]int, nClusters+1)
	for _, l := range labels {
		sizes[l]++
	}

	var sum float64
	sumTo := make([]float64, nClusters+1)

	for i := 0; i < rows; i++ {
		li := labels[i]
		if sizes[li] < 2 {
			continue // singleton: silhouette 0
		}

		for c := 1; c <= nClusters; c++ {
			sumTo[c] = 0
		}
		for j := 0; j < rows; j++ {
			if j != i {
				sumTo[labels[j]] += dist[i*rows+j]
			}
		}

		a := sumTo[li] / float64(sizes[li]-1)
		b := math.Inf(1)
		for c := 1; c <= nClusters; c++ {
			if c == li || sizes[c] == 0 {
				continue
			}
			if m := sumTo[c] / float64(sizes[c]); m < b {
				b = m
			}
		}
		if math.IsInf(b, 1) {
			continue // no other non-empty cluster
		}

		if m := math.Max(a, b); m > 0 {
			sum += (b - a) / m
		}
	}

	return sum / float64(rows)
}

// clusterRowsOnly filters out label-0 rows, preserving row order. Returns
// the inputs unchanged when there are no outlier rows.
func clusterRowsOnly(flat []float64, labels []int, dims int) ([]float64, []int) {
	n := 0
	for _, l := range labels {
		if l != 0 {
			n++
		}
	}
	if n == len(labels) {
		return flat, labels
	}

	subFlat := make([]float64, 0, n*dims)
	subLabels := make([]int, 0, n)
	for i, l := range labels {
		if l == 0 {
			continue
		}
		subFlat = append(subFlat, flat[i*dims:(i+1)*dims]...)
		subLabels = append(subLabels, l)
	}
	return subFlat, subLabels
}
