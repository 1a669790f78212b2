package mdcgen

import (
	"math"
	"testing"
)

func TestWorstOverlap_HandComputed(t *testing.T) {
	stats := []ClusterStats{
		{Mean: 1, Std: 0.5, Median: 0.9},
		{Mean: 2, Std: 0.5, Median: 1.8},
	}
	centroidDist := []float64{0, 10, 10, 0}

	// Strict radius of cluster 0 is 1.5, of cluster 1 is 2.5: (1.5+2.5)/10.
	got := worstOverlap(stats, centroidDist, 0, 1.5, func(o ClusterStats) float64 { return o.Mean + o.Std })
	if !almostEqual(got, 0.4, floatTol) {
		t.Errorf("strict overlap = %v, want 0.4", got)
	}

	// Relaxed: (1+2)/10.
	got = worstOverlap(stats, centroidDist, 0, 1, func(o ClusterStats) float64 { return o.Mean })
	if !almostEqual(got, 0.3, floatTol) {
		t.Errorf("relaxed overlap = %v, want 0.3", got)
	}
}

func TestWorstOverlap_SingleCluster(t *testing.T) {
	stats := []ClusterStats{{Mean: 1, Std: 1, Median: 1}}
	got := worstOverlap(stats, []float64{0}, 0, 2, func(o ClusterStats) float64 { return o.Mean })
	if got != 0 {
		t.Errorf("single cluster overlap = %v, want 0", got)
	}
}

func TestWorstOverlap_CoincidentCentroids(t *testing.T) {
	stats := []ClusterStats{{Mean: 1}, {Mean: 1}}
	centroidDist := []float64{0, 0, 0, 0}
	got := worstOverlap(stats, centroidDist, 0, 1, func(o ClusterStats) float64 { return o.Mean })
	if !math.IsInf(got, 1) {
		t.Errorf("coincident centroids overlap = %v, want +Inf", got)
	}
}

func TestWeightedMean(t *testing.T) {
	got := weightedMean([]float64{1, 4}, []int{3, 1})
	if !almostEqual(got, 1.75, floatTol) {
		t.Errorf("weighted mean = %v, want 1.75", got)
	}
}

// silhouetteFixture builds two tight, well-separated 1-D clusters with one
// far outlier row.
func silhouetteFixture() ([]float64, []int) {
	flat := []float64{0, 0.1, 0.2, 10, 10.1, 10.2, 500}
	labels := []int{1, 1, 1, 2, 2, 2, 0}
	return flat, labels
}

func TestSilhouette_WellSeparatedClusters(t *testing.T) {
	flat, labels := silhouetteFixture()
	s := meanSilhouette(flat, labels, 1, 2, EuclideanMetric{}, 1)
	if s < 0.9 {
		t.Errorf("silhouette = %v, want close to 1 for tight separated clusters", s)
	}
}

func TestSilhouette_IgnoresOutliers(t *testing.T) {
	flat, labels := silhouetteFixture()
	with := meanSilhouette(flat, labels, 1, 2, EuclideanMetric{}, 1)

	// Dropping the outlier row entirely must not change the score.
	without := meanSilhouette(flat[:6], labels[:6], 1, 2, EuclideanMetric{}, 1)
	if !almostEqual(with, without, floatTol) {
		t.Errorf("outlier row affected silhouette: %v vs %v", with, without)
	}
}

func TestClusterRowsOnly_FiltersOutlierRows(t *testing.T) {
	flat := []float64{1, 2, 3, 4, 5, 6}
	labels := []int{1, 0, 2}

	subFlat, subLabels := clusterRowsOnly(flat, labels, 2)
	wantFlat := []float64{1, 2, 5, 6}
	wantLabels := []int{1, 2}
	if len(subFlat) != 4 || len(subLabels) != 2 {
		t.Fatalf("filtered sizes = %d, %d; want 4, 2", len(subFlat), len(subLabels))
	}
	for i := range wantFlat {
		if subFlat[i] != wantFlat[i] {
			t.Errorf("flat[%d] = %v, want %v", i, subFlat[i], wantFlat[i])
		}
	}
	for i := range wantLabels {
		if subLabels[i] != wantLabels[i] {
			t.Errorf("labels[%d] = %d, want %d", i, subLabels[i], wantLabels[i])
		}
	}
}

func TestClusterRowsOnly_NoOutliersPassesThrough(t *testing.T) {
	flat := []float64{1, 2, 3, 4}
	labels := []int{1, 2}

	subFlat, subLabels := clusterRowsOnly(flat, labels, 2)
	if &subFlat[0] != &flat[0] || &subLabels[0] != &labels[0] {
		t.Error("expected inputs returned unchanged when no outlier rows exist")
	}
}

func TestSilhouette_SingleClusterIsZero(t *testing.T) {
	flat := []float64{0, 1, 2}
	labels := []int{1, 1, 1}
	if s := meanSilhouette(flat, labels, 1, 1, EuclideanMetric{}, 1); s != 0 {
		t.Errorf("silhouette = %v, want 0 for a single cluster", s)
	}
}

func TestSilhouette_SingletonClusterScoresZero(t *testing.T) {
	flat := []float64{0, 0.1, 5}
	labels := []int{1, 1, 2}
	s := meanSilhouette(flat, labels, 1, 2, EuclideanMetric{}, 1)

	// Points 0 and 1 score well; the singleton contributes 0 to the mean.
	if s <= 0 || s >= 1 {
		t.Errorf("silhouette = %v, want in (0, 1)", s)
	}
}

func TestComputeValidity_OnlyRequestedMetrics(t *testing.T) {
	cfg, res := assembleFixture()
	cfg.GIndices = true
	cfg.Silhouette = false
	cfg.Workers = 1

	v := computeValidity(cfg, res)
	if len(v.ClusterStrict) != 2 || len(v.ClusterRelaxed) != 2 || len(v.ClusterMin) != 2 {
		t.Fatalf("expected per-cluster indices of length 2, got %+v", v)
	}
	if v.Silhouette != 0 {
		t.Errorf("unrequested silhouette = %v, want 0", v.Silhouette)
	}
	if v.GStrict <= 0 {
		t.Errorf("GStrict = %v, want > 0 for adjacent clusters", v.GStrict)
	}
}
