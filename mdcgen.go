package mdcgen

import (
	"fmt"
	"math/rand/v2"
	"runtime"
)

// ClusterMode selects how a cluster's point cloud is synthesized.
type ClusterMode int

const (
	// ModeAuto resolves to ModeMultivariate or ModeRadial by an unbiased
	// coin flip, once per cluster, at the start of that cluster's pipeline.
	ModeAuto ClusterMode = iota
	// ModeMultivariate samples each dimension independently from its own
	// distribution.
	ModeMultivariate
	// ModeRadial samples distances from the centroid and projects them onto
	// random unit directions.
	ModeRadial
)

// Config controls dataset generation.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// NDatapoints is the total number of cluster points (outliers excluded).
	// If PointsPerCluster is set, the two must agree; if PointsPerCluster is
	// empty, NDatapoints is split evenly across clusters with the remainder
	// assigned to the leading clusters.
	NDatapoints int

	// NDimensions is the dimensionality of the generated points. Must be >= 1.
	NDimensions int

	// NClusters is the number of clusters to generate. Must be >= 1.
	NClusters int

	// NOutliers is the number of outlier points placed outside the grid
	// cells occupied by clusters. Outlier rows carry label 0.
	NOutliers int

	// PointsPerCluster gives the point count of each cluster. Length must be
	// NClusters when set. Each entry must be >= 1.
	PointsPerCluster []int

	// Distributions assigns a distribution family per (dimension, cluster)
	// pair: Distributions[d][k] drives dimension d of cluster k in
	// multivariate mode, and Distributions[0][k] drives the radius in radial
	// mode. DistAuto entries are resolved uniformly at random from the
	// available set, once per cluster. Empty means all-auto.
	Distributions [][]DistributionID

	// Mode selects multivariate or radial synthesis per cluster.
	// Empty means ModeAuto for every cluster.
	Mode []ClusterMode

	// Compactness controls cluster spread: each cluster's cloud is scaled by
	// Compactness[k] times the grid cell width. Entries must be in (0, 1].
	// Empty means 0.1 for every cluster.
	Compactness []float64

	// Correlation is the correlation degree applied to each cluster's cloud.
	// Zero means no correlation transform. Degrees whose correlation matrix
	// is not positive definite are skipped silently (counted on the Result).
	Correlation []float64

	// Rotation applies a random orthonormal rotation to each flagged
	// cluster's cloud. Rotation preserves intra-cluster pairwise distances.
	Rotation []bool

	// NIntersections is the number of grid cells per dimension used for
	// centroid placement. Must be >= 1. Default: 10.
	NIntersections int

	// Noise configures noise injection. Nil means no noise.
	Noise *NoiseConfig

	// AvailableDistributions restricts the set auto-selection draws from.
	// Empty means every catalog entry (built-ins plus user distributions).
	AvailableDistributions []DistributionID

	// UserDistributions appends custom samplers to the catalog. They are
	// addressable by the IDs following the built-in range, in order.
	UserDistributions []Sampler

	// GIndices enables the overlap G-index computation on the Result.
	GIndices bool

	// Silhouette enables the mean Silhouette computation on the Result.
	// Requires NClusters >= 2 to be meaningful (otherwise the score is 0).
	Silhouette bool

	// Metric is the distance function used for cluster statistics, the
	// inter-centroid matrix, and the Silhouette score.
	// Default: EuclideanMetric.
	Metric DistanceMetric

	// Seed initializes the master random stream. Identical Config and Seed
	// produce bit-identical output.
	Seed uint64

	// Workers controls the number of goroutines for per-cluster synthesis
	// and the Silhouette distance matrix. Output does not depend on this
	// setting. 0 means runtime.NumCPU().
	Workers int
}

// ClusterStats summarizes one cluster's distance-to-centroid distribution.
type ClusterStats struct {
	Median float64
	Mean   float64
	Std    float64
}

// Result contains the generated dataset.
type Result struct {
	// Points holds one row per generated point: cluster blocks in cluster
	// order, then outliers. All rows share one backing array.
	Points [][]float64

	// Labels assigns each row its cluster ID (1..NClusters) or 0 for
	// outliers. len(Labels) == len(Points).
	Labels []int

	// Centroids holds the placed cluster centers, one row per cluster.
	Centroids [][]float64

	// Stats holds each cluster's distance-to-centroid statistics.
	Stats []ClusterStats

	// CentroidDistances is the flat NClusters×NClusters inter-centroid
	// distance matrix in row-major order, symmetric with zero diagonal.
	CentroidDistances []float64

	// Validity holds the requested separation metrics, or nil if neither
	// GIndices nor Silhouette was enabled.
	Validity *Validity

	// SkippedCorrelations counts clusters whose correlation transform was
	// dropped because the correlation matrix was not positive definite.
	SkippedCorrelations int

	// SkippedRotations counts clusters whose rotation was dropped because
	// orthonormalization did not produce a square matrix of the expected
	// dimensionality.
	SkippedRotations int

	// flat is the backing array of Points, row-major.
	flat []float64
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		NIntersections: 10,
		Metric:         EuclideanMetric{},
	}
}

// seedStreamKey separates the master PCG stream from a caller using the same
// seed value for its own PCG.
const seedStreamKey = 0x9e3779b97f4a7c15

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.NIntersections == 0 {
		cfg.NIntersections = 10
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	if len(cfg.PointsPerCluster) == 0 && cfg.NClusters > 0 && cfg.NDatapoints > 0 {
		base := cfg.NDatapoints / cfg.NClusters
		rem := cfg.NDatapoints % cfg.NClusters
		cfg.PointsPerCluster = make([]int, cfg.NClusters)
		for k := range cfg.PointsPerCluster {
			cfg.PointsPerCluster[k] = base
			if k < rem {
				cfg.PointsPerCluster[k]++
			}
		}
	}
	if cfg.NDatapoints == 0 {
		for _, n := range cfg.PointsPerCluster {
			cfg.NDatapoints += n
		}
	}

	if len(cfg.Compactness) == 0 && cfg.NClusters > 0 {
		cfg.Compactness = make([]float64, cfg.NClusters)
		for k := range cfg.Compactness {
			cfg.Compactness[k] = 0.1
		}
	}
	if len(cfg.Correlation) == 0 && cfg.NClusters > 0 {
		cfg.Correlation = make([]float64, cfg.NClusters)
	}
	if len(cfg.Rotation) == 0 && cfg.NClusters > 0 {
		cfg.Rotation = make([]bool, cfg.NClusters)
	}
	if len(cfg.Mode) == 0 && cfg.NClusters > 0 {
		cfg.Mode = make([]ClusterMode, cfg.NClusters)
	}
	if len(cfg.Distributions) == 0 && cfg.NDimensions > 0 && cfg.NClusters > 0 {
		cfg.Distributions = make([][]DistributionID, cfg.NDimensions)
		for d := range cfg.Distributions {
			cfg.Distributions[d] = make([]DistributionID, cfg.NClusters)
		}
	}
}

// validateConfig checks that cfg fields are well-formed and returns a
// descriptive error if not. Runs after applyDefaults, so per-cluster slices
// are either caller-provided or materialized defaults.
func validateConfig(cfg *Config, cat catalog) error {
	if cfg.NClusters < 1 {
		return fmt.Errorf("mdcgen: NClusters must be >= 1, got %d", cfg.NClusters)
	}
	if cfg.NDimensions < 1 {
		return fmt.Errorf("mdcgen: NDimensions must be >= 1, got %d", cfg.NDimensions)
	}
	if cfg.NOutliers < 0 {
		return fmt.Errorf("mdcgen: NOutliers must be >= 0, got %d", cfg.NOutliers)
	}
	if cfg.NIntersections < 1 {
		return fmt.Errorf("mdcgen: NIntersections must be >= 1, got %d", cfg.NIntersections)
	}
	if len(cfg.PointsPerCluster) != cfg.NClusters {
		return fmt.Errorf("mdcgen: PointsPerCluster length %d does not match NClusters %d (set PointsPerCluster or NDatapoints)",
			len(cfg.PointsPerCluster), cfg.NClusters)
	}
	total := 0
	for k, n := range cfg.PointsPerCluster {
		if n < 1 {
			return fmt.Errorf("mdcgen: PointsPerCluster[%d] must be >= 1, got %d", k, n)
		}
		total += n
	}
	if cfg.NDatapoints != total {
		return fmt.Errorf("mdcgen: NDatapoints %d does not match sum(PointsPerCluster) %d", cfg.NDatapoints, total)
	}
	if len(cfg.Compactness) != cfg.NClusters {
		return fmt.Errorf("mdcgen: Compactness length %d does not match NClusters %d", len(cfg.Compactness), cfg.NClusters)
	}
	for k, c := range cfg.Compactness {
		if c <= 0 || c > 1 {
			return fmt.Errorf("mdcgen: Compactness[%d] must be in (0, 1], got %f", k, c)
		}
	}
	if len(cfg.Correlation) != cfg.NClusters {
		return fmt.Errorf("mdcgen: Correlation length %d does not match NClusters %d", len(cfg.Correlation), cfg.NClusters)
	}
	if len(cfg.Rotation) != cfg.NClusters {
		return fmt.Errorf("mdcgen: Rotation length %d does not match NClusters %d", len(cfg.Rotation), cfg.NClusters)
	}
	if len(cfg.Mode) != cfg.NClusters {
		return fmt.Errorf("mdcgen: Mode length %d does not match NClusters %d", len(cfg.Mode), cfg.NClusters)
	}
	for k, m := range cfg.Mode {
		switch m {
		case ModeAuto, ModeMultivariate, ModeRadial:
		default:
			return fmt.Errorf("mdcgen: invalid Mode[%d] %d", k, m)
		}
	}
	if len(cfg.Distributions) != cfg.NDimensions {
		return fmt.Errorf("mdcgen: Distributions has %d rows, want NDimensions %d", len(cfg.Distributions), cfg.NDimensions)
	}
	for d, row := range cfg.Distributions {
		if len(row) != cfg.NClusters {
			return fmt.Errorf("mdcgen: Distributions[%d] has %d entries, want NClusters %d", d, len(row), cfg.NClusters)
		}
		for k, id := range row {
			if id != DistAuto && !cat.contains(id) {
				return fmt.Errorf("mdcgen: Distributions[%d][%d] references unknown distribution %d", d, k, id)
			}
		}
	}
	for i, id := range cfg.AvailableDistributions {
		if id == DistAuto || !cat.contains(id) {
			return fmt.Errorf("mdcgen: AvailableDistributions[%d] references unknown distribution %d", i, id)
		}
	}
	if err := validateNoise(cfg); err != nil {
		return err
	}
	return nil
}

// Generate synthesizes a labeled dataset from cfg.
//
// The master random stream is consumed in a fixed order: centroid placement,
// one sub-seed pair per cluster (in cluster order), outlier placement, then
// global noise. Each cluster's synthesis draws only from its own sub-stream,
// so the Workers setting never changes the output.
func Generate(cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	cat := newCatalog(cfg.UserDistributions, cfg.AvailableDistributions)
	if err := validateConfig(&cfg, cat); err != nil {
		return nil, err
	}

	master := rand.New(rand.NewPCG(cfg.Seed, seedStreamKey))
	injector := resolveNoise(cfg.Noise)

	grid := placeCentroids(cfg.NClusters, cfg.NDimensions, cfg.NIntersections, cfg.Compactness, master)

	seeds := make([][2]uint64, cfg.NClusters)
	for k := range seeds {
		seeds[k] = [2]uint64{master.Uint64(), master.Uint64()}
	}

	clouds, skippedCorr, skippedRot := generateClusters(&cfg, cat, grid.cellWidth, seeds, injector)

	outliers := placeOutliers(grid, cfg.NOutliers, cfg.NDimensions, master)

	res := assemble(&cfg, grid, clouds, outliers)
	injector.applyToDataset(res.flat, len(res.Labels), cfg.NDimensions, master)

	for k := 0; k < cfg.NClusters; k++ {
		res.SkippedCorrelations += skippedCorr[k]
		res.SkippedRotations += skippedRot[k]
	}

	if cfg.GIndices || cfg.Silhouette {
		res.Validity = computeValidity(&cfg, res)
	}

	return res, nil
}
