package mdcgen

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// buildCluster runs one cluster's pipeline: mode and distribution
// resolution, point synthesis, correlation, rotation, and per-cluster noise.
// Every draw comes from the cluster's own sub-stream, seeded from the master
// stream, so clusters can be generated in parallel without changing output.
//
// The returned cloud is flat row-major with PointsPerCluster[k] rows and
// NDimensions columns, centered at the origin; translation to the true
// centroid happens in assembly.
func buildCluster(cfg *Config, cat catalog, cellWidth float64, k int, seed [2]uint64, injector noiseInjector) (cloud []float64, skippedCorr, skippedRot int) {
	rng := rand.New(rand.NewPCG(seed[0], seed[1]))

	n := cfg.PointsPerCluster[k]
	dims := cfg.NDimensions
	scale := cfg.Compactness[k] * cellWidth

	mode := cfg.Mode[k]
	if mode == ModeAuto {
		if rng.IntN(2) == 0 {
			mode = ModeMultivariate
		} else {
			mode = ModeRadial
		}
	}

	switch mode {
	case ModeMultivariate:
		cloud = synthesizeMultivariate(cfg, cat, k, n, dims, scale, rng)
	default:
		cloud = synthesizeRadial(cfg, cat, k, n, dims, scale, rng)
	}

	if cfg.Correlation[k] != 0 {
		if !applyCorrelation(cloud, n, dims, cfg.Correlation[k]) {
			skippedCorr = 1
		}
	}
	if cfg.Rotation[k] {
		if !applyRotation(cloud, n, dims, rng) {
			skippedRot = 1
		}
	}

	injector.applyToCluster(cloud, n, dims, k, rng)
	return cloud, skippedCorr, skippedRot
}

// synthesizeMultivariate samples each dimension independently. Unassigned
// (DistAuto) dimensions resolve their family once, here; each sampled column
// is re-centered to zero mean and scaled by the cluster's compactness.
func synthesizeMultivariate(cfg *Config, cat catalog, k, n, dims int, scale float64, rng *rand.Rand) []float64 {
	cloud := make([]float64, n*dims)
	col := make([]float64, n)

	for d := 0; d < dims; d++ {
		sampler := cat.resolve(cfg.Distributions[d][k], rng)
		sampler.Sample(rng, col)

		floats.AddConst(-stat.Mean(col, nil), col)
		floats.Scale(scale, col)

		for i := 0; i < n; i++ {
			cloud[i*dims+d] = col[i]
		}
	}

	return cloud
}

// synthesizeRadial samples distances from the centroid using a single
// distribution shared across dimensions (the cluster's first-dimension
// assignment), then projects each radius onto a random unit direction.
func synthesizeRadial(cfg *Config, cat catalog, k, n, dims int, scale float64, rng *rand.Rand) []float64 {
	sampler := cat.resolve(cfg.Distributions[0][k], rng)

	radii := make([]float64, n)
	sampler.Sample(rng, radii)

	cloud := make([]float64, n*dims)
	for i := 0; i < n; i++ {
		row := cloud[i*dims : (i+1)*dims]
		randomUnitDirection(row, rng)
		floats.Scale(math.Abs(radii[i])*scale, row)
	}

	return cloud
}

// randomUnitDirection fills dst with a uniformly distributed direction on
// the unit sphere (normalized Gaussian coordinates).
func randomUnitDirection(dst []float64, rng *rand.Rand) {
	var norm float64
	for {
		for i := range dst {
			dst[i] = rng.NormFloat64()
		}
		norm = math.Sqrt(floats.Dot(dst, dst))
		if norm > 0 {
			break
		}
	}
	floats.Scale(1/norm, dst)
}
