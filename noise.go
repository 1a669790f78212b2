package mdcgen

import (
	"fmt"
	"math/rand/v2"
)

// NoiseType selects how noise targets are specified.
type NoiseType string

const (
	// NoiseMatrix targets (dimension, cluster) pairs: each positive entry of
	// NoiseConfig.Matrix overwrites one column of one cluster's cloud with
	// uniform [0,1] samples, before the cloud is translated to its centroid.
	NoiseMatrix NoiseType = "matrix"
	// NoiseArray targets whole dataset columns: each positive entry of
	// NoiseConfig.Dims overwrites that column across every assembled row,
	// outliers included.
	NoiseArray NoiseType = "array"
)

// NoiseConfig specifies noise injection. Exactly one of Matrix or Dims is
// consulted, selected by Type. Target dimension indices are 1-based; zero or
// negative entries mean "no noise for this slot" and are skipped.
type NoiseConfig struct {
	Type NoiseType

	// Matrix is NDimensions × NClusters: Matrix[d][k] names the 1-based
	// target dimension overwritten in cluster k. Used when Type is NoiseMatrix.
	Matrix [][]int

	// Dims is a flat list of 1-based target dimensions overwritten across
	// the whole dataset. Used when Type is NoiseArray.
	Dims []int
}

// noiseInjector is the resolved noise variant. Exactly one of the two
// methods does work; the other is a no-op.
type noiseInjector interface {
	applyToCluster(cloud []float64, n, dims, cluster int, rng *rand.Rand)
	applyToDataset(data []float64, rows, dims int, rng *rand.Rand)
}

type noNoise struct{}

func (noNoise) applyToCluster([]float64, int, int, int, *rand.Rand) {}
func (noNoise) applyToDataset([]float64, int, int, *rand.Rand)      {}

// matrixNoise implements the per-cluster variant.
type matrixNoise struct {
	matrix [][]int
}

func (m matrixNoise) applyToCluster(cloud []float64, n, dims, cluster int, rng *rand.Rand) {
	for d := 0; d < dims; d++ {
		target := m.matrix[d][cluster]
		if target <= 0 {
			continue
		}
		overwriteColumn(cloud, n, dims, target-1, rng)
	}
}

func (matrixNoise) applyToDataset([]float64, int, int, *rand.Rand) {}

// arrayNoise implements the global variant.
type arrayNoise struct {
	dims []int
}

func (arrayNoise) applyToCluster([]float64, int, int, int, *rand.Rand) {}

func (a arrayNoise) applyToDataset(data []float64, rows, dims int, rng *rand.Rand) {
	for _, target := range a.dims {
		if target <= 0 {
			continue
		}
		overwriteColumn(data, rows, dims, target-1, rng)
	}
}

// overwriteColumn replaces column col of flat row-major data with fresh
// uniform [0,1) samples.
func overwriteColumn(data []float64, rows, dims, col int, rng *rand.Rand) {
	for i := 0; i < rows; i++ {
		data[i*dims+col] = rng.Float64()
	}
}

// resolveNoise picks the injector variant once, before generation starts.
func resolveNoise(cfg *NoiseConfig) noiseInjector {
	if cfg == nil {
		return noNoise{}
	}
	switch cfg.Type {
	case NoiseMatrix:
		return matrixNoise{matrix: cfg.Matrix}
	case NoiseArray:
		return arrayNoise{dims: cfg.Dims}
	default:
		return noNoise{}
	}
}

// validateNoise checks the noise specification shape against the counts.
func validateNoise(cfg *Config) error {
	nc := cfg.Noise
	if nc == nil {
		return nil
	}
	switch nc.Type {
	case NoiseMatrix:
		if len(nc.Matrix) != cfg.NDimensions {
			return fmt.Errorf("mdcgen: Noise.Matrix has %d rows, want NDimensions %d", len(nc.Matrix), cfg.NDimensions)
		}
		for d, row := range nc.Matrix {
			if len(row) != cfg.NClusters {
				return fmt.Errorf("mdcgen: Noise.Matrix[%d] has %d entries, want NClusters %d", d, len(row), cfg.NClusters)
			}
			for k, target := range row {
				if target > cfg.NDimensions {
					return fmt.Errorf("mdcgen: Noise.Matrix[%d][%d] targets dimension %d, only %d available", d, k, target, cfg.NDimensions)
				}
			}
		}
	case NoiseArray:
		for i, target := range nc.Dims {
			if target > cfg.NDimensions {
				return fmt.Errorf("mdcgen: Noise.Dims[%d] targets dimension %d, only %d available", i, target, cfg.NDimensions)
			}
		}
	default:
		return fmt.Errorf("mdcgen: invalid NoiseType %q", nc.Type)
	}
	return nil
}
