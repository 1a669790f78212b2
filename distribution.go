package mdcgen

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws samples from one distribution family. Implementations fill
// dst entirely, one independent draw per element, consuming only the given
// stream. Built-in samplers are parameterized to roughly unit scale so that
// cluster spread is governed by compactness, not by the family chosen.
type Sampler interface {
	Sample(rng *rand.Rand, dst []float64)
}

// SamplerFunc adapts a plain function into a Sampler.
type SamplerFunc func(rng *rand.Rand, dst []float64)

func (f SamplerFunc) Sample(rng *rand.Rand, dst []float64) { f(rng, dst) }

// DistributionID identifies a distribution family in the catalog.
// The zero value DistAuto means "pick uniformly at random from the available
// set", resolved once at the start of a cluster's processing.
type DistributionID int

const (
	DistAuto DistributionID = iota
	DistUniform
	DistNormal
	DistTriangle
	DistGamma
	DistWeibull
	DistLaplace
	DistExponential
	DistLogNormal

	numBuiltinDistributions = int(DistLogNormal)
)

// distuvSampler wraps a distuv distribution constructor so the stream is
// bound per call, not per sampler.
type distuvSampler func(src rand.Source) interface{ Rand() float64 }

func (d distuvSampler) Sample(rng *rand.Rand, dst []float64) {
	dist := d(rng)
	for i := range dst {
		dst[i] = dist.Rand()
	}
}

var builtinSamplers = map[DistributionID]Sampler{
	DistUniform: distuvSampler(func(src rand.Source) interface{ Rand() float64 } {
		return distuv.Uniform{Min: -1, Max: 1, Src: src}
	}),
	DistNormal: distuvSampler(func(src rand.Source) interface{ Rand() float64 } {
		return distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	}),
	DistTriangle: distuvSampler(func(src rand.Source) interface{ Rand() float64 } {
		return distuv.NewTriangle(-1, 1, 0, src)
	}),
	DistGamma: distuvSampler(func(src rand.Source) interface{ Rand() float64 } {
		return distuv.Gamma{Alpha: 2, Beta: 2, Src: src}
	}),
	DistWeibull: distuvSampler(func(src rand.Source) interface{ Rand() float64 } {
		return distuv.Weibull{K: 1.5, Lambda: 1, Src: src}
	}),
	DistLaplace: distuvSampler(func(src rand.Source) interface{ Rand() float64 } {
		return distuv.Laplace{Mu: 0, Scale: 0.7, Src: src}
	}),
	DistExponential: distuvSampler(func(src rand.Source) interface{ Rand() float64 } {
		return distuv.Exponential{Rate: 1, Src: src}
	}),
	DistLogNormal: distuvSampler(func(src rand.Source) interface{ Rand() float64 } {
		return distuv.LogNormal{Mu: 0, Sigma: 0.5, Src: src}
	}),
}

// catalog holds the samplers a generation run can draw from: every built-in
// plus any user-supplied ones, and the subset of IDs auto-selection uses.
type catalog struct {
	samplers  map[DistributionID]Sampler
	available []DistributionID
}

// newCatalog builds the sampler catalog. User samplers receive IDs following
// the built-ins, in order. available restricts auto-selection; if empty, all
// catalog entries are available.
func newCatalog(user []Sampler, available []DistributionID) catalog {
	samplers := make(map[DistributionID]Sampler, len(builtinSamplers)+len(user))
	for id, s := range builtinSamplers {
		samplers[id] = s
	}
	for i, s := range user {
		samplers[DistributionID(numBuiltinDistributions+1+i)] = s
	}

	if len(available) == 0 {
		available = make([]DistributionID, 0, len(samplers))
		for id := DistributionID(1); int(id) <= numBuiltinDistributions+len(user); id++ {
			available = append(available, id)
		}
	}

	return catalog{samplers: samplers, available: available}
}

// resolve maps a configured DistributionID to a concrete sampler, selecting
// uniformly from the available set when id is DistAuto. The selection
// consumes one draw from the stream.
func (c catalog) resolve(id DistributionID, rng *rand.Rand) Sampler {
	if id == DistAuto {
		id = c.available[rng.IntN(len(c.available))]
	}
	return c.samplers[id]
}

// contains reports whether id is a valid catalog entry.
func (c catalog) contains(id DistributionID) bool {
	_, ok := c.samplers[id]
	return ok
}
