package mdcgen

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// applyCorrelation multiplies the cloud by the Cholesky factor of the
// equicorrelation matrix with the given off-diagonal degree, imposing the
// requested pairwise correlation between dimensions. Reports whether the
// transform was applied: a degree whose matrix is not positive definite
// fails factorization and leads to the cloud staying untouched.
func applyCorrelation(cloud []float64, n, dims int, degree float64) bool {
	sym := mat.NewSymDense(dims, nil)
	for i := 0; i < dims; i++ {
		sym.SetSym(i, i, 1)
		for j := i + 1; j < dims; j++ {
			sym.SetSym(i, j, degree)
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(sym) {
		return false
	}

	var lower mat.TriDense
	chol.LTo(&lower)

	points := mat.NewDense(n, dims, cloud)
	var out mat.Dense
	out.Mul(points, lower.T())
	copy(cloud, out.RawMatrix().Data)
	return true
}

// applyRotation rotates the cloud by a random orthonormal matrix obtained
// from the QR factorization of a Gaussian matrix. Reports whether the
// rotation was applied: a Q factor that is not square dims×dims leads to
// the cloud staying untouched. Rotation is an isometry, so intra-cluster
// pairwise distances are preserved.
func applyRotation(cloud []float64, n, dims int, rng *rand.Rand) bool {
	raw := make([]float64, dims*dims)
	for i := range raw {
		raw[i] = rng.NormFloat64()
	}

	var qr mat.QR
	qr.Factorize(mat.NewDense(dims, dims, raw))

	var q mat.Dense
	qr.QTo(&q)
	if r, c := q.Dims(); r != dims || c != dims {
		return false
	}

	points := mat.NewDense(n, dims, cloud)
	var out mat.Dense
	out.Mul(points, &q)
	copy(cloud, out.RawMatrix().Data)
	return true
}
