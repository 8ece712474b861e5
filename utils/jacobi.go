package utils

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// JacobiGQ returns the N+1 point Gauss-Jacobi rule for the weight
// (1-x)^alpha (1+x)^beta on [-1,1]. The nodes are the eigenvalues of the
// symmetric tridiagonal Jacobi matrix, the weights follow from the first
// components of its eigenvectors.
func JacobiGQ(alpha, beta float64, N int) (x, w []float64) {
	if N == 0 {
		x = []float64{-(alpha - beta) / (alpha + beta + 2.)}
		w = []float64{gamma0(alpha, beta)}
		return
	}
	h1 := make([]float64, N+1)
	for i := 0; i < N+1; i++ {
		h1[i] = 2*float64(i) + alpha + beta
	}
	JJ := mat.NewSymDense(N+1, nil)
	// main diagonal: -(alpha^2-beta^2)./(h1+2)./h1
	fac := -(alpha*alpha - beta*beta)
	for i := 0; i < N+1; i++ {
		val := h1[i]
		JJ.SetSym(i, i, fac/(val*(val+2.)))
	}
	// Handle division by zero
	eps := 1.e-16
	if alpha+beta < 10*eps {
		JJ.SetSym(0, 0, 0.)
	}
	var ip1 float64
	for i := 0; i < N; i++ {
		ip1 = float64(i + 1)
		val := h1[i]
		d1 := 2. / (val + 2.)
		d1 *= math.Sqrt(ip1 * (ip1 + alpha + beta) * (ip1 + alpha) * (ip1 + beta) / ((val + 1.) * (val + 3.)))
		JJ.SetSym(i, i+1, d1)
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	x = eig.Values(nil)
	VVr := mat.NewDense(N+1, N+1, nil)
	eig.VectorsTo(VVr)
	w = make([]float64, N+1)
	g0 := gamma0(alpha, beta)
	for i, val := range VVr.RawRowView(0) {
		w[i] = POW(val, 2) * g0
	}
	return
}

// JacobiGL returns the N+1 Gauss-Lobatto-Jacobi nodes on [-1,1], the zeros
// of (1-x^2) P'_N^{alpha,beta}(x).
func JacobiGL(alpha, beta float64, N int) (x []float64) {
	if N == 0 {
		return []float64{0.}
	}
	x = make([]float64, N+1)
	x[0], x[N] = -1, 1
	if N == 1 {
		return
	}
	xint, _ := JacobiGQ(alpha+1, beta+1, N-2)
	copy(x[1:N], xint)
	return
}

func gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	a1 := alpha + 1.
	b1 := beta + 1.
	return math.Gamma(a1) * math.Gamma(b1) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}
