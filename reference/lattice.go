package reference

import (
	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/utils"
)

// Point distribution families for lattices on simplices.
const (
	Equispaced = "equispaced"
	GLL        = "gll"
)

// MultiIndexEqual returns the d-tuples of integers with sum isum and every
// entry at least imin, in the order used to number lattice points.
func MultiIndexEqual(d, isum, imin int) (mis [][]int) {
	if d <= 0 {
		return
	}
	imax := isum - (d-1)*imin
	if imax < imin {
		return
	}
	for i := imin; i < imax; i++ {
		for _, a := range MultiIndexEqual(d-1, isum-i, imin) {
			mis = append(mis, append(a, i))
		}
	}
	last := make([]int, d)
	for i := range last {
		last[i] = imin
	}
	last[d-1] = imax
	mis = append(mis, last)
	return
}

// MakeLattice returns the points of the order n lattice on the simplex with
// the given vertices, omitting the interior outermost layers of points. With
// n = 2 and interior = 0 a line gets its vertices and midpoint, with
// interior = 1 it only gets the midpoint.
func MakeLattice(verts [][]float64, n, interior int, variant string) (pts [][]float64, err error) {
	var family func(int) []float64
	switch variant {
	case "", Equispaced:
	case GLL:
		family = gllFamily
	default:
		err = errors.Configf("unknown point variant %q", variant)
		return
	}
	D := len(verts)
	for _, alpha := range MultiIndexEqual(D, n, interior) {
		var bary []float64
		switch {
		case n == 0:
			bary = utils.ConstArray(D, 1./float64(D))
		case family == nil:
			bary = make([]float64, D)
			for i, a := range alpha {
				bary[i] = float64(a) / float64(n)
			}
		default:
			bary = recursiveNodes(D-1, n, alpha, family)
		}
		pt := make([]float64, len(verts[0]))
		for i, b := range bary {
			for j := range pt {
				pt[j] += b * verts[i][j]
			}
		}
		pts = append(pts, pt)
	}
	return
}

// gllFamily returns the n+1 Gauss-Lobatto-Legendre nodes mapped onto [0,1].
func gllFamily(n int) (x []float64) {
	if n == 0 {
		return []float64{0.5}
	}
	x = utils.JacobiGL(0, 0, n)
	for i := range x {
		x[i] = 0.5 * (x[i] + 1)
	}
	return
}

// recursiveNodes returns the barycentric coordinates of the lattice point
// alpha (length d+1, sum n) by blending the projections onto each facet,
// weighted by the 1D node family.
func recursiveNodes(d, n int, alpha []int, family func(int) []float64) (b []float64) {
	b = make([]float64, d+1)
	if d == 0 {
		b[0] = 1
		return
	}
	xn := family(n)
	if d == 1 {
		b[0], b[1] = xn[alpha[0]], xn[alpha[1]]
		return
	}
	var weight float64
	for i := 0; i <= d; i++ {
		notI := make([]int, 0, d)
		notI = append(notI, alpha[:i]...)
		notI = append(notI, alpha[i+1:]...)
		nNotI := n - alpha[i]
		w := xn[nNotI]
		br := recursiveNodes(d-1, nNotI, notI, family)
		for j := 0; j < i; j++ {
			b[j] += w * br[j]
		}
		for j := i + 1; j <= d; j++ {
			b[j] += w * br[j-1]
		}
		weight += w
	}
	for i := range b {
		b[i] /= weight
	}
	return
}
