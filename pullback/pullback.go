// Package pullback holds the mapping types that carry reference basis
// functions onto physical cells, one strategy per type.
package pullback

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/febasis/errors"
)

type Mapping int

const (
	Affine Mapping = iota
	CovariantPiola
	ContravariantPiola
	L2Piola
)

func (m Mapping) String() string {
	switch m {
	case Affine:
		return "affine"
	case CovariantPiola:
		return "covariant piola"
	case ContravariantPiola:
		return "contravariant piola"
	case L2Piola:
		return "L2 piola"
	}
	return "unknown"
}

// NewMapping parses the name printed by String.
func NewMapping(name string) (m Mapping, err error) {
	for _, m = range []Mapping{Affine, CovariantPiola, ContravariantPiola, L2Piola} {
		if m.String() == name {
			return
		}
	}
	err = errors.Configf("unknown mapping %q", name)
	return
}

// Strategy transforms a reference value v with the Jacobian J of the map
// from the reference cell to a physical cell.
type Strategy interface {
	Apply(J mat.Matrix, v []float64) ([]float64, error)
}

type affine struct{}

type covariant struct{}

type contravariant struct{}

type l2 struct{}

// Strategy returns the transformation for the mapping type.
func (m Mapping) Strategy() Strategy {
	switch m {
	case CovariantPiola:
		return covariant{}
	case ContravariantPiola:
		return contravariant{}
	case L2Piola:
		return l2{}
	}
	return affine{}
}

func (affine) Apply(J mat.Matrix, v []float64) ([]float64, error) {
	return append([]float64(nil), v...), nil
}

// J^-T v
func (covariant) Apply(J mat.Matrix, v []float64) (u []float64, err error) {
	if err = checkSquare(J, len(v)); err != nil {
		return
	}
	var (
		lu  mat.LU
		sol mat.VecDense
	)
	lu.Factorize(J)
	if err = lu.SolveVecTo(&sol, true, mat.NewVecDense(len(v), append([]float64(nil), v...))); err != nil {
		err = errors.Mark(errors.Wrap(err, "covariant piola map"), errors.ErrIllPosed)
		return
	}
	return sol.RawVector().Data, nil
}

// J v / det J
func (contravariant) Apply(J mat.Matrix, v []float64) (u []float64, err error) {
	if err = checkSquare(J, len(v)); err != nil {
		return
	}
	det, err := determinant(J)
	if err != nil {
		return
	}
	var w mat.VecDense
	w.MulVec(J, mat.NewVecDense(len(v), append([]float64(nil), v...)))
	u = w.RawVector().Data
	for i := range u {
		u[i] /= det
	}
	return
}

// v / det J
func (l2) Apply(J mat.Matrix, v []float64) (u []float64, err error) {
	det, err := determinant(J)
	if err != nil {
		return
	}
	u = make([]float64, len(v))
	for i := range v {
		u[i] = v[i] / det
	}
	return
}

func determinant(J mat.Matrix) (det float64, err error) {
	if nr, nc := J.Dims(); nr != nc {
		err = errors.Configf("jacobian is %d x %d, need a square matrix", nr, nc)
		return
	}
	if det = mat.Det(J); det == 0 {
		err = errors.IllPosedf("jacobian is singular")
	}
	return
}

func checkSquare(J mat.Matrix, n int) (err error) {
	if nr, nc := J.Dims(); nr != nc || nr != n {
		err = errors.Configf("jacobian is %d x %d for a value of length %d", nr, nc, n)
	}
	return
}
