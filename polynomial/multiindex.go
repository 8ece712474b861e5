package polynomial

import (
	"fmt"
	"strings"

	"github.com/notargets/febasis/reference"
)

// MaxSpatialDim bounds the spatial dimension of cells carrying polynomial
// spaces.
const MaxSpatialDim = 6

// MultiIndex selects a partial derivative, one order per coordinate.
// Unused trailing coordinates are zero.
type MultiIndex [MaxSpatialDim]int

// NewMultiIndex builds a multi-index from per-coordinate orders.
func NewMultiIndex(orders ...int) (mi MultiIndex) {
	copy(mi[:], orders)
	return
}

// Order is the total derivative order.
func (mi MultiIndex) Order() (o int) {
	for _, v := range mi {
		o += v
	}
	return
}

func (mi MultiIndex) String() string {
	parts := make([]string, 0, MaxSpatialDim)
	last := 0
	for i, v := range mi {
		if v != 0 {
			last = i + 1
		}
	}
	for _, v := range mi[:last] {
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// DerivativeIndices returns every multi-index in sd coordinates of total
// order at most order, grouped by ascending order.
func DerivativeIndices(sd, order int) (mis []MultiIndex) {
	if sd == 0 {
		return []MultiIndex{{}}
	}
	for o := 0; o <= order; o++ {
		for _, a := range reference.MultiIndexEqual(sd, o, 0) {
			mis = append(mis, NewMultiIndex(a...))
		}
	}
	return
}
