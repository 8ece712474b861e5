package element

import (
	"strings"

	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/reference"
)

// Family names as reported by CiarletElement.Family.
const (
	Lagrange = "Lagrange"
	P0       = "P0"
	BDM      = "Brezzi-Douglas-Marini"
)

var familyAliases = map[string]string{
	"lagrange":              Lagrange,
	"p":                     Lagrange,
	"q":                     Lagrange,
	"cg":                    Lagrange,
	"p0":                    P0,
	"dp0":                   P0,
	"dg0":                   P0,
	"bdm":                   BDM,
	"brezzi-douglas-marini": BDM,
}

// Families lists the canonical family names.
func Families() []string { return []string{Lagrange, P0, BDM} }

// FamilyName resolves a family name or alias, ignoring case.
func FamilyName(family string) (name string, err error) {
	name, ok := familyAliases[strings.ToLower(strings.TrimSpace(family))]
	if !ok {
		err = errors.Configf("unknown element family %q", family)
	}
	return
}

// New builds an element of a family on a cell. P0 takes degree 0 and no
// variant.
func New(family string, cell reference.Cell, degree int, variant string) (el *CiarletElement, err error) {
	name, err := FamilyName(family)
	if err != nil {
		return
	}
	switch name {
	case Lagrange:
		return NewLagrange(cell, degree, variant)
	case BDM:
		return NewBDM(cell, degree, variant)
	default:
		if degree != 0 {
			err = errors.Configf("P0 elements have degree 0, have %d", degree)
			return
		}
		if variant != "" {
			err = errors.Configf("P0 elements have no variants, have %q", variant)
			return
		}
		return NewP0(cell)
	}
}
