package element

import (
	"regexp"
	"strconv"

	"github.com/notargets/febasis/errors"
)

type VariantKind string

const (
	PointVariant    = VariantKind("point")
	IntegralVariant = VariantKind("integral")
)

var integralRE = regexp.MustCompile(`^integral(?:\((\d+)\))?$`)

// ParseVariant reads "point", "integral" or "integral(q)". The empty string
// is "integral". For integral variants extra is the quadrature degree added
// to the element degree to get the interpolant degree.
func ParseVariant(variant string) (kind VariantKind, extra int, err error) {
	switch variant {
	case "":
		return IntegralVariant, 0, nil
	case string(PointVariant):
		return PointVariant, 0, nil
	}
	match := integralRE.FindStringSubmatch(variant)
	if match == nil {
		err = errors.Configf("unrecognized variant %q", variant)
		return
	}
	kind = IntegralVariant
	if match[1] != "" {
		if extra, err = strconv.Atoi(match[1]); err != nil {
			err = errors.Mark(errors.Wrapf(err, "variant %q", variant), errors.ErrConfiguration)
		}
	}
	return
}
