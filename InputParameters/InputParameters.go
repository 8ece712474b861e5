package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/pullback"
)

// Parameters obtained from the YAML input file
type ElementRequest struct {
	Title   string      `json:"Title"`
	Family  string      `json:"Family"`
	Cell    string      `json:"Cell"`
	Degree  int         `json:"Degree"`
	Variant string      `json:"Variant"`
	Order   int         `json:"Order"`  // Derivative order for tabulation
	Points  [][]float64 `json:"Points"` // Reference coordinates to tabulate at

	// Optional: the pullback the element is expected to use, and the
	// Jacobian of a physical cell to push the tabulated basis onto
	Mapping  string      `json:"Mapping"`
	Jacobian [][]float64 `json:"Jacobian"`
}

// ElementRequests is a file holding several named requests
type ElementRequests struct {
	Elements map[string]*ElementRequest `json:"Elements"`
}

const ExampleFile = `
########################################
Title: "Quadratic Lagrange"
Family: Lagrange
Cell: triangle
Degree: 2
Variant: equispaced # Can be "gll"
Order: 1
Points:
  - [0.25, 0.25]
  - [0.5, 0.1]
Mapping: affine # Checked against the element
Jacobian: # Push the basis onto a cell twice as wide
  - [2, 0]
  - [0, 1]
########################################
`

func (er *ElementRequest) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, er); err != nil {
		return errors.Mark(errors.Wrap(err, "reading element request"), errors.ErrConfiguration)
	}
	return er.Validate()
}

// Validate checks what can be checked without building the cell.
func (er *ElementRequest) Validate() (err error) {
	switch {
	case er.Family == "":
		err = errors.Configf("element request has no Family")
	case er.Cell == "":
		err = errors.Configf("element request has no Cell")
	case er.Degree < 0:
		err = errors.Configf("element request has negative Degree %d", er.Degree)
	case er.Order < 0:
		err = errors.Configf("element request has negative Order %d", er.Order)
	case er.Mapping != "":
		_, err = pullback.NewMapping(er.Mapping)
	}
	if err != nil {
		return
	}
	for i, row := range er.Jacobian {
		if len(row) != len(er.Jacobian) {
			return errors.Configf("element request Jacobian row %d has %d entries, need %d",
				i, len(row), len(er.Jacobian))
		}
	}
	return
}

// JacobianMatrix returns the Jacobian as a matrix, nil when none was given.
func (er *ElementRequest) JacobianMatrix() (J *mat.Dense) {
	n := len(er.Jacobian)
	if n == 0 {
		return
	}
	J = mat.NewDense(n, n, nil)
	for i, row := range er.Jacobian {
		J.SetRow(i, row)
	}
	return
}

func (er *ElementRequest) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", er.Title)
	fmt.Printf("[%s]\t\t= Family\n", er.Family)
	fmt.Printf("[%s]\t\t= Cell\n", er.Cell)
	fmt.Printf("[%d]\t\t\t= Degree\n", er.Degree)
	fmt.Printf("[%s]\t\t= Variant\n", er.Variant)
	fmt.Printf("[%d]\t\t\t= Derivative Order\n", er.Order)
	fmt.Printf("[%d]\t\t\t= Points\n", len(er.Points))
	if er.Mapping != "" {
		fmt.Printf("[%s]\t\t= Mapping\n", er.Mapping)
	}
	if len(er.Jacobian) != 0 {
		fmt.Printf("%v\t\t= Jacobian\n", er.Jacobian)
	}
}

func (ers *ElementRequests) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ers); err != nil {
		return errors.Mark(errors.Wrap(err, "reading element requests"), errors.ErrConfiguration)
	}
	for _, name := range ers.Names() {
		if err = ers.Elements[name].Validate(); err != nil {
			return errors.Wrapf(err, "element %s", name)
		}
	}
	return
}

// Names returns the request names in sorted order
func (ers *ElementRequests) Names() (keys []string) {
	keys = make([]string, len(ers.Elements))
	i := 0
	for k := range ers.Elements {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	return
}

func (ers *ElementRequests) Print() {
	for _, name := range ers.Names() {
		fmt.Printf("Elements[%s]\n", name)
		ers.Elements[name].Print()
	}
}
