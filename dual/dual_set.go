package dual

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/febasis/errors"
	"github.com/notargets/febasis/polynomial"
	"github.com/notargets/febasis/reference"
)

// EntityIDs maps an entity dimension to the dof indices of each entity.
type EntityIDs map[reference.Dim][][]int

// EntityPermutations maps an entity dimension to, per entity, the
// renumbering of the entity's local dofs for each orientation.
type EntityPermutations map[reference.Dim][]map[int][]int

// DualSet is an ordered list of nodes together with their assignment to the
// entities of a reference cell.
type DualSet struct {
	nodes        []*Functional
	cell         reference.Cell
	entityIDs    EntityIDs
	permutations EntityPermutations
	identity     bool
}

// New validates and assembles a dual set. The entity ids must name every
// entity of the cell and partition the node indices. Permutations are
// optional; when given, each entity needs one per orientation of its
// dimension, each a permutation of the entity's dofs. When absent every
// orientation keeps the local dof order.
func New(nodes []*Functional, cell reference.Cell, ids EntityIDs, perms EntityPermutations) (ds *DualSet, err error) {
	if len(nodes) == 0 {
		err = errors.Configf("dual set on %s has no nodes", cell.Key())
		return
	}
	seen := make([]bool, len(nodes))
	for dim, ents := range cell.Topology() {
		if len(ids[dim]) != len(ents) {
			err = errors.Configf("dual set lists %d entities of dimension %v, %s has %d",
				len(ids[dim]), dim, cell.Key(), len(ents))
			return
		}
		for e, dofs := range ids[dim] {
			for _, dof := range dofs {
				if dof < 0 || dof >= len(nodes) {
					err = errors.Configf("entity (%v, %d) names dof %d of %d", dim, e, dof, len(nodes))
					return
				}
				if seen[dof] {
					err = errors.Configf("dof %d belongs to more than one entity", dof)
					return
				}
				seen[dof] = true
			}
		}
	}
	for dim := range ids {
		if _, ok := cell.Topology()[dim]; !ok {
			err = errors.Configf("dual set names dimension %v absent from %s", dim, cell.Key())
			return
		}
	}
	for dof, ok := range seen {
		if !ok {
			err = errors.Configf("dof %d belongs to no entity", dof)
			return
		}
	}
	identity := perms == nil
	if identity {
		perms = identityPermutations(cell, ids)
	} else if err = checkPermutations(cell, ids, perms); err != nil {
		return
	}
	ds = &DualSet{
		nodes:        nodes,
		cell:         cell,
		entityIDs:    ids,
		permutations: perms,
		identity:     identity,
	}
	return
}

func identityPermutations(cell reference.Cell, ids EntityIDs) (perms EntityPermutations) {
	perms = make(EntityPermutations, len(ids))
	for dim, ents := range ids {
		size := cell.SymmetryGroupSize(dim)
		perms[dim] = make([]map[int][]int, len(ents))
		for e, dofs := range ents {
			perms[dim][e] = make(map[int][]int, size)
			for o := 0; o < size; o++ {
				p := make([]int, len(dofs))
				for i := range p {
					p[i] = i
				}
				perms[dim][e][o] = p
			}
		}
	}
	return
}

func checkPermutations(cell reference.Cell, ids EntityIDs, perms EntityPermutations) (err error) {
	for dim, ents := range ids {
		if len(perms[dim]) != len(ents) {
			return errors.Configf("permutations given for %d entities of dimension %v, need %d",
				len(perms[dim]), dim, len(ents))
		}
		size := cell.SymmetryGroupSize(dim)
		for e, dofs := range ents {
			if len(perms[dim][e]) != size {
				return errors.Configf("entity (%v, %d) has %d orientations, symmetry group has %d",
					dim, e, len(perms[dim][e]), size)
			}
			for o, p := range perms[dim][e] {
				if !isPermutation(p, len(dofs)) {
					return errors.Configf("entity (%v, %d) orientation %d is not a permutation of %d dofs",
						dim, e, o, len(dofs))
				}
			}
		}
	}
	return
}

func isPermutation(p []int, n int) bool {
	if len(p) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range p {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

func (ds *DualSet) Nodes() []*Functional { return ds.nodes }

func (ds *DualSet) Cell() reference.Cell { return ds.cell }

func (ds *DualSet) Size() int { return len(ds.nodes) }

func (ds *DualSet) EntityIDs() EntityIDs { return ds.entityIDs }

func (ds *DualSet) EntityPermutations() EntityPermutations { return ds.permutations }

// HasIdentityPermutations reports whether the permutations were defaulted
// to the identity because none were given.
func (ds *DualSet) HasIdentityPermutations() bool { return ds.identity }

// EntityClosureIDs returns, per entity, the dofs of the entity and of every
// entity in its closure, in sub-entity order.
func (ds *DualSet) EntityClosureIDs() (closure EntityIDs) {
	closure = make(EntityIDs)
	for dim, subs := range ds.cell.SubEntities() {
		closure[dim] = make([][]int, len(subs))
		for e, ents := range subs {
			dofs := []int{}
			for _, s := range ents {
				dofs = append(dofs, ds.entityIDs[s.Dim][s.Index]...)
			}
			closure[dim][e] = dofs
		}
	}
	return
}

// EvaluationMatrix applies every node to every member of ps. Entry (i, m)
// is node i evaluated on member m. The nodes are gathered into a sparse
// matrix over the stacked point values of the set.
func (ds *DualSet) EvaluationMatrix(ps *polynomial.PolynomialSet) (V *mat.Dense, err error) {
	ncomp := ps.NumComponents()
	var (
		pts     [][]float64
		offsets = make([]int, len(ds.nodes))
	)
	for i, node := range ds.nodes {
		if node.NumComponents() != ncomp {
			err = errors.Configf("node %d acts on %d components, polynomial set has %d",
				i, node.NumComponents(), ncomp)
			return
		}
		offsets[i] = len(pts)
		pts = append(pts, node.Points()...)
	}
	npts := len(pts)
	riesz := sparse.NewDOK(len(ds.nodes), ncomp*npts)
	for i, node := range ds.nodes {
		for q, wq := range node.Weights() {
			for c, w := range wq {
				col := c*npts + offsets[i] + q
				riesz.Set(i, col, riesz.At(i, col)+w)
			}
		}
	}
	tab, err := ps.Tabulate(0, pts)
	if err != nil {
		return
	}
	var (
		vals = tab[polynomial.MultiIndex{}]
		M    = ps.Size()
		S    = mat.NewDense(ncomp*npts, M, nil)
	)
	for m := 0; m < M; m++ {
		for c := 0; c < ncomp; c++ {
			for q := 0; q < npts; q++ {
				S.Set(c*npts+q, m, vals.At(m*ncomp+c, q))
			}
		}
	}
	V = mat.NewDense(len(ds.nodes), M, nil)
	V.Mul(riesz.ToCSR(), S)
	return
}
