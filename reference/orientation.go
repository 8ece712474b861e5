package reference

import (
	"sort"

	"gonum.org/v1/gonum/stat/combin"
)

// VertexPermutations returns the permutations of 0..n-1 in lexicographic
// order. The position of a permutation in this list is the orientation
// number of an entity with n vertices.
func VertexPermutations(n int) (perms [][]int) {
	if n == 0 {
		return [][]int{{}}
	}
	perms = combin.Permutations(n, n)
	sort.Slice(perms, func(i, j int) bool {
		a, b := perms[i], perms[j]
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return
}

// Parity returns 0 for an even permutation and 1 for an odd one.
func Parity(perm []int) (p int) {
	seen := make([]bool, len(perm))
	for i := range perm {
		if seen[i] {
			continue
		}
		var length int
		for j := i; !seen[j]; j = perm[j] {
			seen[j] = true
			length++
		}
		p += length - 1
	}
	return p % 2
}

// SimplexReflectionMap flags, per orientation of a dim-simplex, whether the
// vertex permutation reverses orientation.
func SimplexReflectionMap(dim int) (refl []int) {
	for _, perm := range VertexPermutations(dim + 1) {
		refl = append(refl, Parity(perm))
	}
	return
}

// TensorProductReflectionMap combines the reflection maps of the factors of
// a tensor product, the last factor varying fastest.
func TensorProductReflectionMap(maps [][]int) (refl []int) {
	lens := make([]int, len(maps))
	for i, m := range maps {
		lens[i] = len(m)
	}
	for _, o := range combin.Cartesian(lens) {
		var sum int
		for i, oi := range o {
			sum += maps[i][oi]
		}
		refl = append(refl, sum%2)
	}
	return
}

// SimplexLatticePermutations returns, for each orientation of a dim-simplex,
// how the interior points of the order lattice on it are renumbered. Entry i
// of a permutation is the index of the image of point i.
func SimplexLatticePermutations(dim, order int) (perms map[int][]int) {
	if dim == 0 {
		return map[int][]int{0: {0}}
	}
	alphas := MultiIndexEqual(dim+1, order, 1)
	index := make(map[string]int, len(alphas))
	for i, a := range alphas {
		index[indexKey(a)] = i
	}
	perms = make(map[int][]int)
	image := make([]int, dim+1)
	for o, sigma := range VertexPermutations(dim + 1) {
		perm := make([]int, len(alphas))
		for i, a := range alphas {
			for k := range image {
				image[k] = a[sigma[k]]
			}
			perm[i] = index[indexKey(image)]
		}
		perms[o] = perm
	}
	return
}

// HypercubeLatticePermutations returns, for each of the 2^dim dim!
// orientations of a dim-cube, how the interior points of the order tensor
// lattice on it are renumbered. Orientation o = p*2^dim + r applies the p-th
// axis permutation followed by the reflections flagged in the bits of r,
// the first axis in the highest bit.
func HypercubeLatticePermutations(dim, order int) (perms map[int][]int) {
	if dim == 0 {
		return map[int][]int{0: {0}}
	}
	var betas [][]int
	if order > 1 {
		lens := make([]int, dim)
		for i := range lens {
			lens[i] = order - 1
		}
		betas = combin.Cartesian(lens)
	}
	index := make(map[string]int, len(betas))
	for i, b := range betas {
		index[indexKey(b)] = i
	}
	var (
		nrefl = 1 << dim
		image = make([]int, dim)
	)
	perms = make(map[int][]int)
	for p, sigma := range VertexPermutations(dim) {
		for r := 0; r < nrefl; r++ {
			perm := make([]int, len(betas))
			for i, b := range betas {
				for k := range image {
					image[k] = b[sigma[k]]
					if r&(1<<(dim-1-k)) != 0 {
						image[k] = order - 2 - image[k]
					}
				}
				perm[i] = index[indexKey(image)]
			}
			perms[p*nrefl+r] = perm
		}
	}
	return
}

func indexKey(a []int) string {
	b := make([]byte, len(a))
	for i, v := range a {
		b[i] = byte(v)
	}
	return string(b)
}
