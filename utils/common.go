package utils

const (
	// RANKTOL is the singular value cut-off used when counting the rank of
	// vertex and tangent spans.
	RANKTOL = 1.e-10
	// OVERLAPTOL is how close to one a principal cosine must be for a direction
	// to lie in both of two subspaces.
	OVERLAPTOL = 1.e-10
)
