// Package errors carries the error taxonomy of febasis.
//
// Every failure raised while building cells, dual sets or elements belongs to
// exactly one class:
//
//	ErrConfiguration  invalid degree, unknown cell or family name, mismatched dimension
//	ErrIllPosed       singular unisolvence matrix, degenerate normal, bad affine point sets
//	ErrUnsupported    a query that this cell or element does not implement
//
// Test the class with errors.Is(err, errors.ErrConfiguration). The remaining
// helpers re-export github.com/cockroachdb/errors.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	ErrConfiguration = crdb.New("configuration error")
	ErrIllPosed      = crdb.New("ill-posed construction")
	ErrUnsupported   = crdb.New("unsupported configuration")
)

var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Is     = crdb.Is
	As     = crdb.As
	Mark   = crdb.Mark
	Unwrap = crdb.Unwrap
)

// Configf returns a formatted error marked as ErrConfiguration.
func Configf(format string, args ...interface{}) error {
	return crdb.Mark(crdb.NewWithDepthf(1, format, args...), ErrConfiguration)
}

// IllPosedf returns a formatted error marked as ErrIllPosed.
func IllPosedf(format string, args ...interface{}) error {
	return crdb.Mark(crdb.NewWithDepthf(1, format, args...), ErrIllPosed)
}

// Unsupportedf returns a formatted error marked as ErrUnsupported.
func Unsupportedf(format string, args ...interface{}) error {
	return crdb.Mark(crdb.NewWithDepthf(1, format, args...), ErrUnsupported)
}
