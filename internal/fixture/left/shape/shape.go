// Package shape is one of two same-named packages used to check that
// component identity does not depend on the printed type name.
package shape

type T struct {
	W, H int
}
