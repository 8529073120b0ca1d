// Package shape mirrors left/shape with a different layout under the same
// printed name.
package shape

type T struct {
	Radius float64
}
