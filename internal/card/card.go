// Package card defines the finite universe of tradable instrument ids.
package card

// NumCards is the compile-time size of the tradable instrument universe.
const NumCards = 4

// Valid reports whether id falls in the tradable range [0, NumCards).
func Valid(id int32) bool {
	return id >= 0 && id < NumCards
}
