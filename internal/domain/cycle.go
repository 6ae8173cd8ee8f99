package domain

import "fmt"

// Cycle is a directed three-currency conversion ring A -> B -> C -> A.
// Rotations of the same physical ring are distinct cycles and are
// evaluated independently.
type Cycle struct {
	A string
	B string
	C string
}

// PairAB returns the symbol of the first leg.
func (c Cycle) PairAB() string { return c.A + c.B }

// PairBC returns the symbol of the second leg.
func (c Cycle) PairBC() string { return c.B + c.C }

// PairCA returns the symbol of the closing leg.
func (c Cycle) PairCA() string { return c.C + c.A }

// String returns a human-readable representation.
func (c Cycle) String() string {
	return fmt.Sprintf("%s->%s->%s->%s", c.A, c.B, c.C, c.A)
}
