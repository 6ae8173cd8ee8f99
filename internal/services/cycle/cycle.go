// Package cycle enumerates directed three-currency conversion rings.
package cycle

import "triscan/internal/domain"

// Enumerate returns every ordered triple of pairwise-distinct indices
// over the given currency list, lexicographic in index. For N symbols
// the result holds exactly N*(N-1)*(N-2) cycles; fewer than three
// symbols yield none.
//
// Rotations of the same physical ring, e.g. (A,B,C), (B,C,A) and
// (C,A,B), are emitted as separate cycles and evaluated independently.
func Enumerate(currencies []string) []domain.Cycle {
	n := len(currencies)
	if n < 3 {
		return nil
	}

	cycles := make([]domain.Cycle, 0, n*(n-1)*(n-2))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			for k := 0; k < n; k++ {
				if k == i || k == j {
					continue
				}
				cycles = append(cycles, domain.Cycle{
					A: currencies[i],
					B: currencies[j],
					C: currencies[k],
				})
			}
		}
	}
	return cycles
}
