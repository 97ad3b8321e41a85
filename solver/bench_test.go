package solver_test

import (
	"testing"

	"github.com/katalvlaran/lvmaze/maze"
	"github.com/katalvlaran/lvmaze/solver"
)

// serpentine builds an n×n grid whose walls force a single snaking corridor:
// every odd row is walled except one gap, alternating sides.
func serpentine(n int) *maze.Grid {
	g := maze.MustNew(maze.Config{Rows: n, Cols: n})
	for r := 1; r < n; r += 2 {
		gap := n - 1
		if (r/2)%2 == 1 {
			gap = 0
		}
		for c := 0; c < n; c++ {
			if c != gap {
				g.SetWall(r, c)
			}
		}
	}
	g.SetStart(0, 0)
	g.SetEnd(n-1, n-1)

	return g
}

// BenchmarkSolve_Serpentine compares both strategies on a 201×201 corridor.
// The walk enters roughly half the cells and backtracks out of every row's
// far corner before finding the gap.
func BenchmarkSolve_Serpentine(b *testing.B) {
	for _, s := range []solver.Strategy{solver.Recursive, solver.Iterative} {
		b.Run(s.String(), func(b *testing.B) {
			g := serpentine(201)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				g.Reset()
				if _, err := solver.Solve(g, solver.WithStrategy(s)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkSolve_OpenPruned measures WithPrune on a 500×500 open grid.
func BenchmarkSolve_OpenPruned(b *testing.B) {
	g := maze.MustNew(maze.Config{Rows: 500, Cols: 500})
	g.SetStart(0, 0)
	g.SetEnd(499, 499)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Reset()
		if _, err := solver.Solve(g, solver.WithPrune(), solver.WithStrategy(solver.Iterative)); err != nil {
			b.Fatal(err)
		}
	}
}
