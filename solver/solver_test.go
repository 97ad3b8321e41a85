package solver_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmaze/maze"
	"github.com/katalvlaran/lvmaze/solver"
)

var strategies = []solver.Strategy{solver.Recursive, solver.Iterative}

// buildGrid creates a grid from rows of runes: '#' wall, 'S' start, 'E' end,
// anything else open.
func buildGrid(t testing.TB, rows ...string) *maze.Grid {
	t.Helper()
	g, err := maze.New(maze.Config{Rows: len(rows), Cols: len(rows[0])})
	require.NoError(t, err)
	for r, line := range rows {
		for c, ch := range []rune(line) {
			switch ch {
			case '#':
				g.SetWall(r, c)
			case 'S':
				g.SetStart(r, c)
			case 'E':
				g.SetEnd(r, c)
			}
		}
	}

	return g
}

// snapshot returns every cell of g in row-major order.
func snapshot(g *maze.Grid) []maze.Cell {
	var out []maze.Cell
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cell, _ := g.Cell(r, c)
			out = append(out, cell)
		}
	}

	return out
}

// assertValidPath checks that the InPath cells form a simple 4-connected
// chain from start to end that avoids walls, and that res.Path lists it.
func assertValidPath(t *testing.T, g *maze.Grid, res *solver.Result) {
	t.Helper()
	require.True(t, res.Found)
	require.NotEmpty(t, res.Path)
	assert.Equal(t, g.Start(), res.Path[0], "path begins at start")
	assert.Equal(t, g.End(), res.Path[len(res.Path)-1], "path ends at end")

	seen := make(map[maze.Coord]bool, len(res.Path))
	for i, c := range res.Path {
		assert.False(t, seen[c], "cell %v repeated", c)
		seen[c] = true
		assert.True(t, g.Passable(c.Row, c.Col), "wall %v on path", c)
		assert.True(t, g.InPath(c.Row, c.Col), "path cell %v not flagged", c)
		if i > 0 {
			assert.True(t, res.Path[i-1].Adjacent(c), "%v and %v not adjacent", res.Path[i-1], c)
		}
	}
	assert.Len(t, g.PathCells(), len(res.Path), "InPath set equals Path")
}

func assertNoPath(t *testing.T, g *maze.Grid, res *solver.Result) {
	t.Helper()
	assert.False(t, res.Found)
	assert.Nil(t, res.Path)
	assert.Empty(t, g.PathCells(), "no InPath flags after failure")
}

//----------------------------------------------------------------------------//
// Precondition Tests
//----------------------------------------------------------------------------//

func TestSolve_NilGrid(t *testing.T) {
	res, err := solver.Solve(nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, solver.ErrGridNil)
}

func TestSolve_ZeroGridOutOfBounds(t *testing.T) {
	res, err := solver.Solve(&maze.Grid{})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, solver.ErrStartOutOfBounds)
}

//----------------------------------------------------------------------------//
// Scenario Tests
//----------------------------------------------------------------------------//

// TestSolve_OpenThreeByThree: no walls, (0,0)→(2,2) is solvable with at least 5 cells.
func TestSolve_OpenThreeByThree(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			g := buildGrid(t,
				"S..",
				"...",
				"..E",
			)
			res, err := solver.Solve(g, solver.WithStrategy(s))
			require.NoError(t, err)
			assertValidPath(t, g, res)
			assert.GreaterOrEqual(t, len(res.Path), 5)
			assert.Equal(t, s, res.Strategy)
		})
	}
}

// TestSolve_NeighborOrder pins the exact path produced by down, up, left, right.
func TestSolve_NeighborOrder(t *testing.T) {
	g := buildGrid(t,
		"S..",
		"...",
		"..E",
	)
	res, err := solver.Solve(g)
	require.NoError(t, err)

	// Down-first snakes through the whole grid before reaching the corner.
	want := []maze.Coord{
		{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0},
		{Row: 2, Col: 1}, {Row: 1, Col: 1}, {Row: 0, Col: 1},
		{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2},
	}
	if diff := cmp.Diff(want, res.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	assert.Zero(t, res.Backtracks)
}

// TestSolve_WalledMiddleRow: rows 0 and 2 are disconnected.
func TestSolve_WalledMiddleRow(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			g := buildGrid(t,
				"S..",
				"###",
				"E..",
			)
			res, err := solver.Solve(g, solver.WithStrategy(s))
			require.NoError(t, err)
			assertNoPath(t, g, res)

			for c := 0; c < 3; c++ {
				assert.True(t, g.Searched(0, c), "top row searched")
				assert.False(t, g.Searched(1, c), "walls never searched")
				assert.False(t, g.Searched(2, c), "bottom row unreachable")
			}
		})
	}
}

// TestSolve_StartEqualsEnd returns immediately with only the start cell touched.
func TestSolve_StartEqualsEnd(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			g := maze.MustNew(maze.Config{Rows: 3, Cols: 3})
			g.SetStart(1, 1)
			g.SetEnd(1, 1)

			res, err := solver.Solve(g, solver.WithStrategy(s))
			require.NoError(t, err)
			assert.True(t, res.Found)
			assert.Equal(t, []maze.Coord{{Row: 1, Col: 1}}, res.Path)
			assert.Equal(t, 1, g.SearchedCount())
			assert.Equal(t, 1, res.Visited)
			assert.True(t, g.InPath(1, 1), "terminal cell is part of the trace")
		})
	}
}

// TestSolve_StartOnWall: a walled start cannot be entered.
func TestSolve_StartOnWall(t *testing.T) {
	g := buildGrid(t, "S.E")
	g.SetWall(0, 0)

	res, err := solver.Solve(g)
	require.NoError(t, err)
	assertNoPath(t, g, res)
	assert.Zero(t, g.SearchedCount())
}

// TestSolve_EndOnWall: the end is unreachable when walled.
func TestSolve_EndOnWall(t *testing.T) {
	g := buildGrid(t, "S.E")
	g.SetWall(0, 2)

	res, err := solver.Solve(g)
	require.NoError(t, err)
	assertNoPath(t, g, res)
	assert.Equal(t, 2, g.SearchedCount())
}

// TestSolve_Backtracking exercises grids where down-first walks hit walls
// and bounds before turning toward the exit.
func TestSolve_Backtracking(t *testing.T) {
	g := buildGrid(t,
		"S#.",
		".#.",
		"..#",
		"#.E",
	)
	// (0,0)→(1,0)→(2,0)→(2,1)→(3,1)→(3,2)
	res, err := solver.Solve(g)
	require.NoError(t, err)
	assertValidPath(t, g, res)

	g2 := buildGrid(t,
		"S..",
		".##",
		".#E",
		"...",
	)
	// Down-first reaches (3,0) → (3,1) → (3,2) → up to E.
	res2, err := solver.Solve(g2)
	require.NoError(t, err)
	assertValidPath(t, g2, res2)

	g3 := buildGrid(t,
		"S.#E",
		".#..",
		"....",
	)
	// From (1,3) the walk tries (2,3) first, a dead end, then goes up to E.
	res3, err := solver.Solve(g3)
	require.NoError(t, err)
	assertValidPath(t, g3, res3)
	assert.Equal(t, 1, res3.Backtracks)
	assert.True(t, g3.Searched(2, 3))
	assert.False(t, g3.InPath(2, 3))
}

// TestSolve_DeadEndCleared checks that dead ends keep Searched but drop InPath.
//
//	S . .
//	# # .
//	E # .
func TestSolve_DeadEndCleared(t *testing.T) {
	g := buildGrid(t,
		"S..",
		"##.",
		"E#.",
	)
	res, err := solver.Solve(g)
	require.NoError(t, err)
	assertNoPath(t, g, res)
	assert.Equal(t, 5, g.SearchedCount())
	assert.Equal(t, 5, res.Backtracks)
}

//----------------------------------------------------------------------------//
// Property Tests
//----------------------------------------------------------------------------//

// TestSolve_NoWallsAlwaysSolvable tries every start/end pair on a 3×4 grid.
func TestSolve_NoWallsAlwaysSolvable(t *testing.T) {
	cfg := maze.Config{Rows: 3, Cols: 4}
	for _, s := range strategies {
		for sr := 0; sr < cfg.Rows; sr++ {
			for sc := 0; sc < cfg.Cols; sc++ {
				for er := 0; er < cfg.Rows; er++ {
					for ec := 0; ec < cfg.Cols; ec++ {
						g := maze.MustNew(cfg)
						g.SetStart(sr, sc)
						g.SetEnd(er, ec)
						res, err := solver.Solve(g, solver.WithStrategy(s))
						require.NoError(t, err)
						assertValidPath(t, g, res)
					}
				}
			}
		}
	}
}

// randomGrid builds a rows×cols grid with roughly density walls and random
// start/end cells.
func randomGrid(rng *rand.Rand, rows, cols int, density float64) *maze.Grid {
	g := maze.MustNew(maze.Config{Rows: rows, Cols: cols})
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < density {
				g.SetWall(r, c)
			}
		}
	}
	g.SetStart(rng.Intn(rows), rng.Intn(cols))
	g.SetEnd(rng.Intn(rows), rng.Intn(cols))

	return g
}

// TestSolve_RandomProperties checks, on small random grids, that:
//   - Found agrees with region connectivity of start and end
//   - a found path is valid; a failure leaves no InPath flag
//   - both strategies leave identical cell state
//   - pruning agrees on Found and never enters more cells
func TestSolve_RandomProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		rows, cols := 1+rng.Intn(4), 1+rng.Intn(4)
		base := randomGrid(rng, rows, cols, 0.3)
		walls := base.Walls()
		start, end := base.Start(), base.End()

		clone := func() *maze.Grid {
			g := maze.MustNew(maze.Config{Rows: rows, Cols: cols})
			for _, w := range walls {
				g.SetWall(w.Row, w.Col)
			}
			g.SetStart(start.Row, start.Col)
			g.SetEnd(end.Row, end.Col)
			return g
		}

		gr, gi, gp := clone(), clone(), clone()
		rr, err := solver.Solve(gr, solver.WithStrategy(solver.Recursive))
		require.NoError(t, err)
		ri, err := solver.Solve(gi, solver.WithStrategy(solver.Iterative))
		require.NoError(t, err)
		rp, err := solver.Solve(gp, solver.WithPrune())
		require.NoError(t, err)

		wantFound := gr.Passable(start.Row, start.Col) &&
			(start == end || gr.Connected(start, end))
		assert.Equal(t, wantFound, rr.Found, "case %d", i)
		assert.Equal(t, rr.Found, rp.Found, "prune agrees, case %d", i)

		if rr.Found {
			assertValidPath(t, gr, rr)
			assertValidPath(t, gp, rp)
		} else {
			assertNoPath(t, gr, rr)
			assertNoPath(t, gp, rp)
		}

		if diff := cmp.Diff(snapshot(gr), snapshot(gi)); diff != "" {
			t.Fatalf("case %d: strategies diverge (-recursive +iterative):\n%s", i, diff)
		}
		assert.Equal(t, rr.Path, ri.Path)
		assert.Equal(t, rr.Visited, ri.Visited)
		assert.Equal(t, rr.Backtracks, ri.Backtracks)
		assert.Equal(t, rr.MaxDepth, ri.MaxDepth)
		assert.LessOrEqual(t, rp.Visited, rows*cols)
	}
}

// TestSolve_FailureIdempotent re-solves an unsolvable grid and compares coverage.
func TestSolve_FailureIdempotent(t *testing.T) {
	g := buildGrid(t,
		"S..#",
		".#.#",
		"...#",
		"###E",
	)
	first, err := solver.Solve(g)
	require.NoError(t, err)
	assertNoPath(t, g, first)
	before := snapshot(g)

	second, err := solver.Solve(g)
	require.NoError(t, err)
	assertNoPath(t, g, second)
	if diff := cmp.Diff(before, snapshot(g)); diff != "" {
		t.Errorf("coverage changed on second solve (-first +second):\n%s", diff)
	}
}

// TestSolve_SolvedGridSolvesAgain re-solves a grid whose previous path is
// still marked, then makes it unsolvable and checks the old path is gone.
func TestSolve_SolvedGridSolvesAgain(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			g := buildGrid(t, "S..", "...", "..E")
			first, err := solver.Solve(g, solver.WithStrategy(s))
			require.NoError(t, err)
			require.True(t, first.Found)

			again, err := solver.Solve(g, solver.WithStrategy(s))
			require.NoError(t, err)
			assertValidPath(t, g, again)
			assert.Equal(t, first.Path, again.Path)

			g.SetWall(2, 2)
			failed, err := solver.Solve(g, solver.WithStrategy(s))
			require.NoError(t, err)
			assertNoPath(t, g, failed)
			assert.Equal(t, 9, g.SearchedCount(), "coverage from earlier searches is kept")

			g.Reset()
			assert.Zero(t, g.SearchedCount())
			assert.Empty(t, g.PathCells())
		})
	}
}

// TestSolve_VisitedCountsEntries: without pruning the walk re-enters cells
// through the loop, so Visited exceeds the distinct searched cells.
func TestSolve_VisitedCountsEntries(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			g := buildGrid(t, "S..", "..E")
			g.SetWall(1, 2)
			entries := 0
			res, err := solver.Solve(g,
				solver.WithStrategy(s),
				solver.WithOnVisit(func(maze.Coord) error {
					entries++
					return nil
				}))
			require.NoError(t, err)
			assertNoPath(t, g, res)
			assert.Equal(t, entries, res.Visited)
			assert.Equal(t, 5, g.SearchedCount())
			assert.Greater(t, res.Visited, g.SearchedCount())

			g.Reset()
			pruned, err := solver.Solve(g, solver.WithStrategy(s), solver.WithPrune())
			require.NoError(t, err)
			assert.Equal(t, g.SearchedCount(), pruned.Visited)
		})
	}
}

//----------------------------------------------------------------------------//
// Option Tests
//----------------------------------------------------------------------------//

func TestSolve_AutoStrategy(t *testing.T) {
	g := buildGrid(t, "S..", "..E")

	res, err := solver.Solve(g)
	require.NoError(t, err)
	assert.Equal(t, solver.Recursive, res.Strategy)

	g.Reset()
	res, err = solver.Solve(g, solver.WithMaxRecursiveCells(4))
	require.NoError(t, err)
	assert.Equal(t, solver.Iterative, res.Strategy)
}

func TestSolve_LargeGridIterative(t *testing.T) {
	// A 1×50000 corridor is deeper than Auto allows recursively at threshold 1000.
	g := maze.MustNew(maze.Config{Rows: 1, Cols: 50000})
	g.SetStart(0, 0)
	g.SetEnd(0, 49999)

	res, err := solver.Solve(g, solver.WithMaxRecursiveCells(1000))
	require.NoError(t, err)
	assert.Equal(t, solver.Iterative, res.Strategy)
	assert.True(t, res.Found)
	assert.Len(t, res.Path, 50000)
	assert.Equal(t, 49999, res.MaxDepth)
}

func TestSolve_OnVisitError(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			g := buildGrid(t, "S..", "..E")
			stop := maze.Coord{Row: 1, Col: 1}
			var visited []maze.Coord

			res, err := solver.Solve(g, solver.WithStrategy(s), solver.WithOnVisit(func(c maze.Coord) error {
				visited = append(visited, c)
				if c == stop {
					return errors.New("halt")
				}
				return nil
			}))
			require.NotNil(t, res)
			assert.ErrorContains(t, err, "OnVisit hook for (1,1)")
			assert.False(t, res.Found)
			assert.Empty(t, g.PathCells(), "aborted search rolls back InPath")
			assert.Equal(t, stop, visited[len(visited)-1])
		})
	}
}

func TestSolve_OnBacktrackHook(t *testing.T) {
	g := buildGrid(t,
		"S..",
		"##.",
		"E#.",
	)
	var dead []maze.Coord
	res, err := solver.Solve(g, solver.WithOnBacktrack(func(c maze.Coord) error {
		dead = append(dead, c)
		return nil
	}))
	require.NoError(t, err)
	assert.False(t, res.Found)
	// Post-order: deepest cell first, start last.
	want := []maze.Coord{{Row: 2, Col: 2}, {Row: 1, Col: 2}, {Row: 0, Col: 2}, {Row: 0, Col: 1}, {Row: 0, Col: 0}}
	assert.Equal(t, want, dead)

	g.Reset()
	_, err = solver.Solve(g, solver.WithStrategy(solver.Iterative), solver.WithOnBacktrack(func(c maze.Coord) error {
		return errors.New("no retreat")
	}))
	assert.ErrorContains(t, err, "OnBacktrack hook for (2,2)")
}

func TestSolve_Canceled(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			g := buildGrid(t, "S..", "..E")
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			res, err := solver.Solve(g, solver.WithStrategy(s), solver.WithContext(ctx))
			assert.NotNil(t, res)
			assert.ErrorIs(t, err, context.Canceled)
			assert.Zero(t, g.SearchedCount())
		})
	}
}

func TestParseStrategy(t *testing.T) {
	cases := map[string]solver.Strategy{
		"":           solver.Auto,
		"auto":       solver.Auto,
		"Recursive":  solver.Recursive,
		" iterative": solver.Iterative,
	}
	for in, want := range cases {
		got, err := solver.ParseStrategy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := solver.ParseStrategy("bfs")
	assert.ErrorIs(t, err, solver.ErrUnknownStrategy)
	assert.Equal(t, "Strategy(7)", solver.Strategy(7).String())
}
