package solver

import (
	"fmt"

	"github.com/katalvlaran/lvmaze/maze"
)

// walker encapsulates state during one search.
type walker struct {
	grid  *maze.Grid // grid being searched, mutated in place
	end   maze.Coord // cached grid end
	opts  Options    // search options
	res   *Result    // result collector
	trail []maze.Coord
	seen  []bool // cells entered during this call; only with Prune
}

// Solve searches g for a path from g.Start() to g.End().
//
// Behavior:
//  1. Validate the grid and its start/end coordinates.
//  2. Apply options and resolve Auto to a concrete strategy.
//  3. Clear any InPath flags left by an earlier search; Searched is kept.
//  4. Walk depth-first in the order down, up, left, right, marking cells
//     Searched and InPath on entry and clearing InPath on dead ends.
//  5. On success, leave the path's InPath flags set and copy it to Result.Path.
//
// If a hook or the context aborts the walk, every InPath flag is cleared and
// the error is returned alongside the partial Result.
func Solve(g *maze.Grid, opts ...Option) (*Result, error) {
	// 1. Validate input grid
	if g == nil {
		return nil, ErrGridNil
	}
	if !g.Contains(g.Start()) {
		return nil, fmt.Errorf("%w: %v", ErrStartOutOfBounds, g.Start())
	}
	if !g.Contains(g.End()) {
		return nil, fmt.Errorf("%w: %v", ErrEndOutOfBounds, g.End())
	}

	// 2. Apply options
	sopts := DefaultOptions()
	for _, fn := range opts {
		fn(&sopts)
	}
	strategy := sopts.Strategy
	if strategy != Recursive && strategy != Iterative {
		strategy = Recursive
		if g.Rows()*g.Cols() > sopts.MaxRecursiveCells {
			strategy = Iterative
		}
	}

	// 3. A path from a previous Solve would block the loop check at start
	g.ClearPath()

	res := &Result{Strategy: strategy}
	w := &walker{grid: g, end: g.End(), opts: sopts, res: res}
	if sopts.Prune {
		w.seen = make([]bool, g.Rows()*g.Cols())
	}

	// 4. Walk
	var (
		found bool
		err   error
	)
	if strategy == Iterative {
		found, err = w.iterate(g.Start())
	} else {
		found, err = w.visit(g.Start(), 0)
	}
	if err != nil {
		g.ClearPath()

		return res, err
	}

	// 5. Record path
	res.Found = found
	if found {
		res.Path = append([]maze.Coord(nil), w.trail...)
	}

	return res, nil
}

// enterable reports whether the walk may step onto c: in bounds, not a wall,
// not already on the current path (loop), and not pruned.
func (w *walker) enterable(c maze.Coord) bool {
	if !w.grid.Passable(c.Row, c.Col) {
		return false
	}
	if w.grid.InPath(c.Row, c.Col) {
		return false
	}
	if w.seen != nil && w.seen[c.Row*w.grid.Cols()+c.Col] {
		return false
	}

	return true
}

// enter marks c Searched and InPath, pushes it on the trail and runs OnVisit.
func (w *walker) enter(c maze.Coord, depth int) error {
	w.grid.SetSearched(c.Row, c.Col, true)
	w.grid.SetInPath(c.Row, c.Col, true)
	if w.seen != nil {
		w.seen[c.Row*w.grid.Cols()+c.Col] = true
	}
	w.trail = append(w.trail, c)
	w.res.Visited++
	if depth > w.res.MaxDepth {
		w.res.MaxDepth = depth
	}

	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(c); err != nil {
			return fmt.Errorf("solver: OnVisit hook for %v: %w", c, err)
		}
	}

	return nil
}

// leave clears InPath on a dead end, pops the trail and runs OnBacktrack.
func (w *walker) leave(c maze.Coord) error {
	w.grid.SetInPath(c.Row, c.Col, false)
	w.trail = w.trail[:len(w.trail)-1]
	w.res.Backtracks++

	if w.opts.OnBacktrack != nil {
		if err := w.opts.OnBacktrack(c); err != nil {
			return fmt.Errorf("solver: OnBacktrack hook for %v: %w", c, err)
		}
	}

	return nil
}

// visit is the recursive walk: one call per cell attempt.
func (w *walker) visit(c maze.Coord, depth int) (bool, error) {
	// 1. Cancellation check
	if err := w.opts.Ctx.Err(); err != nil {
		return false, err
	}

	// 2. Bounds, wall and loop checks
	if !w.enterable(c) {
		return false, nil
	}

	// 3. Commit to the candidate path, then test for the end
	if err := w.enter(c, depth); err != nil {
		return false, err
	}
	if c == w.end {
		return true, nil
	}

	// 4. Neighbors in fixed order; first success wins
	for _, d := range maze.Directions {
		found, err := w.visit(c.Step(d), depth+1)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}

	// 5. Dead end
	return false, w.leave(c)
}
