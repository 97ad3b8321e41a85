package solver

import "github.com/katalvlaran/lvmaze/maze"

// frame is one cell on the explicit stack and the index into
// maze.Directions of the next neighbor to try.
type frame struct {
	at   maze.Coord
	next int
}

// iterate performs the same walk as visit with an explicit frame stack, so
// grid size is not limited by goroutine stack depth. Cells are entered,
// marked and backtracked in exactly the same order as the recursive walk.
func (w *walker) iterate(start maze.Coord) (bool, error) {
	if err := w.opts.Ctx.Err(); err != nil {
		return false, err
	}
	if !w.enterable(start) {
		return false, nil
	}
	if err := w.enter(start, 0); err != nil {
		return false, err
	}
	if start == w.end {
		return true, nil
	}

	stack := []frame{{at: start}}
	for len(stack) > 0 {
		if err := w.opts.Ctx.Err(); err != nil {
			return false, err
		}

		top := &stack[len(stack)-1]
		if top.next == len(maze.Directions) {
			// every neighbor failed: dead end
			at := top.at
			stack = stack[:len(stack)-1]
			if err := w.leave(at); err != nil {
				return false, err
			}
			continue
		}

		n := top.at.Step(maze.Directions[top.next])
		top.next++
		if !w.enterable(n) {
			continue
		}
		if err := w.enter(n, len(stack)); err != nil {
			return false, err
		}
		if n == w.end {
			return true, nil
		}
		stack = append(stack, frame{at: n})
	}

	return false, nil
}
