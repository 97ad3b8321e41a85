// Package solver searches a maze.Grid for a path from its start to its end
// using depth-first search with backtracking and loop detection.
//
// What:
//
//   - Solve(g, opts...) walks the grid in the fixed neighbor order down, up,
//     left, right and stops at the first path found (not necessarily the
//     shortest).
//   - Every cell the walk enters gets Searched=true (kept for display) and
//     InPath=true; a dead end clears InPath again on the way back.
//   - On success the InPath cells form one 4-connected simple path from start
//     to end. On failure no InPath flag is left set.
//
// Strategies:
//
//   - Recursive:  one call frame per cell attempt.
//   - Iterative:  an explicit stack of (cell, next direction) frames with the
//     same neighbor order and flag trace as Recursive.
//   - Auto:       Recursive up to MaxRecursiveCells grid cells, Iterative above.
//
// Options:
//
//   - WithStrategy(s)             pick Recursive, Iterative or Auto (default).
//   - WithMaxRecursiveCells(n)    Auto threshold (default 1<<16).
//   - WithPrune()                 skip cells already entered during this call.
//   - WithContext(ctx)            abort when ctx is done.
//   - WithOnVisit(fn)             hook when a cell is entered; error aborts.
//   - WithOnBacktrack(fn)         hook when a dead end is left; error aborts.
//
// Without WithPrune a cell is only refused while it is on the current path,
// so the walk may revisit a cell through a different path; on unsolvable open
// areas this is exponential in the area size. WithPrune makes the walk O(R×C)
// and still finds a path whenever one exists, though possibly a different one.
//
// Complexity:
//
//   - Time:   exponential worst case; O(R×C) with WithPrune.
//   - Memory: O(R×C) for the path trail and recursion or frame stack.
//
// Errors:
//
//   - ErrGridNil               grid pointer is nil.
//   - ErrStartOutOfBounds      the grid's start lies outside it.
//   - ErrEndOutOfBounds        the grid's end lies outside it.
//   - context errors           search canceled via WithContext.
//   - hook errors              propagated from OnVisit or OnBacktrack.
//
// Not finding a path is not an error: Result.Found is false and err is nil.
package solver
