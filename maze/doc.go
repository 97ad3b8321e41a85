// Package maze holds the grid model searched by package solver: a
// rectangular, row-major container of cells plus a start and an end
// coordinate.
//
// What:
//
//   - Grid owns Rows×Cols cells; every cell starts passable with no flags.
//   - Walls, the start marker and the end marker are applied in place.
//   - Search flags (InPath, Searched) are read and written by coordinate.
//   - Regions groups passable cells into 4-connected components.
//
// Why:
//
//   - Solvers mutate one shared grid instead of copying state per step.
//   - Renderers read the same flags after the search to draw the trace.
//
// Dimensions:
//
//   - Config{Rows, Cols} is passed at construction; there are no
//     package-level size constants. DefaultConfig is 8×8.
//
// Complexity:
//
//   - New, Reset, PathCells:  O(R×C) time.
//   - Cell accessors:         O(1).
//   - Regions:                O(R×C) time, O(R×C) memory (BFS).
//
// Errors:
//
//   - ErrInvalidDimensions: Rows or Cols is not positive.
//
// A Grid is owned by a single goroutine for the length of a run; it carries
// no locks.
package maze
