// Package lvmaze is a grid maze toolkit built around a depth-first solver:
// load a maze, draw it, search it, draw the result.
//
// 🚀 What is in lvmaze?
//
//	• maze/: Grid, Cell and Coord: wall, start/end and search flags
//	• solver/: depth-first search with backtracking (recursive or iterative)
//	• template/: JSON/YAML maze templates: walls, start, end
//	• render/: text drawing (box-drawing or ASCII) and PNG images
//	• config/: YAML config file, .env and LVMAZE_* overrides
//	• cache/: solve results in memory or Redis
//	• server/: HTTP API (solve, render, health)
//	• cmd/lvmaze: the command-line tool
//
// ✨ How the solver behaves
//
//   - Neighbors are tried down, up, left, right.
//   - Every entered cell is marked Searched and stays marked.
//   - Cells on the current candidate path are InPath; backtracking clears them.
//   - Only cells already on the path are refused, so open areas can be
//     re-entered from another direction. WithPrune turns that off.
//   - Failing to find a path is a result, not an error.
//
// Quick ASCII example (3×3, walls at (1,0) and (1,1)):
//
//	+---+      +---+
//	|S  |      |S**|
//	|## |  ->  |##*|
//	|E  |      |E**|
//	+---+      +---+
//
//	go install github.com/katalvlaran/lvmaze/cmd/lvmaze@latest
package lvmaze
