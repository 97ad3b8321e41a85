package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/lvmaze/maze"
)

var (
	// ErrGridNil is returned when a nil *maze.Grid is passed to Solve.
	ErrGridNil = errors.New("solver: grid is nil")

	// ErrStartOutOfBounds indicates the grid's start coordinate is outside the grid.
	ErrStartOutOfBounds = errors.New("solver: start is out of bounds")

	// ErrEndOutOfBounds indicates the grid's end coordinate is outside the grid.
	ErrEndOutOfBounds = errors.New("solver: end is out of bounds")

	// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
	ErrUnknownStrategy = errors.New("solver: unknown strategy")
)

// DefaultMaxRecursiveCells is the largest grid Auto solves recursively.
const DefaultMaxRecursiveCells = 1 << 16

// Strategy selects how the depth-first walk keeps its frames.
type Strategy int

const (
	// Auto picks Recursive for grids up to MaxRecursiveCells cells and Iterative above.
	Auto Strategy = iota
	// Recursive uses one Go call frame per cell attempt.
	Recursive
	// Iterative uses an explicit slice of frames.
	Iterative
)

func (s Strategy) String() string {
	switch s {
	case Auto:
		return "auto"
	case Recursive:
		return "recursive"
	case Iterative:
		return "iterative"
	}

	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps "auto", "recursive" or "iterative" (any case) to a Strategy.
// The empty string maps to Auto.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Auto, nil
	case "recursive":
		return Recursive, nil
	case "iterative":
		return Iterative, nil
	}

	return Auto, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Option configures optional behavior of Solve.
type Option func(*Options)

// Options holds configurable parameters for a search.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	// It is checked once per cell attempt.
	Ctx context.Context

	// Strategy selects recursive or iterative frames. Default Auto.
	Strategy Strategy

	// MaxRecursiveCells is the Auto threshold on Rows×Cols.
	MaxRecursiveCells int

	// Prune refuses cells already entered during this call, not only cells
	// on the current path.
	Prune bool

	// OnVisit, if non-nil, is invoked after a cell is marked Searched and InPath.
	// Returning an error aborts the search.
	OnVisit func(c maze.Coord) error

	// OnBacktrack, if non-nil, is invoked after a dead-end cell's InPath is cleared.
	// Returning an error aborts the search.
	OnBacktrack func(c maze.Coord) error
}

// DefaultOptions returns Options with:
//   - Background context
//   - Auto strategy with DefaultMaxRecursiveCells
//   - No pruning
//   - No hooks
func DefaultOptions() Options {
	return Options{
		Ctx:               context.Background(),
		Strategy:          Auto,
		MaxRecursiveCells: DefaultMaxRecursiveCells,
		Prune:             false,
		OnVisit:           nil,
		OnBacktrack:       nil,
	}
}

// WithContext returns an Option that sets the Context for the search.
// Passing a nil context has no effect (Background is retained).
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithStrategy returns an Option that selects the frame strategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		o.Strategy = s
	}
}

// WithMaxRecursiveCells returns an Option that sets the Auto threshold.
// Non-positive values keep the default.
func WithMaxRecursiveCells(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxRecursiveCells = n
		}
	}
}

// WithPrune returns an Option that skips cells already entered during this call.
func WithPrune() Option {
	return func(o *Options) {
		o.Prune = true
	}
}

// WithOnVisit returns an Option that installs fn as the enter hook.
func WithOnVisit(fn func(c maze.Coord) error) Option {
	return func(o *Options) {
		o.OnVisit = fn
	}
}

// WithOnBacktrack returns an Option that installs fn as the dead-end hook.
func WithOnBacktrack(fn func(c maze.Coord) error) Option {
	return func(o *Options) {
		o.OnBacktrack = fn
	}
}

// Result captures the outcome of a search.
type Result struct {
	// Found reports whether a path from start to end exists along the walk.
	Found bool

	// Path lists the path cells from start to end when Found; nil otherwise.
	Path []maze.Coord

	// Visited counts cell entries during this call, repeats included: without
	// Prune a cell may be entered more than once through different paths, so
	// Visited can exceed the grid's SearchedCount. With Prune it never does.
	Visited int

	// Backtracks counts dead ends whose InPath flag was cleared.
	Backtracks int

	// MaxDepth is the longest candidate path seen, in edges from start.
	MaxDepth int

	// Strategy is the strategy that ran (never Auto).
	Strategy Strategy
}
