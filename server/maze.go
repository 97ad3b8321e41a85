package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/lvmaze/cache"
	"github.com/katalvlaran/lvmaze/config"
	"github.com/katalvlaran/lvmaze/maze"
	"github.com/katalvlaran/lvmaze/render"
	"github.com/katalvlaran/lvmaze/solver"
	"github.com/katalvlaran/lvmaze/template"
)

// ErrTooLarge is returned for requests whose grid exceeds the cell limit.
var ErrTooLarge = errors.New("server: maze too large")

// pinger is implemented by stores that can report reachability.
type pinger interface {
	Ping(ctx context.Context) error
}

// MazeController serves the solve, render and health routes.
type MazeController struct {
	defaults maze.Config
	maxCells int
	timeout  time.Duration
	search   config.SolverConfig
	store    cache.Store
	flight   singleflight.Group
	logger   *zap.Logger
}

// NewMazeController wires a controller to cfg. store may be nil to disable
// caching.
func NewMazeController(cfg *config.Config, store cache.Store, logger *zap.Logger) *MazeController {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MazeController{
		defaults: cfg.Maze,
		maxCells: cfg.Server.MaxCells,
		timeout:  cfg.Server.SolveTimeout,
		search:   cfg.Solver,
		store:    store,
		logger:   logger,
	}
}

// Register mounts the routes on route.
func (c *MazeController) Register(route *gin.RouterGroup) {
	route.POST("/solve", c.solveMaze)
	route.POST("/render", c.renderMaze)
	route.GET("/health", c.health)
}

// job is a validated request ready to run.
type job struct {
	grid *maze.Grid
	opts []solver.Option
	key  string
}

// prepare validates req and builds its grid. Every error it returns is a
// client error.
func (c *MazeController) prepare(req SolveRequest) (*job, error) {
	cfg := maze.Config{Rows: req.Rows, Cols: req.Cols}
	if cfg.Rows == 0 {
		cfg.Rows = c.defaults.Rows
	}
	if cfg.Cols == 0 {
		cfg.Cols = c.defaults.Cols
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Cells() > c.maxCells {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrTooLarge, cfg.Rows, cfg.Cols, c.maxCells)
	}

	name := req.Strategy
	if name == "" {
		name = c.search.Strategy
	}
	strategy, err := solver.ParseStrategy(name)
	if err != nil {
		return nil, err
	}
	prune := c.search.Prune
	if req.Prune != nil {
		prune = *req.Prune
	}

	tmpl := template.Default(cfg)
	if req.Template != nil {
		tmpl = *req.Template
	}
	g, err := template.Build(tmpl, cfg)
	if err != nil {
		return nil, err
	}

	opts := []solver.Option{
		solver.WithStrategy(strategy),
		solver.WithMaxRecursiveCells(c.search.MaxRecursiveCells),
	}
	variant := ""
	if prune {
		opts = append(opts, solver.WithPrune())
		variant = "prune"
	}

	return &job{
		grid: g,
		opts: opts,
		key:  cache.Key(tmpl, cfg, variant),
	}, nil
}

func (c *MazeController) bind(ctx *gin.Context) (*job, bool) {
	var req SolveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}
	j, err := c.prepare(req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}

	return j, true
}

// solveMaze handles POST /solve.
func (c *MazeController) solveMaze(ctx *gin.Context) {
	j, ok := c.bind(ctx)
	if !ok {
		return
	}

	runID := uuid.NewString()
	start := time.Now()
	entry, cached, err := c.result(ctx.Request.Context(), j)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Error("Solve failed", zap.String("run_id", runID), zap.Error(err))
		_ = ctx.Error(err)
		ctx.JSON(http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}

	c.logger.Info("Solved maze",
		zap.String("run_id", runID),
		zap.Int("rows", j.grid.Rows()),
		zap.Int("cols", j.grid.Cols()),
		zap.Bool("found", entry.Found),
		zap.Int("searched", entry.Searched),
		zap.Bool("cached", cached),
		zap.Duration("elapsed", elapsed))

	path := entry.Path
	if path == nil {
		path = []maze.Coord{}
	}
	ctx.JSON(http.StatusOK, SolveResponse{
		RunID:     runID,
		Found:     entry.Found,
		Path:      path,
		Searched:  entry.Searched,
		Before:    entry.Before,
		After:     entry.After,
		ElapsedMs: elapsed.Seconds() * 1000,
		Cached:    cached,
	})
}

type flightResult struct {
	entry  cache.Entry
	cached bool
}

// result returns the entry for j from the cache or by solving. Concurrent
// requests for the same key share one search; with a Locker store the
// search is also exclusive across instances. The shared search is detached
// from the caller that started it and bounded by the solve timeout, so one
// client going away does not fail the others; each caller still returns
// early when its own ctx ends.
func (c *MazeController) result(ctx context.Context, j *job) (cache.Entry, bool, error) {
	if e, ok := c.lookup(ctx, j.key); ok {
		return e, true, nil
	}

	ch := c.flight.DoChan(j.key, func() (interface{}, error) {
		sctx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			sctx, cancel = context.WithTimeout(sctx, c.timeout)
			defer cancel()
		}

		return c.solveShared(sctx, j)
	})

	select {
	case <-ctx.Done():
		return cache.Entry{}, false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return cache.Entry{}, false, r.Err
		}
		fr := r.Val.(flightResult)

		return fr.entry, fr.cached, nil
	}
}

// solveShared runs one search for j under the store's lock, if it has one,
// and caches the entry.
func (c *MazeController) solveShared(ctx context.Context, j *job) (flightResult, error) {
	if locker, ok := c.store.(cache.Locker); ok {
		unlock, err := locker.Lock(ctx, j.key)
		if err != nil {
			c.logger.Warn("Solving without cache lock", zap.String("key", j.key), zap.Error(err))
		} else {
			defer unlock()
			if e, ok := c.lookup(ctx, j.key); ok {
				return flightResult{entry: e, cached: true}, nil
			}
		}
	}

	e, err := run(ctx, j)
	if err != nil {
		return flightResult{}, err
	}
	if c.store != nil {
		if err := c.store.Put(ctx, j.key, e); err != nil {
			c.logger.Warn("Cache put failed", zap.String("key", j.key), zap.Error(err))
		}
	}

	return flightResult{entry: e}, nil
}

// lookup reads key from the store. Store errors are logged and read as a miss.
func (c *MazeController) lookup(ctx context.Context, key string) (cache.Entry, bool) {
	if c.store == nil {
		return cache.Entry{}, false
	}
	e, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		return cache.Entry{}, false
	}

	return e, ok
}

// run searches j's grid and captures both renders.
func run(ctx context.Context, j *job) (cache.Entry, error) {
	before := render.String(j.grid)
	res, err := solver.Solve(j.grid, append(j.opts, solver.WithContext(ctx))...)
	if err != nil {
		return cache.Entry{}, err
	}

	return cache.Entry{
		Found:    res.Found,
		Path:     res.Path,
		Searched: j.grid.SearchedCount(),
		Before:   before,
		After:    render.String(j.grid),
	}, nil
}

// renderMaze handles POST /render. ?palette=ascii selects the ASCII palette and
// ?format=png returns an image instead of JSON.
func (c *MazeController) renderMaze(ctx *gin.Context) {
	j, ok := c.bind(ctx)
	if !ok {
		return
	}

	if ctx.Query("format") == "png" {
		ctx.Header("Content-Type", "image/png")
		ctx.Status(http.StatusOK)
		if err := render.WritePNG(ctx.Writer, j.grid, render.DefaultCellPixels); err != nil {
			_ = ctx.Error(err)
		}
		return
	}

	r := render.New()
	if ctx.Query("palette") == "ascii" {
		r = render.New(render.WithPalette(render.ASCIIPalette()))
	}
	ctx.JSON(http.StatusOK, RenderResponse{Rendered: r.String(j.grid)})
}

// health handles GET /health.
func (c *MazeController) health(ctx *gin.Context) {
	resp := HealthResponse{Status: "ok"}
	if p, ok := c.store.(pinger); ok {
		resp.Cache = "ok"
		if err := p.Ping(ctx.Request.Context()); err != nil {
			c.logger.Warn("Cache ping failed", zap.Error(err))
			resp.Cache = "unreachable"
		}
	}

	ctx.JSON(http.StatusOK, resp)
}
