package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmaze/render"
	"github.com/katalvlaran/lvmaze/solver"
	"github.com/katalvlaran/lvmaze/template"
)

var pngPath string

// runSolve prints the maze, searches it and prints the outcome.
func runSolve(cmd *cobra.Command, args []string) error {
	tmpl, err := loadTemplate(args)
	if err != nil {
		return err
	}
	g, err := template.Build(tmpl, settings.Maze)
	if err != nil {
		return err
	}

	r := newRenderer()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Unsolved Maze: ")
	fmt.Fprintln(out, r.String(g))

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	res, err := solver.Solve(g, append(settings.SolverOptions(), solver.WithContext(ctx))...)
	if err != nil {
		return fmt.Errorf("search aborted: %w", err)
	}
	logger.Debug("Search finished",
		zap.Bool("found", res.Found),
		zap.Stringer("strategy", res.Strategy),
		zap.Int("visited", res.Visited),
		zap.Int("backtracks", res.Backtracks),
		zap.Int("max_depth", res.MaxDepth),
		zap.Int("searched", g.SearchedCount()),
		zap.Duration("elapsed", time.Since(start)))

	if res.Found {
		fmt.Fprintln(out, "Solved Maze: ")
		fmt.Fprintln(out, r.String(g))
	} else {
		fmt.Fprintln(out, "Maze is unsolvable.")
	}

	if pngPath != "" {
		f, err := os.Create(pngPath)
		if err != nil {
			return fmt.Errorf("failed to create image: %w", err)
		}
		defer f.Close()
		if err := render.WritePNG(f, g, render.DefaultCellPixels); err != nil {
			return err
		}
		logger.Info("Wrote image", zap.String("path", pngPath))
	}

	return nil
}
