package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmaze/template"
)

var (
	templateOut string
	configOut   string
)

// runRegions prints each connected open region and whether start reaches end.
func runRegions(cmd *cobra.Command, args []string) error {
	tmpl, err := loadTemplate(args)
	if err != nil {
		return err
	}
	g, err := template.Build(tmpl, settings.Maze)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	regions := g.Regions()
	fmt.Fprintf(out, "Regions: %d\n", len(regions))
	for i, region := range regions {
		fmt.Fprintf(out, "  #%d: %d cells from %v\n", i, len(region), region[0])
	}
	fmt.Fprintf(out, "Start %v reaches end %v: %t\n", g.Start(), g.End(), g.Start() == g.End() || g.Connected(g.Start(), g.End()))

	return nil
}

// runTemplate writes the default template, or converts the given one.
func runTemplate(cmd *cobra.Command, args []string) error {
	tmpl, err := loadTemplate(args)
	if err != nil {
		return err
	}
	if err := template.WriteFile(templateOut, tmpl); err != nil {
		return err
	}

	logger.Info("Wrote template", zap.String("path", templateOut), zap.Int("walls", len(tmpl.Walls)))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote template to %s\n", templateOut)

	return nil
}

// runConfig writes the effective configuration.
func runConfig(cmd *cobra.Command, args []string) error {
	if err := settings.Save(configOut); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", configOut)

	return nil
}
