package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"geodraw/internal/config"
	"geodraw/internal/logging"
	"geodraw/internal/tui"
)

type options struct {
	configPath string
	overlay    string
	logFile    string
	logLevel   string
	centerLon  float64
	centerLat  float64
}

func main() {
	if err := rootCmd(&options{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geodraw [overlay]",
		Short: "Draw, select and rotate polygons on a terminal globe",
		Long: `geodraw renders an orthographic globe in the terminal. In draw mode
each click adds a vertex and a double-click closes the polygon. In select
mode a click selects a shape and dragging it rotates it about its centroid.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.overlay = overlayPath(*o, args)
			return run(cmd, *o)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "TOML configuration file")
	f.StringVarP(&o.overlay, "overlay", "o", "", "read-only overlay (GeoJSON, WKT or CSV)")
	f.StringVar(&o.logFile, "log-file", "", "write logs to this file")
	f.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.Float64Var(&o.centerLon, "center-lon", 0, "initial camera longitude")
	f.Float64Var(&o.centerLat, "center-lat", 0, "initial camera latitude")
	return cmd
}

// overlayPath prefers --overlay over the positional argument.
func overlayPath(o options, args []string) string {
	if o.overlay == "" && len(args) == 1 {
		return args[0]
	}
	return o.overlay
}

// resolveConfig loads the config file, if any, and applies the flags the
// user actually set on top of it.
func resolveConfig(cmd *cobra.Command, o options) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return config.Config{}, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("center-lon") {
		cfg.Globe.CenterLon = o.centerLon
	}
	if flags.Changed("center-lat") {
		cfg.Globe.CenterLat = o.centerLat
	}
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, o options) error {
	cfg, err := resolveConfig(cmd, o)
	if err != nil {
		return err
	}

	log, closer, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	var m tui.Model
	if o.overlay != "" {
		m, err = tui.NewWithOverlay(cfg, log, o.overlay)
	} else {
		m, err = tui.New(cfg, log)
	}
	if err != nil {
		return err
	}
	log.Info("geodraw started")
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}
