// Command reflowctl is the out-of-core harness entrypoint: it parses the
// process configuration (spec.md §6), wires up a cache and session, and
// hands control to the file-watcher/script-execution loop. The watcher
// itself, the preview GUI, and video codecs are out of scope (spec.md §1)
// — this binary only demonstrates how an external harness would drive the
// core.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/reflowfx/reflow/cache"
	"github.com/reflowfx/reflow/config"
	"github.com/reflowfx/reflow/core"
	"github.com/reflowfx/reflow/session"
	"github.com/reflowfx/reflow/vfx"
)

func main() {
	cfg := config.Default()

	root := &cobra.Command{
		Use:   "reflowctl",
		Short: "Run the interactive video-compositing core against a user script",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfg.Filepath, "filepath", cfg.Filepath, "user script to execute")
	flags.IntVar(&cfg.CacheSizeMiB, "cacheSize", cfg.CacheSizeMiB, "committed cache size in MiB")
	flags.StringVar((*string)(&cfg.CacheAlgorithm), "cacheAlgorithm", string(cfg.CacheAlgorithm), "eviction policy: specialised|fifo|lru|mru")
	flags.BoolVar(&cfg.EnableStatistics, "enableStatistics", cfg.EnableStatistics, "reset cache hit/miss statistics at start-up")
	flags.StringVar(&cfg.VisualiseFilepath, "visualiseFilepath", cfg.VisualiseFilepath, "priority-graph visualisation path (accepted; no dump is written)")
	flags.BoolVar(&cfg.DisableTransformations, "disableTransformations", cfg.DisableTransformations, "logged only; CanonicalOrder/FlattenConcats still run")
	flags.StringVar(&cfg.LogFilepath, "logFilepath", cfg.LogFilepath, "redirect structured logs to this file instead of stderr")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("reflowctl exited with an error")
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.LogFilepath != "" {
		f, err := os.OpenFile(cfg.LogFilepath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("run: opening logFilepath: %w", err)
		}
		defer func() { _ = f.Close() }()
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	}

	log.Info().
		Str("filepath", cfg.Filepath).
		Int("cacheSizeMiB", cfg.CacheSizeMiB).
		Str("cacheAlgorithm", string(cfg.CacheAlgorithm)).
		Bool("disableTransformations", cfg.DisableTransformations).
		Msg("starting session")

	c := cache.NewCache(cfg.CacheSizeBytes(), string(cfg.CacheAlgorithm))
	if cfg.EnableStatistics {
		c.ResetStats()
	}

	graph := core.Current()
	sess := session.New(graph, c, session.FixupOptions{
		ViewportWidth:  1280,
		ViewportHeight: 720,
		Interpolation:  vfx.InterpolationArea,
	}, 16)

	if err := sess.RequestStart(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if _, err := sess.Pump(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	// A real harness would now exec cfg.Filepath as a user script against
	// sess.Graph(), route frame(n) calls through sess.Get/Set, and enqueue
	// RequestScriptReturned()/RequestScriptFailed() on completion. The
	// script-execution loop and file watcher are out of core scope
	// (spec.md §1) — reflowctl exists to demonstrate the wiring, not to
	// replace the harness.
	if err := sess.RequestScriptReturned(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if _, err := sess.Pump(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	log.Info().Str("state", sess.State().String()).Msg("session finalized")
	return nil
}
