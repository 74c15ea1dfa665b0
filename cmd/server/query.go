// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/dramarec/internal/api"
	"github.com/tomtom215/dramarec/internal/config"
	"github.com/tomtom215/dramarec/internal/logging"
	"github.com/tomtom215/dramarec/internal/recommend"
)

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Print recommendations for a title as JSON",
		Long: `Loads the catalog, builds the similarity index and prints the
top recommendations for the given title. Multiple arguments are joined
with spaces, so quoting the title is optional.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			engine, cleanup, err := loadEngine(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if !cmd.Flags().Changed("count") {
				n = engine.DefaultCount()
			}
			title := strings.Join(args, " ")
			res, err := engine.Recommend(cmd.Context(), title, n)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), api.NewRecommendResponse(title, res))
		},
	}

	cmd.Flags().IntVarP(&n, "count", "n", 0, "Number of recommendations (default: recommend.default_n)")
	return cmd
}

func newInspectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Build the index and print its status as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			engine, cleanup, err := loadEngine(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			return writeJSON(cmd.OutOrStdout(), engine.Status())
		},
	}
}

// loadEngine creates an engine and builds its first snapshot.
func loadEngine(ctx context.Context, cfg *config.Config) (*recommend.Engine, func(), error) {
	engine, cleanup, err := newEngine(cfg, logging.Logger())
	if err != nil {
		return nil, cleanup, err
	}
	if _, err := engine.Reload(ctx); err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to build index: %w", err)
	}
	return engine, cleanup, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
