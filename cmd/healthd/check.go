package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/healthstatus/config"
	"github.com/jonwraymond/healthstatus/health"
	"github.com/jonwraymond/healthstatus/observe"
)

var errDown = errors.New("aggregate health is DOWN")

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Evaluate all configured checks once and print the status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return executeCheck(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}
}

// executeCheck forces one evaluation and writes the full status as indented
// JSON. It returns errDown when the aggregate is DOWN.
func executeCheck(ctx context.Context, out io.Writer, cfg *config.Config) error {
	logger := observe.NewLoggerWithWriter(cfg.Observe.Logging.Level, os.Stderr)
	agg, err := buildAggregator(cfg, observe.NewMiddleware(nil, nil, logger))
	if err != nil {
		return err
	}

	status := agg.ForceUpdateStatus(ctx)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(status); err != nil {
		return fmt.Errorf("encoding status: %w", err)
	}

	if status.State() == health.StateDown {
		return errDown
	}
	return nil
}
