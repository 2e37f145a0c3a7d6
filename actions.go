package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"i4.energy/across/fmlgw/aifml"
)

// actionTimeout bounds a single bucket command.
const actionTimeout = 30 * time.Second

// CommandRunner runs an argv-style command.
type CommandRunner func(ctx context.Context, argv []string) error

// ExecCommand runs argv with os/exec and folds the combined output into the
// error on failure.
func ExecCommand(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", argv[0], err, bytes.TrimSpace(out))
	}
	return nil
}

// BuildBuckets turns the configured bucket table into dispatch buckets.
// Every action logs the bucket name; buckets with a command also run it.
// Command failures are logged and never stop the dispatch.
func BuildBuckets(ctx context.Context, logger *slog.Logger, cfgs []BucketConfig, run CommandRunner) []aifml.Bucket {
	buckets := make([]aifml.Bucket, 0, len(cfgs))
	for _, cfg := range cfgs {
		buckets = append(buckets, aifml.Bucket{
			Name:   cfg.Name,
			Low:    cfg.Low,
			High:   cfg.High,
			Action: newAction(ctx, logger, cfg, run),
		})
	}
	return buckets
}

func newAction(ctx context.Context, logger *slog.Logger, cfg BucketConfig, run CommandRunner) aifml.Action {
	argv := append([]string(nil), cfg.Command...)
	return func() {
		logger.Info("Bucket fired", "bucket", cfg.Name, "low", cfg.Low, "high", cfg.High)
		if len(argv) == 0 {
			return
		}

		actx, cancel := context.WithTimeout(ctx, actionTimeout)
		defer cancel()
		if err := run(actx, argv); err != nil {
			logger.Error("Bucket command failed", "bucket", cfg.Name, "error", err)
		}
	}
}
