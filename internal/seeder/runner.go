package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/talentgrid/pkg/logger"
)

// Run generates cfg.Employees records, submits them with cfg.Workers
// concurrent requests, waits for scoring to settle and verifies the at-risk
// ranking the service reports.
func Run(ctx context.Context, cfg *Config) (Stats, error) {
	if err := cfg.validate(); err != nil {
		return Stats{}, err
	}
	log := logger.Named("seeder")
	start := time.Now()

	records := Generate(cfg)
	stats := Stats{Generated: len(records)}
	log.Info(ctx, "generated employee records",
		logger.Int("count", len(records)),
		logger.String("cycle", cfg.Cycle),
	)
	if cfg.OutputFile != "" {
		if err := writeRecords(cfg.OutputFile, records); err != nil {
			return stats, err
		}
	}

	c := newClient(cfg.BaseURL, cfg.Timeout)
	var counts [outcomeFailed + 1]atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range records {
		g.Go(func() error {
			o, err := c.submit(gctx, &records[i])
			counts[o].Add(1)
			if err != nil {
				log.Debug(gctx, "submit failed", logger.Error(err))
			}
			// Individual failures are counted, not fatal.
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return stats, fmt.Errorf("submit records: %w", err)
	}

	stats.Accepted = int(counts[outcomeAccepted].Load())
	stats.Duplicates = int(counts[outcomeDuplicate].Load())
	stats.Rejected = int(counts[outcomeRejected].Load())
	stats.Invalid = int(counts[outcomeInvalid].Load())
	stats.Failed = int(counts[outcomeFailed].Load())
	log.Info(ctx, "records submitted",
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("rejected", stats.Rejected),
		logger.Int("invalid", stats.Invalid),
		logger.Int("failed", stats.Failed),
	)

	scored, err := waitForScores(ctx, c, cfg, stats.Accepted)
	stats.Scored = scored
	if err != nil {
		return stats, err
	}
	if err := verify(ctx, c, cfg, log); err != nil {
		return stats, err
	}

	stats.Duration = time.Since(start)
	log.Info(ctx, "seeding completed",
		logger.Int("scored", stats.Scored),
		logger.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// waitForScores polls /summary until want records are stored or cfg.Settle
// passes.
func waitForScores(ctx context.Context, c *client, cfg *Config, want int) (int, error) {
	if want == 0 {
		return 0, nil
	}
	deadline := time.Now().Add(cfg.Settle)
	org, cycle := url.QueryEscape(cfg.Organization), url.QueryEscape(cfg.Cycle)
	for {
		s, err := c.summary(ctx, org, cycle)
		if err == nil && s.Total >= want {
			return s.Total, nil
		}
		if time.Now().After(deadline) {
			if err != nil {
				return 0, fmt.Errorf("scores did not settle: %w", err)
			}
			return s.Total, fmt.Errorf("scores did not settle: %d of %d stored", s.Total, want)
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func writeRecords(path string, records any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
