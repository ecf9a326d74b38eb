// Command seed-employees fills a running talentgrid service with synthetic
// employee records and checks the at-risk ranking it reports.
package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/talentgrid/internal/seeder"
	"github.com/okian/talentgrid/pkg/logger"
)

const (
	defaultEmployees = 1000
	defaultTopN      = 20
	defaultTimeout   = 30 * time.Second
	defaultSettle    = 30 * time.Second
	runTimeout       = 10 * time.Minute
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString("seed-employees: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &seeder.Config{}
	var (
		logFormat string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:           "seed-employees",
		Short:         "Submit synthetic employee records to a talentgrid service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithFormat(logFormat)); err != nil {
				return err
			}
			if verbose {
				return logger.SetLevelString("debug")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
			defer cancel()

			stats, err := seeder.Run(ctx, cfg)
			if err != nil {
				return err
			}
			logger.Get().Info(ctx, "done",
				logger.Int("generated", stats.Generated),
				logger.Int("accepted", stats.Accepted),
				logger.Int("scored", stats.Scored),
				logger.Duration("duration", stats.Duration),
			)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	f.IntVarP(&cfg.Employees, "employees", "n", defaultEmployees, "number of records to generate")
	f.StringVar(&cfg.Organization, "organization", "acme", "organization of every record")
	f.StringSliceVar(&cfg.Departments, "departments",
		[]string{"engineering", "sales", "finance", "operations", "people"}, "departments to spread records over")
	f.StringVar(&cfg.Cycle, "cycle", "2025-H1", "evaluation cycle")
	f.IntVarP(&cfg.Workers, "workers", "w", runtime.NumCPU()*2, "concurrent requests")
	f.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "HTTP request timeout")
	f.Uint64Var(&cfg.Seed, "seed", uint64(time.Now().UnixNano()), "random seed for ratings")
	f.IntVar(&cfg.TopN, "top", defaultTopN, "at-risk entries to fetch and verify")
	f.StringVarP(&cfg.OutputFile, "output", "o", "", "write generated records to this JSON file")
	f.DurationVar(&cfg.Settle, "settle", defaultSettle, "how long to wait for scoring to finish")
	f.StringVar(&logFormat, "log-format", "text", "log format: text or json")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}
