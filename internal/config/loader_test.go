package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentgrid/internal/config"
	"github.com/okian/talentgrid/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "talentgrid.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading config with defaults only", func() {
			t.Setenv(config.EnvConfig, "")
			cfg, err := config.Load()

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.RiskTenureWeight, convey.ShouldEqual, 0.30)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			t.Setenv("TALENTGRID_ADDR", ":8080")
			t.Setenv("TALENTGRID_QUEUE_SIZE", "2000")
			t.Setenv("TALENTGRID_RISK_ENGAGEMENT_WEIGHT", "0.5")
			t.Setenv("TALENTGRID_CONSULT_TIMEOUT", "5s")
			t.Setenv("TALENTGRID_GEMINI_API_KEY", "secret")

			cfg, err := config.Load()

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 2000)
				convey.So(cfg.RiskEngagementWeight, convey.ShouldEqual, 0.5)
				convey.So(cfg.ConsultTimeout, convey.ShouldEqual, 5*time.Second)
				convey.So(cfg.GeminiAPIKey, convey.ShouldEqual, "secret")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := writeConfig(t, t.TempDir(), `
addr: ":9090"
worker_count: 24
grid_low: 0.4
grid_high: 0.75
`)
			t.Setenv(config.EnvConfig, path)
			t.Setenv("TALENTGRID_WORKER_COUNT", "32")

			cfg, err := config.Load()

			convey.Convey("Then env overrides the file and the file overrides defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 32)
				convey.So(cfg.ScoringConfig().Grid.Low, convey.ShouldEqual, 0.4)
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			})
		})

		convey.Convey("When the file is not valid YAML", func() {
			path := writeConfig(t, t.TempDir(), `invalid: yaml: content: [`)
			cfg, err := config.LoadFile(path)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the file does not exist", func() {
			_, err := config.LoadFile("/non/existent/file.yaml")
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a value fails validation", func() {
			path := writeConfig(t, t.TempDir(), "risk_bucket_high: 0.95\n")
			_, err := config.LoadFile(path)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a numeric env var is not a number", func() {
			t.Setenv("TALENTGRID_QUEUE_SIZE", "invalid")
			cfg, err := config.Load()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func TestWatch(t *testing.T) {
	convey.Convey("Given a watched config file", t, func() {
		path := writeConfig(t, t.TempDir(), "grid_low: 0.3\n")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var (
			mu   sync.Mutex
			seen []float64
		)
		done := make(chan error, 1)
		go func() {
			done <- config.Watch(ctx, path, func(c *config.Config) error {
				mu.Lock()
				defer mu.Unlock()
				seen = append(seen, c.GridLow)
				return nil
			})
		}()
		time.Sleep(100 * time.Millisecond)

		convey.Convey("When the file is rewritten", func() {
			writeConfig(t, filepath.Dir(path), "grid_low: 0.25\n")

			convey.Convey("Then onChange receives the new config", func() {
				deadline := time.Now().Add(3 * time.Second)
				var last float64
				for time.Now().Before(deadline) {
					mu.Lock()
					if n := len(seen); n > 0 {
						last = seen[n-1]
					}
					mu.Unlock()
					if last == 0.25 {
						break
					}
					time.Sleep(10 * time.Millisecond)
				}
				convey.So(last, convey.ShouldEqual, 0.25)

				cancel()
				convey.So(<-done, convey.ShouldBeNil)
			})
		})
	})
}

func TestWatchMissingDir(t *testing.T) {
	convey.Convey("Given a config path in a directory that does not exist", t, func() {
		path := filepath.Join(t.TempDir(), "missing", "talentgrid.yaml")

		convey.Convey("Then Watch fails before blocking", func() {
			err := config.Watch(context.Background(), path, func(*config.Config) error { return nil })
			convey.So(errors.Is(err, config.ErrWatchConfig), convey.ShouldBeTrue)
		})
	})
}
