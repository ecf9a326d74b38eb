package seeder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentgrid/internal/adapters/http/api"
	service "github.com/okian/talentgrid/internal/app"
	"github.com/okian/talentgrid/internal/domain/scoring"
	"github.com/okian/talentgrid/internal/domain/types"
	"github.com/okian/talentgrid/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func testConfig(url string) *Config {
	return &Config{
		BaseURL:      url,
		Employees:    60,
		Organization: "acme",
		Departments:  []string{"sales", "engineering", "finance"},
		Cycle:        "2025-H1",
		Workers:      4,
		Seed:         7,
		TopN:         15,
		Settle:       5 * time.Second,
	}
}

func TestGenerate(t *testing.T) {
	Convey("Given a seeded config", t, func() {
		cfg := testConfig("http://unused")

		Convey("When generating records", func() {
			records := Generate(cfg)
			engine, err := scoring.NewEngine(scoring.DefaultConfig())
			So(err, ShouldBeNil)

			Convey("Then every record scores without error", func() {
				So(records, ShouldHaveLength, 60)
				for _, rec := range records {
					_, err := engine.Score(rec)
					So(err, ShouldBeNil)
				}
			})

			Convey("Then departments rotate and a tenth target a role", func() {
				So(records[0].Department, ShouldEqual, "sales")
				So(records[1].Department, ShouldEqual, "engineering")
				So(records[0].TargetRole, ShouldEqual, "lead-sales")
				So(records[0].Competencies, ShouldHaveLength, 4)
				So(records[1].TargetRole, ShouldBeEmpty)
			})

			Convey("Then the same seed gives the same ratings", func() {
				again := Generate(cfg)
				for i := range records {
					So(again[i].Performance, ShouldEqual, records[i].Performance)
					So(again[i].Potential, ShouldEqual, records[i].Potential)
					So(again[i].Compensation, ShouldResemble, records[i].Compensation)
				}
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	Convey("Given configs with missing fields", t, func() {
		for _, mutate := range []func(*Config){
			func(c *Config) { c.BaseURL = "" },
			func(c *Config) { c.Employees = 0 },
			func(c *Config) { c.Cycle = "" },
			func(c *Config) { c.Departments = nil },
		} {
			cfg := testConfig("http://unused")
			mutate(cfg)
			So(errors.Is(cfg.validate(), ErrInvalidConfig), ShouldBeTrue)
		}
	})

	Convey("Given a config without tuning values", t, func() {
		cfg := testConfig("http://unused")
		cfg.Workers, cfg.TopN, cfg.Timeout = 0, 0, 0

		Convey("Then defaults are filled in", func() {
			So(cfg.validate(), ShouldBeNil)
			So(cfg.Workers, ShouldEqual, 1)
			So(cfg.TopN, ShouldEqual, 10)
			So(cfg.Timeout, ShouldEqual, 30*time.Second)
		})
	})
}

func TestCheckRanking(t *testing.T) {
	Convey("Given ranked entries", t, func() {
		Convey("When ties share a rank and ranks are dense", func() {
			entries := []types.RiskEntry{
				{Rank: 1, EmployeeID: "a", FlightRisk: 0.9},
				{Rank: 1, EmployeeID: "b", FlightRisk: 0.9},
				{Rank: 2, EmployeeID: "a2", FlightRisk: 0.5},
			}
			So(checkRanking(entries), ShouldBeNil)
		})

		Convey("When risk increases down the list", func() {
			entries := []types.RiskEntry{
				{Rank: 1, EmployeeID: "a", FlightRisk: 0.4},
				{Rank: 2, EmployeeID: "b", FlightRisk: 0.6},
			}
			So(checkRanking(entries), ShouldNotBeNil)
		})

		Convey("When a tie is out of id order", func() {
			entries := []types.RiskEntry{
				{Rank: 1, EmployeeID: "b", FlightRisk: 0.9},
				{Rank: 1, EmployeeID: "a", FlightRisk: 0.9},
			}
			So(checkRanking(entries), ShouldNotBeNil)
		})

		Convey("When a rank is skipped", func() {
			entries := []types.RiskEntry{
				{Rank: 1, EmployeeID: "a", FlightRisk: 0.9},
				{Rank: 3, EmployeeID: "b", FlightRisk: 0.5},
			}
			So(checkRanking(entries), ShouldNotBeNil)
		})

		Convey("When the list is empty", func() {
			So(checkRanking(nil), ShouldBeNil)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running talentgrid service", t, func() {
		ctx := context.Background()
		svc, err := service.New(service.WithWorkerCount(2), service.WithQueueSize(1000))
		So(err, ShouldBeNil)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop(ctx)

		mux := http.NewServeMux()
		api.NewServer(svc, 50).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When seeding it", func() {
			cfg := testConfig(srv.URL)
			stats, err := Run(ctx, cfg)

			Convey("Then every record is accepted, scored and ranked", func() {
				So(err, ShouldBeNil)
				So(stats.Generated, ShouldEqual, 60)
				So(stats.Accepted, ShouldEqual, 60)
				So(stats.Invalid, ShouldEqual, 0)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Scored, ShouldEqual, 60)
			})
		})

		Convey("When the config is invalid", func() {
			cfg := testConfig(srv.URL)
			cfg.Employees = 0
			_, err := Run(ctx, cfg)

			Convey("Then nothing is submitted", func() {
				So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}
