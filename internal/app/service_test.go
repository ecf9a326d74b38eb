package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/talentgrid/internal/app"
	"github.com/okian/talentgrid/internal/domain/benchmark"
	"github.com/okian/talentgrid/internal/domain/consult"
	"github.com/okian/talentgrid/internal/domain/diversity"
	"github.com/okian/talentgrid/internal/domain/forecast"
	"github.com/okian/talentgrid/internal/domain/model"
	"github.com/okian/talentgrid/internal/domain/scoring"
	"github.com/okian/talentgrid/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func engagement(v float64) *float64 { return &v }

func record(id, dept string, perf, pot int, tenure, ratio, eng float64) model.EmployeeRecord {
	return model.EmployeeRecord{
		ID:           id,
		Organization: "acme",
		Department:   dept,
		Cycle:        "2025-H1",
		Performance:  perf,
		Potential:    pot,
		TenureYears:  tenure,
		Compensation: model.Compensation{Base: 100_000 * ratio, MarketMidpoint: 100_000},
		Engagement:   engagement(eng),
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc, err := service.New()

		Convey("Then it should be created with the default engine", func() {
			So(err, ShouldBeNil)
			So(svc.Engine().Config(), ShouldResemble, scoring.DefaultConfig())
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})

	Convey("Given an invalid scoring config", t, func() {
		cfg := scoring.DefaultConfig()
		cfg.Grid.Low = 0.9
		_, err := service.New(service.WithScoringConfig(cfg))

		Convey("Then construction fails", func() {
			So(errors.Is(err, scoring.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc, err := service.New(service.WithWorkerCount(2), service.WithQueueSize(10))
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When it is used before Start", func() {
			_, ingestErr := svc.Ingest(ctx, record("e-1", "eng", 8, 7, 5, 1, 0.8))
			_, summaryErr := svc.Summary(ctx, "", model.Scope{})

			Convey("Then it reports that it is not started", func() {
				So(errors.Is(ingestErr, service.ErrNotStarted), ShouldBeTrue)
				So(errors.Is(summaryErr, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When starting and stopping twice", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.GetStats()["started"], ShouldEqual, true)
			svc.Stop(ctx)
			svc.Stop(ctx)

			Convey("Then the service is stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_ScoreNow(t *testing.T) {
	Convey("Given a service", t, func() {
		svc, _ := service.New()

		Convey("When scoring the reference employee", func() {
			res, err := svc.ScoreNow(context.Background(), record("e-1", "eng", 8, 7, 5, 1, 0.8))

			Convey("Then the result lands in the top-right cell at low risk", func() {
				So(err, ShouldBeNil)
				So(res.CellLabel, ShouldEqual, "high-performance/high-potential")
				So(res.RiskIndex, ShouldBeLessThan, 0.3)
			})
		})

		Convey("When the record is invalid", func() {
			_, err := svc.ScoreNow(context.Background(), record("e-1", "eng", 11, 7, 5, 1, 0.8))
			So(errors.Is(err, scoring.ErrInvalidInput), ShouldBeTrue)
		})
	})
}

func TestService_Reload(t *testing.T) {
	Convey("Given a running service", t, func() {
		svc, _ := service.New()
		ctx := context.Background()
		before := svc.Engine()

		Convey("When a valid config is applied", func() {
			cfg := scoring.DefaultConfig()
			cfg.Grid = scoring.GridThresholds{Low: 0.5, High: 0.9}
			So(svc.Reload(ctx, cfg), ShouldBeNil)

			Convey("Then a new engine is swapped in and the old one is untouched", func() {
				So(svc.Engine(), ShouldNotPointTo, before)
				So(svc.Engine().Config().Grid.High, ShouldEqual, 0.9)
				So(before.Config().Grid.High, ShouldAlmostEqual, 2.0/3)
			})
		})

		Convey("When an invalid config is applied", func() {
			cfg := scoring.DefaultConfig()
			cfg.CompSpan = 0
			err := svc.Reload(ctx, cfg)

			Convey("Then it is rejected and the engine is kept", func() {
				So(err, ShouldNotBeNil)
				So(svc.Engine(), ShouldPointTo, before)
			})
		})
	})
}

func TestService_SuggestedPrompts(t *testing.T) {
	Convey("Given a service", t, func() {
		svc, _ := service.New()

		Convey("Then an empty mode selects general", func() {
			mode, prompts, err := svc.SuggestedPrompts("")
			So(err, ShouldBeNil)
			So(mode, ShouldEqual, consult.ModeGeneral)
			So(prompts, ShouldNotBeEmpty)
		})

		Convey("Then a named mode is parsed", func() {
			mode, _, err := svc.SuggestedPrompts("Retention_Analysis")
			So(err, ShouldBeNil)
			So(mode, ShouldEqual, consult.ModeRetention)
		})

		Convey("Then an unknown mode is rejected", func() {
			_, _, err := svc.SuggestedPrompts("astrology")
			So(errors.Is(err, service.ErrUnknownMode), ShouldBeTrue)
		})
	})
}

func TestService_ForecastWithoutScores(t *testing.T) {
	Convey("Given a service with forecast defaults", t, func() {
		svc, _ := service.New(service.WithForecastDefaults(24, 5000))

		Convey("When forecasting before any score is stored", func() {
			plan, err := svc.Forecast(context.Background(), forecast.Request{
				CurrentHeadcount: 100, TargetHeadcount: 110, HorizonMonths: 3,
			})

			Convey("Then the configured defaults apply", func() {
				So(err, ShouldBeNil)
				So(plan.AttritionRate, ShouldEqual, 24)
				So(plan.Periods, ShouldHaveLength, 3)
				So(plan.Periods[0].CostProjection, ShouldEqual, float64(plan.Periods[0].ProjectedHires)*5000)
			})
		})
	})
}

func TestService_ImportWithoutSource(t *testing.T) {
	Convey("Importing without a record source is unavailable", t, func() {
		svc, _ := service.New()
		_, err := svc.Import(context.Background(), "2025-H1")
		So(errors.Is(err, service.ErrImportUnavailable), ShouldBeTrue)

		_, err = svc.Import(context.Background(), " ")
		So(errors.Is(err, service.ErrInvalidRequest), ShouldBeTrue)
	})
}

func TestService_ConsultValidation(t *testing.T) {
	Convey("Given a service with the offline gateway", t, func() {
		svc, _ := service.New(service.WithConsultTimeout(time.Second))
		ctx := context.Background()

		Convey("Then a blank question is rejected", func() {
			_, err := svc.Consult(ctx, service.ConsultRequest{Question: "  "})
			So(errors.Is(err, service.ErrInvalidRequest), ShouldBeTrue)
		})

		Convey("Then an unknown mode is rejected", func() {
			_, err := svc.Consult(ctx, service.ConsultRequest{Question: "hi", Mode: "astrology"})
			So(errors.Is(err, service.ErrUnknownMode), ShouldBeTrue)
		})

		Convey("Then the mode is detected and the session continues", func() {
			first, err := svc.Consult(ctx, service.ConsultRequest{Question: "How do we improve retention?"})
			So(err, ShouldBeNil)
			So(first.SessionID, ShouldNotBeEmpty)
			So(first.Mode, ShouldEqual, consult.ModeRetention)
			So(first.Answer, ShouldContainSubstring, "No scored data")

			second, err := svc.Consult(ctx, service.ConsultRequest{SessionID: first.SessionID, Question: "And next?"})
			So(err, ShouldBeNil)
			So(second.SessionID, ShouldEqual, first.SessionID)
			So(svc.ClearSession(first.SessionID), ShouldBeTrue)
			So(svc.ClearSession(first.SessionID), ShouldBeFalse)
		})
	})
}

func TestService_ConsultFailureSession(t *testing.T) {
	Convey("Given a gateway that fails until told otherwise", t, func() {
		ctx := context.Background()
		fail := true
		svc, _ := service.New(service.WithGateway(consult.GatewayFunc(func(context.Context, consult.PromptContext) (string, error) {
			if fail {
				return "", consult.Unavailable(consult.ReasonUpstream, errors.New("503"))
			}
			return "ok", nil
		})))

		Convey("When the first question fails", func() {
			reply, err := svc.Consult(ctx, service.ConsultRequest{Question: "Who is leaving?"})

			Convey("Then no session is started", func() {
				So(errors.Is(err, consult.ErrConsultationUnavailable), ShouldBeTrue)
				So(reply.SessionID, ShouldBeEmpty)
				So(svc.GetStats()["sessions"], ShouldEqual, 0)
			})

			Convey("Then a later answer starts a session", func() {
				fail = false
				ok, err := svc.Consult(ctx, service.ConsultRequest{Question: "Who is leaving?"})
				So(err, ShouldBeNil)
				So(ok.SessionID, ShouldNotBeEmpty)

				fail = true
				again, err := svc.Consult(ctx, service.ConsultRequest{SessionID: ok.SessionID, Question: "And why?"})
				So(err, ShouldNotBeNil)
				So(again.SessionID, ShouldEqual, ok.SessionID)
				So(svc.ClearSession(ok.SessionID), ShouldBeTrue)
			})
		})
	})
}

func TestService_Analytics(t *testing.T) {
	Convey("Given a service with a 5% pay equity threshold", t, func() {
		ctx := context.Background()
		svc, _ := service.New(service.WithPayEquityThreshold(0.05))

		Convey("When a diversity report has a 4% pay gap", func() {
			report, err := svc.DiversityReport(ctx, diversity.Request{
				Organization: "acme",
				Workforce:    diversity.Breakdown{Total: 10, Gender: map[string]int{"Female": 5, "Male": 5}},
				Pay:          map[string]diversity.PayGroup{"male": {Average: 100_000}, "female": {Average: 96_000}},
			})

			Convey("Then the configured threshold applies and an ID is assigned", func() {
				So(err, ShouldBeNil)
				So(report.ID, ShouldNotBeEmpty)
				So(report.PayEquity, ShouldHaveLength, 1)
				So(report.PayEquity[0].Significant, ShouldBeFalse)
			})
		})

		Convey("When demographics are inconsistent", func() {
			_, err := svc.DiversityReport(ctx, diversity.Request{Workforce: diversity.Breakdown{Total: -3}})
			So(errors.Is(err, diversity.ErrInvalidRequest), ShouldBeTrue)
		})

		Convey("When benchmarking the recruitment suite", func() {
			report, err := svc.Benchmark(ctx, service.BenchmarkRequest{
				Suite:  "recruitment",
				Values: map[string]float64{"time_to_fill": 30, "offer_acceptance": 85},
			})

			Convey("Then both KPIs are scored for an unknown entity", func() {
				So(err, ShouldBeNil)
				So(report.Entity, ShouldEqual, "unknown")
				So(report.KPIs, ShouldHaveLength, 2)
				So(report.Grade, ShouldEqual, "A")
			})
		})

		Convey("When the suite or values are unusable", func() {
			_, err := svc.Benchmark(ctx, service.BenchmarkRequest{Suite: "payroll", Values: map[string]float64{"enps": 10}})
			So(errors.Is(err, benchmark.ErrInvalidRequest), ShouldBeTrue)

			_, err = svc.Benchmark(ctx, service.BenchmarkRequest{})
			So(errors.Is(err, benchmark.ErrNoValues), ShouldBeTrue)
		})
	})
}
