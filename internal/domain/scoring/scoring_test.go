package scoring_test

import (
	"errors"
	"testing"

	"github.com/okian/talentgrid/internal/domain/model"
	scoring "github.com/okian/talentgrid/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func ptr(v float64) *float64 { return &v }

func sampleRecord() model.EmployeeRecord {
	return model.EmployeeRecord{
		ID:           "emp-1",
		Organization: "acme",
		Department:   "engineering",
		Cycle:        "2025-H1",
		Performance:  8,
		Potential:    7,
		TenureYears:  5,
		Compensation: model.Compensation{Base: 120_000, MarketMidpoint: 120_000},
		Engagement:   ptr(0.8),
		ManagerID:    "mgr-1",
	}
}

func newEngine() *scoring.Engine {
	e, err := scoring.NewEngine(scoring.DefaultConfig())
	if err != nil {
		panic(err)
	}
	return e
}

func TestEngine_Score(t *testing.T) {
	Convey("Given an engine with the default configuration", t, func() {
		engine := newEngine()

		Convey("When scoring a strong, engaged, market-paid employee", func() {
			res, err := engine.Score(sampleRecord())

			Convey("Then they land in the high/high cell with low risk", func() {
				So(err, ShouldBeNil)
				So(res.CellLabel, ShouldEqual, "high-performance/high-potential")
				So(res.CellIndex, ShouldEqual, 8)
				So(res.RiskIndex, ShouldBeLessThan, 0.3)
				So(res.FlightRisk, ShouldBeLessThan, 0.3)
				So(res.RiskLevel, ShouldEqual, model.RiskLow)
				So(res.Category, ShouldEqual, model.CategoryHighPerformer)
				So(res.Urgency, ShouldEqual, "Regular check-ins sufficient")
				So(res.TimeToDeparture, ShouldEqual, "12+ months")
			})

			Convey("And the factor weights are normalized and inspectable", func() {
				So(res.Factors, ShouldHaveLength, 3)
				total := 0.0
				contrib := 0.0
				for _, f := range res.Factors {
					total += f.Weight
					contrib += f.Contribution
				}
				So(total, ShouldAlmostEqual, 1.0, 1e-9)
				So(contrib, ShouldAlmostEqual, res.RiskIndex, 1e-9)
				So(res.Factors[1].Name, ShouldEqual, scoring.FactorCompensation)
				So(res.Factors[1].Value, ShouldAlmostEqual, 0.25, 1e-9)
			})
		})

		Convey("When two records differ only by manager", func() {
			a := sampleRecord()
			b := sampleRecord()
			b.ManagerID = "someone-else"

			ra, errA := engine.Score(a)
			rb, errB := engine.Score(b)

			Convey("Then their results are identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(ra, ShouldResemble, rb)
			})
		})

		Convey("When scoring every rating combination on the scale", func() {
			Convey("Then each lands in exactly one valid cell with risk in [0,1]", func() {
				for perf := 1; perf <= 10; perf++ {
					for pot := 1; pot <= 10; pot++ {
						rec := sampleRecord()
						rec.Performance, rec.Potential = perf, pot
						rec.TenureYears = float64(perf) / 2
						rec.Compensation.Base = float64(60_000 + pot*10_000)
						res, err := engine.Score(rec)
						So(err, ShouldBeNil)
						So(res.CellIndex, ShouldBeBetweenOrEqual, 0, 8)
						So(res.RiskIndex, ShouldBeBetweenOrEqual, 0, 1)
						So(res.FlightRisk, ShouldBeBetweenOrEqual, 0, 1)
					}
				}
			})
		})

		Convey("When engagement is missing", func() {
			rec := sampleRecord()
			rec.Engagement = nil
			res, err := engine.Score(rec)

			Convey("Then the configured default engagement is used", func() {
				So(err, ShouldBeNil)
				So(res.Factors[2].Value, ShouldAlmostEqual, 0.5, 1e-9)
			})
		})

		Convey("When an employee is underpaid and disengaged with short tenure", func() {
			rec := sampleRecord()
			rec.TenureYears = 0.5
			rec.Compensation.Base = 80_000
			rec.Engagement = ptr(0.1)
			res, err := engine.Score(rec)

			Convey("Then risk is high and retention actions are recommended", func() {
				So(err, ShouldBeNil)
				So(res.RiskLevel, ShouldEqual, model.RiskCritical)
				So(res.Recommendations[0], ShouldEqual, "Schedule immediate stay interview")
				So(res.Recommendations, ShouldContain, "Review compensation against market rates")
				So(len(res.Recommendations), ShouldBeLessThanOrEqualTo, 5)
			})
		})
	})
}

func TestEngine_ScoreInvalidInput(t *testing.T) {
	Convey("Given an engine", t, func() {
		engine := newEngine()

		cases := map[string]func(r *model.EmployeeRecord){
			"missing performance":    func(r *model.EmployeeRecord) { r.Performance = 0 },
			"performance above max":  func(r *model.EmployeeRecord) { r.Performance = 11 },
			"negative potential":     func(r *model.EmployeeRecord) { r.Potential = -2 },
			"missing potential":      func(r *model.EmployeeRecord) { r.Potential = 0 },
			"negative tenure":        func(r *model.EmployeeRecord) { r.TenureYears = -1 },
			"zero market midpoint":   func(r *model.EmployeeRecord) { r.Compensation.MarketMidpoint = 0 },
			"engagement above one":   func(r *model.EmployeeRecord) { r.Engagement = ptr(1.5) },
			"missing id":             func(r *model.EmployeeRecord) { r.ID = " " },
			"missing cycle":          func(r *model.EmployeeRecord) { r.Cycle = "" },
			"competency out of band": func(r *model.EmployeeRecord) { r.Competencies = map[string]float64{"x": 120} },
		}

		for name, mutate := range cases {
			Convey("When the record has "+name, func() {
				rec := sampleRecord()
				mutate(&rec)
				_, err := engine.Score(rec)

				Convey("Then an InvalidInputError is returned", func() {
					So(err, ShouldNotBeNil)
					So(errors.Is(err, scoring.ErrInvalidInput), ShouldBeTrue)
					var invalid *scoring.InvalidInputError
					So(errors.As(err, &invalid), ShouldBeTrue)
					So(invalid.Field, ShouldNotBeEmpty)
				})
			})
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	Convey("Given the default scoring config", t, func() {
		cfg := scoring.DefaultConfig()

		Convey("Then it is valid", func() {
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("When grid thresholds are inverted", func() {
			cfg.Grid.Low, cfg.Grid.High = 0.7, 0.3

			Convey("Then the engine refuses it", func() {
				_, err := scoring.NewEngine(cfg)
				So(errors.Is(err, scoring.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When all weights are zero", func() {
			cfg.Weights = scoring.RiskWeights{}
			So(errors.Is(cfg.Validate(), scoring.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When risk buckets are not descending", func() {
			cfg.Buckets.Medium = 0.7
			So(errors.Is(cfg.Validate(), scoring.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestFlightProbability(t *testing.T) {
	Convey("The flight probability curve is monotone and bounded", t, func() {
		So(scoring.FlightProbability(0), ShouldEqual, 0)
		So(scoring.FlightProbability(0.2), ShouldAlmostEqual, 0.10, 1e-9)
		So(scoring.FlightProbability(0.4), ShouldAlmostEqual, 0.30, 1e-9)
		So(scoring.FlightProbability(0.6), ShouldAlmostEqual, 0.60, 1e-9)
		So(scoring.FlightProbability(0.8), ShouldAlmostEqual, 0.90, 1e-9)
		So(scoring.FlightProbability(1), ShouldAlmostEqual, 0.95, 1e-9)
		So(scoring.FlightProbability(2), ShouldAlmostEqual, 0.95, 1e-9)

		prev := -1.0
		for i := 0; i <= 100; i++ {
			p := scoring.FlightProbability(float64(i) / 100)
			So(p, ShouldBeGreaterThanOrEqualTo, prev)
			prev = p
		}
	})
}

func TestCategoryFor(t *testing.T) {
	Convey("Talent categories follow the grid score bands", t, func() {
		So(scoring.CategoryFor(90, 85), ShouldEqual, model.CategoryStar)
		So(scoring.CategoryFor(85, 65), ShouldEqual, model.CategoryHighPerformer)
		So(scoring.CategoryFor(65, 85), ShouldEqual, model.CategoryHighPotential)
		So(scoring.CategoryFor(60, 60), ShouldEqual, model.CategoryCoreContributor)
		So(scoring.CategoryFor(30, 45), ShouldEqual, model.CategoryDeveloping)
		So(scoring.CategoryFor(20, 30), ShouldEqual, model.CategoryUnderperformer)
	})
}
