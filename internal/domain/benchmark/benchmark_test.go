package benchmark

import (
	"errors"
	"math"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestScore(t *testing.T) {
	convey.Convey("Given KPIs in both directions", t, func() {
		quality := KPI{ID: "quality_of_hire", Name: "Quality of Hire", Benchmark: 80, Direction: HigherIsBetter, Unit: "%"}
		turnover := KPI{ID: "turnover_rate", Name: "Annual Turnover Rate", Benchmark: 15, Direction: LowerIsBetter, Unit: "%"}

		convey.Convey("When higher is better", func() {
			convey.So(Score(quality, 88).Score, convey.ShouldEqual, 102)
			convey.So(Score(quality, 200).Score, convey.ShouldEqual, 120)
			convey.So(Score(quality, 40).Score, convey.ShouldEqual, 50)

			s := Score(quality, 88)
			convey.So(s.Gap, convey.ShouldEqual, 8)
			convey.So(s.GapPercent, convey.ShouldEqual, 10)
			convey.So(s.Rating, convey.ShouldEqual, Excellent)
			convey.So(s.Recommendation, convey.ShouldEqual, "Maintain strong performance in Quality of Hire")
		})

		convey.Convey("When lower is better", func() {
			convey.So(Score(turnover, 0).Score, convey.ShouldEqual, 120)
			convey.So(Score(turnover, 12).Score, convey.ShouldEqual, 104)
			convey.So(Score(turnover, 18).Score, convey.ShouldEqual, 80)
			convey.So(Score(turnover, 40).Score, convey.ShouldEqual, 0)
		})

		convey.Convey("When the benchmark is zero", func() {
			zero := KPI{ID: "z", Name: "Zero", Direction: LowerIsBetter}
			convey.So(Score(zero, 5).Score, convey.ShouldEqual, 100)
			convey.So(Score(zero, 5).GapPercent, convey.ShouldEqual, 100)
			convey.So(Score(zero, -1).Score, convey.ShouldEqual, 0)
			convey.So(Score(zero, 0).GapPercent, convey.ShouldEqual, 0)
		})

		convey.Convey("Then recommendations follow the rating and direction", func() {
			convey.So(Score(quality, 52).Recommendation, convey.ShouldEqual, "Minor improvement needed: increase Quality of Hire by 28.0%")
			convey.So(Score(turnover, 20).Recommendation, convey.ShouldEqual, "Minor improvement needed: reduce Annual Turnover Rate by 5.0%")
			convey.So(Score(quality, 40).Recommendation, convey.ShouldEqual, "Priority action: increase Quality of Hire significantly")
			convey.So(Score(turnover, 40).Recommendation, convey.ShouldEqual, "CRITICAL: Immediate intervention required for Annual Turnover Rate")
		})
	})
}

func TestRatingAndGrade(t *testing.T) {
	convey.Convey("Ratings and grades use inclusive thresholds", t, func() {
		convey.So(Rating(90), convey.ShouldEqual, Excellent)
		convey.So(Rating(89.9), convey.ShouldEqual, Good)
		convey.So(Rating(75), convey.ShouldEqual, Good)
		convey.So(Rating(60), convey.ShouldEqual, Fair)
		convey.So(Rating(40), convey.ShouldEqual, Poor)
		convey.So(Rating(39.9), convey.ShouldEqual, Critical)

		convey.So(Grade(90), convey.ShouldEqual, "A")
		convey.So(Grade(80), convey.ShouldEqual, "B")
		convey.So(Grade(70), convey.ShouldEqual, "C")
		convey.So(Grade(60), convey.ShouldEqual, "D")
		convey.So(Grade(59.9), convey.ShouldEqual, "F")
	})
}

func TestEngine_Analyze(t *testing.T) {
	convey.Convey("Given the HR suite", t, func() {
		e, err := NewSuite(SuiteHR)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When three KPIs are measured", func() {
			r, err := e.Analyze("acme", map[string]float64{
				"turnover_rate":    12,
				"engagement_score": 60,
				"cost_per_hire":    8000,
				"bogus":            1,
			})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then categories keep suite order and weights apply", func() {
				convey.So(r.KPIs, convey.ShouldHaveLength, 3)
				convey.So(r.Categories, convey.ShouldHaveLength, 3)
				convey.So(r.Categories[0].Category, convey.ShouldEqual, Retention)
				convey.So(r.Categories[1].Category, convey.ShouldEqual, Recruitment)
				convey.So(r.Categories[2].Category, convey.ShouldEqual, Engagement)
				convey.So(r.Score, convey.ShouldEqual, 64.9)
				convey.So(r.Rating, convey.ShouldEqual, Fair)
				convey.So(r.Grade, convey.ShouldEqual, "D")
			})

			convey.Convey("Then strengths and improvements are summarized", func() {
				convey.So(r.TopStrengths, convey.ShouldResemble, []string{
					"Annual Turnover Rate: 12% (Excellent)",
					"Employee Engagement Score: 60% (Good)",
				})
				convey.So(r.TopImprovements, convey.ShouldResemble, []string{"Cost per Hire: 8000$ vs benchmark 4000$"})
				convey.So(r.Recommendations, convey.ShouldResemble, []string{"CRITICAL: Immediate intervention required for Cost per Hire"})
				convey.So(r.Categories[1].Improvements, convey.ShouldResemble, []string{"Cost per Hire"})
			})
		})

		convey.Convey("When many KPIs are critical", func() {
			r, err := e.Analyze("acme", map[string]float64{
				"turnover_rate":       100,
				"voluntary_turnover":  100,
				"first_year_turnover": 100,
				"time_to_fill":        200,
				"cost_per_hire":       20_000,
				"pay_equity_gap":      30,
			})
			convey.So(err, convey.ShouldBeNil)
			convey.So(r.Recommendations, convey.ShouldHaveLength, 5)
			convey.So(r.Grade, convey.ShouldEqual, "F")
		})

		convey.Convey("When no known KPI has a value", func() {
			_, err := e.Analyze("acme", map[string]float64{"bogus": 1})
			convey.So(errors.Is(err, ErrNoValues), convey.ShouldBeTrue)
			convey.So(errors.Is(err, ErrInvalidRequest), convey.ShouldBeTrue)
		})

		convey.Convey("When a value is not finite", func() {
			_, err := e.Analyze("acme", map[string]float64{"enps": math.NaN()})
			convey.So(errors.Is(err, ErrInvalidRequest), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given custom weighted KPIs", t, func() {
		e := NewEngine([]KPI{
			{ID: "a", Name: "A", Benchmark: 100, Weight: 3},
			{ID: "b", Name: "B", Benchmark: 100},
		})

		convey.Convey("Then the category score is weight-averaged", func() {
			r, err := e.Analyze("team", map[string]float64{"a": 100, "b": 60})
			convey.So(err, convey.ShouldBeNil)
			convey.So(r.Categories, convey.ShouldHaveLength, 1)
			convey.So(r.Categories[0].Category, convey.ShouldEqual, Custom)
			convey.So(r.Categories[0].Score, convey.ShouldEqual, 90)
			convey.So(r.Grade, convey.ShouldEqual, "A")
		})
	})
}

func TestSuites(t *testing.T) {
	convey.Convey("Preset suites are parsed and built", t, func() {
		s, err := ParseSuite("")
		convey.So(err, convey.ShouldBeNil)
		convey.So(s, convey.ShouldEqual, SuiteHR)

		s, err = ParseSuite(" Engagement ")
		convey.So(err, convey.ShouldBeNil)
		convey.So(s, convey.ShouldEqual, SuiteEngagement)

		_, err = ParseSuite("payroll")
		convey.So(errors.Is(err, ErrInvalidRequest), convey.ShouldBeTrue)

		for suite, n := range map[Suite]int{SuiteHR: 21, SuiteEngagement: 10, SuiteRecruitment: 10} {
			e, err := NewSuite(suite)
			convey.So(err, convey.ShouldBeNil)
			convey.So(e.KPIs(), convey.ShouldHaveLength, n)
		}
	})
}
