package succession_test

import (
	"testing"

	"github.com/okian/talentgrid/internal/domain/model"
	"github.com/okian/talentgrid/internal/domain/succession"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAssess(t *testing.T) {
	Convey("Given a readiness assessment", t, func() {
		Convey("When competencies are strong and experience meets the requirement", func() {
			a := succession.Assess(succession.Candidate{
				EmployeeID:      "e1",
				Competencies:    map[string]float64{"strategy": 95, "leadership": 90},
				ExperienceYears: 6,
			}, 5)

			Convey("Then the candidate is ready now", func() {
				So(a.OverallReadiness, ShouldAlmostEqual, 92.5*0.7+30, 1e-9)
				So(a.Level, ShouldEqual, model.ReadyNow)
				So(a.EstimatedReadyDate, ShouldEqual, "Now")
				So(a.Gaps, ShouldBeEmpty)
				So(a.DevelopmentPlan, ShouldHaveLength, 2)
			})
		})

		Convey("When no competencies are known", func() {
			a := succession.Assess(succession.Candidate{EmployeeID: "e2", ExperienceYears: 2.5}, 5)

			Convey("Then a neutral competency average is used", func() {
				So(a.OverallReadiness, ShouldAlmostEqual, 50*0.7+50*0.3, 1e-9)
				So(a.Level, ShouldEqual, model.ReadyDeveloping)
				So(a.Gaps, ShouldResemble, []string{"Need 2.5 more years experience"})
			})
		})

		Convey("When several competencies are weak", func() {
			a := succession.Assess(succession.Candidate{
				Competencies:    map[string]float64{"zeta": 40, "alpha": 50, "mid": 65, "beta": 60, "ok": 99},
				ExperienceYears: 10,
			}, 5)

			Convey("Then gaps list at most three weak competencies in name order", func() {
				So(a.Gaps, ShouldResemble, []string{"Develop alpha", "Develop beta", "Develop mid"})
			})
		})
	})
}

func TestLevelFor(t *testing.T) {
	Convey("Readiness thresholds are inclusive lower bounds", t, func() {
		So(succession.LevelFor(90), ShouldEqual, model.ReadyNow)
		So(succession.LevelFor(89.9), ShouldEqual, model.Ready1Year)
		So(succession.LevelFor(75), ShouldEqual, model.Ready1Year)
		So(succession.LevelFor(60), ShouldEqual, model.Ready2Years)
		So(succession.LevelFor(40), ShouldEqual, model.ReadyDeveloping)
		So(succession.LevelFor(39.99), ShouldEqual, model.NotReady)
	})
}

func TestBuildPlan(t *testing.T) {
	Convey("Given critical roles and their successors", t, func() {
		roles := []succession.CriticalRole{
			{RoleID: "cfo", Title: "CFO", VacancyRisk: 20},
			{RoleID: "cto", Title: "CTO", VacancyRisk: 80},
			{RoleID: "coo", Title: "COO", VacancyRisk: 10},
			{RoleID: "cmo", Title: "CMO", VacancyRisk: 10},
		}
		successors := map[string][]succession.Successor{
			"cfo": {{EmployeeID: "a", Readiness: model.ReadyNow}, {EmployeeID: "b", Readiness: model.Ready2Years}},
			"cto": {{EmployeeID: "c", Readiness: model.ReadyNow}},
			"coo": {{EmployeeID: "d", Readiness: model.Ready2Years}},
		}

		plan := succession.BuildPlan(roles, successors)

		Convey("Then coverage counts roles with any successor", func() {
			So(plan.Coverage, ShouldEqual, 75)
			So(plan.ReadyNowCoverage, ShouldEqual, 50)
			So(plan.BenchStrength, ShouldEqual, succession.BenchGood)
		})

		Convey("Then high-risk roles include uncovered, high-vacancy and slow benches", func() {
			So(plan.HighRiskRoles, ShouldResemble, []string{"CTO", "COO", "CMO"})
			So(plan.Roles[0].HighRisk, ShouldBeFalse)
			So(plan.Roles[0].ReadyNow, ShouldEqual, 1)
		})

		Convey("Then recommendations call out risks and single successors", func() {
			So(plan.Recommendations[0], ShouldEqual, "Address 3 high-risk roles: CTO, COO, CMO")
			So(plan.Recommendations, ShouldContain, "Identify additional succession candidates for coverage")
			So(plan.Recommendations, ShouldContain, "Develop backup successors for 2 roles")
			So(plan.Recommendations[len(plan.Recommendations)-1], ShouldEqual, "Conduct annual succession review with leadership")
		})
	})

	Convey("Given no critical roles", t, func() {
		plan := succession.BuildPlan(nil, nil)

		Convey("Then the bench is weak", func() {
			So(plan.BenchStrength, ShouldEqual, succession.BenchWeak)
			So(plan.Roles, ShouldBeEmpty)
		})
	})
}

func TestBenchStrength(t *testing.T) {
	Convey("Bench strength labels follow coverage bands", t, func() {
		So(succession.BenchStrength(90, 70), ShouldEqual, succession.BenchStrong)
		So(succession.BenchStrength(95, 60), ShouldEqual, succession.BenchGood)
		So(succession.BenchStrength(60, 0), ShouldEqual, succession.BenchModerate)
		So(succession.BenchStrength(49, 49), ShouldEqual, succession.BenchWeak)
	})
}
