package scoring_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/okian/talentgrid/internal/domain/model"
	scoring "github.com/okian/talentgrid/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func batch(n int) []model.EmployeeRecord {
	depts := []string{"engineering", "sales", "finance"}
	out := make([]model.EmployeeRecord, 0, n)
	for i := 0; i < n; i++ {
		rec := sampleRecord()
		rec.ID = "emp-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		rec.Department = depts[i%len(depts)]
		rec.Performance = 1 + i%10
		rec.Potential = 1 + (i*7)%10
		rec.TenureYears = float64(i%12) / 2
		rec.Compensation.Base = float64(80_000 + (i%9)*7_500)
		rec.Engagement = ptr(float64(i%11) / 10)
		out = append(out, rec)
	}
	return out
}

func TestAggregate(t *testing.T) {
	Convey("Given a scored batch", t, func() {
		engine := newEngine()
		results, failures, err := engine.ScoreAll(context.Background(), batch(60))
		So(err, ShouldBeNil)
		So(failures, ShouldBeEmpty)
		So(results, ShouldHaveLength, 60)

		Convey("When aggregating over the whole organization", func() {
			sum, err := scoring.Aggregate(results, model.Scope{Organization: "acme"})

			Convey("Then every result is counted exactly once", func() {
				So(err, ShouldBeNil)
				So(sum.Total, ShouldEqual, 60)

				gridTotal := 0
				for p := 0; p < 3; p++ {
					for q := 0; q < 3; q++ {
						gridTotal += sum.Grid[p][q]
					}
				}
				So(gridTotal, ShouldEqual, 60)

				bucketTotal := 0
				for _, n := range sum.RiskBuckets {
					bucketTotal += n
				}
				So(bucketTotal, ShouldEqual, 60)
				So(sum.RiskBuckets, ShouldContainKey, model.RiskVeryLow)
				So(sum.HighRiskCount, ShouldEqual, sum.RiskBuckets[model.RiskCritical]+sum.RiskBuckets[model.RiskHigh])
				So(sum.AverageFlightRisk, ShouldBeBetweenOrEqual, 0, 1)
			})
		})

		Convey("When the input order is shuffled", func() {
			shuffled := make([]model.ScoreResult, len(results))
			copy(shuffled, results)
			rand.New(rand.NewSource(7)).Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})

			a, errA := scoring.Aggregate(results, model.Scope{})
			b, errB := scoring.Aggregate(shuffled, model.Scope{})

			Convey("Then the summary is identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(b, ShouldResemble, a)
			})
		})

		Convey("When scoping to one department", func() {
			sum, err := scoring.Aggregate(results, model.Scope{Department: "sales"})

			Convey("Then only that department is counted", func() {
				So(err, ShouldBeNil)
				So(sum.Total, ShouldEqual, 20)
				So(sum.Scope.Department, ShouldEqual, "sales")
			})
		})

		Convey("When the scope matches nothing", func() {
			_, err := scoring.Aggregate(results, model.Scope{Organization: "globex"})

			Convey("Then an EmptyScopeError is returned", func() {
				So(errors.Is(err, scoring.ErrEmptyScope), ShouldBeTrue)
				var empty *scoring.EmptyScopeError
				So(errors.As(err, &empty), ShouldBeTrue)
				So(empty.Scope.Organization, ShouldEqual, "globex")
			})
		})
	})

	Convey("Aggregating an empty slice reports an empty scope", t, func() {
		_, err := scoring.Aggregate(nil, model.Scope{})
		So(errors.Is(err, scoring.ErrEmptyScope), ShouldBeTrue)
	})
}

func TestEngine_ScoreAll(t *testing.T) {
	Convey("Given a batch with two invalid records", t, func() {
		engine, err := scoring.NewEngine(scoring.DefaultConfig(), scoring.WithConcurrency(3))
		So(err, ShouldBeNil)

		records := batch(10)
		records[2].Performance = 0
		records[7].Compensation.MarketMidpoint = 0

		Convey("When scoring the batch", func() {
			results, failures, err := engine.ScoreAll(context.Background(), records)

			Convey("Then valid records are scored in input order", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 8)
				So(results[0].EmployeeID, ShouldEqual, records[0].ID)
				So(results[2].EmployeeID, ShouldEqual, records[3].ID)
			})

			Convey("And the invalid records are reported individually", func() {
				So(failures, ShouldHaveLength, 2)
				So(failures[0].Index, ShouldEqual, 2)
				So(failures[1].Index, ShouldEqual, 7)
				So(errors.Is(failures[0].Err, scoring.ErrInvalidInput), ShouldBeTrue)
				So(failures[1].Message, ShouldContainSubstring, "compensation")
			})
		})

		Convey("When the context is already canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, _, err := engine.ScoreAll(ctx, records)

			Convey("Then the cancellation is returned", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}
