// Package benchmark scores HR KPIs against industry benchmarks and rolls the
// scores up by category into a graded report.
package benchmark

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

var (
	// ErrInvalidRequest is returned for values that cannot be scored.
	ErrInvalidRequest = errors.New("invalid benchmark request")
	// ErrNoValues is returned when no supplied value names a known KPI.
	ErrNoValues = fmt.Errorf("%w: no values for known KPIs", ErrInvalidRequest)
)

// Direction says whether a KPI improves upwards or downwards.
type Direction string

// KPI directions.
const (
	HigherIsBetter Direction = "higher_is_better"
	LowerIsBetter  Direction = "lower_is_better"
)

// Category groups KPIs in a report.
type Category string

// KPI categories.
const (
	Retention    Category = "Retention"
	Recruitment  Category = "Recruitment"
	Engagement   Category = "Engagement"
	Performance  Category = "Performance"
	Compensation Category = "Compensation"
	Development  Category = "Development"
	Diversity    Category = "Diversity"
	Productivity Category = "Productivity"
	Custom       Category = "Custom"
)

// Ratings.
const (
	Excellent = "Excellent"
	Good      = "Good"
	Fair      = "Fair"
	Poor      = "Poor"
	Critical  = "Critical"
)

const (
	maxScore           = 120
	maxBonus           = 20
	topN               = 3
	maxRecommendations = 5
)

// KPI defines one benchmarked metric.
type KPI struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Benchmark   float64   `json:"benchmark"`
	Direction   Direction `json:"direction"`
	Category    Category  `json:"category"`
	Unit        string    `json:"unit,omitempty"`
	Description string    `json:"description,omitempty"`
	Weight      float64   `json:"weight"`
}

// KPIScore is one KPI measured against its benchmark.
type KPIScore struct {
	ID             string    `json:"kpi_id"`
	Name           string    `json:"kpi_name"`
	Category       Category  `json:"category"`
	Actual         float64   `json:"actual_value"`
	Benchmark      float64   `json:"benchmark_value"`
	Score          float64   `json:"score"`
	Gap            float64   `json:"gap"`
	GapPercent     float64   `json:"gap_percent"`
	Direction      Direction `json:"direction"`
	Rating         string    `json:"rating"`
	Unit           string    `json:"unit,omitempty"`
	Recommendation string    `json:"recommendation"`

	weight float64
}

// CategoryScore is the weighted average score of a category's KPIs.
type CategoryScore struct {
	Category     Category `json:"category"`
	Score        float64  `json:"score"`
	KPICount     int      `json:"kpi_count"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Report is the outcome of Analyze.
type Report struct {
	Entity          string          `json:"entity_id"`
	Score           float64         `json:"overall_score"`
	Rating          string          `json:"overall_rating"`
	Grade           string          `json:"grade"`
	Categories      []CategoryScore `json:"category_scores"`
	KPIs            []KPIScore      `json:"kpi_scores"`
	TopStrengths    []string        `json:"top_strengths"`
	TopImprovements []string        `json:"top_improvements"`
	Recommendations []string        `json:"recommendations"`
}

// Engine scores values against a fixed set of KPIs.
type Engine struct {
	kpis    []KPI
	weights map[Category]float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithCategoryWeights sets the weight of each category in the overall
// score. Unlisted categories weigh 1.
func WithCategoryWeights(w map[Category]float64) Option {
	return func(e *Engine) {
		for c, v := range w {
			e.weights[c] = v
		}
	}
}

// NewEngine creates an Engine over kpis. KPIs without a weight weigh 1.
func NewEngine(kpis []KPI, opts ...Option) *Engine {
	e := &Engine{
		kpis:    make([]KPI, len(kpis)),
		weights: make(map[Category]float64),
	}
	copy(e.kpis, kpis)
	for i := range e.kpis {
		if e.kpis[i].Weight <= 0 {
			e.kpis[i].Weight = 1
		}
		if e.kpis[i].Direction == "" {
			e.kpis[i].Direction = HigherIsBetter
		}
		if e.kpis[i].Category == "" {
			e.kpis[i].Category = Custom
		}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// KPIs returns the engine's KPI definitions in order.
func (e *Engine) KPIs() []KPI {
	out := make([]KPI, len(e.kpis))
	copy(out, e.kpis)
	return out
}

// Rating maps a score to a rating.
func Rating(score float64) string {
	switch {
	case score >= 90:
		return Excellent
	case score >= 75:
		return Good
	case score >= 60:
		return Fair
	case score >= 40:
		return Poor
	default:
		return Critical
	}
}

// Grade maps a score to a letter grade.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// rawScore is 100 at the benchmark. Beating it earns up to 20 bonus points;
// missing it loses points in proportion to the shortfall.
func rawScore(actual, benchmark float64, dir Direction) float64 {
	if benchmark == 0 {
		if actual >= 0 {
			return 100
		}
		return 0
	}
	if dir == LowerIsBetter {
		if actual <= benchmark {
			if actual == 0 {
				return maxScore
			}
			return math.Min(maxScore, 100+math.Min(maxBonus, (benchmark-actual)/benchmark*maxBonus))
		}
		return math.Max(0, 100-(actual/benchmark-1)*100)
	}
	if actual >= benchmark {
		return math.Min(maxScore, 100+math.Min(maxBonus, (actual-benchmark)/benchmark*maxBonus))
	}
	return math.Max(0, actual/benchmark*100)
}

// Score measures actual against kpi.
func Score(kpi KPI, actual float64) KPIScore { //nolint:gocritic // hugeParam: KPI is a value definition
	gap := actual - kpi.Benchmark
	var gapPct float64
	switch {
	case kpi.Benchmark != 0:
		gapPct = gap / math.Abs(kpi.Benchmark) * 100
	case actual > 0:
		gapPct = 100
	}

	score := rawScore(actual, kpi.Benchmark, kpi.Direction)
	rating := Rating(score)
	weight := kpi.Weight
	if weight <= 0 {
		weight = 1
	}
	return KPIScore{
		ID:             kpi.ID,
		Name:           kpi.Name,
		Category:       kpi.Category,
		Actual:         round(actual, 2),
		Benchmark:      kpi.Benchmark,
		Score:          round(score, 1),
		Gap:            round(gap, 2),
		GapPercent:     round(gapPct, 1),
		Direction:      kpi.Direction,
		Rating:         rating,
		Unit:           kpi.Unit,
		Recommendation: recommend(kpi, actual, rating),
		weight:         weight,
	}
}

func recommend(kpi KPI, actual float64, rating string) string { //nolint:gocritic // hugeParam: KPI is a value definition
	verb := "increase"
	if kpi.Direction == LowerIsBetter {
		verb = "reduce"
	}
	switch rating {
	case Excellent, Good:
		return "Maintain strong performance in " + kpi.Name
	case Fair:
		return fmt.Sprintf("Minor improvement needed: %s %s by %.1f%s", verb, kpi.Name, math.Abs(actual-kpi.Benchmark), kpi.Unit)
	case Poor:
		return fmt.Sprintf("Priority action: %s %s significantly", verb, kpi.Name)
	default:
		return "CRITICAL: Immediate intervention required for " + kpi.Name
	}
}

// Analyze scores every KPI that has a value and builds the report for
// entity. Values for unknown KPIs are ignored; ErrNoValues is returned when
// nothing is left to score.
func (e *Engine) Analyze(entity string, values map[string]float64) (Report, error) {
	var (
		scores []KPIScore
		order  []Category
		byCat  = map[Category][]KPIScore{}
	)
	for _, kpi := range e.kpis {
		v, ok := values[kpi.ID]
		if !ok {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Report{}, fmt.Errorf("%w: %s is not a finite number", ErrInvalidRequest, kpi.ID)
		}
		s := Score(kpi, v)
		scores = append(scores, s)
		if _, seen := byCat[kpi.Category]; !seen {
			order = append(order, kpi.Category)
		}
		byCat[kpi.Category] = append(byCat[kpi.Category], s)
	}
	if len(scores) == 0 {
		return Report{}, ErrNoValues
	}

	r := Report{
		Entity:          entity,
		KPIs:            scores,
		TopStrengths:    []string{},
		TopImprovements: []string{},
		Recommendations: []string{},
	}
	var weighted, total float64
	for _, c := range order {
		cs := categoryScore(c, byCat[c])
		r.Categories = append(r.Categories, cs)
		w, ok := e.weights[c]
		if !ok {
			w = 1
		}
		weighted += cs.Score * w
		total += w
	}
	var overall float64
	if total > 0 {
		overall = weighted / total
	}
	r.Score = round(overall, 1)
	r.Rating = Rating(overall)
	r.Grade = Grade(overall)

	ranked := make([]KPIScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	for _, k := range ranked[:min(topN, len(ranked))] {
		if k.Rating == Excellent || k.Rating == Good {
			r.TopStrengths = append(r.TopStrengths, fmt.Sprintf("%s: %s%s (%s)", k.Name, formatValue(k.Actual), k.Unit, k.Rating))
		}
	}
	for _, k := range ranked[max(0, len(ranked)-topN):] {
		if k.Rating == Poor || k.Rating == Critical {
			r.TopImprovements = append(r.TopImprovements, fmt.Sprintf("%s: %s%s vs benchmark %s%s",
				k.Name, formatValue(k.Actual), k.Unit, formatValue(k.Benchmark), k.Unit))
		}
	}
	for _, k := range scores {
		if len(r.Recommendations) == maxRecommendations {
			break
		}
		if k.Rating == Poor || k.Rating == Critical {
			r.Recommendations = append(r.Recommendations, k.Recommendation)
		}
	}
	return r, nil
}

func categoryScore(c Category, scores []KPIScore) CategoryScore {
	cs := CategoryScore{Category: c, KPICount: len(scores), Strengths: []string{}, Improvements: []string{}}
	var weighted, total float64
	for _, k := range scores {
		weighted += k.Score * k.weight
		total += k.weight
		switch k.Rating {
		case Excellent, Good:
			cs.Strengths = append(cs.Strengths, k.Name)
		case Poor, Critical:
			cs.Improvements = append(cs.Improvements, k.Name)
		}
	}
	if total > 0 {
		cs.Score = round(weighted/total, 1)
	}
	return cs
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
