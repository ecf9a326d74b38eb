package repository

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/okian/talentgrid/internal/domain/model"
	"github.com/okian/talentgrid/internal/domain/types"
	"github.com/okian/talentgrid/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: flight risk DESC, then employee ID ASC, then cycle ASC.
// "less" means ranks earlier, so in-order traversal yields the at-risk
// list from most to least likely to leave.

// riskScale converts flight risk to fixed point so equal risks compare equal.
// The fixed-point value only orders and ranks; results keep the exact risk.
const riskScale = 1_000_000

type riskFP int64

func toFixedPoint(x float64) riskFP {
	if math.IsNaN(x) {
		return 0
	}
	return riskFP(math.Round(math.Max(0, math.Min(1, x)) * riskScale))
}

// treap node
type node struct {
	key   string // dedupe-style (cycle, employee) key
	id    string
	cycle string
	risk  riskFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if a should appear before b in the at-risk ranking.
func less(a, b *node) bool {
	if a.risk != b.risk {
		return a.risk > b.risk
	}
	if a.id != b.id {
		return a.id < b.id
	}
	return a.cycle < b.cycle
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n, nn *node) *node {
	if n == nil {
		return nn
	}
	if less(nn, n) {
		n.left = insert(n.left, nn)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, nn)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n, target *node) *node {
	if n == nil {
		return nil
	}
	switch {
	case n.key == target.key:
		// Rotate the higher-priority child up until n is a leaf.
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, target)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, target)
		}
	case less(target, n):
		n.left = deleteNode(n.left, target)
	default:
		n.right = deleteNode(n.right, target)
	}
	fix(n)
	return n
}

// walk visits nodes in ranking order until visit returns false.
func walk(n *node, visit func(*node) bool) bool {
	if n == nil {
		return true
	}
	if !walk(n.left, visit) {
		return false
	}
	if !visit(n) {
		return false
	}
	return walk(n.right, visit)
}

type entry struct {
	node   *node
	result model.ScoreResult
}

// TreapStore keeps score results in a map for point lookups and a treap
// ordered by flight risk for ranking queries.
type TreapStore struct {
	mu         sync.RWMutex
	root       *node
	byKey      map[string]entry
	byEmployee map[string]map[string]struct{} // employee ID -> cycles
	highRisk   int

	highRiskLevels        map[model.RiskLevel]struct{}
	metricsUpdateInterval time.Duration

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewTreapStore constructs a treap store and starts its metrics updater.
// The updater stops when ctx is done or Close is called.
func NewTreapStore(ctx context.Context, opts ...Option) *TreapStore {
	s := &TreapStore{
		byKey:                 make(map[string]entry),
		byEmployee:            make(map[string]map[string]struct{}),
		metricsUpdateInterval: 5 * time.Second,
		stopChan:              make(chan struct{}),
	}
	WithHighRiskLevels(model.HighRiskLevels...)(s)
	for _, opt := range opts {
		opt(s)
	}
	s.startMetricsUpdater(ctx)
	return s
}

// Close stops the metrics updater.
func (s *TreapStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

func storeKey(cycle, employeeID string) string {
	return cycle + "\x00" + employeeID
}

func (s *TreapStore) isHighRisk(level model.RiskLevel) bool {
	_, ok := s.highRiskLevels[level]
	return ok
}

// Put implements Store.Put in O(log n) expected time.
func (s *TreapStore) Put(ctx context.Context, result model.ScoreResult) (bool, error) {
	if result.EmployeeID == "" || result.Cycle == "" {
		metrics.RecordErrorByComponent("repository", "invalid_result")
		return false, ErrInvalidResult
	}

	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	key := storeKey(result.Cycle, result.EmployeeID)
	nn := &node{
		key:   key,
		id:    result.EmployeeID,
		cycle: result.Cycle,
		risk:  toFixedPoint(result.FlightRisk),
		prio:  rand.Uint64(), //nolint:gosec // treap balance only
		size:  1,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, replaced := s.byKey[key]
	if replaced {
		s.root = deleteNode(s.root, old.node)
		if s.isHighRisk(old.result.RiskLevel) {
			s.highRisk--
		}
	}
	s.root = insert(s.root, nn)
	s.byKey[key] = entry{node: nn, result: result}
	if s.isHighRisk(result.RiskLevel) {
		s.highRisk++
	}

	cycles, ok := s.byEmployee[result.EmployeeID]
	if !ok {
		cycles = make(map[string]struct{}, 1)
		s.byEmployee[result.EmployeeID] = cycles
	}
	cycles[result.Cycle] = struct{}{}

	return replaced, nil
}

// Get implements Store.Get.
func (s *TreapStore) Get(ctx context.Context, cycle, employeeID string) (model.ScoreResult, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if cycle == "" {
		cycle = s.latestCycle(employeeID)
	}
	e, ok := s.byKey[storeKey(cycle, employeeID)]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.ScoreResult{}, ErrNotFound
	}
	return e.result, nil
}

// latestCycle returns the greatest cycle stored for employeeID. Cycle names
// sort chronologically ("2025-H1" < "2025-H2"). Callers hold s.mu.
func (s *TreapStore) latestCycle(employeeID string) string {
	latest := ""
	for c := range s.byEmployee[employeeID] {
		if c > latest {
			latest = c
		}
	}
	return latest
}

// inCycle reports whether n belongs to cycle. An empty cycle selects each
// employee's latest cycle, so every employee is seen at most once.
func (s *TreapStore) inCycle(n *node, cycle string) bool {
	if cycle != "" {
		return n.cycle == cycle
	}
	return n.cycle == s.latestCycle(n.id)
}

// List implements Store.List.
func (s *TreapStore) List(ctx context.Context, cycle string, scope model.Scope) []model.ScoreResult {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ScoreResult, 0, len(s.byKey))
	walk(s.root, func(n *node) bool {
		if !s.inCycle(n, cycle) {
			return true
		}
		r := s.byKey[n.key].result
		if scope.Matches(r.Organization, r.Department) {
			out = append(out, r)
		}
		return true
	})
	return out
}

// TopAtRisk implements Store.TopAtRisk.
func (s *TreapStore) TopAtRisk(ctx context.Context, cycle string, n int) ([]types.RiskEntry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.RiskEntry, 0, min(n, len(s.byKey)))
	var risks []riskFP
	walk(s.root, func(nd *node) bool {
		if !s.inCycle(nd, cycle) {
			return true
		}
		r := s.byKey[nd.key].result
		out = append(out, types.RiskEntry{
			EmployeeID: r.EmployeeID,
			Department: r.Department,
			FlightRisk: r.FlightRisk,
			RiskLevel:  string(r.RiskLevel),
			CellLabel:  r.CellLabel,
		})
		risks = append(risks, nd.risk)
		return len(out) < n
	})

	assignRanksWithTies(out, risks)
	return out, nil
}

// Count returns the number of stored results.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey)
}

// startMetricsUpdater publishes store gauges at the configured interval.
func (s *TreapStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

func (s *TreapStore) updateMetrics() {
	s.mu.RLock()
	total, high := len(s.byKey), s.highRisk
	s.mu.RUnlock()

	metrics.UpdateScoredEmployees(total)
	metrics.UpdateHighRiskCount(high)
}

// assignRanksWithTies gives entries with equal risk the same rank. Ranks are
// consecutive: the next distinct risk gets the next rank.
func assignRanksWithTies(entries []types.RiskEntry, risks []riskFP) {
	rank := 0
	for i := range entries {
		if i == 0 || risks[i] != risks[i-1] {
			rank++
		}
		entries[i].Rank = rank
	}
}
