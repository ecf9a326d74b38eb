// Package postgres loads employee records for a cycle from a relational
// store through a pgx connection pool.
package postgres

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"

	"github.com/okian/talentgrid/internal/domain/model"
	"github.com/okian/talentgrid/pkg/logger"
)

// ErrMissingDSN is returned by Open when no connection string is configured.
var ErrMissingDSN = goerr.New("database url is not configured")

const cycleQuery = `
SELECT e.id, e.organization, e.department, r.cycle,
       r.performance, r.potential, e.tenure_years,
       r.base_salary, r.market_midpoint, r.engagement,
       e.manager_id, e.target_role, r.competencies
  FROM employee_reviews r
  JOIN employees e ON e.id = r.employee_id
 WHERE r.cycle = $1
 ORDER BY e.id`

// querier is the subset of *pgxpool.Pool used by Source.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// rowScanner is satisfied by pgx.Rows and pgx.Row.
type rowScanner interface {
	Scan(dest ...any) error
}

// Source reads EmployeeRecords for one evaluation cycle.
type Source struct {
	db   querier
	pool *pgxpool.Pool
	log  logger.Logger
}

// Open connects a pool to dsn and verifies it with a ping.
func Open(ctx context.Context, dsn string) (*Source, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrMissingDSN
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create connection pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, goerr.Wrap(err, "failed to ping database")
	}
	s := newSource(pool)
	s.pool = pool
	return s, nil
}

func newSource(db querier) *Source {
	return &Source{db: db, log: logger.Named("postgres")}
}

// LoadCycle returns every employee record stored for cycle, ordered by
// employee ID.
func (s *Source) LoadCycle(ctx context.Context, cycle string) ([]model.EmployeeRecord, error) {
	rows, err := s.db.Query(ctx, cycleQuery, cycle)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query cycle", goerr.V("cycle", cycle))
	}
	defer rows.Close()

	var out []model.EmployeeRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan employee row", goerr.V("cycle", cycle), goerr.V("row", len(out)))
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate cycle rows", goerr.V("cycle", cycle))
	}

	s.log.Info(ctx, "cycle loaded", logger.String("cycle", cycle), logger.Int("records", len(out)))
	return out, nil
}

// Close releases the pool.
func (s *Source) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func scanRecord(row rowScanner) (model.EmployeeRecord, error) {
	var (
		rec          model.EmployeeRecord
		managerID    *string
		targetRole   *string
		competencies []byte
	)
	if err := row.Scan(
		&rec.ID, &rec.Organization, &rec.Department, &rec.Cycle,
		&rec.Performance, &rec.Potential, &rec.TenureYears,
		&rec.Compensation.Base, &rec.Compensation.MarketMidpoint, &rec.Engagement,
		&managerID, &targetRole, &competencies,
	); err != nil {
		return model.EmployeeRecord{}, err
	}
	if managerID != nil {
		rec.ManagerID = *managerID
	}
	if targetRole != nil {
		rec.TargetRole = *targetRole
	}
	if len(competencies) > 0 {
		if err := json.Unmarshal(competencies, &rec.Competencies); err != nil {
			return model.EmployeeRecord{}, goerr.Wrap(err, "invalid competencies document", goerr.V("employee_id", rec.ID))
		}
	}
	return rec, nil
}
