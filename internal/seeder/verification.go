package seeder

import (
	"context"
	"fmt"
	"net/url"

	"github.com/okian/talentgrid/internal/domain/types"
	"github.com/okian/talentgrid/pkg/logger"
)

// verify fetches the top of the at-risk ranking and checks its ordering.
func verify(ctx context.Context, c *client, cfg *Config, log logger.Logger) error {
	entries, err := c.atRisk(ctx, url.QueryEscape(cfg.Cycle), cfg.TopN)
	if err != nil {
		return fmt.Errorf("fetch at-risk: %w", err)
	}
	if err := checkRanking(entries); err != nil {
		return err
	}
	for _, e := range entries {
		log.Info(ctx, "at risk",
			logger.Int("rank", e.Rank),
			logger.String("employee_id", e.EmployeeID),
			logger.String("department", e.Department),
			logger.Float64("flight_risk", e.FlightRisk),
			logger.String("risk_level", e.RiskLevel),
		)
	}
	return nil
}

// checkRanking requires risk to be non-increasing, IDs ascending within a
// tie, and ranks to be dense.
func checkRanking(entries []types.RiskEntry) error {
	for i, e := range entries {
		if i == 0 {
			if e.Rank != 1 {
				return fmt.Errorf("first entry has rank %d", e.Rank)
			}
			continue
		}
		prev := entries[i-1]
		switch {
		case e.FlightRisk > prev.FlightRisk:
			return fmt.Errorf("entry %d (%s) ranks below a lower risk", i, e.EmployeeID)
		case e.FlightRisk == prev.FlightRisk && (e.Rank != prev.Rank || e.EmployeeID < prev.EmployeeID):
			return fmt.Errorf("tie at entry %d (%s) is not ordered by id with a shared rank", i, e.EmployeeID)
		case e.FlightRisk < prev.FlightRisk && e.Rank != prev.Rank+1:
			return fmt.Errorf("entry %d (%s) has rank %d after %d", i, e.EmployeeID, e.Rank, prev.Rank)
		}
	}
	return nil
}
