package consult

import (
	"context"
	"fmt"
	"strings"
)

// Stub answers from the prompt context alone without calling out. It is
// deterministic and is used when no remote gateway is configured.
type Stub struct{}

// Consult summarizes the context that a remote model would have received.
func (Stub) Consult(ctx context.Context, pc PromptContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", pc.Mode, strings.TrimSpace(pc.Question))
	if s := pc.Summary; s != nil {
		fmt.Fprintf(&b, "Scope %s has %d scored employees; %d are at high or critical flight risk (average %.1f%%).\n",
			s.Scope.String(), s.Total, s.HighRiskCount, s.AverageFlightRisk*100)
	}
	if len(pc.AtRisk) > 0 {
		top := pc.AtRisk[0]
		fmt.Fprintf(&b, "Highest flight risk: %s at %.0f%% (%s).\n", top.EmployeeID, top.FlightRisk*100, top.RiskLevel)
		if len(top.Recommendations) > 0 {
			fmt.Fprintf(&b, "Suggested first step: %s.\n", top.Recommendations[0])
		}
	}
	if pc.Summary == nil && len(pc.AtRisk) == 0 {
		b.WriteString("No scored data is available for this scope yet.\n")
	}
	return strings.TrimSpace(b.String()), nil
}
