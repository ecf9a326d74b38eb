package scoring

import "github.com/okian/talentgrid/internal/domain/model"

// Category thresholds on a 0-100 scale.
const (
	categoryTop    = 80.0
	categorySolid  = 60.0
	categoryGrowth = 40.0
)

func levelFor(ratio float64, g GridThresholds) model.Level {
	switch {
	case ratio < g.Low:
		return model.LevelLow
	case ratio < g.High:
		return model.LevelMedium
	default:
		return model.LevelHigh
	}
}

// CategoryFor names the talent segment for performance and potential
// expressed as percentages of the rating scale.
func CategoryFor(performance, potential float64) model.TalentCategory {
	switch {
	case performance >= categoryTop && potential >= categoryTop:
		return model.CategoryStar
	case performance >= categoryTop && potential >= categorySolid:
		return model.CategoryHighPerformer
	case performance >= categorySolid && potential >= categoryTop:
		return model.CategoryHighPotential
	case performance >= categorySolid && potential >= categorySolid:
		return model.CategoryCoreContributor
	case performance >= categoryGrowth || potential >= categoryGrowth:
		return model.CategoryDeveloping
	default:
		return model.CategoryUnderperformer
	}
}
