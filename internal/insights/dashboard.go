package insights

import "farmflow/internal/core"

const highPendingThreshold = 5

const (
	PendingHigh   = "High"
	PendingNormal = "Normal"
)

type DashboardStats struct {
	TotalFarms   int          `json:"totalFarms"`
	ActiveCrops  int          `json:"activeCrops"`
	PendingTasks int          `json:"pendingTasks"`
	PendingLevel string       `json:"pendingLevel"`
	Summary      core.Summary `json:"summary"`
}

// Dashboard computes the headline cards. upcoming must already be the
// upcoming, uncompleted task list.
func Dashboard(farms []core.Farm, crops []core.Crop, upcoming []core.Task, summary core.Summary) DashboardStats {
	pending := 0
	for _, t := range upcoming {
		if !t.Completed {
			pending++
		}
	}
	level := PendingNormal
	if pending > highPendingThreshold {
		level = PendingHigh
	}
	return DashboardStats{
		TotalFarms:   len(farms),
		ActiveCrops:  ActiveCrops(crops),
		PendingTasks: pending,
		PendingLevel: level,
		Summary:      summary,
	}
}
