// Package insights derives the date-driven fields the dashboard shows next
// to farms, crops, tasks and the forecast.
package insights

import (
	"time"

	"farmflow/internal/core"
)

const day = 24 * time.Hour

// DaysToHarvest returns the whole days from now until the expected harvest,
// truncated toward zero. ok is false when the harvest date is invalid.
func DaysToHarvest(c core.Crop, now time.Time) (days int, ok bool) {
	if !c.ExpectedHarvestDate.Valid() {
		return 0, false
	}
	return int(c.ExpectedHarvestDate.Sub(now) / day), true
}

// HarvestOverdue is true for a crop past its expected harvest that has not
// been harvested.
func HarvestOverdue(c core.Crop, now time.Time) bool {
	days, ok := DaysToHarvest(c, now)
	return ok && days < 0 && !c.Harvested()
}

func ActiveCrops(crops []core.Crop) int {
	n := 0
	for _, c := range crops {
		if !c.Harvested() {
			n++
		}
	}
	return n
}

// ActiveCropsByFarm counts unharvested crops per farm id.
func ActiveCropsByFarm(crops []core.Crop) map[string]int {
	out := make(map[string]int)
	for _, c := range crops {
		if !c.Harvested() {
			out[c.FarmID]++
		}
	}
	return out
}
