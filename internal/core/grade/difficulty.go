package grade

import "github.com/samirrijal/routegrade/internal/core/domain"

// difficultyCeilings maps inclusive upper bounds of total ascent to labels.
var difficultyCeilings = []struct {
	max   float64
	label domain.Difficulty
}{
	{20, domain.DifficultyEasy},
	{40, domain.DifficultyModerate},
	{60, domain.DifficultyHard},
}

// DifficultyFor labels a route by its total ascent percentage:
// up to 20 is Easy, up to 40 Moderate, up to 60 Hard, anything above Brutal.
func DifficultyFor(totalAscentPct float64) domain.Difficulty {
	for _, c := range difficultyCeilings {
		if totalAscentPct <= c.max {
			return c.label
		}
	}
	return domain.DifficultyBrutal
}
