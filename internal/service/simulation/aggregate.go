package simulation

import (
	"math"

	"github.com/prathimenon/synthetic-user-simulator/internal/model/flow"
	"github.com/prathimenon/synthetic-user-simulator/internal/model/simulation"
)

// Summarize combines the runs of one batch into step-level and
// persona-level statistics. An empty batch summarizes to a zero conversion
// rate and no step stats.
func Summarize(runs []simulation.Run, steps []flow.Step) simulation.Summary {
	summary := simulation.Summary{
		StepStats:       make(map[int]simulation.StepStats),
		PersonaOutcomes: []simulation.PersonaOutcome{},
	}
	if len(runs) == 0 {
		return summary
	}

	converted := 0
	for _, r := range runs {
		if r.Converted {
			converted++
		}
	}
	summary.ConversionRate = float64(converted) / float64(len(runs))

	type tally struct {
		views       int
		drops       int
		frictionSum int
	}
	tallies := make(map[int]*tally, len(steps))
	for _, step := range steps {
		tallies[step.ID] = &tally{}
	}

	for _, r := range runs {
		for _, e := range r.Events {
			t, ok := tallies[e.StepID]
			if !ok {
				continue
			}
			t.views++
			t.frictionSum += e.Friction
			if e.Action == simulation.ActionDrop {
				t.drops++
			}
		}
	}

	for _, step := range steps {
		t := tallies[step.ID]
		stats := simulation.StepStats{
			Name:  step.Name,
			Views: t.views,
			Drops: t.drops,
		}
		if t.views > 0 {
			stats.DropRate = float64(t.drops) / float64(t.views)
			stats.AvgFriction = round2(float64(t.frictionSum) / float64(t.views))
		}
		summary.StepStats[step.ID] = stats
	}

	for _, r := range runs {
		outcome := simulation.PersonaOutcome{
			Name:      r.Persona.Name,
			Converted: r.Converted,
		}
		if r.DropStepID != nil {
			for _, step := range steps {
				if step.ID == *r.DropStepID {
					outcome.DropStep = step.Name
					break
				}
			}
		}
		summary.PersonaOutcomes = append(summary.PersonaOutcomes, outcome)
	}

	return summary
}

func round2(val float64) float64 {
	return math.Round(val*100) / 100
}
