package scoreboard

import (
	"log/slog"
	"sort"

	"github.com/mjaasund/steeldart/internal/calc"
	"github.com/mjaasund/steeldart/internal/model"
)

// Commit is the blur-equivalent commit point for one participant: their
// stored calculations are fully sanitized, totals re-derived, and their
// placement assigned or revoked.
//
// A participant earns the next unused rank the first time their running
// total equals the goal exactly. If an edit means they no longer qualify,
// the placement is cleared back to 0. Either way the remaining placements
// are renumbered densely from 1 so no gaps survive a revocation.
func (e *Engine) Commit(col int) error {
	if col < 0 || col >= len(e.game.Players) {
		return model.ErrNoSuchColumn
	}

	p := &e.game.Players[col]
	for i := range p.Rounds {
		p.Rounds[i].Calculation = calc.Sanitize(p.Rounds[i].Calculation)
		p.Rounds[i].Sum = calc.Evaluate(p.Rounds[i].Calculation)
	}

	e.recompute(col)
	e.ensureRows()

	finished := e.game.Goal > 0 && e.EffectiveTotal(col) == e.game.Goal
	switch {
	case finished && p.Placement == 0:
		p.Placement = e.maxPlacement() + 1
		e.logger.Info("participant finished",
			slog.String("game_id", e.game.ID),
			slog.String("user_id", p.User.ID),
			slog.Int("placement", p.Placement),
		)
	case !finished && p.Placement != 0:
		e.logger.Info("placement revoked",
			slog.String("game_id", e.game.ID),
			slog.String("user_id", p.User.ID),
		)
		p.Placement = 0
	}

	e.renumberPlacements()
	return nil
}

// CommitAll runs Commit for every participant in column order
func (e *Engine) CommitAll() {
	for col := range e.game.Players {
		_ = e.Commit(col)
	}
}

// PlacedCount returns how many participants have finished
func (e *Engine) PlacedCount() int {
	n := 0
	for _, p := range e.game.Players {
		if p.Placement > 0 {
			n++
		}
	}
	return n
}

// Results returns the participants in finish order. Placement 0 sorts
// last, after every placed participant.
func (e *Engine) Results() []model.Participant {
	out := make([]model.Participant, len(e.game.Players))
	copy(out, e.game.Players)

	sort.SliceStable(out, func(i, j int) bool {
		return placementRank(out[i].Placement) < placementRank(out[j].Placement)
	})
	return out
}

func (e *Engine) maxPlacement() int {
	max := 0
	for _, p := range e.game.Players {
		if p.Placement > max {
			max = p.Placement
		}
	}
	return max
}

// renumberPlacements reassigns 1..k to the placed participants, stable in
// their existing placement order
func (e *Engine) renumberPlacements() {
	placed := make([]*model.Participant, 0, len(e.game.Players))
	for i := range e.game.Players {
		if e.game.Players[i].Placement > 0 {
			placed = append(placed, &e.game.Players[i])
		}
	}

	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].Placement < placed[j].Placement
	})
	for i, p := range placed {
		p.Placement = i + 1
	}
}

// placementRank treats 0 as infinitely far back for ordering
func placementRank(placement int) int {
	if placement == 0 {
		return int(^uint(0) >> 1)
	}
	return placement
}
