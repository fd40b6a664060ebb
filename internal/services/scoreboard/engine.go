// Package scoreboard maintains the in-play state of a darts game: per
// participant round history, running totals honoring the bust rule, the
// self-adjusting round grid, and finish placements.
package scoreboard

import (
	"log/slog"

	"github.com/mjaasund/steeldart/internal/calc"
	"github.com/mjaasund/steeldart/internal/model"
)

// minRounds is the smallest number of rows the grid ever shows
const minRounds = 2

// RoundTotal is the derived state of one round: its cumulative total and
// whether it busted (would push the total past the goal).
type RoundTotal struct {
	Sum   int
	Total int
	Bust  bool
}

// Engine owns one game's scoring state. It is the single holder of the
// mutable game aggregate; callers mutate through its methods only.
type Engine struct {
	game   *model.Game
	totals [][]RoundTotal
	logger *slog.Logger
}

// New wraps a game in an engine and re-establishes all grid invariants,
// which also self-heals a game loaded from a partially written store.
func New(game *model.Game, logger *slog.Logger) *Engine {
	e := &Engine{game: game, logger: logger}
	e.ensureRows()
	e.recomputeAll()
	return e
}

// Game returns the engine's game aggregate
func (e *Engine) Game() *model.Game {
	return e.game
}

// Goal returns the shared target score
func (e *Engine) Goal() int {
	return e.game.Goal
}

// SetGoal changes the target score mid-game and re-derives every total
func (e *Engine) SetGoal(goal int) {
	e.game.Goal = goal
	e.recomputeAll()
}

// AddParticipant adds a column for the given user, padded to grid length
func (e *Engine) AddParticipant(user model.User) error {
	if e.game.HasPlayer(user.ID) {
		return model.ErrPlayerInGame
	}

	e.game.Players = append(e.game.Players, model.Participant{
		User:   user,
		Rounds: []model.Round{},
	})
	e.totals = append(e.totals, nil)
	e.ensureRows()
	e.recompute(len(e.game.Players) - 1)

	e.logger.Info("participant added",
		slog.String("game_id", e.game.ID),
		slog.String("user_id", user.ID),
	)
	return nil
}

// RemoveParticipant drops the column at col and renumbers placements
func (e *Engine) RemoveParticipant(col int) error {
	if col < 0 || col >= len(e.game.Players) {
		return model.ErrNoSuchColumn
	}

	e.game.Players = append(e.game.Players[:col], e.game.Players[col+1:]...)
	e.totals = append(e.totals[:col], e.totals[col+1:]...)
	e.renumberPlacements()
	e.ensureRows()
	return nil
}

// EnterScore records raw input for one round. The calculation keeps the
// user's (character-filtered) text; the sum is derived from its sanitized
// form. Totals and the grid are re-established immediately.
func (e *Engine) EnterScore(col, row int, raw string) error {
	if col < 0 || col >= len(e.game.Players) {
		return model.ErrNoSuchColumn
	}
	p := &e.game.Players[col]
	if row < 0 || row >= len(p.Rounds) {
		return model.ErrNoSuchRound
	}

	calculation := calc.StripInvalid(raw)
	p.Rounds[row] = model.Round{
		Calculation: calculation,
		Sum:         calc.Evaluate(calc.Sanitize(calculation)),
	}

	e.recompute(col)
	e.ensureRows()
	return nil
}

// Totals returns the derived totals for the column
func (e *Engine) Totals(col int) ([]RoundTotal, error) {
	if col < 0 || col >= len(e.totals) {
		return nil, model.ErrNoSuchColumn
	}
	out := make([]RoundTotal, len(e.totals[col]))
	copy(out, e.totals[col])
	return out, nil
}

// EffectiveTotal returns the participant's running total: the maximum
// cumulative value not past the goal. Always <= goal.
func (e *Engine) EffectiveTotal(col int) int {
	if col < 0 || col >= len(e.totals) {
		return 0
	}
	for i := len(e.totals[col]) - 1; i >= 0; i-- {
		if !e.totals[col][i].Bust {
			return e.totals[col][i].Total
		}
	}
	return 0
}

// RoundCount returns the current grid height
func (e *Engine) RoundCount() int {
	if len(e.game.Players) == 0 {
		return 0
	}
	return len(e.game.Players[0].Rounds)
}

// recompute re-derives the totals of one column, left to right, with the
// bust rule: a round only advances the carried total while the result
// stays <= goal; a busted round is recorded but excluded.
func (e *Engine) recompute(col int) {
	p := e.game.Players[col]
	totals := make([]RoundTotal, len(p.Rounds))

	prevValid := 0
	for i, r := range p.Rounds {
		total := prevValid + r.Sum
		bust := total > e.game.Goal
		totals[i] = RoundTotal{Sum: r.Sum, Total: total, Bust: bust}
		if !bust {
			prevValid = total
		}
	}

	e.totals[col] = totals
}

func (e *Engine) recomputeAll() {
	if len(e.totals) != len(e.game.Players) {
		e.totals = make([][]RoundTotal, len(e.game.Players))
	}
	for col := range e.game.Players {
		e.recompute(col)
	}
}

// ensureRows re-establishes the grid invariants: equal column lengths,
// exactly one open trailing row, at most one trailing empty row beyond
// it, and never fewer than two rows.
func (e *Engine) ensureRows() {
	players := e.game.Players
	if len(players) == 0 {
		return
	}

	longest := 0
	for _, p := range players {
		if len(p.Rounds) > longest {
			longest = len(p.Rounds)
		}
	}

	// Pad every column to the longest.
	for i := range players {
		for len(players[i].Rounds) < longest {
			players[i].Rounds = append(players[i].Rounds, model.Round{})
		}
	}

	// Grow while any column is below the minimum or has no open row.
	for e.needsOpenRow() {
		for i := range players {
			players[i].Rounds = append(players[i].Rounds, model.Round{})
		}
	}

	// Trim while every column ends in two empty rows and rows remain
	// above the minimum.
	for e.hasExcessEmptyRows() {
		for i := range players {
			players[i].Rounds = players[i].Rounds[:len(players[i].Rounds)-1]
		}
	}

	e.recomputeAll()
}

func (e *Engine) needsOpenRow() bool {
	for _, p := range e.game.Players {
		if len(p.Rounds) < minRounds {
			return true
		}
		if !p.Rounds[len(p.Rounds)-1].Empty() {
			return true
		}
	}
	return false
}

func (e *Engine) hasExcessEmptyRows() bool {
	for _, p := range e.game.Players {
		n := len(p.Rounds)
		if n <= minRounds {
			return false
		}
		if !p.Rounds[n-1].Empty() || !p.Rounds[n-2].Empty() {
			return false
		}
	}
	return true
}
