package model

import "time"

// GameState represents where a game record lives
type GameState string

const (
	GameStateLocal  GameState = "local"  // stored only in the local database
	GameStateOnline GameState = "online" // confirmed by the remote service
)

// Round is one scoring entry for a participant. Sum is a cache: it is
// always re-derivable from Calculation via the calc package.
type Round struct {
	Calculation string `json:"calculation"`
	Sum         int    `json:"sum"`
}

// Empty reports whether the round has no entered calculation
func (r Round) Empty() bool {
	return r.Calculation == ""
}

// Participant binds a User to their rounds and finish placement within
// one game. Placement 0 means unplaced (DNF); 1..N is finish order.
type Participant struct {
	User      User    `json:"user"`
	Placement int     `json:"placement"`
	Rounds    []Round `json:"rounds"`
}

// Game is a single darts match against a shared goal
type Game struct {
	ID       string        `json:"id"`
	Goal     int           `json:"goal"`
	Datetime time.Time     `json:"datetime"`
	Players  []Participant `json:"players"`
	State    GameState     `json:"state"`
	Ranked   bool          `json:"ranked"`
}

// NewGame creates a fresh local game seeded with a single unregistered
// participant, matching what the scoreboard starts from.
func NewGame(id string, goal int, now time.Time, seed User) *Game {
	return &Game{
		ID:       id,
		Goal:     goal,
		Datetime: now,
		State:    GameStateLocal,
		Players: []Participant{
			{User: seed, Placement: 0, Rounds: []Round{}},
		},
	}
}

// HasPlayer reports whether a participant with the given user id exists
func (g *Game) HasPlayer(userID string) bool {
	for _, p := range g.Players {
		if p.User.ID == userID {
			return true
		}
	}
	return false
}

// RefreshRanked recomputes the ranked flag: a game is ranked only when
// every participant is an online user.
func (g *Game) RefreshRanked() {
	for _, p := range g.Players {
		if p.User.State != UserStateOnline {
			g.Ranked = false
			return
		}
	}
	g.Ranked = len(g.Players) > 0
}
