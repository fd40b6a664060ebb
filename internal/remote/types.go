package remote

import (
	"errors"

	"github.com/mjaasund/steeldart/internal/model"
)

// errMissingResults marks a success response without usable player results
var errMissingResults = errors.New("response contained no player results")

// GamePayload is the wire form of a finished local game
type GamePayload struct {
	Goal      int          `json:"goal"`
	PlayerIDs []string     `json:"playerIDs"`
	Rounds    []RoundScore `json:"rounds"`
}

// RoundScore holds one round's sums in participant order
type RoundScore struct {
	PlayerScores []int `json:"playerScores"`
}

// PlayerResult is the authoritative per-player outcome computed remotely
type PlayerResult struct {
	ID           string  `json:"id"`
	Placement    int     `json:"placement"`
	TotalScore   int     `json:"totalScore"`
	AverageScore float64 `json:"averageScore"`
	Overshoots   int     `json:"overshoots,omitempty"`
	RoundsPlayed int     `json:"roundsPlayed"`
	HasFinished  bool    `json:"hasFinished"`
	MMRChange    int     `json:"mmrChange"`
	Alias        string  `json:"alias"`
}

// addGameResponse wraps the POST dartgame/add response body
type addGameResponse struct {
	PlayerResults []PlayerResult `json:"playerResults"`
}

// GameRecord is a full remote game as returned by GetMostRecent
type GameRecord struct {
	ID            string         `json:"id"`
	Goal          int            `json:"goal"`
	Datetime      string         `json:"datetime"`
	PlayerResults []PlayerResult `json:"playerResults"`
	Winners       []string       `json:"winners"`
}

// UserDTO is a user record in the remote identity store
type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Alias string `json:"alias"`
	Rfid  string `json:"rfid"`
	Rank  int    `json:"rank"`
	MMR   int    `json:"mmr"`
}

// User converts the wire record to a local model user in the given state
func (u UserDTO) User(state model.UserState) model.User {
	return model.User{
		ID:    u.ID,
		Name:  u.Name,
		Alias: u.Alias,
		Rfid:  u.Rfid,
		Rank:  u.Rank,
		MMR:   u.MMR,
		State: state,
	}
}

// validate checks the fields the client relies on. A payload failing
// validation is treated the same as a network failure by callers.
func (u UserDTO) validate() error {
	if u.ID == "" || u.Name == "" {
		return model.ErrInvalidPayload
	}
	return nil
}

func (r PlayerResult) validate() error {
	if r.ID == "" {
		return model.ErrInvalidPayload
	}
	return nil
}
