// Package uploader moves completed local games to the remote system of
// record. A local record is only deleted once the server has confirmed
// the game and returned parseable results; any failure leaves the local
// copy intact for a later pass.
package uploader

import (
	"context"
	"log/slog"

	"github.com/mjaasund/steeldart/internal/model"
	"github.com/mjaasund/steeldart/internal/remote"
	"github.com/mjaasund/steeldart/internal/store"
)

// UploadedGame pairs an uploaded local game with its authoritative results
type UploadedGame struct {
	Game    model.Game
	Results []remote.PlayerResult
}

// Service uploads locally stored games
type Service struct {
	games  *store.Collection[model.Game]
	client *remote.Client
	logger *slog.Logger
}

// New creates a new uploader service
func New(games *store.Collection[model.Game], client *remote.Client, logger *slog.Logger) *Service {
	return &Service{
		games:  games,
		client: client,
		logger: logger,
	}
}

// UploadLocalGames pushes every locally stored game to the remote service.
// Games the server rejects or that fail in transit stay local; the pass
// continues with the remaining games.
func (s *Service) UploadLocalGames(ctx context.Context) ([]UploadedGame, error) {
	localGames, err := s.games.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var uploaded []UploadedGame
	for _, game := range localGames {
		results, err := s.client.AddGame(ctx, BuildPayload(game))
		if err != nil {
			s.logger.Warn("game upload failed, keeping local copy",
				slog.String("game_id", game.ID),
				slog.String("error", err.Error()),
			)
			continue
		}

		// The server owns the game now; only then is it safe to
		// drop the local record.
		if err := s.games.Delete(ctx, game.ID); err != nil {
			s.logger.Warn("failed to delete uploaded game, will retry next pass",
				slog.String("game_id", game.ID),
				slog.String("error", err.Error()),
			)
		}

		uploaded = append(uploaded, UploadedGame{Game: game, Results: results})
		s.logger.Info("game uploaded",
			slog.String("game_id", game.ID),
			slog.Int("players", len(game.Players)),
		)
	}

	return uploaded, nil
}

// BuildPayload converts a game aggregate into its wire form: the goal,
// the ordered player ids, and the rounds transposed from per-participant
// history into per-round score lists.
func BuildPayload(game model.Game) remote.GamePayload {
	payload := remote.GamePayload{
		Goal:      game.Goal,
		PlayerIDs: make([]string, len(game.Players)),
	}

	maxRounds := 0
	for i, p := range game.Players {
		payload.PlayerIDs[i] = p.User.ID
		if len(p.Rounds) > maxRounds {
			maxRounds = len(p.Rounds)
		}
	}

	payload.Rounds = make([]remote.RoundScore, maxRounds)
	for r := 0; r < maxRounds; r++ {
		scores := make([]int, len(game.Players))
		for i, p := range game.Players {
			if r < len(p.Rounds) {
				scores[i] = p.Rounds[r].Sum
			}
		}
		payload.Rounds[r] = remote.RoundScore{PlayerScores: scores}
	}

	return payload
}
