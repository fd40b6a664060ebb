package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mjaasund/steeldart/internal/model"
	"github.com/mjaasund/steeldart/internal/services/scoreboard"
)

func newPlayCmd() *cobra.Command {
	var (
		goal    int
		players []string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Score a game interactively",
		Long: `Score a darts game round by round. Each entry may be a plain number
or an arithmetic expression like "60+60+45" or "3*19". A round that
would push the total past the goal is a bust: it is recorded but does
not count. The first player to hit the goal exactly takes placement 1.

Enter "quit" to end the game early. The finished game is stored
locally; run "steeldart sync" to upload it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(players) == 0 {
				return fmt.Errorf("at least one --player is required")
			}
			return runPlay(cmd, goal, players)
		},
	}

	cmd.Flags().IntVar(&goal, "goal", 301, "Target score to reach exactly")
	cmd.Flags().StringArrayVar(&players, "player", nil, "Player name (repeatable)")

	return cmd
}

func runPlay(cmd *cobra.Command, goal int, names []string) error {
	ctx := cmd.Context()

	users := make([]model.User, len(names))
	for i, name := range names {
		user, err := app.Roster.UserByName(ctx, name)
		if errors.Is(err, model.ErrUserNotFound) {
			user = model.NewDefaultUser(app.IDs.NewID(), app.IDs.NewID())
			user.Name = name
		} else if err != nil {
			return err
		}
		users[i] = user
	}

	game := model.NewGame(app.IDs.NewID(), goal, app.Clock.Now(), users[0])
	engine := scoreboard.New(game, app.Logger)
	for _, user := range users[1:] {
		if err := engine.AddParticipant(user); err != nil {
			return err
		}
	}

	fmt.Printf("Goal: %d. Players: %s.\n", goal, strings.Join(names, ", "))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for engine.PlacedCount() < len(names) {
		for col := range game.Players {
			p := game.Players[col]
			if p.Placement > 0 {
				continue
			}
			row := openRow(p)

			fmt.Printf("%s r%d (%d left)> ", p.User.Name, row+1, goal-engine.EffectiveTotal(col))
			if !scanner.Scan() {
				return finishGame(cmd, engine)
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "quit" || line == "q" {
				return finishGame(cmd, engine)
			}

			if err := engine.EnterScore(col, row, line); err != nil {
				return err
			}
			if err := engine.Commit(col); err != nil {
				return err
			}

			totals, err := engine.Totals(col)
			if err != nil {
				return err
			}
			if totals[row].Bust {
				fmt.Printf("  bust! total stays at %d\n", engine.EffectiveTotal(col))
			}
			if placement := game.Players[col].Placement; placement > 0 {
				fmt.Printf("  %s finishes #%d\n", p.User.Name, placement)
			}
		}
	}

	return finishGame(cmd, engine)
}

// openRow is the row the participant types into next: their first round
// without a calculation. The grid invariants guarantee one exists.
func openRow(p model.Participant) int {
	for i, r := range p.Rounds {
		if r.Empty() {
			return i
		}
	}
	return len(p.Rounds) - 1
}

func finishGame(cmd *cobra.Command, engine *scoreboard.Engine) error {
	game := engine.Game()
	game.RefreshRanked()

	fmt.Println("\nResults:")
	for _, p := range engine.Results() {
		placement := "DNF"
		if p.Placement > 0 {
			placement = fmt.Sprintf("#%d", p.Placement)
		}
		fmt.Printf("  %-4s %s\n", placement, p.User.Name)
	}

	if err := app.Games.Put(cmd.Context(), *game); err != nil {
		return err
	}
	out.PrintMessage("Game saved locally. Run \"steeldart sync\" to upload.")
	return nil
}
