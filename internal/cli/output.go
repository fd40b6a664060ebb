package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mjaasund/steeldart/internal/model"
	"github.com/mjaasund/steeldart/internal/remote"
	"github.com/mjaasund/steeldart/internal/services/uploader"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case model.User:
		o.printUser(v)
	case []model.User:
		for _, u := range v {
			o.printUser(u)
		}
	case []model.Game:
		o.printGames(v)
	case []remote.GameRecord:
		o.printGameRecords(v)
	case []uploader.UploadedGame:
		o.printUploadReport(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printUser(u model.User) {
	fmt.Printf("%s (%s)  state=%s rank=%d mmr=%d\n", u.Name, u.Alias, u.State, u.Rank, u.MMR)
}

func (o *Output) printGames(games []model.Game) {
	if len(games) == 0 {
		fmt.Println("No local games.")
		return
	}
	for _, g := range games {
		fmt.Printf("%s  goal=%d players=%d  %s\n",
			g.ID, g.Goal, len(g.Players), g.Datetime.Format("2006-01-02 15:04"))
		for _, p := range g.Players {
			placement := "-"
			if p.Placement > 0 {
				placement = fmt.Sprintf("#%d", p.Placement)
			}
			fmt.Printf("  %-4s %s\n", placement, p.User.Name)
		}
	}
}

func (o *Output) printGameRecords(games []remote.GameRecord) {
	if len(games) == 0 {
		fmt.Println("No remote games.")
		return
	}
	for _, g := range games {
		fmt.Printf("%s  goal=%d  %s\n", g.ID, g.Goal, g.Datetime)
		for _, r := range g.PlayerResults {
			fmt.Printf("  #%d %-16s total=%d avg=%.1f rounds=%d mmr=%+d\n",
				r.Placement, r.Alias, r.TotalScore, r.AverageScore, r.RoundsPlayed, r.MMRChange)
		}
	}
}

func (o *Output) printUploadReport(uploaded []uploader.UploadedGame) {
	if len(uploaded) == 0 {
		fmt.Println("No games uploaded.")
		return
	}
	for _, ug := range uploaded {
		fmt.Printf("Uploaded game %s (goal %d):\n", ug.Game.ID, ug.Game.Goal)
		for _, r := range ug.Results {
			fmt.Printf("  #%d %-16s total=%d mmr=%+d\n",
				r.Placement, r.Alias, r.TotalScore, r.MMRChange)
		}
	}
}
