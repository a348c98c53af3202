package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/mcoot/timeu6/internal/model"
	"github.com/mcoot/timeu6/internal/services/match"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := sonic.ConfigStd.MarshalToString(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(o.errOut, data)
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := sonic.ConfigStd.MarshalToString(map[string]string{"message": msg})
		fmt.Fprintln(o.out, data)
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	encoded, err := sonic.ConfigStd.MarshalIndent(data, "", "  ")
	if err != nil {
		o.PrintError(err)
		return
	}
	fmt.Fprintln(o.out, string(encoded))
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case PlayerView:
		o.printPlayer(v)
	case []PlayerView:
		o.printPlayerTable(v)
	case StatusView:
		o.printStatus(v)
	case FieldView:
		o.printField(v)
	case ExistsResult:
		o.printExists(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// PlayerView is a roster entry as shown to the user
type PlayerView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Number      int    `json:"number"`
	Present     bool   `json:"present"`
	Playing     bool   `json:"playing"`
	PlayingTime string `json:"playing_time"`
}

// StatusView is the match clock plus everyone's playing time
type StatusView struct {
	Phase      string       `json:"phase"`
	StartTime  *time.Time   `json:"start_time"`
	Elapsed    string       `json:"elapsed"`
	Remaining  string       `json:"remaining"`
	Duration   string       `json:"duration"`
	OnField    int          `json:"on_field"`
	MaxOnField int          `json:"max_on_field"`
	Players    []PlayerView `json:"players"`
}

// FieldView lists who is on the field and who is waiting
type FieldView struct {
	OnField    []PlayerView `json:"on_field"`
	Bench      []PlayerView `json:"bench"`
	MaxOnField int          `json:"max_on_field"`
	CanAdd     bool         `json:"can_add"`
}

// ExistsResult reports whether saved state is present
type ExistsResult struct {
	Exists bool `json:"exists"`
}

func newPlayerView(p model.Player, playingTime time.Duration) PlayerView {
	return PlayerView{
		ID:          string(p.ID),
		Name:        p.Name,
		Number:      p.Number,
		Present:     p.IsPresent,
		Playing:     p.IsPlaying,
		PlayingTime: formatClock(playingTime),
	}
}

func newStatusView(s match.Status) StatusView {
	view := StatusView{
		Phase:      string(s.Phase),
		StartTime:  s.MatchStartTime,
		Elapsed:    formatClock(s.Elapsed),
		Remaining:  formatClock(s.Remaining),
		Duration:   formatClock(s.Duration),
		OnField:    s.OnField,
		MaxOnField: s.MaxOnField,
		Players:    make([]PlayerView, 0, len(s.Players)),
	}
	for _, p := range s.Players {
		view.Players = append(view.Players, newPlayerView(p.Player, p.CurrentPlayingTime))
	}
	return view
}

// formatClock renders a duration as mm:ss, with minutes allowed past 59
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func (o *Output) printPlayer(p PlayerView) {
	fmt.Fprintf(o.out, "Player: #%d %s (%s)\n", p.Number, p.Name, p.ID)
	fmt.Fprintf(o.out, "Present: %s\n", yesNo(p.Present))
	fmt.Fprintf(o.out, "On field: %s\n", yesNo(p.Playing))
	fmt.Fprintf(o.out, "Playing time: %s\n", p.PlayingTime)
}

func (o *Output) printPlayerTable(players []PlayerView) {
	if len(players) == 0 {
		fmt.Fprintln(o.out, "No players")
		return
	}
	for _, p := range players {
		fmt.Fprintf(o.out, "  #%-3d %-20s %s  %s\n", p.Number, p.Name, p.PlayingTime, playerTags(p))
	}
}

func (o *Output) printStatus(s StatusView) {
	fmt.Fprintf(o.out, "Match: %s\n", strings.ReplaceAll(s.Phase, "_", " "))
	fmt.Fprintf(o.out, "Elapsed: %s / %s (remaining %s)\n", s.Elapsed, s.Duration, s.Remaining)
	fmt.Fprintf(o.out, "On field: %d/%d\n", s.OnField, s.MaxOnField)
	if len(s.Players) > 0 {
		fmt.Fprintln(o.out, "\nPlayers:")
		o.printPlayerTable(s.Players)
	}
}

func (o *Output) printField(f FieldView) {
	fmt.Fprintf(o.out, "On field (%d/%d):\n", len(f.OnField), f.MaxOnField)
	o.printPlayerTable(f.OnField)
	fmt.Fprintf(o.out, "Bench (%d):\n", len(f.Bench))
	o.printPlayerTable(f.Bench)
}

func (o *Output) printExists(e ExistsResult) {
	if e.Exists {
		fmt.Fprintln(o.out, "Saved match state found")
	} else {
		fmt.Fprintln(o.out, "No saved match state")
	}
}

func playerTags(p PlayerView) string {
	var tags []string
	if p.Playing {
		tags = append(tags, "[on field]")
	}
	if !p.Present {
		tags = append(tags, "[absent]")
	}
	return strings.Join(tags, " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
