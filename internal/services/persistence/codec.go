package persistence

import (
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/mcoot/timeu6/internal/model"
)

// stateRecord is the persisted shape of the match aggregate
type stateRecord struct {
	AllPlayers     []playerRecord `json:"allPlayers"`
	MatchStartTime *time.Time     `json:"matchStartTime"`
	IsMatchActive  bool           `json:"isMatchActive"`
	MatchDuration  duration       `json:"matchDuration"`
}

type playerRecord struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Number           int        `json:"number"`
	IsPresent        bool       `json:"isPresent"`
	IsPlaying        bool       `json:"isPlaying"`
	PlayingTime      duration   `json:"playingTime"`
	PlayingStartTime *time.Time `json:"playingStartTime"`
}

// duration is written as a Go duration string ("1m30.5s").
// On read it also accepts a number of seconds or a "[d.]hh:mm:ss[.fffffff]" time span.
type duration time.Duration

func (d duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Duration(d).String())), nil
}

func (d *duration) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*d = 0
		return nil
	}

	if !strings.HasPrefix(raw, `"`) {
		secs, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return errors.Wrapf(err, "parse duration %s", raw)
		}
		*d = duration(secs * float64(time.Second))
		return nil
	}

	text, err := strconv.Unquote(raw)
	if err != nil {
		return errors.Wrapf(err, "unquote duration %s", raw)
	}
	parsed, err := parseDuration(text)
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

func parseDuration(text string) (time.Duration, error) {
	if text == "" {
		return 0, nil
	}
	if strings.Contains(text, ":") {
		return parseTimeSpan(text)
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return 0, errors.Wrapf(err, "parse duration %q", text)
	}
	return parsed, nil
}

// parseTimeSpan reads the "[d.]hh:mm:ss[.fffffff]" form
func parseTimeSpan(text string) (time.Duration, error) {
	parts := strings.Split(text, ":")
	if len(parts) != 3 {
		return 0, errors.Newf("parse time span %q: want hh:mm:ss", text)
	}

	var days int64
	hoursPart := parts[0]
	if i := strings.Index(hoursPart, "."); i >= 0 {
		d, err := strconv.ParseInt(hoursPart[:i], 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parse time span %q", text)
		}
		days = d
		hoursPart = hoursPart[i+1:]
	}

	hours, err := strconv.ParseInt(hoursPart, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse time span %q", text)
	}
	minutes, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse time span %q", text)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse time span %q", text)
	}

	total := time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds*float64(time.Second))
	return total, nil
}

// encodeState serializes the aggregate. Instants are written in UTC.
func encodeState(state *model.MatchState) (string, error) {
	rec := stateRecord{
		AllPlayers:     make([]playerRecord, 0, len(state.AllPlayers)),
		MatchStartTime: utcPtr(state.MatchStartTime),
		IsMatchActive:  state.IsMatchActive,
		MatchDuration:  duration(state.MatchDuration),
	}
	for _, p := range state.AllPlayers {
		rec.AllPlayers = append(rec.AllPlayers, playerRecord{
			ID:               string(p.ID),
			Name:             p.Name,
			Number:           p.Number,
			IsPresent:        p.IsPresent,
			IsPlaying:        p.IsPlaying,
			PlayingTime:      duration(p.PlayingTime),
			PlayingStartTime: utcPtr(p.PlayingStartTime),
		})
	}

	data, err := sonic.ConfigStd.MarshalToString(&rec)
	if err != nil {
		return "", errors.Wrap(err, "encode match state")
	}
	return data, nil
}

// decodeState parses a stored aggregate. Field names match case-insensitively.
// A missing or non-positive duration falls back to defaultDuration.
func decodeState(data string, defaultDuration time.Duration) (*model.MatchState, error) {
	var rec stateRecord
	if err := sonic.ConfigStd.UnmarshalFromString(data, &rec); err != nil {
		return nil, errors.Wrap(err, "decode match state")
	}

	state := model.NewMatchState(defaultDuration)
	if rec.MatchDuration > 0 {
		state.MatchDuration = time.Duration(rec.MatchDuration)
	}
	state.MatchStartTime = utcPtr(rec.MatchStartTime)
	state.IsMatchActive = rec.IsMatchActive

	for _, pr := range rec.AllPlayers {
		state.AllPlayers = append(state.AllPlayers, &model.Player{
			ID:               model.PlayerID(pr.ID),
			Name:             pr.Name,
			Number:           pr.Number,
			IsPresent:        pr.IsPresent,
			IsPlaying:        pr.IsPlaying,
			PlayingTime:      time.Duration(pr.PlayingTime),
			PlayingStartTime: utcPtr(pr.PlayingStartTime),
		})
	}
	return state, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
