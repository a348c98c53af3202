package e2e_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/timeu6/internal/cli"
)

// cliRunner runs the command tree in-process against one SQLite file,
// so each run sees what earlier runs saved
type cliRunner struct {
	dbPath string
}

func newCLIRunner(t *testing.T) *cliRunner {
	t.Helper()
	return &cliRunner{dbPath: filepath.Join(t.TempDir(), "timeu6.db")}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--storage", "sqlite",
		"--db", r.dbPath,
		"--output", "json",
		"--log-level", "error",
	}, args...)

	var stdout, stderr bytes.Buffer
	err := cli.Run(context.Background(), fullArgs, &stdout, &stderr)
	if err != nil {
		return stdout.String() + stderr.String(), err
	}
	return stdout.String(), nil
}

func (r *cliRunner) mustRun(t *testing.T, target any, args ...string) {
	t.Helper()

	output, err := r.run(args...)
	require.NoError(t, err, "output: %s", output)
	if target != nil {
		require.NoError(t, sonic.ConfigStd.UnmarshalFromString(output, target), "output: %s", output)
	}
}

func (r *cliRunner) addPlayers(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		r.mustRun(t, nil, "player", "add", name)
	}
}

// Response types for JSON parsing
type playerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Number      int    `json:"number"`
	Present     bool   `json:"present"`
	Playing     bool   `json:"playing"`
	PlayingTime string `json:"playing_time"`
}

type statusResponse struct {
	Phase      string           `json:"phase"`
	Elapsed    string           `json:"elapsed"`
	Remaining  string           `json:"remaining"`
	Duration   string           `json:"duration"`
	OnField    int              `json:"on_field"`
	MaxOnField int              `json:"max_on_field"`
	Players    []playerResponse `json:"players"`
}

type fieldResponse struct {
	OnField    []playerResponse `json:"on_field"`
	Bench      []playerResponse `json:"bench"`
	MaxOnField int              `json:"max_on_field"`
	CanAdd     bool             `json:"can_add"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func names(players []playerResponse) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.Name)
	}
	return out
}

// Tests

func TestCLI_RosterCommands(t *testing.T) {
	r := newCLIRunner(t)

	var alice playerResponse
	r.mustRun(t, &alice, "player", "add", "Alice")
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 1, alice.Number)
	assert.True(t, alice.Present)
	assert.False(t, alice.Playing)
	assert.Equal(t, "00:00", alice.PlayingTime)

	var bob playerResponse
	r.mustRun(t, &bob, "player", "add", "Bob")
	assert.Equal(t, 2, bob.Number)

	// Reference by name, then by number
	r.mustRun(t, &bob, "player", "number", "bob", "10")
	assert.Equal(t, 10, bob.Number)

	r.mustRun(t, &bob, "player", "rename", "#10", "Robert", "Jr")
	assert.Equal(t, "Robert Jr", bob.Name)

	var shown playerResponse
	r.mustRun(t, &shown, "player", "show", "10")
	assert.Equal(t, bob.ID, shown.ID)

	var all []playerResponse
	r.mustRun(t, &all, "player", "list")
	assert.Equal(t, []string{"Alice", "Robert Jr"}, names(all))

	r.mustRun(t, &alice, "player", "absent", alice.ID)
	assert.False(t, alice.Present)

	var bench []playerResponse
	r.mustRun(t, &bench, "player", "list", "--bench")
	assert.Equal(t, []string{"Robert Jr"}, names(bench))

	var msg messageResponse
	r.mustRun(t, &msg, "player", "remove", "Alice")
	assert.Contains(t, msg.Message, "Removed")

	r.mustRun(t, &all, "player", "list")
	assert.Len(t, all, 1)
}

func TestCLI_RosterErrors(t *testing.T) {
	r := newCLIRunner(t)
	r.addPlayers(t, "Sam", "Sam")

	output, err := r.run("player", "show", "Sam")
	require.Error(t, err)
	assert.Contains(t, output, "matches 2 players")

	output, err = r.run("player", "show", "Nobody")
	require.Error(t, err)
	assert.Contains(t, output, "player not found")

	output, err = r.run("player", "number", "1", "2")
	require.Error(t, err)
	assert.Contains(t, output, "already taken")

	output, err = r.run("player", "add", "   ")
	require.Error(t, err)
	assert.Contains(t, output, "player name")
}

func TestCLI_MatchFlow(t *testing.T) {
	r := newCLIRunner(t)
	r.addPlayers(t, "Alice", "Bob", "Carol", "Dan", "Eve", "Finn", "Gus")

	var status statusResponse
	r.mustRun(t, &status, "match", "init")
	assert.Equal(t, "running", status.Phase)
	assert.Equal(t, 6, status.OnField)
	assert.Equal(t, 6, status.MaxOnField)

	// Seventh player cannot join a full field
	output, err := r.run("field", "add", "Gus")
	require.Error(t, err)
	assert.Contains(t, output, "field is full")

	var field fieldResponse
	r.mustRun(t, &field, "field", "show")
	assert.False(t, field.CanAdd)
	assert.Equal(t, []string{"Gus"}, names(field.Bench))

	r.mustRun(t, nil, "field", "sub", "Gus", "Alice")

	var playing []playerResponse
	r.mustRun(t, &playing, "player", "list", "--playing")
	assert.Equal(t, []string{"Bob", "Carol", "Dan", "Eve", "Finn", "Gus"}, names(playing))

	r.mustRun(t, &status, "match", "pause")
	assert.Equal(t, "paused", status.Phase)

	r.mustRun(t, &status, "match", "resume")
	assert.Equal(t, "running", status.Phase)

	r.mustRun(t, nil, "field", "remove", "Bob")
	r.mustRun(t, &field, "field", "show")
	assert.True(t, field.CanAdd)
	assert.Len(t, field.OnField, 5)

	r.mustRun(t, &status, "match", "status")
	assert.Len(t, status.Players, 7)

	r.mustRun(t, &status, "match", "reset")
	assert.Equal(t, "not_started", status.Phase)
	assert.Zero(t, status.OnField)
	assert.Equal(t, "30:00", status.Remaining)
}

func TestCLI_InitNeedsThreePresentPlayers(t *testing.T) {
	r := newCLIRunner(t)
	r.addPlayers(t, "Alice", "Bob", "Carol")
	r.mustRun(t, nil, "player", "absent", "Carol")

	output, err := r.run("match", "init")
	require.Error(t, err)
	assert.Contains(t, output, "insufficient present players")

	var status statusResponse
	r.mustRun(t, &status, "match", "status")
	assert.Equal(t, "not_started", status.Phase)
}

func TestCLI_InitWithoutPlayers(t *testing.T) {
	r := newCLIRunner(t)
	r.addPlayers(t, "Alice", "Bob", "Carol")

	var status statusResponse
	r.mustRun(t, &status, "match", "init", "--no-players")
	assert.Equal(t, "running", status.Phase)
	assert.Zero(t, status.OnField)
}

func TestCLI_MatchDuration(t *testing.T) {
	r := newCLIRunner(t)

	var status statusResponse
	r.mustRun(t, &status, "match", "duration", "40m")
	assert.Equal(t, "40:00", status.Duration)

	_, err := r.run("match", "duration", "soon")
	require.Error(t, err)

	output, err := r.run("match", "duration", "0s")
	require.Error(t, err)
	assert.Contains(t, output, "must be positive")

	// The setting survives a restart
	r.mustRun(t, &status, "match", "status")
	assert.Equal(t, "40:00", status.Duration)
}

func TestCLI_Watch(t *testing.T) {
	r := newCLIRunner(t)
	r.addPlayers(t, "Alice", "Bob", "Carol")
	r.mustRun(t, nil, "match", "init")

	output, err := r.run("match", "watch", "--count", "2", "--interval", "1ms")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, 2, strings.Count(output, `"phase": "running"`))
}

func TestCLI_StateCommands(t *testing.T) {
	r := newCLIRunner(t)

	var exists existsResponse
	r.mustRun(t, &exists, "state", "exists")
	assert.False(t, exists.Exists)

	r.addPlayers(t, "Alice")

	r.mustRun(t, &exists, "state", "exists")
	assert.True(t, exists.Exists)

	output, err := r.run("state", "dump")
	require.NoError(t, err)
	assert.Contains(t, output, `"allPlayers"`)
	assert.Contains(t, output, `"Alice"`)

	var msg messageResponse
	r.mustRun(t, &msg, "state", "clear")
	assert.Contains(t, msg.Message, "cleared")

	r.mustRun(t, &exists, "state", "exists")
	assert.False(t, exists.Exists)

	var all []playerResponse
	r.mustRun(t, &all, "player", "list")
	assert.Empty(t, all)
}

func TestCLI_TextOutput(t *testing.T) {
	r := newCLIRunner(t)
	r.addPlayers(t, "Alice")

	output, err := r.run("--output", "text", "match", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "Match: not started")
	assert.Contains(t, output, "Elapsed: 00:00 / 30:00")
	assert.Contains(t, output, "Alice")
}

func TestCLI_MemoryStorageStartsFresh(t *testing.T) {
	r := newCLIRunner(t)

	r.mustRun(t, nil, "--storage", "memory", "player", "add", "Alice")

	var all []playerResponse
	r.mustRun(t, &all, "--storage", "memory", "player", "list")
	assert.Empty(t, all)
}
