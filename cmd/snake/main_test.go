package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/replay"
)

func withFlags(t *testing.T, cfgPath, difficulty string) {
	t.Helper()
	oldCfg, oldDiff := flagConfig, flagDifficulty
	flagConfig, flagDifficulty = cfgPath, difficulty
	t.Cleanup(func() { flagConfig, flagDifficulty = oldCfg, oldDiff })
}

func TestListShowsVariants(t *testing.T) {
	var buf bytes.Buffer
	listCmd.SetOut(&buf)
	t.Cleanup(func() { listCmd.SetOut(nil) })

	if err := runList(listCmd, nil); err != nil {
		t.Fatalf("runList: %v", err)
	}
	for _, want := range []string{"snake", "snake_classic", "Snake (Classic)"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("list output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestLoadConfigAppliesPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  size: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	withFlags(t, path, "fixed")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Grid.Size != 12 {
		t.Errorf("grid size = %d, want 12", cfg.Grid.Size)
	}
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	withFlags(t, "", "impossible")
	if _, err := loadConfig(); err == nil {
		t.Error("unknown difficulty should fail")
	}

	withFlags(t, filepath.Join(t.TempDir(), "missing.yaml"), "")
	if _, err := loadConfig(); err == nil {
		t.Error("missing custom config should fail")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandHome("~/.snake/snake.log")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".snake", "snake.log"); got != want {
		t.Errorf("expandHome = %q, want %q", got, want)
	}
	if got, _ := expandHome("/tmp/x.log"); got != "/tmp/x.log" {
		t.Errorf("absolute path changed to %q", got)
	}
}

// recordRun plays a short game to its end and returns the stored form.
func recordRun(t *testing.T) replay.Run {
	t.Helper()
	cfg := config.DefaultSnakeConfig()
	cfg.Start.Snake = []config.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}, {X: 2, Y: 5}, {X: 1, Y: 5}}

	e, err := snake.NewEngine(cfg, 3)
	if err != nil {
		t.Fatal(err)
	}
	moves := []snake.Direction{snake.Up, snake.Left, snake.Down}
	var st snake.State
	for _, d := range moves {
		e.SetDirection(d)
		st = e.Step()
	}
	if st.Status != snake.StatusOver {
		t.Fatalf("status = %v, want over", st.Status)
	}

	run, err := replay.FromRecord(snake.RunRecord{
		GameID:  "snake",
		Config:  cfg,
		RunSeed: st.RunSeed,
		Moves:   moves,
		Final:   st,
	}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return run
}

func TestVerifyRun(t *testing.T) {
	run := recordRun(t)

	var buf bytes.Buffer
	if err := verifyRun(&buf, run); err != nil {
		t.Fatalf("verifyRun: %v", err)
	}
	if !strings.Contains(buf.String(), "Replay OK") {
		t.Errorf("output:\n%s", buf.String())
	}

	run.Score++
	if err := verifyRun(&buf, run); err == nil {
		t.Error("tampered run should fail verification")
	}
}

func TestPrintRuns(t *testing.T) {
	var buf bytes.Buffer
	printRuns(&buf, nil)
	if !strings.Contains(buf.String(), "No runs recorded yet") {
		t.Errorf("empty output:\n%s", buf.String())
	}

	buf.Reset()
	run := recordRun(t)
	printRuns(&buf, []replay.Run{run})
	if !strings.Contains(buf.String(), run.ID) || !strings.Contains(buf.String(), "self_collision") {
		t.Errorf("table output:\n%s", buf.String())
	}
}
