package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// State remembers which game the CLI is currently driving so commands
// after `sgr new` do not need the game id repeated.
type State struct {
	GameID  string   `json:"game_id"`
	Players []string `json:"players"`
}

func baseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".sgr")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

func statePath() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.json"), nil
}

func SaveState(s State) error {
	path, err := statePath()
	if err != nil {
		return err
	}
	body, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o600)
}

func LoadState() (State, error) {
	path, err := statePath()
	if err != nil {
		return State{}, err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return State{}, err
	}
	var s State
	if err := json.Unmarshal(body, &s); err != nil {
		return State{}, err
	}
	if strings.TrimSpace(s.GameID) == "" {
		return State{}, fmt.Errorf("no active game; run `sgr new` first")
	}
	return s, nil
}

func ClearState() error {
	path, err := statePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return os.Remove(path)
}
