package game

import (
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// RunStats records what happened during one sandbox run.
type RunStats struct {
	Seed          int64         `json:"seed"`
	Frames        int           `json:"frames"`
	Elapsed       time.Duration `json:"elapsed"`
	EnemiesKilled int           `json:"enemies_killed"`
	DamageDealt   int           `json:"damage_dealt"`
	DamageTaken   int           `json:"damage_taken"`
	Died          bool          `json:"died"`
	CauseOfDeath  string        `json:"cause_of_death,omitempty"` // glyph of the last enemy to hit the player
}

// SaveStats appends stats as a single JSON line to runs.jsonl in StatsDir.
func SaveStats(stats RunStats) error {
	dir, err := StatsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrap(err, "create stats dir")
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return eris.Wrap(err, "open stats file")
	}
	defer f.Close()

	data, err := json.Marshal(stats)
	if err != nil {
		return eris.Wrap(err, "encode stats")
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return eris.Wrap(err, "write stats")
	}
	return nil
}

// StatsDir returns $XDG_DATA_HOME/emoji-engine, defaulting to
// ~/.local/share/emoji-engine.
func StatsDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", eris.Wrap(err, "locate home dir")
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "emoji-engine"), nil
}
