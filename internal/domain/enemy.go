package domain

import "errors"

// Enemy-specific validation errors
var (
	ErrInvalidEnemyHP = errors.New("enemy hp must be between 0 and max hp")
)

// Enemy is the transient combat entity for one encounter. Enemies are
// created by the session orchestrator at the start of each encounter and
// replaced on defeat.
type Enemy struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	HP         int    `json:"hp"`
	MaxHP      int    `json:"max_hp"`
	Damage     int    `json:"damage"`
	ScoreValue int    `json:"score_value"`
	Difficulty int    `json:"difficulty"`
	Boss       bool   `json:"boss"`
}

// Validate checks enemy invariants: hp within [0, maxHP], non-negative
// damage and score.
func (e *Enemy) Validate() error {
	if e.MaxHP <= 0 || e.HP < 0 || e.HP > e.MaxHP {
		return ErrInvalidEnemyHP
	}
	if e.Damage < 0 || e.ScoreValue < 0 {
		return errors.New("enemy damage and score value cannot be negative")
	}
	return nil
}

// IsDefeated reports whether the enemy has no hit points left.
func (e *Enemy) IsDefeated() bool {
	return e.HP <= 0
}
