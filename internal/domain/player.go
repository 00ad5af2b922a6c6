package domain

import "errors"

// Player-specific validation errors
var (
	ErrInvalidPlayerHP         = errors.New("player hp must be between 0 and max hp")
	ErrInvalidPlayerMultiplier = errors.New("player multipliers must be at least 1.0")
)

// Player is the learner's combat avatar for one game session. Damage and
// score multipliers are granted by powerups and decay via per-turn duration
// counters; shield points absorb enemy damage before hit points.
type Player struct {
	HP               int     `json:"hp"`
	MaxHP            int     `json:"max_hp"`
	Level            int     `json:"level"`
	Score            int     `json:"score"`
	Shield           int     `json:"shield"`
	DamageMultiplier float64 `json:"damage_multiplier"`
	ScoreMultiplier  float64 `json:"score_multiplier"`
	DamageBoostTurns int     `json:"damage_boost_turns"`
	ScoreBoostTurns  int     `json:"score_boost_turns"`
}

// NewPlayer creates a player at full health with neutral multipliers.
func NewPlayer(maxHP, level int) *Player {
	return &Player{
		HP:               maxHP,
		MaxHP:            maxHP,
		Level:            level,
		DamageMultiplier: 1.0,
		ScoreMultiplier:  1.0,
	}
}

// Validate checks player invariants: hp within [0, maxHP], non-negative
// shield, multipliers at least 1.0.
func (p *Player) Validate() error {
	if p.MaxHP <= 0 || p.HP < 0 || p.HP > p.MaxHP {
		return ErrInvalidPlayerHP
	}
	if p.DamageMultiplier < 1.0 || p.ScoreMultiplier < 1.0 {
		return ErrInvalidPlayerMultiplier
	}
	if p.Shield < 0 {
		return errors.New("player shield cannot be negative")
	}
	return nil
}

// Heal restores hit points, capped at MaxHP.
func (p *Player) Heal(amount int) {
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

// AddShield grants shield points that absorb damage before hp.
func (p *Player) AddShield(amount int) {
	p.Shield += amount
}

// BoostDamage multiplies outgoing damage for the given number of turns.
func (p *Player) BoostDamage(multiplier float64, turns int) {
	p.DamageMultiplier = multiplier
	p.DamageBoostTurns = turns
}

// BoostScore multiplies score gains for the given number of turns.
func (p *Player) BoostScore(multiplier float64, turns int) {
	p.ScoreMultiplier = multiplier
	p.ScoreBoostTurns = turns
}

// TickBoosts decrements the boost duration counters by one turn, resetting
// a multiplier to 1.0 when its counter runs out. Called once per answered
// card.
func (p *Player) TickBoosts() {
	if p.DamageBoostTurns > 0 {
		p.DamageBoostTurns--
		if p.DamageBoostTurns == 0 {
			p.DamageMultiplier = 1.0
		}
	}
	if p.ScoreBoostTurns > 0 {
		p.ScoreBoostTurns--
		if p.ScoreBoostTurns == 0 {
			p.ScoreMultiplier = 1.0
		}
	}
}

// IsDefeated reports whether the player has no hit points left.
func (p *Player) IsDefeated() bool {
	return p.HP <= 0
}
