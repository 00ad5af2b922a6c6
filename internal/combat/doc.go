// Package combat implements the battle rules of the game: mapping review
// ratings to damage rolls, enemy counterattacks and shield absorption,
// encounter-scaled enemy generation, and loot drops. The resolver computes
// deltas and flags without mutating the session; the session orchestrator
// applies them.
package combat
