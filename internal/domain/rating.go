package domain

import "fmt"

// Rating represents the learner's self-assessment of recall quality for a
// single flashcard review. The same enum drives both the spaced repetition
// schedule and the damage dealt in combat.
type Rating string

// Possible rating values, from worst to best recall.
const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// ParseRating converts a user-supplied string into a Rating.
// Returns ErrInvalidRating for anything other than the four known values.
func ParseRating(s string) (Rating, error) {
	switch Rating(s) {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return Rating(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
}

// IsValid reports whether r is one of the four known ratings.
func (r Rating) IsValid() bool {
	switch r {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return true
	default:
		return false
	}
}

// IsCorrect reports whether the rating counts as a correct recall
// (good or easy) for accuracy tracking.
func (r Rating) IsCorrect() bool {
	return r == RatingGood || r == RatingEasy
}

// DamageMultiplier returns the combat damage multiplier for the rating:
// again deals no damage, hard 30%, good 100%, easy 200% of base damage.
func (r Rating) DamageMultiplier() float64 {
	switch r {
	case RatingAgain:
		return 0.0
	case RatingHard:
		return 0.3
	case RatingGood:
		return 1.0
	case RatingEasy:
		return 2.0
	default:
		return 0.0
	}
}

// DamageRange returns the inclusive [min, max] damage bounds for the rating
// against the given base damage. Non-zero tiers spread uniformly within
// ±20% of the nominal value so combat is not fully deterministic.
func (r Rating) DamageRange(baseDamage int) (int, int) {
	multiplier := r.DamageMultiplier()
	if multiplier == 0 {
		return 0, 0
	}

	nominal := float64(baseDamage) * multiplier
	return int(nominal * 0.8), int(nominal * 1.2)
}

// RecycleRank orders already-reviewed cards for the recycle selection class:
// hard cards first, then again, then good. Easy cards are considered
// mastered for the session and return 0 (not recyclable).
func (r Rating) RecycleRank() int {
	switch r {
	case RatingHard:
		return 1
	case RatingAgain:
		return 2
	case RatingGood:
		return 3
	default:
		return 0
	}
}
