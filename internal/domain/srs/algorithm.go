package srs

import (
	"time"

	"github.com/deckraid/deckraid-api/internal/domain"
)

// nextState computes the full post-review state for a card. It follows the
// immutable update pattern: the prior state is cloned and never modified,
// so callers can compare against the snapshot they passed in.
//
// Bookkeeping shared by all four branches (review counts, last-reviewed
// time, last rating) happens here; the per-rating transitions update the
// schedule itself.
func nextState(
	state *domain.CardReviewState,
	rating domain.Rating,
	now time.Time,
	params *Params,
) *domain.CardReviewState {
	s := state.Clone()

	s.TotalReviews++
	s.LastReviewedAt = now
	s.LastRating = rating
	s.UpdatedAt = now

	switch rating {
	case domain.RatingAgain:
		applyAgain(s, now, params)
	case domain.RatingHard:
		applyHard(s, now, params)
	case domain.RatingGood:
		applyGood(s, now, params)
	case domain.RatingEasy:
		applyEasy(s, now, params)
	}

	return s
}

// applyAgain handles a failed recall: progress resets and the card drops
// back to the first learning step.
//
// The lapsed flag records whether the card had already graduated before
// this failure. A first-time learner that fails is not lapsed; only a
// regression after graduation is.
func applyAgain(s *domain.CardReviewState, now time.Time, params *Params) {
	s.TotalIncorrect++

	wasGraduated := !s.IsLearning

	s.Repetitions = 0
	s.IsLearning = true
	s.IsLapsed = wasGraduated

	s.EaseFactor = clampEase(s.EaseFactor-params.AgainEasePenalty, params)

	s.Interval = 0
	setDueMinutes(s, now, params.LearningStepMinutes[0])
}

// applyHard handles a recall with great difficulty: the ease factor drops
// (less than for again) and the schedule advances conservatively.
func applyHard(s *domain.CardReviewState, now time.Time, params *Params) {
	s.TotalHard++

	s.EaseFactor = clampEase(s.EaseFactor-params.HardEasePenalty, params)

	if s.IsLearning {
		steps := params.LearningStepMinutes
		if s.Repetitions < len(steps) {
			// Advance one learning step, clamped to the final step
			s.Repetitions++
			step := s.Repetitions
			if step > len(steps)-1 {
				step = len(steps) - 1
			}
			setDueMinutes(s, now, steps[step])
		} else {
			// Steps exhausted: graduate with a reduced interval
			s.IsLearning = false
			s.Interval = maxInt(
				1,
				int(float64(params.GraduatingIntervalDays)*params.HardGraduationFactor),
			)
			setDueDays(s, now, s.Interval)
		}
		return
	}

	// Already graduated: grow the interval moderately
	s.Repetitions++
	s.Interval = maxInt(1, int(float64(s.Interval)*params.HardIntervalMultiplier))
	setDueDays(s, now, s.Interval)
}

// applyGood handles a correct recall: learning cards advance a step and
// graduate once the steps are consumed; graduated cards follow the SM-2
// growth sequence 1, 6, then interval*easeFactor.
func applyGood(s *domain.CardReviewState, now time.Time, params *Params) {
	s.TotalCorrect++

	if s.IsLearning {
		s.Repetitions++

		if s.Repetitions >= len(params.LearningStepMinutes) {
			// Graduate the card
			s.IsLearning = false
			s.IsLapsed = false
			s.Interval = params.GraduatingIntervalDays
			setDueDays(s, now, s.Interval)
		} else {
			setDueMinutes(s, now, params.LearningStepMinutes[s.Repetitions])
		}
		return
	}

	s.Repetitions++

	switch s.Repetitions {
	case 1:
		s.Interval = 1
	case 2:
		s.Interval = 6
	default:
		s.Interval = int(float64(s.Interval) * s.EaseFactor)
	}
	setDueDays(s, now, s.Interval)
}

// applyEasy handles an effortless recall: the ease factor grows and the
// interval jumps aggressively. A learning card graduates immediately,
// skipping any remaining steps.
func applyEasy(s *domain.CardReviewState, now time.Time, params *Params) {
	s.TotalCorrect++

	s.EaseFactor = clampEase(s.EaseFactor+params.EasyEaseBonus, params)

	if s.IsLearning {
		s.IsLearning = false
		s.IsLapsed = false
		s.Repetitions = 1
		s.Interval = params.EasyIntervalDays
		setDueDays(s, now, s.Interval)
		return
	}

	s.Repetitions++

	if s.Repetitions == 1 {
		s.Interval = params.EasyIntervalDays
	} else {
		s.Interval = int(float64(s.Interval) * s.EaseFactor * params.EasyIntervalBonus)
	}
	setDueDays(s, now, s.Interval)
}

// clampEase bounds an ease factor within [MinEaseFactor, MaxEaseFactor].
func clampEase(ef float64, params *Params) float64 {
	if ef < params.MinEaseFactor {
		return params.MinEaseFactor
	}
	if ef > params.MaxEaseFactor {
		return params.MaxEaseFactor
	}
	return ef
}

// setDueMinutes schedules the next review a number of minutes from now,
// used while the card is in the learning phase.
func setDueMinutes(s *domain.CardReviewState, now time.Time, minutes int) {
	due := now.Add(time.Duration(minutes) * time.Minute)
	s.NextDueAt = &due
}

// setDueDays schedules the next review a number of days from now, used for
// graduated cards.
func setDueDays(s *domain.CardReviewState, now time.Time, days int) {
	due := now.AddDate(0, 0, days)
	s.NextDueAt = &due
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
