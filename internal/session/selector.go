package session

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/deckraid/deckraid-api/internal/domain"
	"github.com/deckraid/deckraid-api/internal/domain/srs"
)

// Selector picks the next card to show, preferring cards the scheduler
// says need attention. Candidates are bucketed into priority classes and
// the highest non-empty class wins:
//
//  1. learning - cards inside the learning steps
//  2. due      - graduated cards whose due time has passed
//  3. new      - never-reviewed cards, capped per session
//  4. future   - graduated cards not yet due, soonest first
//  5. recycle  - already-seen cards re-shown so the session can continue,
//     weakest ratings first
//
// Within the learning and due classes, cards are ranked by priority score
// and ties are broken at random so repeated sessions do not drill the same
// order. The Selector is not safe for concurrent use; the owning session
// serializes access.
type Selector struct {
	newCardLimit  int
	newCardsShown int
	rng           *rand.Rand
}

// NewSelector returns a Selector enforcing the given per-session new card
// cap. It panics if rng is nil, as selection order must be reproducible
// under test via an injected source.
func NewSelector(newCardLimit int, rng *rand.Rand) *Selector {
	if rng == nil {
		panic("NewSelector: rng is nil")
	}
	if newCardLimit < 0 {
		newCardLimit = 0
	}
	return &Selector{
		newCardLimit: newCardLimit,
		rng:          rng,
	}
}

// NewCardsShown reports how many new cards this selector has handed out.
func (s *Selector) NewCardsShown() int {
	return s.newCardsShown
}

// RestoreNewCardsShown resets the new card counter, used when resuming a
// session from a snapshot.
func (s *Selector) RestoreNewCardsShown(n int) {
	if n < 0 {
		n = 0
	}
	s.newCardsShown = n
}

// candidate pairs a card with its review state for ranking.
type candidate struct {
	card  *domain.Card
	state *domain.CardReviewState
}

// SelectNext returns the next card to review and its review state, or
// (nil, nil) when no card is eligible: the deck's unseen cards are capped
// out and nothing qualifies for recycling. Cards without a state in the
// map are treated as new; the returned state for such a card is a fresh
// default that the caller should keep.
func (s *Selector) SelectNext(cards []*domain.Card, states map[uuid.UUID]*domain.CardReviewState, now time.Time) (*domain.Card, *domain.CardReviewState) {
	var learning, due, fresh, future, recycle []candidate

	for _, card := range cards {
		state, ok := states[card.ID]
		if !ok {
			var err error
			state, err = domain.NewCardReviewState(card.ID)
			if err != nil {
				continue
			}
		}

		switch {
		case state.IsNew():
			fresh = append(fresh, candidate{card, state})
		case state.IsLearning:
			learning = append(learning, candidate{card, state})
		case state.IsDue(now):
			due = append(due, candidate{card, state})
		default:
			future = append(future, candidate{card, state})
		}

		if !state.IsNew() && state.LastRating.RecycleRank() > 0 {
			recycle = append(recycle, candidate{card, state})
		}
	}

	if c := s.pickByScore(learning, now); c != nil {
		return c.card, c.state
	}
	if c := s.pickByScore(due, now); c != nil {
		return c.card, c.state
	}
	if len(fresh) > 0 && s.newCardsShown < s.newCardLimit {
		c := fresh[s.rng.Intn(len(fresh))]
		s.newCardsShown++
		return c.card, c.state
	}
	if c := pickSoonest(future); c != nil {
		return c.card, c.state
	}
	if c := pickWeakest(recycle); c != nil {
		return c.card, c.state
	}
	return nil, nil
}

// pickByScore ranks candidates by priority score and breaks ties among the
// top scorers at random.
func (s *Selector) pickByScore(cands []candidate, now time.Time) *candidate {
	if len(cands) == 0 {
		return nil
	}

	best := srs.PriorityScore(cands[0].state, now)
	top := []candidate{cands[0]}
	for _, c := range cands[1:] {
		score := srs.PriorityScore(c.state, now)
		switch {
		case score > best:
			best = score
			top = top[:0]
			top = append(top, c)
		case score == best:
			top = append(top, c)
		}
	}

	pick := top[s.rng.Intn(len(top))]
	return &pick
}

// pickSoonest returns the candidate with the earliest due time. A nil
// NextDueAt has no scheduled review and sorts last.
func pickSoonest(cands []candidate) *candidate {
	if len(cands) == 0 {
		return nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i].state.NextDueAt, cands[j].state.NextDueAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
	return &cands[0]
}

// pickWeakest returns the candidate whose last rating signals the most
// trouble: hard before again before good. Easy cards never recycle.
func pickWeakest(cands []candidate) *candidate {
	if len(cands) == 0 {
		return nil
	}
	ranked := make([]candidate, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].state.LastRating.RecycleRank() < ranked[j].state.LastRating.RecycleRank()
	})
	return &ranked[0]
}
