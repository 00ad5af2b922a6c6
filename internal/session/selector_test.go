package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckraid/deckraid-api/internal/domain"
)

func testCard(t *testing.T, front string) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(uuid.New(), front, "back", nil)
	require.NoError(t, err)
	return card
}

func stateFor(t *testing.T, card *domain.Card) *domain.CardReviewState {
	t.Helper()
	state, err := domain.NewCardReviewState(card.ID)
	require.NoError(t, err)
	return state
}

// learningStateFor returns a card mid-learning (seen but not graduated).
func learningStateFor(t *testing.T, card *domain.Card) *domain.CardReviewState {
	t.Helper()
	state := stateFor(t, card)
	state.TotalReviews = 1
	state.Repetitions = 1
	state.LastRating = domain.RatingGood
	state.TotalCorrect = 1
	return state
}

// graduatedStateFor returns a graduated card due at the given time.
func graduatedStateFor(t *testing.T, card *domain.Card, due time.Time) *domain.CardReviewState {
	t.Helper()
	state := stateFor(t, card)
	state.IsLearning = false
	state.TotalReviews = 2
	state.TotalCorrect = 2
	state.Repetitions = 2
	state.Interval = 1
	state.LastRating = domain.RatingGood
	state.NextDueAt = &due
	return state
}

func TestSelectNext_ClassPriority(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	learningCard := testCard(t, "learning")
	dueCard := testCard(t, "due")
	newCard := testCard(t, "new")
	futureCard := testCard(t, "future")

	cards := []*domain.Card{futureCard, newCard, dueCard, learningCard}
	states := map[uuid.UUID]*domain.CardReviewState{
		learningCard.ID: learningStateFor(t, learningCard),
		dueCard.ID:      graduatedStateFor(t, dueCard, now.Add(-time.Hour)),
		futureCard.ID:   graduatedStateFor(t, futureCard, now.Add(24*time.Hour)),
	}

	selector := NewSelector(20, rand.New(rand.NewSource(1)))

	// Learning wins over everything.
	card, _ := selector.SelectNext(cards, states, now)
	require.NotNil(t, card)
	assert.Equal(t, learningCard.ID, card.ID)

	// Without the learning card, the due card wins.
	delete(states, learningCard.ID)
	cards = []*domain.Card{futureCard, newCard, dueCard}
	card, _ = selector.SelectNext(cards, states, now)
	require.NotNil(t, card)
	assert.Equal(t, dueCard.ID, card.ID)

	// Without due cards, the new card is next.
	cards = []*domain.Card{futureCard, newCard}
	card, state := selector.SelectNext(cards, states, now)
	require.NotNil(t, card)
	assert.Equal(t, newCard.ID, card.ID)
	require.NotNil(t, state, "a new card gets a fresh default state")
	assert.True(t, state.IsNew())

	// Only the future card remains.
	cards = []*domain.Card{futureCard}
	card, _ = selector.SelectNext(cards, states, now)
	require.NotNil(t, card)
	assert.Equal(t, futureCard.ID, card.ID)
}

func TestSelectNext_NewCardCap(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	first := testCard(t, "first")
	second := testCard(t, "second")
	cards := []*domain.Card{first, second}
	states := map[uuid.UUID]*domain.CardReviewState{}

	selector := NewSelector(1, rand.New(rand.NewSource(1)))

	card, _ := selector.SelectNext(cards, states, now)
	require.NotNil(t, card, "first new card fits under the cap")
	assert.Equal(t, 1, selector.NewCardsShown())

	// Both cards are still unseen, but the cap is spent: nothing else is
	// eligible, so selection reports exhaustion rather than leaking a new
	// card.
	card, state := selector.SelectNext(cards, states, now)
	assert.Nil(t, card)
	assert.Nil(t, state)
}

func TestSelectNext_ZeroCapNeverShowsNewCards(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	cards := []*domain.Card{testCard(t, "a"), testCard(t, "b")}
	selector := NewSelector(0, rand.New(rand.NewSource(1)))

	card, _ := selector.SelectNext(cards, map[uuid.UUID]*domain.CardReviewState{}, now)
	assert.Nil(t, card)
	assert.Equal(t, 0, selector.NewCardsShown())
}

func TestSelectNext_FuturePicksSoonestDue(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	soon := testCard(t, "soon")
	later := testCard(t, "later")
	cards := []*domain.Card{later, soon}
	states := map[uuid.UUID]*domain.CardReviewState{
		soon.ID:  graduatedStateFor(t, soon, now.Add(2*time.Hour)),
		later.ID: graduatedStateFor(t, later, now.Add(48*time.Hour)),
	}

	selector := NewSelector(0, rand.New(rand.NewSource(1)))
	card, _ := selector.SelectNext(cards, states, now)
	require.NotNil(t, card)
	assert.Equal(t, soon.ID, card.ID)
}

func TestPickSoonest_UnscheduledSortsLast(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	scheduled := testCard(t, "scheduled")
	unscheduled := testCard(t, "unscheduled")

	cands := []candidate{
		{card: unscheduled, state: stateFor(t, unscheduled)},
		{card: scheduled, state: graduatedStateFor(t, scheduled, now.Add(72*time.Hour))},
	}

	got := pickSoonest(cands)
	require.NotNil(t, got)
	assert.Equal(t, scheduled.ID, got.card.ID, "a card with a due time outranks one without")
}

func TestSelectNext_HigherPriorityScoreWinsWithinClass(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	barely := testCard(t, "barely overdue")
	very := testCard(t, "very overdue")
	cards := []*domain.Card{barely, very}
	states := map[uuid.UUID]*domain.CardReviewState{
		barely.ID: graduatedStateFor(t, barely, now.Add(-time.Hour)),
		very.ID:   graduatedStateFor(t, very, now.AddDate(0, 0, -5)),
	}

	selector := NewSelector(0, rand.New(rand.NewSource(1)))
	for i := 0; i < 20; i++ {
		card, _ := selector.SelectNext(cards, states, now)
		require.NotNil(t, card)
		assert.Equal(t, very.ID, card.ID, "the more overdue card always outranks")
	}
}

func TestPickWeakest_RecycleOrdering(t *testing.T) {
	t.Parallel()

	hardCard := testCard(t, "hard")
	againCard := testCard(t, "again")
	goodCard := testCard(t, "good")

	withRating := func(card *domain.Card, rating domain.Rating) candidate {
		state := stateFor(t, card)
		state.TotalReviews = 1
		state.LastRating = rating
		return candidate{card: card, state: state}
	}

	cands := []candidate{
		withRating(goodCard, domain.RatingGood),
		withRating(againCard, domain.RatingAgain),
		withRating(hardCard, domain.RatingHard),
	}

	picked := pickWeakest(cands)
	require.NotNil(t, picked)
	assert.Equal(t, hardCard.ID, picked.card.ID, "hard cards recycle first")

	picked = pickWeakest(cands[:2])
	require.NotNil(t, picked)
	assert.Equal(t, againCard.ID, picked.card.ID)

	assert.Nil(t, pickWeakest(nil))
}

func TestRestoreNewCardsShown(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	selector := NewSelector(2, rand.New(rand.NewSource(1)))
	selector.RestoreNewCardsShown(2)

	card, _ := selector.SelectNext(
		[]*domain.Card{testCard(t, "a")},
		map[uuid.UUID]*domain.CardReviewState{},
		now,
	)
	assert.Nil(t, card, "restored counter keeps the cap enforced")
}
