package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/deckraid/deckraid-api/internal/combat"
	"github.com/deckraid/deckraid-api/internal/config"
	"github.com/deckraid/deckraid-api/internal/domain"
	"github.com/deckraid/deckraid-api/internal/domain/srs"
	"github.com/deckraid/deckraid-api/internal/store"
)

// Orchestrator drives a single run: it loads the deck, selects cards,
// applies ratings to the scheduler, resolves combat, and persists review
// outcomes. It is not safe for concurrent use; the Manager serializes
// calls per session key.
type Orchestrator struct {
	gameCfg  config.GameConfig
	srs      srs.Service
	resolver *combat.Resolver
	selector *Selector
	decks    store.DeckStore
	states   store.ReviewStateStore
	saves    store.SaveStore
	events   store.ReviewEventStore
	sessions store.SessionStore
	rng      *rand.Rand
	logger   *slog.Logger
	now      func() time.Time

	state        *State
	cards        []*domain.Card
	reviewStates map[uuid.UUID]*domain.CardReviewState
	currentCard  *domain.Card
	currentState *domain.CardReviewState
	revealed     bool
}

// OrchestratorConfig carries the collaborators an Orchestrator needs.
type OrchestratorConfig struct {
	Game     config.GameConfig
	SRS      srs.Service
	Resolver *combat.Resolver
	Decks    store.DeckStore
	States   store.ReviewStateStore
	Saves    store.SaveStore
	Events   store.ReviewEventStore
	Sessions store.SessionStore
	RNG      *rand.Rand
	Logger   *slog.Logger
}

// NewOrchestrator creates an Orchestrator with no session in progress.
// It panics if any collaborator is nil, as a missing dependency is a
// programmer error caught at composition time.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	if cfg.SRS == nil {
		panic("NewOrchestrator: SRS service is nil")
	}
	if cfg.Resolver == nil {
		panic("NewOrchestrator: resolver is nil")
	}
	if cfg.Decks == nil {
		panic("NewOrchestrator: deck store is nil")
	}
	if cfg.States == nil {
		panic("NewOrchestrator: review state store is nil")
	}
	if cfg.Saves == nil {
		panic("NewOrchestrator: save store is nil")
	}
	if cfg.Events == nil {
		panic("NewOrchestrator: review event store is nil")
	}
	if cfg.Sessions == nil {
		panic("NewOrchestrator: session store is nil")
	}
	if cfg.RNG == nil {
		panic("NewOrchestrator: rng is nil")
	}
	if cfg.Logger == nil {
		panic("NewOrchestrator: logger is nil")
	}
	return &Orchestrator{
		gameCfg:  cfg.Game,
		srs:      cfg.SRS,
		resolver: cfg.Resolver,
		decks:    cfg.Decks,
		states:   cfg.States,
		saves:    cfg.Saves,
		events:   cfg.Events,
		sessions: cfg.Sessions,
		rng:      cfg.RNG,
		logger:   cfg.Logger.With(slog.String("component", "session_orchestrator")),
		now:      time.Now,
	}
}

// TurnView is the presentation snapshot returned after state-changing
// operations and by Status. CardBack is populated only after Reveal.
type TurnView struct {
	SessionID       uuid.UUID      `json:"session_id"`
	Status          Status         `json:"status"`
	Player          *domain.Player `json:"player"`
	Enemy           *domain.Enemy  `json:"enemy,omitempty"`
	Encounter       int            `json:"encounter"`
	TotalEncounters int            `json:"total_encounters"`
	CardsReviewed   int            `json:"cards_reviewed"`
	CardsCorrect    int            `json:"cards_correct"`
	Accuracy        float64        `json:"accuracy"`
	Inventory       []string       `json:"inventory"`
	CardID          uuid.UUID      `json:"card_id,omitempty"`
	CardFront       string         `json:"card_front,omitempty"`
	CardBack        string         `json:"card_back,omitempty"`
	Revealed        bool           `json:"revealed"`
	DeckExhausted   bool           `json:"deck_exhausted"`
}

// AnswerResult reports what a single answered turn did.
type AnswerResult struct {
	Rating          domain.Rating           `json:"rating"`
	DamageToEnemy   int                     `json:"damage_to_enemy"`
	DamageToPlayer  int                     `json:"damage_to_player"`
	ShieldAbsorbed  int                     `json:"shield_absorbed"`
	EnemyDefeated   bool                    `json:"enemy_defeated"`
	ScoreGained     int                     `json:"score_gained"`
	Loot            *combat.ItemSpec        `json:"loot,omitempty"`
	ReviewState     *domain.CardReviewState `json:"review_state"`
	NextDueInterval int                     `json:"next_due_interval_days"`
	View            *TurnView               `json:"view"`
}

// PowerupResult reports the effect of a consumed item.
type PowerupResult struct {
	Item          combat.ItemSpec  `json:"item"`
	DamageToEnemy int              `json:"damage_to_enemy,omitempty"`
	EnemyDefeated bool             `json:"enemy_defeated"`
	ScoreGained   int              `json:"score_gained"`
	Loot          *combat.ItemSpec `json:"loot,omitempty"`
	View          *TurnView        `json:"view"`
}

// NewGame starts a fresh run against the given deck, discarding any run
// already in progress on this orchestrator. It loads the deck's cards and
// their saved review states, spawns the first enemy, and selects the first
// card.
func (o *Orchestrator) NewGame(ctx context.Context, deckID uuid.UUID) (*TurnView, error) {
	if deckID == uuid.Nil {
		return nil, fmt.Errorf("%w: deck id is required", ErrInvalidInput)
	}

	deck, err := o.decks.GetDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("loading deck: %w", err)
	}
	cards, err := o.decks.GetCards(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("loading cards: %w", err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: deck %q has no cards", ErrInvalidInput, deck.Name)
	}

	saved, err := o.states.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("loading review states: %w", err)
	}
	reviewStates := make(map[uuid.UUID]*domain.CardReviewState, len(saved))
	for _, st := range saved {
		reviewStates[st.CardID] = st
	}

	now := o.now()
	o.state = &State{
		SessionID:       uuid.New(),
		DeckID:          deckID,
		Status:          StatusActive,
		Player:          domain.NewPlayer(o.gameCfg.PlayerMaxHP, o.gameCfg.PlayerStartingLevel),
		Encounter:       1,
		TotalEncounters: o.gameCfg.TotalEncounters,
		Inventory:       []string{},
		StartedAt:       now,
	}
	o.state.Enemy = o.resolver.GenerateEnemy(1, o.state.TotalEncounters)
	o.cards = cards
	o.reviewStates = reviewStates
	o.selector = NewSelector(o.gameCfg.NewCardsPerSession, o.rng)
	o.advanceCard(now)

	record := &store.GameSession{
		ID:               o.state.SessionID,
		DeckID:           deckID,
		Status:           string(StatusActive),
		HighestEncounter: 1,
		StartedAt:        now,
	}
	if err := o.sessions.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("recording session: %w", err)
	}

	o.logger.InfoContext(ctx, "new game started",
		slog.String("session_id", o.state.SessionID.String()),
		slog.String("deck_id", deckID.String()),
		slog.Int("cards", len(cards)),
		slog.String("enemy", o.state.Enemy.Name))

	return o.view(), nil
}

// Status returns the current presentation state. It fails with
// ErrNoSession when no game has been started or loaded.
func (o *Orchestrator) Status() (*TurnView, error) {
	if o.state == nil {
		return nil, ErrNoSession
	}
	return o.view(), nil
}

// Reveal flips the current card so its back face is visible, enabling
// Answer. Revealing twice, revealing with no card on screen, or revealing
// after the game has ended is an invalid state.
func (o *Orchestrator) Reveal() (*TurnView, error) {
	if o.state == nil {
		return nil, ErrNoSession
	}
	if o.state.Status != StatusActive {
		return nil, fmt.Errorf("%w: game is %s", ErrInvalidState, o.state.Status)
	}
	if o.currentCard == nil {
		return nil, fmt.Errorf("%w: no card to reveal", ErrInvalidState)
	}
	if o.revealed {
		return nil, fmt.Errorf("%w: card already revealed", ErrInvalidState)
	}
	o.revealed = true
	return o.view(), nil
}

// Answer grades the revealed card and resolves one combat turn. The
// scheduler is always consulted and its new state persisted, regardless of
// what combat does with the outcome.
func (o *Orchestrator) Answer(ctx context.Context, rating domain.Rating) (*AnswerResult, error) {
	if o.state == nil {
		return nil, ErrNoSession
	}
	if o.state.Status != StatusActive {
		return nil, fmt.Errorf("%w: game is %s", ErrInvalidState, o.state.Status)
	}
	if o.currentCard == nil {
		return nil, fmt.Errorf("%w: no card in play", ErrInvalidState)
	}
	if !o.revealed {
		return nil, fmt.Errorf("%w: card not yet revealed", ErrInvalidState)
	}
	if !rating.IsValid() {
		return nil, fmt.Errorf("%w: unknown rating %q", ErrInvalidInput, string(rating))
	}

	now := o.now()
	newState, err := o.srs.Review(o.currentState, rating, now)
	if err != nil {
		return nil, fmt.Errorf("scheduling review: %w", err)
	}

	player := o.state.Player
	enemy := o.state.Enemy
	outcome := o.resolver.ResolveAnswer(rating, player, enemy)

	if err := o.states.Upsert(ctx, o.state.DeckID, newState); err != nil {
		return nil, fmt.Errorf("persisting review state: %w", err)
	}
	event := &store.ReviewEvent{
		CardID:      o.currentCard.ID,
		DeckID:      o.state.DeckID,
		SessionID:   o.state.SessionID,
		Rating:      rating,
		Damage:      outcome.DamageToEnemy,
		NewEase:     newState.EaseFactor,
		NewInterval: newState.Interval,
	}
	if err := o.events.Record(ctx, event); err != nil {
		return nil, fmt.Errorf("recording review event: %w", err)
	}

	o.reviewStates[o.currentCard.ID] = newState
	o.state.CardsReviewed++
	if rating.IsCorrect() {
		o.state.CardsCorrect++
	}

	enemy.HP -= outcome.DamageToEnemy
	if enemy.HP < 0 {
		enemy.HP = 0
	}
	player.Shield -= outcome.ShieldAbsorbed
	if player.Shield < 0 {
		player.Shield = 0
	}
	player.HP -= outcome.DamageToPlayer
	if player.HP < 0 {
		player.HP = 0
	}

	result := &AnswerResult{
		Rating:          rating,
		DamageToEnemy:   outcome.DamageToEnemy,
		DamageToPlayer:  outcome.DamageToPlayer,
		ShieldAbsorbed:  outcome.ShieldAbsorbed,
		EnemyDefeated:   outcome.EnemyDefeated,
		ScoreGained:     outcome.ScoreGained,
		Loot:            outcome.Loot,
		ReviewState:     newState,
		NextDueInterval: newState.Interval,
	}

	switch {
	case outcome.PlayerDefeated:
		o.state.Status = StatusLost
		o.clearCard()
		o.finalizeRun(ctx)
		o.logger.InfoContext(ctx, "game lost",
			slog.String("session_id", o.state.SessionID.String()),
			slog.Int("encounter", o.state.Encounter),
			slog.Int("score", player.Score))
	case outcome.EnemyDefeated:
		result.ScoreGained = o.applyVictorySpoils(ctx, outcome.ScoreGained, outcome.Loot)
		if o.state.Status == StatusActive {
			o.advanceCard(now)
		}
	default:
		o.advanceCard(now)
	}
	player.TickBoosts()

	result.View = o.view()
	return result, nil
}

// UsePowerup consumes an item from the player's inventory and applies its
// effect. Using an item does not cost a turn and does not require a
// revealed card, but the game must still be active.
func (o *Orchestrator) UsePowerup(ctx context.Context, itemID string) (*PowerupResult, error) {
	if o.state == nil {
		return nil, ErrNoSession
	}
	if o.state.Status != StatusActive {
		return nil, fmt.Errorf("%w: game is %s", ErrInvalidState, o.state.Status)
	}

	idx := -1
	for i, held := range o.state.Inventory {
		if held == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: item %q not in inventory", ErrInvalidInput, itemID)
	}
	spec, ok := combat.ItemByID(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown item %q", ErrInvalidInput, itemID)
	}

	o.state.Inventory = append(o.state.Inventory[:idx], o.state.Inventory[idx+1:]...)
	outcome := combat.ApplyItem(spec, o.state.Player, o.state.Enemy)

	result := &PowerupResult{
		Item:          spec,
		DamageToEnemy: outcome.DamageToEnemy,
		EnemyDefeated: outcome.EnemyDefeated,
		ScoreGained:   outcome.ScoreGained,
	}

	if outcome.EnemyDefeated {
		o.state.Enemy.HP = 0
		loot := o.resolver.RollLoot()
		result.Loot = loot
		result.ScoreGained = o.applyVictorySpoils(ctx, outcome.ScoreGained, loot)
	} else if outcome.DamageToEnemy > 0 {
		o.state.Enemy.HP -= outcome.DamageToEnemy
	}

	o.logger.InfoContext(ctx, "powerup used",
		slog.String("session_id", o.state.SessionID.String()),
		slog.String("item", spec.ID))

	result.View = o.view()
	return result, nil
}

// Save writes the current run, whatever its status, as a named snapshot
// and returns the save's id. Review states are flushed alongside so the
// scheduler survives even if the save is never loaded.
func (o *Orchestrator) Save(ctx context.Context, name string) (uuid.UUID, error) {
	if o.state == nil {
		return uuid.Nil, ErrNoSession
	}

	states := make([]*domain.CardReviewState, 0, len(o.reviewStates))
	for _, st := range o.reviewStates {
		states = append(states, st)
	}
	if err := o.states.UpsertAll(ctx, o.state.DeckID, states); err != nil {
		return uuid.Nil, fmt.Errorf("flushing review states: %w", err)
	}

	snap := &Snapshot{
		Version:       snapshotVersion,
		State:         o.state,
		ReviewStates:  states,
		NewCardsShown: o.selector.NewCardsShown(),
		Revealed:      o.revealed,
		SavedAt:       o.now(),
	}
	if o.currentCard != nil {
		snap.CurrentCardID = o.currentCard.ID
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	id, err := o.saves.Create(ctx, o.state.DeckID, name, payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("persisting save: %w", err)
	}

	o.logger.InfoContext(ctx, "game saved",
		slog.String("session_id", o.state.SessionID.String()),
		slog.String("save_id", id.String()))
	return id, nil
}

// Load restores a saved run, replacing whatever this orchestrator was
// doing. The snapshot's review states are authoritative over the store's;
// card content is re-read from the deck so edits made since the save show
// up.
func (o *Orchestrator) Load(ctx context.Context, saveID uuid.UUID) (*TurnView, error) {
	if saveID == uuid.Nil {
		return nil, fmt.Errorf("%w: save id is required", ErrInvalidInput)
	}

	save, err := o.saves.Get(ctx, saveID)
	if err != nil {
		return nil, fmt.Errorf("loading save: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(save.Snapshot, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Version != snapshotVersion || snap.State == nil {
		return nil, fmt.Errorf("%w: save %s is not compatible with this build", ErrInvalidInput, saveID)
	}

	cards, err := o.decks.GetCards(ctx, snap.State.DeckID)
	if err != nil {
		return nil, fmt.Errorf("loading cards: %w", err)
	}

	reviewStates := make(map[uuid.UUID]*domain.CardReviewState, len(snap.ReviewStates))
	for _, st := range snap.ReviewStates {
		reviewStates[st.CardID] = st
	}

	o.state = snap.State
	if o.state.Inventory == nil {
		o.state.Inventory = []string{}
	}
	o.cards = cards
	o.reviewStates = reviewStates
	o.selector = NewSelector(o.gameCfg.NewCardsPerSession, o.rng)
	o.selector.RestoreNewCardsShown(snap.NewCardsShown)
	o.clearCard()

	if snap.CurrentCardID != uuid.Nil {
		for _, card := range cards {
			if card.ID == snap.CurrentCardID {
				o.currentCard = card
				o.currentState = o.stateFor(card)
				o.revealed = snap.Revealed
				break
			}
		}
	}
	if o.currentCard == nil && o.state.Status == StatusActive {
		o.advanceCard(o.now())
	}

	o.logger.InfoContext(ctx, "game loaded",
		slog.String("session_id", o.state.SessionID.String()),
		slog.String("save_id", saveID.String()))
	return o.view(), nil
}

// applyVictorySpoils credits a defeated enemy and either advances to the
// next encounter or ends the run as won. The score passed in already
// includes the player's score multiplier; it is returned unchanged for
// reporting.
func (o *Orchestrator) applyVictorySpoils(ctx context.Context, awarded int, loot *combat.ItemSpec) int {
	player := o.state.Player
	player.Score += awarded
	if loot != nil {
		o.state.Inventory = append(o.state.Inventory, loot.ID)
	}

	o.state.Encounter++
	if o.state.Encounter > o.state.TotalEncounters {
		o.state.Status = StatusWon
		o.state.Enemy = nil
		o.clearCard()
		o.finalizeRun(ctx)
		o.logger.InfoContext(ctx, "game won",
			slog.String("session_id", o.state.SessionID.String()),
			slog.Int("score", player.Score))
		return awarded
	}
	o.state.Enemy = o.resolver.GenerateEnemy(o.state.Encounter, o.state.TotalEncounters)
	o.logger.InfoContext(ctx, "encounter advanced",
		slog.String("session_id", o.state.SessionID.String()),
		slog.Int("encounter", o.state.Encounter),
		slog.String("enemy", o.state.Enemy.Name))
	return awarded
}

// finalizeRun writes the run's outcome and totals to the session record.
// The turn that ended the game is already resolved and persisted, so a
// failure here is logged rather than surfaced to the player.
func (o *Orchestrator) finalizeRun(ctx context.Context) {
	highest := o.state.Encounter
	if highest > o.state.TotalEncounters {
		highest = o.state.TotalEncounters
	}
	ended := o.now()
	record := &store.GameSession{
		ID:               o.state.SessionID,
		DeckID:           o.state.DeckID,
		Status:           string(o.state.Status),
		CardsReviewed:    o.state.CardsReviewed,
		CardsCorrect:     o.state.CardsCorrect,
		Score:            o.state.Player.Score,
		HighestEncounter: highest,
		StartedAt:        o.state.StartedAt,
		EndedAt:          &ended,
	}
	if err := o.sessions.Finalize(ctx, record); err != nil {
		o.logger.ErrorContext(ctx, "failed to finalize session record",
			slog.String("session_id", o.state.SessionID.String()),
			slog.Any("error", err))
	}
}

// advanceCard selects the next card, or marks the turn cardless when the
// deck is exhausted. Exhaustion is not a terminal state; the run simply
// has no card to show until something becomes eligible again.
func (o *Orchestrator) advanceCard(now time.Time) {
	card, state := o.selector.SelectNext(o.cards, o.reviewStates, now)
	o.currentCard = card
	o.currentState = state
	o.revealed = false
	if card != nil && state != nil {
		o.reviewStates[card.ID] = state
	}
}

func (o *Orchestrator) clearCard() {
	o.currentCard = nil
	o.currentState = nil
	o.revealed = false
}

func (o *Orchestrator) stateFor(card *domain.Card) *domain.CardReviewState {
	if st, ok := o.reviewStates[card.ID]; ok {
		return st
	}
	st, err := domain.NewCardReviewState(card.ID)
	if err != nil {
		return nil
	}
	o.reviewStates[card.ID] = st
	return st
}

func (o *Orchestrator) view() *TurnView {
	v := &TurnView{
		SessionID:       o.state.SessionID,
		Status:          o.state.Status,
		Player:          o.state.Player,
		Enemy:           o.state.Enemy,
		Encounter:       o.state.Encounter,
		TotalEncounters: o.state.TotalEncounters,
		CardsReviewed:   o.state.CardsReviewed,
		CardsCorrect:    o.state.CardsCorrect,
		Accuracy:        o.state.Accuracy(),
		Inventory:       o.state.Inventory,
		Revealed:        o.revealed,
	}
	if o.currentCard != nil {
		v.CardID = o.currentCard.ID
		v.CardFront = o.currentCard.Front
		if o.revealed {
			v.CardBack = o.currentCard.Back
		}
	} else if o.state.Status == StatusActive {
		v.DeckExhausted = true
	}
	return v
}
