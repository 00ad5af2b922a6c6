package combat

import (
	"log/slog"
	"math/rand"

	"github.com/deckraid/deckraid-api/internal/domain"
)

// Config holds the balance parameters the resolver needs.
type Config struct {
	// BaseDamage is the nominal player damage for a good answer.
	BaseDamage int
	// DifficultyScale is the per-encounter stat growth: encounter n of N
	// scales enemy stats by 1 + (n-1)*DifficultyScale.
	DifficultyScale float64
	// LootDropChance is the flat percentage chance, in [0, 100], that a
	// defeated enemy drops anything at all.
	LootDropChance float64
}

// Outcome is the result of resolving one answered card. It carries deltas
// and flags only; the caller applies them to the session.
type Outcome struct {
	DamageToEnemy  int       `json:"damage_to_enemy"`
	DamageToPlayer int       `json:"damage_to_player"`
	ShieldAbsorbed int       `json:"shield_absorbed"`
	EnemyDefeated  bool      `json:"enemy_defeated"`
	PlayerDefeated bool      `json:"player_defeated"`
	ScoreGained    int       `json:"score_gained"`
	Loot           *ItemSpec `json:"loot,omitempty"`
}

// Resolver applies the combat rules. It reads player and enemy state but
// never mutates it; all randomness comes from the injected source so tests
// can seed it.
type Resolver struct {
	cfg    Config
	items  []ItemSpec
	rng    *rand.Rand
	logger *slog.Logger
}

// NewResolver creates a combat resolver with the given balance parameters
// and randomness source. If logger is nil, a default logger will be used.
func NewResolver(cfg Config, rng *rand.Rand, logger *slog.Logger) *Resolver {
	if rng == nil {
		panic("rng cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		cfg:    cfg,
		items:  Items(),
		rng:    rng,
		logger: logger.With(slog.String("component", "combat_resolver")),
	}
}

// ResolveAnswer turns a review rating into combat consequences: damage to
// the enemy for any passing rating, or an enemy counterattack for again.
// Loot and score are rolled here when the hit defeats the enemy.
func (r *Resolver) ResolveAnswer(
	rating domain.Rating,
	player *domain.Player,
	enemy *domain.Enemy,
) Outcome {
	var out Outcome

	damage := r.RollDamage(rating)
	damage = int(float64(damage) * player.DamageMultiplier)

	if damage > 0 {
		out.DamageToEnemy = damage
		if enemy.HP-damage <= 0 {
			out.EnemyDefeated = true
			out.ScoreGained = int(float64(enemy.ScoreValue) * player.ScoreMultiplier)
			out.Loot = r.RollLoot()
		}
		return out
	}

	// A failed recall means the enemy attacks. Shield absorbs first.
	incoming := enemy.Damage
	absorbed := incoming
	if player.Shield < absorbed {
		absorbed = player.Shield
	}
	out.ShieldAbsorbed = absorbed
	out.DamageToPlayer = incoming - absorbed

	if player.HP-out.DamageToPlayer <= 0 {
		out.PlayerDefeated = true
	}

	return out
}

// RollDamage rolls the damage for a rating, uniformly within the rating's
// damage range before the player multiplier is applied. Again always rolls
// exactly 0.
func (r *Resolver) RollDamage(rating domain.Rating) int {
	min, max := rating.DamageRange(r.cfg.BaseDamage)
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min+1)
}

// RollLoot rolls the single drop gate and, if it passes, draws one item
// from the pool weighted by drop chance. Returns nil when nothing drops.
func (r *Resolver) RollLoot() *ItemSpec {
	if r.rng.Float64()*100 >= r.cfg.LootDropChance {
		return nil
	}

	var totalWeight float64
	for _, item := range r.items {
		totalWeight += item.DropWeight
	}
	if totalWeight <= 0 {
		return nil
	}

	roll := r.rng.Float64() * totalWeight
	for i := range r.items {
		roll -= r.items[i].DropWeight
		if roll < 0 {
			item := r.items[i]
			return &item
		}
	}

	// Floating point edge: fall back to the last item.
	item := r.items[len(r.items)-1]
	return &item
}

// ScoreFor computes the score awarded for defeating an enemy with the
// player's current score multiplier.
func (r *Resolver) ScoreFor(enemy *domain.Enemy, player *domain.Player) int {
	return int(float64(enemy.ScoreValue) * player.ScoreMultiplier)
}
