package combat

// EffectKind identifies what a powerup item does when used.
type EffectKind string

// Possible item effects.
const (
	EffectHeal        EffectKind = "heal"         // restore player hp
	EffectShield      EffectKind = "shield"       // grant shield points
	EffectDamageBoost EffectKind = "damage_boost" // timed damage multiplier
	EffectScoreBoost  EffectKind = "score_boost"  // timed score multiplier
	EffectEnemyDamage EffectKind = "enemy_damage" // instant damage to the enemy
)

// ItemSpec describes one powerup item in the loot pool. Value is the heal
// amount, shield points, multiplier, or instant damage depending on the
// effect; DurationTurns only applies to the timed multiplier effects.
// DropWeight is the item's relative weight in the loot draw.
type ItemSpec struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Effect        EffectKind `json:"effect"`
	Value         float64    `json:"value"`
	DurationTurns int        `json:"duration_turns,omitempty"`
	DropWeight    float64    `json:"drop_weight"`
}

// defaultItems is the shipped loot pool.
var defaultItems = []ItemSpec{
	{
		ID:         "health_potion",
		Name:       "Health Potion",
		Effect:     EffectHeal,
		Value:      30,
		DropWeight: 0.30,
	},
	{
		ID:         "shield",
		Name:       "Shield",
		Effect:     EffectShield,
		Value:      20,
		DropWeight: 0.25,
	},
	{
		ID:            "double_damage",
		Name:          "Double Damage",
		Effect:        EffectDamageBoost,
		Value:         2.0,
		DurationTurns: 3,
		DropWeight:    0.20,
	},
	{
		ID:            "lucky_coin",
		Name:          "Lucky Coin",
		Effect:        EffectScoreBoost,
		Value:         1.5,
		DurationTurns: 5,
		DropWeight:    0.25,
	},
	{
		ID:         "fire_bomb",
		Name:       "Fire Bomb",
		Effect:     EffectEnemyDamage,
		Value:      25,
		DropWeight: 0.15,
	},
}

// Items returns the configured loot pool.
func Items() []ItemSpec {
	items := make([]ItemSpec, len(defaultItems))
	copy(items, defaultItems)
	return items
}

// ItemByID looks an item up by its identifier.
func ItemByID(id string) (ItemSpec, bool) {
	for _, item := range defaultItems {
		if item.ID == id {
			return item, true
		}
	}
	return ItemSpec{}, false
}
