package combat

import (
	"log/slog"

	"github.com/deckraid/deckraid-api/internal/domain"
)

// GenerateEnemy creates the enemy for encounter number n of total. Stats
// scale linearly with the encounter index; the final encounter always
// produces a boss drawn uniformly from the boss pool, earlier encounters
// draw from one of three tiered pools by progress through the run.
func (r *Resolver) GenerateEnemy(encounter, total int) *domain.Enemy {
	if total < 1 {
		total = 1
	}
	if encounter < 1 {
		encounter = 1
	}

	scale := 1.0 + float64(encounter-1)*r.cfg.DifficultyScale

	var spec EnemySpec
	if encounter == total {
		spec = bossCatalog[r.rng.Intn(len(bossCatalog))]
	} else {
		progress := float64(encounter) / float64(total)

		var pool []string
		switch {
		case progress < earlyPoolThreshold:
			pool = earlyPool
		case progress < midPoolThreshold:
			pool = midPool
		default:
			pool = latePool
		}

		spec = enemyCatalog[pool[r.rng.Intn(len(pool))]]
	}

	enemy := &domain.Enemy{
		Type:       spec.Type,
		Name:       spec.Name,
		HP:         int(float64(spec.HP) * scale),
		MaxHP:      int(float64(spec.HP) * scale),
		Damage:     int(float64(spec.Damage) * scale),
		ScoreValue: int(float64(spec.Score) * scale),
		Difficulty: spec.Difficulty,
		Boss:       spec.Boss,
	}

	r.logger.Debug("generated enemy",
		slog.String("type", enemy.Type),
		slog.Int("encounter", encounter),
		slog.Int("hp", enemy.HP),
		slog.Bool("boss", enemy.Boss))

	return enemy
}

// ApplyItem applies a powerup item's effect to the player or enemy and
// reports what changed. Enemy damage from a fire bomb can defeat the
// enemy; the caller handles the defeat the same way as a combat kill.
func ApplyItem(item ItemSpec, player *domain.Player, enemy *domain.Enemy) Outcome {
	var out Outcome

	switch item.Effect {
	case EffectHeal:
		player.Heal(int(item.Value))
	case EffectShield:
		player.AddShield(int(item.Value))
	case EffectDamageBoost:
		player.BoostDamage(item.Value, item.DurationTurns)
	case EffectScoreBoost:
		player.BoostScore(item.Value, item.DurationTurns)
	case EffectEnemyDamage:
		if enemy != nil {
			out.DamageToEnemy = int(item.Value)
			if enemy.HP-out.DamageToEnemy <= 0 {
				out.EnemyDefeated = true
				out.ScoreGained = int(float64(enemy.ScoreValue) * player.ScoreMultiplier)
			}
		}
	}

	return out
}
