package combat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckraid/deckraid-api/internal/domain"
)

func testResolver(t *testing.T, seed int64) *Resolver {
	t.Helper()
	return NewResolver(Config{
		BaseDamage:      20,
		DifficultyScale: 0.2,
		LootDropChance:  70,
	}, rand.New(rand.NewSource(seed)), nil)
}

func testEnemy(hp int) *domain.Enemy {
	return &domain.Enemy{
		Type:       "slime",
		Name:       "Slime",
		HP:         hp,
		MaxHP:      hp,
		Damage:     10,
		ScoreValue: 100,
		Difficulty: 1,
	}
}

func TestRollDamageStaysInRange(t *testing.T) {
	t.Parallel()
	r := testResolver(t, 1)

	testCases := []struct {
		rating  domain.Rating
		wantMin int
		wantMax int
	}{
		{domain.RatingAgain, 0, 0},
		{domain.RatingHard, 4, 7},
		{domain.RatingGood, 16, 24},
		{domain.RatingEasy, 32, 48},
	}

	for _, tc := range testCases {
		for i := 0; i < 200; i++ {
			got := r.RollDamage(tc.rating)
			assert.GreaterOrEqual(t, got, tc.wantMin, "rating %s", tc.rating)
			assert.LessOrEqual(t, got, tc.wantMax, "rating %s", tc.rating)
		}
	}
}

func TestResolveAnswer_PassingRatingHitsEnemy(t *testing.T) {
	t.Parallel()
	r := testResolver(t, 42)
	player := domain.NewPlayer(100, 1)
	enemy := testEnemy(1000)

	out := r.ResolveAnswer(domain.RatingGood, player, enemy)

	assert.GreaterOrEqual(t, out.DamageToEnemy, 16)
	assert.LessOrEqual(t, out.DamageToEnemy, 24)
	assert.Zero(t, out.DamageToPlayer, "enemy does not attack on a passing answer")
	assert.False(t, out.EnemyDefeated)
	assert.False(t, out.PlayerDefeated)
	assert.Zero(t, out.ScoreGained)
}

func TestResolveAnswer_KillAwardsScoreAndMayDropLoot(t *testing.T) {
	t.Parallel()
	r := testResolver(t, 7)
	player := domain.NewPlayer(100, 1)
	enemy := testEnemy(10)

	out := r.ResolveAnswer(domain.RatingGood, player, enemy)

	assert.True(t, out.EnemyDefeated, "any good roll kills a 10 hp enemy")
	assert.Equal(t, 100, out.ScoreGained)
}

func TestResolveAnswer_DamageMultiplierApplies(t *testing.T) {
	t.Parallel()
	r := testResolver(t, 3)
	player := domain.NewPlayer(100, 1)
	player.BoostDamage(2.0, 3)
	enemy := testEnemy(1000)

	out := r.ResolveAnswer(domain.RatingGood, player, enemy)
	assert.GreaterOrEqual(t, out.DamageToEnemy, 32)
	assert.LessOrEqual(t, out.DamageToEnemy, 48)
}

func TestResolveAnswer_FailedRecallTriggersCounterattack(t *testing.T) {
	t.Parallel()

	t.Run("unshielded player takes full damage", func(t *testing.T) {
		t.Parallel()
		r := testResolver(t, 11)
		player := domain.NewPlayer(100, 1)
		enemy := testEnemy(50)

		out := r.ResolveAnswer(domain.RatingAgain, player, enemy)

		assert.Zero(t, out.DamageToEnemy)
		assert.Equal(t, 10, out.DamageToPlayer)
		assert.Zero(t, out.ShieldAbsorbed)
		assert.False(t, out.PlayerDefeated)
	})

	t.Run("shield absorbs before hp", func(t *testing.T) {
		t.Parallel()
		r := testResolver(t, 11)
		player := domain.NewPlayer(100, 1)
		player.AddShield(6)
		enemy := testEnemy(50)

		out := r.ResolveAnswer(domain.RatingAgain, player, enemy)

		assert.Equal(t, 6, out.ShieldAbsorbed)
		assert.Equal(t, 4, out.DamageToPlayer)
	})

	t.Run("big shield absorbs everything", func(t *testing.T) {
		t.Parallel()
		r := testResolver(t, 11)
		player := domain.NewPlayer(100, 1)
		player.AddShield(50)
		enemy := testEnemy(50)

		out := r.ResolveAnswer(domain.RatingAgain, player, enemy)

		assert.Equal(t, 10, out.ShieldAbsorbed)
		assert.Zero(t, out.DamageToPlayer)
	})

	t.Run("lethal counterattack defeats the player", func(t *testing.T) {
		t.Parallel()
		r := testResolver(t, 11)
		player := domain.NewPlayer(100, 1)
		player.HP = 5
		enemy := testEnemy(50)

		out := r.ResolveAnswer(domain.RatingAgain, player, enemy)
		assert.True(t, out.PlayerDefeated)
	})
}

func TestRollLoot(t *testing.T) {
	t.Parallel()

	t.Run("zero chance never drops", func(t *testing.T) {
		t.Parallel()
		r := NewResolver(Config{BaseDamage: 20, LootDropChance: 0}, rand.New(rand.NewSource(1)), nil)
		for i := 0; i < 100; i++ {
			assert.Nil(t, r.RollLoot())
		}
	})

	t.Run("certain chance always draws from the pool", func(t *testing.T) {
		t.Parallel()
		r := NewResolver(Config{BaseDamage: 20, LootDropChance: 100}, rand.New(rand.NewSource(1)), nil)
		seen := make(map[string]bool)
		for i := 0; i < 500; i++ {
			item := r.RollLoot()
			require.NotNil(t, item)
			_, known := ItemByID(item.ID)
			assert.True(t, known, "dropped item %q must exist in the pool", item.ID)
			seen[item.ID] = true
		}
		// All five items should appear over 500 certain draws.
		assert.Len(t, seen, len(Items()))
	})
}

func TestGenerateEnemy(t *testing.T) {
	t.Parallel()

	t.Run("final encounter is always a boss", func(t *testing.T) {
		t.Parallel()
		r := testResolver(t, 5)
		for i := 0; i < 50; i++ {
			enemy := r.GenerateEnemy(10, 10)
			assert.True(t, enemy.Boss)
		}
	})

	t.Run("early encounters draw from the easy pool", func(t *testing.T) {
		t.Parallel()
		r := testResolver(t, 5)
		for i := 0; i < 50; i++ {
			enemy := r.GenerateEnemy(1, 10)
			assert.Contains(t, []string{"slime", "skeleton", "ghost"}, enemy.Type)
			assert.False(t, enemy.Boss)
		}
	})

	t.Run("late encounters draw from the hard pool", func(t *testing.T) {
		t.Parallel()
		r := testResolver(t, 5)
		for i := 0; i < 50; i++ {
			enemy := r.GenerateEnemy(9, 10)
			assert.Contains(t, []string{"zombie", "demon", "dragon"}, enemy.Type)
		}
	})

	t.Run("stats scale with the encounter index", func(t *testing.T) {
		t.Parallel()
		r := testResolver(t, 5)
		// Encounter 6 of 10 scales by 1 + 5*0.2 = 2.0.
		enemy := r.GenerateEnemy(6, 10)
		spec := enemyCatalog[enemy.Type]
		assert.Equal(t, spec.HP*2, enemy.HP)
		assert.Equal(t, enemy.HP, enemy.MaxHP)
		assert.Equal(t, spec.Damage*2, enemy.Damage)
		assert.Equal(t, spec.Score*2, enemy.ScoreValue)
	})
}

func TestApplyItem(t *testing.T) {
	t.Parallel()

	item := func(t *testing.T, id string) ItemSpec {
		t.Helper()
		spec, ok := ItemByID(id)
		require.True(t, ok)
		return spec
	}

	t.Run("health potion heals", func(t *testing.T) {
		t.Parallel()
		player := domain.NewPlayer(100, 1)
		player.HP = 50
		ApplyItem(item(t, "health_potion"), player, testEnemy(50))
		assert.Equal(t, 80, player.HP)
	})

	t.Run("shield grants shield points", func(t *testing.T) {
		t.Parallel()
		player := domain.NewPlayer(100, 1)
		ApplyItem(item(t, "shield"), player, testEnemy(50))
		assert.Equal(t, 20, player.Shield)
	})

	t.Run("double damage sets a timed boost", func(t *testing.T) {
		t.Parallel()
		player := domain.NewPlayer(100, 1)
		ApplyItem(item(t, "double_damage"), player, testEnemy(50))
		assert.Equal(t, 2.0, player.DamageMultiplier)
		assert.Equal(t, 3, player.DamageBoostTurns)
	})

	t.Run("lucky coin sets a timed score boost", func(t *testing.T) {
		t.Parallel()
		player := domain.NewPlayer(100, 1)
		ApplyItem(item(t, "lucky_coin"), player, testEnemy(50))
		assert.Equal(t, 1.5, player.ScoreMultiplier)
		assert.Equal(t, 5, player.ScoreBoostTurns)
	})

	t.Run("fire bomb damages and can kill", func(t *testing.T) {
		t.Parallel()
		player := domain.NewPlayer(100, 1)

		out := ApplyItem(item(t, "fire_bomb"), player, testEnemy(50))
		assert.Equal(t, 25, out.DamageToEnemy)
		assert.False(t, out.EnemyDefeated)

		out = ApplyItem(item(t, "fire_bomb"), player, testEnemy(20))
		assert.True(t, out.EnemyDefeated)
		assert.Equal(t, 100, out.ScoreGained)
	})
}
