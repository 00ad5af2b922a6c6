package combat

// EnemySpec describes a base enemy type before encounter scaling.
type EnemySpec struct {
	Type       string
	Name       string
	HP         int
	Damage     int
	Score      int
	Difficulty int
	Boss       bool
}

// enemyCatalog holds the regular enemy types keyed by type tag.
var enemyCatalog = map[string]EnemySpec{
	"slime":    {Type: "slime", Name: "Slime", HP: 30, Damage: 10, Score: 100, Difficulty: 1},
	"skeleton": {Type: "skeleton", Name: "Skeleton", HP: 50, Damage: 15, Score: 200, Difficulty: 2},
	"ghost":    {Type: "ghost", Name: "Ghost", HP: 40, Damage: 20, Score: 250, Difficulty: 2},
	"zombie":   {Type: "zombie", Name: "Zombie", HP: 70, Damage: 18, Score: 300, Difficulty: 3},
	"demon":    {Type: "demon", Name: "Demon", HP: 90, Damage: 25, Score: 400, Difficulty: 4},
	"dragon":   {Type: "dragon", Name: "Dragon", HP: 120, Damage: 30, Score: 500, Difficulty: 5},
}

// bossCatalog holds the boss types for the final encounter.
var bossCatalog = []EnemySpec{
	{Type: "demon_lord", Name: "Demon Lord", HP: 150, Damage: 35, Score: 1000, Difficulty: 5, Boss: true},
	{Type: "ancient_dragon", Name: "Ancient Dragon", HP: 180, Damage: 40, Score: 1200, Difficulty: 5, Boss: true},
}

// Tiered pools selected by progress through the run. Early encounters draw
// from the easiest pool, late encounters from the hardest.
var (
	earlyPool = []string{"slime", "skeleton", "ghost"}
	midPool   = []string{"skeleton", "ghost", "zombie"}
	latePool  = []string{"zombie", "demon", "dragon"}
)

// Progress thresholds for pool selection.
const (
	earlyPoolThreshold = 0.3
	midPoolThreshold   = 0.7
)
