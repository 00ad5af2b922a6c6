package srs

// Params defines all configurable parameters for the SRS algorithm.
type Params struct {
	// Core ease factor limits
	MinEaseFactor float64
	MaxEaseFactor float64

	// Ease factor adjustments per rating
	AgainEasePenalty float64
	HardEasePenalty  float64
	EasyEaseBonus    float64

	// Learning phase steps, in minutes. A card graduates once it has
	// advanced past the final step.
	LearningStepMinutes []int

	// Graduation intervals, in days
	GraduatingIntervalDays int
	EasyIntervalDays       int

	// Interval growth
	HardIntervalMultiplier float64
	EasyIntervalBonus      float64

	// Fraction of the graduating interval granted when a card graduates
	// via a hard answer (minimum 1 day).
	HardGraduationFactor float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values keep the defaults.
type ParamsConfig struct {
	MinEaseFactor float64
	MaxEaseFactor float64

	AgainEasePenalty float64
	HardEasePenalty  float64
	EasyEaseBonus    float64

	LearningStepMinutes []int

	GraduatingIntervalDays int
	EasyIntervalDays       int

	HardIntervalMultiplier float64
	EasyIntervalBonus      float64
	HardGraduationFactor   float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,
		MaxEaseFactor: 3.5,

		AgainEasePenalty: 0.20,
		HardEasePenalty:  0.15,
		EasyEaseBonus:    0.15,

		// 1 minute, then 10 minutes
		LearningStepMinutes: []int{1, 10},

		GraduatingIntervalDays: 1,
		EasyIntervalDays:       4,

		HardIntervalMultiplier: 1.2,
		EasyIntervalBonus:      1.3,
		HardGraduationFactor:   0.8,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Fields left at their zero value keep the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}

	if config.AgainEasePenalty > 0 {
		params.AgainEasePenalty = config.AgainEasePenalty
	}
	if config.HardEasePenalty > 0 {
		params.HardEasePenalty = config.HardEasePenalty
	}
	if config.EasyEaseBonus > 0 {
		params.EasyEaseBonus = config.EasyEaseBonus
	}

	if len(config.LearningStepMinutes) > 0 {
		params.LearningStepMinutes = config.LearningStepMinutes
	}

	if config.GraduatingIntervalDays > 0 {
		params.GraduatingIntervalDays = config.GraduatingIntervalDays
	}
	if config.EasyIntervalDays > 0 {
		params.EasyIntervalDays = config.EasyIntervalDays
	}

	if config.HardIntervalMultiplier > 0 {
		params.HardIntervalMultiplier = config.HardIntervalMultiplier
	}
	if config.EasyIntervalBonus > 0 {
		params.EasyIntervalBonus = config.EasyIntervalBonus
	}
	if config.HardGraduationFactor > 0 {
		params.HardGraduationFactor = config.HardGraduationFactor
	}

	return params
}
