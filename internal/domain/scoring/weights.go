// Package scoring ranks candidate assets against a consist entry. It
// carries the tunable weight table and the name/token ranking used by
// every resolution phase.
package scoring

// Weights is the scoring weight table. All values are overridable
// through configuration.
type Weights struct {
	// Basic scoring
	NormExactBonus    int `koanf:"norm_exact_bonus"`
	JaccardMultiplier int `koanf:"jaccard_multiplier"`

	// Engine scoring
	EngineSeriesMatch    int `koanf:"engine_series_match"`
	EngineSeriesMismatch int `koanf:"engine_series_mismatch"`
	EngineClassMatch     int `koanf:"engine_class_match"`
	EngineClassMismatch  int `koanf:"engine_class_mismatch"`
	EngineFamilyMatch    int `koanf:"engine_family_match"`
	EngineFamilyMismatch int `koanf:"engine_family_mismatch"`
	TractionMatch        int `koanf:"traction_match"`
	TractionMismatch     int `koanf:"traction_mismatch"`

	// Coach and wagon scoring
	CoachTypeMatch      int `koanf:"coach_type_match"`
	CoachTypeMismatch   int `koanf:"coach_type_mismatch"`
	FreightTypeMatch    int `koanf:"freight_type_match"`
	FreightTypeMismatch int `koanf:"freight_type_mismatch"`
	CarbodyMatch        int `koanf:"carbody_match"`
	CarbodyMismatch     int `koanf:"carbody_mismatch"`
	SetTypeMatch        int `koanf:"set_type_match"`

	// Penalties and bonuses
	PassengerFreightMismatch int `koanf:"passenger_freight_mismatch"`
	UnitTypeMismatch         int `koanf:"unit_type_mismatch"`
	DefaultPenalty           int `koanf:"default_penalty"`
	NonDefaultBonus          int `koanf:"non_default_bonus"`

	// Token matching bonuses
	KeyTokenAllBonus     int `koanf:"key_token_all_bonus"`
	KeyTokenPartialBonus int `koanf:"key_token_partial_bonus"`
	IRCompositeBonus     int `koanf:"ir_composite_bonus"`
	DigitNearBonus       int `koanf:"digit_near_bonus"`

	// Geographic and technical matching
	RegionMatch          int `koanf:"region_match"`
	DepotMatch           int `koanf:"depot_match"`
	TechSpecMatch        int `koanf:"tech_spec_match"`
	ManufacturerMatch    int `koanf:"manufacturer_match"`
	RegionMismatch       int `koanf:"region_mismatch"`
	DepotMismatch        int `koanf:"depot_mismatch"`
	TechSpecMismatch     int `koanf:"tech_spec_mismatch"`
	ManufacturerMismatch int `koanf:"manufacturer_mismatch"`

	// Thresholds
	MinTokenScore            int     `koanf:"min_token_score"`
	PartialCoverageThreshold float64 `koanf:"partial_coverage_threshold"`
	NearDigitMaxDiff         int     `koanf:"near_digit_max_diff"`
}

// DefaultWeights returns the built-in weight table.
func DefaultWeights() Weights {
	return Weights{
		NormExactBonus:    60,
		JaccardMultiplier: 100,

		EngineSeriesMatch:    140,
		EngineSeriesMismatch: -80,
		EngineClassMatch:     90,
		EngineClassMismatch:  -70,
		EngineFamilyMatch:    50,
		EngineFamilyMismatch: -25,
		TractionMatch:        40,
		TractionMismatch:     -150,

		CoachTypeMatch:      120,
		CoachTypeMismatch:   -200,
		FreightTypeMatch:    110,
		FreightTypeMismatch: -55,
		CarbodyMatch:        70,
		CarbodyMismatch:     -40,
		SetTypeMatch:        50,

		PassengerFreightMismatch: -800,
		UnitTypeMismatch:         -150,
		DefaultPenalty:           -100,
		NonDefaultBonus:          50,

		KeyTokenAllBonus:     60,
		KeyTokenPartialBonus: 45,
		IRCompositeBonus:     180,
		DigitNearBonus:       120,

		RegionMatch:          40,
		DepotMatch:           35,
		TechSpecMatch:        50,
		ManufacturerMatch:    65,
		RegionMismatch:       -15,
		DepotMismatch:        -10,
		TechSpecMismatch:     -20,
		ManufacturerMismatch: -25,

		MinTokenScore:            150,
		PartialCoverageThreshold: 0.6,
		NearDigitMaxDiff:         5,
	}
}
