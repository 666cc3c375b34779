package config

// FeeConfig holds the dispatch fee policy: per-load-type percentages,
// the bounds every effective percentage must stay within, and whether
// management overrides and strict load type checking are enabled.
type FeeConfig struct {
	DefaultPercentage float64            `yaml:"default_percentage"`
	MinPercentage     float64            `yaml:"min_percentage"`
	MaxPercentage     float64            `yaml:"max_percentage"`
	AllowOverrides    bool               `yaml:"allow_overrides"`
	StrictLoadTypes   bool               `yaml:"strict_load_types"`
	LoadTypeRates     map[string]float64 `yaml:"load_type_rates"`

	DetentionFreeTimeHours float64 `yaml:"detention_free_time_hours"`
}

func loadFeeConfig() *FeeConfig {
	return &FeeConfig{
		DefaultPercentage: getEnvAsFloat64("FEE_DEFAULT_PERCENTAGE", 10),
		MinPercentage:     getEnvAsFloat64("FEE_MIN_PERCENTAGE", 5),
		MaxPercentage:     getEnvAsFloat64("FEE_MAX_PERCENTAGE", 15),
		AllowOverrides:    getEnvAsBool("FEE_ALLOW_OVERRIDES", true),
		StrictLoadTypes:   getEnvAsBool("FEE_STRICT_LOAD_TYPES", false),
		LoadTypeRates: map[string]float64{
			"standard":  getEnvAsFloat64("FEE_RATE_STANDARD", 10),
			"expedited": getEnvAsFloat64("FEE_RATE_EXPEDITED", 12),
			"hazmat":    getEnvAsFloat64("FEE_RATE_HAZMAT", 13),
			"oversize":  getEnvAsFloat64("FEE_RATE_OVERSIZE", 12.5),
			"team":      getEnvAsFloat64("FEE_RATE_TEAM", 11),
		},
		DetentionFreeTimeHours: getEnvAsFloat64("DETENTION_FREE_TIME_HOURS", 2),
	}
}
