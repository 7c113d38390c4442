package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// MatchingConfig holds the matching engine policy values. The weights and
// thresholds are tuned empirically per deployment; the algorithm itself
// never hard-codes them.
type MatchingConfig struct {
	AutoThreshold   decimal.Decimal // confidence needed for auto-confirm
	SuggestFloor    decimal.Decimal // minimum confidence to surface a suggestion
	AmountTolerance decimal.Decimal // absolute band around the transfer amount
	TimeWindow      time.Duration   // how far back a payment may predate the transfer

	WeightAmountExact     decimal.Decimal
	WeightAmountTolerance decimal.Decimal
	WeightReference       decimal.Decimal
	WeightTemporal        decimal.Decimal
	UniquenessBoost       decimal.Decimal
	AmbiguityPenalty      decimal.Decimal
	AmbiguityDelta        decimal.Decimal // top-two gap that counts as a tie
}

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	DBMaxConns        int32
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Rate limiting ("<limit>-<period>", e.g. "100-M"). RedisURL switches the
	// limiter store from in-memory to redis when set.
	RateLimit string
	RedisURL  string

	Matching MatchingConfig
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PGSQL_MAX_CONNS", 0)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "tillpoint-backend")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("REDIS_URL", "")

	viper.SetDefault("MATCH_AUTO_THRESHOLD", "0.90")
	viper.SetDefault("MATCH_SUGGEST_FLOOR", "0.50")
	viper.SetDefault("MATCH_AMOUNT_TOLERANCE", "0.05")
	viper.SetDefault("MATCH_TIME_WINDOW", "72h")
	viper.SetDefault("MATCH_WEIGHT_AMOUNT_EXACT", "0.55")
	viper.SetDefault("MATCH_WEIGHT_AMOUNT_TOLERANCE", "0.30")
	viper.SetDefault("MATCH_WEIGHT_REFERENCE", "0.35")
	viper.SetDefault("MATCH_WEIGHT_TEMPORAL", "0.20")
	viper.SetDefault("MATCH_UNIQUENESS_BOOST", "0.10")
	viper.SetDefault("MATCH_AMBIGUITY_PENALTY", "0.10")
	viper.SetDefault("MATCH_AMBIGUITY_DELTA", "0.10")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.DBMaxConns = viper.GetInt32("PGSQL_MAX_CONNS")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.RedisURL = viper.GetString("REDIS_URL")

	cfg.Matching = MatchingConfig{
		AutoThreshold:         mustDecimal("MATCH_AUTO_THRESHOLD"),
		SuggestFloor:          mustDecimal("MATCH_SUGGEST_FLOOR"),
		AmountTolerance:       mustDecimal("MATCH_AMOUNT_TOLERANCE"),
		TimeWindow:            mustDuration("MATCH_TIME_WINDOW", 72*time.Hour),
		WeightAmountExact:     mustDecimal("MATCH_WEIGHT_AMOUNT_EXACT"),
		WeightAmountTolerance: mustDecimal("MATCH_WEIGHT_AMOUNT_TOLERANCE"),
		WeightReference:       mustDecimal("MATCH_WEIGHT_REFERENCE"),
		WeightTemporal:        mustDecimal("MATCH_WEIGHT_TEMPORAL"),
		UniquenessBoost:       mustDecimal("MATCH_UNIQUENESS_BOOST"),
		AmbiguityPenalty:      mustDecimal("MATCH_AMBIGUITY_PENALTY"),
		AmbiguityDelta:        mustDecimal("MATCH_AMBIGUITY_DELTA"),
	}

	return cfg, nil
}

// DefaultMatchingConfig returns the built-in matching policy, used by tests
// and callers that do not load the full environment config.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		AutoThreshold:         decimal.RequireFromString("0.90"),
		SuggestFloor:          decimal.RequireFromString("0.50"),
		AmountTolerance:       decimal.RequireFromString("0.05"),
		TimeWindow:            72 * time.Hour,
		WeightAmountExact:     decimal.RequireFromString("0.55"),
		WeightAmountTolerance: decimal.RequireFromString("0.30"),
		WeightReference:       decimal.RequireFromString("0.35"),
		WeightTemporal:        decimal.RequireFromString("0.20"),
		UniquenessBoost:       decimal.RequireFromString("0.10"),
		AmbiguityPenalty:      decimal.RequireFromString("0.10"),
		AmbiguityDelta:        decimal.RequireFromString("0.10"),
	}
}

func mustDecimal(key string) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Warning: Invalid decimal for %s ('%s'). Defaulting to 0.\n", key, raw)
		return decimal.Zero
	}
	return d
}

func mustDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}
