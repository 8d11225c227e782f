package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Dosada05/movie-battle/storage"
)

// Config holds every setting of the battle service.
type Config struct {
	ServerPort   int
	MoviesSource string
	RoundSize    int

	DatabaseURL       string
	JWTSecretKey      string
	AdminPasswordHash string

	R2 storage.CloudflareR2UploaderConfig

	SharePageURL       string
	CORSAllowedOrigins []string
	// TrustProxyHeaders takes the client IP from X-Forwarded-For / X-Real-IP. Only safe
	// behind a proxy that overwrites them.
	TrustProxyHeaders bool

	PoolCacheTTL   time.Duration
	BattleIdleTTL  time.Duration
	BattleTokenTTL time.Duration

	VoteRateLimit float64
	VoteRateBurst int
}

// Load reads the configuration from the environment. A .env file is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	roundSize, err := intEnv("ROUND_SIZE", 8)
	if err != nil {
		return nil, err
	}
	if roundSize < 2 {
		return nil, fmt.Errorf("ROUND_SIZE must be at least 2, got %d", roundSize)
	}

	poolTTL, err := durationEnv("POOL_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	idleTTL, err := durationEnv("BATTLE_IDLE_TTL", 2*time.Hour)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := durationEnv("BATTLE_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	rateLimit, err := floatEnv("VOTE_RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	rateBurst, err := intEnv("VOTE_RATE_BURST", 20)
	if err != nil {
		return nil, err
	}
	if rateLimit <= 0 || rateBurst <= 0 {
		return nil, fmt.Errorf("VOTE_RATE_LIMIT and VOTE_RATE_BURST must be positive")
	}

	trustProxy, err := boolEnv("TRUST_PROXY_HEADERS", false)
	if err != nil {
		return nil, err
	}

	r2 := storage.CloudflareR2UploaderConfig{
		AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("R2_BUCKET_NAME"),
		PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	moviesSource := stringEnv("MOVIES_SOURCE", "movies.json")
	if strings.HasPrefix(moviesSource, "r2://") && !r2.Enabled() {
		return nil, fmt.Errorf("MOVIES_SOURCE %q requires the R2_* settings", moviesSource)
	}
	dbURL := os.Getenv("DATABASE_URL")
	if moviesSource == "postgres" && dbURL == "" {
		return nil, fmt.Errorf("MOVIES_SOURCE=postgres requires DATABASE_URL")
	}

	cfg := &Config{
		ServerPort:         port,
		MoviesSource:       moviesSource,
		RoundSize:          roundSize,
		DatabaseURL:        dbURL,
		JWTSecretKey:       jwtKey,
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		R2:                 r2,
		SharePageURL:       os.Getenv("SHARE_PAGE_URL"),
		CORSAllowedOrigins: listEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustProxyHeaders:  trustProxy,
		PoolCacheTTL:       poolTTL,
		BattleIdleTTL:      idleTTL,
		BattleTokenTTL:     tokenTTL,
		VoteRateLimit:      rateLimit,
		VoteRateBurst:      rateBurst,
	}

	return cfg, nil
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return f, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return b, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func listEnv(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
