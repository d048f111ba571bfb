package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"charity-recommender/recommender"
	"charity-recommender/recommender/application"
	"charity-recommender/recommender/domain"
	"charity-recommender/recommender/infra"
)

func main() {
	cfg, err := readConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	catalog, err := infra.LoadCatalog(cfg.catalogPath)
	if err != nil {
		log.Fatalf("catalog error: %v", err)
	}

	codec := infra.NewCursorCodec(cfg.secretKey, cfg.cursorTTL)
	engine := application.Engine{Catalog: catalog}

	handler := &recommender.Handler{
		Recommend:  application.RecommendService{Engine: engine, Codec: codec},
		DailyPicks: application.NewDailyPicks(catalog, cfg.secretKey),
		Version:    detectVersion(),
		Env:        cfg.appEnv,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var store domain.LimiterStore
	switch cfg.rateStrategy {
	case "bucket":
		s := infra.NewBucketStore(float64(cfg.rateLimit)/cfg.rateWindow.Seconds(), cfg.rateLimit)
		s.StartJanitor(ctx)
		store = s
	default:
		s := infra.NewSlidingWindowStore(cfg.rateLimit, cfg.rateWindow)
		s.StartJanitor(ctx)
		store = s
	}

	var statsStore domain.StatsStore
	if cfg.statsEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.statsRedisAddr,
			Password: cfg.statsRedisPassword,
			DB:       cfg.statsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancelPing()
		if err != nil {
			log.Fatalf("redis stats ping error: %v", err)
		}

		statsStore = infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsBucket(cfg.statsBucket),
			infra.WithStatsTrackKeys(cfg.statsTrackKeys),
		)
	}

	limit := recommender.RateLimitMiddleware(recommender.RateLimitOptions{
		Store:               store,
		Stats:               statsStore,
		KeyHeader:           cfg.rateKeyHeader,
		TrustXForwardedFor:  cfg.trustXFF,
		Limit:               cfg.rateLimit,
		Window:              cfg.rateWindow,
		RetryAfter:          cfg.retryAfter,
		AddRateLimitHeaders: cfg.addHeaders,
	})

	mux := http.NewServeMux()
	handler.Routes(mux, limit)

	h := http.Handler(mux)
	h = recommender.ConcurrencyMiddleware(recommender.ConcurrencyOptions{
		Max:            cfg.concurrencyMax,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: cfg.concurrencyTimeout,
	})(h)
	h = recommender.CORSMiddleware(cfg.corsOrigins)(h)
	h = recommender.EnvHeaderMiddleware(cfg.appEnv)(h)

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("api listening on %s env=%s version=%s catalog=%d", cfg.listenAddr, cfg.appEnv, handler.Version, len(catalog))
	log.Printf("rate: strategy=%s limit=%d window=%s keyHeader=%q trustXFF=%v", cfg.rateStrategy, cfg.rateLimit, cfg.rateWindow, cfg.rateKeyHeader, cfg.trustXFF)
	log.Printf("cursor: ttl=%s", cfg.cursorTTL)
	log.Printf("stats: enabled=%v redisAddr=%q bucket=%q ttl=%s trackKeys=%v", cfg.statsEnabled, cfg.statsRedisAddr, cfg.statsBucket, cfg.statsTTL, cfg.statsTrackKeys)
	log.Printf("concurrency: max=%d acquireTimeout=%s", cfg.concurrencyMax, cfg.concurrencyTimeout)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

// detectVersion usa a revisão do VCS gravada no binário; sem build info,
// cai em "dev".
func detectVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "dev"
}

type config struct {
	listenAddr  string
	appEnv      string
	secretKey   string
	catalogPath string
	corsOrigins []string

	cursorTTL time.Duration

	rateStrategy  string
	rateLimit     int
	rateWindow    time.Duration
	rateKeyHeader string
	trustXFF      bool
	retryAfter    time.Duration
	addHeaders    bool

	concurrencyMax     int
	concurrencyTimeout time.Duration

	statsEnabled       bool
	statsRedisAddr     string
	statsRedisPassword string
	statsRedisDB       int
	statsPrefix        string
	statsTTL           time.Duration
	statsBucket        string
	statsTrackKeys     bool
}

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8000")
	cfg.appEnv = getenvDefault("APP_ENV", "development")
	cfg.secretKey = getenvDefault("SECRET_KEY", "dev-secret-key-change-me")
	cfg.catalogPath = os.Getenv("CATALOG_PATH")

	for _, origin := range strings.Split(getenvDefault("CORS_ALLOW_ORIGIN", "http://localhost:4173"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.corsOrigins = append(cfg.corsOrigins, o)
		}
	}

	cfg.cursorTTL = time.Duration(getenvIntDefault("CURSOR_TTL_SECONDS", 600)) * time.Second

	cfg.rateStrategy = getenvDefault("RATE_STRATEGY", "window")
	cfg.rateLimit = getenvIntDefault("RATE_LIMIT_PER_MINUTE", 60)
	cfg.rateWindow = time.Duration(getenvIntDefault("RATE_WINDOW_SECONDS", 60)) * time.Second
	cfg.rateKeyHeader = os.Getenv("RATE_KEY_HEADER")
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)
	cfg.retryAfter = getenvDurationDefault("RETRY_AFTER", 1*time.Second)
	cfg.addHeaders = getenvBoolDefault("ADD_RATELIMIT_HEADERS", false)

	cfg.concurrencyMax = getenvIntDefault("CONCURRENCY_MAX", 100)
	cfg.concurrencyTimeout = getenvDurationDefault("CONCURRENCY_TIMEOUT", 0)

	cfg.statsEnabled = getenvBoolDefault("RATE_STATS_ENABLED", false)
	cfg.statsRedisAddr = getenvDefault("RATE_STATS_REDIS_ADDR", "")
	cfg.statsRedisPassword = os.Getenv("RATE_STATS_REDIS_PASSWORD")
	cfg.statsRedisDB = getenvIntDefault("RATE_STATS_REDIS_DB", 0)
	cfg.statsPrefix = getenvDefault("RATE_STATS_PREFIX", "recommender:stats")
	cfg.statsTTL = getenvDurationDefault("RATE_STATS_TTL", 24*time.Hour)
	cfg.statsBucket = getenvDefault("RATE_STATS_BUCKET", "minute")
	cfg.statsTrackKeys = getenvBoolDefault("RATE_STATS_TRACK_KEYS", false)

	if cfg.rateStrategy != "window" && cfg.rateStrategy != "bucket" {
		return config{}, errors.New("RATE_STRATEGY must be \"window\" or \"bucket\"")
	}
	if cfg.rateLimit <= 0 {
		return config{}, errors.New("RATE_LIMIT_PER_MINUTE must be > 0")
	}
	if cfg.rateWindow <= 0 {
		return config{}, errors.New("RATE_WINDOW_SECONDS must be > 0")
	}
	if cfg.cursorTTL <= 0 {
		return config{}, errors.New("CURSOR_TTL_SECONDS must be > 0")
	}
	if cfg.concurrencyMax < 0 {
		return config{}, errors.New("CONCURRENCY_MAX must be >= 0")
	}
	if cfg.statsEnabled && strings.TrimSpace(cfg.statsRedisAddr) == "" {
		return config{}, errors.New("RATE_STATS_REDIS_ADDR is required when RATE_STATS_ENABLED=true")
	}
	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
