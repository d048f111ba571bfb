package recommender

import (
	"net/http"
	"time"

	"charity-recommender/recommender/application"
	"charity-recommender/recommender/domain"
)

type RateLimitOptions struct {
	Store               domain.LimiterStore
	Stats               domain.StatsStore
	KeyFn               KeyFunc
	KeyHeader           string
	TrustXForwardedFor  bool
	Limit               int
	Window              time.Duration
	RetryAfter          time.Duration
	AddRateLimitHeaders bool
}

// RateLimitMiddleware aplica o rate limit por cliente nas rotas que o
// recebem. Bloqueio responde 429 com a política no corpo, para o cliente
// saber quanto esperar.
func RateLimitMiddleware(opts RateLimitOptions) func(next http.Handler) http.Handler {
	if opts.RetryAfter == 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.KeyHeader, opts.TrustXForwardedFor)
	}

	svc := application.Service{
		Store:      opts.Store,
		Limit:      opts.Limit,
		Window:     opts.Window,
		RetryAfter: opts.RetryAfter,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)

			if opts.AddRateLimitHeaders {
				w.Header().Set("X-RateLimit-Key", key)
				w.Header().Set("X-RateLimit-Limit", formatInt(opts.Limit))
				w.Header().Set("X-RateLimit-Window", formatInt(int(opts.Window.Seconds()))+"s")
			}

			dec := svc.Decide(domain.Key(key))
			if opts.Stats != nil {
				_ = opts.Stats.Record(r.Context(), domain.StatsEvent{
					Key:     domain.Key(key),
					Allowed: dec.Allowed,
					Method:  r.Method,
					Path:    r.URL.Path,
					At:      time.Now(),
				})
			}
			if !dec.Allowed {
				w.Header().Set("Retry-After", formatInt(int(dec.RetryAfter.Seconds())))
				writeJSON(w, http.StatusTooManyRequests, map[string]any{
					"message":        "Too many requests, please slow down.",
					"limit":          dec.Limit,
					"window_seconds": int(dec.Window.Seconds()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware libera as origens configuradas para GET/POST com
// Content-Type. Lista vazia libera qualquer origem.
func CORSMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if allowAll {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else if allowed[origin] {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				}
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// EnvHeaderMiddleware marca toda resposta com o ambiente da aplicação.
func EnvHeaderMiddleware(env string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-App-Env", env)
			next.ServeHTTP(w, r)
		})
	}
}
