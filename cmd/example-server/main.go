package main

import (
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gatekit/admission/pkg/limiter"
)

const requestIDHeader = "X-Request-ID"

// requestID tags every response with an ID, generating one when the caller
// did not supply it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// 5 req/sec steady with bursts up to 10, per client IP.
	l, err := limiter.New(limiter.Config{
		Kind:                limiter.TokenBucket,
		Capacity:            10,
		RefillRatePerSecond: 5,
	},
		limiter.WithLogger(logger),
		limiter.WithIdleEviction(15*time.Minute, time.Minute),
	)
	if err != nil {
		logger.Fatal("build limiter", zap.Error(err))
	}
	defer l.Close()

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(l.Middleware(clientIP))
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Pong!\n"))
	})

	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}
