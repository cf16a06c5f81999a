package main

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rxddit/rxddit/config"
	"github.com/rxddit/rxddit/embeds"
	"github.com/rxddit/rxddit/handlers"
	"github.com/rxddit/rxddit/reddit"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rxddit_requests_total",
	Help: "Handled requests by route and status code.",
}, []string{"route", "code"})

func main() {
	config.LoadConfig()
	cfg := config.Config

	opts := slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &opts))
	slog.SetDefault(logger)

	httpClient := &http.Client{Timeout: cfg.FetchTimeout}

	client := reddit.NewClient(logger, httpClient, cfg)
	registry := embeds.NewRegistry(httpClient, cfg.UserAgent, cfg.TwitchAncestors)
	compiler := reddit.NewCompiler(logger, client, registry, cfg)

	posts := handlers.NewPostHandler(logger, client, compiler, cfg.CustomDomain)
	videos := handlers.NewVideoHandler(logger, client, cfg.ResolverTimeout)
	oembed := handlers.NewOEmbedHandler()
	share := handlers.NewShareHandler(logger, cfg)

	mux := http.NewServeMux()

	route(mux, "GET /r/{name}/comments/{id}", "subreddit_post", posts.SubredditPost)
	route(mux, "GET /r/{name}/comments/{id}/{slug}", "subreddit_post", posts.SubredditPost)
	route(mux, "GET /r/{name}/comments/{id}/{slug}/{ref}", "subreddit_post", posts.SubredditPost)
	route(mux, "GET /r/{name}/s/{id}", "share", share.ResolveShare)

	route(mux, "GET /user/{name}/comments/{id}", "profile_post", posts.ProfilePost)
	route(mux, "GET /user/{name}/comments/{id}/{slug}", "profile_post", posts.ProfilePost)
	route(mux, "GET /user/{name}/comments/{id}/{slug}/{ref}", "profile_post", posts.ProfilePost)

	route(mux, "GET /comments/{id}", "untyped_post", posts.UntypedPost)
	route(mux, "GET /comments/{id}/{slug}", "untyped_post", posts.UntypedPost)
	route(mux, "GET /comments/{id}/{slug}/{ref}", "untyped_post", posts.UntypedPost)

	route(mux, "GET /{id}", "short_link", posts.ShortLinkPost)
	route(mux, "GET /v/{path...}", "video", videos.GetVideo)
	route(mux, "GET /oembed", "oembed", oembed.GetOEmbed)

	mux.Handle("GET /metrics", promhttp.Handler())

	// Anything unrecognized goes back to reddit with the same path.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://www.reddit.com"+r.URL.RequestURI(), http.StatusFound)
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		os.Exit(0)
	}()

	slog.Info("Starting server", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		slog.Error("failed to start server", "error", err)
	}
}

func route(mux *http.ServeMux, pattern, name string, handler handlers.Handler) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		ts := time.Now()
		res := handler(w, r)
		elapsedMs := time.Since(ts).Milliseconds()

		requestsTotal.WithLabelValues(name, strconv.Itoa(res.Code)).Inc()
		slog.Debug("req",
			"id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"route", name,
			"code", res.Code,
			"elapsed", elapsedMs,
		)

		writeResult(w, r, res)
	})
}

func writeResult(w http.ResponseWriter, r *http.Request, res handlers.Result) {
	contentType := res.ContentType
	if contentType == "" {
		contentType = "text/html; charset=UTF-8"
	}
	w.Header().Set("Content-Type", contentType)

	// Caching happens at the CDN, keyed by URL; the TTL depends on how the
	// request went. Errors must not stick around.
	switch {
	case res.Code >= 200 && res.Code < 300:
		w.Header().Set("Cache-Control", "public, max-age=86400")
	case res.Code == http.StatusNotFound:
		w.Header().Set("Cache-Control", "public, max-age=1")
	case res.Code >= 500:
		w.Header().Set("Cache-Control", "no-store")
	}

	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
	}

	if res.Location != "" {
		w.Header().Set("Location", res.Location)
	}

	w.WriteHeader(res.Code)
	if res.Body != "" {
		if _, err := io.WriteString(w, res.Body); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	}

	if res.Code == http.StatusInternalServerError {
		slog.Error("internal error", "error", res.Error.Error())
	}
}
