package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/encoding"

	"htmlhead/internal/config"
	"htmlhead/internal/html"
	"htmlhead/internal/templates"
)

var tracer = otel.Tracer("htmlhead/cmd/headtags")

func runServer(cfg *config.Config) error {
	handler, err := newHandler(cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("Serving headtags", "address", cfg.Server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		slog.Info("Shutdown signal received", "signal", sig)
		return gracefulShutdown(server)
	}
}

func gracefulShutdown(svr *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := svr.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown error", "error", err)
		if closeErr := svr.Close(); closeErr != nil {
			slog.Error("Server close error", "error", closeErr)
		}
		return err
	}
	return nil
}

func newHandler(cfg *config.Config) (http.Handler, error) {
	if err := templates.Init(cfg); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	enc, err := html.LookupEncoding(cfg.Document.Encoding)
	if err != nil {
		return nil, err
	}

	ready := &readiness{}
	ready.Add(templatesLoaded)

	mux := http.NewServeMux()
	mux.Handle("/ready", ready)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/{$}", &pageHandler{cfg: cfg, enc: enc})
	return WithMiddleware(mux), nil
}

type pageHandler struct {
	cfg *config.Config
	enc encoding.Encoding
}

func (p *pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "render page", trace.WithAttributes(
		attribute.String("document.doctype", p.cfg.Document.Doctype),
		attribute.String("document.encoding", p.cfg.Document.Encoding),
	))
	defer span.End()

	nonce := newNonce()
	var page bytes.Buffer
	if err := templates.Render(&page, templates.PageData{Title: "headtags", Nonce: nonce}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		slog.ErrorContext(ctx, "page template execute error", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	// Script literals are ASCII, so entity escaping only touches markup text.
	body, err := encoding.HTMLEscapeUnsupported(p.enc.NewEncoder()).Bytes(page.Bytes())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode failed")
		slog.ErrorContext(ctx, "page encode error", "error", err, "encoding", p.cfg.Document.Encoding)
		http.Error(w, "failed to encode page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", p.cfg.Document.ContentType)
	w.Header().Set("Content-Security-Policy", contentSecurityPolicy(nonce))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(body); err != nil {
		slog.ErrorContext(ctx, "failed to write page", "error", err)
	}
}

func newNonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// contentSecurityPolicy allows only scripts carrying nonce, plus whatever they
// load themselves.
func contentSecurityPolicy(nonce string) string {
	return fmt.Sprintf("script-src 'nonce-%s' 'strict-dynamic'; object-src 'none'; base-uri 'none'", nonce)
}
