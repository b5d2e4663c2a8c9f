package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"htmlhead/internal/templates"
)

type readiness struct {
	checks []func(context.Context) error
}

func (r *readiness) Add(check ...func(context.Context) error) {
	r.checks = append(r.checks, check...)
}

func (r *readiness) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	for _, check := range r.checks {
		if err := check(req.Context()); err != nil {
			http.Error(w, "not ready: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
	}
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.ErrorContext(req.Context(), "failed to write readiness response", "error", err)
	}
}

func templatesLoaded(context.Context) error {
	if templates.Page == nil {
		return errors.New("page template not loaded")
	}
	return nil
}
