// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func buildRouter() *chi.Mux {
	router := chi.NewRouter()
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

	router.Get("/api/version", ok)
	router.Get("/api/docs/*", ok)
	router.Put("/api/docs/*", ok)
	router.Post("/api/batch", ok)

	router.MethodNotAllowed(methodNotAllowed(router))
	return router
}

func TestMethodNotAllowed(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name      string
		method    string
		path      string
		wantCode  int
		wantAllow string
	}{
		{name: "registered static route", method: http.MethodGet, path: "/api/version", wantCode: http.StatusOK},
		{name: "registered wildcard route", method: http.MethodPut, path: "/api/docs/trips/t1", wantCode: http.StatusOK},
		{name: "wrong method on static route", method: http.MethodDelete, path: "/api/version", wantCode: http.StatusMethodNotAllowed, wantAllow: "GET"},
		{name: "wrong method on wildcard route", method: http.MethodPost, path: "/api/docs/trips/t1", wantCode: http.StatusMethodNotAllowed, wantAllow: "GET, PUT"},
		{name: "GET on POST-only route", method: http.MethodGet, path: "/api/batch", wantCode: http.StatusMethodNotAllowed, wantAllow: "POST"},
		{name: "unknown route", method: http.MethodGet, path: "/api/unknown", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Allow"))
		})
	}
}
