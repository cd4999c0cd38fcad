// Package service is a small JSON-RPC 2.0 server exposing get_disponibility,
// used to exercise the monitor against something real.
package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/rpcmon/internal/service/middleware"
)

const DefaultName = "DEFAULT"

type Server struct {
	Logger *zap.Logger
	Name   string
	Source Source
	RPM    int
	Burst  int

	// APIKeys, when non-empty, are required on every call.
	APIKeys []string
}

func NewServer(l *zap.Logger, name string, src Source, rpm, burst int) *Server {
	if l == nil {
		l = zap.NewNop()
	}
	if name == "" {
		name = DefaultName
	}
	return &Server{Logger: l, Name: name, Source: src, RPM: rpm, Burst: burst}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(middleware.RequestLog(s.Logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.With(
		middleware.RateLimit(s.RPM, s.Burst),
		middleware.RequireKey(s.APIKeys),
	).Post("/rpc", s.handleRPC)

	return r
}
