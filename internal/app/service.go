package app

import (
	"context"
	"log"
	"time"

	"commerce-service/internal/config"
	"commerce-service/internal/http"
	"commerce-service/internal/repository/postgres"

	"github.com/redis/go-redis/v9"
)

const serverAddrPrefix = ":"

// Service owns the process-level resources: the database pool, the Redis
// client, and the HTTP server.
type Service struct {
	config *config.Config
	db     *postgres.DB
	redis  *redis.Client
	server *http.Server
}

// Start runs the HTTP server. It blocks until the server stops.
func (s *Service) Start() error {
	log.Printf("Starting HTTP server on port %s", s.config.Server.Port)
	return s.server.Start(serverAddrPrefix + s.config.Server.Port)
}

// ShutdownTimeout reports the configured graceful shutdown window.
func (s *Service) ShutdownTimeout() time.Duration {
	return s.config.Server.ShutdownTimeout
}

// Shutdown stops the HTTP server gracefully and releases connections.
func (s *Service) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)

	s.db.Close()
	if closeErr := s.redis.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}
