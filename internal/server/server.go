package server

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/trip-keeper/internal/config"
	"github.com/MKhiriev/trip-keeper/internal/handler"
	"github.com/MKhiriev/trip-keeper/internal/logger"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	transports []transport
	logger     *logger.Logger
}

// NewServer opens a transport for every handler with a configured address.
func NewServer(handlers *handler.Handlers, cfg config.Server, log *logger.Logger) (Server, error) {
	s := &server{logger: log}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		s.transports = append(s.transports, newHTTPServer(handlers.HTTP.Init(), cfg, log))
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, log)
		if err != nil {
			return nil, err
		}
		s.transports = append(s.transports, grpcSrv)
	}

	if len(s.transports) == 0 {
		return nil, ErrNoTransports
	}
	return s, nil
}

func (s *server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, t := range s.transports {
		s.logger.Info().Str("transport", t.name()).Str("address", t.address()).Msg("starting transport")
		g.Go(func() error {
			if err := t.serve(); err != nil {
				return fmt.Errorf("%s transport: %w", t.name(), err)
			}
			return nil
		})
	}

	// A failed transport cancels gctx and takes the others down with it.
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, t := range s.transports {
			t.shutdown(shutdownCtx)
		}
		return nil
	})

	err := g.Wait()
	if err != nil {
		s.logger.Error().Err(err).Msg("server stopped with error")
		return err
	}
	s.logger.Info().Msg("server stopped gracefully")
	return nil
}
