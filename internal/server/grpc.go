package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/trip-keeper/internal/config"
	grpchandler "github.com/MKhiriev/trip-keeper/internal/handler/grpc"
	"github.com/MKhiriev/trip-keeper/internal/logger"
)

type grpcServer struct {
	handler  *grpchandler.Handler
	server   *grpc.Server
	listener net.Listener
	logger   *logger.Logger
}

// newGRPCServer listens right away so that a busy port fails at startup.
func newGRPCServer(handler *grpchandler.Handler, cfg config.Server, log *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("listen gRPC on %s: %w", cfg.GRPCAddress, err)
	}

	server := grpc.NewServer(grpc.UnaryInterceptor(handler.UnaryLogging))
	handler.Register(server)

	return &grpcServer{
		handler:  handler,
		server:   server,
		listener: listener,
		logger:   log,
	}, nil
}

func (g *grpcServer) name() string    { return "grpc" }
func (g *grpcServer) address() string { return g.listener.Addr().String() }

func (g *grpcServer) serve() error {
	if err := g.server.Serve(g.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// shutdown flips health to NOT_SERVING first so that probes stop routing
// traffic, then drains the calls in flight. A drain that outlives ctx is
// cut short.
func (g *grpcServer) shutdown(ctx context.Context) {
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		g.logger.Warn().Msg("grpc graceful stop timed out")
		g.server.Stop()
	}
}
