package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/config"
	"github.com/MKhiriev/trip-keeper/internal/handler"
	grpchandler "github.com/MKhiriev/trip-keeper/internal/handler/grpc"
	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport блокируется в serve до shutdown или возвращает serveErr.
type fakeTransport struct {
	serveErr  error
	stop      chan struct{}
	shutdowns atomic.Int32
}

func newFakeTransport(serveErr error) *fakeTransport {
	return &fakeTransport{serveErr: serveErr, stop: make(chan struct{})}
}

func (f *fakeTransport) name() string    { return "fake" }
func (f *fakeTransport) address() string { return "fake:0" }

func (f *fakeTransport) serve() error {
	if f.serveErr != nil {
		return f.serveErr
	}
	<-f.stop
	return nil
}

func (f *fakeTransport) shutdown(context.Context) {
	if f.shutdowns.Add(1) == 1 {
		close(f.stop)
	}
}

func runAsync(s *server, ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	return done
}

func TestNewServer_NoTransports(t *testing.T) {
	srv, err := NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())

	assert.Nil(t, srv)
	assert.ErrorIs(t, err, ErrNoTransports)
}

func TestNewServer_GRPCBadAddress(t *testing.T) {
	handlers := &handler.Handlers{GRPC: grpchandler.NewHandler(nil, logger.Nop())}

	_, err := NewServer(handlers, config.Server{GRPCAddress: "256.0.0.1:bad"}, logger.Nop())
	assert.Error(t, err)
}

func TestRun_CancelStopsAllTransports(t *testing.T) {
	a, b := newFakeTransport(nil), newFakeTransport(nil)
	s := &server{transports: []transport{a, b}, logger: logger.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(s, ctx)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, int32(1), a.shutdowns.Load())
	assert.Equal(t, int32(1), b.shutdowns.Load())
}

// Падение одного транспорта останавливает остальные.
func TestRun_FailedTransportStopsOthers(t *testing.T) {
	boom := errors.New("address already in use")
	failing, healthy := newFakeTransport(boom), newFakeTransport(nil)
	s := &server{transports: []transport{failing, healthy}, logger: logger.Nop()}

	select {
	case err := <-runAsync(s, context.Background()):
		assert.ErrorIs(t, err, boom)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after transport failure")
	}
	assert.Equal(t, int32(1), healthy.shutdowns.Load())
}

func TestRun_GRPCListensAndStops(t *testing.T) {
	handlers := &handler.Handlers{GRPC: grpchandler.NewHandler(nil, logger.Nop())}
	srv, err := NewServer(handlers, config.Server{GRPCAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	s := srv.(*server)
	require.Len(t, s.transports, 1)
	assert.NotEqual(t, "127.0.0.1:0", s.transports[0].address(), "порт назначается при создании")

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(s, ctx)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("gRPC server did not stop")
	}
}

func TestHTTPServer_RequestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		assert.ErrorIs(t, r.Context().Err(), context.DeadlineExceeded)
	})

	srv := newHTTPServer(slow, config.Server{HTTPAddress: "127.0.0.1:0", RequestTimeout: 20 * time.Millisecond}, logger.Nop())

	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}
