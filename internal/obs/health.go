package obs

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func grpcServerOpts() []grpc.ServerOption {
	return []grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(grpc_prometheus.UnaryServerInterceptor),
		grpc.ChainStreamInterceptor(grpc_prometheus.StreamServerInterceptor),
	}
}

type ServerConfig struct {
	MetricsAddr    string
	GRPCAddr       string
	HealthInterval time.Duration
}

// Servers bundles the gRPC health service and the HTTP side serving
// /metrics and a gateway-backed /healthz.
type Servers struct {
	log    *zap.Logger
	grpc   *grpc.Server
	health *health.Server
	conn   *grpc.ClientConn
	http   *http.Server

	grpcLis net.Listener
	httpLis net.Listener
}

// BootstrapServers starts both servers and keeps the health status in sync
// with probe until ctx is done.
func BootstrapServers(ctx context.Context, cfg ServerConfig, probe func(context.Context) error, l *zap.Logger) (*Servers, error) {
	if cfg.HealthInterval <= 0 {
		cfg.HealthInterval = 5 * time.Second
	}
	l = l.With(zap.String("component", "obs.servers"))

	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return nil, fmt.Errorf("listen grpc: %w", err)
	}
	gs := grpc.NewServer(grpcServerOpts()...)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	reflection.Register(gs)
	grpc_prometheus.Register(gs)

	go func() {
		l.Info("grpc listening", zap.String("addr", grpcLis.Addr().String()))
		if err := gs.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			l.Error("grpc server error", zap.Error(err))
		}
	}()

	conn, err := grpc.NewClient(loopback(grpcLis.Addr()), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		gs.Stop()
		return nil, fmt.Errorf("dial health: %w", err)
	}

	gw := runtime.NewServeMux(runtime.WithHealthzEndpoint(healthpb.NewHealthClient(conn)))
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", gw)

	httpLis, err := net.Listen("tcp", cfg.MetricsAddr)
	if err != nil {
		_ = conn.Close()
		gs.Stop()
		return nil, fmt.Errorf("listen http: %w", err)
	}
	hsrv := &http.Server{
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	go func() {
		l.Info("metrics listening", zap.String("addr", httpLis.Addr().String()))
		if err := hsrv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("metrics server error", zap.Error(err))
		}
	}()

	s := &Servers{log: l, grpc: gs, health: hs, conn: conn, http: hsrv, grpcLis: grpcLis, httpLis: httpLis}
	s.update(ctx, probe)
	go s.watch(ctx, probe, cfg.HealthInterval)
	return s, nil
}

func (s *Servers) HTTPAddr() string { return s.httpLis.Addr().String() }
func (s *Servers) GRPCAddr() string { return s.grpcLis.Addr().String() }

func (s *Servers) watch(ctx context.Context, probe func(context.Context) error, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.update(ctx, probe)
		}
	}
}

func (s *Servers) update(ctx context.Context, probe func(context.Context) error) {
	st := healthpb.HealthCheckResponse_SERVING
	if probe != nil {
		pctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		err := probe(pctx)
		cancel()
		if err != nil {
			st = healthpb.HealthCheckResponse_NOT_SERVING
			s.log.Warn("health probe failed", zap.Error(err))
		}
	}
	s.health.SetServingStatus("", st)
}

func (s *Servers) Shutdown(ctx context.Context) error {
	s.health.Shutdown()
	err := s.http.Shutdown(ctx)

	stopped := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		s.grpc.Stop()
	}
	_ = s.conn.Close()
	return err
}

// loopback turns a wildcard listen address into one a local client can dial.
func loopback(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}
