package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"time"
)

// NetAddress is a host:port flag value. The host is optional and must be
// "localhost" or an IP literal.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags reads a StructuredConfig from command-line arguments.
//
//	-a                  HTTP listen address, host:port
//	-grpc-address       gRPC health listen address, host:port
//	-d                  server database DSN
//	-k                  client key store DSN
//	-s                  server address the client connects to
//	-c, -config         JSON config file
//	-request-timeout    inbound and outbound request timeout
//	-poll-interval      subscription poll interval
//	-grace-window       pending stop match window
//	-recent-window      window for suppressing own "added" events
//	-event-ttl          change highlight duration
//	-pending-timeout    drop unconfirmed stops after this long
//	-key-share-interval pending key share retry interval
//
// Token and password secrets are accepted as flags as well, see the -token-*
// and -password-hash-key entries in -help.
func parseFlags(args []string) (*StructuredConfig, error) {
	var cfg StructuredConfig
	var httpAddr, grpcAddr NetAddress
	var requestTimeout time.Duration

	fs := flag.NewFlagSet("trip-keeper", flag.ContinueOnError)

	fs.Var(&httpAddr, "a", "HTTP listen address host:port")
	fs.Var(&grpcAddr, "grpc-address", "gRPC health listen address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.Keys.DSN, "k", "", "Client key store DSN")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "s", "", "Server address used by the client")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias of -c)")

	fs.StringVar(&cfg.App.PasswordHashKey, "password-hash-key", "", "Password hash key")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token lifetime, e.g. 1h")

	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout, e.g. 30s")
	fs.DurationVar(&cfg.Adapter.PollInterval, "poll-interval", 0, "Subscription poll interval")
	fs.DurationVar(&cfg.Sync.GraceWindow, "grace-window", 0, "Pending stop match window")
	fs.DurationVar(&cfg.Sync.RecentWindow, "recent-window", 0, "Own added-event suppression window")
	fs.DurationVar(&cfg.Sync.EventTTL, "event-ttl", 0, "Change highlight duration")
	fs.DurationVar(&cfg.Sync.PendingTimeout, "pending-timeout", 0, "Drop unconfirmed stops after this duration")
	fs.DurationVar(&cfg.Sync.KeyShareInterval, "key-share-interval", 0, "Pending key share retry interval")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg.Server.HTTPAddress = httpAddr.String()
	cfg.Server.GRPCAddress = grpcAddr.String()
	cfg.Server.RequestTimeout = requestTimeout
	cfg.Adapter.RequestTimeout = requestTimeout

	return &cfg, nil
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("address %q: %w", s, err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("port %q: %w", rawPort, err)
	}
	if port < 1 || port > 65535 {
		return errors.New("port must be in 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("host %q is neither localhost nor an IP address", host)
	}

	a.Host, a.Port = host, port
	return nil
}
