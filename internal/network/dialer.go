// File: internal/network/dialer.go
package network

import (
	"context"
	"fmt"
	"net"
	"time"
)

// DialerConfig holds configuration for the low-level TCP dialer.
type DialerConfig struct {
	Timeout   time.Duration
	KeepAlive time.Duration
	// NoDelay controls TCP_NODELAY.
	NoDelay bool
	// FallbackDelay tunes Happy Eyeballs (RFC 8305) IPv4/IPv6 fallback.
	FallbackDelay time.Duration
	// Resolver allows specifying custom DNS resolution logic.
	Resolver *net.Resolver
}

// NewDialerConfig creates a default configuration tuned for long bulk
// transfers rather than many short probes.
func NewDialerConfig() *DialerConfig {
	return &DialerConfig{
		Timeout:       DefaultDialTimeout,
		KeepAlive:     DefaultKeepAliveInterval,
		NoDelay:       false,
		FallbackDelay: 300 * time.Millisecond,
		Resolver:      net.DefaultResolver,
	}
}

// Clone returns a copy of the DialerConfig. net.Resolver is synchronized and
// safe to share, so a shallow copy suffices.
func (c *DialerConfig) Clone() *DialerConfig {
	if c == nil {
		return NewDialerConfig()
	}
	clone := *c
	return &clone
}

// DialTCPContext establishes a TCP connection with the configured options.
// Suitable for http.Transport.DialContext.
func DialTCPContext(ctx context.Context, network, address string, config *DialerConfig) (net.Conn, error) {
	if config == nil {
		config = NewDialerConfig()
	}

	dialer := &net.Dialer{
		Timeout:       config.Timeout,
		KeepAlive:     config.KeepAlive,
		FallbackDelay: config.FallbackDelay,
		Resolver:      config.Resolver,
	}

	rawConn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("tcp dial failed: %w", err)
	}

	if tcpConn, ok := rawConn.(*net.TCPConn); ok {
		if err := configureTCP(tcpConn, config); err != nil {
			_ = tcpConn.Close()
			return nil, err
		}
	}
	return rawConn, nil
}

// configureTCP applies TCP specific settings.
func configureTCP(conn *net.TCPConn, config *DialerConfig) error {
	// Keep-alive failures are not fatal; some stacks reject the option.
	_ = conn.SetKeepAlive(true)
	if config.KeepAlive > 0 {
		_ = conn.SetKeepAlivePeriod(config.KeepAlive)
	}

	if err := conn.SetNoDelay(config.NoDelay); err != nil {
		return fmt.Errorf("failed to set TCP NoDelay: %w", err)
	}
	return nil
}
