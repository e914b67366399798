// Package probe checks whether a host answers ICMP echo requests.
package probe

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"go.uber.org/zap"
)

// Config holds the reachability probe settings.
type Config struct {
	Count      int           `mapstructure:"count"`      // echo requests per probe (default: 3)
	Timeout    time.Duration `mapstructure:"timeout"`    // overall probe deadline (default: 5s)
	Privileged bool          `mapstructure:"privileged"` // raw ICMP sockets instead of UDP pings
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Count:   3,
		Timeout: 5 * time.Second,
	}
}

// Result holds the outcome of probing a single host.
type Result struct {
	Host     string
	Alive    bool
	Sent     int
	Received int
	AvgRTT   time.Duration
	Err      error // resolution or socket failure, if any
}

// Prober pings hosts using pro-bing.
type Prober struct {
	cfg    Config
	logger *zap.Logger
}

// New creates a Prober.
func New(cfg Config, logger *zap.Logger) *Prober {
	if cfg.Count <= 0 {
		cfg.Count = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Prober{cfg: cfg, logger: logger}
}

// Reachable sends cfg.Count echo requests to host. A host that cannot be
// resolved or pinged is reported as not alive with Err set; the returned error
// is only non-nil when ctx is done.
func (p *Prober) Reachable(ctx context.Context, host string) (Result, error) {
	res := Result{Host: host}

	pinger, err := probing.NewPinger(host)
	if err != nil {
		res.Err = fmt.Errorf("resolve %s: %w", host, err)
		p.logger.Debug("failed to create pinger", zap.String("host", host), zap.Error(err))
		return res, nil
	}

	pinger.Count = p.cfg.Count
	pinger.Timeout = p.cfg.Timeout
	pinger.SetPrivileged(p.cfg.Privileged)

	done := make(chan error, 1)
	go func() {
		done <- pinger.Run()
	}()

	select {
	case runErr := <-done:
		if runErr != nil {
			res.Err = fmt.Errorf("ping %s: %w", host, runErr)
			p.logger.Debug("ping failed", zap.String("host", host), zap.Error(runErr))
		}
	case <-ctx.Done():
		pinger.Stop()
		<-done
		return res, ctx.Err()
	}

	stats := pinger.Statistics()
	res.Sent = stats.PacketsSent
	res.Received = stats.PacketsRecv
	res.AvgRTT = stats.AvgRtt
	res.Alive = stats.PacketsRecv > 0

	p.logger.Debug("probe finished",
		zap.String("host", host),
		zap.Bool("alive", res.Alive),
		zap.Int("sent", res.Sent),
		zap.Int("received", res.Received),
		zap.Duration("avg_rtt", res.AvgRTT),
	)
	return res, nil
}
