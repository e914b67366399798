package ucsm

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Credentials holds the two secrets a provisioning run needs.
type Credentials struct {
	Password       string // UCS Manager login password
	SNMPPassphrase string // SNMPv3 auth and privacy passphrase
}

// Provisioner enables SNMP and creates the SNMPv3 user on UCS domains.
type Provisioner struct {
	cfg       Config
	creds     Credentials
	newClient func(host string) *Client
	limiter   *rate.Limiter
	verifier  Verifier
	out       io.Writer
	logger    *zap.Logger
}

// NewProvisioner creates a Provisioner that reports progress to out.
// When cfg.VerifySNMP is set, each host is checked over SNMPv3 after commit.
func NewProvisioner(cfg Config, creds Credentials, out io.Writer, logger *zap.Logger) *Provisioner {
	limit := rate.Inf
	if cfg.HostsPerSecond > 0 {
		limit = rate.Limit(cfg.HostsPerSecond)
	}
	p := &Provisioner{
		cfg:   cfg,
		creds: creds,
		newClient: func(host string) *Client {
			return NewClient(host, cfg)
		},
		limiter: rate.NewLimiter(limit, 1),
		out:     out,
		logger:  logger,
	}
	if cfg.VerifySNMP {
		p.verifier = NewSNMPVerifier(cfg, creds.SNMPPassphrase)
	}
	return p
}

// ManagedObjects returns the objects committed to host: the enabled SNMP
// service carrying the host's location, and the SNMPv3 user.
func (p *Provisioner) ManagedObjects(host string) (string, []ManagedObject, error) {
	location, err := DeriveLocation(host, p.cfg.LocationLabel)
	if err != nil {
		return "", nil, err
	}
	return location, []ManagedObject{
		NewCommSnmp(p.cfg.SysContact, location),
		NewCommSnmpUser(p.cfg.SNMPUser, p.cfg.Auth, p.creds.SNMPPassphrase, p.cfg.UseAES),
	}, nil
}

// Provision configures each host in order and stops at the first failure.
// Hosts already committed are not rolled back.
func (p *Provisioner) Provision(ctx context.Context, hosts []string) error {
	if len(hosts) == 0 {
		p.logger.Info("no target hosts configured, nothing to do")
		return nil
	}
	p.logger.Info("provisioning snmp",
		zap.Int("hosts", len(hosts)),
		zap.Int("location_label", p.cfg.LocationLabel),
	)
	for _, host := range hosts {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := p.ProvisionHost(ctx, host); err != nil {
			return err
		}
	}
	return nil
}

// ProvisionHost logs into host, commits the SNMP objects in one transaction
// and logs out.
func (p *Provisioner) ProvisionHost(ctx context.Context, host string) error {
	location, mos, err := p.ManagedObjects(host)
	if err != nil {
		return err
	}

	client := p.newClient(host)
	err = client.WithSession(ctx, p.cfg.Username, p.creds.Password, func(s *Session) error {
		return s.Commit(ctx, mos...)
	})
	if err != nil {
		return fmt.Errorf("provision %s: %w", host, err)
	}

	p.logger.Info("snmp configured",
		zap.String("host", host),
		zap.String("location", location),
		zap.Int("location_label", p.cfg.LocationLabel),
		zap.String("snmp_user", p.cfg.SNMPUser),
	)
	fmt.Fprintf(p.out, "Host %s: SNMP enabled, location %s, user %s\n", host, location, p.cfg.SNMPUser)

	if p.verifier != nil {
		if verr := p.verifier.Verify(ctx, host, location); verr != nil {
			p.logger.Warn("snmp verification failed", zap.String("host", host), zap.Error(verr))
		} else {
			p.logger.Info("snmp verified", zap.String("host", host))
		}
	}
	return nil
}
