package zabbix

import (
	"context"
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"
)

// HostAPI is the part of a Session the registrar needs.
type HostAPI interface {
	HostNames(ctx context.Context) ([]string, error)
	CreateHost(ctx context.Context, req HostCreateRequest) (string, error)
}

// Compile-time interface guard.
var _ HostAPI = (*Session)(nil)

// Outcome reports what Register did.
type Outcome int

const (
	OutcomeExists Outcome = iota + 1
	OutcomeAdded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExists:
		return "exists"
	case OutcomeAdded:
		return "added"
	default:
		return "unknown"
	}
}

// Registrar ensures hosts exist in Zabbix.
type Registrar struct {
	api    HostAPI
	cfg    Config
	out    io.Writer
	logger *zap.Logger
}

// NewRegistrar creates a Registrar that prints its results to out.
func NewRegistrar(api HostAPI, cfg Config, out io.Writer, logger *zap.Logger) *Registrar {
	return &Registrar{api: api, cfg: cfg, out: out, logger: logger}
}

// Register creates host unless a host with the same name already exists.
// Existing hosts are left untouched.
func (r *Registrar) Register(ctx context.Context, host string) (Outcome, error) {
	names, err := r.api.HostNames(ctx)
	if err != nil {
		return 0, err
	}

	if slices.Contains(names, host) {
		r.logger.Info("host already registered", zap.String("host", host))
		fmt.Fprintf(r.out, "Host %s exists\n", host)
		return OutcomeExists, nil
	}

	id, err := r.api.CreateHost(ctx, r.HostRequest(host))
	if err != nil {
		return 0, err
	}
	r.logger.Info("host registered",
		zap.String("host", host),
		zap.String("hostid", id),
		zap.Strings("groups", r.cfg.GroupIDs),
		zap.Strings("templates", r.cfg.TemplateIDs),
	)
	fmt.Fprintf(r.out, "Host %s is added\n", host)
	return OutcomeAdded, nil
}

// HostRequest builds the host.create parameters for host: enabled, one SNMP
// interface addressed by DNS name, plus the configured groups and templates.
func (r *Registrar) HostRequest(host string) HostCreateRequest {
	iface := HostInterface{
		Type:  InterfaceSNMP,
		Main:  1,
		UseIP: boolInt(r.cfg.Interface.UseIP),
		DNS:   host,
		Port:  r.cfg.Interface.Port,
		Bulk:  boolInt(r.cfg.Interface.Bulk),
	}

	groups := make([]GroupRef, 0, len(r.cfg.GroupIDs))
	for _, id := range r.cfg.GroupIDs {
		groups = append(groups, GroupRef{GroupID: id})
	}
	templates := make([]TemplateRef, 0, len(r.cfg.TemplateIDs))
	for _, id := range r.cfg.TemplateIDs {
		templates = append(templates, TemplateRef{TemplateID: id})
	}

	return HostCreateRequest{
		Host:       host,
		Name:       host,
		Status:     HostMonitored,
		Interfaces: []HostInterface{iface},
		Groups:     groups,
		Templates:  templates,
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
