package ucsm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
)

// OIDSysLocation is SNMPv2-MIB::sysLocation.0.
const OIDSysLocation = "1.3.6.1.2.1.1.6.0"

// Verifier checks that a provisioned host answers SNMP as configured.
type Verifier interface {
	Verify(ctx context.Context, host, wantLocation string) error
}

// SNMPVerifier reads sysLocation back with the newly created SNMPv3 user.
type SNMPVerifier struct {
	User       string
	Auth       string
	Passphrase string
	UseAES     bool
	Port       uint16
	Timeout    time.Duration
}

// NewSNMPVerifier builds a verifier for the SNMPv3 user described by cfg.
func NewSNMPVerifier(cfg Config, passphrase string) *SNMPVerifier {
	return &SNMPVerifier{
		User:       cfg.SNMPUser,
		Auth:       cfg.Auth,
		Passphrase: passphrase,
		UseAES:     cfg.UseAES,
		Port:       161,
		Timeout:    5 * time.Second,
	}
}

// Verify performs an authPriv GET of sysLocation and compares it to wantLocation.
func (v *SNMPVerifier) Verify(ctx context.Context, host, wantLocation string) error {
	g := v.newGoSNMP(ctx, host)
	if err := g.Connect(); err != nil {
		return fmt.Errorf("snmp connect %s: %w", host, err)
	}
	defer func() { _ = g.Conn.Close() }()

	result, err := g.Get([]string{OIDSysLocation})
	if err != nil {
		return fmt.Errorf("snmp get sysLocation from %s: %w", host, err)
	}
	if len(result.Variables) == 0 {
		return fmt.Errorf("snmp get sysLocation from %s: empty response", host)
	}

	pdu := result.Variables[0]
	if pdu.Type == gosnmp.NoSuchObject || pdu.Type == gosnmp.NoSuchInstance {
		return fmt.Errorf("%s does not expose sysLocation", host)
	}
	got := pduString(pdu)
	if got != wantLocation {
		return fmt.Errorf("%s reports sysLocation %q, want %q", host, got, wantLocation)
	}
	return nil
}

func (v *SNMPVerifier) newGoSNMP(ctx context.Context, host string) *gosnmp.GoSNMP {
	priv := gosnmp.DES
	if v.UseAES {
		priv = gosnmp.AES
	}
	return &gosnmp.GoSNMP{
		Target:        host,
		Port:          v.Port,
		Context:       ctx,
		Timeout:       v.Timeout,
		Retries:       1,
		Version:       gosnmp.Version3,
		SecurityModel: gosnmp.UserSecurityModel,
		MsgFlags:      gosnmp.AuthPriv,
		SecurityParameters: &gosnmp.UsmSecurityParameters{
			UserName:                 v.User,
			AuthenticationProtocol:   mapAuthProtocol(v.Auth),
			AuthenticationPassphrase: v.Passphrase,
			PrivacyProtocol:          priv,
			PrivacyPassphrase:        v.Passphrase,
		},
	}
}

// mapAuthProtocol converts a UCS auth name to the gosnmp constant.
func mapAuthProtocol(s string) gosnmp.SnmpV3AuthProtocol {
	switch strings.ToUpper(s) {
	case "MD5":
		return gosnmp.MD5
	default:
		return gosnmp.SHA
	}
}

func pduString(pdu gosnmp.SnmpPDU) string {
	switch v := pdu.Value.(type) {
	case []byte:
		return string(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
