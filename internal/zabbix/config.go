package zabbix

import "time"

// Config holds the Zabbix integration configuration.
type Config struct {
	URL         string          `mapstructure:"url"`          // frontend base URL (e.g., "http://zabbix.example.net/zabbix")
	Username    string          `mapstructure:"username"`     // API service account
	SecretID    string          `mapstructure:"secret_id"`    // secrets store key holding the account password
	Timeout     time.Duration   `mapstructure:"timeout"`      // HTTP client timeout (default: 30s)
	LegacyLogin bool            `mapstructure:"legacy_login"` // send "user" instead of "username" to user.login (Zabbix <= 5.2)
	Interface   InterfaceConfig `mapstructure:"interface"`
	GroupIDs    []string        `mapstructure:"group_ids"`    // host groups new hosts join
	TemplateIDs []string        `mapstructure:"template_ids"` // templates linked to new hosts
}

// InterfaceConfig describes the SNMP interface created with each host.
type InterfaceConfig struct {
	Port  string `mapstructure:"port"`
	Bulk  bool   `mapstructure:"bulk"`
	UseIP bool   `mapstructure:"use_ip"` // connect by IP instead of DNS name
}

// DefaultConfig returns a Config with sensible defaults.
// Group 15 is the UCS host group; the templates are Module Interfaces Simple
// SNMPv3, UCS SNMPv3 Vethernet interfaces and Module Interfaces Error SNMPv3.
func DefaultConfig() Config {
	return Config{
		URL:         "http://librenms.bm.compute.strln.net/zabbix",
		Username:    "zabbix_admin",
		SecretID:    "service_creds/zabbix_admin",
		Timeout:     30 * time.Second,
		LegacyLogin: true,
		Interface: InterfaceConfig{
			Port: "161",
			Bulk: true,
		},
		GroupIDs:    []string{"15"},
		TemplateIDs: []string{"10278", "10280", "10389"},
	}
}
