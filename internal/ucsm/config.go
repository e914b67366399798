package ucsm

import "time"

// Config holds the UCS Manager SNMP provisioning configuration.
type Config struct {
	Hosts              []string      `mapstructure:"hosts"`                // UCS Manager domains to configure
	Username           string        `mapstructure:"username"`             // local UCS Manager account
	UserSecretID       string        `mapstructure:"user_secret_id"`       // secrets store key for the account password
	SNMPSecretID       string        `mapstructure:"snmp_secret_id"`       // secrets store key for the SNMPv3 passphrase
	SysContact         string        `mapstructure:"sys_contact"`          // sysContact advertised over SNMP
	LocationLabel      int           `mapstructure:"location_label"`       // hostname label used as sysLocation (negative counts from the end)
	SNMPUser           string        `mapstructure:"snmp_user"`            // SNMPv3 user to create
	Auth               string        `mapstructure:"auth"`                 // SNMPv3 auth protocol: "sha" or "md5"
	UseAES             bool          `mapstructure:"use_aes"`              // AES-128 privacy instead of DES
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"` // accept self-signed controller certificates
	Timeout            time.Duration `mapstructure:"timeout"`              // HTTP client timeout (default: 60s)
	HostsPerSecond     float64       `mapstructure:"hosts_per_second"`     // pacing between domains (0 = unlimited)
	VerifySNMP         bool          `mapstructure:"verify_snmp"`          // read sysLocation back over SNMPv3 after commit
}

// DefaultConfig returns a Config with sensible defaults.
// Hosts is empty, meaning nothing is provisioned until configured.
func DefaultConfig() Config {
	return Config{
		Username:           "rdeviate",
		UserSecretID:       "ucs/users/rdeviate",
		SNMPSecretID:       "service_creds/ucs_snmpv3_cred",
		SysContact:         "cie-eng.compute-services@cisco.com",
		LocationLabel:      2,
		SNMPUser:           "cs-snmp",
		Auth:               "sha",
		UseAES:             true,
		InsecureSkipVerify: true,
		Timeout:            60 * time.Second,
		HostsPerSecond:     1,
	}
}
