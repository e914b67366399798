// Package config loads the shared opskit configuration from defaults, an
// optional YAML file, a .env file and OPSKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvConfigPath names the environment variable holding an explicit config file path.
const EnvConfigPath = "OPSKIT_CONFIG"

// SetDefaults registers the default value of each setting. fabric.chassis has
// no viper default; fabric.DefaultConfig supplies it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("secrets.backend", "aws")
	v.SetDefault("secrets.aws.profile", "strln")
	v.SetDefault("secrets.aws.region", "eu-central-1")
	v.SetDefault("secrets.vault.address", "")
	v.SetDefault("secrets.vault.token", "")
	v.SetDefault("secrets.vault.mount", "secret")

	v.SetDefault("probe.count", 3)
	v.SetDefault("probe.timeout", "5s")
	v.SetDefault("probe.privileged", false)

	v.SetDefault("zabbix.url", "http://librenms.bm.compute.strln.net/zabbix")
	v.SetDefault("zabbix.username", "zabbix_admin")
	v.SetDefault("zabbix.secret_id", "service_creds/zabbix_admin")
	v.SetDefault("zabbix.timeout", "30s")
	v.SetDefault("zabbix.legacy_login", true)
	v.SetDefault("zabbix.interface.port", "161")
	v.SetDefault("zabbix.interface.bulk", true)
	v.SetDefault("zabbix.interface.use_ip", false)
	v.SetDefault("zabbix.group_ids", []string{"15"})
	v.SetDefault("zabbix.template_ids", []string{"10278", "10280", "10389"})

	v.SetDefault("ucs.hosts", []string{})
	v.SetDefault("ucs.username", "rdeviate")
	v.SetDefault("ucs.user_secret_id", "ucs/users/rdeviate")
	v.SetDefault("ucs.snmp_secret_id", "service_creds/ucs_snmpv3_cred")
	v.SetDefault("ucs.sys_contact", "cie-eng.compute-services@cisco.com")
	v.SetDefault("ucs.location_label", 2)
	v.SetDefault("ucs.snmp_user", "cs-snmp")
	v.SetDefault("ucs.auth", "sha")
	v.SetDefault("ucs.use_aes", true)
	v.SetDefault("ucs.insecure_skip_verify", true)
	v.SetDefault("ucs.timeout", "60s")
	v.SetDefault("ucs.hosts_per_second", 1.0)
	v.SetDefault("ucs.verify_snmp", false)
}

// LoadConfig reads configuration from file and environment variables.
// An empty configPath falls back to $OPSKIT_CONFIG and then to the search path.
func LoadConfig(configPath string) (*viper.Viper, error) {
	// .env is optional; it typically carries AWS_PROFILE or VAULT_TOKEN.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	v := viper.New()
	SetDefaults(v)

	if configPath == "" {
		configPath = os.Getenv(EnvConfigPath)
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("opskit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/opskit")
	}

	// OPSKIT_ZABBIX_URL=http://... overrides zabbix.url.
	v.SetEnvPrefix("OPSKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

// Section decodes the subtree at key into target. target should already hold
// the package defaults so that keys missing from every source keep them.
// Values are resolved leaf by leaf so environment overrides apply to nested keys,
// which v.UnmarshalKey alone does not honor.
func Section(v *viper.Viper, key string, target any) error {
	prefix := key + "."
	sub := viper.New()
	for _, k := range v.AllKeys() {
		if strings.HasPrefix(k, prefix) {
			sub.Set(strings.TrimPrefix(k, prefix), v.Get(k))
		}
	}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringFieldsHook,
	))
	if err := sub.Unmarshal(target, hook); err != nil {
		return fmt.Errorf("decode %s config: %w", key, err)
	}
	return nil
}

// stringFieldsHook splits a string destined for a slice on whitespace, the
// same way v.GetStringSlice treats OPSKIT_UCS_HOSTS="a.example.net b.example.net".
func stringFieldsHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	return strings.Fields(data.(string)), nil
}
