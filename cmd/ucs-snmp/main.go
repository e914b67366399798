// Command ucs-snmp enables SNMP and creates the monitoring SNMPv3 user on UCS
// Manager domains listed in ucs.hosts or on the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/HerbHall/opskit/internal/config"
	"github.com/HerbHall/opskit/internal/secrets"
	"github.com/HerbHall/opskit/internal/ucsm"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	v, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}
	logger, err := config.NewLogger(v, "ucs-snmp")
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := provision(ctx, v, args[1:], stdout, logger); err != nil {
		logger.Error("snmp provisioning failed", zap.Error(err))
		return 1
	}
	return 0
}

func provision(ctx context.Context, v *viper.Viper, extraHosts []string, stdout io.Writer, logger *zap.Logger) error {
	secretsCfg := secrets.DefaultConfig()
	ucsCfg := ucsm.DefaultConfig()
	if err := config.Section(v, "secrets", &secretsCfg); err != nil {
		return err
	}
	if err := config.Section(v, "ucs", &ucsCfg); err != nil {
		return err
	}

	hosts := append(append([]string(nil), ucsCfg.Hosts...), extraHosts...)
	if len(hosts) == 0 {
		logger.Info("no target hosts configured, nothing to do")
		return nil
	}

	store, err := secrets.New(ctx, secretsCfg)
	if err != nil {
		return err
	}
	snmpPass, err := secrets.Password(ctx, store, ucsCfg.SNMPSecretID)
	if err != nil {
		return err
	}
	userPass, err := secrets.Password(ctx, store, ucsCfg.UserSecretID)
	if err != nil {
		return err
	}

	p := ucsm.NewProvisioner(ucsCfg, ucsm.Credentials{Password: userPass, SNMPPassphrase: snmpPass}, stdout, logger.Named("ucsm"))
	return p.Provision(ctx, hosts)
}
