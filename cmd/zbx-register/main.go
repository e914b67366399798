// Command zbx-register ensures a host is monitored by Zabbix.
//
//	zbx-register <hostname>
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/HerbHall/opskit/internal/config"
	"github.com/HerbHall/opskit/internal/probe"
	"github.com/HerbHall/opskit/internal/secrets"
	"github.com/HerbHall/opskit/internal/zabbix"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 2 || args[1] == "" {
		fmt.Fprintf(stderr, "Host is not specified\nUsage: %s <hostname>\n", filepath.Base(args[0]))
		return 1
	}
	host := args[1]

	v, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}
	logger, err := config.NewLogger(v, "zbx-register")
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := register(ctx, v, host, stdout, logger); err != nil {
		logger.Error("host registration failed", zap.String("host", host), zap.Error(err))
		return 1
	}
	return 0
}

func register(ctx context.Context, v *viper.Viper, host string, stdout io.Writer, logger *zap.Logger) error {
	probeCfg := probe.DefaultConfig()
	secretsCfg := secrets.DefaultConfig()
	zbxCfg := zabbix.DefaultConfig()
	for key, target := range map[string]any{"probe": &probeCfg, "secrets": &secretsCfg, "zabbix": &zbxCfg} {
		if err := config.Section(v, key, target); err != nil {
			return err
		}
	}

	res, err := probe.New(probeCfg, logger.Named("probe")).Reachable(ctx, host)
	if err != nil {
		return err
	}
	if !res.Alive {
		logger.Warn("host is not reachable, registering anyway", zap.String("host", host), zap.Error(res.Err))
		fmt.Fprintf(stdout, "Warning!!!\nHost %s will be added but is not reachable\n", host)
	}

	store, err := secrets.New(ctx, secretsCfg)
	if err != nil {
		return err
	}
	password, err := secrets.Password(ctx, store, zbxCfg.SecretID)
	if err != nil {
		return err
	}

	client := zabbix.NewClient(zbxCfg)
	return client.WithSession(ctx, zbxCfg.Username, password, func(s *zabbix.Session) error {
		_, err := zabbix.NewRegistrar(s, zbxCfg, stdout, logger.Named("zabbix")).Register(ctx, host)
		return err
	})
}
