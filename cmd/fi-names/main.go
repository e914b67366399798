// Command fi-names prints the fabric-interconnect names of each UCS chassis.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/HerbHall/opskit/internal/config"
	"github.com/HerbHall/opskit/internal/fabric"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	xlsxPath := fs.String("xlsx", "", "also write the names to this .xlsx workbook")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	v, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return 1
	}
	logger, err := config.NewLogger(v, "fi-names")
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	cfg := fabric.DefaultConfig()
	if err := config.Section(v, "fabric", &cfg); err != nil {
		logger.Error("invalid fabric configuration", zap.Error(err))
		return 1
	}

	pairs, err := fabric.DeriveAll(cfg.Chassis)
	if err != nil {
		logger.Error("cannot derive interconnect names", zap.Error(err))
		return 1
	}
	for _, p := range pairs {
		fmt.Fprintln(stdout, p.A)
		fmt.Fprintln(stdout, p.B)
	}

	if *xlsxPath != "" {
		if err := fabric.WriteWorkbook(*xlsxPath, pairs); err != nil {
			logger.Error("cannot write workbook", zap.Error(err))
			return 1
		}
		logger.Info("workbook written", zap.String("path", *xlsxPath), zap.Int("chassis", len(pairs)))
	}
	return 0
}
