package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

var ErrUsage = errors.New("usage: go-transit [-config file] make_base|process_requests|serve|import_osm <file>")

func main() {
	config_file := flag.String("config", "", "path to the yaml config file")
	flag.Parse()

	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	file := *config_file
	if file == "" {
		file = os.Getenv("TRANSIT_CONFIG")
	}
	if file == "" {
		file = "./config.yaml"
	}

	// logs go to stderr, stdout carries the json output
	InitLogging(DefaultConfig().Logging, os.Stderr)
	config, err := ReadConfig(file)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	InitLogging(config.Logging, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	shutdown := InitTelemetry(ctx, config.Telemetry)

	err = Run(ctx, flag.Args(), config, os.Stdin, os.Stdout)
	shutdown()
	stop()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func Run(ctx context.Context, args []string, config Config, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return ErrUsage
	}
	switch args[0] {
	case "make_base":
		return RunMakeBase(ctx, in, config)
	case "process_requests":
		return RunProcessRequests(ctx, in, out, config)
	case "serve":
		manager, err := LoadTransitManager(config.Serialization.File)
		if err != nil {
			return err
		}
		return RunServer(ctx, manager, config.Server)
	case "import_osm":
		if len(args) < 2 {
			return ErrUsage
		}
		return RunImportOSM(ctx, args[1], out)
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrUsage, args[0])
	}
}
