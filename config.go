package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

var ErrInvalidConfig = errors.New("invalid config")

// Reads the yaml config file on top of the defaults. A missing file is not
// an error, the defaults are used instead.
func ReadConfig(file string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(file)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("config file " + file + " not found, using defaults")
	case err != nil:
		return config, fmt.Errorf("failed to read config file: %w", err)
	default:
		slog.Info("Reading config file " + file)
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func DefaultConfig() Config {
	return Config{
		Logging: LoggingOptions{
			Level: "info",
		},
		Serialization: SerializationOptions{
			File: "transport_catalogue.db",
		},
		Server: ServerOptions{
			Port:        5002,
			CorsOrigins: []string{"*"},
		},
		Telemetry: TelemetryOptions{
			Endpoint:         "localhost:4318",
			ServiceName:      "go-transit",
			PyroscopeAddress: "http://localhost:4040",
		},
	}
}

type Config struct {
	Logging       LoggingOptions       `yaml:"logging"`
	Serialization SerializationOptions `yaml:"serialization"`
	Routing       RoutingOptions       `yaml:"routing"`
	Catalogue     CatalogueOptions     `yaml:"catalogue"`
	Server        ServerOptions        `yaml:"server"`
	Telemetry     TelemetryOptions     `yaml:"telemetry"`
}

var validate = validator.New()

func (self Config) Validate() error {
	if err := validate.Struct(self); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Environment variables override the file.
func (self *Config) ApplyEnv() {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		self.Logging.Level = level
	}
	if file := os.Getenv("TRANSIT_SNAPSHOT"); file != "" {
		self.Serialization.File = file
	}
}

//**********************************************************
// sections
//**********************************************************

type LoggingOptions struct {
	Level     string `yaml:"level" validate:"oneof=debug info warn error"`
	AddSource bool   `yaml:"add-source"`
}

type SerializationOptions struct {
	// used when a request document does not name the snapshot file
	File string `yaml:"file"`
}

type RoutingOptions struct {
	// 0 uses one worker per cpu
	Workers int `yaml:"workers" validate:"gte=0"`
}

type CatalogueOptions struct {
	StrictStopReferences bool `yaml:"strict-stop-references"`
}

type ServerOptions struct {
	Port        int      `yaml:"port" validate:"gt=0,lt=65536"`
	CorsOrigins []string `yaml:"cors-origins"`
}

type TelemetryOptions struct {
	Tracing          bool   `yaml:"tracing"`
	Metrics          bool   `yaml:"metrics"`
	Endpoint         string `yaml:"endpoint" validate:"required_if=Tracing true,required_if=Metrics true"`
	ServiceName      string `yaml:"service-name" validate:"required"`
	Profiling        bool   `yaml:"profiling"`
	PyroscopeAddress string `yaml:"pyroscope-address" validate:"required_if=Profiling true"`
}
