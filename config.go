package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/ttpr0/transit-catalogue/comps"
	"github.com/ttpr0/transit-catalogue/storage"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

// ReadConfig reads and validates a yaml config. Missing sections keep the
// defaults.
func ReadConfig(file string) (Config, error) {
	slog.Info("Reading config file " + file)
	config := DefaultConfig()
	data, err := os.ReadFile(file)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func DefaultConfig() Config {
	config := Config{}
	config.RoutingSettings.BusWaitTime = 6
	config.RoutingSettings.BusVelocity = 40
	config.Storage = storage.Config{
		Backend: "file",
		File:    "./transport_catalogue.db",
	}
	config.Server.Port = 5002
	config.Server.AllowedOrigins = []string{"*"}
	config.LogLevel = "info"
	return config
}

type Config struct {
	RoutingSettings RoutingOptions `yaml:"routing-settings"`
	Storage         storage.Config `yaml:"storage"`
	Source          SourceOptions  `yaml:"source"`
	Server          struct {
		Port           int      `yaml:"port" validate:"gt=0,lte=65535"`
		AllowedOrigins []string `yaml:"allowed-origins"`
	} `yaml:"server"`
	LogLevel string `yaml:"log-level" validate:"omitempty,oneof=debug info warn error"`
}

type RoutingOptions struct {
	// minutes
	BusWaitTime int `yaml:"bus-wait-time" validate:"gte=0"`
	// km/h
	BusVelocity float64 `yaml:"bus-velocity" validate:"gt=0"`
}

// Converts the velocity from km/h to m/min.
func (self RoutingOptions) ToSettings() comps.RoutingSettings {
	return comps.RoutingSettings{
		BusWaitTime: float64(self.BusWaitTime),
		BusVelocity: self.BusVelocity * 1000 / 60,
	}
}

type SourceOptions struct {
	OSM string `yaml:"osm"`
}

var validate = validator.New()

func (self *Config) Validate() error {
	if err := validate.Struct(self); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ApplyEnv overrides config values from the environment.
func (self *Config) ApplyEnv() error {
	if value := os.Getenv("TRANSIT_PORT"); value != "" {
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TRANSIT_PORT %s: %w", value, err)
		}
		self.Server.Port = port
	}
	if value := os.Getenv("TRANSIT_LOG_LEVEL"); value != "" {
		self.LogLevel = value
	}
	return self.Validate()
}
