package main

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds the stream tool's settings. Every field has a matching flag;
// flags given on the command line win over the file.
type Config struct {
	Device        string   `yaml:"device"`
	Channel       uint     `yaml:"channel"`
	Frequency     string   `yaml:"frequency"`
	SampleRate    string   `yaml:"sample_rate"`
	Antenna       string   `yaml:"antenna"`
	Bandwidth     string   `yaml:"bandwidth"`
	Gain          *float64 `yaml:"gain"`
	StatsAddr     string   `yaml:"stats_addr"`
	SpectrumEvery int      `yaml:"spectrum_every"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	contents, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
