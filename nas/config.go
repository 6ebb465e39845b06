package nas

import (
	"fmt"
	"path/filepath"

	"github.com/dwc-revival/nasd/nas/handshake"
	"github.com/dwc-revival/nasd/nas/transcript"
	"github.com/dwc-revival/nasd/std/log"
)

// Config is the configuration of the NAS daemon.
type Config struct {
	Nas struct {
		// Bind address of the HTTP listener
		Bind string `json:"bind"`
		// Port of the HTTP listener
		Port uint16 `json:"port"`
		// Value of the NODE response header
		Node string `json:"node"`
		// Locator returned on login
		Locator string `json:"locator"`
		// Logging level
		LogLevel string `json:"log_level"`
		// Output log to file
		LogFile string `json:"log_file"`
		// Log in JSON instead of text
		LogJson bool `json:"log_json"`
	} `json:"nas"`

	Transcript transcript.Config `json:"transcript"`

	Metrics struct {
		// Whether to serve prometheus metrics
		Enabled bool `json:"enabled"`
		// Listen address of the metrics endpoint
		Bind string `json:"bind"`
	} `json:"metrics"`

	// Config file base dir
	BaseDir string `json:"-"`
}

func DefaultConfig() *Config {
	c := &Config{}
	c.Nas.Bind = ""
	c.Nas.Port = 9000
	c.Nas.Node = DefaultNode
	c.Nas.Locator = handshake.DefaultLocator
	c.Nas.LogLevel = "INFO"
	c.Nas.LogFile = ""
	c.Nas.LogJson = false

	c.Transcript = *transcript.DefaultConfig()

	c.Metrics.Enabled = false
	c.Metrics.Bind = ":9100"
	return c
}

// Parse validates the configuration and resolves relative paths.
func (c *Config) Parse() error {
	if _, err := log.ParseLevel(c.Nas.LogLevel); err != nil {
		return err
	}
	if c.Nas.Port == 0 {
		return fmt.Errorf("nas port must be set")
	}
	if c.Nas.LogFile != "" {
		c.Nas.LogFile = c.ResolveRelPath(c.Nas.LogFile)
	}
	if c.Metrics.Enabled && c.Metrics.Bind == "" {
		return fmt.Errorf("metrics bind address must be set")
	}
	if err := c.Transcript.Parse(c.BaseDir); err != nil {
		return fmt.Errorf("transcript: %w", err)
	}
	return nil
}

// ResolveRelPath resolves a possibly relative path based on config file path.
func (c *Config) ResolveRelPath(target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(c.BaseDir, target)
}
