package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the status server listens on (e.g. "0.0.0.0:8080").
	// Empty disables the server.
	BindAddress string `yaml:"bind_address"`
	// SerialPort is the path to the modem's serial port (e.g. "/dev/ttyUSB0")
	SerialPort string `yaml:"serial_port"`
	// BaudRate is the baud rate for serial communication with the modem (e.g. 115200)
	BaudRate int `yaml:"baud_rate"`
	// ChunkSize is the number of bytes taken by one poll of the serial line
	ChunkSize int `yaml:"chunk_size"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `yaml:"log_level"`

	// WiFiSSID and WiFiPassword are the access point credentials
	WiFiSSID     string `yaml:"wifi_ssid"`
	WiFiPassword string `yaml:"wifi_password"`

	// Username and Password are the AI-FML account credentials
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// Host and Port locate the AI-FML service
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// PollInterval is the pause between two fetch cycles
	PollInterval time.Duration `yaml:"poll_interval"`

	// Buckets map output value ranges to actions, evaluated in order
	Buckets []BucketConfig `yaml:"buckets"`
}

// BucketConfig describes one [Low, High) range and what to do when the
// output value falls in it.
type BucketConfig struct {
	Name string  `yaml:"name"`
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
	// Command is run (argv form) each time the bucket fires. Optional.
	Command []string `yaml:"command"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:8080"
		c.SerialPort = "/dev/ttyUSB0"
		c.BaudRate = 115200
		c.ChunkSize = 6
		c.LogLevel = "info"
		c.Host = "140.110.3.59"
		c.Port = 80
		c.PollInterval = 3 * time.Second
		return nil
	}
}

// WithFile loads configuration from a YAML file. An empty path is ignored.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr, ok := os.LookupEnv("BIND_ADDRESS"); ok {
			c.BindAddress = addr
		}

		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if ssid := os.Getenv("WIFI_SSID"); ssid != "" {
			c.WiFiSSID = ssid
		}

		if pass := os.Getenv("WIFI_PASSWORD"); pass != "" {
			c.WiFiPassword = pass
		}

		if user := os.Getenv("AIFML_USERNAME"); user != "" {
			c.Username = user
		}

		if pass := os.Getenv("AIFML_PASSWORD"); pass != "" {
			c.Password = pass
		}

		if host := os.Getenv("AIFML_HOST"); host != "" {
			c.Host = host
		}

		if port := os.Getenv("AIFML_PORT"); port != "" {
			if p, err := strconv.Atoi(port); err == nil {
				c.Port = p
			}
		}

		if interval := os.Getenv("POLL_INTERVAL"); interval != "" {
			if d, err := time.ParseDuration(interval); err == nil {
				c.PollInterval = d
			}
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "bind-address":
				c.BindAddress = f.Value.String()
			case "serial-port":
				c.SerialPort = f.Value.String()
			case "baud-rate":
				if b, err := strconv.Atoi(f.Value.String()); err == nil {
					c.BaudRate = b
				}
			case "chunk-size":
				if n, err := strconv.Atoi(f.Value.String()); err == nil {
					c.ChunkSize = n
				}
			case "log-level":
				c.LogLevel = f.Value.String()
			case "wifi-ssid":
				c.WiFiSSID = f.Value.String()
			case "wifi-password":
				c.WiFiPassword = f.Value.String()
			case "username":
				c.Username = f.Value.String()
			case "password":
				c.Password = f.Value.String()
			case "host":
				c.Host = f.Value.String()
			case "port":
				if p, err := strconv.Atoi(f.Value.String()); err == nil {
					c.Port = p
				}
			case "poll-interval":
				if d, err := time.ParseDuration(f.Value.String()); err == nil {
					c.PollInterval = d
				}
			}
		})
		return nil
	}
}

// Validate reports missing credentials and malformed bucket ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.WiFiSSID == "" {
		errs = append(errs, errors.New("wifi ssid is required"))
	}
	if c.Username == "" || c.Password == "" {
		errs = append(errs, errors.New("aifml username and password are required"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("poll interval must be positive"))
	}
	if c.ChunkSize <= 0 {
		errs = append(errs, errors.New("chunk size must be positive"))
	}
	for i, b := range c.Buckets {
		if b.Low > b.High {
			errs = append(errs, fmt.Errorf("bucket %d (%s): low %v exceeds high %v", i, b.Name, b.Low, b.High))
		}
	}
	return errors.Join(errs...)
}
