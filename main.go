package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"i4.energy/across/fmlgw/aifml"
	"i4.energy/across/fmlgw/modem"
)

func main() {
	flag.String("config", "", "Path to a YAML configuration file")
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port to connect to the modem")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.Int("chunk-size", 6, "Bytes taken by one poll of the serial line")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the status server (empty to disable)")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("wifi-ssid", "", "WiFi access point name")
	flag.String("wifi-password", "", "WiFi access point passphrase")
	flag.String("username", "", "AI-FML account name")
	flag.String("password", "", "AI-FML account password")
	flag.String("host", aifml.DefaultHost, "AI-FML service host")
	flag.Int("port", aifml.DefaultPort, "AI-FML service port")
	flag.Duration("poll-interval", 3*time.Second, "Pause between two fetch cycles")
	flag.Parse()

	configFile := flag.Lookup("config").Value.String()
	config, err := LoadConfig(WithDefaults(), WithFile(configFile), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if err := config.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	modemConfig, err := modem.NewConfigBuilder().
		WithChunkSize(config.ChunkSize).
		WithLogger(logger.With("component", "modem")).
		WithDialer(modem.SerialDialer{
			PortName: config.SerialPort,
			BaudRate: config.BaudRate,
		}).
		Build()
	if err != nil {
		logger.Error("Failed to create modem config", "error", err)
		os.Exit(1)
	}

	m, err := modem.New(ctx, modemConfig)
	if err != nil {
		logger.Error("Failed to create modem", "error", err)
		os.Exit(1)
	}
	closeModem := func() {
		logger.Info("Closing modem connection")
		if err := m.Close(); err != nil {
			logger.Error("Failed to close modem", "error", err)
		}
	}

	status := NewStatus(time.Now())
	if err := bringUp(ctx, logger, m, config, status); err != nil {
		logger.Error("Failed to bring up the network", "error", err)
		closeModem()
		os.Exit(1)
	}

	client, err := aifml.NewClient(m, aifml.Config{
		Host:     config.Host,
		Port:     config.Port,
		Username: config.Username,
		Password: config.Password,
		Buckets:  BuildBuckets(ctx, logger.With("component", "actions"), config.Buckets, ExecCommand),
		OnResult: status.Record,
		Logger:   logger.With("component", "aifml"),
	})
	if err != nil {
		logger.Error("Failed to create AI-FML client", "error", err)
		closeModem()
		os.Exit(1)
	}

	var httpServer *http.Server
	if config.BindAddress != "" {
		httpServer = &http.Server{
			Addr: config.BindAddress,
			Handler: &Server{
				Logger: logger.With("component", "server"),
				Status: status,
			},
		}

		// Start HTTP server in a goroutine
		go func() {
			logger.Info("Starting HTTP server", "address", httpServer.Addr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server failed", "error", err)
				stop()
			}
		}()
	}

	if err := client.SignIn(ctx); err != nil {
		logger.Error("Sign-in failed", "error", err)
	} else {
		logger.Info("Starting AI-FML gateway", "host", config.Host, "interval", config.PollInterval)
		if err := client.Run(ctx, config.PollInterval); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Poll loop stopped", "error", err)
		}
	}

	logger.Info("Shutting down")
	closeModem()

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Closing HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to gracefully shutdown server", "error", err)
		}
	}
}

// bringUp initialises the modem, joins the access point and records the
// station address.
func bringUp(ctx context.Context, logger *slog.Logger, m *modem.Modem, config *Config, status *Status) error {
	version, err := m.Init(ctx)
	if err != nil {
		return err
	}
	logger.Info("Modem ready", "firmware", version)

	logger.Info("Joining WiFi", "ssid", config.WiFiSSID)
	if err := m.JoinWiFi(ctx, config.WiFiSSID, config.WiFiPassword); err != nil {
		return err
	}

	ip, err := m.LocalIP(ctx)
	if err != nil {
		return err
	}
	status.SetLocalIP(ip)
	logger.Info("WiFi connected", "ip", ip)
	return nil
}
