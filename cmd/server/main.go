// cardroom server - entry point
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"cardroom/internal/config"
	"cardroom/internal/connmgr"
	"cardroom/internal/logging"
	"cardroom/internal/players"
	"cardroom/internal/rooms"
	"cardroom/internal/router"
)

const version = "1.0.0"

var (
	configPath = flag.String("config", "", "Path to a KEY=VALUE config file (optional)")
	ip         = flag.String("ip", "", "Override the listen address from config")
	port       = flag.Int("port", 0, "Override the listen port from config")
	logLevel   = flag.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	logFile    = flag.String("log-file", "", "Override the configured log file path")
	help       = flag.Bool("help", false, "Show help information")
)

func main() {
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config %q: %v\n", *configPath, err)
		os.Exit(1)
	}
	if *ip != "" {
		cfg.IP = *ip
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
		cfg.EnableFileLogging = true
	}

	logging.SetGlobalLevel(parseLevel(*logLevel))
	if cfg.EnableFileLogging {
		var err error
		if cfg.LogFile != "" {
			err = logging.SetFileAll(cfg.LogFile)
		} else {
			err = logging.InitializeFileLogging("./logs")
		}
		if err != nil {
			logging.ConnManager.Warn("could not initialize file logging: %v", err)
		}
	}

	printBanner(cfg)

	playerRegistry := players.New()
	roomRegistry := rooms.New(cfg.MaxRooms)
	rt := router.New(playerRegistry, roomRegistry)
	server := connmgr.New(cfg, playerRegistry, roomRegistry, rt)

	setupGracefulShutdown(server)

	logging.ConnManager.Info("cardroom server v%s starting", version)
	if err := server.Start(); err != nil {
		logging.ConnManager.Fatal("server failed to start: %v", err)
	}
}

func parseLevel(raw string) logging.Level {
	switch raw {
	case "DEBUG":
		return logging.DEBUG
	case "WARN":
		return logging.WARN
	case "ERROR":
		return logging.ERROR
	default:
		return logging.INFO
	}
}

func setupGracefulShutdown(server *connmgr.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logging.ConnManager.Info("received shutdown signal, stopping server...")
		server.Stop()
		os.Exit(0)
	}()
}

func printBanner(cfg config.Config) {
	bold := color.New(color.FgCyan, color.Bold)
	bold.Printf("cardroom")
	fmt.Printf(" v%s listening on %s:%d (max_rooms=%d)\n", version, cfg.IP, cfg.Port, cfg.MaxRooms)
}

func showHelp() {
	fmt.Printf(`cardroom server v%s

USAGE:
    %s [OPTIONS]

OPTIONS:
    --config string       Path to a KEY=VALUE config file
    --ip string           Override the listen address from config
    --port int            Override the listen port from config
    --log-level string    DEBUG, INFO, WARN, or ERROR (default "INFO")
    --log-file string     Override the configured log file path
    --help                Show this help message

CONFIG FILE KEYS:
    ip, port, max_rooms, log_file, enable_file_logging,
    player_timeout_seconds, grace_window_seconds, heartbeat_check_interval

EXAMPLES:
    # Start with defaults
    %s

    # Start on a specific address, overriding any config file
    %s --config server.conf --ip 0.0.0.0 --port 9000

EXIT CODES:
    0    clean shutdown
    1    startup failure or fatal error
`, version, os.Args[0], os.Args[0], os.Args[0])
}
