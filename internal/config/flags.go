package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

// NetAddress is a validated host:port flag value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the daemon flags from args (without the program name).
//
// Flags:
//
//	-w workspace directory
//	-a API address in format [host]:[port]
//	-j rotation journal database path
//	-c/-config json file path with configs
//	-idle-timeout vault auto-lock window (e.g., "15m")
//	-passwords-timeout passwords sub-session window (e.g., "10m")
//	-request-timeout API request timeout (e.g., "30s")
//	-autolock-interval idle sweep interval (e.g., "30s")
//	-log-level zerolog level name
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("vaultd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	var workspacePath string
	var journalDSN string
	var jsonConfigPath string
	var idleTimeout time.Duration
	var passwordsTimeout time.Duration
	var requestTimeout time.Duration
	var autoLockInterval time.Duration
	var logLevel string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&workspacePath, "w", "", "Workspace directory")
	fs.StringVar(&journalDSN, "j", "", "Rotation journal database path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&idleTimeout, "idle-timeout", 0, "Vault auto-lock window (e.g., 15m)")
	fs.DurationVar(&passwordsTimeout, "passwords-timeout", 0, "Passwords sub-session window (e.g., 10m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&autoLockInterval, "autolock-interval", 0, "Idle sweep interval (e.g., 30s)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		Vault: Vault{
			WorkspacePath:    workspacePath,
			IdleTimeout:      idleTimeout,
			PasswordsTimeout: passwordsTimeout,
		},
		Storage: Storage{
			Journal: Journal{DSN: journalDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers:      Workers{AutoLockInterval: autoLockInterval},
		Log:          Log{Level: logLevel},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String renders host:port, or "" for an unset address.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port. The host must be "localhost" or an IP literal;
// IPv6 hosts use brackets ("[::1]:44056").
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", rawPort, err)
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
