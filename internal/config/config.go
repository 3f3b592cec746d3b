// handles command-line flags
package config

import (
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultPort     = 3000
	DefaultRootName = "public"
)

// Config holds the two startup values of the server. Both are read-only once
// Load returns.
type Config struct {
	Host string
	Port int
	Root string
}

// Load parses args (without the program name). With no args it returns the
// defaults: port 3000 on all interfaces, serving DefaultRoot().
func Load(args []string) (*Config, error) {
	return load(args, os.Stderr)
}

func load(args []string, output io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("pubserve", flag.ContinueOnError)
	fs.SetOutput(output)
	host := fs.String("host", "", "The host/IP to bind to (empty for all interfaces)")
	port := fs.Int("port", DefaultPort, "The port to listen on")
	root := fs.String("root", "", "Directory to serve (default: public/ next to the executable)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *port < 1 || *port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 1 and 65535", *port)
	}

	dir := *root
	if dir == "" {
		dir = DefaultRoot()
	}
	absRoot, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid root directory %q: %w", dir, err)
	}

	return &Config{
		Host: *host,
		Port: *port,
		Root: absRoot,
	}, nil
}

// DefaultRoot returns the public directory adjacent to the running
// executable, falling back to ./public when there is none (go run, tests).
func DefaultRoot() string {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), DefaultRootName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return DefaultRootName
}

// Addr is the address passed to net.Listen.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
