package launch

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 8000
)

// Spec describes the main service process the orchestrator hands off to.
// Immutable once built from settings at startup.
type Spec struct {
	Bin      string
	BaseArgs []string
	Host     string
	Port     int
	Reload   bool
}

// Argv derives the full argument vector, one argument per Spec field.
func (s Spec) Argv() []string {
	argv := make([]string, 0, len(s.BaseArgs)+6)
	argv = append(argv, s.Bin)
	argv = append(argv, s.BaseArgs...)
	argv = append(argv, "--host", s.Host, "--port", strconv.Itoa(s.Port))
	if s.Reload {
		argv = append(argv, "--reload")
	}
	return argv
}

func (s Spec) Validate() error {
	if s.Bin == "" {
		return errors.New("missing service executable")
	}
	if s.Host == "" {
		return errors.New("missing bind host")
	}
	if s.Port <= 0 || s.Port > 65535 {
		return errors.Errorf("invalid bind port %d", s.Port)
	}
	return nil
}

// Dependency identifies the external service that must be reachable
// before the main process is launched.
type Dependency struct {
	Name   string
	Scheme string // "tcp"|"http"
	Host   string
	Port   int
	URL    string // http probes; derived from Host/Port when empty
}

func (d Dependency) Address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

func (d Dependency) ProbeURL() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("http://%s/", d.Address())
}

func (d Dependency) Validate() error {
	if d.Name == "" {
		return errors.New("missing dependency name")
	}
	switch d.Scheme {
	case "tcp":
		if d.Host == "" || d.Port <= 0 {
			return errors.Errorf("dependency %q tcp probe missing address", d.Name)
		}
	case "http":
		if d.URL == "" && (d.Host == "" || d.Port <= 0) {
			return errors.Errorf("dependency %q http probe missing url", d.Name)
		}
	default:
		return errors.Errorf("dependency %q unsupported probe scheme %q", d.Name, d.Scheme)
	}
	return nil
}

type WaitMode string

const (
	// ModeFixedDelay sleeps for a fixed grace period and assumes
	// readiness without verification.
	ModeFixedDelay WaitMode = "delay"
	// ModeProbe actively checks connectivity until the wait budget is
	// exhausted.
	ModeProbe WaitMode = "probe"
)

// WaitPolicy bounds how long startup is gated on the dependency.
type WaitPolicy struct {
	Mode          WaitMode
	Delay         time.Duration
	ProbeInterval time.Duration
	Budget        time.Duration
}

func (p WaitPolicy) Validate() error {
	switch p.Mode {
	case ModeFixedDelay:
		if p.Delay <= 0 {
			return errors.New("wait delay must be > 0")
		}
		if p.Budget > 0 && p.Budget < p.Delay {
			return errors.New("wait budget must be >= delay")
		}
	case ModeProbe:
		if p.ProbeInterval <= 0 {
			return errors.New("probe interval must be > 0")
		}
		if p.Budget <= 0 {
			return errors.New("wait budget must be > 0")
		}
		if p.Budget < p.ProbeInterval {
			return errors.New("wait budget must be >= probe interval")
		}
	default:
		return errors.Errorf("unknown wait mode %q", p.Mode)
	}
	return nil
}
