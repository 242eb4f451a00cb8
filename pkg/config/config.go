// Package config captures process-wide configuration once at startup
// into an immutable Settings value. Sources, in increasing precedence:
// built-in defaults, an optional YAML file, environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/yevhenii-memruk/user-management-service/pkg/launch"
)

const DefaultConfigFilename = ".entrypoint.yaml"

const DependencyName = "rabbitmq"

type Settings struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Reload bool   `yaml:"reload" json:"reload"`

	AppBin  string   `yaml:"app_bin" json:"app_bin"`
	AppArgs []string `yaml:"app_args" json:"app_args"`

	RabbitMQHost string `yaml:"rabbitmq_host" json:"rabbitmq_host"`
	RabbitMQPort int    `yaml:"rabbitmq_port" json:"rabbitmq_port"`

	// Durations are kept as strings ("5s") and parsed when the wait
	// policy is built, so file, env and flag sources stay uniform.
	WaitMode          string `yaml:"wait_mode" json:"wait_mode"` // "delay"|"probe"
	WaitDelay         string `yaml:"wait_delay" json:"wait_delay"`
	WaitProbeInterval string `yaml:"wait_probe_interval" json:"wait_probe_interval"`
	WaitTimeout       string `yaml:"wait_timeout" json:"wait_timeout"`

	WaitProbeScheme string `yaml:"wait_probe_scheme" json:"wait_probe_scheme"` // "tcp"|"http"
	WaitProbeURL    string `yaml:"wait_probe_url" json:"wait_probe_url,omitempty"`

	ExitInfoPath string `yaml:"exit_info_path" json:"exit_info_path,omitempty"`
}

func Defaults() *Settings {
	return &Settings{
		Host:              launch.DefaultHost,
		Port:              launch.DefaultPort,
		Reload:            false,
		AppBin:            "uvicorn",
		AppArgs:           []string{"src.main:app"},
		RabbitMQHost:      "rabbitmq",
		RabbitMQPort:      5672,
		WaitMode:          string(launch.ModeProbe),
		WaitDelay:         "5s",
		WaitProbeInterval: "1s",
		WaitTimeout:       "30s",
		WaitProbeScheme:   "tcp",
	}
}

func DefaultPath(dir string) string {
	return filepath.Join(dir, DefaultConfigFilename)
}

// Load resolves settings from defaults, the optional config file at
// path, and the environment.
func Load(path string) (*Settings, error) {
	s := Defaults()
	if path != "" {
		if err := s.applyFile(path); err != nil {
			return nil, err
		}
	}
	s.applyEnv()
	return s, nil
}

func (s *Settings) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(b, s); err != nil {
		return errors.Wrap(err, "parse config yaml")
	}
	return nil
}

func (s *Settings) applyEnv() {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if val := v.GetString("host"); val != "" {
		s.Host = val
	}
	if val := v.GetString("port"); val != "" {
		s.Port = v.GetInt("port")
	}
	if val := v.GetString("reload"); val != "" {
		s.Reload = v.GetBool("reload")
	}
	if val := v.GetString("app_bin"); val != "" {
		s.AppBin = val
	}
	if val := v.GetString("app_args"); val != "" {
		s.AppArgs = strings.Fields(val)
	}
	if val := v.GetString("rabbitmq_host"); val != "" {
		s.RabbitMQHost = val
	}
	if val := v.GetString("rabbitmq_port"); val != "" {
		s.RabbitMQPort = v.GetInt("rabbitmq_port")
	}
	if val := v.GetString("wait_mode"); val != "" {
		s.WaitMode = val
	}
	if val := v.GetString("wait_delay"); val != "" {
		s.WaitDelay = val
	}
	if val := v.GetString("wait_probe_interval"); val != "" {
		s.WaitProbeInterval = val
	}
	if val := v.GetString("wait_timeout"); val != "" {
		s.WaitTimeout = val
	}
	if val := v.GetString("wait_probe_scheme"); val != "" {
		s.WaitProbeScheme = val
	}
	if val := v.GetString("wait_probe_url"); val != "" {
		s.WaitProbeURL = val
	}
	if val := v.GetString("exit_info_path"); val != "" {
		s.ExitInfoPath = val
	}
}

func (s *Settings) LaunchSpec() launch.Spec {
	return launch.Spec{
		Bin:      s.AppBin,
		BaseArgs: append([]string{}, s.AppArgs...),
		Host:     s.Host,
		Port:     s.Port,
		Reload:   s.Reload,
	}
}

func (s *Settings) Dependency() launch.Dependency {
	return launch.Dependency{
		Name:   DependencyName,
		Scheme: s.WaitProbeScheme,
		Host:   s.RabbitMQHost,
		Port:   s.RabbitMQPort,
		URL:    s.WaitProbeURL,
	}
}

func (s *Settings) WaitPolicy() (launch.WaitPolicy, error) {
	p := launch.WaitPolicy{Mode: launch.WaitMode(s.WaitMode)}

	var err error
	if p.Delay, err = parseDuration(s.WaitDelay, "wait_delay"); err != nil {
		return launch.WaitPolicy{}, err
	}
	if p.ProbeInterval, err = parseDuration(s.WaitProbeInterval, "wait_probe_interval"); err != nil {
		return launch.WaitPolicy{}, err
	}
	if p.Budget, err = parseDuration(s.WaitTimeout, "wait_timeout"); err != nil {
		return launch.WaitPolicy{}, err
	}
	if err := p.Validate(); err != nil {
		return launch.WaitPolicy{}, err
	}
	return p, nil
}

func parseDuration(val, key string) (time.Duration, error) {
	if val == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", key)
	}
	return d, nil
}
