package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yevhenii-memruk/user-management-service/pkg/launch"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", s.Host)
	require.Equal(t, 8000, s.Port)
	require.False(t, s.Reload)
	require.Equal(t, "uvicorn", s.AppBin)
	require.Equal(t, []string{"src.main:app"}, s.AppArgs)
	require.Equal(t, "rabbitmq", s.RabbitMQHost)
	require.Equal(t, 5672, s.RabbitMQPort)

	policy, err := s.WaitPolicy()
	require.NoError(t, err)
	require.Equal(t, launch.ModeProbe, policy.Mode)
	require.Equal(t, 1*time.Second, policy.ProbeInterval)
	require.Equal(t, 30*time.Second, policy.Budget)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")
	t.Setenv("RELOAD", "true")
	t.Setenv("RABBITMQ_HOST", "broker.internal")
	t.Setenv("RABBITMQ_PORT", "5673")
	t.Setenv("WAIT_MODE", "delay")
	t.Setenv("WAIT_DELAY", "2s")
	t.Setenv("APP_ARGS", "src.main:app --workers 2")

	s, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", s.Host)
	require.Equal(t, 9000, s.Port)
	require.True(t, s.Reload)
	require.Equal(t, "broker.internal", s.RabbitMQHost)
	require.Equal(t, 5673, s.RabbitMQPort)
	require.Equal(t, []string{"src.main:app", "--workers", "2"}, s.AppArgs)

	policy, err := s.WaitPolicy()
	require.NoError(t, err)
	require.Equal(t, launch.ModeFixedDelay, policy.Mode)
	require.Equal(t, 2*time.Second, policy.Delay)

	dep := s.Dependency()
	require.Equal(t, "broker.internal:5673", dep.Address())
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	content := "host: 10.0.0.1\nport: 8080\napp_bin: gunicorn\nwait_mode: delay\nwait_delay: 3s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("PORT", "9999")

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "10.0.0.1", s.Host)
	require.Equal(t, 9999, s.Port) // env wins over file
	require.Equal(t, "gunicorn", s.AppBin)
	require.Equal(t, "3s", s.WaitDelay)
}

func TestLoad_MissingFileIsOptional(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, 8000, s.Port)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte("host: [unclosed"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestWaitPolicy_Invalid(t *testing.T) {
	s := Defaults()
	s.WaitMode = "bogus"
	_, err := s.WaitPolicy()
	require.Error(t, err)

	s = Defaults()
	s.WaitTimeout = "not-a-duration"
	_, err = s.WaitPolicy()
	require.Error(t, err)
}

func TestLaunchSpec_ReloadReachesArgv(t *testing.T) {
	t.Setenv("RELOAD", "true")
	s, err := Load("")
	require.NoError(t, err)
	require.Contains(t, s.LaunchSpec().Argv(), "--reload")
}
