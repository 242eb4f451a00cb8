package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeEnv(t *testing.T) {
	env := map[string]string{
		"RABBITMQ_HOST":     "broker",
		"RABBITMQ_PASSWORD": "hunter2",
		"POSTGRES_PASS":     "hunter2",
		"LOG_LEVEL":         "INFO",
	}
	out := SanitizeEnv(env)
	require.Equal(t, "broker", out["RABBITMQ_HOST"])
	require.Equal(t, "[REDACTED]", out["RABBITMQ_PASSWORD"])
	require.Equal(t, "[REDACTED]", out["POSTGRES_PASS"])
	require.Equal(t, "INFO", out["LOG_LEVEL"])
}

func TestServiceEnv_SelectsAndRedacts(t *testing.T) {
	t.Setenv("RABBITMQ_HOST", "broker")
	t.Setenv("RABBITMQ_PASS", "hunter2")
	t.Setenv("SOME_UNRELATED_VAR", "x")

	env := ServiceEnv()
	require.Equal(t, "broker", env["RABBITMQ_HOST"])
	require.Equal(t, "[REDACTED]", env["RABBITMQ_PASS"])
	require.NotContains(t, env, "SOME_UNRELATED_VAR")
}
