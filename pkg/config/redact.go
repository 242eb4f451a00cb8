package config

import (
	"os"
	"strings"
)

// sensitiveKeyPatterns contains patterns that indicate a key holds sensitive data.
var sensitiveKeyPatterns = []string{
	"PASSWORD",
	"PASS",
	"SECRET",
	"TOKEN",
	"KEY",
	"CREDENTIAL",
	"AUTH",
	"PRIVATE",
	"CERT",
}

const redactedValue = "[REDACTED]"

// servicePrefixes selects the environment variables that belong to the
// service and its backing dependencies.
var servicePrefixes = []string{
	"APP_",
	"WAIT_",
	"RABBITMQ_",
	"POSTGRES_",
	"REDIS_",
}

var serviceExact = map[string]bool{
	"HOST":      true,
	"PORT":      true,
	"RELOAD":    true,
	"DEBUG":     true,
	"LOG_LEVEL": true,
}

// SanitizeEnv returns a copy of env with sensitive values redacted.
func SanitizeEnv(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}
	result := make(map[string]string, len(env))
	for k, v := range env {
		if isSensitiveKey(k) {
			result[k] = redactedValue
		} else {
			result[k] = v
		}
	}
	return result
}

func isSensitiveKey(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ServiceEnv collects the service-relevant process environment,
// sanitized for display.
func ServiceEnv() map[string]string {
	out := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if !isServiceKey(k) {
			continue
		}
		out[k] = v
	}
	return SanitizeEnv(out)
}

func isServiceKey(key string) bool {
	if serviceExact[key] {
		return true
	}
	for _, prefix := range servicePrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
