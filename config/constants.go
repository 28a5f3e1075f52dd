package config

import (
	"os"
	"strconv"
	"time"
)

// Service constants with env var override support.
var (
	HTTPAddr            = stringEnv("HTTP_ADDR", ":9300")
	DBTimeout           = durationEnv("DB_TIMEOUT", 10*time.Second)
	MeiliTimeout        = durationEnv("MEILI_TIMEOUT", 15*time.Second)
	ShutdownTimeout     = durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	HistoryMaxInFlight  = intEnv("HISTORY_MAX_IN_FLIGHT", 64)
	HistoryWriteTimeout = durationEnv("HISTORY_WRITE_TIMEOUT", 5*time.Second)
	StreamMaxLen        = intEnv("HISTORY_STREAM_MAXLEN", 100000)
	StreamClaimMinIdle  = durationEnv("HISTORY_STREAM_CLAIM_MIN_IDLE", 30*time.Second)
	StreamMaxDeliveries = intEnv("HISTORY_STREAM_MAX_DELIVERIES", 5)
	StartupRetryTimeout = durationEnv("STARTUP_RETRY_TIMEOUT", 2*time.Minute)
)

func stringEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func intEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func durationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
