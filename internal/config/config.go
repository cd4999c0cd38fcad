package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hamed0406/rpcmon/internal/availability"
	"github.com/hamed0406/rpcmon/internal/jsonrpc"
	"github.com/hamed0406/rpcmon/internal/probe"
)

type Config struct {
	LogDir           string        // logs directory
	LogLevel         string        // debug, info, warn, error
	Timeout          time.Duration // per-call transport timeout
	UserAgent        string        // User-Agent sent to services
	Method           string        // JSON-RPC method called on every service
	HealthyThreshold float64       // composite at or above this is "healthy"
	SlackWebhook     string        // optional; empty disables the Slack summary
	APIKey           string        // optional bearer token sent to every service

	// demo service
	ServiceAddr  string  // bind address, e.g. "127.0.0.1:8080"
	ServiceName  string  // name reported in results
	ServiceMu    float64 // mean of the generated availability
	ServiceSigma float64 // standard deviation of the generated availability
	ServiceRPM   int     // per-IP requests per minute, 0 disables rate limiting
	ServiceBurst int
	ServiceKeys  []string // API keys required on /rpc, empty = open
}

func FromEnv() Config {
	// Logs
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if logLevel == "" {
		logLevel = "info"
	}

	// Transport
	timeout := probe.DefaultTimeout
	if v := os.Getenv("TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}
	userAgent := os.Getenv("USER_AGENT")
	if userAgent == "" {
		userAgent = probe.DefaultUserAgent
	}

	method := strings.TrimSpace(os.Getenv("RPC_METHOD"))
	if method == "" {
		method = jsonrpc.MethodGetDisponibility
	}

	threshold := availability.DefaultThreshold
	if v := os.Getenv("HEALTHY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			threshold = f
		}
	}

	// Demo service (Windows-friendly default bind address)
	addr := os.Getenv("SERVICE_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	name := os.Getenv("SERVICE_NAME")
	if name == "" {
		name = "DEFAULT"
	}

	return Config{
		LogDir:           logDir,
		LogLevel:         logLevel,
		Timeout:          timeout,
		UserAgent:        userAgent,
		Method:           method,
		HealthyThreshold: threshold,
		SlackWebhook:     strings.TrimSpace(os.Getenv("SLACK_WEBHOOK")),
		APIKey:           strings.TrimSpace(os.Getenv("RPC_API_KEY")),
		ServiceAddr:      addr,
		ServiceName:      name,
		ServiceMu:        envFloat("SERVICE_MU", 0.95),
		ServiceSigma:     envFloat("SERVICE_SIGMA", 0.2),
		ServiceRPM:       envNonNegInt("SERVICE_RPM", 0),
		ServiceBurst:     envNonNegInt("SERVICE_BURST", 10),
		ServiceKeys:      splitCSV(os.Getenv("SERVICE_API_KEYS")),
	}
}

func splitCSV(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envNonNegInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
