// cmd/preflight/main.go
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/hamed0406/rpcmon/internal/config"
)

func main() {
	if failed := preflight(os.Stdout, os.Stderr, os.Getenv, os.Args[1:]); failed {
		os.Exit(1)
	}
}

// preflight checks the environment (and the endpoint files given as args)
// before a scheduled rpcmon run. It reports whether any check failed.
func preflight(stdout, stderr io.Writer, getenv func(string) string, files []string) (failed bool) {
	fail := func(msg string) {
		fmt.Fprintln(stderr, color.RedString("✖"), msg)
		failed = true
	}
	warn := func(msg string) { fmt.Fprintln(stderr, color.YellowString("⚠"), msg) }
	ok := func(msg string) { fmt.Fprintln(stdout, color.GreenString("✔"), msg) }

	env := func(k string) string { return strings.TrimSpace(getenv(k)) }

	if v := env("TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err != nil || ms <= 0 {
			fail("TIMEOUT_MS must be a positive integer of milliseconds, got " + strconv.Quote(v))
		} else {
			ok("TIMEOUT_MS=" + v)
		}
	}

	if v := env("HEALTHY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err != nil || f <= 0 || f > 1 {
			fail("HEALTHY_THRESHOLD must be in (0, 1], got " + strconv.Quote(v))
		} else {
			ok("HEALTHY_THRESHOLD=" + v)
		}
	}

	switch v := strings.ToLower(env("LOG_LEVEL")); v {
	case "", "debug", "info", "warn", "error":
	default:
		fail("LOG_LEVEL " + strconv.Quote(v) + " is not one of debug, info, warn, error.")
	}

	if env("LOG_DIR") == "" {
		warn("LOG_DIR empty — logs will be written to ./logs.")
	} else {
		ok("LOG_DIR=" + env("LOG_DIR"))
	}

	if env("SLACK_WEBHOOK") == "" {
		warn("SLACK_WEBHOOK empty — run summaries will not be posted to Slack.")
	} else if !strings.HasPrefix(env("SLACK_WEBHOOK"), "https://") {
		fail("SLACK_WEBHOOK must be an https URL.")
	} else {
		ok("SLACK_WEBHOOK present")
	}

	if keys := env("SERVICE_API_KEYS"); keys != "" && strings.Contains(keys, " ") {
		warn("SERVICE_API_KEYS contains spaces; use comma-separated with no spaces, e.g. key1,key2")
	}
	if env("SERVICE_API_KEYS") != "" && env("RPC_API_KEY") == "" {
		warn("SERVICE_API_KEYS set but RPC_API_KEY empty — a local monitor run will get -32001 Unauthorized.")
	}

	for _, path := range files {
		f, err := config.LoadEndpoints(path)
		if err != nil {
			fail(err.Error())
			continue
		}
		ok(fmt.Sprintf("%s: %d endpoint(s)", path, len(f.Endpoints)))
	}

	if !failed {
		ok("preflight passed")
	}
	return failed
}
