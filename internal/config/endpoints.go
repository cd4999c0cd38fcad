package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrNoEndpoints = errors.New("no endpoints configured")

// EndpointFile is the monitored system: the service URLs in order, plus an
// optional method and params overriding the defaults.
type EndpointFile struct {
	Method    string   `yaml:"method,omitempty" toml:"method,omitempty"`
	Params    []string `yaml:"params,omitempty" toml:"params,omitempty"`
	Endpoints []string `yaml:"endpoints" toml:"endpoints"`
}

// LoadEndpoints reads the endpoint list from path. Files ending in .yaml,
// .yml or .toml are structured documents; anything else uses the counted
// list format: a first line holding the number of services followed by that
// many URLs, one per line.
func LoadEndpoints(path string) (*EndpointFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read endpoints: %w", err)
	}

	var f EndpointFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		eps, err := parseCountedList(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		f.Endpoints = eps
	}

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

func parseCountedList(data []byte) ([]string, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("missing service count: %w", ErrNoEndpoints)
	}
	first := strings.TrimSpace(sc.Text())
	n, err := strconv.Atoi(first)
	if err != nil {
		return nil, fmt.Errorf("invalid service count %q", first)
	}
	if n <= 0 {
		return nil, ErrNoEndpoints
	}

	// n comes from the file; grow as URLs are read
	var out []string
	for len(out) < n && sc.Scan() {
		out = append(out, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) < n {
		return nil, fmt.Errorf("expected %d service URLs, found %d", n, len(out))
	}
	return out, nil
}

func (f *EndpointFile) validate() error {
	f.Method = strings.TrimSpace(f.Method)
	if len(f.Endpoints) == 0 {
		return ErrNoEndpoints
	}
	for i, raw := range f.Endpoints {
		raw = strings.TrimSpace(raw)
		if !isValidHTTPURL(raw) {
			return fmt.Errorf("endpoint %d: invalid URL %q", i+1, raw)
		}
		f.Endpoints[i] = raw
	}
	return nil
}

func isValidHTTPURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
