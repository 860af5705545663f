package policymcp

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Version of the server, set at build time via -ldflags.
var Version = "1.0.0"

// Transports understood by the server.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds everything the server needs at startup.
type Config struct {
	Name      string
	Transport string // "stdio" or "http"
	Listen    string // address for the http transport

	StorePath   string
	CreateStore bool // create an empty store when the file is missing

	DocumentPath string

	LogLevel  string // debug, info, warn, error
	LogPretty bool
}

// DefaultConfig returns the configuration used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		Name:      "policymcp",
		Transport: TransportStdio,
		Listen:    ":8080",
		StorePath: "data/users.json",
		LogLevel:  "info",
	}
}

type hclFile struct {
	Server   *hclServer   `hcl:"server,block"`
	Store    *hclStore    `hcl:"store,block"`
	Document *hclDocument `hcl:"document,block"`
	Log      *hclLog      `hcl:"log,block"`
}

type hclServer struct {
	Name      string `hcl:"name,optional"`
	Transport string `hcl:"transport,optional"`
	Listen    string `hcl:"listen,optional"`
}

type hclStore struct {
	Path   string `hcl:"path"`
	Create bool   `hcl:"create,optional"`
}

type hclDocument struct {
	Path string `hcl:"path"`
}

type hclLog struct {
	Level  string `hcl:"level,optional"`
	Pretty bool   `hcl:"pretty,optional"`
}

// LoadConfig builds a Config from defaults, the optional HCL file at path,
// POLICYMCP_* environment variables and finally opts, in that order of
// precedence. The result is validated.
func LoadConfig(path string, opts ...Option) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) decodeFile(path string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("config: parsing %s: %w", path, diags)
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return fmt.Errorf("config: decoding %s: %w", path, diags)
	}

	if s := parsed.Server; s != nil {
		setIfNotEmpty(&c.Name, s.Name)
		setIfNotEmpty(&c.Transport, s.Transport)
		setIfNotEmpty(&c.Listen, s.Listen)
	}
	if s := parsed.Store; s != nil {
		c.StorePath = s.Path
		c.CreateStore = s.Create
	}
	if d := parsed.Document; d != nil {
		c.DocumentPath = d.Path
	}
	if l := parsed.Log; l != nil {
		setIfNotEmpty(&c.LogLevel, l.Level)
		c.LogPretty = l.Pretty
	}
	return nil
}

func (c *Config) applyEnv() error {
	setIfNotEmpty(&c.StorePath, os.Getenv("POLICYMCP_STORE_PATH"))
	setIfNotEmpty(&c.DocumentPath, os.Getenv("POLICYMCP_DOCUMENT_PATH"))
	setIfNotEmpty(&c.Transport, os.Getenv("POLICYMCP_TRANSPORT"))
	setIfNotEmpty(&c.Listen, os.Getenv("POLICYMCP_LISTEN"))
	setIfNotEmpty(&c.LogLevel, os.Getenv("POLICYMCP_LOG_LEVEL"))

	if v := os.Getenv("POLICYMCP_LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: POLICYMCP_LOG_PRETTY: invalid boolean %q", v)
		}
		c.LogPretty = b
	}
	return nil
}

// Validate checks that the configuration is usable. It does not touch the
// filesystem; see registry.FileStore.Init and policydoc.Resource.Check.
func (c *Config) Validate() error {
	c.Transport = strings.ToLower(c.Transport)
	switch c.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.Listen == "" {
			return fmt.Errorf("config: listen address is required for the http transport")
		}
	default:
		return fmt.Errorf("config: unknown transport %q, expected %q or %q", c.Transport, TransportStdio, TransportHTTP)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}

	if c.StorePath == "" {
		return fmt.Errorf("config: store path is required")
	}
	if c.DocumentPath == "" {
		return fmt.Errorf("config: document path is required")
	}
	return nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
