package policymcp

// Option overrides a single configuration value after the file and
// environment have been applied. The command line maps its flags to options.
type Option func(*Config)

// WithStorePath sets the path of the JSON user store.
func WithStorePath(path string) Option {
	return func(c *Config) {
		setIfNotEmpty(&c.StorePath, path)
	}
}

// WithCreateStore makes startup create an empty store when none exists.
func WithCreateStore(create bool) Option {
	return func(c *Config) {
		if create {
			c.CreateStore = true
		}
	}
}

// WithDocumentPath sets the location of the policy PDF.
func WithDocumentPath(path string) Option {
	return func(c *Config) {
		setIfNotEmpty(&c.DocumentPath, path)
	}
}

// WithTransport selects TransportStdio or TransportHTTP.
func WithTransport(transport string) Option {
	return func(c *Config) {
		setIfNotEmpty(&c.Transport, transport)
	}
}

// WithListen sets the listen address of the http transport.
func WithListen(addr string) Option {
	return func(c *Config) {
		setIfNotEmpty(&c.Listen, addr)
	}
}

// WithLogLevel sets the minimum log level.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		setIfNotEmpty(&c.LogLevel, level)
	}
}

// WithLogPretty switches to human-readable console logs.
func WithLogPretty(pretty bool) Option {
	return func(c *Config) {
		if pretty {
			c.LogPretty = true
		}
	}
}
