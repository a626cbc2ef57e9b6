package postgres

import "time"

// ClientOption configures Client.
type ClientOption func(*ClientConfig)

// ClientConfig holds PostgreSQL configuration.
type ClientConfig struct {
	Host        string
	Port        int
	Database    string
	User        string
	Password    string
	SSLMode     string
	MaxConns    int32
	MinConns    int32
	DialTimeout time.Duration
}

// WithHost sets database host.
func WithHost(host string) ClientOption {
	return func(c *ClientConfig) {
		c.Host = host
	}
}

// WithPort sets database port.
func WithPort(port int) ClientOption {
	return func(c *ClientConfig) {
		c.Port = port
	}
}

// WithDatabase sets database name.
func WithDatabase(database string) ClientOption {
	return func(c *ClientConfig) {
		c.Database = database
	}
}

// WithCredentials sets username and password.
func WithCredentials(user, password string) ClientOption {
	return func(c *ClientConfig) {
		c.User = user
		c.Password = password
	}
}

// WithSSLMode sets sslmode (disable, require, verify-full...).
func WithSSLMode(mode string) ClientOption {
	return func(c *ClientConfig) {
		c.SSLMode = mode
	}
}

// WithPoolSize sets min and max pool connections.
func WithPoolSize(min, max int32) ClientOption {
	return func(c *ClientConfig) {
		c.MinConns = min
		c.MaxConns = max
	}
}

// WithDialTimeout sets connect timeout.
func WithDialTimeout(d time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.DialTimeout = d
	}
}
