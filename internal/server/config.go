package server

import (
	"time"

	"github.com/inferloop/tabclean/pkg/constants"
)

// Config contains server configuration
type Config struct {
	Host            string        `yaml:"host" json:"host"`
	Port            int           `yaml:"port" json:"port"`
	MetricsPort     int           `yaml:"metrics_port" json:"metrics_port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" json:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	EnableMetrics   bool          `yaml:"enable_metrics" json:"enable_metrics"`
	EnableCORS      bool          `yaml:"enable_cors" json:"enable_cors"`
	MaxRequestSize  int64         `yaml:"max_request_size" json:"max_request_size"`
	TLSCertFile     string        `yaml:"tls_cert_file,omitempty" json:"tls_cert_file,omitempty"`
	TLSKeyFile      string        `yaml:"tls_key_file,omitempty" json:"tls_key_file,omitempty"`
}

// getDefaultConfig returns the default server configuration
func getDefaultConfig() *Config {
	return &Config{
		Host:            constants.DefaultHost,
		Port:            constants.DefaultPort,
		MetricsPort:     constants.DefaultMetricsPort,
		ReadTimeout:     constants.DefaultReadTimeout,
		WriteTimeout:    constants.DefaultWriteTimeout,
		IdleTimeout:     constants.DefaultIdleTimeout,
		ShutdownTimeout: constants.DefaultShutdownTimeout,
		EnableMetrics:   true,
		EnableCORS:      true,
		MaxRequestSize:  constants.MaxUploadSize,
	}
}
