package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

type Config struct {
	Port            int
	Host            string
	LogLevel        string
	LogFormat       string
	MetricsPort     int
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTL        time.Duration
	ParallelWorkers int
	TLSCert         string
	TLSKey          string
	EnableTLS       bool
	Version         bool
}

func ParseFlags() *Config {
	config := &Config{}

	flag.IntVar(&config.Port, "port", 8080, "Server port")
	flag.StringVar(&config.Host, "host", "0.0.0.0", "Server host")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&config.LogFormat, "log-format", "json", "Log format (json, text)")
	flag.IntVar(&config.MetricsPort, "metrics-port", 9090, "Prometheus metrics port")
	flag.StringVar(&config.RedisAddr, "redis-addr", "", "Redis address for the result cache (empty disables caching)")
	flag.StringVar(&config.RedisPassword, "redis-password", "", "Redis password")
	flag.IntVar(&config.RedisDB, "redis-db", 0, "Redis database number")
	flag.DurationVar(&config.CacheTTL, "cache-ttl", 30*time.Minute, "Result cache TTL")
	flag.IntVar(&config.ParallelWorkers, "workers", 1, "Concurrent column cleaning workers")
	flag.StringVar(&config.TLSCert, "tls-cert", "", "Path to TLS certificate")
	flag.StringVar(&config.TLSKey, "tls-key", "", "Path to TLS key")
	flag.BoolVar(&config.EnableTLS, "enable-tls", false, "Enable TLS")
	flag.BoolVar(&config.Version, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nTabular Dataset Cleaning Server\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if config.Version {
		info := GetBuildInfo()
		fmt.Printf("Version: %s\n", info.Version)
		fmt.Printf("Git Commit: %s\n", info.GitCommit)
		fmt.Printf("Build Date: %s\n", info.BuildDate)
		fmt.Printf("Go Version: %s\n", info.GoVersion)
		fmt.Printf("Platform: %s\n", info.Platform)
		os.Exit(0)
	}

	return config
}
