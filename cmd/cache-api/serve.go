package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arpan-rai/Redis-Caching-API/internal/config"
)

type serveOptions struct {
	configPath string
	redis      string
	addr       string
	backend    string
	logLevel   string
	pretty     bool
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the cache API server",
		Long:  "Run the HTTP server. Settings come from the config file, then the environment, then flags.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts, cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	opts.addFlags(cmd.Flags())

	return cmd
}

func (o *serveOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&o.redis, "redis", "", "Redis connection string (host:port,password=... or redis:// URL)")
	fs.StringVar(&o.addr, "addr", "", "HTTP listen address")
	fs.StringVar(&o.backend, "backend", "", "Cache store backend: redis or memory")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.BoolVar(&o.pretty, "pretty", false, "Human-readable console logs")
}

// loadConfig applies the environment and then explicitly set flags over
// the config file, then validates the result.
func loadConfig(opts serveOptions, flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(nil)

	if flags.Changed("redis") {
		cfg.Redis.ConnectionString = opts.redis
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = opts.addr
	}
	if flags.Changed("backend") {
		cfg.Cache.Backend = opts.backend
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("pretty") {
		cfg.Log.Pretty = opts.pretty
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
