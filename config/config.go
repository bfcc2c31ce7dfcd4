package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	"github.com/weedbox/pokerdirector"
	"github.com/weedbox/pokerdirector/blind"
	"github.com/weedbox/pokerdirector/chips"
	"github.com/weedbox/pokerdirector/store"
)

// Config is the complete pokerdirector configuration.
type Config struct {
	Server   ServerSettings
	Store    StoreSettings
	Defaults DefaultSettings
}

type ServerSettings struct {
	Address          string   `hcl:"address,optional"`
	LogLevel         string   `hcl:"log_level,optional"`
	PublicURL        string   `hcl:"public_url,optional"`
	AllowedOrigins   []string `hcl:"allowed_origins,optional"`
	AutosaveInterval int      `hcl:"autosave_interval,optional"` // seconds
	SeatMoveTimeout  int      `hcl:"seat_move_timeout,optional"` // seconds
}

type StoreSettings struct {
	Driver         string `hcl:"driver,optional"`
	DSN            string `hcl:"dsn,optional"`
	RedisAddr      string `hcl:"redis_addr,optional"`
	RedisPassword  string `hcl:"redis_password,optional"`
	RedisDB        int    `hcl:"redis_db,optional"`
	RedisPrefix    string `hcl:"redis_prefix,optional"`
	ShortLinkTTL   int    `hcl:"short_link_ttl,optional"`  // hours, 0 keeps links forever
	ConnectTimeout int    `hcl:"connect_timeout,optional"` // seconds
}

type DefaultSettings struct {
	ChipSet           string `hcl:"chipset,optional"`
	Format            string `hcl:"format,optional"`
	PlayerCount       int    `hcl:"player_count,optional"`
	DurationMins      int    `hcl:"duration_mins,optional"`
	LevelDurationMins int    `hcl:"level_duration_mins,optional"`
	BreakInterval     int    `hcl:"break_interval,optional"`
	IncludeAnte       bool   `hcl:"include_ante,optional"`
	AnteStartLevel    int    `hcl:"ante_start_level,optional"`
}

// fileConfig mirrors Config with optional blocks.
type fileConfig struct {
	Server   *ServerSettings  `hcl:"server,block"`
	Store    *StoreSettings   `hcl:"store,block"`
	Defaults *DefaultSettings `hcl:"defaults,block"`
}

func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Address:          ":8080",
			LogLevel:         "info",
			PublicURL:        "http://localhost:8080",
			AllowedOrigins:   []string{"*"},
			AutosaveInterval: 10,
			SeatMoveTimeout:  pokerdirector.DefaultSeatMoveTimeout,
		},
		Store: StoreSettings{
			Driver:         store.Driver_Memory,
			RedisAddr:      "localhost:6379",
			RedisPrefix:    "pokerdirector",
			ShortLinkTTL:   24 * 30,
			ConnectTimeout: 5,
		},
		Defaults: DefaultSettings{
			ChipSet:           chips.DefaultChipSet.String(),
			Format:            blind.Format_Standard,
			PlayerCount:       9,
			DurationMins:      pokerdirector.DefaultDurationMins,
			LevelDurationMins: 20,
			BreakInterval:     4,
		},
	}
}

/*
Load 讀取設定
  - 設定檔不存在時使用預設值
  - 之後套用 .env 與環境變數
*/
func Load(filename string, envFiles ...string) (*Config, error) {
	cfg, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}

	// .env is optional
	_ = godotenv.Load(envFiles...)

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// LoadFile loads an HCL file on top of the defaults.
func LoadFile(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.merge(fc)
	return cfg, nil
}

// ApplyEnv overrides values from environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	setString := func(dst *string, keys ...string) {
		for _, key := range keys {
			if v := getenv(key); v != "" {
				*dst = v
				return
			}
		}
	}
	setInt := func(dst *int, key string) {
		if v, err := strconv.Atoi(getenv(key)); err == nil {
			*dst = v
		}
	}

	setString(&c.Server.Address, "POKERDIRECTOR_ADDR")
	setString(&c.Server.LogLevel, "POKERDIRECTOR_LOG_LEVEL")
	setString(&c.Server.PublicURL, "POKERDIRECTOR_PUBLIC_URL")
	setInt(&c.Server.AutosaveInterval, "POKERDIRECTOR_AUTOSAVE_INTERVAL")
	if origins := getenv("POKERDIRECTOR_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = strings.Split(origins, ",")
	}

	setString(&c.Store.Driver, "POKERDIRECTOR_STORE")
	setString(&c.Store.DSN, "DATABASE_URL")
	setString(&c.Store.RedisAddr, "REDIS_ADDR")
	setString(&c.Store.RedisPassword, "REDIS_PASSWORD")
	setInt(&c.Store.RedisDB, "REDIS_DB")

	setString(&c.Defaults.ChipSet, "POKERDIRECTOR_CHIPSET")
}

func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Driver:         c.Store.Driver,
		DSN:            c.Store.DSN,
		RedisAddr:      c.Store.RedisAddr,
		RedisPassword:  c.Store.RedisPassword,
		RedisDB:        c.Store.RedisDB,
		RedisPrefix:    c.Store.RedisPrefix,
		ConnectTimeout: time.Duration(c.Store.ConnectTimeout) * time.Second,
	}
}

func (c *Config) ShortLinkTTL() time.Duration {
	return time.Duration(c.Store.ShortLinkTTL) * time.Hour
}

func (c *Config) DirectorOptions() *pokerdirector.DirectorOptions {
	options := pokerdirector.NewDirectorOptions()
	options.AutosaveInterval = c.Server.AutosaveInterval
	if c.Server.SeatMoveTimeout > 0 {
		options.SeatMoveTimeout = c.Server.SeatMoveTimeout
	}
	return options
}

func (c *Config) GenerationOptions() blind.GenerationOptions {
	opts := blind.NewGenerationOptions()
	opts.TournamentFormat = c.Defaults.Format
	opts.ChipSet = chips.ParseOrDefault(c.Defaults.ChipSet)
	if c.Defaults.LevelDurationMins > 0 {
		opts.LevelDurationMins = c.Defaults.LevelDurationMins
	}
	if c.Defaults.BreakInterval > 0 {
		opts.BreakIntervalLevels = c.Defaults.BreakInterval
	}
	if c.Defaults.IncludeAnte {
		opts.IncludeAnte = true
		opts.AnteStartLevel = c.Defaults.AnteStartLevel
		if opts.AnteStartLevel <= 0 {
			opts.AnteStartLevel = 1
		}
	}
	return opts
}

func (c *Config) merge(fc fileConfig) {
	if s := fc.Server; s != nil {
		if s.Address != "" {
			c.Server.Address = s.Address
		}
		if s.LogLevel != "" {
			c.Server.LogLevel = s.LogLevel
		}
		if s.PublicURL != "" {
			c.Server.PublicURL = s.PublicURL
		}
		if len(s.AllowedOrigins) > 0 {
			c.Server.AllowedOrigins = s.AllowedOrigins
		}
		if s.AutosaveInterval != 0 {
			c.Server.AutosaveInterval = s.AutosaveInterval
		}
		if s.SeatMoveTimeout != 0 {
			c.Server.SeatMoveTimeout = s.SeatMoveTimeout
		}
	}

	if s := fc.Store; s != nil {
		if s.Driver != "" {
			c.Store.Driver = s.Driver
		}
		if s.DSN != "" {
			c.Store.DSN = s.DSN
		}
		if s.RedisAddr != "" {
			c.Store.RedisAddr = s.RedisAddr
		}
		if s.RedisPassword != "" {
			c.Store.RedisPassword = s.RedisPassword
		}
		if s.RedisDB != 0 {
			c.Store.RedisDB = s.RedisDB
		}
		if s.RedisPrefix != "" {
			c.Store.RedisPrefix = s.RedisPrefix
		}
		if s.ShortLinkTTL != 0 {
			c.Store.ShortLinkTTL = s.ShortLinkTTL
		}
		if s.ConnectTimeout != 0 {
			c.Store.ConnectTimeout = s.ConnectTimeout
		}
	}

	if d := fc.Defaults; d != nil {
		if d.ChipSet != "" {
			c.Defaults.ChipSet = d.ChipSet
		}
		if d.Format != "" {
			c.Defaults.Format = d.Format
		}
		if d.PlayerCount != 0 {
			c.Defaults.PlayerCount = d.PlayerCount
		}
		if d.DurationMins != 0 {
			c.Defaults.DurationMins = d.DurationMins
		}
		if d.LevelDurationMins != 0 {
			c.Defaults.LevelDurationMins = d.LevelDurationMins
		}
		if d.BreakInterval != 0 {
			c.Defaults.BreakInterval = d.BreakInterval
		}
		c.Defaults.IncludeAnte = d.IncludeAnte
		if d.AnteStartLevel != 0 {
			c.Defaults.AnteStartLevel = d.AnteStartLevel
		}
	}
}
