package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/mines"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// [Duration] implements [json.Unmarshaler]. Both "15s" and a plain number of
// nanoseconds are accepted.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		return err
	default:
		return errors.New("invalid duration")
	}
}

type BoardConfig struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MineCount int `json:"mine_count"`
}

func (b BoardConfig) Params() mines.GameParams {
	return mines.GameParams{
		Width:     b.Width,
		Height:    b.Height,
		MineCount: b.MineCount,
	}
}

type Config struct {
	Mode            string      `json:"mode"`
	Addr            string      `json:"addr"`
	LogFile         string      `json:"log_file,omitempty"`
	LogLevel        string      `json:"log_level"`
	StorePath       string      `json:"store_path"`
	CORSOrigins     []string    `json:"cors_origins,omitempty"`
	ShutdownTimeout Duration    `json:"shutdown_timeout"`
	Board           BoardConfig `json:"board"`
}

func Default() *Config {
	return &Config{
		Mode:            "development",
		Addr:            ":8080",
		LogLevel:        "info",
		StorePath:       "sweeper.db",
		ShutdownTimeout: Duration{15 * time.Second},
		Board: BoardConfig{
			Width:     9,
			Height:    9,
			MineCount: 10,
		},
	}
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":             c.Mode,
		"addr":             c.Addr,
		"log_file":         c.LogFile,
		"log_level":        c.LogLevel,
		"store_path":       c.StorePath,
		"cors_origins":     c.CORSOrigins,
		"shutdown_timeout": c.ShutdownTimeout.String(),
		"board":            c.Board.Params().String(),
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) Level() (logrus.Level, error) {
	if c.LogLevel == "" {
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(c.LogLevel)
}

func (c Config) Validate() error {
	if err := c.Board.Params().Validate(); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func Read(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}

func Write(path string, config *Config) error {
	b, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// Load reads the config file at path on top of [Default] and applies
// SWEEPER_* environment overrides. A missing file is created with the
// defaults.
func Load(path string) (*Config, error) {
	config := Default()
	err := Read(path, config)
	if errors.Is(err, fs.ErrNotExist) {
		if err := Write(path, config); err != nil {
			return nil, fmt.Errorf("unable to write default config: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("unable to read config %s: %w", path, err)
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnv(c *Config) error {
	for key, dst := range map[string]*string{
		"SWEEPER_MODE":       &c.Mode,
		"SWEEPER_ADDR":       &c.Addr,
		"SWEEPER_LOG_FILE":   &c.LogFile,
		"SWEEPER_LOG_LEVEL":  &c.LogLevel,
		"SWEEPER_STORE_PATH": &c.StorePath,
	} {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	for key, dst := range map[string]*int{
		"SWEEPER_BOARD_WIDTH":      &c.Board.Width,
		"SWEEPER_BOARD_HEIGHT":     &c.Board.Height,
		"SWEEPER_BOARD_MINE_COUNT": &c.Board.MineCount,
	} {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("unable to convert %s to int: %w", key, err)
		}
		*dst = n
	}
	return nil
}
