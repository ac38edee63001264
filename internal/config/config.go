package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataFile       string   `yaml:"data_file" json:"data_file"`
	DateFormat     string   `yaml:"date_format" json:"date_format"`
	AutoSaveOnExit bool     `yaml:"auto_save_on_exit" json:"auto_save_on_exit"`
	BackupDir      string   `yaml:"backup_dir" json:"backup_dir"`
	UI             UIConfig `yaml:"ui" json:"ui"`
}

type UIConfig struct {
	NoColor          bool `yaml:"no_color" json:"no_color"`
	DescriptionWidth int  `yaml:"description_width" json:"description_width"`
}

func (u *UIConfig) ApplyDefaults() {
	if u.DescriptionWidth <= 0 {
		u.DescriptionWidth = 25
	}
}

func (c *Config) ApplyDefaults() {
	if c.DataFile == "" {
		c.DataFile = "tasks.txt"
	}
	if c.DateFormat == "" {
		c.DateFormat = "2006-01-02"
	}
	if c.BackupDir == "" {
		c.BackupDir = "backups"
	}
	c.UI.ApplyDefaults()
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// Load reads a YAML config file. A missing file is not an error; the
// defaults are returned instead.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}

// Resolve loads path and then applies environment overrides.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	return cfg, nil
}
