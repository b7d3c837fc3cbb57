package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/binoviz/bino/pkg/errors"
)

// Config holds user defaults from the optional TOML config file.
// Explicit flags always win over config values.
type Config struct {
	WhiteBG   bool   `toml:"white_bg"`
	Grayscale bool   `toml:"gray"`
	Colormap  string `toml:"colormap"`
	Colors    int    `toml:"colors"`
	Decimals  int    `toml:"decimals"`
	Bins      string `toml:"bins"`
	Delimiter string `toml:"delimiter"`

	Serve ServeConfig `toml:"serve"`

	// Palettes are user palettes selectable with --colormap <name>.
	Palettes map[string]Palette `toml:"palettes"`
}

// ServeConfig holds serve mode defaults.
type ServeConfig struct {
	Addr     string `toml:"addr"`
	DataRoot string `toml:"data_root"`
	Cache    string `toml:"cache"`
	TTL      string `toml:"ttl"`
}

// Palette is a user-defined list of 256-color codes.
type Palette struct {
	Codes []int `toml:"codes"`
}

// configPath returns the config file location: $BINO_CONFIG or
// ~/.config/bino/config.toml.
func configPath() string {
	if p := os.Getenv("BINO_CONFIG"); p != "" {
		return p
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// LoadConfig reads the config file at path. A missing file is not an
// error; the zero config is returned.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFlag, err, "cannot parse config %s", path)
	}
	for name, p := range cfg.Palettes {
		if err := errors.ValidatePalette(name, p.Codes); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
