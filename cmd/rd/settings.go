package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys. Each is also a persistent flag (with - for _) and an RD_
// environment variable.
const (
	keyLogLevel  = "log_level"
	keyLogFormat = "log_format"
	keyEngine    = "engine"
	keyWidth     = "width"
	keyHeight    = "height"
	keySeed      = "seed"
)

func bindSettings(v *viper.Viper, fs *pflag.FlagSet) {
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("log-format", "text", "log format: text or json")
	fs.String("engine", "grayscott", "engine used for new and loaded patterns")
	fs.Int("width", 128, "arena width in cells")
	fs.Int("height", 128, "arena height in cells")
	fs.Int64("seed", 1, "seed for the initial pattern")

	for _, key := range []string{keyLogLevel, keyLogFormat, keyEngine, keyWidth, keyHeight, keySeed} {
		_ = v.BindPFlag(key, fs.Lookup(strings.ReplaceAll(key, "_", "-")))
	}
}

// loadSettings reads the settings file and environment. An explicit path must
// exist; the default location is optional.
func loadSettings(v *viper.Viper, path string) error {
	v.SetEnvPrefix("RD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "rd"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read settings: %w", err)
		}
	}
	return nil
}

func engineOptions(v *viper.Viper) map[string]string {
	return map[string]string{
		"w":    strconv.Itoa(v.GetInt(keyWidth)),
		"h":    strconv.Itoa(v.GetInt(keyHeight)),
		"seed": strconv.FormatInt(v.GetInt64(keySeed), 10),
	}
}
