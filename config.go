package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. HELP2RST_PREAMBLE.
const envPrefix = "HELP2RST"

// config is the resolved configuration for one invocation. Values are taken
// in order of precedence from flags, HELP2RST_* environment variables, .env
// files, the config file and the built-in defaults.
type config struct {
	Name     string
	Out      string
	Format   string
	Preamble int
	HelpFlag string
	Input    string
	Timeout  time.Duration
	Verbose  bool
	Quiet    bool

	// ConfigFile is the config file that was read, if any.
	ConfigFile string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("format", defaultFormat)
	v.SetDefault("preamble", defaultPreamble)
	v.SetDefault("help-flag", defaultHelpFlag)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// bindFlags binds every named flag that exists in flags to the viper key of
// the same name.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(name, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// loadConfig reads .env files and the config file into v and returns the
// merged configuration. A missing default config file is not an error; a
// missing explicit one is.
func loadConfig(v *viper.Viper, configFile string) (config, error) {
	loadEnvFiles()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".help2rst")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	preamble, err := cast.ToIntE(v.Get("preamble"))
	if err != nil {
		return config{}, fmt.Errorf("%w: %v", errInvalidPreamble, err)
	}
	timeout, err := cast.ToDurationE(v.Get("timeout"))
	if err != nil {
		return config{}, fmt.Errorf("%w: %v", errInvalidTimeout, err)
	}

	cfg := config{
		Name:       strings.TrimSpace(v.GetString("name")),
		Out:        v.GetString("out"),
		Format:     v.GetString("format"),
		Preamble:   preamble,
		HelpFlag:   v.GetString("help-flag"),
		Input:      v.GetString("input"),
		Timeout:    timeout,
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		ConfigFile: v.ConfigFileUsed(),
	}
	if cfg.Name == "" {
		return config{}, fmt.Errorf("%w (set --name or %s_NAME)", errEmptyName, envPrefix)
	}
	if cfg.Preamble < 0 {
		return config{}, fmt.Errorf("%w: %d", errInvalidPreamble, cfg.Preamble)
	}
	if cfg.Timeout < 0 {
		return config{}, fmt.Errorf("%w: %s is negative", errInvalidTimeout, cfg.Timeout)
	}
	return cfg, nil
}

// loadEnvFiles loads .env.local then .env into the process environment.
// godotenv never overwrites a variable that is already set, so the real
// environment beats .env.local, which beats .env.
func loadEnvFiles() {
	for _, name := range []string{".env.local", ".env"} {
		_ = godotenv.Load(name)
	}
}
