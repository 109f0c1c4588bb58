package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configKeys are the flags mirrored into viper so that environment
// variables and the config file can supply them.
var configKeys = []string{
	"name",
	"out",
	"format",
	"preamble",
	"help-flag",
	"input",
	"timeout",
	"verbose",
	"quiet",
}

type cliApp struct {
	stdout     io.Writer
	stderr     io.Writer
	v          *viper.Viper
	configFile string
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(normalizeLegacyArgs(argv))
	return cmd.ExecuteContext(ctx)
}

// setup resolves configuration for cmd and returns a context carrying the
// configured logger.
func (app *cliApp) setup(cmd *cobra.Command) (context.Context, config, error) {
	if err := bindFlags(app.v, cmd.Flags(), configKeys...); err != nil {
		return nil, config{}, err
	}
	cfg, err := loadConfig(app.v, app.configFile)
	if err != nil {
		return nil, config{}, err
	}
	logger := newLogger(app.stderr, cfg.Verbose, cfg.Quiet)
	if cfg.ConfigFile != "" {
		logger.Debug().Str("file", cfg.ConfigFile).Msg("using config file")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logger.WithContext(ctx), cfg, nil
}

func (app *cliApp) convert(cmd *cobra.Command) error {
	ctx, cfg, err := app.setup(cmd)
	if err != nil {
		return err
	}
	c := conversion{cfg: cfg, stdin: cmd.InOrStdin(), stdout: app.stdout}
	_, err = c.run(ctx)
	return err
}

func (app *cliApp) dumpSections(cmd *cobra.Command) error {
	ctx, cfg, err := app.setup(cmd)
	if err != nil {
		return err
	}
	c := conversion{cfg: cfg, stdin: cmd.InOrStdin(), stdout: app.stdout}
	description, options, err := c.sections(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal([]section{description, options})
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	_, err = app.stdout.Write(data)
	return err
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// legacyLongFlagSet lists long flags that may also be spelled with a single
// dash, as the Go flag package allows (-name tool, -out=tool.rst).
var legacyLongFlagSet = map[string]struct{}{
	"name":      {},
	"out":       {},
	"format":    {},
	"preamble":  {},
	"help-flag": {},
	"input":     {},
	"timeout":   {},
	"config":    {},
	"verbose":   {},
	"quiet":     {},
}

func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, args[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || len(arg) <= 2 {
			converted = append(converted, arg)
			continue
		}
		name := arg[1:]
		if idx := strings.Index(name, "="); idx > 0 {
			name = name[:idx]
		}
		if _, ok := legacyLongFlagSet[name]; ok {
			converted = append(converted, "-"+arg)
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified {
		return args
	}
	return converted
}
