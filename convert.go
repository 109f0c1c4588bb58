package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	defaultFormat   = "rst"
	defaultHelpFlag = "--help"
)

// conversion turns one program's help text into RST.
type conversion struct {
	cfg    config
	stdin  io.Reader
	stdout io.Writer
}

func (c *conversion) run(ctx context.Context) (string, error) {
	description, options, err := c.sections(ctx)
	if err != nil {
		return "", err
	}
	path := resolveOutputPath(c.cfg)
	if err := writeOutput(path, c.stdout, []byte(formatRST(description, options))); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	zerolog.Ctx(ctx).Info().Str("program", c.cfg.Name).Str("output", path).Msg("wrote RST")
	return path, nil
}

func (c *conversion) sections(ctx context.Context) (section, section, error) {
	raw, err := c.readHelp(ctx)
	if err != nil {
		return section{}, section{}, err
	}
	text, err := decodeHelp(raw)
	if err != nil {
		return section{}, section{}, err
	}
	zerolog.Ctx(ctx).Debug().Int("bytes", len(raw)).Int("preamble", c.cfg.Preamble).Msg("parsing help text")
	return parseHelp(text, c.cfg.Name, parseOptions{Preamble: c.cfg.Preamble})
}

// readHelp returns the raw help text, either from cfg.Input or by running
// the program.
func (c *conversion) readHelp(ctx context.Context) ([]byte, error) {
	switch c.cfg.Input {
	case "":
		return captureHelp(ctx, c.cfg.Name, c.cfg.HelpFlag, c.cfg.Timeout)
	case "-":
		if c.stdin == nil {
			return nil, errors.New("no stdin available for --input -")
		}
		return io.ReadAll(c.stdin)
	default:
		data, err := os.ReadFile(c.cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("read help text: %w", err)
		}
		return data, nil
	}
}

// captureHelp runs name with helpFlag appended and returns its stdout. name
// may carry leading arguments ("tool sub"); it is split on whitespace without
// shell interpretation.
func captureHelp(ctx context.Context, name, helpFlag string, timeout time.Duration) ([]byte, error) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return nil, errEmptyName
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	args := append([]string{}, fields[1:]...)
	if helpFlag != "" {
		args = append(args, helpFlag)
	}
	zerolog.Ctx(ctx).Debug().Str("program", fields[0]).Strs("args", args).Msg("capturing help")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		cerr := &commandError{
			Program:  name,
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			cerr.ExitCode = -1
			cerr.Err = ctxErr
		}
		return nil, cerr
	}
	return stdout.Bytes(), nil
}

// decodeHelp converts captured output to a string. A UTF-8 or UTF-16 byte
// order mark selects the encoding and is dropped; anything else is read as
// UTF-8 with invalid bytes replaced.
func decodeHelp(raw []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", fmt.Errorf("decode help text: %w", err)
	}
	return string(out), nil
}

// resolveOutputPath returns cfg.Out, or "<name>.<format>" when unset.
func resolveOutputPath(cfg config) string {
	if cfg.Out != "" {
		return cfg.Out
	}
	format := strings.TrimPrefix(cfg.Format, ".")
	if format == "" {
		format = defaultFormat
	}
	return cfg.Name + "." + format
}
