package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	cobradoc "github.com/spf13/cobra/doc"
	"github.com/spf13/pflag"
)

const rootLongDesc = `
help2rst runs a command-line tool with --help, splits the output into a short
description and an options listing, and writes them as a reStructuredText
fragment: a titled section followed by a bold "Available Options" literal block.

The first lines of the help output are a banner and are discarded (9 by
default, see --preamble). Empty lines are dropped. The first remaining line
becomes the description; everything after it is copied verbatim into the
literal block.

Settings may also come from HELP2RST_* environment variables, .env files, or
a YAML config file ($HOME/.help2rst.yaml or ./.help2rst.yaml).
`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	app := &cliApp{stdout: stdout, stderr: stderr, v: newViper()}
	cmd := &cobra.Command{
		Use:   "help2rst --name NAME [flags]",
		Short: "Convert a program's --help output to reStructuredText",
		Long:  strings.TrimSpace(rootLongDesc),
		Example: `  help2rst -n csg_call
  help2rst -n csg_call -o docs/csg_call.rst
  help2rst -n "votca_property" --preamble 9 -o -
  some-tool --help | help2rst -n some-tool --input - --preamble 0`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.DisableAutoGenTag = true
	cmd.Version = Version
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.CompletionOptions.DisableDefaultCmd = true

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&app.configFile, "config", "", "config file (default is $HOME/.help2rst.yaml)")
	persistent.BoolP("verbose", "v", false, "log debug details")
	persistent.BoolP("quiet", "q", false, "log warnings and errors only")

	flags := cmd.Flags()
	addHelpSourceFlags(flags)
	flags.StringP("out", "o", "", `output file (default "<name>.<format>", "-" for stdout)`)
	flags.String("format", defaultFormat, "extension of the default output file")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.convert(cmd)
	}

	cmd.AddCommand(newParseCmd(app))
	cmd.AddCommand(newCompletionCmd(cmd))
	cmd.AddCommand(newDocsCmd(cmd))
	return cmd
}

// addHelpSourceFlags registers the flags that locate and parse help text.
// Only the commands that read help text carry them.
func addHelpSourceFlags(flags *pflag.FlagSet) {
	flags.StringP("name", "n", "", "name of the tool to extract the help message from")
	flags.Int("preamble", defaultPreamble, "number of leading help lines to discard")
	flags.String("help-flag", defaultHelpFlag, "argument that makes the tool print its help")
	flags.StringP("input", "i", "", `read help text from a file ("-" for stdin) instead of running the tool`)
	flags.Duration("timeout", 0, "kill the tool after this long (0 disables the limit)")
}

func newParseCmd(app *cliApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse --name NAME [flags]",
		Short: "Print the parsed description and options sections as YAML",
		Long: strings.TrimSpace(`
Parse the help text exactly as the root command does and print the two
sections (header and content) as a YAML list instead of rendering RST.
Useful for checking --preamble against a new tool.
`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addHelpSourceFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return app.dumpSections(cmd)
	}
	return cmd
}

func newCompletionCmd(root *cobra.Command) *cobra.Command {
	const (
		longDesc = `Generate shell completion scripts for help2rst.

The output should be evaluated by your shell. For example:

  # bash
  help2rst completion bash > /usr/local/etc/bash_completion.d/help2rst

  # zsh
  help2rst completion zsh > "${fpath[1]}/_help2rst"

  # fish
  help2rst completion fish | source

  # PowerShell
  help2rst completion powershell | Out-String | Invoke-Expression
`
	)
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  longDesc,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return root.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return root.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return root.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return root.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell %q", args[0])
		}
	}
	return cmd
}

func newDocsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen-docs [directory]",
		Short: "Generate reStructuredText reference docs for the CLI",
		Long: strings.TrimSpace(`
Write an RST file per command (suitable for a Sphinx tree next to the pages
help2rst generates for other tools).

Example:

  help2rst gen-docs ./docs/cli
`),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		target := args[0]
		if target == "" {
			return fmt.Errorf("target directory is required")
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
		return cobradoc.GenReSTTree(root, target)
	}
	return cmd
}
