// # help2rst
//
// `help2rst` turns the `--help` output of a command-line tool into a
// reStructuredText fragment that can be dropped into a Sphinx tree. It was
// written for tools that print a fixed banner ahead of their description,
// such as the VOTCA programs:
//
//	==================================================
//	========   VOTCA (http://www.votca.org)   ========
//	==================================================
//
//	please submit bugs to ...
//
//	votca_property, version 2021
//	votca_tools, version 2021
//
//	Helper for parsing XML files
//
//	Allowed options:
//	  -h [ --help ]  display this help and exit
//
// becomes
//
//	votca_property
//	##############
//	Helper for parsing XML files
//
//	**Available Options**
//	::
//	  Allowed options:
//	    -h [ --help ]  display this help and exit
//
// ## How the help text is read
//
//   - the first 9 lines are discarded without looking at them (`--preamble`
//     changes the count);
//   - empty lines are dropped, lines holding only spaces are kept;
//   - the first remaining line is the description;
//   - every later line is copied into the literal block with a two-space
//     indent.
//
// Help text with nothing left after these steps is rejected with a
// "help text too short" error rather than producing an empty page.
//
// ## Usage
//
//	help2rst -n csg_call                 # writes csg_call.rst
//	help2rst -n csg_call -o docs/csg_call.rst
//	help2rst -n csg_call -o -            # stdout
//	help2rst parse -n csg_call           # show the parsed sections as YAML
//
// The tool is run as `<name> --help` without a shell; `--help-flag` changes
// the argument and `--input FILE` reads saved help text instead. A non-zero
// exit status from the tool is an error and nothing is written.
//
// ## Configuration
//
// Every flag can also be set through a `HELP2RST_` environment variable
// (`HELP2RST_PREAMBLE=12`), a `.env.local` or `.env` file in the working
// directory, or `.help2rst.yaml` in `$HOME` or the working directory
// (`--config` points at another file). Flags win over the environment, which
// wins over `.env.local`, then `.env`, then the config file. `LOG_LEVEL` and `NO_COLOR` control logging.
//
// ## Shell Completion and CLI Docs
//
//	help2rst completion bash > /usr/local/etc/bash_completion.d/help2rst
//	help2rst gen-docs ./docs/cli
//
// `gen-docs` writes one `.rst` file per help2rst command.
package main
