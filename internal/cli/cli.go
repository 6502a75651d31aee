package cli

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
)

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}

	fs := pflag.NewFlagSet("gen-dtl", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Input, "input", "i", "", "descriptor document (.yaml, .json, .toml, or - for stdin)")
	fs.StringVarP(&cfg.Filename, "output", "o", "-", "output .d.tl file (- for stdout)")
	fs.StringVarP(&cfg.Name, "name", "n", "", "outer module name (default: the document's name)")
	fs.BoolVar(&cfg.Local, "local", false, "declare the module record local instead of global")
	fs.BoolVar(&cfg.Check, "check", false, "fail if the output file is not up to date instead of writing it")
	fs.BoolVar(&cfg.Strict, "strict", false, "treat validation warnings as errors")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	if strings.TrimSpace(cfg.Input) == "" {
		return nil, errors.New("--input is required")
	}
	if cfg.Check && (cfg.Filename == "-" || strings.TrimSpace(cfg.Filename) == "") {
		return nil, errors.New("--check requires --output")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.Newf("unknown --log-level %q", cfg.LogLevel)
	}
	return cfg, nil
}
