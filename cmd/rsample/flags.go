package main

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shpandrak/shpansample/sampler"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	SizeKey      = "size"
	SeedKey      = "seed"
	FormatKey    = "format"
	SkipBlankKey = "skip-blank"
	InputKey     = "input"
	ConfigKey    = "config"
	VerboseKey   = "verbose"

	envPrefix = "RSAMPLE"
)

const (
	FormatLines = "lines"
	FormatJson  = "json"
	FormatYaml  = "yaml"
)

const (
	InputLines     = "lines"
	InputJsonArray = "json-array"
)

var (
	allFormats = []string{FormatLines, FormatJson, FormatYaml}
	allInputs  = []string{InputLines, InputJsonArray}
)

var (
	errInvalidFormat = errors.New("invalid output format")
	errInvalidInput  = errors.New("invalid input kind")
)

func AddFlags(flags *pflag.FlagSet) {
	flags.IntP(SizeKey, "n", 10, "Sample size")
	flags.Uint64(SeedKey, 0, "Seed for a reproducible sample, 0 picks a random one")
	flags.String(FormatKey, FormatLines, "Output format, one of "+strings.Join(allFormats, ", "))
	flags.String(InputKey, InputLines, "How the input is split into items, one of "+strings.Join(allInputs, ", "))
	flags.Bool(SkipBlankKey, false, "Ignore empty lines")
	flags.String(ConfigKey, "", "Config file with the same keys as the flags")
	flags.BoolP(VerboseKey, "v", false, "Log diagnostics to stderr")
}

type Config struct {
	Size      int
	Seed      uint64
	Format    string
	Input     string
	SkipBlank bool
	Verbose   bool
	Files     []string
}

// ParseFlags resolves the config from flags, RSAMPLE_* environment variables and the optional config file,
// in that order of precedence.
func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	if configFile := v.GetString(ConfigKey); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed reading config file %s", configFile)
		}
	}

	config := &Config{
		Size:      v.GetInt(SizeKey),
		Seed:      v.GetUint64(SeedKey),
		Format:    v.GetString(FormatKey),
		Input:     v.GetString(InputKey),
		SkipBlank: v.GetBool(SkipBlankKey),
		Verbose:   v.GetBool(VerboseKey),
		Files:     args,
	}

	if config.Size < 0 {
		return nil, errors.Wrapf(sampler.ErrInvalidSize, "--%s must not be negative, got %d", SizeKey, config.Size)
	}
	if !slices.Contains(allFormats, config.Format) {
		return nil, errors.Wrapf(errInvalidFormat, "--%s must be one of %s, got %q", FormatKey, strings.Join(allFormats, ", "), config.Format)
	}
	if !slices.Contains(allInputs, config.Input) {
		return nil, errors.Wrapf(errInvalidInput, "--%s must be one of %s, got %q", InputKey, strings.Join(allInputs, ", "), config.Input)
	}
	return config, nil
}
