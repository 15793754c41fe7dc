package config

import (
	"os"

	"github.com/ALEYI17/InfraSight_freqbench/pkg/types"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix         = "BENCHAGG"
	DefaultConfigName = ".benchagg"
)

type Config struct {
	// SummaryFile is the name of the summary written inside the batch directory.
	SummaryFile string `mapstructure:"summaryFile" validate:"required"`
	Pattern     string `mapstructure:"pattern" validate:"required"`
	Variant     string `mapstructure:"variant" validate:"oneof=metrics legacy"`
	LogLevel    string `mapstructure:"logLevel" validate:"oneof=debug info warn error"`
	// FailFast aborts a batch on the first failing file instead of
	// continuing with the rest.
	FailFast bool `mapstructure:"failFast"`
	Lock     bool `mapstructure:"lock"`
}

func Defaults() Config {
	return Config{
		SummaryFile: types.DefaultSummaryFile,
		Pattern:     types.DefaultPattern,
		Variant:     types.VariantMetrics,
		LogLevel:    "info",
		FailFast:    false,
		Lock:        true,
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// AddFlags registers the configuration flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	d := Defaults()
	fs.String("config", "", "config file (default $HOME/.benchagg.yaml)")
	fs.String("summary-file", d.SummaryFile, "name of the summary CSV written by the batch driver")
	fs.String("pattern", d.Pattern, "glob matching benchmark result files in the batch directory")
	fs.String("variant", d.Variant, "result extraction variant (metrics, legacy)")
	fs.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	fs.Bool("fail-fast", d.FailFast, "abort the batch on the first failing file")
	fs.Bool("lock", d.Lock, "hold an exclusive lock on the summary file while appending")
}

var flagKeys = map[string]string{
	"summaryFile": "summary-file",
	"pattern":     "pattern",
	"variant":     "variant",
	"logLevel":    "log-level",
	"failFast":    "fail-fast",
	"lock":        "lock",
}

// LoadConfig resolves the configuration from defaults, the optional config
// file, BENCHAGG_* environment variables and flags, in increasing precedence.
func LoadConfig(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("summaryFile", d.SummaryFile)
	v.SetDefault("pattern", d.Pattern)
	v.SetDefault("variant", d.Variant)
	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("failFast", d.FailFast)
	v.SetDefault("lock", d.Lock)

	v.SetEnvPrefix(EnvPrefix)
	for key := range flagKeys {
		if err := v.BindEnv(key, envName(key)); err != nil {
			return Config{}, err
		}
	}

	if fs != nil {
		for key, name := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	if err := readConfigFile(v, fs); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper, fs *pflag.FlagSet) error {
	var cfgFile string
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			cfgFile = f.Value.String()
		}
	}
	if cfgFile == "" {
		cfgFile = os.Getenv(EnvPrefix + "_CONFIG")
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			// No home directory means no default config file.
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrapf(err, "read config %s", v.ConfigFileUsed())
	}
	return nil
}

func envName(key string) string {
	return EnvPrefix + "_" + toScreamingSnake(key)
}

func toScreamingSnake(key string) string {
	out := make([]byte, 0, len(key)+4)
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c >= 'A' && c <= 'Z' {
			out = append(out, '_', c)
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
