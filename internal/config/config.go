// Package config loads CLI settings from flags, the environment and an
// optional .env file. Flags win over environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize"
	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/merge"
)

// EnvPrefix prefixes every environment variable, e.g. ADLOCALIZE_OUTPUT_PATH.
const EnvPrefix = "ADLOCALIZE"

// DefaultEnvFile is loaded when present and no other env file is requested.
const DefaultEnvFile = ".env"

// Flag names.
const (
	FlagOutputPath = "output-path"
	FlagOnly       = "only"
	FlagMerge      = "merge"
	FlagDriveKey   = "drive-key"
	FlagSheets     = "sheets"
	FlagToken      = "token"
	FlagDebug      = "debug"
	FlagEnvFile    = "env-file"
)

// Config holds the settings of one CLI run. Empty values mean "not set".
type Config struct {
	// Files are the local input files given as arguments.
	Files []string
	// OutputPath is the export root.
	OutputPath string
	// Only restricts the exported platforms.
	Only []string
	// Merge is the merge policy name.
	Merge string
	// DriveKey selects a remote spreadsheet; local files are then ignored.
	DriveKey string
	// Sheets lists the sheet ids to download from the spreadsheet.
	Sheets []string
	// Token is sent as bearer token when downloading.
	Token string
	// Debug enables debug logs.
	Debug bool
}

// BindFlags registers the CLI flags on flags.
func BindFlags(flags *pflag.FlagSet) {
	flags.StringP(FlagOutputPath, "o", "", fmt.Sprintf("export folder (default %q)", adlocalize.DefaultOutputPath))
	flags.StringSlice(FlagOnly, nil, "only export these platforms (ios, android, yml, json, toml)")
	flags.String(FlagMerge, "", "merge several inputs with this policy: replace or keep")
	flags.StringP(FlagDriveKey, "k", "", "spreadsheet key to download instead of local files")
	flags.StringSliceP(FlagSheets, "s", nil, "sheet ids to download from the spreadsheet")
	flags.String(FlagToken, "", "bearer token for the spreadsheet download")
	flags.BoolP(FlagDebug, "d", false, "print debug logs")
	flags.String(FlagEnvFile, "", fmt.Sprintf("env file to load (default %q when present)", DefaultEnvFile))
}

// Load reads the env file, then resolves every setting from flags and
// ADLOCALIZE_* environment variables.
func Load(flags *pflag.FlagSet, args []string) (*Config, error) {
	envFile, err := flags.GetString(FlagEnvFile)
	if err != nil {
		return nil, err
	}
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	cfg := &Config{
		Files:      args,
		OutputPath: strings.TrimSpace(v.GetString(FlagOutputPath)),
		Only:       splitList(v.GetStringSlice(FlagOnly)),
		Merge:      strings.TrimSpace(v.GetString(FlagMerge)),
		DriveKey:   strings.TrimSpace(v.GetString(FlagDriveKey)),
		Sheets:     splitList(v.GetStringSlice(FlagSheets)),
		Token:      strings.TrimSpace(v.GetString(FlagToken)),
		Debug:      v.GetBool(FlagDebug),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Merge != "" {
		if _, err := merge.ParsePolicy(c.Merge); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if len(c.Sheets) > 0 && c.DriveKey == "" {
		return errors.New("config: --sheets requires --drive-key")
	}
	return nil
}

// Options converts the settings into pipeline options. Unset values stay
// absent so that the pipeline applies its own defaults.
func (c *Config) Options() adlocalize.Options {
	var opts adlocalize.Options
	if c.OutputPath != "" {
		opts.OutputPath = adlocalize.String(c.OutputPath)
	}
	opts.Platforms = c.Only
	if c.Merge != "" {
		// Checked in validate.
		p, _ := merge.ParsePolicy(c.Merge)
		opts.Merge = adlocalize.Policy(p)
	}
	return opts
}

func loadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: loading %s: %w", path, err)
	}
	return nil
}

// splitList flattens comma separated items, as environment variables hold
// lists like "ios,android".
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
