// Package platform renders datasets into platform-native string resources.
//
// Each platform has a Formatter that knows where the file for a locale goes
// and how entries are serialized. Formatters are selected from a static
// registry keyed by Platform.
package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/models"
)

// Platform identifies a target output format.
type Platform string

const (
	// IOS writes Localizable.strings files inside <locale>.lproj folders.
	IOS Platform = "ios"
	// Android writes strings.xml files inside values[-qualifier] folders.
	Android Platform = "android"
	// YAML writes <locale>.yml files rooted at the locale.
	YAML Platform = "yml"
	// JSON writes <locale>.json files rooted at the locale.
	JSON Platform = "json"
	// TOML writes active.<locale>.toml message files for go-i18n.
	TOML Platform = "toml"
)

// ErrUnsupportedPlatform indicates a platform id with no formatter.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// ErrKeyConflict indicates a key that is both a value and a parent of other
// keys in a nested format.
var ErrKeyConflict = errors.New("conflicting nested keys")

// ErrUnsafePath is returned when a locale would place a file outside the
// formatter's directory.
var ErrUnsafePath = errors.New("path outside the output directory")

// Config configures the output location of a formatter.
type Config struct {
	// Fs is the filesystem files are written to. Defaults to the OS filesystem.
	Fs afero.Fs
	// Root is the output root directory.
	Root string
	// PlatformDir adds a <platform> subdirectory under Root, used when several
	// platforms are exported in one run.
	PlatformDir bool
	// Suffix is an extra directory below the platform directory, used to keep
	// independently exported sources apart.
	Suffix string
	// DefaultLocale is the locale stored in unqualified folders, when the
	// platform has such a notion (Android values/).
	DefaultLocale string
}

// Formatter writes the entries of one locale into one platform file.
type Formatter interface {
	// Platform returns the platform the formatter renders.
	Platform() Platform
	// Path returns the file the locale is exported to.
	Path(locale string) string
	// Export writes the locale file and returns its path. Keys with no value
	// for the locale are left out. An existing file is overwritten.
	Export(locale string, ds *models.Dataset) (string, error)
}

// Factory builds a formatter for a configuration.
type Factory func(cfg Config) Formatter

var registry = map[Platform]Factory{
	IOS:     newIOSFormatter,
	Android: newAndroidFormatter,
	YAML:    newYAMLFormatter,
	JSON:    newJSONFormatter,
	TOML:    newTOMLFormatter,
}

// all lists the supported platforms in export order.
var all = []Platform{IOS, Android, YAML, JSON, TOML}

// All returns every supported platform.
func All() []Platform {
	out := make([]Platform, len(all))
	copy(out, all)
	return out
}

// ParsePlatform normalizes s and checks it names a supported platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if _, err := Lookup(p); err != nil {
		return "", err
	}
	return p, nil
}

// Lookup returns the factory registered for p.
func Lookup(p Platform) (Factory, error) {
	f, ok := registry[p]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, string(p))
	}
	return f, nil
}

// New builds the formatter for p.
func New(p Platform, cfg Config) (Formatter, error) {
	factory, err := Lookup(p)
	if err != nil {
		return nil, err
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	return factory(cfg), nil
}

// base holds what every formatter shares: its location and the write path.
type base struct {
	cfg      Config
	platform Platform
}

func (b base) Platform() Platform {
	return b.platform
}

// dir returns <root>[/<platform>][/<suffix>].
func (b base) dir() string {
	dir := b.cfg.Root
	if b.cfg.PlatformDir {
		dir = filepath.Join(dir, string(b.platform))
	}
	if b.cfg.Suffix != "" {
		dir = filepath.Join(dir, b.cfg.Suffix)
	}
	return dir
}

func (b base) write(path string, data []byte) error {
	rel, err := filepath.Rel(b.dir(), path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q", ErrUnsafePath, path)
	}
	if err := b.cfg.Fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return afero.WriteFile(b.cfg.Fs, path, data, 0644)
}
