package platform

import (
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/models"
)

// tomlFormatter writes flat message files in the layout go-i18n bundles
// load: active.<locale>.toml with one "key" = "value" per message.
type tomlFormatter struct {
	base
}

func newTOMLFormatter(cfg Config) Formatter {
	return &tomlFormatter{base{cfg: cfg, platform: TOML}}
}

func (f *tomlFormatter) Path(locale string) string {
	return filepath.Join(f.dir(), "active."+locale+".toml")
}

func (f *tomlFormatter) Export(locale string, ds *models.Dataset) (string, error) {
	entries := ds.Entries(locale)
	messages := make(map[string]string, len(entries))
	for _, e := range entries {
		messages[e.Key] = e.Value
	}

	data, err := toml.Marshal(messages)
	if err != nil {
		return "", err
	}

	path := f.Path(locale)
	return path, f.write(path, data)
}
