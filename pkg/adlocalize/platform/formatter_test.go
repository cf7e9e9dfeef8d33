package platform

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/models"
)

// sample is the dataset of the greeting/farewell example plus a key that has
// no French column at all.
func sample() *models.Dataset {
	b := models.NewBuilder("sample.csv")
	b.Set("greeting", "en", "Hello")
	b.Set("greeting", "fr", "Bonjour")
	b.Set("farewell", "en", "Bye")
	b.Set("farewell", "fr", "")
	b.Set("english_only", "en", "Only")
	return b.Build()
}

func newFormatter(t *testing.T, p Platform, cfg Config) (Formatter, afero.Fs) {
	t.Helper()
	if cfg.Fs == nil {
		cfg.Fs = afero.NewMemMapFs()
	}
	if cfg.Root == "" {
		cfg.Root = "out"
	}
	f, err := New(p, cfg)
	require.NoError(t, err)
	return f, cfg.Fs
}

func export(t *testing.T, p Platform, locale string, ds *models.Dataset) string {
	t.Helper()
	f, fs := newFormatter(t, p, Config{DefaultLocale: "en"})
	path, err := f.Export(locale, ds)
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestLookupUnsupported(t *testing.T) {
	_, err := Lookup("windows-phone")
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)

	_, err = New("windows-phone", Config{})
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform(" IOS ")
	require.NoError(t, err)
	assert.Equal(t, IOS, p)

	_, err = ParsePlatform("xml")
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestAllPlatformsRegistered(t *testing.T) {
	assert.Equal(t, []Platform{IOS, Android, YAML, JSON, TOML}, All())
	for _, p := range All() {
		f, err := New(p, Config{Fs: afero.NewMemMapFs()})
		require.NoError(t, err)
		assert.Equal(t, p, f.Platform())
	}
}

func TestPaths(t *testing.T) {
	tests := []struct {
		platform Platform
		cfg      Config
		locale   string
		expected string
	}{
		{IOS, Config{Root: "out"}, "fr", "out/fr.lproj/Localizable.strings"},
		{IOS, Config{Root: "out", PlatformDir: true}, "fr", "out/ios/fr.lproj/Localizable.strings"},
		{IOS, Config{Root: "out", PlatformDir: true, Suffix: "wording"}, "fr", "out/ios/wording/fr.lproj/Localizable.strings"},
		{Android, Config{Root: "out", DefaultLocale: "en"}, "en", "out/values/strings.xml"},
		{Android, Config{Root: "out", DefaultLocale: "en"}, "fr", "out/values-fr/strings.xml"},
		{Android, Config{Root: "out", DefaultLocale: "en"}, "fr_CA", "out/values-fr-rCA/strings.xml"},
		{Android, Config{Root: "out", DefaultLocale: "en"}, "zh-Hans", "out/values-b+zh+Hans/strings.xml"},
		{Android, Config{Root: "out", DefaultLocale: "en"}, "zh-Hant-TW", "out/values-b+zh+Hant+TW/strings.xml"},
		{YAML, Config{Root: "out", Suffix: "s1"}, "fr", "out/s1/fr.yml"},
		{JSON, Config{Root: "out", PlatformDir: true}, "de", "out/json/de.json"},
		{TOML, Config{Root: "out"}, "fr", "out/active.fr.toml"},
	}

	for _, tt := range tests {
		f, _ := newFormatter(t, tt.platform, tt.cfg)
		assert.Equal(t, filepath.FromSlash(tt.expected), f.Path(tt.locale), "%s %s", tt.platform, tt.locale)
	}
}

func TestExportRejectsEscapingLocale(t *testing.T) {
	b := models.NewBuilder("src")
	b.Set("a", "../../../escape", "A")
	ds := b.Build()

	for _, p := range All() {
		f, fs := newFormatter(t, p, Config{Root: "/out/x", DefaultLocale: "en"})
		_, err := f.Export("../../../escape", ds)
		assert.ErrorIs(t, err, ErrUnsafePath, p)

		var files []string
		require.NoError(t, afero.Walk(fs, "/", func(path string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() {
				files = append(files, path)
			}
			return err
		}))
		assert.Empty(t, files, p)
	}
}

func TestIOSExport(t *testing.T) {
	got := export(t, IOS, "fr", sample())
	assert.Equal(t, "\"greeting\" = \"Bonjour\";\n\"farewell\" = \"\";\n", got)
}

func TestIOSEscaping(t *testing.T) {
	b := models.NewBuilder("src")
	b.Set("quote", "en", "Say \"hi\"\nnow \\ %s and %2$s")
	got := export(t, IOS, "en", b.Build())
	assert.Equal(t, "\"quote\" = \"Say \\\"hi\\\"\\nnow \\\\ %@ and %2$@\";\n", got)
}

func TestIOSValuePlaceholders(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"%s", "%@"},
		{"%1$s and %2$s", "%1$@ and %2$@"},
		{"100%%s", "100%%s"},
		{"%%%s", "%%%@"},
		{"50%% off", "50%% off"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, iosValue(tt.input), tt.input)
	}
}

var iosLine = regexp.MustCompile(`^"((?:[^"\\]|\\.)*)" = "((?:[^"\\]|\\.)*)";$`)

var iosUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\n`, "\n", `\r`, "\r", `\t`, "\t")

func TestIOSRoundTrip(t *testing.T) {
	b := models.NewBuilder("src")
	b.Set("a", "en", "Plain")
	b.Set("b", "en", "Tab\tand \"quotes\"")
	b.Set("c", "en", "")
	ds := b.Build()

	got := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(export(t, IOS, "en", ds)), "\n") {
		m := iosLine.FindStringSubmatch(line)
		require.NotNil(t, m, line)
		got[iosUnescaper.Replace(m[1])] = iosUnescaper.Replace(m[2])
	}
	assert.Equal(t, map[string]string{"a": "Plain", "b": "Tab\tand \"quotes\"", "c": ""}, got)
}

func TestAndroidExport(t *testing.T) {
	got := export(t, Android, "fr", sample())
	expected := `<?xml version="1.0" encoding="utf-8"?>
<resources>
    <string name="greeting">Bonjour</string>
    <string name="farewell"></string>
</resources>
`
	assert.Equal(t, expected, got)
}

func TestAndroidScriptVariantsGetOwnFiles(t *testing.T) {
	b := models.NewBuilder("src")
	b.Set("hello", "en", "Hello")
	b.Set("hello", "zh-Hans", "你好")
	b.Set("hello", "zh-Hant", "妳好")
	ds := b.Build()

	f, fs := newFormatter(t, Android, Config{DefaultLocale: "en"})
	files := make(map[string]bool)
	for _, locale := range ds.Locales() {
		path, err := f.Export(locale, ds)
		require.NoError(t, err)
		files[path] = true
	}
	assert.Len(t, files, 3)

	hans, err := afero.ReadFile(fs, filepath.Join("out", "values-b+zh+Hans", "strings.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(hans), "你好")
	hant, err := afero.ReadFile(fs, filepath.Join("out", "values-b+zh+Hant", "strings.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(hant), "妳好")
}

func TestAndroidValue(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"It's", `It\'s`},
		{`A "b"`, `A \"b\"`},
		{"a & <b>", "a &amp; &lt;b&gt;"},
		{"line\nbreak", `line\nbreak`},
		{"@home", `\@home`},
		{"?attr", `\?attr`},
		{"%@ has %1$@", "%s has %1$s"},
		{"100%%@", "100%%@"},
		{"%%%@", "%%%s"},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, androidValue(tt.input), tt.input)
	}
}

func TestYAMLExport(t *testing.T) {
	b := models.NewBuilder("src")
	b.Set("menu.open", "en", "Open")
	b.Set("title", "en", "42")
	b.Set("menu.close", "en", "Close")
	got := export(t, YAML, "en", b.Build())

	expected := `en:
  menu:
    open: Open
    close: Close
  title: "42"
`
	assert.Equal(t, expected, got)
}

func TestYAMLRoundTrip(t *testing.T) {
	raw := export(t, YAML, "fr", sample())

	var decoded map[string]map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, map[string]map[string]string{
		"fr": {"greeting": "Bonjour", "farewell": ""},
	}, decoded)
}

func TestJSONExport(t *testing.T) {
	b := models.NewBuilder("src")
	b.Set("menu.open", "en", "Open")
	b.Set("b", "en", "B")
	got := export(t, JSON, "en", b.Build())

	expected := `{
  "en": {
    "b": "B",
    "menu": {
      "open": "Open"
    }
  }
}
`
	assert.Equal(t, expected, got)
}

func TestJSONRoundTrip(t *testing.T) {
	raw := export(t, JSON, "fr", sample())

	var decoded map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, map[string]map[string]string{
		"fr": {"greeting": "Bonjour", "farewell": ""},
	}, decoded)
}

func TestNestedKeyConflict(t *testing.T) {
	tests := [][]string{
		{"a", "a.b"},
		{"a.b", "a"},
	}

	for _, keys := range tests {
		b := models.NewBuilder("src")
		for _, k := range keys {
			b.Set(k, "en", "v")
		}
		ds := b.Build()
		for _, p := range []Platform{YAML, JSON} {
			f, _ := newFormatter(t, p, Config{})
			_, err := f.Export("en", ds)
			assert.ErrorIs(t, err, ErrKeyConflict, "%s %v", p, keys)
		}
	}
}

func TestSplitKey(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitKey("a.b"))
	assert.Equal(t, []string{"a..b"}, splitKey("a..b"))
	assert.Equal(t, []string{".hidden"}, splitKey(".hidden"))
	assert.Equal(t, []string{"plain"}, splitKey("plain"))
}

func TestTOMLRoundTrip(t *testing.T) {
	raw := export(t, TOML, "fr", sample())

	var decoded map[string]string
	require.NoError(t, toml.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, map[string]string{"greeting": "Bonjour", "farewell": ""}, decoded)
}

func TestTOMLLoadsIntoI18nBundle(t *testing.T) {
	b := models.NewBuilder("src")
	b.Set("greeting", "fr", "Bonjour")
	b.Set("menu.open", "fr", "Ouvrir")
	raw := export(t, TOML, "fr", b.Build())

	bundle := i18n.NewBundle(language.French)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	_, err := bundle.ParseMessageFileBytes([]byte(raw), "active.fr.toml")
	require.NoError(t, err)

	localizer := i18n.NewLocalizer(bundle, "fr")
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: "greeting"})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", msg)
}

func TestAbsentLocaleNeverExported(t *testing.T) {
	ds := sample()
	for _, p := range All() {
		got := export(t, p, "fr", ds)
		assert.NotContains(t, got, "english_only", p)
	}
}

func TestExportOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	f, _ := newFormatter(t, JSON, Config{Fs: fs})

	path := f.Path("en")
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, afero.WriteFile(fs, path, []byte("stale"), 0644))

	_, err := f.Export("en", sample())
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}

func TestExportWriteFailure(t *testing.T) {
	f, _ := newFormatter(t, IOS, Config{Fs: afero.NewReadOnlyFs(afero.NewMemMapFs())})
	_, err := f.Export("en", sample())
	assert.Error(t, err)
}
