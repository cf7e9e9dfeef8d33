package platform

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/models"
)

const androidStringsFile = "strings.xml"

// printfObject matches %@ and positional %1$@ placeholders, and %% pairs.
var printfObject = regexp.MustCompile(`%%|%(\d+\$)?@`)

// androidEscaper applies resource string escapes first, then XML entities.
var androidEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var androidAttrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

type androidFormatter struct {
	base
}

func newAndroidFormatter(cfg Config) Formatter {
	return &androidFormatter{base{cfg: cfg, platform: Android}}
}

func (f *androidFormatter) Path(locale string) string {
	return filepath.Join(f.dir(), androidValuesDir(locale, f.cfg.DefaultLocale), androidStringsFile)
}

func (f *androidFormatter) Export(locale string, ds *models.Dataset) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<resources>\n")
	for _, e := range ds.Entries(locale) {
		fmt.Fprintf(&buf, "    <string name=\"%s\">%s</string>\n", androidAttrEscaper.Replace(e.Key), androidValue(e.Value))
	}
	buf.WriteString("</resources>\n")

	path := f.Path(locale)
	return path, f.write(path, buf.Bytes())
}

// androidValuesDir returns "values" for the default locale and
// "values-<lang>[-r<REGION>]" otherwise. Locales with a script use the
// BCP 47 form "values-b+<lang>+<Script>[+<REGION>]".
func androidValuesDir(locale, defaultLocale string) string {
	if locale == defaultLocale {
		return "values"
	}
	lang, region, ok := models.LocaleParts(locale)
	if !ok {
		return "values-" + locale
	}
	if script := models.LocaleScript(locale); script != "" {
		dir := "values-b+" + lang + "+" + script
		if region != "" {
			dir += "+" + region
		}
		return dir
	}
	if region != "" {
		return fmt.Sprintf("values-%s-r%s", lang, region)
	}
	return "values-" + lang
}

func androidValue(v string) string {
	v = androidEscaper.Replace(v)
	// A leading @ or ? would be read as a resource reference.
	if strings.HasPrefix(v, "@") || strings.HasPrefix(v, "?") {
		v = `\` + v
	}
	return replacePlaceholders(printfObject, v, "s")
}
