package platform

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/models"
)

const iosStringsFile = "Localizable.strings"

// printfString matches %s and positional %1$s placeholders. Literal %%
// pairs are matched too so that they are skipped as a unit.
var printfString = regexp.MustCompile(`%%|%(\d+\$)?s`)

var iosEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

type iosFormatter struct {
	base
}

func newIOSFormatter(cfg Config) Formatter {
	return &iosFormatter{base{cfg: cfg, platform: IOS}}
}

func (f *iosFormatter) Path(locale string) string {
	return filepath.Join(f.dir(), locale+".lproj", iosStringsFile)
}

func (f *iosFormatter) Export(locale string, ds *models.Dataset) (string, error) {
	var buf bytes.Buffer
	for _, e := range ds.Entries(locale) {
		fmt.Fprintf(&buf, "\"%s\" = \"%s\";\n", iosEscaper.Replace(e.Key), iosValue(e.Value))
	}

	path := f.Path(locale)
	return path, f.write(path, buf.Bytes())
}

// iosValue escapes v and converts C string placeholders to object ones.
func iosValue(v string) string {
	return replacePlaceholders(printfString, iosEscaper.Replace(v), "@")
}

// replacePlaceholders rewrites the conversion verb of every placeholder
// matched by re, leaving %% pairs alone.
func replacePlaceholders(re *regexp.Regexp, v, verb string) string {
	return re.ReplaceAllStringFunc(v, func(m string) string {
		if m == "%%" {
			return m
		}
		return m[:len(m)-1] + verb
	})
}
