package platform

import (
	"path/filepath"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/models"
)

var json = jsoniter.Config{
	IndentionStep:          2,
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

type jsonFormatter struct {
	base
}

func newJSONFormatter(cfg Config) Formatter {
	return &jsonFormatter{base{cfg: cfg, platform: JSON}}
}

func (f *jsonFormatter) Path(locale string) string {
	return filepath.Join(f.dir(), locale+".json")
}

// Export writes {"<locale>": {...}} with keys sorted at every level.
func (f *jsonFormatter) Export(locale string, ds *models.Dataset) (string, error) {
	t, err := buildTree(ds.Entries(locale))
	if err != nil {
		return "", err
	}

	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)
	stream.WriteObjectStart()
	stream.WriteObjectField(locale)
	writeJSONTree(stream, t)
	stream.WriteObjectEnd()
	stream.WriteRaw("\n")
	if stream.Error != nil {
		return "", stream.Error
	}
	data := append([]byte(nil), stream.Buffer()...)

	path := f.Path(locale)
	return path, f.write(path, data)
}

func writeJSONTree(stream *jsoniter.Stream, t *tree) {
	if len(t.children) == 0 {
		stream.WriteEmptyObject()
		return
	}
	children := append([]*tree(nil), t.children...)
	sort.Slice(children, func(i, j int) bool { return children[i].name < children[j].name })

	stream.WriteObjectStart()
	for i, c := range children {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(c.name)
		if c.value != nil {
			stream.WriteString(*c.value)
		} else {
			writeJSONTree(stream, c)
		}
	}
	stream.WriteObjectEnd()
}
