package platform

import (
	"bytes"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/models"
)

type yamlFormatter struct {
	base
}

func newYAMLFormatter(cfg Config) Formatter {
	return &yamlFormatter{base{cfg: cfg, platform: YAML}}
}

func (f *yamlFormatter) Path(locale string) string {
	return filepath.Join(f.dir(), locale+".yml")
}

func (f *yamlFormatter) Export(locale string, ds *models.Dataset) (string, error) {
	t, err := buildTree(ds.Entries(locale))
	if err != nil {
		return "", err
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	doc.Content = append(doc.Content, yamlString(locale), t.yamlNode())

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}

	path := f.Path(locale)
	return path, f.write(path, buf.Bytes())
}

// yamlNode renders the tree as a mapping that keeps entry order.
func (t *tree) yamlNode() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range t.children {
		var v *yaml.Node
		if c.value != nil {
			v = yamlString(*c.value)
		} else {
			v = c.yamlNode()
		}
		n.Content = append(n.Content, yamlString(c.name), v)
	}
	return n
}

// yamlString is a scalar tagged as a string, so the encoder quotes values
// such as "42" or "true" that would otherwise resolve to other types.
func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
