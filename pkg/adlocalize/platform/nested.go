package platform

import (
	"fmt"
	"strings"

	"github.com/ukaji3/adlocalize-go/pkg/adlocalize/models"
)

// tree is an ordered nesting of dotted keys, used by the yml and json
// formats. A node is either a leaf with a value or a parent with children.
type tree struct {
	name     string
	value    *string
	children []*tree
	index    map[string]*tree
}

func newTree(name string) *tree {
	return &tree{name: name, index: make(map[string]*tree)}
}

// buildTree nests entries on "." separators, in entry order.
func buildTree(entries []models.Entry) (*tree, error) {
	root := newTree("")
	for _, e := range entries {
		if err := root.insert(e.Key, splitKey(e.Key), e.Value); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// splitKey splits a dotted key. Keys with empty segments are kept whole.
func splitKey(key string) []string {
	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return []string{key}
		}
	}
	return parts
}

func (t *tree) insert(key string, path []string, value string) error {
	node := t
	for i, segment := range path {
		child, ok := node.index[segment]
		if !ok {
			child = newTree(segment)
			node.index[segment] = child
			node.children = append(node.children, child)
		}
		last := i == len(path)-1
		if last && len(child.children) > 0 {
			return fmt.Errorf("%w: %q is also a parent key", ErrKeyConflict, key)
		}
		if !last && child.value != nil {
			return fmt.Errorf("%w: %q is nested under the value %q", ErrKeyConflict, key, strings.Join(path[:i+1], "."))
		}
		node = child
	}
	v := value
	node.value = &v
	return nil
}
