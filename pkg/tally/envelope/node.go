package envelope

import (
	"sort"
	"strings"
)

// TextKey holds the character data of an element that also carries attributes.
const TextKey = "#text"

// Node is a read-only view over a parsed Tally reply. The underlying value is one of
// map[string]any, []any, string or nil.
//
// Tally emits a repeated element as a list and a single occurrence as a bare object.
// Node hides that asymmetry: Items always yields a slice, and Get flattens across
// lists so a path can walk through repeated elements without the caller knowing
// which shape the reply used.
type Node struct {
	v any
}

func New(v any) Node {
	return Node{v: v}
}

func (n Node) Value() any {
	return n.v
}

func (n Node) IsList() bool {
	_, ok := n.v.([]any)
	return ok
}

// IsEmpty reports whether the node holds nothing usable: nil, a blank string, or an
// empty list or object.
func (n Node) IsEmpty() bool {
	switch v := n.v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		for _, item := range v {
			if !New(item).IsEmpty() {
				return false
			}
		}
		return true
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

// Get returns the child stored under key. Keys are matched as given, then lowercased,
// then uppercased. On a list node the lookup is applied to every element and the
// non-empty results are flattened into a single list.
func (n Node) Get(key string) Node {
	switch v := n.v.(type) {
	case map[string]any:
		return New(lookup(v, key))
	case []any:
		var out []any
		for _, item := range v {
			child := New(item).Get(key)
			if child.IsEmpty() {
				continue
			}
			if list, ok := child.v.([]any); ok {
				out = append(out, list...)
				continue
			}
			out = append(out, child.v)
		}
		if len(out) == 0 {
			return Node{}
		}
		return New(out)
	default:
		return Node{}
	}
}

func lookup(m map[string]any, key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	if v, ok := m[strings.ToLower(key)]; ok {
		return v
	}
	if v, ok := m[strings.ToUpper(key)]; ok {
		return v
	}
	return nil
}

// Path walks keys in order. A missing step yields an empty node.
func (n Node) Path(keys ...string) Node {
	cur := n
	for _, k := range keys {
		cur = cur.Get(k)
		if cur.v == nil {
			return Node{}
		}
	}
	return cur
}

// Items coerces the node to a slice: nil gives an empty slice, a list gives its
// elements, anything else gives a one-element slice.
func (n Node) Items() []Node {
	switch v := n.v.(type) {
	case nil:
		return []Node{}
	case []any:
		out := make([]Node, 0, len(v))
		for _, item := range v {
			out = append(out, New(item))
		}
		return out
	default:
		return []Node{n}
	}
}

func (n Node) List(keys ...string) []Node {
	return n.Path(keys...).Items()
}

// String returns trimmed character data. Objects yield their #text entry and lists
// yield the first non-blank element.
func (n Node) String() string {
	switch v := n.v.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		if text, ok := v[TextKey]; ok {
			return New(text).String()
		}
		return ""
	case []any:
		for _, item := range v {
			if s := New(item).String(); s != "" {
				return s
			}
		}
		return ""
	case nil:
		return ""
	default:
		return ""
	}
}

// Field returns the first alias that resolves to a non-empty node. An alias may be a
// slash separated path such as "name.list/name".
func (n Node) Field(aliases ...string) Node {
	for _, alias := range aliases {
		child := n.Path(strings.Split(alias, "/")...)
		if !child.IsEmpty() {
			return child
		}
	}
	return Node{}
}

// Text is Field followed by String, skipping aliases whose text is blank.
func (n Node) Text(aliases ...string) string {
	for _, alias := range aliases {
		if s := n.Path(strings.Split(alias, "/")...).String(); s != "" {
			return s
		}
	}
	return ""
}

func (n Node) Keys() []string {
	m, ok := n.v.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
