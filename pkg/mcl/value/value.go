package value

import "sort"

// Kind is the variant tag of a Value. The variant set is closed: MCL
// documents are built from strings, dicts, and arrays only.
type Kind int8

const (
	// KindString is a leaf value holding owned text.
	KindString Kind = iota
	// KindDict is an associative container with unique keys, iterated in
	// ascending key order regardless of insertion order.
	KindDict
	// KindArray is an ordered sequence of values; duplicates are allowed.
	KindArray
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindDict:
		return "dict"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// entry is one key/value pair of a dict.
type entry struct {
	key string
	val *Value
}

// Value is a node of the generic MCL tree. A Value may be referenced from
// more than one container; its lifetime is managed by the garbage collector,
// so sharing a node between two dicts or arrays is legal and cheap.
//
// Values must not be mutated concurrently without external synchronization.
type Value struct {
	kind Kind
	text string
	// dict entries are kept sorted by key so iteration is always in
	// ascending key order.
	entries []entry
	items   []*Value

	// Loc is the source location when the value was built by the parser.
	// Values built programmatically have a zero Loc.
	Loc Location
}

// NewString creates a string value holding the given text.
func NewString(text string) *Value {
	return &Value{kind: KindString, text: text}
}

// NewDict creates an empty dict value.
func NewDict() *Value {
	return &Value{kind: KindDict}
}

// NewArray creates an empty array value.
func NewArray() *Value {
	return &Value{kind: KindArray}
}

// Kind returns the variant tag of the value.
func (v *Value) Kind() Kind {
	return v.kind
}

// Text returns the string content. The second result is false if the value
// is not a string.
func (v *Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// search returns the index at which key is (or would be) stored.
func (v *Value) search(key string) int {
	return sort.Search(len(v.entries), func(i int) bool {
		return v.entries[i].key >= key
	})
}

// DictAdd inserts val under key. It returns false without mutating the dict
// if the receiver is not a dict, val is nil, or the key already exists.
func (v *Value) DictAdd(key string, val *Value) bool {
	if v.kind != KindDict || val == nil {
		return false
	}
	i := v.search(key)
	if i < len(v.entries) && v.entries[i].key == key {
		return false
	}
	v.entries = append(v.entries, entry{})
	copy(v.entries[i+1:], v.entries[i:])
	v.entries[i] = entry{key: key, val: val}
	return true
}

// DictGet looks up key. The returned value is borrowed: callers must not
// assume exclusive ownership. The second result is false if the receiver is
// not a dict or the key is absent.
func (v *Value) DictGet(key string) (*Value, bool) {
	if v.kind != KindDict {
		return nil, false
	}
	i := v.search(key)
	if i < len(v.entries) && v.entries[i].key == key {
		return v.entries[i].val, true
	}
	return nil, false
}

// DictLen returns the number of entries, or 0 if the value is not a dict.
func (v *Value) DictLen() int {
	if v.kind != KindDict {
		return 0
	}
	return len(v.entries)
}

// DictForEach visits every entry in ascending key order. It stops and
// returns false the first time fn returns false; otherwise it returns true.
// A non-dict receiver returns false without visiting anything.
func (v *Value) DictForEach(fn func(key string, val *Value) bool) bool {
	if v.kind != KindDict {
		return false
	}
	for _, e := range v.entries {
		if !fn(e.key, e.val) {
			return false
		}
	}
	return true
}

// DictKeys returns the keys in ascending order.
func (v *Value) DictKeys() []string {
	if v.kind != KindDict {
		return nil
	}
	keys := make([]string, len(v.entries))
	for i, e := range v.entries {
		keys[i] = e.key
	}
	return keys
}

// ArrayAppend appends val to the array. It returns false if the receiver is
// not an array or val is nil.
func (v *Value) ArrayAppend(val *Value) bool {
	if v.kind != KindArray || val == nil {
		return false
	}
	v.items = append(v.items, val)
	return true
}

// ArrayAt returns the element at index i. The second result is false if the
// receiver is not an array or the index is out of bounds.
func (v *Value) ArrayAt(i int) (*Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return nil, false
	}
	return v.items[i], true
}

// ArrayLen returns the number of elements, or 0 if the value is not an array.
func (v *Value) ArrayLen() int {
	if v.kind != KindArray {
		return 0
	}
	return len(v.items)
}

// Equal reports whether two trees have the same structure and content.
// Source locations are ignored.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.text == other.text
	case KindDict:
		if len(v.entries) != len(other.entries) {
			return false
		}
		for i, e := range v.entries {
			o := other.entries[i]
			if e.key != o.key || !e.val.Equal(o.val) {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i, item := range v.items {
			if !item.Equal(other.items[i]) {
				return false
			}
		}
		return true
	}
	return false
}
