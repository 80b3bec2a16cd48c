package writer

import (
	"fmt"

	mclErrors "mercator-hq/ganymede/pkg/mcl/errors"
	"mercator-hq/ganymede/pkg/mcl/value"
)

// Write serializes v to canonical MCL text, appending to b.
//
// The write is transactional: it attempts the full serialization against the
// buffer's current capacity; on overflow it rewinds the buffer to the length
// it had on entry, grows it, and retries the entire write. A buffer that can
// no longer grow yields a capacity error with the buffer unchanged. A partial
// write is never observable.
func Write(v *value.Value, b *Buffer) error {
	if v == nil || b == nil {
		return &mclErrors.Error{
			Type:    mclErrors.ErrorTypeCapacity,
			Message: "nil value or buffer",
		}
	}

	mark := b.Len()
	for {
		if writeValue(v, b) {
			return nil
		}
		b.Truncate(mark)
		if !b.grow() {
			return &mclErrors.Error{
				Type:    mclErrors.ErrorTypeCapacity,
				Message: fmt.Sprintf("buffer limit of %d bytes reached", b.limit),
			}
		}
	}
}

// writeValue appends one value. It returns false on buffer overflow.
func writeValue(v *value.Value, b *Buffer) bool {
	switch v.Kind() {
	case value.KindString:
		text, _ := v.Text()
		return writeString(text, b)
	case value.KindDict:
		return writeDict(v, b)
	case value.KindArray:
		return writeArray(v, b)
	default:
		return false
	}
}

// isIdentifierByte reports whether c belongs to the identifier character
// class: ASCII letters, digits, '_', '.', '$'.
func isIdentifierByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '.' || c == '$'
}

// isIdentifier reports whether s matches the identifier pattern over its
// whole length. The empty string is not an identifier.
func isIdentifier(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentifierByte(s[i]) {
			return false
		}
	}
	return true
}

// writeString appends a string, bare if it matches the identifier pattern,
// double-quoted with '\' and '"' escaped otherwise.
func writeString(s string, b *Buffer) bool {
	if isIdentifier(s) {
		return b.appendString(s)
	}

	if !b.appendByte('"') {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == '"' {
			if !b.appendByte('\\') {
				return false
			}
		}
		if !b.appendByte(c) {
			return false
		}
	}
	return b.appendByte('"')
}

// writeDict appends a dict: '{', one 'key = value;' line per entry in
// ascending key order, '}'. An empty dict renders as '{}'.
func writeDict(d *value.Value, b *Buffer) bool {
	if !b.appendByte('{') {
		return false
	}
	if d.DictLen() > 0 && !b.appendByte('\n') {
		return false
	}

	ok := d.DictForEach(func(key string, v *value.Value) bool {
		if !writeString(key, b) {
			return false
		}
		if !b.appendString(" = ") {
			return false
		}
		if !writeValue(v, b) {
			return false
		}
		return b.appendString(";\n")
	})
	if !ok {
		return false
	}

	return b.appendByte('}')
}

// writeArray appends an array. Newlines surround and separate elements only
// when the array has more than one element; empty and single-element arrays
// render inline.
func writeArray(a *value.Value, b *Buffer) bool {
	n := a.ArrayLen()
	multi := n > 1

	if !b.appendByte('(') {
		return false
	}
	if multi && !b.appendByte('\n') {
		return false
	}

	for i := 0; i < n; i++ {
		item, _ := a.ArrayAt(i)
		if !writeValue(item, b) {
			return false
		}
		if i < n-1 && !b.appendByte(',') {
			return false
		}
		if multi && !b.appendByte('\n') {
			return false
		}
	}

	return b.appendByte(')')
}
