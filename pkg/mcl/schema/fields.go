package schema

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	mclErrors "mercator-hq/ganymede/pkg/mcl/errors"
	"mercator-hq/ganymede/pkg/mcl/value"
)

// asText narrows v to its string content or reports a type mismatch.
func asText(v *value.Value) (string, error) {
	text, ok := v.Text()
	if !ok {
		return "", &mclErrors.Error{
			Type:     mclErrors.ErrorTypeTypeMismatch,
			Message:  fmt.Sprintf("expected string, got %s", v.Kind()),
			Location: v.Loc,
		}
	}
	return text, nil
}

func formatError(msg string, v *value.Value) error {
	return &mclErrors.Error{
		Type:     mclErrors.ErrorTypeFormat,
		Message:  msg,
		Location: v.Loc,
	}
}

// Uint64 binds an unsigned 64-bit integer field, parsed and emitted as
// base-10 text.
func Uint64(dst *uint64, def uint64) Field {
	return &uint64Field{dst: dst, def: def}
}

type uint64Field struct {
	dst *uint64
	def uint64
}

func (f *uint64Field) init() error { *f.dst = f.def; return nil }
func (f *uint64Field) fini()       { *f.dst = 0 }

func (f *uint64Field) decode(v *value.Value) error {
	text, err := asText(v)
	if err != nil {
		return err
	}
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return formatError(fmt.Sprintf("invalid unsigned integer %q", text), v)
	}
	*f.dst = n
	return nil
}

func (f *uint64Field) encode() (*value.Value, error) {
	return value.NewString(strconv.FormatUint(*f.dst, 10)), nil
}

// Int64 binds a signed 64-bit integer field, parsed and emitted as base-10
// text with a single leading '-' for negative values.
func Int64(dst *int64, def int64) Field {
	return &int64Field{dst: dst, def: def}
}

type int64Field struct {
	dst *int64
	def int64
}

func (f *int64Field) init() error { *f.dst = f.def; return nil }
func (f *int64Field) fini()       { *f.dst = 0 }

func (f *int64Field) decode(v *value.Value) error {
	text, err := asText(v)
	if err != nil {
		return err
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return formatError(fmt.Sprintf("invalid integer %q", text), v)
	}
	*f.dst = n
	return nil
}

func (f *int64Field) encode() (*value.Value, error) {
	return value.NewString(strconv.FormatInt(*f.dst, 10)), nil
}

// Float64 binds a double field. Decoding accepts locale-independent decimal
// text; encoding always uses six-digit scientific notation, e.g.
// "3.140000e+00".
func Float64(dst *float64, def float64) Field {
	return &float64Field{dst: dst, def: def}
}

type float64Field struct {
	dst *float64
	def float64
}

func (f *float64Field) init() error { *f.dst = f.def; return nil }
func (f *float64Field) fini()       { *f.dst = 0 }

func (f *float64Field) decode(v *value.Value) error {
	text, err := asText(v)
	if err != nil {
		return err
	}
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return formatError(fmt.Sprintf("invalid number %q", text), v)
	}
	*f.dst = x
	return nil
}

func (f *float64Field) encode() (*value.Value, error) {
	return value.NewString(fmt.Sprintf("%.6e", *f.dst)), nil
}

// Bool binds a boolean field decoded through the fixed word table
// (True/Yes/Enabled/On and False/No/Disabled/Off). Encoding always emits
// "True" or "False" and cannot fail.
func Bool(dst *bool, def bool) Field {
	return &boolField{dst: dst, def: def}
}

type boolField struct {
	dst *bool
	def bool
}

func (f *boolField) init() error { *f.dst = f.def; return nil }
func (f *boolField) fini()       { *f.dst = false }

func (f *boolField) decode(v *value.Value) error {
	text, err := asText(v)
	if err != nil {
		return err
	}
	b, ok := parseBoolWord(text)
	if !ok {
		return formatError(fmt.Sprintf("invalid boolean %q", text), v)
	}
	*f.dst = b
	return nil
}

func (f *boolField) encode() (*value.Value, error) {
	return value.NewString(formatBoolWord(*f.dst)), nil
}

// String binds a string field. Decoding replaces any prior content with a
// copy of the source text.
func String(dst *string, def string) Field {
	return &stringField{dst: dst, def: def}
}

type stringField struct {
	dst *string
	def string
}

func (f *stringField) init() error { *f.dst = f.def; return nil }
func (f *stringField) fini()       { *f.dst = "" }

func (f *stringField) decode(v *value.Value) error {
	text, err := asText(v)
	if err != nil {
		return err
	}
	*f.dst = text
	return nil
}

func (f *stringField) encode() (*value.Value, error) {
	return value.NewString(*f.dst), nil
}

// CharBuf binds a fixed-size character buffer. Decoding requires
// len(source)+1 <= len(buf), reserving one byte for the terminator; an
// oversized source yields a capacity error and leaves the buffer untouched.
func CharBuf(buf []byte, def string) Field {
	return &charBufField{buf: buf, def: def}
}

type charBufField struct {
	buf []byte
	def string
}

func (f *charBufField) store(s string) error {
	if len(s)+1 > len(f.buf) {
		return &mclErrors.Error{
			Type:    mclErrors.ErrorTypeCapacity,
			Message: fmt.Sprintf("value of %d bytes does not fit in a %d-byte buffer", len(s), len(f.buf)),
		}
	}
	copy(f.buf, s)
	for i := len(s); i < len(f.buf); i++ {
		f.buf[i] = 0
	}
	return nil
}

func (f *charBufField) init() error { return f.store(f.def) }

func (f *charBufField) fini() {
	for i := range f.buf {
		f.buf[i] = 0
	}
}

func (f *charBufField) decode(v *value.Value) error {
	text, err := asText(v)
	if err != nil {
		return err
	}
	if len(text)+1 > len(f.buf) {
		return &mclErrors.Error{
			Type:     mclErrors.ErrorTypeCapacity,
			Message:  fmt.Sprintf("value of %d bytes does not fit in a %d-byte buffer", len(text), len(f.buf)),
			Location: v.Loc,
		}
	}
	return f.store(text)
}

func (f *charBufField) encode() (*value.Value, error) {
	end := bytes.IndexByte(f.buf, 0)
	if end < 0 {
		end = len(f.buf)
	}
	return value.NewString(string(f.buf[:end])), nil
}

// ARGB32 binds a 32-bit color field. The text form is the literal "argb32:"
// followed by exactly 8 hex digits; encoding emits lowercase zero-padded
// digits.
func ARGB32(dst *uint32, def uint32) Field {
	return &argb32Field{dst: dst, def: def}
}

type argb32Field struct {
	dst *uint32
	def uint32
}

const argb32Prefix = "argb32:"

func (f *argb32Field) init() error { *f.dst = f.def; return nil }
func (f *argb32Field) fini()       { *f.dst = 0 }

func (f *argb32Field) decode(v *value.Value) error {
	text, err := asText(v)
	if err != nil {
		return err
	}
	digits, ok := strings.CutPrefix(text, argb32Prefix)
	if !ok || len(digits) != 8 {
		return formatError(fmt.Sprintf("invalid color %q, expected argb32: plus 8 hex digits", text), v)
	}
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return formatError(fmt.Sprintf("invalid color %q, expected argb32: plus 8 hex digits", text), v)
	}
	*f.dst = uint32(n)
	return nil
}

func (f *argb32Field) encode() (*value.Value, error) {
	return value.NewString(fmt.Sprintf("%s%08x", argb32Prefix, *f.dst)), nil
}

// EnumItem is one entry of a caller-supplied enum name table.
type EnumItem struct {
	Name  string
	Value int64
}

// Enum binds an enum field decoded through a caller-supplied name table;
// the first matching name wins. Encoding fails if the current value has no
// name in the table.
func Enum(dst *int64, items []EnumItem, def int64) Field {
	return &enumField{dst: dst, items: items, def: def}
}

type enumField struct {
	dst   *int64
	items []EnumItem
	def   int64
}

func (f *enumField) init() error { *f.dst = f.def; return nil }
func (f *enumField) fini()       { *f.dst = 0 }

func (f *enumField) decode(v *value.Value) error {
	text, err := asText(v)
	if err != nil {
		return err
	}
	for _, item := range f.items {
		if item.Name == text {
			*f.dst = item.Value
			return nil
		}
	}
	return formatError(fmt.Sprintf("unknown enum value %q", text), v)
}

func (f *enumField) encode() (*value.Value, error) {
	for _, item := range f.items {
		if item.Value == *f.dst {
			return value.NewString(item.Name), nil
		}
	}
	return nil, &mclErrors.Error{
		Type:    mclErrors.ErrorTypeFormat,
		Message: fmt.Sprintf("enum value %d has no name", *f.dst),
	}
}

// Dict binds a nested dict decoded through a sub-descriptor table. Defaults
// apply recursively.
func Dict(table []Descriptor) Field {
	return &dictField{table: table}
}

type dictField struct {
	table []Descriptor
}

func (f *dictField) init() error { return applyDefaults(f.table) }
func (f *dictField) fini()       { teardown(f.table) }

func (f *dictField) decode(v *value.Value) error {
	return Decode(v, f.table)
}

func (f *dictField) encode() (*value.Value, error) {
	return Encode(f.table)
}

// ArrayFuncs supplies the per-element callbacks for an array field.
// DecodeElem is invoked for EVERY element with its index, even after an
// earlier element has failed; the failures are aggregated so that all
// element errors surface in one pass.
type ArrayFuncs struct {
	// Init establishes the default state (optional).
	Init func() error
	// Fini tears the destination down (optional).
	Fini func()
	// DecodeElem decodes element i.
	DecodeElem func(i int, v *value.Value) error
	// Len returns the number of elements to encode.
	Len func() int
	// EncodeElem encodes element i.
	EncodeElem func(i int) (*value.Value, error)
}

// Array binds an array field driven by per-element callbacks.
func Array(fns ArrayFuncs) Field {
	return &arrayField{fns: fns}
}

type arrayField struct {
	fns ArrayFuncs
}

func (f *arrayField) init() error {
	if f.fns.Init != nil {
		return f.fns.Init()
	}
	return nil
}

func (f *arrayField) fini() {
	if f.fns.Fini != nil {
		f.fns.Fini()
	}
}

func (f *arrayField) decode(v *value.Value) error {
	if v.Kind() != value.KindArray {
		return &mclErrors.Error{
			Type:     mclErrors.ErrorTypeTypeMismatch,
			Message:  fmt.Sprintf("expected array, got %s", v.Kind()),
			Location: v.Loc,
		}
	}
	if f.fns.DecodeElem == nil {
		return &mclErrors.Error{
			Type:    mclErrors.ErrorTypeTypeMismatch,
			Message: "array field has no element decoder",
		}
	}

	// Deliberately not fail-fast: every element is attempted and the
	// failures are reported together.
	errs := mclErrors.NewErrorList()
	for i := 0; i < v.ArrayLen(); i++ {
		item, _ := v.ArrayAt(i)
		if err := f.fns.DecodeElem(i, item); err != nil {
			errs.Append(wrapElem(i, err))
		}
	}
	return errs.ToError()
}

func (f *arrayField) encode() (*value.Value, error) {
	if f.fns.Len == nil || f.fns.EncodeElem == nil {
		return nil, &mclErrors.Error{
			Type:    mclErrors.ErrorTypeTypeMismatch,
			Message: "array field has no element encoder",
		}
	}

	a := value.NewArray()
	for i := 0; i < f.fns.Len(); i++ {
		item, err := f.fns.EncodeElem(i)
		if err != nil {
			return nil, wrapElem(i, err)
		}
		a.ArrayAppend(item)
	}
	return a, nil
}

// wrapElem prefixes element errors with their index.
func wrapElem(i int, err error) error {
	if e, ok := err.(*mclErrors.Error); ok {
		return &mclErrors.Error{
			Type:       e.Type,
			Message:    fmt.Sprintf("element %d: %s", i, e.Message),
			Location:   e.Location,
			Suggestion: e.Suggestion,
		}
	}
	return err
}

// CustomFuncs supplies caller-defined init, fini, decode, and encode
// callbacks. The engine wires them into the presence/default/teardown
// protocol but otherwise defers entirely to the caller.
type CustomFuncs struct {
	Init   func() error
	Fini   func()
	Decode func(v *value.Value) error
	Encode func() (*value.Value, error)
}

// Custom binds a field handled entirely by caller-supplied callbacks.
func Custom(fns CustomFuncs) Field {
	return &customField{fns: fns}
}

type customField struct {
	fns CustomFuncs
}

func (f *customField) init() error {
	if f.fns.Init != nil {
		return f.fns.Init()
	}
	return nil
}

func (f *customField) fini() {
	if f.fns.Fini != nil {
		f.fns.Fini()
	}
}

func (f *customField) decode(v *value.Value) error {
	if f.fns.Decode == nil {
		return &mclErrors.Error{
			Type:    mclErrors.ErrorTypeTypeMismatch,
			Message: "custom field has no decoder",
		}
	}
	return f.fns.Decode(v)
}

func (f *customField) encode() (*value.Value, error) {
	if f.fns.Encode == nil {
		return nil, &mclErrors.Error{
			Type:    mclErrors.ErrorTypeTypeMismatch,
			Message: "custom field has no encoder",
		}
	}
	return f.fns.Encode()
}
