package schema

import (
	"fmt"

	mclErrors "mercator-hq/ganymede/pkg/mcl/errors"
	"mercator-hq/ganymede/pkg/mcl/value"
)

// Descriptor maps one dict key to one typed field of a host structure.
// A descriptor table is an ordered slice of descriptors; Decode and Encode
// process it front to back.
type Descriptor struct {
	// Key is the dict key this field is stored under.
	Key string

	// Required makes the whole decode fail when the key is absent from
	// the source dict. Optional fields keep their default.
	Required bool

	// Presence, when non-nil, is set to true if the key was explicitly
	// supplied during decode and cleared otherwise. Encode skips fields
	// whose presence flag is false; a nil Presence means "always emit".
	Presence *bool

	// Field is the typed binding created by one of the field constructors
	// (Uint64, String, Dict, Array, Custom, ...).
	Field Field
}

// Field is the typed binding of one descriptor. Implementations are created
// through the constructors in this package; arbitrary caller behavior plugs
// in through [Custom].
type Field interface {
	// init sets the field to its declared default.
	init() error
	// fini tears the field down to its zero state.
	fini()
	// decode reads the field from a source value.
	decode(v *value.Value) error
	// encode converts the field to a value.
	encode() (*value.Value, error)
}

// Decode decodes src (which must be a dict) into the fields bound by table.
//
// It first initializes every field to its default and clears its presence
// flag, then decodes each descriptor's key from src. A missing required key,
// or any field decode failure, tears down every field (including defaults)
// and clears all presence flags before returning the error: a failed decode
// never leaves a partially-populated destination.
func Decode(src *value.Value, table []Descriptor) error {
	if src == nil || src.Kind() != value.KindDict {
		kind := "nil"
		var loc value.Location
		if src != nil {
			kind = src.Kind().String()
			loc = src.Loc
		}
		return &mclErrors.Error{
			Type:     mclErrors.ErrorTypeTypeMismatch,
			Message:  fmt.Sprintf("expected dict, got %s", kind),
			Location: loc,
		}
	}

	if err := applyDefaults(table); err != nil {
		teardown(table)
		return err
	}

	for i := range table {
		d := &table[i]
		v, ok := src.DictGet(d.Key)
		if !ok {
			if d.Required {
				teardown(table)
				return &mclErrors.Error{
					Type:       mclErrors.ErrorTypeRequired,
					Message:    fmt.Sprintf("required field %q is missing", d.Key),
					Location:   src.Loc,
					Suggestion: fmt.Sprintf("add a %q entry to the dict", d.Key),
				}
			}
			continue
		}

		if err := d.Field.decode(v); err != nil {
			teardown(table)
			return wrapKey(d.Key, err)
		}
		if d.Presence != nil {
			*d.Presence = true
		}
	}

	return nil
}

// Encode converts the fields bound by table into a new dict. Fields with a
// presence flag are emitted only when the flag is true; untracked fields are
// always emitted. Any field encode failure aborts and the partially built
// dict is dropped.
func Encode(table []Descriptor) (*value.Value, error) {
	d := value.NewDict()

	for i := range table {
		desc := &table[i]
		if desc.Presence != nil && !*desc.Presence {
			continue
		}

		v, err := desc.Field.encode()
		if err != nil {
			return nil, wrapKey(desc.Key, err)
		}
		if !d.DictAdd(desc.Key, v) {
			return nil, &mclErrors.Error{
				Type:    mclErrors.ErrorTypeFormat,
				Message: fmt.Sprintf("duplicate descriptor key %q", desc.Key),
			}
		}
	}

	return d, nil
}

// applyDefaults runs the defaults pass: every field is initialized and its
// presence flag cleared.
func applyDefaults(table []Descriptor) error {
	for i := range table {
		d := &table[i]
		if err := d.Field.init(); err != nil {
			return wrapKey(d.Key, err)
		}
		if d.Presence != nil {
			*d.Presence = false
		}
	}
	return nil
}

// teardown destroys everything decoded so far, defaults included, and
// clears presence flags.
func teardown(table []Descriptor) {
	for i := range table {
		d := &table[i]
		d.Field.fini()
		if d.Presence != nil {
			*d.Presence = false
		}
	}
}

// wrapKey prefixes field errors with the descriptor key so callers can tell
// which entry failed. Error lists pass through unchanged: their elements
// already carry per-element context.
func wrapKey(key string, err error) error {
	if e, ok := err.(*mclErrors.Error); ok {
		return &mclErrors.Error{
			Type:       e.Type,
			Message:    fmt.Sprintf("field %q: %s", key, e.Message),
			Location:   e.Location,
			Suggestion: e.Suggestion,
		}
	}
	return err
}
