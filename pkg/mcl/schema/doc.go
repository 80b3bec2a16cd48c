// Package schema provides the descriptor-driven marshalling engine that
// converts between MCL dicts and strongly-typed host structures.
//
// A descriptor table declares, per dict key, a typed binding into the host
// struct plus a default, an optional presence flag, and a required flag:
//
//	type ServerConfig struct {
//	    Listen  string
//	    Workers uint64
//	    Debug   bool
//	    DebugSet bool
//	}
//
//	var cfg ServerConfig
//	table := []schema.Descriptor{
//	    {Key: "listen", Required: true, Field: schema.String(&cfg.Listen, "")},
//	    {Key: "workers", Field: schema.Uint64(&cfg.Workers, 4)},
//	    {Key: "debug", Presence: &cfg.DebugSet, Field: schema.Bool(&cfg.Debug, false)},
//	}
//
//	if err := schema.Decode(doc, table); err != nil {
//	    log.Fatal(err)
//	}
//
// # Decode Protocol
//
// Decode runs two passes. The defaults pass initializes every field to its
// declared default and clears its presence flag. The decode pass looks each
// key up in the source dict: a missing required key fails the whole decode;
// a missing optional key keeps the default; a present key dispatches to the
// typed decoder and sets the presence flag. On ANY failure every field is
// torn down, defaults included — a failed decode never leaves a partially
// populated destination.
//
// Array fields are the one deliberate exception to fail-fast dispatch: the
// per-element callback runs for every element and the failures are
// aggregated into an [errors.ErrorList], so multiple element errors surface
// in a single pass.
//
// # Encode Protocol
//
// Encode mirrors decode: each field whose presence flag is true (or which
// has no presence tracking) is converted back to a value and inserted under
// its key. Numeric formats are bit-exact: plain decimal integers, six-digit
// scientific notation doubles ("3.140000e+00"), "argb32:" plus eight
// lowercase hex digits, and booleans through the same word table used for
// decoding.
package schema
