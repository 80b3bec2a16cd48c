// Package value defines the generic tagged value tree underlying MCL
// documents.
//
// A document is a tree of [Value] nodes with three variants: string, dict,
// and array. Dicts have unique keys and are always iterated in ascending key
// order, independent of insertion order. Arrays are ordered sequences and may
// contain duplicates. A node may be shared between containers; lifetimes are
// managed by the garbage collector.
//
// # Basic Usage
//
// Build a tree by hand:
//
//	cfg := value.NewDict()
//	cfg.DictAdd("listen", value.NewString("127.0.0.1:8080"))
//
//	backends := value.NewArray()
//	backends.ArrayAppend(value.NewString("alpha"))
//	backends.ArrayAppend(value.NewString("beta"))
//	cfg.DictAdd("backends", backends)
//
// Walk a dict in key order:
//
//	cfg.DictForEach(func(key string, v *value.Value) bool {
//	    fmt.Println(key, v.Kind())
//	    return true
//	})
//
// # Source Locations
//
// Values built by the parser carry a [Location] for error reporting; values
// built programmatically have a zero Location.
package value
