// Package convert bridges MCL value trees and YAML documents.
//
// MCL's data model is a strict subset of YAML's: strings, mappings with
// unique keys, and sequences. [ToYAML] emits every MCL string as a tagged
// YAML string so numeric-looking values survive a round trip; [FromYAML]
// flattens every YAML scalar to its literal text, rejecting duplicate
// mapping keys the way the MCL parser does.
//
// The bridge backs the `mcl convert` command and lets MCL documents flow
// into YAML-based tooling.
package convert
