// Mcl is the command-line toolchain for MCL configuration documents.
//
// It parses, canonicalizes, validates, converts, and watches MCL documents:
//   - Canonical formatting with stable key ordering
//   - Syntax validation with precise error locations
//   - Conversion to and from YAML
//   - Key-path lookups for scripting
//   - Live reload watching with snapshot history and metrics
//
// Usage:
//
//	# Rewrite a document in canonical form
//	mcl fmt config.mcl
//
//	# Validate documents
//	mcl lint --file config.mcl
//
//	# Convert between MCL and YAML
//	mcl convert --to yaml config.mcl
//
//	# Look up a value by key path
//	mcl get config.mcl server.port
//
//	# Watch a document and record reload snapshots
//	mcl watch config.mcl --store snapshots.db
//
//	# Show version information
//	mcl version
package main

func main() {
	Execute()
}
