// Package mcl provides the Mercator Configuration Language (MCL): a textual,
// property-list style configuration language with a canonical writer and a
// descriptor-driven schema engine.
//
// A document is a single value — a string, a dict of unique keys, or an
// array:
//
//	{
//	    listen = "127.0.0.1:8080";
//	    workers = 4;
//	    features = ( tracing, "hot reload" );
//	}
//
// This package is a thin facade over the subpackages:
//
//   - [mercator-hq/ganymede/pkg/mcl/value]: the generic tagged value tree
//   - [mercator-hq/ganymede/pkg/mcl/parser]: text → value tree
//   - [mercator-hq/ganymede/pkg/mcl/writer]: value tree → canonical text
//   - [mercator-hq/ganymede/pkg/mcl/schema]: value tree ↔ typed host structs
//   - [mercator-hq/ganymede/pkg/mcl/errors]: rich error types
//   - [mercator-hq/ganymede/pkg/mcl/convert]: value tree ↔ YAML
//
// # Basic Usage
//
// Parse and decode a configuration file:
//
//	var cfg struct {
//	    Listen  string
//	    Workers uint64
//	}
//	table := []schema.Descriptor{
//	    {Key: "listen", Required: true, Field: schema.String(&cfg.Listen, "")},
//	    {Key: "workers", Field: schema.Uint64(&cfg.Workers, 4)},
//	}
//	if err := mcl.DecodeFile("config.mcl", table); err != nil {
//	    log.Fatal(err)
//	}
//
// Reformat a document canonically:
//
//	doc, err := mcl.Parse("config.mcl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	text, err := mcl.Format(doc)
package mcl
