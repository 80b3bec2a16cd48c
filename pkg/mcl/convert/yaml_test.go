package convert

import (
	"strings"
	"testing"

	mclErrors "mercator-hq/ganymede/pkg/mcl/errors"
	"mercator-hq/ganymede/pkg/mcl/parser"
	"mercator-hq/ganymede/pkg/mcl/value"
)

func TestFromYAML_BuildsValueTree(t *testing.T) {
	data := []byte(`
listen: 127.0.0.1:8080
workers: 4
debug: true
backends:
  - alpha
  - beta
`)

	v, err := FromYAML(data, "config.yaml")
	if err != nil {
		t.Fatalf("FromYAML failed: %v", err)
	}

	if v.Kind() != value.KindDict || v.DictLen() != 4 {
		t.Fatalf("root = %s with %d entries", v.Kind(), v.DictLen())
	}

	// Scalars of any YAML type flatten to their literal text.
	workers, _ := v.DictGet("workers")
	if text, _ := workers.Text(); text != "4" {
		t.Errorf("workers = %q, want %q", text, "4")
	}
	debug, _ := v.DictGet("debug")
	if text, _ := debug.Text(); text != "true" {
		t.Errorf("debug = %q, want %q", text, "true")
	}

	backends, _ := v.DictGet("backends")
	if backends.Kind() != value.KindArray || backends.ArrayLen() != 2 {
		t.Errorf("backends = %s with %d elements", backends.Kind(), backends.ArrayLen())
	}
}

func TestFromYAML_RejectsDuplicateKeys(t *testing.T) {
	// yaml.v3 itself rejects exact duplicates, so route the check through
	// a merge-free document with distinct node representations.
	data := []byte("a: 1\n\"a\": 2\n")

	_, err := FromYAML(data, "dup.yaml")
	if err == nil {
		t.Fatal("duplicate mapping keys accepted")
	}
}

func TestFromYAML_SyntaxError(t *testing.T) {
	_, err := FromYAML([]byte("foo: [unclosed"), "bad.yaml")
	if err == nil {
		t.Fatal("malformed YAML accepted")
	}
	if mclErr, ok := err.(*mclErrors.Error); ok {
		if mclErr.Type != mclErrors.ErrorTypeParse {
			t.Errorf("error type = %s, want parse", mclErr.Type)
		}
	}
}

func TestToYAML_TagsStrings(t *testing.T) {
	d := value.NewDict()
	d.DictAdd("port", value.NewString("8080"))

	out, err := ToYAML(d)
	if err != nil {
		t.Fatalf("ToYAML failed: %v", err)
	}
	// The numeric-looking value must stay a YAML string.
	if !strings.Contains(string(out), `"8080"`) {
		t.Errorf("output %q does not quote the numeric-looking string", out)
	}
}

func TestYAML_RoundTripFromMCL(t *testing.T) {
	input := `{
		name = demo;
		counts = (1, 2, 3);
		nested = { enabled = Yes; };
	}`

	doc, err := parser.NewParser().ParseString(input, "test.mcl")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	out, err := ToYAML(doc)
	if err != nil {
		t.Fatalf("ToYAML failed: %v", err)
	}

	back, err := FromYAML(out, "roundtrip.yaml")
	if err != nil {
		t.Fatalf("FromYAML failed: %v", err)
	}

	if !doc.Equal(back) {
		t.Errorf("round trip mismatch:\nMCL tree: %+v\nYAML: %s", doc, out)
	}
}
