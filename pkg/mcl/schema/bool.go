package schema

// boolWords is the fixed word table shared by the boolean decoder and
// encoder. Decoding matches any word; encoding always uses the first word of
// each polarity.
var boolWords = []struct {
	word string
	val  bool
}{
	{"True", true},
	{"Yes", true},
	{"Enabled", true},
	{"On", true},
	{"False", false},
	{"No", false},
	{"Disabled", false},
	{"Off", false},
}

// parseBoolWord decodes a boolean word. The second result is false for words
// not in the table.
func parseBoolWord(s string) (bool, bool) {
	for _, w := range boolWords {
		if w.word == s {
			return w.val, true
		}
	}
	return false, false
}

// formatBoolWord encodes a boolean through the word table. Any true value
// collapses to "True", any false value to "False"; this path cannot fail.
func formatBoolWord(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
