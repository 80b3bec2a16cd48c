package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempDoc(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLintDocumentsValidFile(t *testing.T) {
	lintFlags.file = writeTempDoc(t, "valid.mcl", "{ port = 8080; name = web; }")
	lintFlags.dir = ""
	lintFlags.format = "text"
	lintFlags.maxDepth = 0

	err := lintDocuments(nil, []string{})
	if err != nil {
		t.Errorf("lintDocuments() with valid file returned error: %v", err)
	}
}

func TestLintDocumentsInvalidFile(t *testing.T) {
	lintFlags.file = writeTempDoc(t, "invalid.mcl", "{ port = 8080 name = web; }")
	lintFlags.dir = ""
	lintFlags.format = "text"
	lintFlags.maxDepth = 0

	err := lintDocuments(nil, []string{})
	if err == nil {
		t.Error("lintDocuments() with invalid file should return error")
	}
}

func TestLintDocumentsNonexistentFile(t *testing.T) {
	lintFlags.file = "testdata/nonexistent.mcl"
	lintFlags.dir = ""
	lintFlags.format = "text"
	lintFlags.maxDepth = 0

	err := lintDocuments(nil, []string{})
	if err == nil {
		t.Error("lintDocuments() with nonexistent file should return error")
	}
}

func TestLintDocumentsNoFileOrDir(t *testing.T) {
	lintFlags.file = ""
	lintFlags.dir = ""
	lintFlags.format = "text"
	lintFlags.maxDepth = 0

	err := lintDocuments(nil, []string{})
	if err == nil {
		t.Error("lintDocuments() without file or dir should return error")
	}
}

func TestLintDocumentsDirectory(t *testing.T) {
	dir := t.TempDir()
	for name, text := range map[string]string{
		"a.mcl": "{ k = v; }",
		"b.mcl": "(one, two)",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	lintFlags.file = ""
	lintFlags.dir = dir
	lintFlags.format = "text"
	lintFlags.maxDepth = 0

	err := lintDocuments(nil, []string{})
	if err != nil {
		t.Errorf("lintDocuments() over directory returned error: %v", err)
	}
}

func TestValidateDocumentReportsLocation(t *testing.T) {
	path := writeTempDoc(t, "dup.mcl", "{\nkey = a;\nkey = b;\n}")

	lintFlags.maxDepth = 0
	result := validateDocument(path)
	if result.Valid {
		t.Fatal("duplicate keys reported as valid")
	}
	if len(result.Errors) == 0 {
		t.Fatal("no errors reported")
	}
	if result.Errors[0].Line != 3 {
		t.Errorf("error line = %d, want 3", result.Errors[0].Line)
	}
}

func TestValidateDocumentMaxDepth(t *testing.T) {
	path := writeTempDoc(t, "deep.mcl", "((((x))))")

	lintFlags.maxDepth = 2
	defer func() { lintFlags.maxDepth = 0 }()

	result := validateDocument(path)
	if result.Valid {
		t.Error("document deeper than --max-depth reported as valid")
	}
}
