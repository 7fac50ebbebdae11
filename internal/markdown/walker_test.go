package markdown

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestFindFiles_Recursive(t *testing.T) {
	fsys := fstest.MapFS{
		"2025-01-02.md":           {Data: []byte("a")},
		"notes.txt":               {Data: []byte("b")},
		"2024/12/2024-12-31.md":   {Data: []byte("c")},
		".hidden/2023-01-01.md":   {Data: []byte("d")},
		"drafts/readme.markdown":  {Data: []byte("e")},
		"drafts/deep/nested/x.md": {Data: []byte("f")},
	}

	files, err := FindFiles(fsys)
	if err != nil {
		t.Fatalf("FindFiles: %v", err)
	}

	want := []string{
		".hidden/2023-01-01.md",
		"2024/12/2024-12-31.md",
		"2025-01-02.md",
		"drafts/deep/nested/x.md",
	}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, files)
		}
	}
}

func TestFindFilesInDir_MissingRoot(t *testing.T) {
	files, err := FindFilesInDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("expected missing root to be tolerated, got %v", err)
	}
	if files == nil || len(files) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", files)
	}
}

func TestFindFilesInDir_RootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.md")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := FindFilesInDir(path); err == nil {
		t.Fatalf("expected error when root is a file")
	}
}
