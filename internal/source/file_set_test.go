package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("bot.js", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	// тот же путь с новым содержимым получает новый ID
	id2 := fs.Add("bot.js", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latest, ok := fs.GetByPath("bot.js")
	if !ok {
		t.Fatal("Expected file to exist after Add")
	}
	if latest.ID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latest.ID)
	}

	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("Expected first file content to be 'hello world', got %q", got)
	}
	if fs.Get(FileID(42)) != nil {
		t.Error("Expected nil for unknown FileID")
	}
}

func TestFileSetLoadKeepsContentVerbatim(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot.js")
	content := "\xEF\xBB\xBFcode: `$ping`\r\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != content {
		t.Errorf("content was modified: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.js", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{Line: 2, Col: 1}},
		{6, LineCol{Line: 3, Col: 1}},
		{7, LineCol{Line: 4, Col: 1}},
		{9, LineCol{Line: 4, Col: 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	f := &File{Content: []byte("first\r\nsecond\nthird")}
	f.LineIdx = buildLineIndex(f.Content)

	cases := map[uint32]string{
		0: "",
		1: "first",
		2: "second",
		3: "third",
		4: "",
	}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestFormatPathBasename(t *testing.T) {
	f := &File{Path: "bots/commands/ping.js"}
	if got := f.FormatPath("basename", ""); got != "ping.js" {
		t.Errorf("basename: got %q", got)
	}
	if got := f.FormatPath("", ""); got != f.Path {
		t.Errorf("default: got %q", got)
	}
}
