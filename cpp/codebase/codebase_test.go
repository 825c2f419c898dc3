package codebase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dagangwood163/cppclean/cpp/parser"
)

const headerSource = `
#include <string>
#include "db/conn.h"

namespace db {

class Conn;

class Pool {
 public:
  Pool();
  ~Pool();
  Conn* Acquire();
 private:
  int size_;
};

}
`

func TestUpdateFile(t *testing.T) {
	cb := New(".")
	if err := cb.UpdateFile("pool.h", []byte(headerSource)); err != nil {
		t.Fatal(err)
	}

	f := cb.GetFile("pool.h")
	if f == nil {
		t.Fatal("file not indexed")
	}
	if len(f.ParseErrs) != 0 {
		t.Fatalf("parse errors: %v", f.ParseErrs)
	}
	// Two includes, a forward declaration, and a class definition.
	if len(f.Nodes) != 4 {
		t.Fatalf("got %d nodes, want 4", len(f.Nodes))
	}

	includes := cb.Includes("pool.h")
	if len(includes) != 2 {
		t.Fatalf("got %d includes, want 2", len(includes))
	}
	if !includes[0].System || includes[0].Filename != "string" {
		t.Errorf("include 0 = %v, want <string>", includes[0])
	}
	if includes[1].System || includes[1].Filename != "db/conn.h" {
		t.Errorf("include 1 = %v, want \"db/conn.h\"", includes[1])
	}
}

func TestFindClassPrefersDefinition(t *testing.T) {
	cb := New(".")
	cb.UpdateFile("fwd.h", []byte("namespace db { class Pool; }"))
	cb.UpdateFile("pool.h", []byte(headerSource))

	cls, path := cb.FindClass("db::Pool")
	if cls == nil {
		t.Fatal("db::Pool not found")
	}
	if cls.Body == nil {
		t.Error("got a forward declaration, want the definition")
	}
	if path != "pool.h" {
		t.Errorf("found in %q, want pool.h", path)
	}

	if cls, _ := cb.FindClass("db::Conn"); cls == nil || cls.Body != nil {
		t.Error("db::Conn should resolve to its forward declaration")
	}

	if cls, _ := cb.FindClass("nope"); cls != nil {
		t.Errorf("found %v for unknown name", cls)
	}
}

func TestUpdateFileKeepsNodesAroundErrors(t *testing.T) {
	cb := New(".")
	cb.UpdateFile("broken.h", []byte("class Good {}; class Bad {"))

	f := cb.GetFile("broken.h")
	if len(f.ParseErrs) != 1 {
		t.Fatalf("got %d parse errors, want 1", len(f.ParseErrs))
	}
	if len(f.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(f.Nodes))
	}
	if cls, ok := f.Nodes[0].(*parser.Class); !ok || cls.Name != "Good" {
		t.Errorf("node %v, want class Good", f.Nodes[0])
	}
}

func TestScanAll(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.h", "class A {};")
	write("b.cc", "void b() {}")
	write("notes.txt", "not source")

	cb := New(dir)
	if err := cb.ScanAll(); err != nil {
		t.Fatal(err)
	}
	if got := len(cb.Files()); got != 2 {
		t.Errorf("indexed %d files %v, want 2", got, cb.Files())
	}
}

func TestOffsetToPosition(t *testing.T) {
	content := []byte("abc\ndef\nghi")
	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 0, 0},
		{2, 0, 2},
		{4, 1, 0},
		{9, 2, 1},
		{99, 2, 3},
	}
	for _, tt := range tests {
		pos := offsetToPosition(content, tt.offset)
		if int(pos.Line) != tt.line || int(pos.Character) != tt.col {
			t.Errorf("offset %d: got %d:%d, want %d:%d",
				tt.offset, pos.Line, pos.Character, tt.line, tt.col)
		}
	}
}
