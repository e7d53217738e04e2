package source

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
)

func uploadForm(t *testing.T, files map[string]string, order ...string) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, name := range order {
		w, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := io.WriteString(w, files[name]); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["files"]
}

func TestUpload_SkipsNonCSV(t *testing.T) {
	files := map[string]string{"a.csv": "x\n1\n", "notes.txt": "hi", "B.CSV": "y\n2\n"}
	u := &Upload{Files: uploadForm(t, files, "a.csv", "notes.txt", "B.CSV")}
	cands, err := u.Candidates()
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(cands) != 2 || cands[0].Name != "a.csv" || cands[1].Name != "B.CSV" {
		t.Fatalf("unexpected candidates: %+v", cands)
	}
	if sk := u.Skipped(); len(sk) != 1 || sk[0] != "notes.txt" {
		t.Fatalf("unexpected skipped list: %v", sk)
	}
	rc, err := cands[0].Open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "x\n1\n" {
		t.Fatalf("unexpected content %q", b)
	}
}

func TestFolder_ListsCSVInLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.csv", "a.csv", "readme.md"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cands, err := Folder{Dir: dir}.Candidates()
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if got := Names(cands); len(got) != 2 || got[0] != "a.csv" || got[1] != "b.csv" {
		t.Fatalf("unexpected names: %v", got)
	}
	if _, err := (Folder{Dir: filepath.Join(dir, "nope")}).Candidates(); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestPaths_NamesByBase(t *testing.T) {
	cands, err := Paths{Files: []string{"/x/one/a.csv", "/y/two/a.csv", "/z/b.csv"}}.Candidates()
	if err != nil {
		t.Fatalf("candidates: %v", err)
	}
	if len(cands) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(cands))
	}
	if got := Names(cands); len(got) != 2 || got[0] != "a.csv" || got[1] != "b.csv" {
		t.Fatalf("unexpected distinct names: %v", got)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" Folder "); err != nil || m != ModeFolder {
		t.Fatalf("expected folder, got %v %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeUpload {
		t.Fatalf("expected upload default, got %v %v", m, err)
	}
	if _, err := ParseMode("s3"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
