package clients

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNewLocalStorage_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	c, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("storage init: %v", err)
	}
	if info, err := os.Stat(c.BaseDir); err != nil || !info.IsDir() {
		t.Fatalf("expected %s to be a directory, err=%v", dir, err)
	}
}

func TestSave_WritesFixedName(t *testing.T) {
	tmpDir := t.TempDir()
	c, err := NewLocalStorage(tmpDir)
	if err != nil {
		t.Fatalf("storage init: %v", err)
	}

	path, err := c.Save(context.Background(), "accounts.csv", []byte("a,b\n"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if want := filepath.Join(tmpDir, "accounts.csv"); path != want {
		t.Fatalf("expected %s; got %s", want, path)
	}

	// second save replaces the first
	if _, err := c.Save(context.Background(), "accounts.csv", []byte("c,d\n")); err != nil {
		t.Fatalf("save: %v", err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != "c,d\n" {
		t.Fatalf("content mismatch: %q", body)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestSave_StripsDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	c, _ := NewLocalStorage(tmpDir)

	path, err := c.Save(context.Background(), "../../escape.csv", []byte("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Dir(path) != tmpDir {
		t.Fatalf("file written outside base dir: %s", path)
	}
}

func TestSave_CancelledContext(t *testing.T) {
	c, _ := NewLocalStorage(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Save(ctx, "bills.csv", []byte("x")); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestS3Client_ObjectKey(t *testing.T) {
	c := &S3Client{prefix: "fixtures/2026"}
	if got := c.ObjectKey("bills.csv"); got != "fixtures/2026/bills.csv" {
		t.Fatalf("unexpected key %s", got)
	}
	c2 := &S3Client{}
	if got := c2.ObjectKey("bills.csv"); got != "bills.csv" {
		t.Fatalf("unexpected key %s", got)
	}
}
