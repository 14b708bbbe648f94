package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRotator_RotatesAndKeepsBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	r, err := NewRotator(path, 1, 2)
	if err != nil {
		t.Fatalf("new rotator: %v", err)
	}
	defer r.Close()
	r.MaxSize = 10

	for _, line := range []string{"first-123\n", "second-12\n", "third-123\n", "fourth-12\n"} {
		if _, err := r.Write([]byte(line)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	cur, _ := os.ReadFile(path)
	if string(cur) != "fourth-12\n" {
		t.Errorf("expected current file to hold the last line, got %q", cur)
	}
	b1, _ := os.ReadFile(path + ".1")
	if string(b1) != "third-123\n" {
		t.Errorf("expected .1 to hold third line, got %q", b1)
	}
	b2, _ := os.ReadFile(path + ".2")
	if string(b2) != "second-12\n" {
		t.Errorf("expected .2 to hold second line, got %q", b2)
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Errorf("expected no .3 backup, stat err = %v", err)
	}
}

func TestRotator_AppendsToExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := NewRotator(path, 1, 1)
	if err != nil {
		t.Fatalf("new rotator: %v", err)
	}
	r.Write([]byte("new\n"))
	r.Close()

	got, _ := os.ReadFile(path)
	if !bytes.Equal(got, []byte("old\nnew\n")) {
		t.Errorf("expected appended content, got %q", got)
	}
}

func TestRotator_NoBackupsTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	r, err := NewRotator(path, 1, 0)
	if err != nil {
		t.Fatalf("new rotator: %v", err)
	}
	defer r.Close()
	r.MaxSize = 4

	r.Write([]byte("aaaa"))
	r.Write([]byte("bb"))

	got, _ := os.ReadFile(path)
	if string(got) != "bb" {
		t.Errorf("expected bb, got %q", got)
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Error("expected no backup file")
	}
}
