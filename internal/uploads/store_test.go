package uploads

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAllowed(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"invoice.pdf", "site.JPG", "photo.jpeg", "scan.png", "pic.webp"} {
		if !Allowed(name) {
			t.Errorf("Allowed(%q) = false", name)
		}
	}
	for _, name := range []string{"macro.xlsx", "notes.txt", "archive.zip", "noext"} {
		if Allowed(name) {
			t.Errorf("Allowed(%q) = true", name)
		}
	}
}

func TestIsImageExt(t *testing.T) {
	t.Parallel()

	if IsImageExt("invoice.pdf") {
		t.Error("pdf classified as image")
	}
	if !IsImageExt("photo.PNG") {
		t.Error("png not classified as image")
	}
}

func TestImportStagesCopy(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "invoice.pdf")
	if err := os.WriteFile(src, []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := &Store{now: func() time.Time { return time.Unix(1710000000, 0) }}
	t.Cleanup(func() { _ = store.Close() })

	got, err := store.Import(src)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got.ID != "UPL-1710000000000" {
		t.Errorf("ID = %q", got.ID)
	}
	if got.Name != "invoice.pdf" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.IsImage {
		t.Error("pdf flagged as image")
	}

	data, err := os.ReadFile(got.Path)
	if err != nil {
		t.Fatalf("read staged copy: %v", err)
	}
	if string(data) != "%PDF-1.4 test" {
		t.Errorf("staged bytes = %q", data)
	}

	// Deleting the source must not affect the staged copy.
	if err := os.Remove(src); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(got.Path); err != nil {
		t.Errorf("staged copy gone after source removal: %v", err)
	}
}

func TestImportRejectsUnsupportedType(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "macro.xlsx")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore()
	t.Cleanup(func() { _ = store.Close() })

	if _, err := store.Import(src); err == nil {
		t.Fatal("expected error for unsupported type")
	}
	if store.Dir() != "" {
		t.Error("staging dir created for rejected import")
	}
}

func TestCloseReleasesStagingDir(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(src, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore()
	staged, err := store.Import(src)
	if err != nil {
		t.Fatal(err)
	}
	dir := store.Dir()
	if dir == "" {
		t.Fatal("no staging dir after import")
	}

	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(staged.Path); !os.IsNotExist(err) {
		t.Error("staged copy survived Close")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("staging dir survived Close")
	}

	// Idempotent; imports after close fail.
	if err := store.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := store.Import(src); err == nil {
		t.Error("Import after Close succeeded")
	}
}
