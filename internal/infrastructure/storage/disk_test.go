package storage

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"market.jpg", "market.jpg"},
		{"my photo.png", "my_photo.png"},
		{"../../etc/passwd", "passwd"},
		{"C:\\Users\\ze\\foto.jpeg", "foto.jpeg"},
		{"açaí.png", "a_a_.png"},
		{".hidden", "hidden"},
		{"", "upload"},
		{"..", "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := sanitizeFilename(tt.in); got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	got := sanitizeFilename(strings.Repeat("a", 150) + ".png")
	if len(got) != maxBaseNameLength || !strings.HasSuffix(got, ".png") {
		t.Errorf("sanitizeFilename() = %q (len %d), want %d chars keeping the extension", got, len(got), maxBaseNameLength)
	}
}

func TestDiskStore_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore() failed: %v", err)
	}

	name, err := store.Save("market.jpg", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if !strings.HasSuffix(name, "-market.jpg") {
		t.Errorf("Save() name = %q, want <uuid>-market.jpg", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("stored file not readable: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("stored content = %q", data)
	}

	other, err := store.Save("market.jpg", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}
	if other == name {
		t.Error("two saves of the same filename must get distinct names")
	}

	if err := store.Remove(name); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Errorf("file still present after Remove(): %v", err)
	}

	if err := store.Remove(name); err != nil {
		t.Errorf("Remove() of a missing file should succeed, got %v", err)
	}
}

func TestDiskStore_RemoveRejectsTraversal(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore() failed: %v", err)
	}

	for _, name := range []string{"", "..", "../secret", "a/b.jpg"} {
		if err := store.Remove(name); err == nil {
			t.Errorf("Remove(%q) expected error, got nil", name)
		}
	}
}

func TestDiskStore_Handler(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore() failed: %v", err)
	}
	name, err := store.Save("lampadas.svg", strings.NewReader("<svg/>"))
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	handler := http.StripPrefix("/uploads/", store.Handler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/"+name, nil))
	if rr.Code != http.StatusOK {
		t.Errorf("GET stored file status = %d, want 200", rr.Code)
	}
	if rr.Body.String() != "<svg/>" {
		t.Errorf("body = %q", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("directory listing status = %d, want 404", rr.Code)
	}
}
