package images

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/studytrack/studytrack/internal/constants"
	apperrors "github.com/studytrack/studytrack/internal/errors"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestEncode(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	path := writeFile(t, "diagram.png", append(pngHeader, make([]byte, 64)...))

	attachment, err := Encode(path, now)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.HasPrefix(attachment.Data, "data:image/png;base64,") {
		t.Errorf("Data = %q, want image/png data URI", attachment.Data[:40])
	}
	if attachment.Name != "diagram.png" {
		t.Errorf("Name = %q, want diagram.png", attachment.Name)
	}
	if !attachment.AddedAt.Equal(now) {
		t.Errorf("AddedAt = %v, want %v", attachment.AddedAt, now)
	}
}

func TestEncode_RejectsOversize(t *testing.T) {
	data := append(pngHeader, make([]byte, constants.MaxAttachmentBytes)...)
	path := writeFile(t, "huge.png", data)

	if _, err := Encode(path, time.Now()); !apperrors.IsValidation(err) {
		t.Errorf("Encode(oversize) error = %v, want ValidationError", err)
	}
}

func TestEncode_RejectsNonImage(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("these are study notes, not an image"))

	if _, err := Encode(path, time.Now()); !apperrors.IsValidation(err) {
		t.Errorf("Encode(text file) error = %v, want ValidationError", err)
	}
}

func TestEncode_MissingFile(t *testing.T) {
	if _, err := Encode(filepath.Join(t.TempDir(), "gone.png"), time.Now()); err == nil {
		t.Error("Encode(missing file) should fail")
	}
}

func TestEncodeAll_AllOrNothing(t *testing.T) {
	good := writeFile(t, "ok.png", append(pngHeader, make([]byte, 16)...))
	bad := writeFile(t, "bad.txt", []byte("plain text"))

	attachments, err := EncodeAll([]string{good, bad}, time.Now())
	if err == nil {
		t.Fatal("EncodeAll() with a failing file should fail")
	}
	if attachments != nil {
		t.Errorf("EncodeAll() returned %d attachments on failure, want none", len(attachments))
	}

	attachments, err = EncodeAll([]string{good, good}, time.Now())
	if err != nil {
		t.Fatalf("EncodeAll() error = %v", err)
	}
	if len(attachments) != 2 {
		t.Errorf("EncodeAll() returned %d attachments, want 2", len(attachments))
	}
}
