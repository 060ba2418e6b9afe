// Package images turns image files into the inline-encoded attachments
// stored on concepts.
package images

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/studytrack/studytrack/internal/constants"
	apperrors "github.com/studytrack/studytrack/internal/errors"
	"github.com/studytrack/studytrack/internal/models"
)

// Encode reads one image file and produces an attachment with the raw
// bytes inlined as a base64 data URI. Files over the attachment size
// limit or with a non-image content type are rejected with a
// ValidationError.
func Encode(path string, now time.Time) (models.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("failed to read image: %w", err)
	}
	if info.Size() > constants.MaxAttachmentBytes {
		return models.Attachment{}, apperrors.NewValidation("image",
			"%s is %d bytes, over the %d byte limit", filepath.Base(path), info.Size(), constants.MaxAttachmentBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("failed to read image: %w", err)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return models.Attachment{}, apperrors.NewValidation("image",
			"%s is not an image (detected %s)", filepath.Base(path), mimeType)
	}

	return models.Attachment{
		Data:    fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
		Name:    filepath.Base(path),
		AddedAt: now,
	}, nil
}

// EncodeAll encodes a multi-file selection. It is all-or-nothing: if any
// file fails, nothing is returned, so a partial batch is never committed.
func EncodeAll(paths []string, now time.Time) ([]models.Attachment, error) {
	attachments := make([]models.Attachment, 0, len(paths))
	for _, path := range paths {
		attachment, err := Encode(path, now)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, attachment)
	}
	return attachments, nil
}
