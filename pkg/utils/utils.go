package utils

import (
	"CafeAnalyzer/pkg/capture"
	"CafeAnalyzer/pkg/response"
	"crypto/rand"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var ErrFileTooLarge = response.NewError(http.StatusRequestEntityTooLarge, "file size exceeds limit")

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateMediaFile(file *multipart.FileHeader) (string, error)
	ReadFile(file *multipart.FileHeader) ([]byte, error)
}

type utils struct {
	maxFileSize int64
}

func New(maxFileSize int64) IUtils {
	if maxFileSize <= 0 {
		maxFileSize = 50 * 1024 * 1024
	}
	return &utils{
		maxFileSize: maxFileSize,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// ValidateMediaFile checks size and media type and returns the effective
// content type, falling back to the file extension when the part header is
// missing or generic.
func (u *utils) ValidateMediaFile(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", capture.ErrNoMediaSelected
	}

	if file.Size == 0 {
		return "", capture.ErrNoMediaSelected
	}

	if file.Size > u.maxFileSize {
		return "", ErrFileTooLarge
	}

	contentType := ContentTypeOf(file.Filename, file.Header.Get("Content-Type"))
	if capture.KindOf(contentType) == capture.ModeNone {
		return "", capture.ErrUnsupportedMedia
	}

	return contentType, nil
}

func (u *utils) ReadFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(io.LimitReader(src, u.maxFileSize+1))
}

func ContentTypeOf(filename string, declared string) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
		return byExt
	}
	return declared
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeFilenamePart replaces characters that do not belong in a download name.
func SafeFilenamePart(s string) string {
	s = unsafeFilenameChars.ReplaceAllString(s, "_")
	if s == "" {
		return "_"
	}
	return s
}
