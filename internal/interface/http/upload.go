package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oksasatya/go-videotube/internal/application"
	"github.com/oksasatya/go-videotube/pkg/apperror"
)

// Uploads stages multipart files on local disk before the services move them to object storage.
type Uploads struct {
	Dir      string
	MaxBytes int64
}

// Parse reads the multipart body, capped at MaxBytes.
func (u Uploads) Parse(c *gin.Context) error {
	if c.Request.MultipartForm != nil {
		return nil
	}
	if u.MaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, u.MaxBytes)
	}
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			return apperror.Validation("upload is too large")
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return apperror.Validation("expected multipart/form-data")
		}
		return apperror.Validation("malformed multipart body")
	}
	return nil
}

// Stage saves each named file field to Dir. Absent fields map to nil. More than one file in a field
// is a validation error. On error nothing staged is left behind.
func (u Uploads) Stage(c *gin.Context, fields ...string) (map[string]*application.LocalFile, error) {
	if err := u.Parse(c); err != nil {
		return nil, err
	}
	out := make(map[string]*application.LocalFile, len(fields))
	fail := func(err error) (map[string]*application.LocalFile, error) {
		for _, f := range out {
			if f != nil {
				_ = os.Remove(f.Path)
			}
		}
		return nil, err
	}
	for _, field := range fields {
		headers := c.Request.MultipartForm.File[field]
		switch len(headers) {
		case 0:
			out[field] = nil
			continue
		case 1:
		default:
			return fail(apperror.Validation("only one " + field + " file is allowed"))
		}
		fh := headers[0]
		path := filepath.Join(u.Dir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
		if err := c.SaveUploadedFile(fh, path); err != nil {
			return fail(apperror.Internal("failed to stage upload", err))
		}
		out[field] = &application.LocalFile{
			Path:        path,
			Filename:    filepath.Base(fh.Filename),
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		}
	}
	return out, nil
}
