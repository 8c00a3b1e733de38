package upload

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
)

const MaxImageSize = 2 << 20 // 2 MiB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Storage persists uploaded files and serves back public URLs.
//
//go:generate mockgen -destination=mock/storage_mock.go -package=mock . Storage
type Storage interface {
	SaveImage(ctx context.Context, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, publicURL string) error
}

type diskStorage struct {
	dir     string
	baseURL string
	logger  *zap.Logger
}

// NewDiskStorage stores files under dir and returns URLs rooted at
// baseURL/uploads/.
func NewDiskStorage(dir, baseURL string, logger ...*zap.Logger) (Storage, error) {
	l := zap.L().Named("upload.disk")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &diskStorage{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  l,
	}, nil
}

func (s *diskStorage) SaveImage(_ context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > MaxImageSize {
		return "", apperror.New(apperror.CodeInvalidInput,
			"image must not exceed 2MB", http.StatusBadRequest)
	}

	src, err := file.Open()
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeInvalidInput,
			"failed to read uploaded file", http.StatusBadRequest)
	}
	defer src.Close()

	// Sniff the real content type instead of trusting the extension.
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", apperror.Wrap(err, apperror.CodeInvalidInput,
			"failed to read uploaded file", http.StatusBadRequest)
	}

	ext, ok := allowedImageTypes[http.DetectContentType(head[:n])]
	if !ok {
		return "", apperror.New(apperror.CodeInvalidInput,
			"only JPG and PNG images are allowed", http.StatusBadRequest)
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", apperror.Wrap(err, apperror.CodeInternalError,
			"failed to process uploaded file", http.StatusInternalServerError)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeInternalError,
			"failed to store uploaded file", http.StatusInternalServerError)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", apperror.Wrap(err, apperror.CodeInternalError,
			"failed to store uploaded file", http.StatusInternalServerError)
	}

	s.logger.Debug("image stored", zap.String("file", name))

	return s.baseURL + "/uploads/" + name, nil
}

func (s *diskStorage) Remove(_ context.Context, publicURL string) error {
	idx := strings.LastIndex(publicURL, "/uploads/")
	if idx < 0 {
		return nil
	}

	name := filepath.Base(publicURL[idx+len("/uploads/"):])
	if name == "" || name == "." {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
