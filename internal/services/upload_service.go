package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

const (
	MaxImageBytes      = 4 << 20
	MaxVideoBytes      = 32 << 20
	MaxImagesPerUpload = 10
	MaxVideosPerUpload = 5
)

var (
	ErrUploadMissingFile     = errors.New("no file uploaded")
	ErrUploadUnsupportedType = errors.New("only image and video files are supported")
	ErrUploadTooLarge        = errors.New("file too large")
	ErrUploadTooManyFiles    = errors.New("too many files")
	ErrUploadFailed          = errors.New("upload failed")
)

// ObjectStore is the storage backend an upload is written to.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

type UploadedFile struct {
	URL  string    `json:"url"`
	Type MediaKind `json:"type"`
}

type UploadService struct {
	store ObjectStore
	now   func() time.Time
}

func NewUploadService(store ObjectStore) *UploadService {
	return &UploadService{store: store, now: time.Now}
}

// Store validates and saves a single image or video.
func (service *UploadService) Store(ctx context.Context, header *multipart.FileHeader) (UploadedFile, error) {
	if header == nil {
		return UploadedFile{}, ErrUploadMissingFile
	}
	kind, contentType, err := service.classify(header)
	if err != nil {
		return UploadedFile{}, err
	}
	if header.Size > MaxUploadBytes(kind) {
		return UploadedFile{}, fmt.Errorf("%w: %s over %d bytes", ErrUploadTooLarge, kind, MaxUploadBytes(kind))
	}
	return service.put(ctx, header, kind, contentType)
}

// StoreBatch saves up to the per-kind file count of kind-only files. Every
// file is checked before any is written.
func (service *UploadService) StoreBatch(ctx context.Context, headers []*multipart.FileHeader, kind MediaKind) ([]UploadedFile, error) {
	if len(headers) == 0 {
		return nil, ErrUploadMissingFile
	}
	if len(headers) > MaxUploadCount(kind) {
		return nil, fmt.Errorf("%w: at most %d %s files", ErrUploadTooManyFiles, MaxUploadCount(kind), kind)
	}

	contentTypes := make([]string, len(headers))
	for index, header := range headers {
		detected, contentType, err := service.classify(header)
		if err != nil {
			return nil, err
		}
		if detected != kind {
			return nil, fmt.Errorf("%w: expected %s", ErrUploadUnsupportedType, kind)
		}
		if header.Size > MaxUploadBytes(kind) {
			return nil, fmt.Errorf("%w: %s over %d bytes", ErrUploadTooLarge, kind, MaxUploadBytes(kind))
		}
		contentTypes[index] = contentType
	}

	files := make([]UploadedFile, 0, len(headers))
	for index, header := range headers {
		file, err := service.put(ctx, header, kind, contentTypes[index])
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func (service *UploadService) put(ctx context.Context, header *multipart.FileHeader, kind MediaKind, contentType string) (UploadedFile, error) {
	body, err := header.Open()
	if err != nil {
		return UploadedFile{}, fmt.Errorf("%w: open %s: %v", ErrUploadFailed, header.Filename, err)
	}
	defer body.Close()

	key := UploadKey(service.now(), header.Filename)
	url, err := service.store.Put(ctx, key, body, header.Size, contentType)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return UploadedFile{URL: url, Type: kind}, nil
}

// classify trusts the declared part Content-Type and falls back to sniffing
// the content when the client sent none or a generic binary type.
func (service *UploadService) classify(header *multipart.FileHeader) (MediaKind, string, error) {
	contentType := declaredContentType(header)
	if contentType == "" || contentType == "application/octet-stream" {
		body, err := header.Open()
		if err != nil {
			return "", "", fmt.Errorf("%w: open %s: %v", ErrUploadFailed, header.Filename, err)
		}
		detected, err := mimetype.DetectReader(body)
		_ = body.Close()
		if err != nil {
			return "", "", fmt.Errorf("%w: detect %s: %v", ErrUploadFailed, header.Filename, err)
		}
		contentType = detected.String()
	}

	switch {
	case strings.HasPrefix(contentType, "image/"):
		return MediaImage, contentType, nil
	case strings.HasPrefix(contentType, "video/"):
		return MediaVideo, contentType, nil
	default:
		return "", "", ErrUploadUnsupportedType
	}
}

func declaredContentType(header *multipart.FileHeader) string {
	raw := strings.TrimSpace(header.Header.Get("Content-Type"))
	if raw == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil {
		return strings.ToLower(raw)
	}
	return mediaType
}

func MaxUploadBytes(kind MediaKind) int64 {
	if kind == MediaVideo {
		return MaxVideoBytes
	}
	return MaxImageBytes
}

func MaxUploadCount(kind MediaKind) int {
	if kind == MediaVideo {
		return MaxVideosPerUpload
	}
	return MaxImagesPerUpload
}

// UploadKey names an object "<unix millis>-<base file name>".
func UploadKey(now time.Time, filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), `\`, "/"))
	name = strings.TrimLeft(name, ".")
	if name == "" || name == "/" {
		name = "upload"
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), name)
}
