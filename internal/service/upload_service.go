package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/tuition-go-api/internal/dto"
	"github.com/noah-isme/tuition-go-api/internal/observability"
)

var (
	// ErrFileTooLarge indicates the upload exceeds the configured size cap.
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")
	// ErrUnsupportedFileType indicates a MIME type outside the allowed set.
	ErrUnsupportedFileType = errors.New("only PDF and Word documents are accepted")
)

// Allowed document types. Detection is content-based, not extension-based.
var allowedMIMETypes = map[string]string{
	"application/pdf":    "pdf",
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
}

// FileStorage abstracts the blob store behind uploads.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// UploadService validates and stores document uploads.
type UploadService interface {
	Store(ctx context.Context, filename string, reader io.Reader) (dto.UploadResponse, error)
}

type uploadService struct {
	storage  FileStorage
	maxBytes int64
	logger   zerolog.Logger
	metrics  *observability.Metrics
	tracer   trace.Tracer
}

// NewUploadService constructs an UploadService with the given size cap in MB.
func NewUploadService(storage FileStorage, maxSizeMB int, logger zerolog.Logger, metrics *observability.Metrics) UploadService {
	return &uploadService{
		storage:  storage,
		maxBytes: int64(maxSizeMB) * 1024 * 1024,
		logger:   logger.With().Str("component", "upload_service").Logger(),
		metrics:  metrics,
		tracer:   otel.Tracer("upload_service"),
	}
}

func (s *uploadService) Store(ctx context.Context, filename string, reader io.Reader) (dto.UploadResponse, error) {
	ctx, span := s.tracer.Start(ctx, "UploadService.Store")
	defer span.End()

	// Read one byte past the cap so oversized files are caught without
	// buffering an unbounded body.
	data, err := io.ReadAll(io.LimitReader(reader, s.maxBytes+1))
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("failed to read upload: %w", err)
	}

	if int64(len(data)) > s.maxBytes {
		s.reject("too_large")
		return dto.UploadResponse{}, ErrFileTooLarge
	}

	detected := mimetype.Detect(data)
	fileType, ok := allowedMIMETypes[detected.String()]
	if !ok {
		s.reject("unsupported_type")
		s.logger.Warn().Str("mime", detected.String()).Str("filename", filename).Msg("upload rejected")
		return dto.UploadResponse{}, ErrUnsupportedFileType
	}

	start := time.Now()
	url, err := s.storage.Upload(ctx, filename, bytes.NewReader(data))
	if err != nil {
		return dto.UploadResponse{}, err
	}

	if s.metrics != nil {
		s.metrics.UploadDuration.Observe(time.Since(start).Seconds())
	}

	s.logger.Info().
		Str("filename", filename).
		Str("file_type", fileType).
		Int("size", len(data)).
		Msg("file stored")

	return dto.UploadResponse{
		URL:      url,
		Filename: filename,
		FileType: fileType,
		Size:     int64(len(data)),
	}, nil
}

func (s *uploadService) reject(reason string) {
	if s.metrics != nil {
		s.metrics.UploadsRejected.WithLabelValues(reason).Inc()
	}
}
