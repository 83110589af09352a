package cloud

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/de-tools/health-atlas/pkg/models/domain"
	"github.com/de-tools/health-atlas/pkg/services/anonymize"
	"github.com/google/uuid"
)

const (
	DefaultUploadPrefix = "hospital-economics/anonymized"
	reportPrefix        = "reports"
)

var ErrEmptyUpload = errors.New("data and filename are required")

type StorageConfig struct {
	Bucket       string
	UploadPrefix string
}

// StorageService writes anonymized uploads and archived reports to object storage.
type StorageService struct {
	uploader ObjectUploader
	cfg      StorageConfig
	now      func() time.Time
}

// NewStorageService accepts a nil uploader; every write then fails with ErrUnavailable.
func NewStorageService(uploader ObjectUploader, cfg StorageConfig) *StorageService {
	if cfg.UploadPrefix == "" {
		cfg.UploadPrefix = DefaultUploadPrefix
	}
	return &StorageService{uploader: uploader, cfg: cfg, now: time.Now}
}

// UploadRecords anonymizes records before anything leaves the process.
func (s *StorageService) UploadRecords(ctx context.Context, filename string, records []anonymize.Record) (domain.UploadResult, error) {
	if filename == "" || len(records) == 0 {
		return domain.UploadResult{}, ErrEmptyUpload
	}
	if s.uploader == nil || s.cfg.Bucket == "" {
		return domain.UploadResult{}, ErrUnavailable
	}

	anonymized := anonymize.Records(records)
	body, err := anonymize.CSV(anonymized)
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("failed to encode records: %w", err)
	}

	now := s.now().UTC()
	key := path.Join(s.cfg.UploadPrefix, fmt.Sprintf("%s_%s.csv", path.Base(filename), strconv.FormatInt(now.UnixMilli(), 10)))
	location, err := s.uploader.Upload(ctx, Object{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		ContentType: "text/csv",
		Body:        body,
		Metadata: map[string]string{
			"upload-date": now.Format(time.RFC3339),
			"data-type":   "hospital-economics",
			"anonymized":  "true",
		},
	})
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return domain.UploadResult{
		Bucket:   s.cfg.Bucket,
		Key:      key,
		Location: location,
		Records:  len(anonymized),
	}, nil
}

// Archive stores a compiled report under reports/<id>/<filename>.
func (s *StorageService) Archive(ctx context.Context, filename, contentType string, payload []byte) (string, error) {
	if s.uploader == nil || s.cfg.Bucket == "" {
		return "", ErrUnavailable
	}
	key := path.Join(reportPrefix, uuid.NewString(), path.Base(filename))
	location, err := s.uploader.Upload(ctx, Object{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		ContentType: contentType,
		Body:        payload,
		Metadata: map[string]string{
			"upload-date": s.now().UTC().Format(time.RFC3339),
			"data-type":   "report",
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", key, err)
	}
	return location, nil
}
