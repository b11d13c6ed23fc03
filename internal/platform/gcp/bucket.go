package gcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

// BucketCategory namespaces object keys within the project bucket.
type BucketCategory string

const (
	BucketCategoryAbstract BucketCategory = "abstract"
	BucketCategoryAudio    BucketCategory = "audio"
	BucketCategoryReport   BucketCategory = "report"
)

// BucketService is the blob-store boundary: store bytes, get a key back,
// fetch bytes by key. Everything else about storage is this package's
// business.
type BucketService interface {
	UploadFile(ctx context.Context, category BucketCategory, key string, file io.Reader) error
	DownloadFile(ctx context.Context, category BucketCategory, key string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, category BucketCategory, key string) error
	GetPublicURL(category BucketCategory, key string) string
}

type bucketService struct {
	log           *logger.Logger
	storageClient *storage.Client
	bucketName    string
	publicBaseURL string
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
	serviceLog := log.With("service", "BucketService")

	bucketName := strings.TrimSpace(os.Getenv("PROJECT_GCS_BUCKET_NAME"))
	if bucketName == "" {
		return nil, fmt.Errorf("missing env var PROJECT_GCS_BUCKET_NAME")
	}

	ctx := context.Background()
	opts := ClientOptionsFromEnv()
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	stClient, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	serviceLog.Info("Object storage initialized", "bucket", bucketName)

	return &bucketService{
		log:           serviceLog,
		storageClient: stClient,
		bucketName:    bucketName,
		publicBaseURL: "https://storage.googleapis.com",
	}, nil
}

func objectKey(category BucketCategory, key string) string {
	return string(category) + "/" + strings.TrimLeft(key, "/")
}

func (bs *bucketService) UploadFile(ctx context.Context, category BucketCategory, key string, file io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := bs.storageClient.Bucket(bs.bucketName).Object(objectKey(category, key)).NewWriter(ctx)
	if ct := contentTypeForKey(key); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (bs *bucketService) DownloadFile(ctx context.Context, category BucketCategory, key string) (io.ReadCloser, error) {
	r, err := bs.storageClient.Bucket(bs.bucketName).Object(objectKey(category, key)).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open GCS reader: %w", err)
	}
	return r, nil
}

func (bs *bucketService) DeleteFile(ctx context.Context, category BucketCategory, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := bs.storageClient.Bucket(bs.bucketName).Object(objectKey(category, key)).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete GCS object: %w", err)
	}
	return nil
}

func (bs *bucketService) GetPublicURL(category BucketCategory, key string) string {
	return fmt.Sprintf("%s/%s/%s", bs.publicBaseURL, bs.bucketName, objectKey(category, key))
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(s, ".txt"):
		return "text/plain"
	case strings.HasSuffix(s, ".wav"):
		return "audio/wav"
	case strings.HasSuffix(s, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(s, ".ogg"), strings.HasSuffix(s, ".opus"):
		return "audio/ogg"
	case strings.HasSuffix(s, ".flac"):
		return "audio/flac"
	default:
		return ""
	}
}
