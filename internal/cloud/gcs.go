// Package cloud publishes generated tables to Google Cloud Storage and
// loads them into BigQuery.
package cloud

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/theirongolddev/finmock/internal/source"
)

// UploadTimeout bounds each object upload.
const UploadTimeout = 2 * time.Minute

// Uploaded describes one object written to GCS.
type Uploaded struct {
	Name   string // table file name, e.g. fact_gl.csv
	Object string
	URI    string
	Bytes  int64
}

// ClientOptions returns the Google API options for the given credentials
// file. Empty means Application Default Credentials.
func ClientOptions(credentialsFile string) []option.ClientOption {
	if credentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}

// ObjectName joins prefix, run id and file name into an object path.
func ObjectName(prefix, runID, file string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return path.Join(runID, file)
	}
	return path.Join(prefix, runID, file)
}

// URI returns the gs:// URI for an object.
func URI(bucket, object string) string {
	return "gs://" + bucket + "/" + object
}

// Uploader writes files to a single bucket.
type Uploader struct {
	client *storage.Client
	bucket string
}

// NewUploader creates a storage client for bucket.
func NewUploader(ctx context.Context, bucket string, opts ...option.ClientOption) (*Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs bucket is not configured")
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

// Close releases the storage client.
func (u *Uploader) Close() error {
	return u.client.Close()
}

// UploadFile copies a local file to objectName.
func (u *Uploader) UploadFile(ctx context.Context, objectName, filePath string) (int64, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("open file %q: %w", filePath, err)
	}
	defer func() { _ = f.Close() }()

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	w := u.client.Bucket(u.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "text/csv"

	n, err := io.Copy(w, f)
	if err != nil {
		_ = w.Close()
		return 0, fmt.Errorf("copy file to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("finalize upload: %w", err)
	}
	return n, nil
}

// UploadTables uploads every table file under prefix/runID/.
func (u *Uploader) UploadTables(ctx context.Context, files []source.DiscoveredFile, prefix, runID string) ([]Uploaded, error) {
	out := make([]Uploaded, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		obj := ObjectName(prefix, runID, f.Name)
		n, err := u.UploadFile(ctx, obj, f.Path)
		if err != nil {
			return out, fmt.Errorf("uploading %s: %w", f.Name, err)
		}
		out = append(out, Uploaded{Name: f.Name, Object: obj, URI: URI(u.bucket, obj), Bytes: n})
	}
	return out, nil
}
