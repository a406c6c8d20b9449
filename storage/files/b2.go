package files

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/kurin/blazer/b2"
	"github.com/pkg/errors"

	"github.com/trezcool/edtrack/core/assignment"
)

// B2Store keeps submissions in a Backblaze B2 bucket, under an optional key prefix.
type B2Store struct {
	bucket *b2.Bucket
	prefix string
}

var _ assignment.FileStore = (*B2Store)(nil) // interface compliance check

func NewB2Store(ctx context.Context, accountID, appKey, bucketName, prefix string) (*B2Store, error) {
	client, err := b2.NewClient(ctx, accountID, appKey)
	if err != nil {
		return nil, errors.Wrap(err, "creating b2 client")
	}
	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, errors.Wrapf(err, "getting bucket %q", bucketName)
	}
	return &B2Store{bucket: bucket, prefix: prefix}, nil
}

// objectKey drops any directories of name and joins it under prefix.
func objectKey(prefix, name string) string {
	return path.Join(prefix, path.Base(name))
}

// downloadURL is the friendly URL B2 serves an object under (same shape as b2.Object.URL).
func downloadURL(baseURL, bucketName, key string) string {
	return fmt.Sprintf("%s/file/%s/%s", baseURL, bucketName, key)
}

// Save uploads r as the object <prefix>/<name>, replacing the current version, and returns its download URL.
func (s *B2Store) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	key := objectKey(s.prefix, name)
	w := s.bucket.Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", errors.Wrapf(err, "uploading %q", key)
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "uploading %q", key)
	}
	return downloadURL(s.bucket.BaseURL(), s.bucket.Name(), key), nil
}
