// Package media uploads local files to an S3-compatible object store and
// returns their public URLs. Handlers save multipart uploads to a temp dir
// first; Upload consumes and removes the local file either way.
package media

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	appconfig "vidtube-backend/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type Uploader interface {
	Upload(localPath string) (string, error)
}

type s3Uploader struct {
	cfg *appconfig.Config
}

func NewS3Uploader(cfg *appconfig.Config) Uploader {
	return &s3Uploader{cfg: cfg}
}

func (u *s3Uploader) client() (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(u.cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			u.cfg.S3AccessKey,
			u.cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if u.cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(u.cfg.S3BaseEndpoint)
		}
		o.UsePathStyle = u.cfg.S3BaseEndpoint != ""
	}), nil
}

func storageKey(localPath string) string {
	d := time.Now()
	return fmt.Sprintf("media/%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Ext(localPath))
}

// Upload pushes the file at localPath to the bucket and returns its public
// URL. The local file is removed on success and on failure alike, so failed
// uploads never leave orphaned temp files behind.
func (u *s3Uploader) Upload(localPath string) (string, error) {
	defer os.Remove(localPath)

	if localPath == "" {
		return "", fmt.Errorf("no file to upload")
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	client, err := u.client()
	if err != nil {
		return "", err
	}

	key := storageKey(localPath)
	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.S3Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return u.publicURL(key), nil
}

func (u *s3Uploader) publicURL(key string) string {
	if u.cfg.S3PublicURL != "" {
		return strings.TrimRight(u.cfg.S3PublicURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.S3Bucket, u.cfg.S3Region, key)
}
