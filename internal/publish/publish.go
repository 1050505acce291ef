// Package publish uploads per-window ranking artifacts to S3 or any
// S3-compatible object store.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// ObjectPutter is the slice of the S3 client the publisher needs
type ObjectPutter interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher uploads files under a bucket prefix
type Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
}

// New wraps an existing client
func New(client ObjectPutter, bucket, prefix string) (*Publisher, error) {
	if bucket == "" {
		return nil, errors.New("publish: bucket is required")
	}
	return &Publisher{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

// NewFromConfig builds an S3 client from the default AWS credential chain
// with the region, profile and addressing overrides in cfg.
func NewFromConfig(ctx context.Context, cfg model.PublishConfig) (*Publisher, error) {
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})
	return New(client, cfg.Bucket, cfg.Prefix)
}

// Upload is one uploaded object
type Upload struct {
	Path string
	Key  string
}

// Key returns the object key for a local file
func (p *Publisher) Key(window model.Window, file string) string {
	return path.Join(p.prefix, window.Key(), filepath.Base(file))
}

// PublishFiles uploads each file under <prefix>/<window>/. Missing files are
// skipped; any other error stops the upload.
func (p *Publisher) PublishFiles(ctx context.Context, window model.Window, files []string) ([]Upload, error) {
	var uploads []Upload
	for _, file := range files {
		data, err := os.ReadFile(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return uploads, fmt.Errorf("read %s: %w", file, err)
		}

		key := p.Key(window, file)
		_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(p.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType(file)),
		})
		if err != nil {
			return uploads, fmt.Errorf("upload s3://%s/%s: %w", p.bucket, key, err)
		}
		uploads = append(uploads, Upload{Path: file, Key: key})
	}
	return uploads, nil
}

func contentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
