package images

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/magabrotheeeer/ambuhub/internal/common"
	"github.com/magabrotheeeer/ambuhub/internal/config"
)

const objectPrefix = "products/"

type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store загружает изображения в бакет S3 (или MinIO).
type S3Store struct {
	client    objectAPI
	bucket    string
	publicURL string
}

// NewS3Store создаёт клиента S3 со статическими ключами и path-style адресацией.
func NewS3Store(ctx context.Context, cfg config.S3) (*S3Store, error) {
	const op = "images.NewS3Store"

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return newS3Store(client, cfg), nil
}

func newS3Store(client objectAPI, cfg config.S3) *S3Store {
	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = strings.TrimSuffix(cfg.BaseEndpoint, "/") + "/" + cfg.Bucket
	}
	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}
}

// Save проверяет файл и кладёт его в бакет, возвращая публичный URL объекта.
func (s *S3Store) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	const op = "images.S3Store.Save"

	upload, err := Prepare(filename, r)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	key := objectPrefix + upload.Name
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          upload.reader(),
		ContentType:   aws.String(upload.ContentType),
		ContentLength: aws.Int64(int64(len(upload.Data))),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, common.ErrUpload, err)
	}
	return s.publicURL + "/" + key, nil
}

// Delete удаляет объект по URL, выданному Save.
func (s *S3Store) Delete(ctx context.Context, url string) error {
	const op = "images.S3Store.Delete"

	key := strings.TrimPrefix(url, s.publicURL+"/")
	if key == url || !strings.HasPrefix(key, objectPrefix) {
		return fmt.Errorf("%s: url %q is not served by this store", op, url)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
