package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"nutrisur/config"
	"nutrisur/infras/otel"
	"nutrisur/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"

	region = "auto"
)

var ErrForeignURL = errors.New("url does not belong to the storage bucket")

// Storage keeps uploaded images in a single S3-compatible bucket served from a public domain.
type Storage interface {
	Upload(ctx context.Context, directory string, file multipart.File, header *multipart.FileHeader) (url string, err error)
	Delete(ctx context.Context, url string) error
}

type storageImpl struct {
	client *s3.Client
	bucket string
	public string
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Storage {
	provider := credentials.NewStaticCredentialsProvider(
		cfg.External.S3.AccessKeyID,
		cfg.External.S3.SecretAccessKey,
		constant.Empty,
	)

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(provider),
		awsConfig.WithRegion(region),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.External.S3.APIEndpoint)
		o.UsePathStyle = true
	})

	return &storageImpl{
		client: client,
		bucket: cfg.External.S3.BucketName,
		public: strings.TrimSuffix(cfg.External.S3.PublicDomain, "/"),
		otel:   otel,
	}
}

// Upload stores the file under a random name keeping the original extension.
func (s *storageImpl) Upload(ctx context.Context, directory string, file multipart.File, header *multipart.FileHeader) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(&err)

	key := path.Join(directory, ObjectName(header.Filename))

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    s.bucket,
	})

	buf := bytes.NewBuffer(nil)
	if _, err = buf.ReadFrom(file); err != nil {
		return constant.Empty, fmt.Errorf("failed to read file: %w", err)
	}

	reader := bytes.NewReader(buf.Bytes())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(header.Header.Get(constant.RequestHeaderContentType)),
		ContentLength: aws.Int64(reader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return s.public + "/" + key, nil
}

func (s *storageImpl) Delete(ctx context.Context, url string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	key, ok := ObjectKey(s.public, url)
	if !ok {
		return ErrForeignURL
	}

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    s.bucket,
	})

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func ObjectName(original string) string {
	name := uuid.NewString()

	if ext := path.Ext(original); ext != constant.Empty {
		name += strings.ToLower(ext)
	}

	return name
}

// ObjectKey strips the public domain from a url produced by Upload.
func ObjectKey(publicDomain, url string) (string, bool) {
	prefix := strings.TrimSuffix(publicDomain, "/") + "/"

	if publicDomain == constant.Empty || !strings.HasPrefix(url, prefix) {
		return constant.Empty, false
	}

	key := strings.TrimPrefix(url, prefix)

	return key, key != constant.Empty
}
