// Package s3 хранит резервные копии данных в S3-совместимом хранилище
package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
}

// UploadAPI часть s3manager.Uploader, используемая бакетом
type UploadAPI interface {
	UploadWithContext(ctx context.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// DownloadAPI часть s3manager.Downloader, используемая бакетом
type DownloadAPI interface {
	DownloadWithContext(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, opts ...func(*s3manager.Downloader)) (int64, error)
}

// ObjectAPI часть клиента S3 для операций над объектами
type ObjectAPI interface {
	DeleteObjectWithContext(ctx context.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error)
}

// Bucket обертка над одним бакетом
type Bucket struct {
	uploader   UploadAPI
	downloader DownloadAPI
	objects    ObjectAPI
	config     *Config
}

// NewBucket создает бакет с AWS сессией
func NewBucket(config *Config) (*Bucket, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
	}

	// Если указан endpoint, добавляем его
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return NewBucketWithAPIs(config, s3manager.NewUploader(sess), s3manager.NewDownloader(sess), s3.New(sess)), nil
}

// NewBucketWithAPIs создает бакет поверх готовых клиентов
func NewBucketWithAPIs(config *Config, uploader UploadAPI, downloader DownloadAPI, objects ObjectAPI) *Bucket {
	return &Bucket{
		uploader:   uploader,
		downloader: downloader,
		objects:    objects,
		config:     config,
	}
}

// UploadFile загружает содержимое под ключом и возвращает его URL
func (b *Bucket) UploadFile(ctx context.Context, reader io.Reader, key string) (string, error) {
	_, err := b.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(b.config.BucketName),
		Key:    aws.String(key),
		Body:   reader,
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки: %w", err)
	}

	return b.ObjectURL(key), nil
}

// DownloadFile скачивает объект в w и возвращает число байт
func (b *Bucket) DownloadFile(ctx context.Context, w io.WriterAt, key string) (int64, error) {
	n, err := b.downloader.DownloadWithContext(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(b.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, fmt.Errorf("ошибка скачивания: %w", err)
	}
	return n, nil
}

// DeleteFile удаляет объект
func (b *Bucket) DeleteFile(ctx context.Context, key string) error {
	_, err := b.objects.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления файла из S3: %w", err)
	}
	return nil
}

// ObjectURL адрес объекта в бакете
func (b *Bucket) ObjectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", b.config.Endpoint, b.config.BucketName, key)
}
