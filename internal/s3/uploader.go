// Package s3 предоставляет функционал для публикации файлов в Amazon S3
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/rs/zerolog"
)

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
}

// Uploader обертка над S3 uploader и клиентом
type Uploader struct {
	s3Uploader s3manageriface.UploaderAPI
	s3Client   s3iface.S3API
	config     *Config
	logger     zerolog.Logger
}

// NewUploader создает новый S3 uploader
func NewUploader(config *Config, logger zerolog.Logger) (*Uploader, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
	}

	// Совместимые с S3 хранилища требуют path-style адресации
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return NewUploaderWithAPI(config, s3manager.NewUploader(sess), s3.New(sess), logger), nil
}

// NewUploaderWithAPI создает uploader поверх готовых клиентов AWS
func NewUploaderWithAPI(config *Config, uploader s3manageriface.UploaderAPI, client s3iface.S3API, logger zerolog.Logger) *Uploader {
	return &Uploader{
		s3Uploader: uploader,
		s3Client:   client,
		config:     config,
		logger:     logger.With().Str("component", "s3").Str("bucket", config.BucketName).Logger(),
	}
}

// UploadFile загружает содержимое reader под ключом key и возвращает URL объекта
func (u *Uploader) UploadFile(ctx context.Context, reader io.Reader, key, contentType string) (string, error) {
	input := &s3manager.UploadInput{
		Bucket: aws.String(u.config.BucketName),
		Key:    aws.String(key),
		Body:   reader,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	output, err := u.s3Uploader.UploadWithContext(ctx, input)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки: %w", err)
	}

	url := u.objectURL(key)
	if output != nil && output.Location != "" && u.config.Endpoint == "" {
		url = output.Location
	}
	u.logger.Debug().Str("key", key).Str("url", url).Msg("объект загружен")
	return url, nil
}

// DeleteFile удаляет объект из S3
func (u *Uploader) DeleteFile(ctx context.Context, key string) error {
	_, err := u.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления файла из S3: %w", err)
	}

	u.logger.Debug().Str("key", key).Msg("объект удален")
	return nil
}

// objectURL формирует URL объекта для хранилища с явно заданным endpoint
func (u *Uploader) objectURL(key string) string {
	endpoint := strings.TrimSuffix(u.config.Endpoint, "/")
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", u.config.Region)
	}
	return fmt.Sprintf("%s/%s/%s", endpoint, u.config.BucketName, key)
}
