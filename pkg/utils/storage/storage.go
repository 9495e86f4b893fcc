package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	goslug "github.com/gosimple/slug"

	"tokodigital_backend/pkg/config"
	"tokodigital_backend/pkg/utils/image"
	"tokodigital_backend/pkg/utils/validation"
)

var storageConfig config.StorageConfig

// Init R2 erişim bilgilerini bağlar, main'de bir kez çağrılır
func Init(cfg config.StorageConfig) {
	storageConfig = cfg
}

func getS3Client() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			storageConfig.AccessKey,
			storageConfig.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", storageConfig.AccountID))
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return client, nil
}

type UploadConfig struct {
	File      *multipart.FileHeader
	Subdomain string
	Folder    string // "products", "logos", "banners"
}

type UploadResult struct {
	URL  string
	Key  string
	Size int64
}

// UploadImage görseli doğrular, yeniden encode eder ve R2'ye yükler
func UploadImage(cfg UploadConfig) (UploadResult, error) {
	if err := validation.ValidateImage(cfg.File); err != nil {
		return UploadResult{}, err
	}

	buf, contentType, err := image.ProcessImage(cfg.File)
	if err != nil {
		return UploadResult{}, err
	}

	client, err := getS3Client()
	if err != nil {
		return UploadResult{}, err
	}

	key := fmt.Sprintf("%s/%s/%d-%s",
		goslug.Make(cfg.Subdomain),
		cfg.Folder,
		time.Now().UnixNano(),
		uuid.New().String(),
	)

	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(storageConfig.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return UploadResult{}, fmt.Errorf("could not upload file: %v", err)
	}

	return UploadResult{
		URL:  fmt.Sprintf("%s/%s", storageConfig.PublicURL, key),
		Key:  key,
		Size: int64(buf.Len()),
	}, nil
}

// DeleteObject yüklenmiş bir objeyi siler
func DeleteObject(key string) error {
	client, err := getS3Client()
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(storageConfig.Bucket),
		Key:    aws.String(key),
	})
	return err
}
