package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"task-flow-backend/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// UploadAttachment сохраняет вложение и возвращает ссылку на него
	UploadAttachment(ctx context.Context, spaceID string, file models.File) (url string, err error)
	MakeBucket(ctx context.Context) error
}

var Instance Provider

type impl struct {
	s3client   *minio.Client
	bucketName string
	publicURL  string
}

func NewInstance(s3client *minio.Client, bucketName, publicURL string) {
	Instance = &impl{
		s3client:   s3client,
		bucketName: bucketName,
		publicURL:  strings.TrimSuffix(publicURL, "/"),
	}
}

func (i impl) UploadAttachment(ctx context.Context, spaceID string, file models.File) (string, error) {
	if i.s3client == nil {
		return "", errors.New("хранилище файлов не настроено")
	}
	objectName := GetObjectName(spaceID, file.FileName)
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, objectName, bytes.NewReader(file.Body), int64(len(file.Body)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		log.
			WithField("space_id", spaceID).
			WithField("file_name", file.FileName).
			WithError(err).
			Error("ошибка загрузки вложения в хранилище")
		return "", errors.Wrap(err, "ошибка загрузки вложения")
	}
	return i.getURL(objectName), nil
}

func (i impl) MakeBucket(ctx context.Context) error {
	if i.s3client == nil {
		return errors.New("хранилище файлов не настроено")
	}
	location := "us-east-1"
	exists, err := i.s3client.BucketExists(ctx, i.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.s3client.MakeBucket(ctx, i.bucketName, minio.MakeBucketOptions{Region: location})
}

func (i impl) getURL(objectName string) string {
	if i.publicURL != "" {
		return fmt.Sprintf("%s/%s/%s", i.publicURL, i.bucketName, objectName)
	}
	return fmt.Sprintf("%s/%s/%s", i.s3client.EndpointURL().String(), i.bucketName, objectName)
}

var unsafeNameChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// GetObjectName уникальное имя объекта: <space>/<uuid>-<имя файла без пробелов>
func GetObjectName(spaceID, fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = unsafeNameChars.ReplaceAllString(base, "_")
	if base == "" || base == "." || base == "/" {
		base = "file"
	}
	return fmt.Sprintf("%s/%s-%s", spaceID, uuid.NewString(), base)
}
