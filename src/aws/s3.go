package aws

import (
	"context"
	"io"

	Aws "github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/sirupsen/logrus"

	"github.com/byteKnight2010/spriteToolKit/src/global"
)

var (
	AclPublicRead       = Aws.String("public-read")
	DefaultCacheControl = Aws.String("public, max-age=31536000")
)

type S3Instance struct {
	uploader   *s3manager.Uploader
	downloader *s3manager.Downloader
}

func NewS3(ctx global.Context) global.AwsS3 {
	cfg := ctx.Config()
	sess, err := session.NewSession(&Aws.Config{
		Region: Aws.String(cfg.Aws.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.Aws.AccessToken,
			cfg.Aws.SecretKey,
			"",
		),
	})
	if err != nil {
		logrus.Fatal("failed to create aws session: ", err)
	}

	return &S3Instance{
		uploader:   s3manager.NewUploader(sess),
		downloader: s3manager.NewDownloader(sess),
	}
}

func (s *S3Instance) UploadFile(ctx context.Context, bucket, key string, data io.Reader, contentType, acl, cacheControl *string) error {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:       Aws.String(bucket),
		Key:          Aws.String(key),
		Body:         data,
		ContentType:  contentType,
		ACL:          acl,
		CacheControl: cacheControl,
	})
	return err
}

func (s *S3Instance) DownloadFile(ctx context.Context, bucket, key string, file io.WriterAt) error {
	_, err := s.downloader.DownloadWithContext(ctx, file, &s3.GetObjectInput{
		Bucket: Aws.String(bucket),
		Key:    Aws.String(key),
	})
	return err
}
