package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/myhome-soft/myhome/internal/server/config"
	"github.com/myhome-soft/myhome/internal/server/models"
	"github.com/myhome-soft/myhome/internal/server/repositories"
)

// Seams for the S3 SDK so presign flows can be tested without a live
// endpoint.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const presignExpiry = 15 * time.Minute

// DocumentService stores one document per house member. Content lives in
// object storage and moves through presigned URLs; only metadata touches
// the database.
type DocumentService struct {
	db          *sql.DB
	repomanager repositories.RepositoryManager
	config      *config.Config
}

func NewDocumentService(db *sql.DB, m repositories.RepositoryManager, cfg *config.Config) *DocumentService {
	return &DocumentService{db: db, repomanager: m, config: cfg}
}

func (s *DocumentService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

func memberStorageKey(memberID string) string {
	return fmt.Sprintf("members/%s/document", memberID)
}

// CreateUploadURL records document metadata for the member and returns a
// presigned PUT URL for the content. A repeated call replaces the previous
// metadata; the object is overwritten in place because the storage key is
// derived from the member id.
func (s *DocumentService) CreateUploadURL(ctx context.Context, memberID string, filename string) (*models.MemberDocument, string, error) {
	if _, err := s.repomanager.Houses(s.db).FindMemberByMemberID(ctx, memberID); err != nil {
		return nil, "", err
	}

	doc := &models.MemberDocument{
		MemberID:   memberID,
		Filename:   filename,
		StorageKey: memberStorageKey(memberID),
		UploadedAt: time.Now(),
	}

	doc, err := s.repomanager.Documents(s.db).Upsert(ctx, doc)
	if err != nil {
		return nil, "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &doc.StorageKey,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, "", err
	}

	return doc, req.URL, nil
}

// CreateDownloadURL returns a presigned GET URL for the member's document.
func (s *DocumentService) CreateDownloadURL(ctx context.Context, memberID string) (*models.MemberDocument, string, error) {
	doc, err := s.repomanager.Documents(s.db).FindByMember(ctx, memberID)
	if err != nil {
		return nil, "", err
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &doc.StorageKey,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, "", err
	}

	return doc, req.URL, nil
}

// DeleteDocument removes the metadata row. The stored object is left for
// bucket lifecycle rules; the key becomes unreachable once the row is gone.
func (s *DocumentService) DeleteDocument(ctx context.Context, memberID string) error {
	return s.repomanager.Documents(s.db).Delete(ctx, memberID)
}
