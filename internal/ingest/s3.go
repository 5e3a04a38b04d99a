package ingest

import (
	"bytes"
	"context"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabclean/pkg/errors"
	"github.com/inferloop/tabclean/pkg/models"
)

// S3Config holds configuration for the S3 object source.
type S3Config struct {
	Region          string `json:"region" yaml:"region"`
	Bucket          string `json:"bucket" yaml:"bucket"`
	Key             string `json:"key" yaml:"key"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
	SessionToken    string `json:"session_token,omitempty" yaml:"session_token,omitempty"`
	Endpoint        string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	ForcePathStyle  bool   `json:"force_path_style" yaml:"force_path_style"`
	DisableSSL      bool   `json:"disable_ssl" yaml:"disable_ssl"`
	Delimiter       string `json:"delimiter" yaml:"delimiter"`
}

// S3Source reads a dataset object from S3 and decodes it by file
// extension: .csv as headered CSV, .json as an array of objects.
type S3Source struct {
	config     *S3Config
	downloader *s3manager.Downloader
	logger     *logrus.Logger
	mu         sync.Mutex
}

// NewS3Source creates a new S3 object source.
func NewS3Source(config *S3Config, logger *logrus.Logger) (*S3Source, error) {
	if config == nil {
		return nil, errors.NewIngestError("INVALID_CONFIG", "S3 config cannot be nil")
	}
	if config.Bucket == "" || config.Key == "" {
		return nil, errors.NewIngestError("INVALID_CONFIG", "S3 bucket and key are required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &S3Source{config: config, logger: logger}, nil
}

// Name returns the source type.
func (s *S3Source) Name() string {
	return "s3"
}

// Connect initializes the AWS session and downloader.
func (s *S3Source) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.downloader != nil {
		return nil
	}

	awsConfig := &aws.Config{
		Region:           aws.String(s.config.Region),
		S3ForcePathStyle: aws.Bool(s.config.ForcePathStyle),
		DisableSSL:       aws.Bool(s.config.DisableSSL),
	}
	if s.config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(s.config.Endpoint)
	}
	if s.config.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			s.config.AccessKeyID, s.config.SecretAccessKey, s.config.SessionToken)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeConnectionFailed, "Failed to create AWS session")
	}

	s.downloader = s3manager.NewDownloader(sess)
	s.logger.WithFields(logrus.Fields{
		"bucket": s.config.Bucket,
		"region": s.config.Region,
	}).Info("S3 source initialized")

	return nil
}

// Read downloads the object and decodes it into raw rows.
func (s *S3Source) Read(ctx context.Context) ([]models.Row, error) {
	if err := s.Connect(ctx); err != nil {
		return nil, err
	}

	buf := aws.NewWriteAtBuffer(nil)
	_, err := s.downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.config.Key),
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeIngest, errors.CodeReadFailed, "Failed to download S3 object")
	}

	s.logger.WithFields(logrus.Fields{
		"bucket": s.config.Bucket,
		"key":    s.config.Key,
		"bytes":  len(buf.Bytes()),
	}).Debug("S3 object downloaded")

	switch strings.ToLower(path.Ext(s.config.Key)) {
	case ".json":
		return DecodeJSON(ctx, bytes.NewReader(buf.Bytes()))
	case ".csv":
		delimiter := ','
		if s.config.Delimiter != "" {
			delimiter = rune(s.config.Delimiter[0])
		}
		return DecodeCSV(ctx, bytes.NewReader(buf.Bytes()), delimiter)
	default:
		return nil, errors.NewIngestError(errors.CodeInvalidFormat, "Unsupported S3 object extension (expected .csv or .json)")
	}
}

// Close releases the downloader; AWS sessions hold no connections.
func (s *S3Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloader = nil
	return nil
}
