package filesystem

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Options tune backend construction.
type Options struct {
	// PoolSize caps concurrent SFTP clients.
	PoolSize int

	// S3Endpoint overrides the S3 endpoint (MinIO, localstack). Path-style
	// addressing is used whenever it is set.
	S3Endpoint string
	S3Region   string

	// Static S3 credentials. When empty the default AWS chain applies.
	S3AccessKey string
	S3SecretKey string
}

// OpenFileSystem creates the FileSystem a target lives on.
// Returns (filesystem, path, closer, error); path is the directory to list
// on the returned filesystem and closer releases connections. closer is never
// nil on success.
func OpenFileSystem(ctx context.Context, target *Target, opts Options) (FileSystem, string, func(), error) {
	switch target.Kind {
	case KindSFTP:
		return openSFTP(target, opts)
	case KindS3:
		return openS3(ctx, target, opts)
	default:
		return NewRealFileSystem(), target.Path, func() {}, nil
	}
}

func openS3(ctx context.Context, target *Target, opts Options) (FileSystem, string, func(), error) {
	cfg, err := loadS3Config(ctx, opts)
	if err != nil {
		return nil, "", nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3FileSystem(ctx, client, target.Bucket), target.Path, func() {}, nil
}

// loadS3Config builds the AWS configuration for opts. Static keys, when
// given, take the place of the default credential chain.
func loadS3Config(ctx context.Context, opts Options) (aws.Config, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error

	if opts.S3Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.S3Region))
	}

	if opts.S3AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.S3AccessKey, opts.S3SecretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return cfg, nil
}

func openSFTP(target *Target, opts Options) (FileSystem, string, func(), error) {
	conn, err := Connect(target.Host, target.Port, target.User)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to connect to %s@%s:%d: %w",
			target.User, target.Host, target.Port, err)
	}

	poolSize := opts.PoolSize
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}

	sftpFS, err := NewSFTPFileSystem(conn, poolSize)
	if err != nil {
		_ = conn.Close()
		return nil, "", nil, err
	}

	closer := func() {
		_ = sftpFS.Close()
		_ = conn.Close()
	}

	return sftpFS, target.Path, closer, nil
}

// DefaultPoolSize is the SFTP pool size used when none is configured.
const DefaultPoolSize = 4
