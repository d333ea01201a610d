package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client the S3 filesystem uses.
type S3API interface {
	s3.ListObjectsV2APIClient
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3FileSystem presents an S3 bucket as a directory tree. Keys are split on
// "/"; a common prefix is a directory and an object whose key ends in "/" is
// a directory marker.
//
// Paths are keys relative to the bucket root; "" and "/" name the root.
type S3FileSystem struct {
	ctx    context.Context //nolint:containedctx // Listings advance without a caller context
	client S3API
	bucket string
}

// NewS3FileSystem creates a filesystem over bucket. ctx bounds every request,
// including those made while a listing is iterated.
func NewS3FileSystem(ctx context.Context, client S3API, bucket string) *S3FileSystem {
	return &S3FileSystem{ctx: ctx, client: client, bucket: bucket}
}

// Attrib returns the attributes of an object, or of a directory when name
// is a non-empty prefix.
func (s *S3FileSystem) Attrib(name string) (Attribute, error) {
	key := s3Key(name)
	if key == "" {
		return Attribute{IsDir: true}, nil
	}

	head, err := s.client.HeadObject(s.ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return Attribute{
			Bytes:    aws.ToInt64(head.ContentLength),
			Modified: aws.ToTime(head.LastModified),
		}, nil
	}

	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return Attribute{}, fmt.Errorf("failed to stat s3://%s/%s: %w", s.bucket, key, err)
	}

	exists, err := s.prefixExists(key)
	if err != nil {
		return Attribute{}, err
	}

	if !exists {
		return Attribute{}, fmt.Errorf("failed to stat s3://%s/%s: %w", s.bucket, key, fs.ErrNotExist)
	}

	return Attribute{IsDir: true}, nil
}

// Join joins key elements with "/" into a bucket-relative key. The bucket
// root is "", and ".." never climbs above it.
func (s *S3FileSystem) Join(elem ...string) string {
	return s3Key(path.Join(elem...))
}

// Mkdir writes a directory marker object for name.
func (s *S3FileSystem) Mkdir(name string) (bool, error) {
	key := s3Key(name)
	if key == "" {
		return true, nil
	}

	exists, err := s.prefixExists(key)
	if err != nil {
		return false, err
	}

	if exists {
		return true, nil
	}

	_, err = s.client.PutObject(s.ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key + "/"),
		Body:   bytes.NewReader(nil),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create s3://%s/%s/: %w", s.bucket, key, err)
	}

	return false, nil
}

// OpenDir starts a delimited listing of name. Pages are requested as the
// iterator advances. A prefix with no keys under it does not exist.
func (s *S3FileSystem) OpenDir(name string) (DirHandle, error) {
	prefix := s3Key(name)
	if prefix != "" {
		prefix += "/"
	}

	handle := &s3DirHandle{
		ctx:    s.ctx,
		prefix: prefix,
		pages: s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
			Bucket:    aws.String(s.bucket),
			Prefix:    aws.String(prefix),
			Delimiter: aws.String("/"),
		}),
	}

	err := handle.fetch()
	if err != nil {
		return nil, fmt.Errorf("failed to list s3://%s/%s: %w", s.bucket, prefix, err)
	}

	if prefix != "" && !handle.sawKeys {
		return nil, fmt.Errorf("failed to list s3://%s/%s: %w", s.bucket, prefix, fs.ErrNotExist)
	}

	return handle, nil
}

// Remove deletes an object.
func (s *S3FileSystem) Remove(name string) error {
	return s.deleteKey(s3Key(name))
}

// Rmdir deletes the directory marker of name, after its contents unless
// failIfNotEmpty is set.
func (s *S3FileSystem) Rmdir(name string, failIfNotEmpty bool) error {
	key := s3Key(name)

	if failIfNotEmpty {
		it := Open(s, name)
		empty := it.Done()
		_ = it.Close()

		if !empty {
			return fmt.Errorf("failed to remove s3://%s/%s: directory not empty", s.bucket, key) //nolint:err113 // Matches the POSIX wording for the error enricher
		}
	} else {
		err := removeTree(s, name)
		if err != nil {
			return err
		}
	}

	return s.deleteKey(key + "/")
}

func (s *S3FileSystem) deleteKey(key string) error {
	_, err := s.client.DeleteObject(s.ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to remove s3://%s/%s: %w", s.bucket, key, err)
	}

	return nil
}

func (s *S3FileSystem) prefixExists(key string) (bool, error) {
	out, err := s.client.ListObjectsV2(s.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(key + "/"),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("failed to list s3://%s/%s/: %w", s.bucket, key, err)
	}

	return len(out.Contents) > 0 || len(out.CommonPrefixes) > 0, nil
}

// s3DirHandle walks a ListObjectsV2 paginator one record at a time.
type s3DirHandle struct {
	ctx     context.Context //nolint:containedctx // Pages are fetched from ReadNext
	prefix  string
	pages   *s3.ListObjectsV2Paginator
	records []Record
	sawKeys bool
}

// Close stops the listing. No request is left in flight between pages.
func (h *s3DirHandle) Close() error {
	h.records = nil
	h.pages = nil

	return nil
}

// ReadNext returns the next record, fetching another page when needed.
func (h *s3DirHandle) ReadNext() (Record, error) {
	for len(h.records) == 0 {
		if h.pages == nil || !h.pages.HasMorePages() {
			return Record{}, io.EOF
		}

		err := h.fetch()
		if err != nil {
			return Record{}, err
		}
	}

	rec := h.records[0]
	h.records = h.records[1:]

	return rec, nil
}

func (h *s3DirHandle) fetch() error {
	page, err := h.pages.NextPage(h.ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch listing page: %w", err)
	}

	for _, common := range page.CommonPrefixes {
		name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(common.Prefix), h.prefix), "/")
		h.records = append(h.records, Record{Name: name, IsDir: true, Typed: true})
		h.sawKeys = true
	}

	for _, object := range page.Contents {
		h.sawKeys = true

		name := strings.TrimPrefix(aws.ToString(object.Key), h.prefix)
		if name == "" {
			continue // the directory's own marker
		}

		h.records = append(h.records, Record{Name: name, Size: aws.ToInt64(object.Size), Typed: true})
	}

	return nil
}

// s3Key turns a slash path into a key prefix without leading or trailing
// slashes.
func s3Key(name string) string {
	return strings.Trim(path.Clean("/"+name), "/")
}
