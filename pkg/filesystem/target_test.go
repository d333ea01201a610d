//nolint:varnamelen // Test files use idiomatic short variable names (t, g, tt, etc.)
package filesystem_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/dirlist/pkg/filesystem"
)

func TestParseTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    filesystem.Target
	}{
		{
			name:  "local path",
			input: "/local/path",
			want:  filesystem.Target{Kind: filesystem.KindLocal, Path: "/local/path"},
		},
		{
			name:  "relative local path",
			input: "some/dir",
			want:  filesystem.Target{Kind: filesystem.KindLocal, Path: "some/dir"},
		},
		{
			name:  "basic SFTP URL",
			input: "sftp://user@host/path",
			want:  filesystem.Target{Kind: filesystem.KindSFTP, User: "user", Host: "host", Port: 22, Path: "path"},
		},
		{
			name:  "SFTP URL with custom port",
			input: "sftp://admin@server.com:2222/home/data",
			want: filesystem.Target{
				Kind: filesystem.KindSFTP, User: "admin", Host: "server.com", Port: 2222, Path: "home/data",
			},
		},
		{
			name:  "SFTP absolute path",
			input: "sftp://joe@server//var/log",
			want:  filesystem.Target{Kind: filesystem.KindSFTP, User: "joe", Host: "server", Port: 22, Path: "/var/log"},
		},
		{
			name:  "SFTP home directory",
			input: "sftp://joe@server",
			want:  filesystem.Target{Kind: filesystem.KindSFTP, User: "joe", Host: "server", Port: 22, Path: "."},
		},
		{
			name:    "SFTP URL without username",
			input:   "sftp://host/path",
			wantErr: true,
		},
		{
			name:    "SFTP URL with bad port",
			input:   "sftp://user@host:port/path",
			wantErr: true,
		},
		{
			name:  "S3 bucket",
			input: "s3://bucket",
			want:  filesystem.Target{Kind: filesystem.KindS3, Bucket: "bucket"},
		},
		{
			name:  "S3 prefix",
			input: "s3://bucket/logs/2024/",
			want:  filesystem.Target{Kind: filesystem.KindS3, Bucket: "bucket", Path: "logs/2024"},
		},
		{
			name:    "S3 URL without bucket",
			input:   "s3:///logs",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := NewWithT(t)

			result, err := filesystem.ParseTarget(tt.input)
			if tt.wantErr {
				g.Expect(err).Should(HaveOccurred())
				return
			}

			g.Expect(err).ShouldNot(HaveOccurred())
			g.Expect(*result).Should(Equal(tt.want))

			again, err := filesystem.ParseTarget(result.String())
			g.Expect(err).ShouldNot(HaveOccurred())
			g.Expect(*again).Should(Equal(tt.want), "String round-trips through ParseTarget")
		})
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	g.Expect(filesystem.KindLocal.String()).Should(Equal("local"))
	g.Expect(filesystem.KindSFTP.String()).Should(Equal("sftp"))
	g.Expect(filesystem.KindS3.String()).Should(Equal("s3"))
}

func TestOpenFileSystem_Local(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	dir := t.TempDir()

	target, err := filesystem.ParseTarget(dir)
	g.Expect(err).ShouldNot(HaveOccurred())

	fsys, path, closer, err := filesystem.OpenFileSystem(context.Background(), target, filesystem.Options{})
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(closer).ShouldNot(BeNil())

	defer closer()

	g.Expect(fsys).Should(BeAssignableToTypeOf(&filesystem.RealFileSystem{}))
	g.Expect(path).Should(Equal(dir))
}

func TestOpenFileSystem_S3(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_REGION", "us-east-1")

	g := NewWithT(t)

	target, err := filesystem.ParseTarget("s3://bucket/prefix")
	g.Expect(err).ShouldNot(HaveOccurred())

	fsys, path, closer, err := filesystem.OpenFileSystem(context.Background(), target, filesystem.Options{
		S3Endpoint: "http://127.0.0.1:9000",
		S3Region:   "us-east-1",
	})
	g.Expect(err).ShouldNot(HaveOccurred())

	defer closer()

	g.Expect(fsys).Should(BeAssignableToTypeOf(&filesystem.S3FileSystem{}))
	g.Expect(path).Should(Equal("prefix"))
}
