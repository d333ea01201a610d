//nolint:varnamelen // Test files use idiomatic short variable names (t, tt, g, etc.)
package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/dirlist/internal/config"
)

func TestConfigDescriptionAndVersion(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	cfg := config.Config{}

	g.Expect(cfg.Description()).ShouldNot(BeEmpty())
	g.Expect(cfg.Version()).Should(HavePrefix("dirlist "))
}

// TestLoad_BuiltInDefaults uses an empty config directory and no env.
func TestLoad_BuiltInDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	g := NewWithT(t)

	cfg, err := config.Load("")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(cfg.LogLevel).Should(Equal("warn"))
	g.Expect(cfg.PoolSize).Should(Equal(4))
	g.Expect(cfg.Long).Should(BeFalse())
	g.Expect(config.DefaultConfigPath()).Should(HaveSuffix(filepath.Join("dirlist", "config.yaml")))
}

// TestLoad_Precedence layers the file, the environment and the flags.
func TestLoad_Precedence(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("DIRLIST_POOL_SIZE", "8")

	g := NewWithT(t)

	g.Expect(os.MkdirAll(filepath.Join(xdg, "dirlist"), 0o755)).Should(Succeed())
	g.Expect(os.WriteFile(config.DefaultConfigPath(), []byte(
		"long: true\npool_size: 2\nlog_level: info\npattern: \"*.go\"\n",
	), 0o600)).Should(Succeed())

	defaults, err := config.Load("")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(defaults.Long).Should(BeTrue(), "from file")
	g.Expect(defaults.PoolSize).Should(Equal(8), "env beats file")
	g.Expect(defaults.LogLevel).Should(Equal("info"))

	cfg, err := config.Parse([]string{"--log-level", "DEBUG", "-p", "*.md", "docs"}, defaults, &bytes.Buffer{})
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(cfg.LogLevel).Should(Equal("debug"), "flag beats file and is normalized")
	g.Expect(cfg.Pattern).Should(Equal("*.md"))
	g.Expect(cfg.PoolSize).Should(Equal(8))
	g.Expect(cfg.Long).Should(BeTrue())
	g.Expect(cfg.Paths).Should(Equal([]string{"docs"}))
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	g.Expect(err).Should(MatchError(ContainSubstring("failed to read config file")))
}

func TestParse(t *testing.T) {
	t.Parallel()

	defaults := &config.Config{LogLevel: "warn", PoolSize: 4}

	tests := []struct {
		name    string
		args    []string
		wantErr string
		check   func(g Gomega, cfg *config.Config)
	}{
		{
			name: "no paths lists the working directory",
			args: nil,
			check: func(g Gomega, cfg *config.Config) {
				g.Expect(cfg.Paths).Should(Equal([]string{"."}))
			},
		},
		{
			name: "short flags",
			args: []string{"-l", "-i", "/a", "/b"},
			check: func(g Gomega, cfg *config.Config) {
				g.Expect(cfg.Long).Should(BeTrue())
				g.Expect(cfg.Interactive).Should(BeTrue())
				g.Expect(cfg.Paths).Should(Equal([]string{"/a", "/b"}))
			},
		},
		{
			name: "s3 options",
			args: []string{"--s3-endpoint", "http://localhost:9000", "--s3-region", "eu-west-1", "s3://b"},
			check: func(g Gomega, cfg *config.Config) {
				g.Expect(cfg.S3Endpoint).Should(Equal("http://localhost:9000"))
				g.Expect(cfg.S3Region).Should(Equal("eu-west-1"))
			},
		},
		{name: "bad log level", args: []string{"--log-level", "loud"}, wantErr: "--log-level"},
		{name: "pool too large", args: []string{"--pool-size", "17"}, wantErr: "--pool-size"},
		{name: "pool too small", args: []string{"--pool-size", "0"}, wantErr: "--pool-size"},
		{name: "bad glob", args: []string{"-p", "[a"}, wantErr: "--pattern"},
		{name: "bad endpoint", args: []string{"--s3-endpoint", "not a url"}, wantErr: "--s3-endpoint"},
		{name: "unknown flag", args: []string{"--bogus"}, wantErr: "see --help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := NewWithT(t)

			cfg, err := config.Parse(tt.args, defaults, &bytes.Buffer{})
			if tt.wantErr != "" {
				g.Expect(err).Should(MatchError(ContainSubstring(tt.wantErr)))
				return
			}

			g.Expect(err).ShouldNot(HaveOccurred())
			tt.check(g, cfg)
		})
	}
}

func TestParse_HelpAndVersion(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	defaults := &config.Config{LogLevel: "warn", PoolSize: 4}

	var out bytes.Buffer

	_, err := config.Parse([]string{"--help"}, defaults, &out)
	g.Expect(err).Should(MatchError(config.ErrShown))
	g.Expect(out.String()).Should(ContainSubstring("--pattern"))

	out.Reset()

	_, err = config.Parse([]string{"--version"}, defaults, &out)
	g.Expect(err).Should(MatchError(config.ErrShown))
	g.Expect(out.String()).Should(ContainSubstring("dirlist 1.0.0"))
}

// TestParse_DoesNotModifyDefaults parses twice from the same defaults.
func TestParse_DoesNotModifyDefaults(t *testing.T) {
	t.Parallel()

	g := NewWithT(t)
	defaults := &config.Config{LogLevel: "warn", PoolSize: 4}

	_, err := config.Parse([]string{"-l", "x"}, defaults, &bytes.Buffer{})
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(defaults.Long).Should(BeFalse())
	g.Expect(defaults.Paths).Should(BeEmpty())
}

// TestLoad_S3KeysFromEnvironment reads static S3 credentials from DIRLIST_*.
func TestLoad_S3KeysFromEnvironment(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DIRLIST_S3_ACCESS_KEY", "minioadmin")
	t.Setenv("DIRLIST_S3_SECRET_KEY", "minio-secret")

	g := NewWithT(t)

	defaults, err := config.Load("")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(defaults.S3AccessKey).Should(Equal("minioadmin"))
	g.Expect(defaults.S3SecretKey).Should(Equal("minio-secret"))

	cfg, err := config.Parse([]string{"--s3-access-key", "other", "s3://bucket"}, defaults, &bytes.Buffer{})
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(cfg.S3AccessKey).Should(Equal("other"), "flag beats env")
	g.Expect(cfg.S3SecretKey).Should(Equal("minio-secret"))
}

// TestParse_S3KeysComeInPairs rejects an access key without its secret.
func TestParse_S3KeysComeInPairs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	g := NewWithT(t)

	defaults, err := config.Load("")
	g.Expect(err).ShouldNot(HaveOccurred())

	_, err = config.Parse([]string{"--s3-access-key", "minioadmin", "s3://bucket"}, defaults, &bytes.Buffer{})
	g.Expect(err).Should(MatchError(ContainSubstring("--s3-secret-key")))
}
