package config

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "HOST", "GO_ENV", "LOG_LEVEL", "BODY_LIMIT", "CORS_ALLOWED_ORIGINS",
	"DB_DRIVER", "SQLITE_PATH", "DATABASE_URL", "DB_MAX_CONNS", "DB_IDLE_TIMEOUT",
	"DB_CONNECT_TIMEOUT", "SSM_PREFIX", "AWS_REGION",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "1M", cfg.Server.BodyLimit)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "database.db", cfg.Database.SQLitePath)
	assert.Equal(t, 20, cfg.Database.MaxConns)
	assert.Equal(t, 30*time.Second, cfg.Database.IdleTimeout)
	assert.Equal(t, 2*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, log.INFO, cfg.Logging.Level)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://journal@localhost/journal")
	t.Setenv("DB_MAX_CONNS", "5")
	t.Setenv("DB_IDLE_TIMEOUT", "1m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Database.MaxConns)
	assert.Equal(t, time.Minute, cfg.Database.IdleTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, log.DEBUG, cfg.Logging.Level)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"postgres without url": {"DB_DRIVER": "postgres"},
		"unknown driver":       {"DB_DRIVER": "mysql"},
		"bad idle timeout":     {"DB_IDLE_TIMEOUT": "soon"},
		"bad connect timeout":  {"DB_CONNECT_TIMEOUT": "10"},
		"bad log level":        {"LOG_LEVEL": "loud"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Lvl{
		"debug": log.DEBUG,
		"INFO":  log.INFO,
		"warn":  log.WARN,
		"error": log.ERROR,
		"off":   log.OFF,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

type fakeSSM struct {
	pages [][]types.Parameter
	calls int
	err   error
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	page := f.pages[f.calls]
	f.calls++

	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("page-" + string(rune('0'+f.calls)))
	}
	return out, nil
}

func TestExportParameters_AllPages(t *testing.T) {
	t.Setenv("JOURNAL_TEST_PORT", "")
	t.Setenv("JOURNAL_TEST_DSN", "")

	client := &fakeSSM{pages: [][]types.Parameter{
		{{Name: aws.String("/devjournal/prod/JOURNAL_TEST_PORT"), Value: aws.String("9000")}},
		{{Name: aws.String("/devjournal/prod/JOURNAL_TEST_DSN"), Value: aws.String("postgres://x")}},
	}}

	err := exportParameters(context.Background(), client, "/devjournal/prod/")
	require.NoError(t, err)

	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "9000", os.Getenv("JOURNAL_TEST_PORT"))
	assert.Equal(t, "postgres://x", os.Getenv("JOURNAL_TEST_DSN"))
}

func TestExportParameters_Error(t *testing.T) {
	boom := errors.New("AccessDeniedException")
	err := exportParameters(context.Background(), &fakeSSM{err: boom}, "/devjournal/prod/")
	assert.ErrorIs(t, err, boom)
}

func stubProdEnv(t *testing.T, fn func(ctx context.Context, region, prefix string) error) {
	t.Helper()
	orig := loadProdEnv
	loadProdEnv = fn
	t.Cleanup(func() { loadProdEnv = orig })
}

func TestLoad_ProductionExportsParametersFirst(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_ENV", "production")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("SSM_PREFIX", "/journal/live/")

	var gotRegion, gotPrefix string
	stubProdEnv(t, func(_ context.Context, region, prefix string) error {
		gotRegion, gotPrefix = region, prefix
		t.Setenv("PORT", "9000")
		return nil
	})

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", gotRegion)
	assert.Equal(t, "/journal/live/", gotPrefix)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr())
	assert.Equal(t, EnvProduction, cfg.Server.Env)
}

func TestLoad_ProductionDefaultsAndErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_ENV", "production")

	boom := errors.New("no credentials")
	var gotRegion, gotPrefix string
	stubProdEnv(t, func(_ context.Context, region, prefix string) error {
		gotRegion, gotPrefix = region, prefix
		return boom
	})

	_, err := Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "us-east-2", gotRegion)
	assert.Equal(t, "/devjournal/prod/", gotPrefix)
}
