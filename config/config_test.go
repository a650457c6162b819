package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/releasedesk")

	LoadEnv()

	assert.Equal(t, "3001", PORT)
	assert.Equal(t, "postgres://localhost/releasedesk", DB_URL)
	assert.Equal(t, "/api", API_PREFIX)
	assert.Equal(t, "info", LOG_LEVEL)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("DB_URL", "postgres://db/x")
	t.Setenv("PORT", "9000")
	t.Setenv("API_PREFIX", "v1/")
	t.Setenv("S3_BUCKET_NAME", "covers")
	t.Setenv("AWS_REGION", "eu-central-1")

	LoadEnv()

	assert.Equal(t, "9000", PORT)
	assert.Equal(t, "/v1", API_PREFIX)
	assert.Equal(t, "covers", S3_BUCKET_NAME)
	assert.Equal(t, "eu-central-1", AWS_REGION)
}

func TestNormalizePrefix(t *testing.T) {
	cases := map[string]string{
		"":       "",
		"/":      "",
		"api":    "/api",
		"/api/":  "/api",
		" /x/y ": "/x/y",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizePrefix(in), "input %q", in)
	}
}
