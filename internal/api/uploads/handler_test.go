package uploads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"release-desk/internal/app/http/middleware"
	"release-desk/internal/dto"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePresigner struct {
	input   *s3.PutObjectInput
	expires time.Duration
	err     error
}

func (f *fakePresigner) PresignPutObject(_ context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.input = in
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: "https://signed.example/" + *in.Key, Method: http.MethodPut}, nil
}

func serve(h *Handler, query string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(zap.NewNop()))
	r.GET("/s3-presigned-url", h.PresignedURL)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/s3-presigned-url"+query, nil))
	return w
}

func TestPresignedURL(t *testing.T) {
	fake := &fakePresigner{}
	h := NewHandler(fake, "release-desk", "eu-central-1")
	h.newKey = func(name string) string { return "fixed_" + name }

	w := serve(h, "?fileName=cover.png&fileType=image/png")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.PresignResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "https://signed.example/fixed_cover.png", resp.PresignedURL)
	assert.Equal(t, "https://release-desk.s3.eu-central-1.amazonaws.com/fixed_cover.png", resp.FileURL)

	assert.Equal(t, "release-desk", *fake.input.Bucket)
	assert.Equal(t, "image/png", *fake.input.ContentType)
	assert.Equal(t, URLExpiry, fake.expires)
}

func TestPresignedURL_EscapesFileURL(t *testing.T) {
	fake := &fakePresigner{}
	h := NewHandler(fake, "release-desk", "eu-central-1")
	h.newKey = func(name string) string { return "fixed_" + name }

	w := serve(h, "?fileName=my%20cover%20%231%3F.png&fileType=image/png")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.PresignResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://release-desk.s3.eu-central-1.amazonaws.com/fixed_my%20cover%20%231%3F.png", resp.FileURL)
	assert.Equal(t, "fixed_my cover #1?.png", *fake.input.Key, "the object key itself stays raw")
}

func TestFileURL(t *testing.T) {
	assert.Equal(t, "https://b.s3.r.amazonaws.com/abc_cover.png", FileURL("b", "r", "abc_cover.png"))
	assert.Equal(t, "https://b.s3.r.amazonaws.com/abc_a%20b.png", FileURL("b", "r", "abc_a b.png"))
}

func TestPresignedURL_MissingParams(t *testing.T) {
	h := NewHandler(&fakePresigner{}, "b", "r")

	for _, q := range []string{"", "?fileName=a.png", "?fileType=image/png"} {
		w := serve(h, q)
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", q)
	}
}

func TestPresignedURL_SignerFailure(t *testing.T) {
	h := NewHandler(&fakePresigner{err: errors.New("no credentials")}, "b", "r")

	w := serve(h, "?fileName=a.png&fileType=image/png")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "no credentials")
}

func TestObjectKeyIsUniqueAndKeepsName(t *testing.T) {
	a, b := objectKey("cover.png"), objectKey("cover.png")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "_cover.png"))
	assert.True(t, strings.HasSuffix(objectKey("../../etc/passwd"), "_passwd"))
}
