// Package uploads hands out presigned S3 PUT URLs so the browser uploads files directly.
package uploads

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"release-desk/internal/apperr"
	"release-desk/internal/dto"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// URLExpiry is how long a presigned upload URL stays valid.
const URLExpiry = 60 * time.Second

// Presigner is satisfied by *s3.PresignClient.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Handler struct {
	presigner Presigner
	bucket    string
	region    string
	newKey    func(fileName string) string
}

// NewHandler returns a handler that answers with an upstream error when presigner is nil.
func NewHandler(presigner Presigner, bucket, region string) *Handler {
	return &Handler{presigner: presigner, bucket: bucket, region: region, newKey: objectKey}
}

func objectKey(fileName string) string {
	return uuid.NewString() + "_" + path.Base(fileName)
}

// FileURL is the public address of key once the upload finishes. The key is
// percent-encoded so names with spaces, '#' or '?' still resolve.
func FileURL(bucket, region, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, url.PathEscape(key))
}

// PresignedURL handles GET /s3-presigned-url?fileName=...&fileType=...
func (h *Handler) PresignedURL(c *gin.Context) {
	fileName := strings.TrimSpace(c.Query("fileName"))
	fileType := strings.TrimSpace(c.Query("fileType"))
	if fileName == "" || fileType == "" {
		_ = c.Error(apperr.Validation("fileName and fileType are required"))
		return
	}
	if h.presigner == nil || h.bucket == "" {
		_ = c.Error(apperr.Upstream("File storage is not configured", nil))
		return
	}

	key := h.newKey(fileName)
	req, err := h.presigner.PresignPutObject(c.Request.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}, s3.WithPresignExpires(URLExpiry))
	if err != nil {
		_ = c.Error(apperr.Upstream("Failed to create upload URL", err))
		return
	}

	c.JSON(http.StatusOK, dto.PresignResponse{
		Success:      true,
		PresignedURL: req.URL,
		FileURL:      FileURL(h.bucket, h.region, key),
	})
}
