package middleware

import (
	"bytes"
	"encoding/json"
	"html"
	"io"
	"net/http"

	"release-desk/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeAndCleanInputMiddleware strips markup from top-level string fields of JSON write
// bodies. Text outside tags is kept verbatim, so "Rock & Roll" is stored as sent.
// Nested values (chapters, split names, rights) pass through untouched.
func SanitizeAndCleanInputMiddleware() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortWith(c, apperr.Validation("Invalid body"))
			return
		}

		var body map[string]any
		if err := json.Unmarshal(buf, &body); err != nil {
			abortWith(c, apperr.Validation("Malformed JSON"))
			return
		}

		for k, v := range body {
			if str, ok := v.(string); ok {
				// bluemonday entity-encodes the text it keeps
				body[k] = html.UnescapeString(policy.Sanitize(str))
			}
		}

		newBody, err := json.Marshal(body)
		if err != nil {
			abortWith(c, apperr.Validation("Malformed JSON"))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
