package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
)

// bufferedWriter holds the response back so its ETag can be computed
// before anything is sent.
type bufferedWriter struct {
	gin.ResponseWriter
	body   bytes.Buffer
	status int
}

func (w *bufferedWriter) WriteHeader(code int) {
	w.status = code
}

func (w *bufferedWriter) WriteHeaderNow() {}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int {
	return w.status
}

func (w *bufferedWriter) Size() int {
	return w.body.Len()
}

func (w *bufferedWriter) Written() bool {
	return false
}

// ETag tags successful GET responses with a weak ETag derived from the body
// and answers 304 Not Modified when the client already has it.
func ETag() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		original := c.Writer
		buffered := &bufferedWriter{ResponseWriter: original, status: http.StatusOK}
		c.Writer = buffered
		c.Next()
		c.Writer = original

		body := buffered.body.Bytes()
		if buffered.status == http.StatusOK && len(body) > 0 {
			etag := fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(body))
			original.Header().Set("ETag", etag)
			if etagMatches(c.GetHeader("If-None-Match"), etag) {
				original.WriteHeader(http.StatusNotModified)
				original.WriteHeaderNow()
				return
			}
		}

		original.WriteHeader(buffered.status)
		if len(body) == 0 {
			original.WriteHeaderNow()
			return
		}
		original.Write(body)
	}
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag || "W/"+candidate == etag {
			return true
		}
	}
	return false
}
