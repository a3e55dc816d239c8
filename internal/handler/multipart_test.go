package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// newUploadContext builds a multipart request carrying one "file" field plus
// any extra form fields.
func newUploadContext(target, filename string, content []byte, fields map[string]string) (*gin.Context, *httptest.ResponseRecorder) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		_ = writer.WriteField(k, v)
	}
	if filename != "" {
		part, _ := writer.CreateFormFile("file", filename)
		_, _ = part.Write(content)
	}
	_ = writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, target, body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return c, w
}
