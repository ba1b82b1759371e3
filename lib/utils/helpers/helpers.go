package helpers

import (
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// GetFileContentType тип из заголовка части формы, затем по расширению, затем по содержимому
func GetFileContentType(file *multipart.FileHeader, body []byte) string {
	if file != nil {
		if contentType := file.Header.Get("Content-Type"); contentType != "" && contentType != "application/octet-stream" {
			return contentType
		}
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(file.Filename))); byExt != "" {
			return byExt
		}
	}
	return http.DetectContentType(body)
}
