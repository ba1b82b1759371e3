package helpers

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFileContentType(t *testing.T) {
	header := &multipart.FileHeader{Filename: "report.pdf", Header: textproto.MIMEHeader{}}
	require.Equal(t, "application/pdf", GetFileContentType(header, nil))

	header.Header.Set("Content-Type", "image/png")
	require.Equal(t, "image/png", GetFileContentType(header, nil))

	require.Equal(t, "text/plain; charset=utf-8", GetFileContentType(nil, []byte("plain text")))
}
