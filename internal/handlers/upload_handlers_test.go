package handlers_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orders_backend/internal/database"
	"orders_backend/internal/router"
)

func newUploadTestEngine(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := database.InitDB(filepath.Join(t.TempDir(), "orders.db"))
	t.Cleanup(func() { db.Close() })

	engine := gin.New()
	publicDir := t.TempDir()
	uploadDir := filepath.Join(publicDir, "uploads")
	require.NoError(t, router.Setup(engine, db, publicDir, uploadDir))
	return engine, uploadDir
}

// testPNG returns an encoded solid-color PNG.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func multipartFile(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestUploadImage_ReencodesToJPEG(t *testing.T) {
	t.Parallel()

	engine, uploadDir := newUploadTestEngine(t)
	body, contentType := multipartFile(t, "My Photo (1).png", "image/png", testPNG(t))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody(t, w)
	assert.Equal(t, true, resp["success"])

	url, ok := resp["url"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(url, "/uploads/"), "url = %s", url)
	assert.True(t, strings.HasSuffix(url, ".jpg"), "stored file must be normalized to .jpg")
	assert.Contains(t, url, "My_Photo_1_", "base name must be sanitized")

	// The returned URL must resolve to a file on disk at response time.
	storedPath := filepath.Join(uploadDir, strings.TrimPrefix(url, "/uploads/"))
	_, err := os.Stat(storedPath)
	require.NoError(t, err)

	img, err := imaging.Open(storedPath)
	require.NoError(t, err, "stored file must decode as an image")
	assert.Equal(t, 8, img.Bounds().Dx())
}

func TestUploadImage_RejectsDisallowedType(t *testing.T) {
	t.Parallel()

	engine, uploadDir := newUploadTestEngine(t)
	body, contentType := multipartFile(t, "notes.txt", "text/plain", []byte("not an image"))

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "JPEG, PNG and WebP")

	// Rejection happens before anything touches the uploads directory.
	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadImage_MissingFile(t *testing.T) {
	t.Parallel()

	engine, _ := newUploadTestEngine(t)
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("note", "no file here"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", decodeBody(t, w)["error"])
}

func TestUploadImage_RejectsNonMultipart(t *testing.T) {
	t.Parallel()

	engine, _ := newUploadTestEngine(t)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(`{"file":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadImage_RejectsOversizedDeclaredPayload(t *testing.T) {
	t.Parallel()

	engine, _ := newUploadTestEngine(t)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	req.ContentLength = 11 * 1024 * 1024
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "10MB")
}
