package avatar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kudos_web/internal/common"
	"kudos_web/internal/config"
	"kudos_web/internal/filestorage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) SaveAvatar(upload *filestorage.Upload) (string, error) {
	args := m.Called(upload)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) DeleteByURL(url string) error {
	return m.Called(url).Error(0)
}

type mockPictureSetter struct {
	mock.Mock
}

func (m *mockPictureSetter) SetProfilePicture(ctx context.Context, id uuid.UUID, url string) (string, error) {
	args := m.Called(id, url)
	return args.String(0), args.Error(1)
}

// pngBytes starts with the PNG signature so content sniffing sees an image.
const pngBytes = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"

var testUserID = uuid.MustParse("7f1c5c2e-8c1a-4c3e-9d51-2f0d6f7a9b10")

func newAvatarRouter(storage Storage, users PictureSetter, maxPart int64) *gin.Engine {
	router := gin.New()
	authed := router.Group("", func(c *gin.Context) {
		c.Set(common.UserIDKey, testUserID)
	})
	NewHandler(storage, users, &config.Config{UploadMaxPartBytes: maxPart}, zap.NewNop()).RegisterRoutes(authed)
	return router
}

func uploadRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("note", "hello"))
	if filename != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/avatar", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func hasData(content string) interface{} {
	return mock.MatchedBy(func(u *filestorage.Upload) bool {
		return string(u.Data) == content && u.Filename == "me.png"
	})
}

func TestUpload_ReplacesPreviousAvatar(t *testing.T) {
	storage := new(mockStorage)
	users := new(mockPictureSetter)
	storage.On("SaveAvatar", hasData(pngBytes)).Return("/uploads/new-me.png", nil).Once()
	users.On("SetProfilePicture", testUserID, "/uploads/new-me.png").Return("/uploads/old-me.png", nil).Once()
	storage.On("DeleteByURL", "/uploads/old-me.png").Return(nil).Once()

	w := httptest.NewRecorder()
	newAvatarRouter(storage, users, 1024).ServeHTTP(w, uploadRequest(t, "file", "me.png", pngBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"imageUrl": "/uploads/new-me.png"}, decodeBody(t, w))
	storage.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestUpload_FirstAvatar(t *testing.T) {
	storage := new(mockStorage)
	users := new(mockPictureSetter)
	storage.On("SaveAvatar", hasData(pngBytes)).Return("/uploads/new-me.png", nil).Once()
	users.On("SetProfilePicture", testUserID, "/uploads/new-me.png").Return("", nil).Once()

	w := httptest.NewRecorder()
	newAvatarRouter(storage, users, 1024).ServeHTTP(w, uploadRequest(t, "file", "me.png", pngBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	storage.AssertNotCalled(t, "DeleteByURL", mock.Anything)
}

func TestUpload_ProfileUpdateFailureRemovesFile(t *testing.T) {
	storage := new(mockStorage)
	users := new(mockPictureSetter)
	storage.On("SaveAvatar", hasData(pngBytes)).Return("/uploads/new-me.png", nil).Once()
	users.On("SetProfilePicture", testUserID, "/uploads/new-me.png").Return("", errors.New("db down")).Once()
	storage.On("DeleteByURL", "/uploads/new-me.png").Return(nil).Once()

	w := httptest.NewRecorder()
	newAvatarRouter(storage, users, 1024).ServeHTTP(w, uploadRequest(t, "file", "me.png", pngBytes))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Upload failed", decodeBody(t, w)["error"])
	storage.AssertExpectations(t)
}

func TestUpload_BadRequests(t *testing.T) {
	cases := []struct {
		name    string
		req     func(t *testing.T) *http.Request
		message string
	}{
		{
			name:    "no file part",
			req:     func(t *testing.T) *http.Request { return uploadRequest(t, "", "", "") },
			message: "No file uploaded",
		},
		{
			name:    "file under another field",
			req:     func(t *testing.T) *http.Request { return uploadRequest(t, "picture", "me.png", "png") },
			message: "No file uploaded",
		},
		{
			name:    "part too large",
			req:     func(t *testing.T) *http.Request { return uploadRequest(t, "file", "me.png", strings.Repeat("x", 2048)) },
			message: "Upload failed",
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/avatar", strings.NewReader("file=x"))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return req
			},
			message: "Upload failed",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			storage := new(mockStorage)
			users := new(mockPictureSetter)

			w := httptest.NewRecorder()
			newAvatarRouter(storage, users, 1024).ServeHTTP(w, tc.req(t))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, decodeBody(t, w)["error"])
			storage.AssertNotCalled(t, "SaveAvatar", mock.Anything)
		})
	}
}

func TestUpload_RejectsNonImageContent(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		content  string
	}{
		{name: "html page", filename: "evil.html", content: "<html><script>alert(document.cookie)</script></html>"},
		{name: "html named as png", filename: "me.png", content: "<script>alert(1)</script>"},
		{name: "svg", filename: "me.svg", content: `<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`},
		{name: "plain text", filename: "notes.txt", content: "just some words"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			storage := new(mockStorage)
			users := new(mockPictureSetter)

			w := httptest.NewRecorder()
			newAvatarRouter(storage, users, 1024).ServeHTTP(w, uploadRequest(t, "file", tc.filename, tc.content))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "File must be an image", decodeBody(t, w)["error"])
			storage.AssertNotCalled(t, "SaveAvatar", mock.Anything)
			users.AssertNotCalled(t, "SetProfilePicture", mock.Anything, mock.Anything)
		})
	}
}

func TestUpload_ExtensionFollowsDetectedType(t *testing.T) {
	storage := new(mockStorage)
	users := new(mockPictureSetter)
	storage.On("SaveAvatar", mock.MatchedBy(func(u *filestorage.Upload) bool {
		return u.Filename == "me.png" && u.ContentType == "image/png"
	})).Return("/uploads/new-me.png", nil).Once()
	users.On("SetProfilePicture", testUserID, "/uploads/new-me.png").Return("", nil).Once()

	w := httptest.NewRecorder()
	newAvatarRouter(storage, users, 1024).ServeHTTP(w, uploadRequest(t, "file", "me.html", pngBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	storage.AssertExpectations(t)
}

func TestUpload_LogsThroughRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	storage := new(mockStorage)
	users := new(mockPictureSetter)

	router := gin.New()
	authed := router.Group("", func(c *gin.Context) {
		c.Set(common.UserIDKey, testUserID)
		c.Set(common.LoggerKey, zap.New(core).With(zap.String("request_id", "req-42")))
	})
	NewHandler(storage, users, &config.Config{UploadMaxPartBytes: 1024}, zap.NewNop()).RegisterRoutes(authed)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "file", "evil.html", "<script>alert(1)</script>"))

	require.Equal(t, http.StatusBadRequest, w.Code)
	entries := logs.FilterMessage("Avatar upload: rejected content").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
	assert.Equal(t, testUserID.String(), entries[0].ContextMap()["userID"])
}
