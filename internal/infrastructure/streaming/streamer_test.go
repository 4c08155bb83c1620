package streaming

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vodguard/internal/core/domain"
	apperrors "vodguard/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAccess struct {
	subject domain.UserID
	token   string
	content domain.ContentID
}

func (s *stubAccess) IssueToken(ctx context.Context, contentID domain.ContentID, subjectID domain.UserID, role domain.UserRole) (string, error) {
	return s.token, nil
}

func (s *stubAccess) ValidateToken(token string, contentID domain.ContentID) (domain.UserID, bool) {
	if token == s.token && contentID == s.content {
		return s.subject, true
	}
	return "", false
}

func (s *stubAccess) RevokeToken(token string) bool { return false }

type stubContents struct {
	byID map[domain.ContentID]*domain.Content
}

func (s *stubContents) Resolve(ctx context.Context, id domain.ContentID) (*domain.Content, error) {
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrContentNotFound
}

type recordedServe struct {
	status   int
	bytes    int64
	duration time.Duration
}

type stubRecorder struct {
	served []recordedServe
}

func (r *stubRecorder) StreamServed(status int, bytes int64, duration time.Duration) {
	r.served = append(r.served, recordedServe{status, bytes, duration})
}

type streamerFixture struct {
	streamer *Streamer
	recorder *stubRecorder
	data     []byte
}

func newStreamerFixture(t *testing.T) *streamerFixture {
	t.Helper()

	root := t.TempDir()

	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "video.mp4"), data, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "video.jpg"), []byte("thumb"), 0o600))

	contents := &stubContents{byID: map[domain.ContentID]*domain.Content{
		"video-1": {ID: "video-1", Path: "video.mp4", Source: domain.SourceLocal, ThumbnailPath: "video.jpg"},
		"video-2": {ID: "video-2", Path: "video.mp4", Source: domain.SourceExternal},
		"video-3": {ID: "video-3", Path: "gone.mp4", Source: domain.SourceLocal},
		"video-4": {ID: "video-4", Path: "video.mp4", Source: domain.SourceLocal},
	}}
	access := &stubAccess{subject: "user-1", token: "good-token", content: "video-1"}

	guard, err := NewGuard(root)
	require.NoError(t, err)

	recorder := &stubRecorder{}
	return &streamerFixture{
		streamer: NewStreamer(access, contents, guard, 64*1024, zap.NewNop().Sugar(), recorder),
		recorder: recorder,
		data:     data,
	}
}

func (f *streamerFixture) serve(t *testing.T, contentID, token, rangeHeader string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/"+contentID+"/stream", nil)
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}
	w := httptest.NewRecorder()
	err := f.streamer.Serve(w, req, domain.ContentID(contentID), token)
	return w, err
}

func TestServe_FullFile(t *testing.T) {
	f := newStreamerFixture(t)

	w, err := f.serve(t, "video-1", "good-token", "")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "video/mp4", w.Header().Get("Content-Type"))
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
	assert.Equal(t, "1000", w.Header().Get("Content-Length"))
	assert.Empty(t, w.Header().Get("Content-Range"))
	assert.True(t, bytes.Equal(f.data, w.Body.Bytes()))

	require.Len(t, f.recorder.served, 1)
	assert.Equal(t, http.StatusOK, f.recorder.served[0].status)
	assert.Equal(t, int64(1000), f.recorder.served[0].bytes)
}

func TestServe_PartialContent(t *testing.T) {
	f := newStreamerFixture(t)

	w, err := f.serve(t, "video-1", "good-token", "bytes=500-999")
	require.NoError(t, err)

	assert.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "bytes 500-999/1000", w.Header().Get("Content-Range"))
	assert.Equal(t, "500", w.Header().Get("Content-Length"))
	assert.True(t, bytes.Equal(f.data[500:], w.Body.Bytes()))
}

func TestServe_OpenEndedRange(t *testing.T) {
	f := newStreamerFixture(t)

	w, err := f.serve(t, "video-1", "good-token", "bytes=200-")
	require.NoError(t, err)

	assert.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "bytes 200-999/1000", w.Header().Get("Content-Range"))
	assert.Equal(t, "800", w.Header().Get("Content-Length"))
	assert.True(t, bytes.Equal(f.data[200:], w.Body.Bytes()))
}

func TestServe_UnsatisfiableRange(t *testing.T) {
	f := newStreamerFixture(t)

	w, err := f.serve(t, "video-1", "good-token", "bytes=1000-1005")
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeRangeNotSatisfiable, appErr.Code)
	assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, appErr.HTTPStatus)

	// No body bytes before validation completes.
	assert.Zero(t, w.Body.Len())
	assert.Empty(t, f.recorder.served)
}

func TestServe_MalformedRange(t *testing.T) {
	f := newStreamerFixture(t)

	_, err := f.serve(t, "video-1", "good-token", "bytes=abc")
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, appErr.Code)
}

func TestServe_InvalidToken(t *testing.T) {
	f := newStreamerFixture(t)

	w, err := f.serve(t, "video-1", "bad-token", "")
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)
	assert.Zero(t, w.Body.Len())
}

func TestServe_TokenBoundToContent(t *testing.T) {
	f := newStreamerFixture(t)

	// The token was minted for video-1.
	_, err := f.serve(t, "video-4", "good-token", "")
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)
}

func TestServe_ExternalSource(t *testing.T) {
	f := newStreamerFixture(t)
	f.streamer.access.(*stubAccess).content = "video-2"

	_, err := f.serve(t, "video-2", "good-token", "")
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, appErr.Code)
}

func TestServe_MissingFile(t *testing.T) {
	f := newStreamerFixture(t)
	f.streamer.access.(*stubAccess).content = "video-3"

	_, err := f.serve(t, "video-3", "good-token", "")
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestServeThumbnail(t *testing.T) {
	f := newStreamerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/video-1/thumbnail", nil)
	w := httptest.NewRecorder()
	require.NoError(t, f.streamer.ServeThumbnail(w, req, "video-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "thumb", w.Body.String())
}

func TestServeThumbnail_NoneConfigured(t *testing.T) {
	f := newStreamerFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/video-4/thumbnail", nil)
	w := httptest.NewRecorder()
	require.NoError(t, f.streamer.ServeThumbnail(w, req, "video-4"))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Zero(t, w.Body.Len())
}
