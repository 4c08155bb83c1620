package streaming

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"vodguard/internal/core/domain"
	"vodguard/internal/core/ports"
	apperrors "vodguard/pkg/errors"

	"go.uber.org/zap"
)

// Recorder receives delivery metrics. Implemented by the monitoring
// collector; a nil Recorder disables recording.
type Recorder interface {
	StreamServed(status int, bytes int64, duration time.Duration)
}

// Streamer serves token-gated media files over HTTP byte-range semantics.
type Streamer struct {
	access    ports.ContentAccessService
	contents  ports.ContentRepository
	guard     *Guard
	chunkSize int
	logger    *zap.SugaredLogger
	metrics   Recorder
}

func NewStreamer(
	access ports.ContentAccessService,
	contents ports.ContentRepository,
	guard *Guard,
	chunkSize int,
	logger *zap.SugaredLogger,
	metrics Recorder,
) *Streamer {
	return &Streamer{
		access:    access,
		contents:  contents,
		guard:     guard,
		chunkSize: chunkSize,
		logger:    logger,
		metrics:   metrics,
	}
}

// Serve validates the stream token, resolves and guards the media path,
// computes the byte window and streams the response. An error return means
// no body bytes were written yet and the caller maps it to a status; once
// streaming has begun, failures are handled here.
func (s *Streamer) Serve(w http.ResponseWriter, r *http.Request, contentID domain.ContentID, token string) error {
	subjectID, ok := s.access.ValidateToken(token, contentID)
	if !ok {
		return apperrors.NewUnauthorizedError("invalid or expired stream token")
	}

	content, err := s.contents.Resolve(r.Context(), contentID)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return apperrors.NewNotFoundError("content")
		}
		return apperrors.WrapError(err, apperrors.ErrCodeInternal, "content lookup failed", http.StatusInternalServerError)
	}

	if content.Source != domain.SourceLocal {
		return apperrors.NewInvalidInputError("streaming is not supported for this content")
	}

	path, err := s.guard.Resolve(content.Path)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return apperrors.NewNotFoundError("video file")
	}
	total := info.Size()

	window, err := ParseRange(r.Header.Get("Range"), total)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return apperrors.WrapError(err, apperrors.ErrCodeInternal, "failed to open video file", http.StatusInternalServerError)
	}
	defer f.Close()

	h := w.Header()
	h.Set("Content-Type", ContentTypeFor(path))
	h.Set("Accept-Ranges", "bytes")
	h.Set("Cache-Control", "private, no-cache, no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")

	status := http.StatusOK
	length := total
	if window != nil {
		if _, err := f.Seek(window.Start, io.SeekStart); err != nil {
			return apperrors.WrapError(err, apperrors.ErrCodeInternal, "failed to seek video file", http.StatusInternalServerError)
		}
		h.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", window.Start, window.End, total))
		status = http.StatusPartialContent
		length = window.Length()
	}
	h.Set("Content-Length", strconv.FormatInt(length, 10))
	w.WriteHeader(status)

	start := time.Now()
	written, copyErr := s.copyBody(w, f, length)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.StreamServed(status, written, elapsed)
	}

	if copyErr != nil {
		// Client disconnects land here; nothing to send at this point.
		s.logger.Debugw("stream aborted",
			"content_id", contentID,
			"subject_id", subjectID,
			"written", written,
			"error", copyErr,
		)
		return nil
	}

	s.logger.Debugw("stream completed",
		"content_id", contentID,
		"subject_id", subjectID,
		"status", status,
		"written", written,
		"duration_ms", elapsed.Milliseconds(),
	)
	return nil
}

// copyBody streams n bytes in fixed-size chunks. Each chunk write must be
// accepted by the client before the next read, so peak memory stays at one
// chunk regardless of file size.
func (s *Streamer) copyBody(dst io.Writer, src io.Reader, n int64) (int64, error) {
	buf := make([]byte, s.chunkSize)
	return io.CopyBuffer(dst, io.LimitReader(src, n), buf)
}

// ServeThumbnail sends the content's thumbnail, or 204 when there is none.
// The path goes through the same guard as the media files.
func (s *Streamer) ServeThumbnail(w http.ResponseWriter, r *http.Request, contentID domain.ContentID) error {
	content, err := s.contents.Resolve(r.Context(), contentID)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return apperrors.NewNotFoundError("content")
		}
		return apperrors.WrapError(err, apperrors.ErrCodeInternal, "content lookup failed", http.StatusInternalServerError)
	}

	if content.ThumbnailPath == "" {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	path, err := s.guard.Resolve(content.ThumbnailPath)
	if err != nil {
		return err
	}

	if info, err := os.Stat(path); err != nil || info.IsDir() {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	http.ServeFile(w, r, path)
	return nil
}
