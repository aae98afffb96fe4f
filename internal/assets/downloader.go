package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/merchant-report/internal/common"
)

// ErrReadTimeout is returned when the response body stalls longer than the
// read timeout.
var ErrReadTimeout = errors.New("read timeout")

// Downloader streams remote assets to local files. It never retries.
type Downloader struct {
	client      *http.Client
	readTimeout time.Duration
	logger      *slog.Logger
}

// NewDownloader builds a client whose connect phase is bounded by
// connectTimeout and whose response header and every body read are bounded
// by readTimeout.
func NewDownloader(connectTimeout, readTimeout time.Duration, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: connectTimeout}).DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: readTimeout,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
	}
	return &Downloader{
		client:      &http.Client{Transport: transport},
		readTimeout: readTimeout,
		logger:      logger,
	}
}

// Download fetches url into dest, replacing any existing file. Only a 200
// response is accepted. The body is streamed to a temporary file next to dest
// and renamed over it once complete, so a failed download leaves any earlier
// file at dest untouched.
func (d *Downloader) Download(ctx context.Context, url, dest string) error {
	reqID := uuid.New().String()
	start := time.Now()
	logger := d.logger
	if runID := common.RunIDFromContext(ctx); runID != "" {
		logger = logger.With("run_id", runID)
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		logger.Debug("asset.http.send_error", "req_id", reqID, "url", url, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logger.Debug("asset.http.response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	f, err := os.CreateTemp(filepath.Dir(dest), ".part-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", dest, err)
	}
	tmp := f.Name()

	body := newIdleReader(resp.Body, d.readTimeout, func() { cancel(ErrReadTimeout) })
	n, copyErr := io.Copy(f, body)
	body.stop()
	closeErr := f.Close()

	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmp)
		if cause := context.Cause(ctx); errors.Is(cause, ErrReadTimeout) {
			return fmt.Errorf("stream %s: %w", url, ErrReadTimeout)
		}
		return fmt.Errorf("stream %s: %w", url, errors.Join(copyErr, closeErr))
	}
	_ = os.Chmod(tmp, 0o644)
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("move %s into place: %w", dest, err)
	}

	logger.Debug("asset.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", n,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// idleReader fires onIdle when no Read completes within timeout.
type idleReader struct {
	r       io.Reader
	timeout time.Duration
	timer   *time.Timer
}

func newIdleReader(r io.Reader, timeout time.Duration, onIdle func()) *idleReader {
	ir := &idleReader{r: r, timeout: timeout}
	if timeout > 0 {
		ir.timer = time.AfterFunc(timeout, onIdle)
	}
	return ir
}

func (ir *idleReader) Read(p []byte) (int, error) {
	n, err := ir.r.Read(p)
	if ir.timer != nil {
		ir.timer.Reset(ir.timeout)
	}
	return n, err
}

func (ir *idleReader) stop() {
	if ir.timer != nil {
		ir.timer.Stop()
	}
}
