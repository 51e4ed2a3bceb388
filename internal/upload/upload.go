// Package upload turns visitor-supplied files into in-memory gallery images.
package upload

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
	"github.com/couchcryptid/sikkim-flood-portal/internal/observability"
)

// DefaultDescription is the placeholder shown until the visitor edits it.
const DefaultDescription = "Click to edit description"

// maxParallelReads bounds concurrent file reads per request.
const maxParallelReads = 4

// File is one submitted file. ContentType is the declared type and may be
// empty, in which case the type is sniffed from the content.
type File struct {
	Name        string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// FromMultipart adapts multipart file headers to Files.
func FromMultipart(headers []*multipart.FileHeader) []File {
	files := make([]File, 0, len(headers))
	for _, h := range headers {
		files = append(files, File{
			Name:        h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Open: func() (io.ReadCloser, error) {
				return h.Open()
			},
		})
	}
	return files
}

// Ingester reads files into UploadedImages.
type Ingester struct {
	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewIngester creates an Ingester.
func NewIngester(clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Ingester {
	return &Ingester{clock: clock, metrics: metrics, logger: logger}
}

// Ingest reads every file concurrently and returns the accepted images in
// input order. Files that are not images are skipped. A read failure aborts
// the whole batch.
func (in *Ingester) Ingest(ctx context.Context, files []File) ([]domain.UploadedImage, error) {
	results := make([]*domain.UploadedImage, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := in.read(f)
			if err != nil {
				return err
			}
			results[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	images := make([]domain.UploadedImage, 0, len(files))
	for i, img := range results {
		if img == nil {
			in.metrics.UploadsSkipped.Inc()
			in.logger.Debug("skipping non-image upload", "file", files[i].Name)
			continue
		}
		images = append(images, *img)
	}
	in.metrics.UploadsAccepted.Add(float64(len(images)))
	return images, nil
}

// read returns nil without error for non-image files.
func (in *Ingester) read(f File) (*domain.UploadedImage, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read upload %q: %w", f.Name, err)
	}

	mediaType := DetectType(f.ContentType, data)
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, nil
	}

	return &domain.UploadedImage{
		ID:          uuid.NewString(),
		URL:         DataURL(mediaType, data),
		Title:       DefaultTitle(f.Name),
		Description: DefaultDescription,
		ContentType: mediaType,
		Size:        int64(len(data)),
		UploadedAt:  in.clock.Now(),
	}, nil
}

// DetectType returns the media type of an upload, without parameters. The
// declared type wins unless it is empty or generic, in which case the content
// is sniffed.
func DetectType(declared string, data []byte) string {
	mediaType, _, _ := strings.Cut(declared, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType != "" && mediaType != "application/octet-stream" {
		return mediaType
	}
	sniffed, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return sniffed
}

// DataURL encodes data as a base64 data URL.
func DataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DefaultTitle is the file name without its last extension.
func DefaultTitle(name string) string {
	ext := path.Ext(name)
	if len(ext) < 2 {
		return name
	}
	return strings.TrimSuffix(name, ext)
}
