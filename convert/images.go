package convert

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"xmd/config"
)

// ImageExt infers a file extension from an image URL. Image hosts serve both
// path-suffixed and format-parameter URLs:
//
//	https://pbs.twimg.com/media/xxx.jpg
//	https://pbs.twimg.com/media/xxx?format=jpg&name=large
func ImageExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	switch ext := path.Ext(u.Path); ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	}
	if format := u.Query().Get("format"); format != "" {
		return "." + format
	}
	return ".jpg"
}

// Getter fetches raw image bytes.
type Getter interface {
	DownloadImage(ctx context.Context, url string) ([]byte, error)
}

// Saver materializes remote images into a single directory next to the
// markdown document. Every failure is local - the image is simply absent from
// the output.
type Saver struct {
	get     Getter
	dir     string
	dirName string
	cfg     *config.ImagesConfig
	log     *zap.Logger

	saved int
}

// NewSaver creates a saver writing under dir. dirName is the directory name
// referenced from markdown relative paths.
func NewSaver(get Getter, dir, dirName string, cfg *config.ImagesConfig, log *zap.Logger) *Saver {
	return &Saver{
		get:     get,
		dir:     dir,
		dirName: dirName,
		cfg:     cfg,
		log:     log,
	}
}

// Count returns how many images were stored so far.
func (s *Saver) Count() int {
	return s.saved
}

// Materialize downloads the image and stores it under fileName, returning the
// relative path for markdown reference. Non-image payloads (upstream error
// pages) are rejected.
func (s *Saver) Materialize(ctx context.Context, url, fileName string) (string, bool) {
	data, err := s.get.DownloadImage(ctx, url)
	if err != nil {
		s.log.Warn("Unable to download image", zap.String("url", url), zap.Error(err))
		return "", false
	}
	if !filetype.IsImage(data) {
		s.log.Warn("Downloaded payload is not an image, skipping", zap.String("url", url))
		return "", false
	}

	data = s.shrink(data, fileName)

	if err := s.store(fileName, data); err != nil {
		s.log.Warn("Unable to store image", zap.String("file", fileName), zap.Error(err))
		return "", false
	}
	s.saved++
	s.log.Debug("Image stored", zap.String("file", fileName), zap.Int("size", len(data)))

	// markdown wants forward slashes on every platform
	return s.dirName + "/" + fileName, true
}

// shrink downscales the image to the configured maximum width. Formats we
// cannot re-encode and undecodable payloads are stored as received.
func (s *Saver) shrink(data []byte, fileName string) []byte {
	if s.cfg.MaxWidth <= 0 {
		return data
	}

	var format imaging.Format
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".jpg", ".jpeg":
		format = imaging.JPEG
	case ".png":
		format = imaging.PNG
	default:
		return data
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		s.log.Debug("Unable to decode image for resizing, storing as is", zap.String("file", fileName), zap.Error(err))
		return data
	}
	if img.Bounds().Dx() <= s.cfg.MaxWidth {
		return data
	}

	img = imaging.Resize(img, s.cfg.MaxWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(s.cfg.JPEGQuality)); err != nil {
		s.log.Debug("Unable to encode resized image, storing as is", zap.String("file", fileName), zap.Error(err))
		return data
	}
	s.log.Debug("Image resized", zap.String("file", fileName), zap.Int("width", s.cfg.MaxWidth))
	return buf.Bytes()
}

// store writes image bytes under the target name through a temporary file so
// an interrupted run never leaves a partial image behind.
func (s *Saver) store(fileName string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	tmp := filepath.Join(s.dir, "."+uuid.New().String())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, fileName)); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
