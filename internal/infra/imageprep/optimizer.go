package imageprep

import (
	"bytes"
	"fmt"
	"image"
	"path"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/yanqian/smart-wardrobe/internal/domain/wardrobe"
)

// Optimizer downscales oversized photos before they are uploaded.
type Optimizer struct {
	maxDim  int
	quality int
}

// NewOptimizer builds an optimizer bounded by maxDim pixels on the long edge.
func NewOptimizer(maxDim, quality int) *Optimizer {
	return &Optimizer{maxDim: maxDim, quality: quality}
}

// Optimize returns file unchanged when it is not a decodable image or already fits.
// PNG stays PNG; every other format is re-encoded as JPEG.
func (o *Optimizer) Optimize(file wardrobe.UploadFile) (wardrobe.UploadFile, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil {
		return file, nil
	}
	if cfg.Width <= o.maxDim && cfg.Height <= o.maxDim {
		return file, nil
	}

	img, err := imaging.Decode(bytes.NewReader(file.Data), imaging.AutoOrientation(true))
	if err != nil {
		return file, fmt.Errorf("decode %s: %w", format, err)
	}
	resized := imaging.Fit(img, o.maxDim, o.maxDim, imaging.Lanczos)

	var (
		buf         bytes.Buffer
		target      = imaging.JPEG
		contentType = "image/jpeg"
		ext         = ".jpg"
	)
	if format == "png" {
		target, contentType, ext = imaging.PNG, "image/png", ".png"
	}
	if err := imaging.Encode(&buf, resized, target, imaging.JPEGQuality(o.quality)); err != nil {
		return file, fmt.Errorf("encode %s: %w", contentType, err)
	}

	return wardrobe.UploadFile{
		Name:        replaceExt(file.Name, ext),
		ContentType: contentType,
		Data:        buf.Bytes(),
	}, nil
}

func replaceExt(name, ext string) string {
	base := strings.TrimSuffix(name, path.Ext(name))
	if base == "" {
		base = "upload"
	}
	return base + ext
}

var _ wardrobe.ImageOptimizer = (*Optimizer)(nil)
