package thumbnail

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/framelessmedia/payportal/internal/pkg/env"
)

const (
	// Product card dimensions used by the account grid.
	Width  = 800
	Height = 600
)

// ProductThumbURL returns the public URL of the 800x600 variant for a
// product image, generating it on first use. Any failure (missing source,
// unreadable image) degrades to "" so callers can render without a thumb.
func ProductThumbURL(imagePath string) string {
	src := strings.TrimSpace(imagePath)
	if src == "" {
		return ""
	}

	uploadsDir := env.GetEnv("UPLOADS_DIR", "./uploads")
	srcPath := filepath.Join(uploadsDir, filepath.FromSlash(src))
	dstRel := variantName(src)
	dstPath := filepath.Join(uploadsDir, "thumbs", filepath.FromSlash(dstRel))

	if _, err := os.Stat(dstPath); err != nil {
		if err := generate(srcPath, dstPath); err != nil {
			log.Printf("thumbnail: could not generate %s: %v", dstRel, err)
			return ""
		}
	}
	return "/uploads/thumbs/" + strings.ReplaceAll(dstRel, string(filepath.Separator), "/")
}

// variantName derives the thumb file name from the source path, e.g.
// products/course.jpg -> products/course_800x600.jpg.
func variantName(src string) string {
	ext := filepath.Ext(src)
	base := strings.TrimSuffix(src, ext)
	return fmt.Sprintf("%s_%dx%d%s", base, Width, Height, ext)
}

func generate(srcPath, dstPath string) error {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return err
	}
	thumb := imaging.Fill(img, Width, Height, imaging.Center, imaging.Lanczos)

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return err
	}

	// Write via temp file so a crashed generation never leaves a truncated
	// variant behind. The temp name keeps the extension because imaging
	// picks the encoder from it.
	ext := filepath.Ext(dstPath)
	tmp := strings.TrimSuffix(dstPath, ext) + ".tmp" + ext
	if err := imaging.Save(thumb, tmp); err != nil {
		return err
	}
	return os.Rename(tmp, dstPath)
}
