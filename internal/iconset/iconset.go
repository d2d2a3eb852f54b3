// Package iconset renders the app icon set of an iOS target from a single
// source image.
package iconset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotFound  = errors.New("source image not found")
	ErrNotSquare = errors.New("source image is not square")
	ErrTooSmall  = errors.New("source image is smaller than 1024x1024")
)

// Policy decides what happens to a source below MinSourcePixels.
type Policy int

const (
	// PolicyFail rejects small sources.
	PolicyFail Policy = iota
	// PolicyWarn accepts small sources and records a warning.
	PolicyWarn
)

// Source is a decoded, validated source image.
type Source struct {
	Path    string
	Format  string
	Image   image.Image
	Size    int
	Warning string
}

// Result describes one written icon file.
type Result struct {
	Icon  Icon
	Path  string
	Bytes int64
}

// HumanSize formats the file size for display.
func (r Result) HumanSize() string {
	return humanize.Bytes(uint64(r.Bytes))
}

// Validate opens and decodes the source image and checks its shape.
func Validate(path string, policy Policy) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open source image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w != h {
		return nil, fmt.Errorf("%w: %s is %dx%d", ErrNotSquare, path, w, h)
	}

	src := &Source{Path: path, Format: format, Image: img, Size: w}
	if w < MinSourcePixels {
		if policy != PolicyWarn {
			return nil, fmt.Errorf("%w: %s is %dx%d", ErrTooSmall, path, w, h)
		}
		src.Warning = fmt.Sprintf("%s is %dx%d; larger icons will be upscaled", filepath.Base(path), w, h)
	}
	return src, nil
}

// Generate writes every icon of the set plus its Contents.json into outDir.
// Icons are written independently: a failed file does not stop the rest,
// and the returned results cover every file that was written.
func Generate(ctx context.Context, src *Source, outDir string) ([]Result, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	var (
		results []Result
		errs    *multierror.Error
	)
	for _, icon := range Icons {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		path := filepath.Join(outDir, icon.Filename)
		n, err := writeIcon(src.Image, icon.Pixels, path)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", icon.Filename, err))
			continue
		}
		results = append(results, Result{Icon: icon, Path: path, Bytes: n})
	}

	if err := writeContents(filepath.Join(outDir, "Contents.json")); err != nil {
		errs = multierror.Append(errs, err)
	}
	return results, errs.ErrorOrNil()
}

// Resize scales img to a size x size NRGBA image, keeping alpha.
func Resize(img image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Rect, img, img.Bounds(), draw.Src, nil)
	return dst
}

func writeIcon(img image.Image, size int, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, Resize(img, size)); err != nil {
		f.Close()
		return 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return 0, err
	}
	return info.Size(), f.Close()
}

type contentsImage struct {
	Filename string `json:"filename"`
	Idiom    string `json:"idiom"`
	Scale    string `json:"scale"`
	Size     string `json:"size"`
}

type contentsInfo struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

type contents struct {
	Images []contentsImage `json:"images"`
	Info   contentsInfo    `json:"info"`
}

// Contents returns the asset catalog manifest for the icon set.
func Contents() ([]byte, error) {
	c := contents{Info: contentsInfo{Author: "xcode", Version: 1}}
	for _, icon := range Icons {
		c.Images = append(c.Images, contentsImage{
			Filename: icon.Filename,
			Idiom:    icon.Idiom,
			Scale:    strconv.Itoa(icon.Scale) + "x",
			Size:     icon.Points + "x" + icon.Points,
		})
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func writeContents(path string) error {
	data, err := Contents()
	if err != nil {
		return fmt.Errorf("failed to encode Contents.json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write Contents.json: %w", err)
	}
	return nil
}
