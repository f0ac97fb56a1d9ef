// Package icon produces the tray icon.
//
// The tray takes ICO data. A configured .ico file is used as is, a .png file
// is scaled and re-encoded, and without either the icon is a colored circle
// badge carrying the display name's initial.
package icon

import (
	"bytes"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/sergeymakinen/go-ico"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Size is the edge length of generated and scaled icons.
const Size = 32

// placeholder is drawn when the name has no initial the font can render.
const placeholder = '>'

// ErrUnsupportedFormat is returned for icon files that are neither .ico nor .png.
var ErrUnsupportedFormat = errors.New("unsupported icon format")

var (
	palette = []color.RGBA{
		{0, 120, 212, 255},  // blue
		{16, 124, 16, 255},  // green
		{202, 80, 16, 255},  // orange
		{136, 23, 152, 255}, // purple
		{196, 43, 28, 255},  // red
		{0, 153, 188, 255},  // teal
	}
	white = color.RGBA{255, 255, 255, 255}
)

// ForTray returns the icon for a tray labeled name, trying the file at path
// first and the generated badge second. It returns nil when both fail, which
// leaves the tray library's default icon in place.
func ForTray(path, name string, logger *slog.Logger) []byte {
	if logger == nil {
		logger = slog.Default()
	}
	if path != "" {
		data, err := Load(path)
		if err == nil {
			return data
		}
		logger.Warn("[ICON] Failed to load configured icon, using generated one", "path", path, "error", err)
	}
	data, err := Initial(name)
	if err != nil {
		logger.Warn("[ICON] Failed to generate icon, using default", "error", err)
		return nil
	}
	return data
}

// Load reads an icon file and returns ICO data.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read icon: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ico":
		if _, err := ico.Decode(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("decode ico %s: %w", path, err)
		}
		return data, nil
	case ".png":
		src, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode png %s: %w", path, err)
		}
		return Encode(Scale(src))
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Initial renders the badge icon for name and returns ICO data.
func Initial(name string) ([]byte, error) {
	return Encode(Badge(name))
}

// Badge draws a filled circle, colored by name, with the name's initial.
func Badge(name string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	drawCircle(img, colorFor(name))
	drawBoldText(img, initial(name), Size/2, Size/2)
	return img
}

// Scale resizes src to the standard icon size.
func Scale(src image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, Size, Size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// Encode wraps img in an ICO container.
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := ico.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode ico: %w", err)
	}
	return buf.Bytes(), nil
}

func colorFor(name string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(name)) //nolint:errcheck // hash writes never fail
	return palette[h.Sum32()%uint32(len(palette))]
}

// initial returns the first letter or digit of name, upper-cased, or the
// placeholder when there is none the font covers.
func initial(name string) string {
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		r = unicode.ToUpper(r)
		if r > unicode.MaxLatin1 {
			break
		}
		return string(r)
	}
	return string(placeholder)
}

func drawCircle(img *image.RGBA, fill color.RGBA) {
	radius := float64(Size) / 2
	for py := range Size {
		for px := range Size {
			dx := float64(px) - radius + 0.5
			dy := float64(py) - radius + 0.5
			if math.Sqrt(dx*dx+dy*dy) <= radius {
				img.Set(px, py, fill)
			}
		}
	}
}

// drawBoldText renders text centered on (centerX, centerY) in Go Mono Bold.
func drawBoldText(img *image.RGBA, text string, centerX, centerY int) {
	f, err := opentype.Parse(gomonobold.TTF)
	if err != nil {
		return // badge without text
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size: 22,
		DPI:  72,
	})
	if err != nil {
		return
	}
	defer face.Close() //nolint:errcheck // Close error is not critical for rendering

	bounds, advance := font.BoundString(face, text)
	visualCenter := (bounds.Max.Y + bounds.Min.Y) / 2
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(white),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(centerX - advance.Ceil()/2),
			Y: fixed.I(centerY) - visualCenter,
		},
	}
	drawer.DrawString(text)
}
