package transform

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/thebartekbanach/picproxy/pkg/errkind"
)

type imageTransformer struct {
	tempDir   string
	optimizer *Optimizer
}

var _ Transformer = (*imageTransformer)(nil)

// NewTransformer creates a transformer working through tempDir. The
// optimizer is optional; pass nil to skip the post-transform pass.
func NewTransformer(tempDir string, optimizer *Optimizer) (Transformer, error) {
	info, err := os.Stat(tempDir)
	if err != nil || !info.IsDir() {
		return nil, errkind.New(errkind.Configuration, "temp directory", "can not access temp directory")
	}

	return &imageTransformer{tempDir, optimizer}, nil
}

func (t *imageTransformer) Transform(data []byte, width, height uint, transformType Type) (result []byte, resolvedWidth, resolvedHeight uint, err error) {
	if len(data) == 0 {
		err = errkind.Wrap(errkind.Processing, "decode", ErrFileEmpty)
		return
	}

	file := filepath.Join(t.tempDir, "picproxy-"+uuid.NewString())
	if err = os.WriteFile(file, data, 0o600); err != nil {
		err = errkind.Wrap(errkind.Configuration, "temp file", err)
		return
	}
	defer os.Remove(file)

	resolvedWidth, resolvedHeight = width, height
	if width != 0 || height != 0 {
		if resolvedWidth, resolvedHeight, err = t.resize(file, width, height, transformType); err != nil {
			return
		}
	}

	if t.optimizer != nil {
		if err = t.optimizer.Optimize(file); err != nil {
			err = errkind.Wrap(errkind.Processing, "optimize", err)
			return
		}
	}

	result, err = os.ReadFile(file)
	err = errkind.Wrap(errkind.Processing, "temp file read", err)
	return
}

func (t *imageTransformer) resize(file string, width, height uint, transformType Type) (uint, uint, error) {
	img, format, err := decodeFile(file)
	if err != nil {
		return 0, 0, errkind.Wrap(errkind.Processing, "decode", err)
	}

	originalWidth := img.Bounds().Dx()
	originalHeight := img.Bounds().Dy()

	if height == 0 && width != 0 {
		height = uint(math.Round(float64(originalHeight) / float64(originalWidth) * float64(width)))
	}

	if width == 0 && height != 0 {
		width = uint(math.Round(float64(originalWidth) / float64(originalHeight) * float64(height)))
	}

	if transformType == TypeResize {
		img = scaleToCover(img, width, height)
	}

	currentWidth := img.Bounds().Dx()
	currentHeight := img.Bounds().Dy()
	if currentWidth < int(width) || currentHeight < int(height) {
		return 0, 0, errkind.Newf(errkind.Processing, "crop",
			"crop target %dx%d exceeds image bounds %dx%d", width, height, currentWidth, currentHeight)
	}

	offsetX := (currentWidth - int(width)) / 2
	offsetY := (currentHeight - int(height)) / 2

	cropped := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	draw.Copy(cropped, image.Point{}, img,
		image.Rect(offsetX, offsetY, offsetX+int(width), offsetY+int(height)),
		draw.Src, nil)

	if err := encodeFile(file, format, cropped); err != nil {
		return 0, 0, errkind.Wrap(errkind.Processing, "encode", err)
	}

	return width, height, nil
}

// scaleToCover scales the image preserving its aspect ratio so that
// it is never smaller than the crop target in either dimension.
func scaleToCover(img image.Image, width, height uint) image.Image {
	originalWidth := img.Bounds().Dx()
	originalHeight := img.Bounds().Dy()

	var scaledWidth, scaledHeight int
	if float64(originalWidth)/float64(originalHeight) < float64(width)/float64(height) {
		scaledWidth = int(width)
		scaledHeight = int(math.Ceil(float64(originalHeight) * float64(width) / float64(originalWidth)))
	} else {
		scaledHeight = int(height)
		scaledWidth = int(math.Ceil(float64(originalWidth) * float64(height) / float64(originalHeight)))
	}

	scaled := image.NewRGBA(image.Rect(0, 0, scaledWidth, scaledHeight))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
	return scaled
}

var ErrFileEmpty = errors.New("file is empty")

func decodeFile(file string) (image.Image, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("could not load file for resizing: %w", err)
	}

	return img, format, nil
}

func encodeFile(file, format string, img image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "jpeg":
		return jpeg.Encode(f, img, nil)
	case "png":
		return png.Encode(f, img)
	case "gif":
		return gif.Encode(f, img, nil)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}
