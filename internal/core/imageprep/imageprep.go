// Package imageprep turns encoded image bytes into the fixed size float tensors
// the recognition models consume
package imageprep

import (
	"bytes"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder

	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder

	perr "producescan/internal/platform/errors"
)

// DefaultMaxPixels caps decoded area so a tiny file cannot expand into gigabytes
const DefaultMaxPixels = 40_000_000

// Channels is fixed at RGB, alpha is dropped
const Channels = 3

// Tensor is one image laid out as [1, Size, Size, 3] in row major HWC order
// values are intensities scaled to [0,1]
type Tensor struct {
	Size int
	Data []float32
}

// Shape reports the batch shape of the tensor
func (t Tensor) Shape() [4]int { return [4]int{1, t.Size, t.Size, Channels} }

// Instance returns the tensor as nested [H][W][C] slices, the shape REST model servers expect
func (t Tensor) Instance() [][][]float32 {
	out := make([][][]float32, t.Size)
	for y := 0; y < t.Size; y++ {
		row := make([][]float32, t.Size)
		for x := 0; x < t.Size; x++ {
			i := (y*t.Size + x) * Channels
			row[x] = t.Data[i : i+Channels : i+Channels]
		}
		out[y] = row
	}
	return out
}

// Options tune a Preparer
type Options struct {
	// Size is the square edge in pixels the model expects, required
	Size int
	// Interp defaults to nearest neighbour, matching the resize the models were trained behind
	Interp draw.Interpolator
	// MaxPixels bounds width*height of the source image, 0 means DefaultMaxPixels
	MaxPixels int
}

// Preparer decodes and normalizes images for one model input size
// it holds no mutable state and is safe for concurrent use
type Preparer struct {
	size      int
	interp    draw.Interpolator
	maxPixels int
}

// New builds a Preparer, a non positive size is a programming error
func New(o Options) *Preparer {
	if o.Size <= 0 {
		panic("imageprep: size must be positive")
	}
	if o.Interp == nil {
		o.Interp = draw.NearestNeighbor
	}
	if o.MaxPixels <= 0 {
		o.MaxPixels = DefaultMaxPixels
	}
	return &Preparer{size: o.Size, interp: o.Interp, maxPixels: o.MaxPixels}
}

// Size returns the edge length of produced tensors
func (p *Preparer) Size() int { return p.size }

// Prepare decodes b and returns its tensor
func (p *Preparer) Prepare(b []byte) (Tensor, error) {
	img, err := Decode(b, p.maxPixels)
	if err != nil {
		return Tensor{}, err
	}
	return p.FromImage(img), nil
}

// FromImage resizes an already decoded image and scales it to [0,1]
func (p *Preparer) FromImage(img image.Image) Tensor {
	dst := image.NewNRGBA(image.Rect(0, 0, p.size, p.size))
	p.interp.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	data := make([]float32, p.size*p.size*Channels)
	j := 0
	for y := 0; y < p.size; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+p.size*4]
		for x := 0; x < p.size; x++ {
			px := row[x*4 : x*4+4]
			data[j] = float32(px[0]) / 255
			data[j+1] = float32(px[1]) / 255
			data[j+2] = float32(px[2]) / 255
			j += Channels
		}
	}
	return Tensor{Size: p.size, Data: data}
}

// Decode reads any registered image format after checking its declared dimensions
func Decode(b []byte, maxPixels int) (image.Image, error) {
	if len(b) == 0 {
		return nil, perr.InvalidArgf("image is empty")
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnsupportedMedia, "image header not recognised")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, perr.UnsupportedMediaf("%s image has no pixels", format)
	}
	if cfg.Width > maxPixels/cfg.Height {
		return nil, perr.TooLargef("%s image %dx%d exceeds pixel budget", format, cfg.Width, cfg.Height)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnsupportedMedia, "decode %s image", format)
	}
	return img, nil
}
