package services

import (
	"bytes"
	"compress/zlib"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"math"
	"sync"

	"github.com/slidekit/carousel-backend/internal/domain"
	"github.com/slidekit/carousel-backend/internal/platform/logger"
)

// GrainTileSize is the edge length of the square noise texture the
// renderer tiles across the canvas.
const GrainTileSize = 256

// GrainService produces the film-grain overlay texture. Pixel content
// is random but generated once per service lifetime; the encoding and
// all tiling/opacity math are deterministic.
type GrainService interface {
	// Encoded returns the texture as a standalone PNG container.
	Encoded() ([]byte, error)
	// Tile returns the raw grayscale raster for compositing.
	Tile() (*image.Gray, error)
}

type grainService struct {
	log  *logger.Logger
	once sync.Once

	encoded []byte
	tile    *image.Gray
	err     error
}

func NewGrainService(log *logger.Logger) GrainService {
	return &grainService{log: log.With("service", "GrainService")}
}

func (g *grainService) generate() {
	noise := make([]byte, GrainTileSize*GrainTileSize)
	if _, err := crand.Read(noise); err != nil {
		g.err = fmt.Errorf("grain noise: %w", err)
		return
	}
	encoded, err := encodeGrayPNG(noise, GrainTileSize, GrainTileSize)
	if err != nil {
		g.err = fmt.Errorf("grain encode: %w", err)
		return
	}
	g.encoded = encoded
	g.tile = &image.Gray{
		Pix:    noise,
		Stride: GrainTileSize,
		Rect:   image.Rect(0, 0, GrainTileSize, GrainTileSize),
	}
	g.log.Debug("grain texture generated", "bytes", len(encoded))
}

func (g *grainService) Encoded() ([]byte, error) {
	g.once.Do(g.generate)
	return g.encoded, g.err
}

func (g *grainService) Tile() (*image.Gray, error) {
	g.once.Do(g.generate)
	return g.tile, g.err
}

// GrainOpacity maps a 0-100 intensity to the overlay tile opacity.
// Zero means the compositing step is skipped entirely, not painted at
// zero alpha.
func GrainOpacity(intensity int) float64 {
	return float64(domain.ClampGrainIntensity(intensity)) / 100 * 0.45
}

// grainTileGrid is the number of tile columns and rows needed to cover
// a canvas.
func grainTileGrid(widthPx, heightPx int) (cols, rows int) {
	cols = int(math.Ceil(float64(widthPx) / GrainTileSize))
	rows = int(math.Ceil(float64(heightPx) / GrainTileSize))
	return cols, rows
}

// encodeGrayPNG assembles a minimal 8-bit grayscale PNG by hand:
// signature, IHDR, a single IDAT holding the zlib-deflated scanlines
// (each prefixed with filter byte 0 = None), and IEND. Each chunk is
// length-prefixed and trailed by a CRC32 over type+data.
func encodeGrayPNG(pix []byte, w, h int) ([]byte, error) {
	if len(pix) != w*h {
		return nil, fmt.Errorf("pixel buffer is %d bytes, want %d", len(pix), w*h)
	}

	raw := make([]byte, 0, h*(w+1))
	for y := 0; y < h; y++ {
		raw = append(raw, 0)
		raw = append(raw, pix[y*w:(y+1)*w]...)
	}

	var idat bytes.Buffer
	zw, err := zlib.NewWriterLevel(&idat, 6)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(w))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(h))
	ihdr[8] = 8 // bit depth
	ihdr[9] = 0 // color type: grayscale
	// compression, filter and interlace bytes stay zero

	var out bytes.Buffer
	out.Write([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	writePNGChunk(&out, "IHDR", ihdr)
	writePNGChunk(&out, "IDAT", idat.Bytes())
	writePNGChunk(&out, "IEND", nil)
	return out.Bytes(), nil
}

func writePNGChunk(out *bytes.Buffer, typ string, data []byte) {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	out.Write(length[:])
	out.WriteString(typ)
	out.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	out.Write(sum[:])
}
