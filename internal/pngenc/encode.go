// Package pngenc writes solid-color 8-bit RGBA PNG images without going
// through image/png, and reads back the chunk structure of PNG files.
package pngenc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image/color"

	"github.com/klauspost/compress/zlib"
)

// Signature is the fixed 8-byte header every PNG file starts with.
var Signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// ErrInvalidDimension is returned when a width or height is not a
// positive value representable in a PNG header.
var ErrInvalidDimension = errors.New("invalid dimension")

// maxDimension is the largest width or height PNG allows (2^31-1).
const maxDimension = 1<<31 - 1

const (
	bitDepth       = 8
	colorTypeRGBA  = 6
	bytesPerPixel  = 4
	filterNone     = 0
	ihdrPayloadLen = 13
)

// Accent is the default fill color for generated icons.
var Accent = color.RGBA{R: 92, G: 158, B: 255, A: 255}

// Encode returns a complete PNG file of width×height pixels, every pixel
// set to c. The image data is a single IDAT chunk compressed at the
// highest zlib level.
func Encode(width, height int, c color.RGBA) ([]byte, error) {
	if width <= 0 || width > maxDimension {
		return nil, fmt.Errorf("pngenc: width %d: %w", width, ErrInvalidDimension)
	}
	if height <= 0 || height > maxDimension {
		return nil, fmt.Errorf("pngenc: height %d: %w", height, ErrInvalidDimension)
	}

	idat, err := compressScanlines(width, height, c)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(Signature) + 3*12 + ihdrPayloadLen + len(idat))
	buf.Write(Signature)
	buf.Write(writeChunk("IHDR", ihdr(width, height)))
	buf.Write(writeChunk("IDAT", idat))
	buf.Write(writeChunk("IEND", nil))
	return buf.Bytes(), nil
}

// writeChunk frames payload as a PNG chunk: big-endian payload length,
// the 4-byte tag, the payload, and the CRC32 of tag+payload.
func writeChunk(tag string, payload []byte) []byte {
	out := make([]byte, 8+len(payload)+4)
	binary.BigEndian.PutUint32(out[0:4], uint32(len(payload)))
	copy(out[4:8], tag)
	copy(out[8:], payload)
	crc := crc32.ChecksumIEEE(out[4 : 8+len(payload)])
	binary.BigEndian.PutUint32(out[8+len(payload):], crc)
	return out
}

func ihdr(width, height int) []byte {
	p := make([]byte, ihdrPayloadLen)
	binary.BigEndian.PutUint32(p[0:4], uint32(width))
	binary.BigEndian.PutUint32(p[4:8], uint32(height))
	p[8] = bitDepth
	p[9] = colorTypeRGBA
	// compression, filter and interlace methods stay 0
	return p
}

// compressScanlines builds the raw filtered image data (one filter byte
// per row, then the row's pixels) and zlib-compresses it.
func compressScanlines(width, height int, c color.RGBA) ([]byte, error) {
	row := make([]byte, 1+width*bytesPerPixel)
	row[0] = filterNone
	for x := 1; x < len(row); x += bytesPerPixel {
		row[x], row[x+1], row[x+2], row[x+3] = c.R, c.G, c.B, c.A
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("pngenc: zlib: %w", err)
	}
	for y := 0; y < height; y++ {
		if _, err := zw.Write(row); err != nil {
			return nil, fmt.Errorf("pngenc: compress: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("pngenc: compress: %w", err)
	}
	return buf.Bytes(), nil
}
