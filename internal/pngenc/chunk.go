package pngenc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// Chunk is a single PNG chunk as stored in a file.
type Chunk struct {
	Type   string
	Data   []byte
	CRC    uint32
	Offset int // offset of the length field within the file
}

// Header holds the decoded IHDR fields.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          byte
	ColorType         byte
	CompressionMethod byte
	FilterMethod      byte
	InterlaceMethod   byte
}

// ReadChunks checks the PNG signature and returns every chunk up to and
// including IEND. Each chunk's CRC is verified against its type and data.
func ReadChunks(data []byte) ([]Chunk, error) {
	if len(data) < len(Signature) || !bytes.Equal(data[:len(Signature)], Signature) {
		return nil, fmt.Errorf("png: not a PNG file")
	}

	var chunks []Chunk
	off := len(Signature)
	for {
		if off+8 > len(data) {
			return chunks, fmt.Errorf("png: truncated chunk header at offset %d", off)
		}
		size := int(binary.BigEndian.Uint32(data[off : off+4]))
		typ := string(data[off+4 : off+8])
		end := off + 8 + size
		if size < 0 || end+4 > len(data) || end < off {
			return chunks, fmt.Errorf("png: chunk %q at offset %d overruns file", typ, off)
		}

		stored := binary.BigEndian.Uint32(data[end : end+4])
		if got := crc32.ChecksumIEEE(data[off+4 : end]); got != stored {
			return chunks, fmt.Errorf("png: chunk %q CRC mismatch (stored %08x, computed %08x)", typ, stored, got)
		}

		chunks = append(chunks, Chunk{
			Type:   typ,
			Data:   data[off+8 : end],
			CRC:    stored,
			Offset: off,
		})
		off = end + 4
		if typ == "IEND" {
			return chunks, nil
		}
	}
}

// ReadHeader returns the IHDR fields of a PNG file. IHDR must be the first
// chunk.
func ReadHeader(data []byte) (Header, error) {
	chunks, err := ReadChunks(data)
	if err != nil {
		return Header{}, err
	}
	return parseIHDR(chunks[0])
}

func parseIHDR(c Chunk) (Header, error) {
	if c.Type != "IHDR" {
		return Header{}, fmt.Errorf("png: first chunk is %q, want IHDR", c.Type)
	}
	if len(c.Data) != ihdrPayloadLen {
		return Header{}, fmt.Errorf("png: IHDR length %d, want %d", len(c.Data), ihdrPayloadLen)
	}
	return Header{
		Width:             binary.BigEndian.Uint32(c.Data[0:4]),
		Height:            binary.BigEndian.Uint32(c.Data[4:8]),
		BitDepth:          c.Data[8],
		ColorType:         c.Data[9],
		CompressionMethod: c.Data[10],
		FilterMethod:      c.Data[11],
		InterlaceMethod:   c.Data[12],
	}, nil
}

// ColorTypeName returns the PNG name for a color type byte.
func ColorTypeName(t byte) string {
	switch t {
	case 0:
		return "grayscale"
	case 2:
		return "truecolor"
	case 3:
		return "indexed"
	case 4:
		return "grayscale+alpha"
	case 6:
		return "truecolor+alpha"
	}
	return fmt.Sprintf("unknown(%d)", t)
}
