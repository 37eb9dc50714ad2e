package pngenc

import (
	"hash/crc32"
	"strings"
	"testing"
)

func TestReadChunksVerifiesCRC(t *testing.T) {
	data, err := Encode(8, 8, Accent)
	if err != nil {
		t.Fatal(err)
	}
	chunks, err := ReadChunks(data)
	if err != nil {
		t.Fatalf("ReadChunks: %v", err)
	}
	for _, c := range chunks {
		want := crc32.ChecksumIEEE(append([]byte(c.Type), c.Data...))
		if c.CRC != want {
			t.Errorf("chunk %s CRC = %08x, want %08x", c.Type, c.CRC, want)
		}
	}

	// Flip a byte inside the IDAT payload.
	corrupt := append([]byte(nil), data...)
	idat := chunks[1]
	corrupt[idat.Offset+8] ^= 0xff
	_, err = ReadChunks(corrupt)
	if err == nil || !strings.Contains(err.Error(), "CRC mismatch") {
		t.Errorf("expected CRC mismatch, got %v", err)
	}
}

func TestReadChunksNotPNG(t *testing.T) {
	if _, err := ReadChunks([]byte("GIF89a....")); err == nil {
		t.Error("expected error for non-PNG data")
	}
	if _, err := ReadChunks(nil); err == nil {
		t.Error("expected error for empty data")
	}
}

func TestReadChunksTruncated(t *testing.T) {
	data, err := Encode(4, 4, Accent)
	if err != nil {
		t.Fatal(err)
	}
	_, err = ReadChunks(data[:len(data)-6])
	if err == nil {
		t.Fatal("expected error for truncated file")
	}
}

func TestReadHeaderRejectsMissingIHDR(t *testing.T) {
	data := append([]byte(nil), Signature...)
	data = append(data, writeChunk("IEND", nil)...)
	if _, err := ReadHeader(data); err == nil {
		t.Error("expected error when IHDR is missing")
	}
}

func TestColorTypeName(t *testing.T) {
	tests := []struct {
		in   byte
		want string
	}{
		{0, "grayscale"},
		{2, "truecolor"},
		{3, "indexed"},
		{4, "grayscale+alpha"},
		{6, "truecolor+alpha"},
		{9, "unknown(9)"},
	}
	for _, tt := range tests {
		if got := ColorTypeName(tt.in); got != tt.want {
			t.Errorf("ColorTypeName(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
