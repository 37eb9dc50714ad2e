// Package ico wraps PNG-encoded images in a Windows ICO container.
// Since Vista, ICO entries may hold PNG data directly, so the PNG bytes
// are stored unchanged.
package ico

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	headerSize = 6
	entrySize  = 16
	maxSize    = 256
)

// Image is one PNG-encoded entry of an icon file.
type Image struct {
	Width  int
	Height int
	PNG    []byte
}

// Encode builds an ICO file holding the given images in order.
func Encode(images []Image) ([]byte, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("ico: no images")
	}
	if len(images) > 0xffff {
		return nil, fmt.Errorf("ico: too many images (%d)", len(images))
	}

	buf := new(bytes.Buffer)
	// ICONDIR header
	binary.Write(buf, binary.LittleEndian, uint16(0))           // reserved
	binary.Write(buf, binary.LittleEndian, uint16(1))           // type: 1 = ICO
	binary.Write(buf, binary.LittleEndian, uint16(len(images))) // count

	offset := headerSize + entrySize*len(images)
	for _, img := range images {
		if img.Width <= 0 || img.Height <= 0 || img.Width > maxSize || img.Height > maxSize {
			return nil, fmt.Errorf("ico: %dx%d outside 1..%d", img.Width, img.Height, maxSize)
		}
		// ICONDIRENTRY
		buf.WriteByte(dimByte(img.Width))
		buf.WriteByte(dimByte(img.Height))
		buf.WriteByte(0) // color count
		buf.WriteByte(0) // reserved
		binary.Write(buf, binary.LittleEndian, uint16(1))            // color planes
		binary.Write(buf, binary.LittleEndian, uint16(32))           // bits per pixel
		binary.Write(buf, binary.LittleEndian, uint32(len(img.PNG))) // image data size
		binary.Write(buf, binary.LittleEndian, uint32(offset))       // offset to image data
		offset += len(img.PNG)
	}

	for _, img := range images {
		buf.Write(img.PNG)
	}
	return buf.Bytes(), nil
}

// dimByte stores a dimension in one byte; 0 means 256.
func dimByte(n int) byte {
	if n == maxSize {
		return 0
	}
	return byte(n)
}
