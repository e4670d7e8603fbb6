package ooxml

import (
	"bytes"
	"encoding/binary"
	"hash/fnv"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"golang.org/x/image/bmp"
)

// BlobHash names a media blob by its content so identical images share a
// single package member.
func BlobHash(blob []byte) uuid.UUID {
	h := fnv.New128()
	h.Write(blob)
	uid, _ := uuid.FromBytes(h.Sum([]byte{}))
	return uid
}

// ImageInfo describes an image header.
type ImageInfo struct {
	Type   string // png, jpeg, gif or bmp
	Width  int    // pixels
	Height int    // pixels
	XDPI   float64
	YDPI   float64
}

// Extension returns the file extension used for the media member.
func (ii ImageInfo) Extension() string {
	return ii.Type
}

// ContentType returns the MIME type of the image.
func (ii ImageInfo) ContentType() string {
	return "image/" + ii.Type
}

// ReadImageInfo reads the header of an image blob. Resolution defaults to
// 96 dpi when the file does not record one.
func ReadImageInfo(blob []byte) (ImageInfo, error) {
	info := ImageInfo{XDPI: 96, YDPI: 96}
	if len(blob) < 4 {
		return info, Invalid("image data is too short")
	}
	var cfg image.Config
	var err error
	if blob[0] == 'B' && blob[1] == 'M' {
		cfg, err = bmp.DecodeConfig(bytes.NewReader(blob))
		info.Type = "bmp"
	} else {
		cfg, info.Type, err = image.DecodeConfig(bytes.NewReader(blob))
	}
	if err != nil {
		return info, Invalid("unsupported image: %v", err)
	}
	info.Width, info.Height = cfg.Width, cfg.Height
	switch info.Type {
	case "png":
		pngDPI(blob, &info)
	case "jpeg":
		jpegDPI(blob, &info)
	}
	return info, nil
}

// pngDPI reads the pHYs chunk.
func pngDPI(b []byte, info *ImageInfo) {
	pos := 8
	for pos+8 <= len(b) {
		n := int(binary.BigEndian.Uint32(b[pos:]))
		typ := string(b[pos+4 : pos+8])
		if typ == "IDAT" || typ == "IEND" {
			return
		}
		if typ == "pHYs" && pos+8+9 <= len(b) {
			xppu := binary.BigEndian.Uint32(b[pos+8:])
			yppu := binary.BigEndian.Uint32(b[pos+12:])
			if b[pos+16] == 1 && xppu > 0 && yppu > 0 { // metres
				info.XDPI = float64(xppu) * 0.0254
				info.YDPI = float64(yppu) * 0.0254
			}
			return
		}
		pos += n + 12
	}
}

// jpegDPI reads the JFIF APP0 density.
func jpegDPI(b []byte, info *ImageInfo) {
	pos := 2
	for pos+4 <= len(b) && b[pos] == 0xFF {
		marker := b[pos+1]
		n := int(binary.BigEndian.Uint16(b[pos+2:]))
		if marker == 0xE0 && pos+16 <= len(b) && string(b[pos+4:pos+9]) == "JFIF\x00" {
			units := b[pos+11]
			x := float64(binary.BigEndian.Uint16(b[pos+12:]))
			y := float64(binary.BigEndian.Uint16(b[pos+14:]))
			if x > 0 && y > 0 {
				switch units {
				case 1:
					info.XDPI, info.YDPI = x, y
				case 2:
					info.XDPI, info.YDPI = x*2.54, y*2.54
				}
			}
			return
		}
		if marker == 0xDA {
			return
		}
		pos += n + 2
	}
}
