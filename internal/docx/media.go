package docx

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/jpeg" // register decoder for DecodeConfig
	_ "image/png"  // register decoder for DecodeConfig
	"regexp"
	"strings"
)

// EMU (English Metric Units) conversions.
const (
	emuPerPixel = 9525    // at 96 dpi
	emuPerTwip  = 635     // 914400 EMU per inch / 1440 twips per inch
	maxImageEMU = 5486400 // six inches
)

var dataURI = regexp.MustCompile(`^data:image/(png|jpeg|jpg);base64,(.+)$`)

// mediaPart is an image stored under word/media.
type mediaPart struct {
	Name   string // file name inside word/media
	Data   []byte
	Width  int64 // EMU
	Height int64 // EMU
}

// decodeImage decodes a base64 PNG or JPEG data URI and sizes it for a
// page whose text column is maxWidth EMU wide. ok is false for any other
// source or for undecodable data.
func decodeImage(src string, maxWidth int64) (data []byte, ext string, width, height int64, ok bool) {
	m := dataURI.FindStringSubmatch(strings.TrimSpace(src))
	if m == nil {
		return nil, "", 0, 0, false
	}
	payload := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, m[2])
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", 0, 0, false
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return nil, "", 0, 0, false
	}

	ext = m[1]
	if ext == "jpg" {
		ext = "jpeg"
	}
	width = int64(cfg.Width) * emuPerPixel
	height = int64(cfg.Height) * emuPerPixel
	if limit := min(maxWidth, maxImageEMU); width > limit {
		height = height * limit / width
		width = limit
	}
	return data, ext, width, height, true
}
