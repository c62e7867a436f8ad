package probe

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Segment is one ancillary block that carries metadata rather than pixels.
type Segment struct {
	Name string
	Size int
}

func (s Segment) String() string {
	return fmt.Sprintf("%s (%d bytes)", s.Name, s.Size)
}

// Metadata lists the metadata segments present in img. Formats without an
// inventory (BMP, TIFF) return nil.
func Metadata(img *Image) []Segment {
	switch img.Format {
	case FormatJPEG:
		return jpegSegments(img.Data)
	case FormatPNG:
		var out []Segment
		for _, c := range pngChunks(img.Data) {
			switch c.kind {
			case "tEXt", "iTXt", "zTXt", "eXIf", "iCCP", "tIME":
				out = append(out, Segment{Name: c.kind, Size: len(c.data)})
			}
		}
		return out
	case FormatWebP:
		var out []Segment
		for _, c := range riffChunks(img.Data) {
			switch c.kind {
			case "EXIF", "XMP ", "ICCP":
				out = append(out, Segment{Name: strings.TrimSpace(c.kind), Size: len(c.data)})
			}
		}
		return out
	case FormatGIF:
		var out []Segment
		walkGIF(img.Data, func(kind, label byte, first []byte) {
			if kind != gifExtension {
				return
			}
			switch {
			case label == 0xFE:
				out = append(out, Segment{Name: "Comment", Size: len(first)})
			case label == 0xFF && !isLoopExtension(first):
				out = append(out, Segment{Name: "Application " + strings.TrimSpace(string(first)), Size: len(first)})
			}
		})
		return out
	}
	return nil
}

func isLoopExtension(id []byte) bool {
	return bytes.Equal(id, []byte("NETSCAPE2.0")) || bytes.Equal(id, []byte("ANIMEXTS1.0"))
}

// jpegSegments walks markers from SOI up to the first SOS and collects every
// APPn and COM segment.
func jpegSegments(data []byte) []Segment {
	var out []Segment
	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			break
		}
		marker := data[pos+1]
		if marker == 0xFF { // fill byte
			pos++
			continue
		}
		if marker == 0xDA || marker == 0xD9 {
			break
		}
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7) {
			pos += 2
			continue
		}
		n := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		end := pos + 2 + n
		if n < 2 || end > len(data) {
			break
		}
		payload := data[pos+4 : end]
		switch {
		case marker >= 0xE0 && marker <= 0xEF:
			name := fmt.Sprintf("APP%d", marker-0xE0)
			if label := appLabel(payload); label != "" {
				name += " " + label
			}
			out = append(out, Segment{Name: name, Size: len(payload)})
		case marker == 0xFE:
			out = append(out, Segment{Name: "COM", Size: len(payload)})
		}
		pos = end
	}
	return out
}

var appIdentifiers = []struct {
	prefix string
	label  string
}{
	{"Exif\x00", "Exif"},
	{"http://ns.adobe.com/xap/1.0/", "XMP"},
	{"ICC_PROFILE", "ICC"},
	{"JFIF", "JFIF"},
	{"Photoshop 3.0", "IPTC"},
	{"Adobe", "Adobe"},
}

func appLabel(payload []byte) string {
	for _, id := range appIdentifiers {
		if bytes.HasPrefix(payload, []byte(id.prefix)) {
			return "(" + id.label + ")"
		}
	}
	return ""
}
