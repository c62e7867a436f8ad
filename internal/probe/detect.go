package probe

var (
	pngSignature  = [...]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	riffSignature = [...]byte{'R', 'I', 'F', 'F'}
	webpSignature = [...]byte{'W', 'E', 'B', 'P'}
)

// DetectFormat identifies the format from the leading bytes of a file. The
// boolean is false when no supported signature matches.
func DetectFormat(b []byte) (Format, bool) {
	switch {
	case len(b) >= 3 && b[0] == 0xFF && b[1] == 0xD8 && b[2] == 0xFF:
		return FormatJPEG, true
	case hasPrefix(b, pngSignature[:]):
		return FormatPNG, true
	case len(b) >= 6 && string(b[:4]) == "GIF8" && (b[4] == '7' || b[4] == '9') && b[5] == 'a':
		return FormatGIF, true
	case len(b) >= 12 && hasPrefix(b, riffSignature[:]) && hasPrefix(b[8:], webpSignature[:]):
		return FormatWebP, true
	case len(b) >= 4 && (string(b[:4]) == "II*\x00" || string(b[:4]) == "MM\x00*"):
		return FormatTIFF, true
	case len(b) >= 2 && b[0] == 'B' && b[1] == 'M':
		return FormatBMP, true
	}
	return "", false
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i, b := range prefix {
		if buf[i] != b {
			return false
		}
	}
	return true
}
