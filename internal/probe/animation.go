package probe

import "encoding/binary"

// countFrames returns the number of frames stored in the container; 1 for
// formats that cannot animate.
func countFrames(f Format, data []byte) int {
	switch f {
	case FormatGIF:
		n := 0
		walkGIF(data, func(kind, _ byte, _ []byte) {
			if kind == gifImage {
				n++
			}
		})
		return max(n, 1)
	case FormatPNG:
		for _, c := range pngChunks(data) {
			if c.kind == "acTL" && len(c.data) >= 8 {
				return max(be32(c.data[:4]), 1)
			}
		}
	case FormatWebP:
		n := 0
		for _, c := range riffChunks(data) {
			if c.kind == "ANMF" {
				n++
			}
		}
		return max(n, 1)
	}
	return 1
}

const (
	gifImage     = 0x2C
	gifExtension = 0x21
	gifTrailer   = 0x3B
)

// walkGIF visits every image descriptor and extension block. For extensions
// label is the extension label and first is the first data sub-block.
func walkGIF(data []byte, visit func(kind, label byte, first []byte)) {
	if len(data) < 13 {
		return
	}
	pos := 13
	if packed := data[10]; packed&0x80 != 0 {
		pos += 3 * (1 << (int(packed&0x07) + 1))
	}
	for pos < len(data) {
		switch data[pos] {
		case gifImage:
			if pos+10 > len(data) {
				return
			}
			visit(gifImage, 0, nil)
			flags := data[pos+9]
			pos += 10
			if flags&0x80 != 0 {
				pos += 3 * (1 << (int(flags&0x07) + 1))
			}
			pos++ // LZW minimum code size
			pos, _ = skipSubBlocks(data, pos)
		case gifExtension:
			if pos+2 > len(data) {
				return
			}
			label := data[pos+1]
			var first []byte
			pos, first = skipSubBlocks(data, pos+2)
			visit(gifExtension, label, first)
		default: // trailer or garbage
			return
		}
	}
}

// skipSubBlocks advances past a GIF sub-block chain and returns the new
// offset with the first sub-block's payload.
func skipSubBlocks(data []byte, pos int) (int, []byte) {
	var first []byte
	for pos < len(data) {
		n := int(data[pos])
		pos++
		if n == 0 {
			return pos, first
		}
		if first == nil && pos+n <= len(data) {
			first = data[pos : pos+n]
		}
		pos += n
	}
	return pos, first
}

type chunk struct {
	kind string
	data []byte
}

// pngChunks lists chunks up to and including IEND. Truncated files yield the
// chunks read so far.
func pngChunks(data []byte) []chunk {
	var out []chunk
	pos := len(pngSignature)
	for pos+8 <= len(data) {
		n := be32(data[pos : pos+4])
		kind := string(data[pos+4 : pos+8])
		end := pos + 8 + n
		if n < 0 || end > len(data) {
			break
		}
		out = append(out, chunk{kind: kind, data: data[pos+8 : end]})
		if kind == "IEND" {
			break
		}
		pos = end + 4 // CRC
	}
	return out
}

// riffChunks lists the top-level chunks of a RIFF/WEBP file.
func riffChunks(data []byte) []chunk {
	var out []chunk
	pos := 12
	for pos+8 <= len(data) {
		kind := string(data[pos : pos+4])
		n := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		end := pos + 8 + n
		if n < 0 || end > len(data) {
			break
		}
		out = append(out, chunk{kind: kind, data: data[pos+8 : end]})
		pos = end + n%2 // chunks are padded to even size
	}
	return out
}
