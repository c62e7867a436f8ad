// Package probe inspects image files without decoding pixel data: format
// detection from magic bytes, dimensions, color mode, animation (GIF frame
// count, WebP ANIM, APNG acTL) and an inventory of ancillary metadata
// segments. A single read per file backs every query; the raw bytes are kept
// on the returned Image so later stages never reopen the file.
//
// Files:
//   - types.go: Format, Mode, Image.
//   - prober.go: Open, Inspect.
//   - detect.go: magic-byte detection.
//   - animation.go: frame counting per container.
//   - metadata.go: Segment inventory (JPEG APPn/COM, PNG text chunks, WebP RIFF chunks).
package probe
