package codec

import (
	"image"
	"io"

	"github.com/belphemur/go-webpbin/v2"
)

// libwebpVersion pins the cwebp release fetched by go-webpbin.
const libwebpVersion = "1.4.0"

// encodeWebP is swapped out in tests so they do not need a cwebp binary.
var encodeWebP = cwebpEncode

func cwebpEncode(w io.Writer, m image.Image, quality int) error {
	webpbin.SetLibVersion(libwebpVersion)
	return webpbin.NewCWebP().
		Quality(uint(quality)).
		InputImage(m).
		Output(w).
		Run()
}

// PrepareWebP makes sure the cwebp binary is available, downloading it into
// the go-webpbin cache on first use.
func PrepareWebP() error {
	webpbin.SetLibVersion(libwebpVersion)
	return webpbin.NewCWebP().BinWrapper.Run()
}
