package display

import (
	"fmt"
	"io"

	"github.com/backmassage/pixr/internal/term"
)

const bannerArt = `       _
 _ __ (_)_  ___ __
| '_ \| \ \/ / '__|
| |_) | |>  <| |
| .__/|_/_/\_\_|
|_|`

// PrintBanner writes the pixr banner and version to w, in magenta when
// colors are enabled.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprintf(w, "%s\n\n", term.Paint(term.Magenta, bannerArt+"  "+version))
}
