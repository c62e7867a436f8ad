package codec

import (
	"errors"
	"fmt"

	"github.com/backmassage/pixr/internal/probe"
)

// Sentinel errors. Every encoder failure matches ErrEncode via errors.Is.
var (
	ErrEncode            = errors.New("encode failed")
	ErrDecode            = errors.New("decode failed")
	ErrUnsupportedFormat = errors.New("no codec for format")
)

// EncodeError describes a failed encode. It matches ErrEncode and unwraps to
// the underlying encoder error.
type EncodeError struct {
	Format  probe.Format
	Quality int
	Err     error
}

func (e *EncodeError) Error() string {
	if e.Quality > 0 {
		return fmt.Sprintf("encode %s at quality %d: %v", e.Format, e.Quality, e.Err)
	}
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Is reports true for ErrEncode so callers can match any encoder failure.
func (e *EncodeError) Is(target error) bool { return target == ErrEncode }
