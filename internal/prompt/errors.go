package prompt

import "errors"

// Request errors. Wrapped with context via fmt.Errorf("%w: ...") and matched
// with errors.Is by callers.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnknownModel     = errors.New("unknown model")
	ErrUnknownArtist    = errors.New("unknown artist")
	ErrUnknownImageType = errors.New("unknown image type")
)
