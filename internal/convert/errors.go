package convert

import "errors"

// Failure classes of a conversion. Returned errors wrap exactly one of these.
var (
	ErrInput          = errors.New("input file not found or unreadable")
	ErrDecode         = errors.New("input is not a readable PDF")
	ErrRender         = errors.New("page rasterization failed")
	ErrMixedPageSizes = errors.New("pages have different sizes")
	ErrSave           = errors.New("presentation could not be saved")
)
