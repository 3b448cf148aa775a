package prompt

import "errors"

// ErrUnknownStyle indicates an invalid prompt style was specified.
var ErrUnknownStyle = errors.New("unknown prompt style")
