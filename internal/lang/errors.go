package lang

import "errors"

// ErrInvalid indicates an invalid language code was specified.
var ErrInvalid = errors.New("invalid language code")

// ErrSamePair indicates the word language and the learner language are equal.
var ErrSamePair = errors.New("word language and native language must differ")
