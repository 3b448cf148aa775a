package config

import "errors"

var (
	// ErrInvalid indicates a configuration value failed validation.
	ErrInvalid = errors.New("invalid configuration")

	// ErrUnknownKey indicates a key that is not a configuration setting.
	ErrUnknownKey = errors.New("unknown config key")
)

var (
	// ErrNotDirectory indicates the output path exists but is a file.
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrNotWritable indicates the output directory cannot be written.
	ErrNotWritable = errors.New("directory is not writable")
)
