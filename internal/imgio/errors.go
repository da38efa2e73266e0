package imgio

import "fmt"

// LoadError wraps a failure to read or decode an input image.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("imgio: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError wraps a failure to create or encode an output image.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("imgio: save %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
