package trace

import "fmt"

// FormatError is reported when a trace line cannot be parsed.
type FormatError struct {
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed trace line %d %q: %s",
		e.Line, e.Text, e.Reason)
}

// ResourceError is reported when a trace cannot be opened or read.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("cannot read trace %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
