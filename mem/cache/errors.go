package cache

import "fmt"

// ConfigurationError is reported when the simulator is configured with
// parameters that cannot describe a cache or a run.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s=%v: %s",
		e.Field, e.Value, e.Reason)
}
