package notion

import "fmt"

// ConfigError means a required setting (API key, data source id) is
// absent. Not retryable; shown as a static message.
type ConfigError struct {
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing configuration: %s", e.Missing)
}

// TransportError is a network failure or a non-2xx upstream response that
// is not a sort-field rejection. Terminal for the current fetch; no
// automatic retry. Status is 0 when the request never got a response.
type TransportError struct {
	Status int
	Msg    string
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %s", e.Msg)
	}
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Msg)
}

// SchemaError is a 400-class rejection attributable to a sort field the
// upstream schema does not recognize. Handled internally by the sort
// candidate fallback; only surfaced when every candidate is exhausted.
type SchemaError struct {
	Field string
	Msg   string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("rejected by upstream: %s", e.Msg)
	}
	return fmt.Sprintf("sort field %q rejected: %s", e.Field, e.Msg)
}

// NotFoundError means a snapshot document or record does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}
