package records

import "fmt"

// RemoteError reports an unexpected non-2xx response from the remote
// contents API, outside the load-404 and commit-409 special cases.
type RemoteError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote %s failed: status %d: %s", e.Op, e.StatusCode, e.Body)
}

// CorruptContentError reports collection bytes that failed to parse as a
// JSON record array. Only surfaced under CorruptFail; the default policy
// recovers by treating the collection as empty.
type CorruptContentError struct {
	Path string
	Err  error
}

func (e *CorruptContentError) Error() string {
	return fmt.Sprintf("corrupt collection content at %s: %v", e.Path, e.Err)
}

func (e *CorruptContentError) Unwrap() error { return e.Err }
