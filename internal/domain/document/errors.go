package document

import "fmt"

// MalformedResponseError signals that a generation payload could not be
// parsed as JSON even after stripping code-fence wrappers. It means the
// upstream model broke contract, not that the data was merely incomplete,
// so it is surfaced to the caller instead of being defaulted away.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed generation response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
