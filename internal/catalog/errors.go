package catalog

import "errors"

var (
	// ErrStoreUnavailable means the document store was never configured or could not be reached.
	ErrStoreUnavailable = errors.New("document store unavailable")
	// ErrStoreQuery means a read or write against a reachable store failed.
	ErrStoreQuery = errors.New("document store query failed")
	// ErrInvalid marks caller input that fails validation.
	ErrInvalid = errors.New("invalid input")
)

// StoreError records which operation failed and of which kind. Both the kind
// sentinel and the underlying cause are reachable through errors.Is/As.
type StoreError struct {
	Op   string
	Kind error
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// QueryFailed wraps a store failure for op.
func QueryFailed(op string, err error) error {
	return &StoreError{Op: op, Kind: ErrStoreQuery, Err: err}
}

// Unavailable reports that op had no store to talk to.
func Unavailable(op string) error {
	return &StoreError{Op: op, Kind: ErrStoreUnavailable}
}
