package catalog

import "errors"

// Sentinel errors for every failure kind the catalog surface distinguishes.
// Handlers map them to HTTP statuses; anything else is a storage failure
// and stays server-side.
var (
	// ErrValidation signals a missing or malformed required field.
	ErrValidation = errors.New("catalog: missing or invalid field")
	// ErrPlaceExists signals a duplicate active place name.
	ErrPlaceExists = errors.New("catalog: place name already exists")
	// ErrPlaceNotFound signals an unknown or deactivated place.
	ErrPlaceNotFound = errors.New("catalog: place not found")
	// ErrDelegateNotFound signals an unknown delegate id.
	ErrDelegateNotFound = errors.New("catalog: delegate not found")
	// ErrUserNotFound signals an actor email that resolves to no user.
	ErrUserNotFound = errors.New("catalog: user not found")
	// ErrNotAdmin signals an actor without the admin flag.
	ErrNotAdmin = errors.New("catalog: not authorized, admins only")
)

var sentinels = []error{
	ErrValidation,
	ErrPlaceExists,
	ErrPlaceNotFound,
	ErrDelegateNotFound,
	ErrUserNotFound,
	ErrNotAdmin,
}

// wrap tags a storage failure with the operation name, passing our own
// sentinels through untouched.
func wrap(op string, err error) error {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err
		}
	}
	return &opError{op: op, err: err}
}

type opError struct {
	op  string
	err error
}

func (e *opError) Error() string { return "catalog: " + e.op + ": " + e.err.Error() }
func (e *opError) Unwrap() error { return e.err }
