package ledger

import "errors"

var (
	ErrInvalidDate    = errors.New("ledger: invalid date")
	ErrEmptyRoster    = errors.New("ledger: empty roster")
	ErrInvalidStatus  = errors.New("ledger: invalid status")
	ErrDuplicateEntry = errors.New("ledger: duplicate student in roster")
	ErrUnknownStudent = errors.New("ledger: unknown student")
)

// IsInvalidInput reports whether err is a caller mistake rather than
// a storage failure. Handlers map these to 400, everything else to 500.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrEmptyRoster) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrDuplicateEntry) ||
		errors.Is(err, ErrUnknownStudent)
}
