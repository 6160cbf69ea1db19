package tracker

import (
	"errors"
	"fmt"
)

// Sentinel errors for tracker operations. Match them with errors.Is.
var (
	ErrStorage     = errors.New("storage error")
	ErrInvalidDate = errors.New("invalid date")
)

// StorageError reports that the task table could not be opened, queried or written.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStorage) true for any StorageError.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// InvalidDateError reports a report day that is neither "today" nor YYYY-MM-DD.
type InvalidDateError struct {
	Input string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("%s %q: expected \"today\" or YYYY-MM-DD", ErrInvalidDate, e.Input)
}

func (e *InvalidDateError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidDate) true for any InvalidDateError.
func (e *InvalidDateError) Is(target error) bool { return target == ErrInvalidDate }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
