package errors

import (
	"encoding/json"
	"fmt"
)

// BusinessErr signals a violated business rule for a specific target field
type BusinessErr struct {
	target  string
	message string
}

func (e *BusinessErr) Error() string {
	return e.message
}

func (e *BusinessErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Target  string `json:"target"`
		Message string `json:"message"`
	}{Target: e.target, Message: e.message})
}

// NewBusinessErr builds new BusinessErr
func NewBusinessErr(target string, msg string) error {
	return &BusinessErr{
		target:  target,
		message: msg,
	}
}

// EntryNotFoundErr signals that update/delete referenced an absent id.
// Absent on plain lookup is not an error, repositories return nil instead.
type EntryNotFoundErr struct {
	message string
}

func (e *EntryNotFoundErr) Error() string {
	return e.message
}

// NewEntryNotFoundErr builds new EntryNotFoundErr
func NewEntryNotFoundErr(msg string) *EntryNotFoundErr {
	return &EntryNotFoundErr{message: msg}
}

// StorageErr wraps a failure of the backing store so callers can tell
// infrastructure trouble apart from a missing entry
type StorageErr struct {
	op    string
	cause error
}

func (e *StorageErr) Error() string {
	return fmt.Sprintf("storage failure on %s - %v", e.op, e.cause)
}

func (e *StorageErr) Unwrap() error {
	return e.cause
}

// NewStorageErr builds new StorageErr
func NewStorageErr(op string, cause error) *StorageErr {
	return &StorageErr{op: op, cause: cause}
}
