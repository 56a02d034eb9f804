package siteerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigMissing indicates the version record file does not exist.
	ErrConfigMissing = errors.New("version record not found")

	// ErrConfigInvalid indicates the version record is not a well-formed JSON object.
	ErrConfigInvalid = errors.New("invalid version record")

	// ErrWrite indicates an error occurred while writing.
	ErrWrite = errors.New("write")

	// ErrConfigWrite indicates the version record could not be written back.
	ErrConfigWrite = fmt.Errorf("version record: %w", ErrWrite)

	// ErrReadDocument indicates a document could not be read.
	ErrReadDocument = errors.New("read document")

	// ErrWriteDocument indicates a rewritten document could not be saved.
	ErrWriteDocument = fmt.Errorf("document: %w", ErrWrite)

	// ErrNoVersionDetected indicates no document carries a version heading.
	ErrNoVersionDetected = errors.New("could not detect current version in documents")

	// ErrNoDocumentsUpdated indicates the rewrite changed no document.
	ErrNoDocumentsUpdated = errors.New("no documents were updated")

	// ErrInvalidArguments indicates invalid arguments were provided.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrInvalidFormat indicates an unexpected or invalid format was encountered.
	ErrInvalidFormat = errors.New("invalid format")
)
