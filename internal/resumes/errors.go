package resumes

import "errors"

var (
	// ErrNotFound indicates an entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSections indicates a customization request against a resume with
	// an empty section list.
	ErrNoSections = errors.New("resume has no sections to customize")

	// ErrInvalidCustomization indicates the LLM reply for the customization
	// call lacked the required shape. Unlike parsing, this is fatal for the
	// whole operation.
	ErrInvalidCustomization = errors.New("invalid LLM response for resume customization")
)
