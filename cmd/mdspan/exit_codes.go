package main

import (
	"errors"
	"os"

	"github.com/alnah/go-mdspan"
	"github.com/alnah/go-mdspan/internal/config"
	"github.com/alnah/go-mdspan/internal/fileutil"
	"github.com/alnah/go-mdspan/internal/hints"
	"github.com/alnah/go-mdspan/internal/listing"
)

// Exit codes for mdspan CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All inputs annotated
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitInput   = 4 // Malformed input: bad entity, invalid JSON, oversize
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Malformed input (exit 4)
	if errors.Is(err, mdspan.ErrMalformedEntity) ||
		errors.Is(err, listing.ErrInvalidJSON) ||
		errors.Is(err, fileutil.ErrInputTooLarge) {
		return ExitInput
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdspan.ErrInvalidBaseURL) ||
		errors.Is(err, mdspan.ErrEmptyPlaceholder) ||
		errors.Is(err, listing.ErrUnknownField) ||
		errors.Is(err, fileutil.ErrExtensionEmpty) ||
		errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var entityErr *mdspan.EntityError
	switch {
	case errors.As(err, &entityErr):
		return hints.ForMalformedEntity(entityErr.Reference)
	case errors.Is(err, mdspan.ErrMalformedEntity):
		return hints.ForMalformedEntity("")
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths("mdspan"))
	case errors.Is(err, mdspan.ErrInvalidBaseURL):
		return hints.ForInvalidBaseURL()
	case errors.Is(err, listing.ErrUnknownField):
		return hints.ForUnknownValue(listing.Fields())
	case errors.Is(err, fileutil.ErrInputTooLarge):
		return hints.ForInputTooLarge()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
