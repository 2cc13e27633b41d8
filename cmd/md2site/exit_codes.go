package main

import (
	"errors"
	"os"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/content"
	"github.com/alnah/go-md2site/internal/dateutil"
	"github.com/alnah/go-md2site/internal/site"
)

// Exit codes for md2site CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or options
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitContent = 4 // Invalid post or template
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Content errors (exit 4)
	if errors.Is(err, content.ErrInvalidFrontmatter) ||
		errors.Is(err, content.ErrMissingTitle) ||
		errors.Is(err, content.ErrMissingDate) ||
		errors.Is(err, dateutil.ErrInvalidDate) ||
		errors.Is(err, content.ErrDuplicateSlug) ||
		errors.Is(err, md2site.ErrEmptyMarkdown) ||
		errors.Is(err, site.ErrTemplate) ||
		errors.Is(err, ErrPostsFailed) {
		return ExitContent
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrEmptySlug) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, md2site.ErrUnknownEngine) ||
		errors.Is(err, md2site.ErrUnknownStyle) ||
		errors.Is(err, md2site.ErrInvalidOption) ||
		errors.Is(err, site.ErrUnsafeOutputDir) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrIncompleteTemplateSet) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, content.ErrNotDirectory) ||
		errors.Is(err, site.ErrWrite) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, ErrPostExists) {
		return ExitIO
	}

	return ExitGeneral
}
