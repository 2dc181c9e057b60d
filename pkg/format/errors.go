package format

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	parseFailedCode     = "FORMDOC_PARSE_FAILED"
	orphanResponseCode  = "FORMDOC_DSL_ORPHAN_RESPONSE"
	missingOptionFields = "FORMDOC_OPTION_FIELDS_MISSING"
	malformedRecordCode = "FORMDOC_DSL_RECORD_MALFORMED"
)

// WrapParseError marks a malformed-source failure for the named input.
// Already-wrapped errors pass through untouched so nested parses keep their
// original classification.
func WrapParseError(err error, location string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("parse %q failed", location)).
		WithTextCode(parseFailedCode)
}

// OrphanResponseError reports a DSL record whose response lines appear before
// any item line, leaving no question to attach them to.
func OrphanResponseError(location string, lineNo int) error {
	err := fmt.Errorf("response before any item at %s:%d", location, lineNo)
	return goerrors.Wrap(err, goerrors.CategoryValidation, "malformed DSL record").
		WithTextCode(orphanResponseCode)
}

// OptionFieldsError reports a select-style response item missing its label or
// value element text.
func OptionFieldsError(location, detail string) error {
	err := fmt.Errorf("%s in %s", detail, location)
	return goerrors.Wrap(err, goerrors.CategoryValidation, "incomplete option definition").
		WithTextCode(missingOptionFields)
}

// MalformedRecordError reports a DSL line that does not carry the fields its
// marker promises.
func MalformedRecordError(location, detail string) error {
	err := fmt.Errorf("%s in %s", detail, location)
	return goerrors.Wrap(err, goerrors.CategoryValidation, "malformed DSL record").
		WithTextCode(malformedRecordCode)
}

// IsMalformedSource reports whether an error belongs to the fatal
// malformed-source class, as opposed to infrastructure failures.
func IsMalformedSource(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}
