// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Template errors
	CodeTemplateInvalid Code = "TEMPLATE_INVALID"
	CodeTemplateEncode  Code = "TEMPLATE_ENCODE_FAILED"

	// Reference data errors
	CodeSkillDataInvalid Code = "SKILL_DATA_INVALID"

	// Rendering errors
	CodeIconMissing  Code = "ICON_MISSING"
	CodeRenderFailed Code = "RENDER_FAILED"
)

// UserFacing reports whether the code carries a message meant for the person
// who invoked a command. Other codes only reach logs.
func (c Code) UserFacing() bool {
	switch c {
	case CodeTemplateInvalid, CodeIconMissing, CodeRenderFailed:
		return true
	default:
		return false
	}
}

// CodeOf extracts the domain code from err, or CodeUnknown.
func CodeOf(err error) Code {
	var domainErr *Error
	if As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}
