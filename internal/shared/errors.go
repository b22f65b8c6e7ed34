package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized indicates a missing or unusable identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidToken indicates a token that failed decoding, verification or expiry.
	ErrInvalidToken = fmt.Errorf("invalid token: %w", ErrUnauthorized)
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	// ErrForbidden indicates the principal lacks a required permission.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a uniqueness violation.
	ErrConflict = errors.New("already exists")
	// ErrPartialApply indicates a reconciliation stopped after removals but before insertions.
	ErrPartialApply = errors.New("partial apply")
)

// Message keys shared across modules. They resolve through the i18n catalog;
// unknown keys are rendered verbatim.
const (
	MsgValidationTitle   = "COMMON.VALIDATION_ERROR_TITLE"
	MsgAlreadyExists     = "COMMON.ALREADY_EXIST"
	MsgUnknownError      = "COMMON.UNKNOWN_ERROR"
	MsgFieldRequired     = "COMMON.FIELD_MUST_BE_FILLED"
	MsgFieldType         = "COMMON.FIELD_MUST_BE_TYPE"
	MsgNeedPermissions   = "COMMON.NEED_PERMISSIONS"
	MsgUnauthorized      = "COMMON.UNAUTHORIZED"
	MsgInvalidToken      = "COMMON.INVALID_TOKEN"
	MsgNotFound          = "COMMON.NOT_FOUND"
	MsgNotFoundID        = "COMMON.NOT_FOUND_ID"
	MsgPartialApply      = "COMMON.PARTIAL_APPLY"
	MsgPartialApplyDesc  = "COMMON.PARTIAL_APPLY_DESC"
	MsgTooManyRequests   = "COMMON.TOO_MANY_REQUESTS"
	MsgAuthError         = "USERS.AUTH_ERROR"
	MsgEmailFormat       = "USERS.EMAIL_FORMAT_ERROR"
	MsgPasswordPolicy    = "USERS.PASSWORD_LENGTH_ERROR"
	MsgPhoneLength       = "USERS.PHONE_NUMBER_LENGTH_ERROR"
	MsgRegistrationClose = "USERS.REGISTRATION_CLOSED"
	MsgUnknownRoles      = "USERS.UNKNOWN_ROLES"
	MsgUnknownPermission = "ROLES.UNKNOWN_PERMISSION"
	MsgEmptyPermissions  = "ROLES.EMPTY_PERMISSIONS"
)

// Error is a classified failure carrying a user-facing message pair.
// Msg and Description are message keys; Args feed the description.
type Error struct {
	Kind        error
	Code        int
	Msg         string
	Description string
	Args        []any
}

func (e *Error) Error() string {
	desc := e.Description
	if len(e.Args) > 0 {
		desc = fmt.Sprintf("%s %v", desc, e.Args)
	}
	if e.Kind == nil {
		return desc
	}
	return e.Kind.Error() + ": " + desc
}

func (e *Error) Unwrap() error { return e.Kind }

// ValidationError reports bad input.
func ValidationError(desc string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Msg: MsgValidationTitle, Description: desc, Args: args}
}

// RequiredField reports a missing mandatory field.
func RequiredField(field string) *Error {
	return ValidationError(MsgFieldRequired, field)
}

// UnauthorizedError reports a missing or unusable identity.
func UnauthorizedError(kind error, desc string) *Error {
	if kind == nil {
		kind = ErrUnauthorized
	}
	return &Error{Kind: kind, Msg: MsgUnauthorized, Description: desc}
}

// ForbiddenError reports a denied permission check.
func ForbiddenError(permission string) *Error {
	return &Error{Kind: ErrForbidden, Msg: MsgUnauthorized, Description: MsgNeedPermissions, Args: []any{permission}}
}

// NotFoundError reports a missing entity by id.
func NotFoundError(entity string, id any) *Error {
	return &Error{Kind: ErrNotFound, Msg: MsgNotFound, Description: MsgNotFoundID, Args: []any{entity, id}}
}

// ConflictError reports a uniqueness violation.
func ConflictError() *Error {
	return &Error{Kind: ErrConflict, Msg: MsgAlreadyExists, Description: MsgAlreadyExists}
}
