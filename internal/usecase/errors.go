package usecase

import "errors"

// ErrorKind classifies domain failures so the delivery layer can map them
// without knowing every individual error.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindConflict
	KindForbidden
	KindPreconditionFailed
	KindInvalidReference
	KindInvalidInput
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	case KindPreconditionFailed:
		return "precondition_failed"
	case KindInvalidReference:
		return "invalid_reference"
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error is a recoverable domain failure.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// AsError returns the domain error wrapped in err, if any.
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

var (
	// NotFound
	ErrUserNotFound             = newError(KindNotFound, "user_not_found", "user not found")
	ErrSectionNotFound          = newError(KindNotFound, "section_not_found", "section not found")
	ErrBookNotFound             = newError(KindNotFound, "book_not_found", "book not found")
	ErrAuditLogNotFound         = newError(KindNotFound, "audit_log_not_found", "audit log not found")
	ErrPurchaseSettingsNotFound = newError(KindNotFound, "purchase_settings_not_found", "purchase settings not found")

	// Conflict
	ErrDuplicateUsername    = newError(KindConflict, "duplicate_username", "username already exists")
	ErrDuplicateEmail       = newError(KindConflict, "duplicate_email", "email already exists")
	ErrDuplicateSectionName = newError(KindConflict, "duplicate_name", "a section with this name already exists")
	ErrDuplicateISBN        = newError(KindConflict, "duplicate_isbn", "a book with this ISBN already exists")
	ErrAlreadyPurchased     = newError(KindConflict, "already_purchased", "you have already purchased this book")

	// Forbidden
	ErrNotAStudent = newError(KindForbidden, "not_a_student", "only students can purchase books")

	// PreconditionFailed
	ErrBookUnavailable    = newError(KindPreconditionFailed, "book_unavailable", "book is not available")
	ErrPurchasingDisabled = newError(KindPreconditionFailed, "purchasing_disabled", "book purchasing is currently disabled")
	ErrSectionNotEmpty    = newError(KindPreconditionFailed, "section_not_empty", "cannot delete a section that contains books")
	ErrBookHasPurchases   = newError(KindPreconditionFailed, "book_has_purchases", "cannot delete a book that has been purchased")

	// InvalidReference
	ErrInvalidSection = newError(KindInvalidReference, "invalid_section", "section does not exist")

	// InvalidInput
	ErrInvalidRole  = newError(KindInvalidInput, "invalid_role", "unknown role")
	ErrInvalidPrice = newError(KindInvalidInput, "invalid_price", "price must not be negative")

	// Unauthorized
	ErrInvalidCredentials = newError(KindUnauthorized, "invalid_credentials", "invalid username or password")
	ErrInvalidToken       = newError(KindUnauthorized, "invalid_token", "invalid or expired token")
	ErrTokenRevoked       = newError(KindUnauthorized, "token_revoked", "token has been revoked")
)
