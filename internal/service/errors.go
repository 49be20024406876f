package service

import (
	"errors" // Error inspection

	"github.com/go-playground/validator/v10" // Struct validation
	"gorm.io/gorm"                           // ORM library
)

// Kind classifies an expected business failure.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuth
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is the failure returned by every business operation for an expected outcome.
// Any other error reaching a caller is an infrastructure failure.
type Error struct {
	Kind    Kind   // Failure class, mapped to a status by the HTTP layer
	Message string // User facing message
}

func (e *Error) Error() string { return e.Message }

func Validation(msg string) error      { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) error        { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) error        { return &Error{Kind: KindNotFound, Message: msg} }
func Unauthenticated(msg string) error { return &Error{Kind: KindAuth, Message: msg} }

// KindOf returns the kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// User facing messages
const (
	MsgRequiredFields   = "Todos los campos son requeridos."
	MsgInvalidRole      = "El rol debe ser admin o user."
	MsgInvalidTimeRange = "La hora de fin no puede ser anterior a la hora de inicio."
	MsgDuplicateLog     = "Ya existe un registro para esta actividad."
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs the struct's validate tags and turns failures into a Validation error.
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}
	for _, f := range fields {
		if f.Tag() == "oneof" && f.Field() == "Role" {
			return Validation(MsgInvalidRole)
		}
	}
	return Validation(MsgRequiredFields)
}

// uniqueViolation maps a unique index violation to a Conflict carrying msg.
// The index is the authority; lookups before insert only produce a friendlier message earlier.
func uniqueViolation(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict(msg)
	}
	return err
}
