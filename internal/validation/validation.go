// Package validation implements the argument policy shared by every notes
// operation: fields are checked in declared order and the first failure wins.
package validation

import (
	"strings"

	"github.com/kotche/notes/internal/model"
)

// Field labels used in argument errors.
const (
	UserID       = "user id"
	UserName     = "user name"
	UserSurname  = "user surname"
	UserEmail    = "user email"
	UserPassword = "user password"
	NoteID       = "note id"
	Text         = "text"
)

type Rule int

const (
	// NonBlank trims the value and rejects an empty result.
	NonBlank Rule = iota
	// NonEmpty rejects an empty value and keeps it untrimmed.
	NonEmpty
)

type Field struct {
	Name  string
	Value any
	Rule  Rule
}

// Required declares a field that must be a non-blank string.
func Required(name string, value any) Field {
	return Field{Name: name, Value: value, Rule: NonBlank}
}

// Query declares a free-text search field that must be a non-empty string.
func Query(name string, value any) Field {
	return Field{Name: name, Value: value, Rule: NonEmpty}
}

// ArgumentError reports the first field that failed validation.
type ArgumentError struct {
	Field   string
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

func (e *ArgumentError) Is(target error) bool {
	return target == model.ErrInvalidArgument
}

// Validate checks fields in order and returns their normalized values.
func Validate(fields ...Field) ([]string, error) {
	values := make([]string, 0, len(fields))
	for _, f := range fields {
		s, ok := asString(f.Value)
		if !ok {
			return nil, &ArgumentError{Field: f.Name, Message: f.Name + " is not a string"}
		}

		switch f.Rule {
		case NonEmpty:
			if s == "" {
				return nil, &ArgumentError{Field: f.Name, Message: f.Name + " is empty"}
			}
		default:
			if s = strings.TrimSpace(s); s == "" {
				return nil, &ArgumentError{Field: f.Name, Message: f.Name + " is empty or blank"}
			}
		}

		values = append(values, s)
	}
	return values, nil
}

// Optional trims an optional value; a blank value counts as absent.
func Optional(value string) (string, bool) {
	value = strings.TrimSpace(value)
	return value, value != ""
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case *string:
		if s == nil {
			return "", false
		}
		return *s, true
	case model.UserID:
		return string(s), true
	case model.NoteID:
		return string(s), true
	default:
		return "", false
	}
}
