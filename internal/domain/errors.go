package domain

import (
	"errors"
	"fmt"
)

// ErrRuleNotFound is wrapped by every NotFoundError.
var ErrRuleNotFound = errors.New("rule not found")

// InvalidInputError reports a field that failed validation.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an unknown rule id.
type NotFoundError struct {
	RuleID RuleID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rule %q not found", e.RuleID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrRuleNotFound
}
