package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrPostNotFound is returned when a post id does not resolve to a record
// owned by the requesting user.
var ErrPostNotFound = errors.New("post not found")

// ValidationError carries per-field violation messages. Handlers surface it
// as an unprocessable-entity response keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
