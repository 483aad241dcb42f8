package storefront

import (
	"fmt"
	"regexp"
)

// QueryError reports a failed Storefront API operation. Err holds the
// transport or GraphQL error.
type QueryError struct {
	Operation string
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("storefront %s: %v", e.Operation, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

var operationRe = regexp.MustCompile(`(?m)^\s*(?:query|mutation)\s+([A-Za-z_][A-Za-z0-9_]*)`)

// OperationName extracts the name of the first operation in a document.
func OperationName(doc string) string {
	m := operationRe.FindStringSubmatch(doc)
	if m == nil {
		return "anonymous"
	}
	return m[1]
}
