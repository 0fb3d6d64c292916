package webmanifest

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes
const (
	CodeInvalidType   = "invalid_type"
	CodeInvalidEnum   = "invalid_enum"
	CodePattern       = "pattern"
	CodeInvalidFormat = "invalid_format"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeBusinessRule  = "business_rule"
	// Parse-time findings
	CodeDuplicateKey = "duplicate_key"
	CodeParseError   = "parse_error"
	CodeTruncated    = "truncated"
	// Structural findings from the exported JSON Schema
	CodeSchema = "schema"
)

// ErrNotObject is returned when a manifest root is not a JSON object.
var ErrNotObject = errors.New("webmanifest: manifest root is not an object")

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /icons/2/sizes).
	Code    string // One of the codes listed above.
	Message string // Human-readable text; stable across releases.
	Hint    string // Optional: a suggested replacement.
	Rule    string // Name of the checker that produced the issue.
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Messages projects the issues onto their message text, keeping order.
func (iss Issues) Messages() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Message
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
