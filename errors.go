package rowskema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/rowskema/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeKindMismatch  = "kind_mismatch"
	CodeOverflow      = "overflow"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidJSON   = "invalid_json"
	CodeInvalidFormat = "invalid_format"
	CodeDecodePanic   = "decode_panic"
	CodeEncodeFailed  = "encode_failed"
	CodeUnknownColumn = "unknown_column"
	CodeScopeClosed   = "scope_closed"
)

// Issue describes a single cell that could not be converted.
type Issue struct {
	Schema string // Owning schema name when known.
	Column string
	Row    int // Row position inside the RowSet (-1 when unknown).
	Code   string
	// Message is localized through i18n.T unless the codec supplied one.
	Message string
	Cause   error
	// Params carries structured parameters (e.g., {"got":"text","want":"int64"}).
	Params map[string]any
}

func (it Issue) Error() string {
	b := &strings.Builder{}
	b.WriteString(it.Code)
	if it.Column != "" {
		fmt.Fprintf(b, " at %s", it.Column)
	}
	if it.Row >= 0 {
		fmt.Fprintf(b, "[%d]", it.Row)
	}
	if it.Message != "" {
		b.WriteString(": ")
		b.WriteString(it.Message)
	}
	return b.String()
}

func (it Issue) Unwrap() error { return it.Cause }

// Issues is a collection of cell issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(iss[i].Error())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
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
	var one Issue
	if errors.As(err, &one) {
		return Issues{one}, true
	}
	return nil, false
}

// NewIssue builds a single-issue error with a localized message. Codecs use it
// to report why a cell could not be decoded.
func NewIssue(code string, params map[string]any, cause error) Issues {
	return Issues{{Code: code, Row: -1, Message: i18n.T(code, stringParams(params)), Cause: cause, Params: params}}
}

func stringParams(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = fmt.Sprint(v)
	}
	return out
}

// locate stamps column/row/schema onto issues produced by a codec.
func locate(err error, schema, column string, row int) Issues {
	iss, ok := AsIssues(err)
	if !ok {
		iss = Issues{{Code: CodeInvalidFormat, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		if it.Schema == "" {
			it.Schema = schema
		}
		if it.Column == "" {
			it.Column = column
		}
		it.Row = row
		out[i] = it
	}
	return out
}
