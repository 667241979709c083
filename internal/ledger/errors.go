package ledger

import "fmt"

// ValidationError reports malformed or incomplete input to expense or
// settlement creation. It is surfaced to the caller immediately; the
// offending write is never partially applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidReferenceError reports an expense share or settlement that refers
// to a member absent from the supplied member set. The whole balance
// computation fails rather than silently skipping the record, since skipping
// would change totals.
type InvalidReferenceError struct {
	Record   string // "expense share", "settlement payer", ...
	MemberID string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s references unknown member %q", e.Record, e.MemberID)
}
