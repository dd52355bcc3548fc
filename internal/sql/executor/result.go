package executor

import "github.com/ringdb/ringdb/internal/storage"

// Result is the tagged variant returned by a successful executor run:
// either a human-readable message (DDL/DML acknowledgement) or a batch
// of decoded tuples (SELECT).
type Result struct {
	Message string
	Tuples  []storage.Tuple
	IsData  bool
}

// MessageResult builds a message-only Result.
func MessageResult(msg string) *Result {
	return &Result{Message: msg}
}

// DataResult builds a tuple-batch Result.
func DataResult(tuples []storage.Tuple) *Result {
	return &Result{Tuples: tuples, IsData: true}
}
