package pipeline

import (
	"github.com/stayhub/rental-api/pkg/apperr"
)

// Result is the outcome of a single guard: either the chain continues, or it
// halts with the error that becomes the response.
type Result struct {
	err *apperr.Error
}

func Continue() Result { return Result{} }

func Halt(err *apperr.Error) Result { return Result{err: err} }

func (r Result) Halted() bool { return r.err != nil }

func (r Result) Err() *apperr.Error { return r.err }
