package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures across layer boundaries. The HTTP controller
// and the orchestration loop use them to distinguish recoverable downstream
// trouble from faults that terminate the current turn.
var (
	// ErrTagUnavailable marks downstream I/O failures (vector store,
	// record store). Recoverable at the tool-turn level, 503 at the edge.
	ErrTagUnavailable = goerr.NewTag("unavailable")

	// ErrTagCapability marks model or embedding service faults. Fatal for
	// the current conversation turn.
	ErrTagCapability = goerr.NewTag("capability")

	// ErrTagCancelled marks caller-initiated cancellation or timeout.
	ErrTagCancelled = goerr.NewTag("cancelled")

	// ErrTagValidation marks bad input from the caller or the model.
	ErrTagValidation = goerr.NewTag("validation")
)
