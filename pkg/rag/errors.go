package rag

import "errors"

var (
	// ErrRetrievalUnavailable covers a missing or failing encoder or vector index.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
	// ErrGenerationFailure covers network errors, timeouts, non-2xx and malformed bodies.
	ErrGenerationFailure = errors.New("generation failed")
	// ErrTranslationFailure covers translation backend errors and unknown language codes.
	ErrTranslationFailure = errors.New("translation failed")
	// ErrMissingCollaborator is returned by constructors in fail-closed mode.
	ErrMissingCollaborator = errors.New("required collaborator is not configured")
)
