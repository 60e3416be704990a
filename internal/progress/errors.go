package progress

import "errors"

// ErrNotFound indicates an unknown hadith id or an untracked
// (child, hadith) pair. Handlers map it onto a 404 response.
var ErrNotFound = errors.New("not found")

// ErrAlreadyTracked is returned by StartLearning when the pair already
// has a progress record. Re-starting is never silent; callers must
// transition the existing record instead.
var ErrAlreadyTracked = errors.New("progress already tracked for this hadith")

// ErrIllegalTransition indicates a status change the transition table
// does not allow from the record's current status.
var ErrIllegalTransition = errors.New("illegal status transition")

// ErrUnknownStatus indicates a status value outside the five-state
// lifecycle.
var ErrUnknownStatus = errors.New("unknown learning status")
