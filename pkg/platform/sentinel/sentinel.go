package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into coded domain errors.
//
// These represent factual states about stored entities, not validation
// failures:
//   - ErrNotFound: entity does not exist in the store
//   - ErrConflict: a uniqueness constraint rejected the write (duplicate
//     national id, email, or transaction reference)
//   - ErrInvalidState: entity is in the wrong lifecycle state for the operation
//   - ErrInactive: entity exists but its active flag is off
//   - ErrUnavailable: store temporarily unreachable
//
// For bad caller input use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrInactive     = errors.New("inactive")
	ErrUnavailable  = errors.New("unavailable")
)
