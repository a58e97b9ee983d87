package grammar

import (
	"errors"
	"fmt"

	"github.com/KilimcininKorOglu/ldapwire/ber"
)

// ErrIncomplete signals that the buffered bytes end mid-TLV. Feed does not
// return it: Feed reports that case as (false, nil), meaning "call me again
// with more bytes", not a decode failure. It is the same sentinel
// ber.PeekTagAndLength returns, re-exported here so callers that only
// import grammar need not also import ber to recognize it.
var ErrIncomplete = ber.ErrIncomplete

// errFrameOverrun is returned internally when a child TLV consumes more
// bytes than its enclosing frame declared; always surfaced to the caller
// wrapped in a ProtocolError.
var errFrameOverrun = errors.New("grammar: child TLV overruns enclosing length")

// ProtocolError reports a grammar violation: an unexpected tag in the
// current state, a connector with the wrong child count, a frame that
// under- or over-ran its declared length, and similar structural
// failures. It always aborts the PDU being decoded.
type ProtocolError struct {
	State  State
	Tag    TagKey
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("grammar: protocol error in state %d on tag %+v: %s", e.State, e.Tag, e.Reason)
}

// PduTooLargeError is returned when a declared length exceeds the
// Engine's configured MaxPDUSize.
type PduTooLargeError struct {
	Declared int
	Max      int
}

func (e *PduTooLargeError) Error() string {
	return fmt.Sprintf("grammar: PDU length %d exceeds maximum %d", e.Declared, e.Max)
}

// MaxDepthError is returned when the TLV stack would nest deeper than a
// configured limit (the filter sub-grammar's nesting guard, spec.md §5).
type MaxDepthError struct {
	Max int
}

func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("grammar: nesting depth exceeds maximum %d", e.Max)
}
