package grammar

import (
	"github.com/KilimcininKorOglu/ldapwire/ber"
)

// TLV is a fully-buffered tag-length-value unit handed to a Transition's
// Action. Value holds exactly Length bytes of content; for a TLV the
// engine recurses into (Transition.Recurse), Value is the raw content the
// nested grammar will itself re-parse as a sequence of child TLVs.
type TLV struct {
	Class       int
	Constructed bool
	Number      int
	Length      int
	Value       []byte

	// Offset is the absolute byte offset of this TLV's tag within the
	// full PDU, for error reporting.
	Offset int
}

// Engine drives a Table over a Container, accepting input in arbitrary
// chunks via Feed. One Engine decodes exactly one PDU; call Reset (or
// construct a new Engine) to decode the next one.
type Engine struct {
	table     Table
	container Container
	state     State

	stack   TLVStack
	pending []byte
	base    int // absolute offset of pending[0] within the whole PDU

	// MaxPDUSize, if non-zero, bounds the content length accepted for the
	// outermost frame (spec.md §5 max_pdu_size).
	MaxPDUSize int

	// MaxDepth, if non-zero, bounds how deeply frames may nest (spec.md
	// §5's filter nesting guard, default 100 is the caller's concern to
	// set).
	MaxDepth int

	done bool
}

// NewEngine constructs an Engine that starts in initial, driving table
// against container.
func NewEngine(table Table, container Container, initial State) *Engine {
	return &Engine{
		table:     table,
		container: container,
		state:     initial,
	}
}

// State returns the engine's current grammar state.
func (e *Engine) State() State {
	return e.state
}

// Done reports whether the PDU has been fully decoded.
func (e *Engine) Done() bool {
	return e.done
}

// Reset prepares the engine to decode a new PDU in the given initial
// state, discarding any buffered bytes and stack frames.
func (e *Engine) Reset(initial State) {
	e.state = initial
	e.stack.Reset()
	e.pending = nil
	e.base = 0
	e.done = false
}

// Feed appends chunk to the engine's buffered input and decodes as many
// complete TLVs as are available. It returns (true, nil) once the PDU is
// fully decoded, (false, nil) if more bytes are needed, or a non-nil error
// if the input violates the grammar.
func (e *Engine) Feed(chunk []byte) (bool, error) {
	if e.done {
		return true, nil
	}
	if len(chunk) > 0 {
		e.pending = append(e.pending, chunk...)
	}

	for {
		if e.done {
			return true, nil
		}

		dec := ber.NewBERDecoder(e.pending)
		class, constructed, number, length, headerLen, err := dec.PeekTagAndLength()
		if err == ber.ErrIncomplete {
			return false, nil
		}
		if err != nil {
			return false, &ProtocolError{State: e.state, Reason: err.Error()}
		}

		total := headerLen + length
		tag := TagKey{Class: class, Constructed: constructed == ber.TypeConstructed, Number: number}

		if e.MaxPDUSize > 0 && e.stack.Empty() && length > e.MaxPDUSize {
			return false, &PduTooLargeError{Declared: length, Max: e.MaxPDUSize}
		}

		transition, ok := e.table.Lookup(e.state, tag)
		if !ok {
			return false, &ProtocolError{
				State:  e.state,
				Tag:    tag,
				Reason: "no transition for observed tag in current state",
			}
		}

		tlv := TLV{
			Class:       class,
			Constructed: tag.Constructed,
			Number:      number,
			Length:      length,
			Value:       e.pending[headerLen:total],
			Offset:      e.base,
		}

		if transition.Action != nil {
			if err := transition.Action(e.container, tlv); err != nil {
				return false, err
			}
		}

		if transition.EndAllowed {
			e.container.SetEndAllowed(true)
		}

		consumed := total
		if transition.Recurse {
			if e.MaxDepth > 0 && e.stack.Depth()+1 > e.MaxDepth {
				return false, &MaxDepthError{Max: e.MaxDepth}
			}
			// Charge only the TLV's own header against frames already open
			// (its parents) before pushing its own frame, so the new frame
			// starts at its declared length untouched; the content is
			// charged child by child as the nested TLVs are consumed.
			if err := e.stack.ChargeEnclosing(headerLen); err != nil {
				return false, &ProtocolError{State: e.state, Tag: tag, Reason: err.Error()}
			}
			e.stack.Push(tag, length)
			e.state = transition.NextState
			consumed = headerLen
		} else {
			if err := e.stack.ChargeEnclosing(total); err != nil {
				return false, &ProtocolError{State: e.state, Tag: tag, Reason: err.Error()}
			}
			e.state = transition.NextState
		}

		e.pending = e.pending[consumed:]
		e.base += consumed

		e.stack.PopExhausted()

		if e.stack.Empty() {
			if e.container.EndAllowed() {
				e.done = true
				return true, nil
			}
			if len(e.pending) == 0 {
				return false, nil
			}
		}
	}
}
