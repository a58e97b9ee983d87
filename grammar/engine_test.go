package grammar

import (
	"testing"

	"github.com/KilimcininKorOglu/ldapwire/ber"
)

// testContainer is a minimal Container plus the two integers a toy
// "SEQUENCE { a INTEGER, b INTEGER }" grammar fills in.
type testContainer struct {
	a, b       int64
	endAllowed bool
}

func (c *testContainer) EndAllowed() bool     { return c.endAllowed }
func (c *testContainer) SetEndAllowed(v bool) { c.endAllowed = v }

const (
	stateStart State = iota
	stateWantA
	stateWantB
	stateDone
)

func buildToyTable() Table {
	integerTag := TagKey{Class: ber.ClassUniversal, Constructed: false, Number: ber.TagInteger}
	sequenceTag := TagKey{Class: ber.ClassUniversal, Constructed: true, Number: ber.TagSequence}

	return Table{
		{State: stateStart, Tag: sequenceTag}: {
			NextState: stateWantA,
			Recurse:   true,
		},
		{State: stateWantA, Tag: integerTag}: {
			Action: func(c Container, tlv TLV) error {
				dec := ber.NewBERDecoder(append([]byte{0x02, byte(len(tlv.Value))}, tlv.Value...))
				v, err := dec.ReadInteger()
				if err != nil {
					return err
				}
				c.(*testContainer).a = v
				return nil
			},
			NextState: stateWantB,
		},
		{State: stateWantB, Tag: integerTag}: {
			Action: func(c Container, tlv TLV) error {
				dec := ber.NewBERDecoder(append([]byte{0x02, byte(len(tlv.Value))}, tlv.Value...))
				v, err := dec.ReadInteger()
				if err != nil {
					return err
				}
				c.(*testContainer).b = v
				return nil
			},
			NextState:  stateDone,
			EndAllowed: true,
		},
	}
}

func encodeToyMessage(a, b int64) []byte {
	buf := ber.NewAsn1Buffer()
	mark := buf.Mark()
	buf.WriteInteger(b)
	buf.WriteInteger(a)
	buf.WrapSequence(mark)
	return buf.Bytes()
}

func TestEngineDecodesWholeMessageInOneFeed(t *testing.T) {
	data := encodeToyMessage(7, 99)

	c := &testContainer{}
	e := NewEngine(buildToyTable(), c, stateStart)

	done, err := e.Feed(data)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if !done {
		t.Fatalf("expected done=true")
	}
	if c.a != 7 || c.b != 99 {
		t.Fatalf("expected a=7 b=99, got a=%d b=%d", c.a, c.b)
	}
}

func TestEngineHandlesFragmentedInput(t *testing.T) {
	data := encodeToyMessage(1, 2)

	c := &testContainer{}
	e := NewEngine(buildToyTable(), c, stateStart)

	var done bool
	var err error
	for i := 0; i < len(data); i++ {
		done, err = e.Feed(data[i : i+1])
		if err != nil {
			t.Fatalf("Feed failed at byte %d: %v", i, err)
		}
		if done && i != len(data)-1 {
			t.Fatalf("engine reported done prematurely at byte %d", i)
		}
	}

	if !done {
		t.Fatalf("expected done=true after feeding all bytes")
	}
	if c.a != 1 || c.b != 2 {
		t.Fatalf("expected a=1 b=2, got a=%d b=%d", c.a, c.b)
	}
}

func TestEngineRejectsUnknownTag(t *testing.T) {
	data := []byte{0x30, 0x03, 0x01, 0x01, 0xFF} // SEQUENCE { BOOLEAN } — no transition for BOOLEAN in stateWantA

	c := &testContainer{}
	e := NewEngine(buildToyTable(), c, stateStart)

	_, err := e.Feed(data)
	if err == nil {
		t.Fatalf("expected a protocol error")
	}
	if _, ok := err.(*ProtocolError); !ok {
		t.Fatalf("expected *ProtocolError, got %T: %v", err, err)
	}
}

func TestEngineEnforcesMaxPDUSize(t *testing.T) {
	data := encodeToyMessage(1, 2)

	c := &testContainer{}
	e := NewEngine(buildToyTable(), c, stateStart)
	e.MaxPDUSize = 2

	_, err := e.Feed(data)
	if err == nil {
		t.Fatalf("expected a size-limit error")
	}
	if _, ok := err.(*PduTooLargeError); !ok {
		t.Fatalf("expected *PduTooLargeError, got %T: %v", err, err)
	}
}

func TestEngineEmptySequenceEndsImmediately(t *testing.T) {
	table := Table{
		{State: stateStart, Tag: TagKey{Class: ber.ClassUniversal, Constructed: true, Number: ber.TagSequence}}: {
			NextState:  stateDone,
			Recurse:    true,
			EndAllowed: true,
		},
	}

	c := &testContainer{}
	e := NewEngine(table, c, stateStart)

	done, err := e.Feed([]byte{0x30, 0x00})
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if !done {
		t.Fatalf("expected done=true for empty sequence")
	}
}
