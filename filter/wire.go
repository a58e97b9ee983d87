package filter

import (
	"errors"

	"github.com/KilimcininKorOglu/ldapwire/ber"
)

// Filter tag numbers (context-specific), per RFC 4511 §4.5.1.
const (
	TagAnd             = 0 // [0] SET OF filter
	TagOr              = 1 // [1] SET OF filter
	TagNot             = 2 // [2] Filter
	TagEquality        = 3 // [3] AttributeValueAssertion
	TagSubstrings      = 4 // [4] SubstringFilter
	TagGreaterOrEqual  = 5 // [5] AttributeValueAssertion
	TagLessOrEqual     = 6 // [6] AttributeValueAssertion
	TagPresent         = 7 // [7] AttributeDescription
	TagApproxMatch     = 8 // [8] AttributeValueAssertion
	TagExtensibleMatch = 9 // [9] MatchingRuleAssertion
)

// Substring filter component tags.
const (
	SubstringInitial = 0 // [0] initial
	SubstringAny     = 1 // [1] any
	SubstringFinal   = 2 // [2] final
)

// Extensible match component tags.
const (
	ExtMatchMatchingRule = 1 // [1] matchingRule
	ExtMatchType         = 2 // [2] type
	ExtMatchMatchValue   = 3 // [3] matchValue
	ExtMatchDNAttributes = 4 // [4] dnAttributes
)

// MaxDepth bounds how deeply AND/OR/NOT filters may nest during Decode,
// guarding against a maliciously crafted filter driving unbounded
// recursion. The grammar engine has no default of its own: its MaxDepth
// is zero (unbounded) unless the caller sets it.
const MaxDepth = 100

// Wire errors.
var (
	ErrTooDeep         = errors.New("filter: filter nesting exceeds maximum depth")
	ErrUnknownFilterTag = errors.New("filter: unknown filter tag")
)

// Decode reads a wire-format Filter (the CHOICE described by RFC 4511
// §4.5.1) from decoder. It is the tagged-variant counterpart to Parse,
// which reads the RFC 4515 string form. Nesting is bounded by MaxDepth;
// use DecodeWithLimit for a caller-supplied bound.
func Decode(decoder *ber.BERDecoder) (*Filter, error) {
	return decodeAt(decoder, 0, MaxDepth)
}

// DecodeWithLimit is Decode with an explicit nesting bound, e.g. from a
// Config.MaxFilterDepth knob. maxDepth <= 0 falls back to MaxDepth.
func DecodeWithLimit(decoder *ber.BERDecoder, maxDepth int) (*Filter, error) {
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}
	return decodeAt(decoder, 0, maxDepth)
}

func decodeAt(decoder *ber.BERDecoder, depth, maxDepth int) (*Filter, error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}

	tagNum, constructed, data, err := decoder.ReadTaggedValue()
	if err != nil {
		return nil, err
	}

	f := &Filter{}

	switch tagNum {
	case TagAnd, TagOr:
		if !constructed {
			return nil, ErrInvalidFilter
		}
		if tagNum == TagAnd {
			f.Type = FilterAnd
		} else {
			f.Type = FilterOr
		}
		sub := ber.NewBERDecoder(data)
		var children []*Filter
		for sub.Remaining() > 0 {
			child, err := decodeAt(sub, depth+1, maxDepth)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		f.Children = children

	case TagNot:
		if !constructed {
			return nil, ErrInvalidFilter
		}
		f.Type = FilterNot
		sub := ber.NewBERDecoder(data)
		child, err := decodeAt(sub, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		f.Child = child

	case TagEquality, TagGreaterOrEqual, TagLessOrEqual, TagApproxMatch:
		if !constructed {
			return nil, ErrInvalidFilter
		}
		switch tagNum {
		case TagEquality:
			f.Type = FilterEquality
		case TagGreaterOrEqual:
			f.Type = FilterGreaterOrEqual
		case TagLessOrEqual:
			f.Type = FilterLessOrEqual
		case TagApproxMatch:
			f.Type = FilterApproxMatch
		}
		sub := ber.NewBERDecoder(data)
		attrBytes, err := sub.ReadOctetString()
		if err != nil {
			return nil, err
		}
		f.Attribute = string(attrBytes)
		valueBytes, err := sub.ReadOctetString()
		if err != nil {
			return nil, err
		}
		f.Value = valueBytes

	case TagSubstrings:
		if !constructed {
			return nil, ErrInvalidFilter
		}
		f.Type = FilterSubstring
		sub := ber.NewBERDecoder(data)
		sf, err := decodeSubstring(sub)
		if err != nil {
			return nil, err
		}
		f.Attribute = sf.Attribute
		f.Substring = sf

	case TagPresent:
		if constructed {
			return nil, ErrInvalidFilter
		}
		f.Type = FilterPresent
		f.Attribute = string(data)

	case TagExtensibleMatch:
		if !constructed {
			return nil, ErrInvalidFilter
		}
		f.Type = FilterExtensibleMatch
		sub := ber.NewBERDecoder(data)
		em, err := decodeExtensibleMatch(sub)
		if err != nil {
			return nil, err
		}
		f.Attribute = em.Type
		f.ExtensibleMatch = em

	default:
		return nil, ErrUnknownFilterTag
	}

	return f, nil
}

func decodeSubstring(decoder *ber.BERDecoder) (*SubstringFilter, error) {
	attrBytes, err := decoder.ReadOctetString()
	if err != nil {
		return nil, err
	}

	subSeqLen, err := decoder.ExpectSequence()
	if err != nil {
		return nil, err
	}

	sf := &SubstringFilter{Attribute: string(attrBytes)}
	end := decoder.Offset() + subSeqLen

	for decoder.Offset() < end {
		tagNum, _, value, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, err
		}
		switch tagNum {
		case SubstringInitial:
			sf.Initial = value
		case SubstringAny:
			sf.Any = append(sf.Any, value)
		case SubstringFinal:
			sf.Final = value
		default:
			return nil, ErrInvalidFilter
		}
	}

	return sf, nil
}

func decodeExtensibleMatch(decoder *ber.BERDecoder) (*ExtensibleMatchFilter, error) {
	em := &ExtensibleMatchFilter{}

	for decoder.Remaining() > 0 {
		tagNum, _, value, err := decoder.ReadTaggedValue()
		if err != nil {
			return nil, err
		}
		switch tagNum {
		case ExtMatchMatchingRule:
			em.MatchingRule = string(value)
		case ExtMatchType:
			em.Type = string(value)
		case ExtMatchMatchValue:
			em.MatchValue = value
		case ExtMatchDNAttributes:
			em.DNAttributes = len(value) > 0 && value[0] != 0
		}
	}

	return em, nil
}

// Encode writes f onto buf as its RFC 4511 §4.5.1 tagged-CHOICE wire
// encoding. Like every Asn1Buffer writer, children are written before
// their own wrapping tag, and in reverse declaration order where more
// than one field is present.
func (f *Filter) Encode(buf *ber.Asn1Buffer) error {
	switch f.Type {
	case FilterAnd, FilterOr:
		mark := buf.Mark()
		for i := len(f.Children) - 1; i >= 0; i-- {
			if err := f.Children[i].Encode(buf); err != nil {
				return err
			}
		}
		tag := TagAnd
		if f.Type == FilterOr {
			tag = TagOr
		}
		return buf.WrapContextTag(tag, mark)

	case FilterNot:
		mark := buf.Mark()
		if err := f.Child.Encode(buf); err != nil {
			return err
		}
		return buf.WrapContextTag(TagNot, mark)

	case FilterEquality, FilterGreaterOrEqual, FilterLessOrEqual, FilterApproxMatch:
		mark := buf.Mark()
		if err := buf.WriteOctetString(f.Value); err != nil {
			return err
		}
		if err := buf.WriteOctetString([]byte(f.Attribute)); err != nil {
			return err
		}
		return buf.WrapContextTag(tagForComparison(f.Type), mark)

	case FilterSubstring:
		mark := buf.Mark()
		if err := encodeSubstring(buf, f.Substring); err != nil {
			return err
		}
		return buf.WrapContextTag(TagSubstrings, mark)

	case FilterPresent:
		return buf.WriteTaggedValue(TagPresent, false, []byte(f.Attribute))

	case FilterExtensibleMatch:
		mark := buf.Mark()
		if err := encodeExtensibleMatch(buf, f.ExtensibleMatch); err != nil {
			return err
		}
		return buf.WrapContextTag(TagExtensibleMatch, mark)

	default:
		return ErrUnknownFilterTag
	}
}

func tagForComparison(t FilterType) int {
	switch t {
	case FilterEquality:
		return TagEquality
	case FilterGreaterOrEqual:
		return TagGreaterOrEqual
	case FilterLessOrEqual:
		return TagLessOrEqual
	case FilterApproxMatch:
		return TagApproxMatch
	default:
		return TagEquality
	}
}

func encodeSubstring(buf *ber.Asn1Buffer, sf *SubstringFilter) error {
	seqMark := buf.Mark()

	if len(sf.Final) > 0 {
		if err := buf.WriteTaggedValue(SubstringFinal, false, sf.Final); err != nil {
			return err
		}
	}
	for i := len(sf.Any) - 1; i >= 0; i-- {
		if err := buf.WriteTaggedValue(SubstringAny, false, sf.Any[i]); err != nil {
			return err
		}
	}
	if len(sf.Initial) > 0 {
		if err := buf.WriteTaggedValue(SubstringInitial, false, sf.Initial); err != nil {
			return err
		}
	}
	if err := buf.WrapSequence(seqMark); err != nil {
		return err
	}

	return buf.WriteOctetString([]byte(sf.Attribute))
}

func encodeExtensibleMatch(buf *ber.Asn1Buffer, em *ExtensibleMatchFilter) error {
	if em.DNAttributes {
		if err := buf.WriteTaggedValue(ExtMatchDNAttributes, false, []byte{0xff}); err != nil {
			return err
		}
	}
	if err := buf.WriteTaggedValue(ExtMatchMatchValue, false, em.MatchValue); err != nil {
		return err
	}
	if em.Type != "" {
		if err := buf.WriteTaggedValue(ExtMatchType, false, []byte(em.Type)); err != nil {
			return err
		}
	}
	if em.MatchingRule != "" {
		if err := buf.WriteTaggedValue(ExtMatchMatchingRule, false, []byte(em.MatchingRule)); err != nil {
			return err
		}
	}
	return nil
}
