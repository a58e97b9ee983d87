package ldapwire

// Config holds the knobs a Codec is constructed with. The zero value is
// not ready to use; call DefaultConfig for sensible defaults.
type Config struct {
	// MaxPDUSize bounds the size in bytes of a single LDAPMessage this
	// codec will decode. Zero means unbounded.
	MaxPDUSize int
	// MaxFilterDepth bounds search filter nesting depth (AND/OR/NOT
	// recursion). Zero falls back to filter.MaxDepth.
	MaxFilterDepth int
	// StrictMinimalBER rejects non-minimal INTEGER/ENUMERATED/length
	// encodings instead of accepting them permissively.
	StrictMinimalBER bool
}

// DefaultConfig returns a Config matching RFC 4511's own defaults: no PDU
// size limit, the filter package's own default nesting depth, and strict
// minimal-encoding enforcement on decode.
func DefaultConfig() Config {
	return Config{
		MaxPDUSize:       0,
		MaxFilterDepth:   0,
		StrictMinimalBER: true,
	}
}
