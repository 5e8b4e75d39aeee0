package vtcore

// MinLevelForCSI returns the lowest conformance level at which a CSI sequence
// is honored. The key is the sequence's first intermediate byte when one is
// present, otherwise its final byte; private is true when the sequence carries
// a private parameter marker (one of "<=>?").
//
// The function is total: unrecognized keys map to VT100, i.e. unknown
// sequences are assumed universally supported. Rejecting them instead would
// break otherwise-valid programs using obscure extensions.
func MinLevelForCSI(key byte, private bool) VtLevel {
	if private {
		switch key {
		case 'J', 'K':
			// DECSED / DECSEL selective erase.
			return VT220
		}
		return VT100
	}

	switch key {
	case '@', 'X':
		// ICH / ECH arrived with the VT220.
		return VT220
	case '"':
		// DECSCL, DECSCA.
		return VT220
	case '\'':
		// Locator sequences (DECELR, DECSLE, DECEFR).
		return VT330
	case '$':
		// Rectangular area operations (DECCRA, DECFRA, DECERA, DECRARA, ...).
		return VT420
	case '*':
		// DECSNLS and friends.
		return VT420
	}
	return VT100
}

// MinLevelForESC returns the lowest conformance level at which an ESC sequence
// is honored. intermediate is the collected intermediate byte, or 0 when the
// sequence has none. Total, never panics, defaults to VT100.
func MinLevelForESC(intermediate, final byte) VtLevel {
	switch intermediate {
	case 0:
		switch final {
		case 'N', 'O':
			// SS2 / SS3 single shifts.
			return VT220
		}
		return VT100
	case ' ':
		// S7C1T / S8C1T control transmission announcers.
		return VT220
	case '#', '(', ')':
		// DEC line attributes and G0/G1 94-character set designation are
		// original VT100 territory.
		return VT100
	case '*', '+':
		// G2/G3 designation.
		return VT220
	case '-', '.', '/':
		// 96-character set designation.
		return VT320
	case '%':
		// Character encoding selection (ESC % G selects UTF-8).
		return VT320
	}
	return VT100
}
