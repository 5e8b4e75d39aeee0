package vtcore

// State is one of the parser's finite states, following the VT500-series
// state machine described at vt100.net/emu/dec_ansi_parser. Exactly one state
// is active at a time and transitions depend only on the next input byte.
type State byte

const (
	// Ground is the resting state: printable bytes print, controls execute.
	Ground State = iota
	// Escape follows an ESC byte.
	Escape
	// EscapeIntermediate collects intermediate bytes of an ESC sequence.
	EscapeIntermediate
	// CsiEntry follows the CSI introducer.
	CsiEntry
	// CsiParam collects numeric parameters of a control sequence.
	CsiParam
	// CsiIntermediate collects intermediate bytes of a control sequence.
	CsiIntermediate
	// CsiIgnore swallows a malformed control sequence until it terminates.
	CsiIgnore
	// DcsEntry follows the DCS introducer.
	DcsEntry
	// DcsParam collects numeric parameters of a device control string.
	DcsParam
	// DcsIntermediate collects intermediate bytes of a device control string.
	DcsIntermediate
	// DcsPassthrough forwards device control string data bytes.
	DcsPassthrough
	// DcsIgnore swallows a malformed device control string until ST.
	DcsIgnore
	// OscString collects an operating system command payload.
	OscString
	// SosPmApcString collects an SOS, PM, or APC payload.
	SosPmApcString

	stateCount = int(SosPmApcString) + 1
)

var stateNames = [stateCount]string{
	"Ground",
	"Escape",
	"EscapeIntermediate",
	"CsiEntry",
	"CsiParam",
	"CsiIntermediate",
	"CsiIgnore",
	"DcsEntry",
	"DcsParam",
	"DcsIntermediate",
	"DcsPassthrough",
	"DcsIgnore",
	"OscString",
	"SosPmApcString",
}

// String returns the state name.
func (s State) String() string {
	if int(s) >= stateCount {
		return "invalid"
	}
	return stateNames[s]
}
