package vtcore

// parserAction is the table action attached to a state transition.
type parserAction byte

const (
	actIgnore parserAction = iota
	actPrint
	actExecute
	actCollect
	actParam
	actEscDispatch
	actCsiDispatch
	actHook
	actPut
	actOscPut
	actOscEnd
	actStrPut
)

// transition is one (action, next state) cell of the table.
type transition struct {
	action parserAction
	next   State
}

// transitions is the full 14x256 state machine of the VT500-series parser,
// built once at package init. Every (state, byte) pair has a statically known
// outcome; there is no dynamic dispatch and no failure mode.
var transitions [stateCount][256]transition

func fillRange(s State, lo, hi int, a parserAction, next State) {
	for b := lo; b <= hi; b++ {
		transitions[s][b] = transition{a, next}
	}
}

func setByte(s State, b int, a parserAction, next State) {
	transitions[s][b] = transition{a, next}
}

// fillC0 installs the C0 controls that execute without disturbing the current
// sequence (everything except CAN, SUB, and ESC, which abort it).
func fillC0(s State, a parserAction) {
	fillRange(s, 0x00, 0x17, a, s)
	setByte(s, 0x19, a, s)
	fillRange(s, 0x1C, 0x1F, a, s)
}

func init() {
	for s := State(0); int(s) < stateCount; s++ {
		// Default: swallow the byte, stay put.
		fillRange(s, 0x00, 0xFF, actIgnore, s)
	}

	// Ground: controls execute, everything visible prints. Bytes >= 0x80 are
	// intercepted by the parser for UTF-8 decoding before the table is
	// consulted, so their entries only matter for 8-bit control handling.
	fillC0(Ground, actExecute)
	fillRange(Ground, 0x20, 0x7F, actPrint, Ground)
	fillRange(Ground, 0xA0, 0xFF, actPrint, Ground)

	// Escape: one intermediate moves on, a final byte dispatches, and the
	// string introducers branch to their own sub-machines.
	fillC0(Escape, actExecute)
	fillRange(Escape, 0x20, 0x2F, actCollect, EscapeIntermediate)
	fillRange(Escape, 0x30, 0x7E, actEscDispatch, Ground)
	setByte(Escape, 0x50, actIgnore, DcsEntry)
	setByte(Escape, 0x58, actIgnore, SosPmApcString)
	setByte(Escape, 0x5B, actIgnore, CsiEntry)
	setByte(Escape, 0x5D, actIgnore, OscString)
	setByte(Escape, 0x5E, actIgnore, SosPmApcString)
	setByte(Escape, 0x5F, actIgnore, SosPmApcString)

	fillC0(EscapeIntermediate, actExecute)
	fillRange(EscapeIntermediate, 0x20, 0x2F, actCollect, EscapeIntermediate)
	fillRange(EscapeIntermediate, 0x30, 0x7E, actEscDispatch, Ground)

	// CSI: params, then intermediates, then the final byte. A parameter byte
	// after an intermediate, or a second private marker, is malformed and
	// drops into CsiIgnore.
	fillC0(CsiEntry, actExecute)
	fillRange(CsiEntry, 0x20, 0x2F, actCollect, CsiIntermediate)
	fillRange(CsiEntry, 0x30, 0x3B, actParam, CsiParam)
	fillRange(CsiEntry, 0x3C, 0x3F, actCollect, CsiParam)
	fillRange(CsiEntry, 0x40, 0x7E, actCsiDispatch, Ground)

	fillC0(CsiParam, actExecute)
	fillRange(CsiParam, 0x20, 0x2F, actCollect, CsiIntermediate)
	fillRange(CsiParam, 0x30, 0x3B, actParam, CsiParam)
	fillRange(CsiParam, 0x3C, 0x3F, actIgnore, CsiIgnore)
	fillRange(CsiParam, 0x40, 0x7E, actCsiDispatch, Ground)

	fillC0(CsiIntermediate, actExecute)
	fillRange(CsiIntermediate, 0x20, 0x2F, actCollect, CsiIntermediate)
	fillRange(CsiIntermediate, 0x30, 0x3F, actIgnore, CsiIgnore)
	fillRange(CsiIntermediate, 0x40, 0x7E, actCsiDispatch, Ground)

	fillC0(CsiIgnore, actExecute)
	fillRange(CsiIgnore, 0x40, 0x7E, actIgnore, Ground)

	// DCS mirrors CSI but stays silent on C0 controls and ends in
	// passthrough of the string payload.
	fillRange(DcsEntry, 0x20, 0x2F, actCollect, DcsIntermediate)
	fillRange(DcsEntry, 0x30, 0x3B, actParam, DcsParam)
	fillRange(DcsEntry, 0x3C, 0x3F, actCollect, DcsParam)
	fillRange(DcsEntry, 0x40, 0x7E, actHook, DcsPassthrough)

	fillRange(DcsParam, 0x20, 0x2F, actCollect, DcsIntermediate)
	fillRange(DcsParam, 0x30, 0x3B, actParam, DcsParam)
	fillRange(DcsParam, 0x3C, 0x3F, actIgnore, DcsIgnore)
	fillRange(DcsParam, 0x40, 0x7E, actHook, DcsPassthrough)

	fillRange(DcsIntermediate, 0x20, 0x2F, actCollect, DcsIntermediate)
	fillRange(DcsIntermediate, 0x30, 0x3F, actIgnore, DcsIgnore)
	fillRange(DcsIntermediate, 0x40, 0x7E, actHook, DcsPassthrough)

	fillRange(DcsPassthrough, 0x00, 0x17, actPut, DcsPassthrough)
	setByte(DcsPassthrough, 0x19, actPut, DcsPassthrough)
	fillRange(DcsPassthrough, 0x1C, 0x1F, actPut, DcsPassthrough)
	fillRange(DcsPassthrough, 0x20, 0x7E, actPut, DcsPassthrough)
	fillRange(DcsPassthrough, 0xA0, 0xFF, actPut, DcsPassthrough)

	// DcsIgnore: swallow everything; the anywhere rules below provide the
	// only exits (ST, ESC, CAN, SUB).

	// OSC: printable payload terminated by BEL (the xterm convention every
	// real program uses) or ST.
	fillRange(OscString, 0x20, 0xFF, actOscPut, OscString)
	setByte(OscString, 0x07, actOscEnd, Ground)

	// SOS/PM/APC: the payload is captured rather than discarded so kitty
	// graphics and friends survive the trip.
	fillRange(SosPmApcString, 0x20, 0xFF, actStrPut, SosPmApcString)

	// Anywhere rules, installed last so they override everything: CAN and SUB
	// abort, ESC restarts, and the 8-bit C1 controls introduce or terminate
	// sequences from any state.
	for s := State(0); int(s) < stateCount; s++ {
		setByte(s, 0x18, actExecute, Ground)
		setByte(s, 0x1A, actExecute, Ground)
		setByte(s, 0x1B, actIgnore, Escape)
		fillRange(s, 0x80, 0x8F, actExecute, Ground)
		setByte(s, 0x90, actIgnore, DcsEntry)
		fillRange(s, 0x91, 0x97, actExecute, Ground)
		setByte(s, 0x98, actIgnore, SosPmApcString)
		setByte(s, 0x99, actExecute, Ground)
		setByte(s, 0x9A, actExecute, Ground)
		setByte(s, 0x9B, actIgnore, CsiEntry)
		setByte(s, 0x9C, actIgnore, Ground)
		setByte(s, 0x9D, actIgnore, OscString)
		setByte(s, 0x9E, actIgnore, SosPmApcString)
		setByte(s, 0x9F, actIgnore, SosPmApcString)
	}
}
