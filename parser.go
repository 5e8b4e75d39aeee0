package vtcore

import (
	"unicode/utf8"
)

const (
	// maxParams caps the number of numeric parameters per sequence.
	maxParams = 16
	// maxIntermediates caps the collected intermediate bytes per sequence.
	maxIntermediates = 4
	// maxOscData caps the OSC payload buffer (64KB, enough for base64 icons
	// and clipboard payloads).
	maxOscData = 65536
	// maxStringData caps the SOS/PM/APC payload buffer.
	maxStringData = 65536
)

// Parser is the byte stream state machine. It consumes raw PTY output one
// byte at a time and emits Actions to a Handler. It cannot fail: malformed
// input is silently swallowed by the ignore states and adversarial input
// (overlong parameters, unterminated sequences, stray UTF-8 continuations)
// never panics.
//
// The parser keeps its state between calls, so feeding a byte slice in one
// call or byte by byte produces the same action sequence. It performs no I/O
// and allocates only for the OSC and string payload buffers.
//
// A Parser is not safe for concurrent use; each terminal session owns one.
type Parser struct {
	state State

	params        [maxParams]uint16
	nparams       int
	curParam      uint32
	paramStarted  bool
	intermediates [maxIntermediates]byte
	nintermediates int
	marker        byte

	oscData []byte
	strKind StringKind
	strData []byte

	dcsActive bool

	utf8Buf  [4]byte
	utf8Len  int
	utf8Want int

	// c1 controls whether 8-bit C1 bytes (0x80-0x9F) act as sequence
	// introducers. Below VT220 they are plain data; with UTF-8 streams they
	// are usually continuation bytes.
	c1 bool
}

// NewParser returns a parser in the ground state. 8-bit C1 controls are
// disabled by default so UTF-8 text survives; an Interpreter flips the flag
// to match its conformance level.
func NewParser() *Parser {
	return &Parser{
		oscData: make([]byte, 0, 128),
		strData: make([]byte, 0, 128),
	}
}

// Reset returns the parser to the ground state and discards any partially
// collected sequence. The C1 setting is preserved.
func (p *Parser) Reset() {
	p.state = Ground
	p.clear()
	p.oscData = p.oscData[:0]
	p.strData = p.strData[:0]
	p.dcsActive = false
	p.utf8Len = 0
	p.utf8Want = 0
}

// State returns the current parser state.
func (p *Parser) State() State {
	return p.state
}

// SetC1Controls enables or disables 8-bit C1 sequence introducers.
func (p *Parser) SetC1Controls(enabled bool) {
	p.c1 = enabled
}

// C1Controls reports whether 8-bit C1 sequence introducers are honored.
func (p *Parser) C1Controls() bool {
	return p.c1
}

// Advance feeds a slice of bytes through the state machine, calling the
// handler for every action. Equivalent to calling Feed for each byte.
func (p *Parser) Advance(data []byte, h Handler) {
	for _, b := range data {
		p.Feed(b, h)
	}
}

// Feed processes a single byte. At most two actions are emitted per byte
// (a pending string dispatch plus the action of the byte itself).
func (p *Parser) Feed(b byte, h Handler) {
	if p.state == Ground {
		if p.utf8Want > 0 {
			p.feedUTF8(b, h)
			return
		}
		if b >= 0x80 {
			if p.c1 && b <= 0x9F {
				p.step(b, h)
				return
			}
			p.startUTF8(b, h)
			return
		}
	} else if b >= 0x80 && b <= 0x9F && !p.c1 {
		// Not a control at this conformance level. Inside a string sequence
		// the byte is payload (UTF-8 window titles); elsewhere it is dropped.
		switch p.state {
		case OscString:
			p.oscPut(b)
		case DcsPassthrough:
			h.HandleAction(DcsPut{Byte: b})
		case SosPmApcString:
			p.strPut(b)
		}
		return
	}
	p.step(b, h)
}

// step runs one transition of the table-driven state machine.
func (p *Parser) step(b byte, h Handler) {
	tr := transitions[p.state][b]

	if tr.next != p.state {
		p.exitState(tr, h)
	}

	switch tr.action {
	case actIgnore:
	case actPrint:
		h.HandleAction(Print{Char: rune(b)})
	case actExecute:
		h.HandleAction(Execute{Byte: b})
	case actCollect:
		p.collect(b)
	case actParam:
		p.addParamByte(b)
	case actEscDispatch:
		h.HandleAction(EscDispatch{Intermediate: p.firstIntermediate(), Final: b})
	case actCsiDispatch:
		p.finishParams()
		h.HandleAction(CsiDispatch{
			Params:        p.params[:p.nparams],
			Intermediates: p.intermediates[:p.nintermediates],
			Final:         b,
			Marker:        p.marker,
		})
	case actHook:
		p.finishParams()
		h.HandleAction(DcsHook{
			Params:        p.params[:p.nparams],
			Intermediates: p.intermediates[:p.nintermediates],
			Final:         b,
		})
		p.dcsActive = true
	case actPut:
		h.HandleAction(DcsPut{Byte: b})
	case actOscPut:
		p.oscPut(b)
	case actOscEnd:
		p.dispatchOsc(h)
	case actStrPut:
		p.strPut(b)
	}

	if tr.next != p.state {
		p.enterState(tr.next, b)
	}
	p.state = tr.next
}

// exitState finishes business the old state left open: an open DCS is
// unhooked and a pending OSC or SOS/PM/APC payload is dispatched. CAN and SUB
// abort (table action execute out of a string state), which discards the
// payload instead of dispatching a half sequence.
func (p *Parser) exitState(tr transition, h Handler) {
	switch p.state {
	case DcsPassthrough:
		if p.dcsActive {
			h.HandleAction(DcsUnhook{})
			p.dcsActive = false
		}
	case OscString:
		if tr.action == actExecute {
			p.oscData = p.oscData[:0]
		} else if tr.action != actOscEnd {
			p.dispatchOsc(h)
		}
	case SosPmApcString:
		if tr.action == actExecute {
			p.strData = p.strData[:0]
		} else {
			p.dispatchString(h)
		}
	}
}

// enterState performs the entry action of the new state.
func (p *Parser) enterState(next State, b byte) {
	switch next {
	case Escape, CsiEntry, DcsEntry:
		p.clear()
	case OscString:
		p.oscData = p.oscData[:0]
	case SosPmApcString:
		p.strData = p.strData[:0]
		switch b {
		case 0x58, 0x98:
			p.strKind = StringSOS
		case 0x5E, 0x9E:
			p.strKind = StringPM
		default:
			p.strKind = StringAPC
		}
	}
}

// clear resets the per-sequence collection buffers.
func (p *Parser) clear() {
	p.nparams = 0
	p.curParam = 0
	p.paramStarted = false
	p.nintermediates = 0
	p.marker = 0
}

// collect stores an intermediate byte, or the private parameter marker.
// Excess intermediates are dropped rather than overflowing.
func (p *Parser) collect(b byte) {
	if b >= 0x3C && b <= 0x3F {
		p.marker = b
		return
	}
	if p.nintermediates < maxIntermediates {
		p.intermediates[p.nintermediates] = b
		p.nintermediates++
	}
}

// addParamByte accumulates a parameter digit or finalizes on a separator.
// Digits saturate instead of overflowing, so "99999999" clamps to 65535.
// Colon subparameter separators are folded in like semicolons.
func (p *Parser) addParamByte(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.curParam = p.curParam*10 + uint32(b-'0')
		if p.curParam > 65535 {
			p.curParam = 65535
		}
		p.paramStarted = true
	case b == ';' || b == ':':
		p.finalizeParam()
	}
}

// finalizeParam pushes the accumulated parameter. Excess parameters beyond
// maxParams are dropped.
func (p *Parser) finalizeParam() {
	if p.nparams < maxParams {
		p.params[p.nparams] = uint16(p.curParam)
		p.nparams++
	}
	p.curParam = 0
	p.paramStarted = false
}

// finishParams closes the parameter list before a dispatch.
func (p *Parser) finishParams() {
	if p.paramStarted {
		p.finalizeParam()
	}
}

func (p *Parser) firstIntermediate() byte {
	if p.nintermediates > 0 {
		return p.intermediates[0]
	}
	return 0
}

func (p *Parser) oscPut(b byte) {
	if len(p.oscData) < maxOscData {
		p.oscData = append(p.oscData, b)
	}
}

func (p *Parser) strPut(b byte) {
	if len(p.strData) < maxStringData {
		p.strData = append(p.strData, b)
	}
}

func (p *Parser) dispatchOsc(h Handler) {
	h.HandleAction(OscDispatch{Data: p.oscData})
	p.oscData = p.oscData[:0]
}

func (p *Parser) dispatchString(h Handler) {
	h.HandleAction(StringDispatch{Kind: p.strKind, Data: p.strData})
	p.strData = p.strData[:0]
}

// startUTF8 begins decoding a multi-byte character, or prints the replacement
// character for a byte that cannot start one (stray continuation bytes,
// overlong lead bytes, and 0xF8-0xFF).
func (p *Parser) startUTF8(b byte, h Handler) {
	switch {
	case b >= 0xC2 && b <= 0xDF:
		p.utf8Want = 2
	case b >= 0xE0 && b <= 0xEF:
		p.utf8Want = 3
	case b >= 0xF0 && b <= 0xF4:
		p.utf8Want = 4
	default:
		h.HandleAction(Print{Char: utf8.RuneError})
		return
	}
	p.utf8Buf[0] = b
	p.utf8Len = 1
}

// feedUTF8 consumes one byte of a pending multi-byte character. A byte that
// is not a valid continuation emits the replacement character and is then
// reprocessed as the start of whatever it actually is.
func (p *Parser) feedUTF8(b byte, h Handler) {
	if b < 0x80 || b > 0xBF {
		p.utf8Len = 0
		p.utf8Want = 0
		h.HandleAction(Print{Char: utf8.RuneError})
		p.Feed(b, h)
		return
	}

	p.utf8Buf[p.utf8Len] = b
	p.utf8Len++
	if p.utf8Len < p.utf8Want {
		return
	}

	r, _ := utf8.DecodeRune(p.utf8Buf[:p.utf8Len])
	p.utf8Len = 0
	p.utf8Want = 0
	h.HandleAction(Print{Char: r})
}
