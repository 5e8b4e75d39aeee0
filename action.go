package vtcore

// Action is one structured terminal event produced by the parser. Concrete
// types are Print, Execute, CsiDispatch, EscDispatch, OscDispatch, DcsHook,
// DcsPut, DcsUnhook, and StringDispatch.
//
// Actions are emitted once and consumed immediately. Slice fields reference
// parser-internal buffers that are reused: they are valid only for the
// duration of the Handler call and must be copied if retained (see
// ActionRecorder).
type Action interface {
	isAction()
}

// Print is a single decoded character destined for the screen.
type Print struct {
	Char rune
}

// Execute is a C0 or C1 control byte to act on immediately (BEL, BS, HT, LF,
// CR, and friends).
type Execute struct {
	Byte byte
}

// CsiDispatch is a completed control sequence: CSI [marker] params
// [intermediates] final.
type CsiDispatch struct {
	// Params are the numeric parameters. Missing parameters are absent, not
	// zero-filled; values saturate at 65535.
	Params []uint16
	// Intermediates are the collected intermediate bytes (0x20-0x2F).
	Intermediates []byte
	// Final is the final byte (0x40-0x7E) that selects the function.
	Final byte
	// Marker is the private parameter marker (one of "<=>?"), or 0 when the
	// sequence is a standard one.
	Marker byte
}

// Private reports whether the sequence carried a private parameter marker.
func (a CsiDispatch) Private() bool {
	return a.Marker != 0
}

// classifierKey is the byte a CSI sequence is classified by: the first
// intermediate when present, else the final byte.
func (a CsiDispatch) classifierKey() byte {
	if len(a.Intermediates) > 0 {
		return a.Intermediates[0]
	}
	return a.Final
}

// param returns the parameter at index i, or def when absent or zero.
func (a CsiDispatch) param(i int, def uint16) uint16 {
	if i >= len(a.Params) || a.Params[i] == 0 {
		return def
	}
	return a.Params[i]
}

// EscDispatch is a completed escape sequence: ESC [intermediate] final.
type EscDispatch struct {
	// Intermediate is the collected intermediate byte, or 0 when the sequence
	// has none. ESC sequences never legitimately carry more than one.
	Intermediate byte
	// Final is the final byte that selects the function.
	Final byte
}

// OscDispatch is a completed operating system command: the raw payload between
// the OSC introducer and its terminator (BEL or ST), semicolons included.
type OscDispatch struct {
	Data []byte
}

// DcsHook opens a device control string. The data bytes that follow arrive as
// DcsPut actions until DcsUnhook closes the string.
type DcsHook struct {
	Params        []uint16
	Intermediates []byte
	Final         byte
}

// DcsPut is one data byte of an open device control string.
type DcsPut struct {
	Byte byte
}

// DcsUnhook closes the device control string opened by the last DcsHook.
type DcsUnhook struct{}

// StringKind distinguishes the three string sequence types that share a
// common grammar.
type StringKind byte

const (
	// StringSOS is a Start of String sequence (ESC X).
	StringSOS StringKind = iota
	// StringPM is a Privacy Message (ESC ^).
	StringPM
	// StringAPC is an Application Program Command (ESC _).
	StringAPC
)

// String returns the sequence kind name.
func (k StringKind) String() string {
	switch k {
	case StringSOS:
		return "SOS"
	case StringPM:
		return "PM"
	case StringAPC:
		return "APC"
	}
	return "unknown"
}

// StringDispatch is a completed SOS, PM, or APC sequence with its payload.
type StringDispatch struct {
	Kind StringKind
	Data []byte
}

func (Print) isAction()          {}
func (Execute) isAction()        {}
func (CsiDispatch) isAction()    {}
func (EscDispatch) isAction()    {}
func (OscDispatch) isAction()    {}
func (DcsHook) isAction()        {}
func (DcsPut) isAction()         {}
func (DcsUnhook) isAction()      {}
func (StringDispatch) isAction() {}

// Handler consumes the action stream. The grid model of a terminal implements
// this to receive everything the conformance gate lets through.
type Handler interface {
	// HandleAction is called once per action, in input order. Slice fields of
	// the action are only valid until it returns.
	HandleAction(a Action)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(a Action)

// HandleAction calls f(a).
func (f HandlerFunc) HandleAction(a Action) {
	f(a)
}

// NoopHandler discards all actions.
type NoopHandler struct{}

// HandleAction does nothing.
func (NoopHandler) HandleAction(a Action) {}

// ActionRecorder is a Handler that retains every action it receives, deep
// copying slice fields so the record outlives the parser's internal buffers.
// Useful for replay, debugging, and tests.
type ActionRecorder struct {
	actions []Action
}

// HandleAction stores a copy of the action.
func (r *ActionRecorder) HandleAction(a Action) {
	r.actions = append(r.actions, copyAction(a))
}

// Actions returns the recorded actions in arrival order.
func (r *ActionRecorder) Actions() []Action {
	return r.actions
}

// Clear discards all recorded actions.
func (r *ActionRecorder) Clear() {
	r.actions = nil
}

// copyAction deep copies the slice fields of an action.
func copyAction(a Action) Action {
	switch v := a.(type) {
	case CsiDispatch:
		v.Params = append([]uint16(nil), v.Params...)
		v.Intermediates = append([]byte(nil), v.Intermediates...)
		return v
	case OscDispatch:
		v.Data = append([]byte(nil), v.Data...)
		return v
	case DcsHook:
		v.Params = append([]uint16(nil), v.Params...)
		v.Intermediates = append([]byte(nil), v.Intermediates...)
		return v
	case StringDispatch:
		v.Data = append([]byte(nil), v.Data...)
		return v
	}
	return a
}
