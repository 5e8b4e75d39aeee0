package vtcore

import (
	"io"
)

// Ensure Interpreter implements io.Writer
var _ io.Writer = (*Interpreter)(nil)

// Interpreter is a complete terminal session front end: it feeds raw PTY
// bytes through the parser, runs every resulting action past the conformance
// gate, forwards the survivors to the screen model's Handler, and writes
// identification replies to the ResponseProvider.
//
// An Interpreter owns one Parser and one Conformance; sessions never share
// state, so a multiplexer simply creates one Interpreter per session.
// Methods must be called from a single goroutine.
type Interpreter struct {
	parser *Parser
	conf   *Conformance
	sink   Handler

	handler    Handler
	response   ResponseProvider
	middleware *Middleware
	recording  RecordingProvider

	// Construction knobs, consumed by NewInterpreter.
	level     VtLevel
	extension VtExtension
	attrs     DeviceAttributes
	firmware  int
	keyboard  int
}

// Option configures an Interpreter during construction.
type Option func(*Interpreter)

// WithLevel sets the initial conformance level. Defaults to VT320, the most
// common real-world baseline. RIS returns the session to this level.
func WithLevel(level VtLevel) Option {
	return func(it *Interpreter) {
		it.level = level
	}
}

// WithExtension sets the vendor extension the session emulates.
// Defaults to none (strict DEC behavior).
func WithExtension(extension VtExtension) Option {
	return func(it *Interpreter) {
		it.extension = extension
	}
}

// WithAttributes sets the capability set advertised in DA1 responses.
// Defaults to DefaultAttributes.
func WithAttributes(attrs DeviceAttributes) Option {
	return func(it *Interpreter) {
		it.attrs = attrs
	}
}

// WithFirmware sets the firmware revision reported in DA2 responses.
func WithFirmware(version int) Option {
	return func(it *Interpreter) {
		it.firmware = version
	}
}

// WithKeyboard sets the keyboard type reported in DA2 responses.
func WithKeyboard(kbd int) Option {
	return func(it *Interpreter) {
		it.keyboard = kbd
	}
}

// WithHandler sets the consumer of forwarded actions, normally the screen
// model. Defaults to a no-op if not set.
func WithHandler(h Handler) Option {
	return func(it *Interpreter) {
		it.handler = h
	}
}

// WithResponse sets the writer for identification replies (DA1, DA2, status
// reports). If nil, responses are discarded.
func WithResponse(p ResponseProvider) Option {
	return func(it *Interpreter) {
		it.response = p
	}
}

// WithMiddleware sets functions to intercept forwarded actions and response bytes.
func WithMiddleware(mw *Middleware) Option {
	return func(it *Interpreter) {
		if it.middleware == nil {
			it.middleware = &Middleware{}
		}
		it.middleware.Merge(mw)
	}
}

// WithRecording sets the handler for capturing raw input bytes before parsing.
// Useful for replay, debugging, or regression testing.
func WithRecording(p RecordingProvider) Option {
	return func(it *Interpreter) {
		it.recording = p
	}
}

// NewInterpreter creates a session with the given options.
// Defaults: VT320, no vendor extension, stock attributes, responses discarded.
func NewInterpreter(opts ...Option) *Interpreter {
	it := &Interpreter{
		handler:   NoopHandler{},
		response:  NoopResponse{},
		recording: NoopRecording{},
		level:     VT320,
		extension: ExtensionNone,
		attrs:     DefaultAttributes(),
		firmware:  defaultFirmware,
	}

	for _, opt := range opts {
		opt(it)
	}

	it.parser = NewParser()
	it.conf = NewConformance(it.level, it.extension, it.attrs)
	it.conf.SetFirmware(it.firmware)
	it.conf.SetKeyboard(it.keyboard)
	it.parser.SetC1Controls(it.conf.SupportsC1Controls())
	it.sink = HandlerFunc(it.handleAction)

	return it
}

// Write processes raw bytes from the PTY, parsing escape sequences, updating
// the conformance state, and forwarding surviving actions. Implements
// io.Writer; the error is always nil.
func (it *Interpreter) Write(p []byte) (int, error) {
	it.recording.Record(p)
	it.parser.Advance(p, it.sink)
	return len(p), nil
}

// WriteString is a convenience method that converts the string to bytes and calls Write.
func (it *Interpreter) WriteString(s string) (int, error) {
	return it.Write([]byte(s))
}

// handleAction routes one parsed action through the conformance gate.
func (it *Interpreter) handleAction(a Action) {
	forward, response := it.conf.Filter(a)
	if len(response) > 0 {
		it.writeResponse(response)
	}
	// DECSCL and RIS can change the level, which changes whether 8-bit C1
	// introducers are honored from the next byte on.
	it.parser.SetC1Controls(it.conf.SupportsC1Controls())
	if !forward {
		return
	}

	if it.middleware != nil && it.middleware.Action != nil {
		it.middleware.Action(a, it.handler.HandleAction)
		return
	}
	it.handler.HandleAction(a)
}

// writeResponse sends reply bytes through the middleware to the response provider.
func (it *Interpreter) writeResponse(p []byte) {
	if it.middleware != nil && it.middleware.Response != nil {
		it.middleware.Response(p, it.writeResponseDirect)
		return
	}
	it.writeResponseDirect(p)
}

func (it *Interpreter) writeResponseDirect(p []byte) {
	if it.response != nil {
		it.response.Write(p)
	}
}

// Conformance returns the session's conformance manager.
func (it *Interpreter) Conformance() *Conformance {
	return it.conf
}

// Level returns the current conformance level.
func (it *Interpreter) Level() VtLevel {
	return it.conf.Level()
}

// State returns the parser's current state.
func (it *Interpreter) State() State {
	return it.parser.State()
}

// Reset discards any partially parsed sequence and returns the parser to the
// ground state. Conformance state is untouched; a full reset arrives via RIS
// in the byte stream.
func (it *Interpreter) Reset() {
	it.parser.Reset()
}

// SetHandler replaces the action consumer at runtime.
func (it *Interpreter) SetHandler(h Handler) {
	if h == nil {
		h = NoopHandler{}
	}
	it.handler = h
}

// Handler returns the current action consumer.
func (it *Interpreter) Handler() Handler {
	return it.handler
}

// SetResponseProvider replaces the response writer at runtime.
func (it *Interpreter) SetResponseProvider(p ResponseProvider) {
	it.response = p
}

// ResponseProvider returns the current response writer.
func (it *Interpreter) ResponseProvider() ResponseProvider {
	return it.response
}

// SetMiddleware replaces the middleware at runtime.
func (it *Interpreter) SetMiddleware(mw *Middleware) {
	it.middleware = mw
}

// Middleware returns the current middleware.
func (it *Interpreter) Middleware() *Middleware {
	return it.middleware
}

// SetRecordingProvider replaces the recording handler at runtime.
func (it *Interpreter) SetRecordingProvider(p RecordingProvider) {
	if p == nil {
		p = NoopRecording{}
	}
	it.recording = p
}

// RecordingProvider returns the current recording handler.
func (it *Interpreter) RecordingProvider() RecordingProvider {
	return it.recording
}

// RecordedData returns all raw input bytes captured since the last ClearRecording call.
func (it *Interpreter) RecordedData() []byte {
	return it.recording.Data()
}

// ClearRecording discards all captured input data.
func (it *Interpreter) ClearRecording() {
	it.recording.Clear()
}
