// Package vtcore implements the protocol core of a terminal emulator: a
// byte-exact VT500-series escape sequence parser and a conformance level
// manager that tracks which VT generation (VT100 through VT525) a session
// emulates.
//
// The package turns an untrusted stream of bytes from a child process into
// structured [Action] values, decides which of them the current conformance
// level honors, and answers the identification exchanges (DA1, DA2, DECSCL)
// that real programs like vim and tmux branch on. It deliberately stops
// there: screen state, rendering, and PTY plumbing belong to consumers.
//
// # Quick Start
//
// Create an interpreter and write escape sequences to it:
//
//	recorder := &vtcore.ActionRecorder{}
//	interp := vtcore.NewInterpreter(
//	    vtcore.WithHandler(recorder),
//	    vtcore.WithResponse(ptyWriter), // answers DA1/DA2 queries
//	)
//	interp.WriteString("\x1b[1;31mhello\x1b[0m")
//	for _, a := range recorder.Actions() {
//	    // Print and CsiDispatch actions, in input order
//	}
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Parser]: the table-driven state machine over raw bytes
//   - [Action]: the parser's output (Print, CsiDispatch, OscDispatch, ...)
//   - [Conformance]: tracks the VT level and gates or answers actions
//   - [Interpreter]: wires parser, conformance, and providers into a session
//
// A screen model implements [Handler] and receives every action the gate
// lets through. [Conformance] is the only part of the package that produces
// outbound bytes; they go to the [ResponseProvider].
//
// # Conformance Levels
//
// Sessions start at VT320 by default. Programs move the level with DECSCL
// (CSI Ps " p) and discover it with DA1/DA2 (CSI c, CSI > c). A sequence
// that needs a higher level than the current one is dropped silently, the
// way real hardware ignores sequences it does not recognize:
//
//	interp := vtcore.NewInterpreter(vtcore.WithLevel(vtcore.VT100))
//	interp.WriteString("\x1b[1;4;24;80$z") // DECERA: VT420 only, dropped
//	interp.WriteString("\x1b[65\"p")       // DECSCL: select VT520
//	interp.WriteString("\x1b[1;4;24;80$z") // now forwarded
//
// [VtLevel] values order by feature set, so comparisons like
// level >= vtcore.VT420 do the right thing even though the DA2 wire codes
// are not monotonic.
//
// # Device Attributes
//
// [DeviceAttributes] is the capability set advertised in DA1 responses.
// Parameter order in the response is a wire contract; clients commonly parse
// only a prefix of the reply:
//
//	attrs := vtcore.DefaultAttributes().Without(vtcore.AttrSixel)
//	interp := vtcore.NewInterpreter(vtcore.WithAttributes(attrs))
//
// Capabilities the current level cannot support are excluded from the
// response even when the bit is set.
//
// # Error Handling
//
// The parser cannot fail and never panics, whatever the input: malformed
// sequences drain through ignore states, parameters saturate instead of
// overflowing, and an unterminated sequence simply stays pending until the
// next Write. There are no error returns on the data path.
//
// # Concurrency
//
// Everything here is single-threaded by design. One [Interpreter] (or one
// [Parser] plus one [Conformance]) exists per terminal session; sessions
// share nothing. Callers that multiplex sessions across goroutines
// synchronize outside this package.
package vtcore
