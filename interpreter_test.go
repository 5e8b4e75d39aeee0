package vtcore

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInterpreterForwardsActions(t *testing.T) {
	rec := &ActionRecorder{}
	interp := NewInterpreter(WithHandler(rec))

	n, err := interp.WriteString("hi\x1b[1m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 6 {
		t.Errorf("expected 6 bytes written, got %d", n)
	}

	want := []Action{
		Print{Char: 'h'},
		Print{Char: 'i'},
		CsiDispatch{Params: []uint16{1}, Final: 'm'},
	}
	if diff := cmp.Diff(want, rec.Actions()); diff != "" {
		t.Errorf("action mismatch (-want +got):\n%s", diff)
	}
}

func TestInterpreterAnswersDA1(t *testing.T) {
	var out bytes.Buffer
	rec := &ActionRecorder{}
	interp := NewInterpreter(WithHandler(rec), WithResponse(&out))

	interp.WriteString("\x1b[c")

	// Default level is VT320, which trims the VT420+ capabilities.
	want := "\x1b[?62;1;6;8;9;4;15c"
	if out.String() != want {
		t.Errorf("DA1 = %q, want %q", out.String(), want)
	}
	if len(rec.Actions()) != 0 {
		t.Errorf("identification must not reach the handler, got %v", rec.Actions())
	}
}

func TestInterpreterAnswersDA2(t *testing.T) {
	var out bytes.Buffer
	interp := NewInterpreter(
		WithLevel(VT420),
		WithFirmware(30),
		WithKeyboard(1),
		WithResponse(&out),
	)

	interp.WriteString("\x1b[>c")

	want := "\x1b[>41;30;1c"
	if out.String() != want {
		t.Errorf("DA2 = %q, want %q", out.String(), want)
	}
}

func TestInterpreterDECSCLChangesLevel(t *testing.T) {
	rec := &ActionRecorder{}
	interp := NewInterpreter(WithLevel(VT100), WithHandler(rec))

	// The $ intermediate sequence needs VT420: dropped before, kept after.
	interp.WriteString("\x1b[1;1;5;5$z")
	interp.WriteString("\x1b[64;1\"p")
	if interp.Level() != VT420 {
		t.Fatalf("level = %v, want VT420", interp.Level())
	}
	interp.WriteString("\x1b[1;1;5;5$z")

	got := rec.Actions()
	if len(got) != 1 {
		t.Fatalf("expected exactly the post-upgrade dispatch, got %v", got)
	}
	csi, ok := got[0].(CsiDispatch)
	if !ok || csi.Final != 'z' {
		t.Errorf("unexpected action %v", got[0])
	}
}

func TestInterpreterDECSCLTogglesC1Parsing(t *testing.T) {
	rec := &ActionRecorder{}
	interp := NewInterpreter(WithLevel(VT100), WithHandler(rec))

	// At VT100, 0x9B is data.
	interp.Write([]byte{0x9B, '1', 'm'})
	for _, a := range rec.Actions() {
		if _, ok := a.(CsiDispatch); ok {
			t.Fatal("8-bit CSI must not parse at VT100")
		}
	}

	rec.Clear()
	interp.WriteString("\x1b[62;1\"p")
	interp.Write([]byte{0x9B, '1', 'm'})

	got := rec.Actions()
	if len(got) != 1 {
		t.Fatalf("expected 1 action, got %v", got)
	}
	if csi, ok := got[0].(CsiDispatch); !ok || csi.Final != 'm' {
		t.Errorf("expected the 8-bit CSI to parse at VT220, got %v", got[0])
	}
}

func TestInterpreterRIS(t *testing.T) {
	rec := &ActionRecorder{}
	interp := NewInterpreter(WithLevel(VT220), WithHandler(rec))

	interp.WriteString("\x1b[65;1\"p")
	if interp.Level() != VT520 {
		t.Fatalf("level = %v, want VT520", interp.Level())
	}

	interp.WriteString("\x1bc")
	if interp.Level() != VT220 {
		t.Errorf("level after RIS = %v, want VT220", interp.Level())
	}

	// RIS itself reaches the handler so the screen model resets too.
	found := false
	for _, a := range rec.Actions() {
		if esc, ok := a.(EscDispatch); ok && esc.Final == 'c' {
			found = true
		}
	}
	if !found {
		t.Error("RIS must be forwarded to the handler")
	}
}

func TestInterpreterActionMiddleware(t *testing.T) {
	rec := &ActionRecorder{}
	var seen []Action
	interp := NewInterpreter(
		WithHandler(rec),
		WithMiddleware(&Middleware{
			Action: func(a Action, next func(Action)) {
				seen = append(seen, copyAction(a))
				// Swallow prints, pass everything else through.
				if _, ok := a.(Print); ok {
					return
				}
				next(a)
			},
		}),
	)

	interp.WriteString("a\x1b[1m")

	if len(seen) != 2 {
		t.Fatalf("middleware saw %d actions, want 2", len(seen))
	}
	got := rec.Actions()
	if len(got) != 1 {
		t.Fatalf("handler got %d actions, want 1", len(got))
	}
	if _, ok := got[0].(CsiDispatch); !ok {
		t.Errorf("expected only the CSI to survive, got %v", got[0])
	}
}

func TestInterpreterResponseMiddleware(t *testing.T) {
	var out bytes.Buffer
	var intercepted [][]byte
	interp := NewInterpreter(
		WithResponse(&out),
		WithMiddleware(&Middleware{
			Response: func(p []byte, next func([]byte)) {
				intercepted = append(intercepted, append([]byte(nil), p...))
				next(p)
			},
		}),
	)

	interp.WriteString("\x1b[5n")

	if len(intercepted) != 1 || string(intercepted[0]) != "\x1b[0n" {
		t.Errorf("middleware intercepted %q, want [\"\\x1b[0n\"]", intercepted)
	}
	if out.String() != "\x1b[0n" {
		t.Errorf("response = %q, want ESC [0n", out.String())
	}
}

func TestInterpreterRecording(t *testing.T) {
	recording := NewMemoryRecording()
	interp := NewInterpreter(WithRecording(recording))

	interp.WriteString("\x1b[31mred")
	interp.WriteString("\x1b[0m")

	want := "\x1b[31mred\x1b[0m"
	if string(interp.RecordedData()) != want {
		t.Errorf("recorded %q, want %q", interp.RecordedData(), want)
	}

	interp.ClearRecording()
	if len(interp.RecordedData()) != 0 {
		t.Error("expected an empty recording after clear")
	}
}

func TestInterpreterReset(t *testing.T) {
	interp := NewInterpreter()
	interp.WriteString("\x1b[3")
	if interp.State() != CsiParam {
		t.Fatalf("state = %v, want CsiParam", interp.State())
	}

	interp.Reset()
	if interp.State() != Ground {
		t.Errorf("state after reset = %v, want Ground", interp.State())
	}
	if interp.Level() != VT320 {
		t.Errorf("parser reset must not touch the level, got %v", interp.Level())
	}
}

func TestInterpreterRuntimeHandlerSwap(t *testing.T) {
	first := &ActionRecorder{}
	second := &ActionRecorder{}
	interp := NewInterpreter(WithHandler(first))

	interp.WriteString("a")
	interp.SetHandler(second)
	interp.WriteString("b")

	if got := prints(first.Actions()); got != "a" {
		t.Errorf("first handler saw %q, want \"a\"", got)
	}
	if got := prints(second.Actions()); got != "b" {
		t.Errorf("second handler saw %q, want \"b\"", got)
	}
}

func TestInterpreterDcsGatedEndToEnd(t *testing.T) {
	rec := &ActionRecorder{}
	interp := NewInterpreter(WithLevel(VT100), WithHandler(rec))

	interp.WriteString("\x1bP1$qm\x1b\\after")

	for _, a := range rec.Actions() {
		switch a.(type) {
		case DcsHook, DcsPut, DcsUnhook:
			t.Fatalf("DCS parts must not pass at VT100, got %T", a)
		}
	}
	if got := prints(rec.Actions()); got != "after" {
		t.Errorf("expected 'after', got %q", got)
	}
}
