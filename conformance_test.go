package vtcore

import (
	"testing"
)

func TestConformanceGatesByLevel(t *testing.T) {
	c := NewConformance(VT100, ExtensionNone, DefaultAttributes())

	// DECCARA-family rectangle operations need VT420.
	forward, response := c.Filter(CsiDispatch{
		Params:        []uint16{1, 1, 10, 10},
		Intermediates: []byte{'$'},
		Final:         'r',
	})
	if forward {
		t.Error("rectangle edit must be dropped at VT100")
	}
	if response != nil {
		t.Errorf("dropping must be silent, got %q", response)
	}

	// Plain SGR works everywhere.
	forward, _ = c.Filter(CsiDispatch{Params: []uint16{31}, Final: 'm'})
	if !forward {
		t.Error("SGR must pass at VT100")
	}
}

func TestConformanceGateOpensWithLevel(t *testing.T) {
	c := NewConformance(VT100, ExtensionNone, DefaultAttributes())
	rect := CsiDispatch{Intermediates: []byte{'$'}, Final: 'r'}

	if forward, _ := c.Filter(rect); forward {
		t.Fatal("expected the rectangle edit dropped at VT100")
	}

	c.SetLevel(VT420)
	if forward, _ := c.Filter(rect); !forward {
		t.Error("expected the rectangle edit forwarded at VT420")
	}
}

func TestConformancePrivateSequences(t *testing.T) {
	c := NewConformance(VT100, ExtensionNone, DefaultAttributes())

	// DECSED (selective erase) needs VT220; DECSET does not.
	if forward, _ := c.Filter(CsiDispatch{Params: []uint16{2}, Final: 'J', Marker: '?'}); forward {
		t.Error("DECSED must be dropped at VT100")
	}
	if forward, _ := c.Filter(CsiDispatch{Params: []uint16{25}, Final: 'h', Marker: '?'}); !forward {
		t.Error("DECSET must pass at VT100")
	}
}

func TestConformanceDECSCL(t *testing.T) {
	tests := []struct {
		param uint16
		want  VtLevel
	}{
		{61, VT100},
		{62, VT220},
		{63, VT320},
		{64, VT420},
		{65, VT520},
	}
	for _, tt := range tests {
		c := DefaultConformance()
		forward, response := c.Filter(CsiDispatch{
			Params:        []uint16{tt.param, 1},
			Intermediates: []byte{'"'},
			Final:         'p',
		})
		if forward {
			t.Errorf("DECSCL %d: must not be forwarded", tt.param)
		}
		if response != nil {
			t.Errorf("DECSCL %d: must not respond, got %q", tt.param, response)
		}
		if c.Level() != tt.want {
			t.Errorf("DECSCL %d: level = %v, want %v", tt.param, c.Level(), tt.want)
		}
	}
}

func TestConformanceDECSCLUnknownParamIgnored(t *testing.T) {
	c := DefaultConformance()
	forward, response := c.Filter(CsiDispatch{
		Params:        []uint16{99},
		Intermediates: []byte{'"'},
		Final:         'p',
	})
	if forward || response != nil {
		t.Error("unrecognized DECSCL must be silently swallowed")
	}
	if c.Level() != VT320 {
		t.Errorf("level must be unchanged, got %v", c.Level())
	}
}

func TestConformanceDA1AtVT520(t *testing.T) {
	c := NewConformance(VT520, ExtensionNone, DefaultAttributes())
	forward, response := c.Filter(CsiDispatch{Final: 'c'})
	if forward {
		t.Error("DA1 must not be forwarded")
	}
	want := "\x1b[?62;1;6;8;9;4;15;29;22c"
	if string(response) != want {
		t.Errorf("DA1 = %q, want %q", response, want)
	}
}

func TestConformanceDA1ReflectsLevel(t *testing.T) {
	tests := []struct {
		level VtLevel
		want  string
	}{
		{VT100, "\x1b[?62;1c"},
		{VT320, "\x1b[?62;1;6;8;9;4;15c"},
		{VT520, "\x1b[?62;1;6;8;9;4;15;29;22c"},
	}
	for _, tt := range tests {
		c := NewConformance(tt.level, ExtensionNone, DefaultAttributes())
		_, response := c.Filter(CsiDispatch{Final: 'c'})
		if string(response) != tt.want {
			t.Errorf("%v: DA1 = %q, want %q", tt.level, response, tt.want)
		}
	}
}

func TestConformanceDA1ExplicitZeroParam(t *testing.T) {
	c := DefaultConformance()
	_, response := c.Filter(CsiDispatch{Params: []uint16{0}, Final: 'c'})
	if len(response) == 0 {
		t.Error("CSI 0 c must be answered like CSI c")
	}

	_, response = c.Filter(CsiDispatch{Params: []uint16{1}, Final: 'c'})
	if response != nil {
		t.Errorf("CSI 1 c must not be answered, got %q", response)
	}
}

func TestConformanceDA2(t *testing.T) {
	c := DefaultConformance()
	forward, response := c.Filter(CsiDispatch{Final: 'c', Marker: '>'})
	if forward {
		t.Error("DA2 must not be forwarded")
	}
	want := "\x1b[>24;10;0c"
	if string(response) != want {
		t.Errorf("DA2 = %q, want %q", response, want)
	}
}

func TestConformanceDA2TracksLevelAndFirmware(t *testing.T) {
	c := NewConformance(VT420, ExtensionNone, DefaultAttributes())
	c.SetFirmware(20)
	c.SetKeyboard(1)
	_, response := c.Filter(CsiDispatch{Final: 'c', Marker: '>'})
	want := "\x1b[>41;20;1c"
	if string(response) != want {
		t.Errorf("DA2 = %q, want %q", response, want)
	}
}

func TestConformanceDA3(t *testing.T) {
	c := NewConformance(VT420, ExtensionNone, DefaultAttributes())
	forward, response := c.Filter(CsiDispatch{Final: 'c', Marker: '='})
	if forward {
		t.Error("DA3 must not be forwarded")
	}
	want := "\x1bP!|00000000\x1b\\"
	if string(response) != want {
		t.Errorf("DA3 = %q, want %q", response, want)
	}
}

func TestConformanceDA3SilentBelowVT420(t *testing.T) {
	c := DefaultConformance()
	forward, response := c.Filter(CsiDispatch{Final: 'c', Marker: '='})
	if forward || response != nil {
		t.Errorf("DA3 below VT420 must be silently dropped, got %q", response)
	}
}

func TestConformanceOperatingStatus(t *testing.T) {
	c := DefaultConformance()
	forward, response := c.Filter(CsiDispatch{Params: []uint16{5}, Final: 'n'})
	if forward {
		t.Error("DSR 5 must not be forwarded")
	}
	if string(response) != "\x1b[0n" {
		t.Errorf("DSR 5 = %q, want ESC [0n", response)
	}

	// Cursor position reports belong to the screen model, not here.
	forward, response = c.Filter(CsiDispatch{Params: []uint16{6}, Final: 'n'})
	if !forward || response != nil {
		t.Error("DSR 6 must be forwarded untouched")
	}
}

func TestConformanceDECID(t *testing.T) {
	c := NewConformance(VT520, ExtensionNone, DefaultAttributes())
	forward, response := c.Filter(EscDispatch{Final: 'Z'})
	if forward {
		t.Error("DECID must not be forwarded")
	}
	want := "\x1b[?62;1;6;8;9;4;15;29;22c"
	if string(response) != want {
		t.Errorf("DECID = %q, want %q", response, want)
	}
}

func TestConformanceRISRestoresInitialState(t *testing.T) {
	c := NewConformance(VT220, ExtensionKitty, DefaultAttributes())
	c.SetLevel(VT520)
	c.SetExtension(ExtensionNone)
	c.SetAttributes(DefaultAttributes().With(AttrTrueColor))

	forward, response := c.Filter(EscDispatch{Final: 'c'})
	if !forward {
		t.Error("RIS must still reach the screen model")
	}
	if response != nil {
		t.Errorf("RIS must not respond, got %q", response)
	}
	if c.Level() != VT220 {
		t.Errorf("level = %v, want VT220", c.Level())
	}
	if c.Extension() != ExtensionKitty {
		t.Errorf("extension = %v, want Kitty", c.Extension())
	}
	if c.Attributes() != DefaultAttributes() {
		t.Error("attributes not restored")
	}
}

func TestConformanceEscGating(t *testing.T) {
	c := NewConformance(VT100, ExtensionNone, DefaultAttributes())

	// DECSC works on every level.
	if forward, _ := c.Filter(EscDispatch{Final: '7'}); !forward {
		t.Error("DECSC must pass at VT100")
	}
	// SS2 needs VT220.
	if forward, _ := c.Filter(EscDispatch{Final: 'N'}); forward {
		t.Error("SS2 must be dropped at VT100")
	}
	// DEC supplemental designation needs VT220.
	if forward, _ := c.Filter(EscDispatch{Intermediate: '*', Final: '0'}); forward {
		t.Error("G2 designation must be dropped at VT100")
	}

	c.SetLevel(VT220)
	if forward, _ := c.Filter(EscDispatch{Final: 'N'}); !forward {
		t.Error("SS2 must pass at VT220")
	}
}

func TestConformanceDcsGatedBelowVT220(t *testing.T) {
	c := NewConformance(VT100, ExtensionNone, DefaultAttributes())

	if forward, _ := c.Filter(DcsHook{Final: 'q'}); forward {
		t.Error("DCS hook must be dropped at VT100")
	}
	if forward, _ := c.Filter(DcsPut{Byte: 'x'}); forward {
		t.Error("payload of a dropped DCS must be suppressed")
	}
	if forward, _ := c.Filter(DcsUnhook{}); forward {
		t.Error("unhook of a dropped DCS must be suppressed")
	}

	// The gate is per string: the next DCS at a sufficient level flows.
	c.SetLevel(VT220)
	if forward, _ := c.Filter(DcsHook{Final: 'q'}); !forward {
		t.Error("DCS hook must pass at VT220")
	}
	if forward, _ := c.Filter(DcsPut{Byte: 'x'}); !forward {
		t.Error("payload must pass at VT220")
	}
	if forward, _ := c.Filter(DcsUnhook{}); !forward {
		t.Error("unhook must pass at VT220")
	}
}

func TestConformanceStringSequencesNeedVT220(t *testing.T) {
	apc := StringDispatch{Kind: StringAPC, Data: []byte("Gf=100")}

	c := NewConformance(VT100, ExtensionNone, DefaultAttributes())
	if forward, _ := c.Filter(apc); forward {
		t.Error("APC must be dropped at VT100")
	}

	c.SetLevel(VT220)
	if forward, _ := c.Filter(apc); !forward {
		t.Error("APC must pass at VT220")
	}
}

func TestConformanceUniversalActions(t *testing.T) {
	c := NewConformance(VT100, ExtensionNone, DefaultAttributes())
	universal := []Action{
		Print{Char: 'a'},
		Execute{Byte: '\n'},
		OscDispatch{Data: []byte("0;title")},
	}
	for _, a := range universal {
		forward, response := c.Filter(a)
		if !forward || response != nil {
			t.Errorf("%T must always be forwarded without response", a)
		}
	}
}

func TestConformanceC1Support(t *testing.T) {
	c := NewConformance(VT100, ExtensionNone, DefaultAttributes())
	if c.SupportsC1Controls() {
		t.Error("VT100 must not honor 8-bit controls")
	}
	c.SetLevel(VT220)
	if !c.SupportsC1Controls() {
		t.Error("VT220 must honor 8-bit controls")
	}
}
