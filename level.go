package vtcore

// VtLevel identifies the VT conformance generation a terminal session emulates.
//
// The zero value is VT100. Levels are ordered by feature superset: a session at
// a higher level honors everything a lower level honors. Note that this order
// is NOT the order of the DA2 wire codes, which are historical artifacts (the
// VT330 reports 18 on the wire while the older VT320 reports 24). Always
// compare VtLevel values directly, never their DA2 codes.
type VtLevel int

const (
	// VT100 is the 1978 baseline: 7-bit controls only.
	VT100 VtLevel = iota
	// VT220 adds 8-bit C1 controls, DCS, user-defined keys, and NRCS.
	VT220
	// VT240 is a VT220 with ReGIS/Sixel graphics.
	VT240
	// VT320 adds DECSCL level 3 features and the DEC Technical character set.
	VT320
	// VT330 is a VT320 with graphics and a locator device.
	VT330
	// VT340 is a VT330 with color graphics.
	VT340
	// VT420 adds rectangular area operations, window management, and
	// horizontal scrolling.
	VT420
	// VT510 is a single-session VT420 follow-on.
	VT510
	// VT520 is the multi-session text terminal of the VT500 series.
	VT520
	// VT525 is a VT520 with ANSI color.
	VT525
)

// levelNames is indexed by VtLevel.
var levelNames = [...]string{"VT100", "VT220", "VT240", "VT320", "VT330", "VT340", "VT420", "VT510", "VT520", "VT525"}

// String returns the model name, e.g. "VT420".
func (l VtLevel) String() string {
	if l < VT100 || int(l) >= len(levelNames) {
		return "VT???"
	}
	return levelNames[l]
}

// DA2Param returns the terminal identification code this level reports as the
// first parameter of the secondary device attributes (DA2) response. The codes
// are fixed by DEC firmware history and are not monotonic in feature order.
func (l VtLevel) DA2Param() int {
	switch l {
	case VT100:
		return 0
	case VT220:
		return 1
	case VT240:
		return 2
	case VT320:
		return 24
	case VT330:
		return 18
	case VT340:
		return 19
	case VT420:
		return 41
	case VT510:
		return 61
	case VT520:
		return 64
	case VT525:
		return 65
	}
	return 0
}

// VtLevelFromDA2Param maps a DA2 identification code back to its level.
// The second return value is false for codes no DEC terminal ever reported.
func VtLevelFromDA2Param(param int) (VtLevel, bool) {
	switch param {
	case 0:
		return VT100, true
	case 1:
		return VT220, true
	case 2:
		return VT240, true
	case 24:
		return VT320, true
	case 18:
		return VT330, true
	case 19:
		return VT340, true
	case 41:
		return VT420, true
	case 61:
		return VT510, true
	case 64:
		return VT520, true
	case 65:
		return VT525, true
	}
	return VT100, false
}

// DECSCLParam returns the conformance level code (61-65) this level reports in
// a DECSCL exchange. DECSCL is a coarser encoding than DA2: the five codes
// cover ten models, so models in the same family share a code (a VT240 reports
// 62, the same as a VT220).
func (l VtLevel) DECSCLParam() int {
	switch {
	case l >= VT520:
		return 65
	case l >= VT420:
		return 64
	case l >= VT320:
		return 63
	case l >= VT220:
		return 62
	default:
		return 61
	}
}

// VtLevelFromDECSCLParam maps a DECSCL code to the canonical level of its
// family bucket. The second return value is false for unrecognized codes;
// real DEC hardware ignores a DECSCL with such a parameter, and so do we.
func VtLevelFromDECSCLParam(param int) (VtLevel, bool) {
	switch param {
	case 61:
		return VT100, true
	case 62:
		return VT220, true
	case 63:
		return VT320, true
	case 64:
		return VT420, true
	case 65:
		return VT520, true
	}
	return VT100, false
}

// SupportsC1Controls reports whether this level honors 8-bit C1 control bytes
// (0x80-0x9F) as CSI/OSC/DCS introducers. The VT100 predates 8-bit controls;
// everything from the VT220 on accepts them.
func (l VtLevel) SupportsC1Controls() bool {
	return l >= VT220
}

// VtExtension records vendor behavior beyond the DEC standard, orthogonal to
// the conformance level. Extensions have no ordering relationship.
type VtExtension int

const (
	// ExtensionNone means strict DEC behavior with no vendor additions.
	ExtensionNone VtExtension = iota
	// ExtensionUnknown means a vendor extension was detected but not identified.
	ExtensionUnknown
	// ExtensionXTerm enables xterm-compatible behavior.
	ExtensionXTerm
	// ExtensionITerm2 enables iTerm2-compatible behavior.
	ExtensionITerm2
	// ExtensionKitty enables kitty-compatible behavior.
	ExtensionKitty
)

// String returns the extension name.
func (e VtExtension) String() string {
	switch e {
	case ExtensionNone:
		return "none"
	case ExtensionUnknown:
		return "unknown"
	case ExtensionXTerm:
		return "xterm"
	case ExtensionITerm2:
		return "iterm2"
	case ExtensionKitty:
		return "kitty"
	}
	return "unknown"
}
