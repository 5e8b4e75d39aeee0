package vtcore

import (
	"strconv"
)

// DeviceAttributes is a bitmask of terminal capabilities advertised in the
// primary device attributes (DA1) response. Multiple capabilities can be
// active simultaneously. Every bit pattern is valid; unknown bits are carried
// through arithmetic untouched.
type DeviceAttributes uint32

const (
	// AttrColumns132 advertises 132-column mode.
	AttrColumns132 DeviceAttributes = 1 << iota
	// AttrPrinter advertises a printer port.
	AttrPrinter
	// AttrSixel advertises Sixel graphics.
	AttrSixel
	// AttrSelectiveErase advertises selective erase (DECSCA/DECSED/DECSEL).
	AttrSelectiveErase
	// AttrUserDefinedKeys advertises user-defined keys (DECUDK).
	AttrUserDefinedKeys
	// AttrNationalCharsets advertises national replacement character sets.
	AttrNationalCharsets
	// AttrTechnicalCharacters advertises the DEC Technical character set.
	AttrTechnicalCharacters
	// AttrWindowing advertises window management.
	AttrWindowing
	// AttrHorizontalScrolling advertises horizontal scrolling.
	AttrHorizontalScrolling
	// AttrAnsiColor advertises ANSI color.
	AttrAnsiColor
	// AttrLocator advertises an ANSI text locator device.
	AttrLocator
	// AttrRectangularEditing advertises rectangular area editing.
	AttrRectangularEditing
	// AttrCaptureScreen advertises screen capture. Not reported in DA1; it has
	// no DEC parameter code.
	AttrCaptureScreen
	// AttrColor256 advertises the 256-color palette. Extension territory, not
	// reported in DA1.
	AttrColor256
	// AttrTrueColor advertises 24-bit color. Extension territory, not reported
	// in DA1.
	AttrTrueColor
)

// DefaultAttributes returns the capability set a stock session advertises:
// the feature set of a well-equipped VT500-series terminal.
func DefaultAttributes() DeviceAttributes {
	return AttrColumns132 | AttrSelectiveErase | AttrUserDefinedKeys |
		AttrNationalCharsets | AttrSixel | AttrTechnicalCharacters |
		AttrLocator | AttrAnsiColor
}

// Bits returns the raw bit pattern.
func (a DeviceAttributes) Bits() uint32 {
	return uint32(a)
}

// DeviceAttributesFromBits builds an attribute set from a raw bit pattern.
// Every pattern is valid: Bits round-trips losslessly.
func DeviceAttributesFromBits(bits uint32) DeviceAttributes {
	return DeviceAttributes(bits)
}

// Contains reports whether every capability in attrs is present.
func (a DeviceAttributes) Contains(attrs DeviceAttributes) bool {
	return a&attrs == attrs
}

// With returns a copy with the given capabilities added. Idempotent.
func (a DeviceAttributes) With(attrs DeviceAttributes) DeviceAttributes {
	return a | attrs
}

// Without returns a copy with the given capabilities removed. Idempotent.
func (a DeviceAttributes) Without(attrs DeviceAttributes) DeviceAttributes {
	return a &^ attrs
}

// da1Baseline is the first DA1 parameter: "I am a VT220-family terminal with
// advanced video". Clients key on it before reading any capability codes.
const da1Baseline = 62

// da1Order maps capabilities to their DA1 parameter codes, in the exact order
// they appear in the response. Clients commonly parse only a prefix of the
// reply, so this order is a wire-compatibility contract, not a style choice.
var da1Order = []struct {
	attr DeviceAttributes
	code uint16
}{
	{AttrColumns132, 1},
	{AttrSelectiveErase, 6},
	{AttrUserDefinedKeys, 8},
	{AttrNationalCharsets, 9},
	{AttrSixel, 4},
	{AttrTechnicalCharacters, 15},
	{AttrLocator, 29},
	{AttrAnsiColor, 22},
	{AttrPrinter, 2},
	{AttrWindowing, 18},
	{AttrHorizontalScrolling, 21},
	{AttrRectangularEditing, 28},
}

// attrMinLevel is the conformance level at which each capability first exists.
// DA1 responses exclude capabilities the current level cannot support even
// when the bit is set; the level is always the outer gate.
var attrMinLevel = map[DeviceAttributes]VtLevel{
	AttrColumns132:          VT100,
	AttrPrinter:             VT100,
	AttrSelectiveErase:      VT220,
	AttrUserDefinedKeys:     VT220,
	AttrNationalCharsets:    VT220,
	AttrSixel:               VT240,
	AttrTechnicalCharacters: VT320,
	AttrLocator:             VT330,
	AttrWindowing:           VT420,
	AttrHorizontalScrolling: VT420,
	AttrRectangularEditing:  VT420,
	AttrCaptureScreen:       VT510,
	AttrAnsiColor:           VT520,
	AttrColor256:            VT520,
	AttrTrueColor:           VT525,
}

// ForLevel returns a copy with every capability removed that the given
// conformance level cannot support.
func (a DeviceAttributes) ForLevel(level VtLevel) DeviceAttributes {
	out := a
	for attr, min := range attrMinLevel {
		if level < min {
			out = out.Without(attr)
		}
	}
	return out
}

// ToParams returns the DA1 response parameters: the family baseline followed
// by the code of each advertised capability in canonical order. Capabilities
// without a DEC parameter code (screen capture, 256-color, true color) are
// never included.
func (a DeviceAttributes) ToParams() []uint16 {
	params := make([]uint16, 0, len(da1Order)+1)
	params = append(params, da1Baseline)
	for _, entry := range da1Order {
		if a.Contains(entry.attr) {
			params = append(params, entry.code)
		}
	}
	return params
}

// ToResponse formats the complete DA1 response, e.g. "\x1b[?62;1;6c".
func (a DeviceAttributes) ToResponse() string {
	buf := make([]byte, 0, 32)
	buf = append(buf, 0x1b, '[', '?')
	for i, p := range a.ToParams() {
		if i > 0 {
			buf = append(buf, ';')
		}
		buf = strconv.AppendUint(buf, uint64(p), 10)
	}
	buf = append(buf, 'c')
	return string(buf)
}
