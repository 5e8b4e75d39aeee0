package vtcore

import (
	"fmt"
)

// Conformance tracks the VT level a session operates at and applies the
// gating policy: sequences that require a higher level than the current one
// are dropped silently, exactly as real DEC hardware ignores sequences it
// does not recognize. It also intercepts and answers the identification
// exchanges (DA1, DA2, DA3, DECSCL, DECID, operating status).
//
// Conformance is the only component in this package that produces outbound
// bytes. It performs no I/O itself; responses are returned for the caller to
// write to the PTY.
//
// One Conformance exists per terminal session. Not safe for concurrent use.
type Conformance struct {
	level     VtLevel
	extension VtExtension
	attrs     DeviceAttributes

	firmware int
	keyboard int

	// Construction-time values, restored by RIS.
	initialLevel     VtLevel
	initialExtension VtExtension
	initialAttrs     DeviceAttributes

	// dcsGated suppresses the put/unhook tail of a device control string
	// whose hook was dropped.
	dcsGated bool
}

// defaultFirmware is the firmware revision reported in DA2 (1.0).
const defaultFirmware = 10

// NewConformance creates a conformance manager. The most common real-world
// baseline is VT320, so DefaultConformance uses that; sessions that need a
// different starting point pass it here.
func NewConformance(level VtLevel, extension VtExtension, attrs DeviceAttributes) *Conformance {
	return &Conformance{
		level:            level,
		extension:        extension,
		attrs:            attrs,
		firmware:         defaultFirmware,
		keyboard:         0,
		initialLevel:     level,
		initialExtension: extension,
		initialAttrs:     attrs,
	}
}

// DefaultConformance returns a manager at VT320 with the stock attribute set
// and no vendor extension.
func DefaultConformance() *Conformance {
	return NewConformance(VT320, ExtensionNone, DefaultAttributes())
}

// Level returns the current conformance level.
func (c *Conformance) Level() VtLevel {
	return c.level
}

// SetLevel pins the session at a level, as if a DECSCL had selected it.
func (c *Conformance) SetLevel(level VtLevel) {
	c.level = level
}

// Extension returns the active vendor extension.
func (c *Conformance) Extension() VtExtension {
	return c.extension
}

// SetExtension switches the active vendor extension.
func (c *Conformance) SetExtension(extension VtExtension) {
	c.extension = extension
}

// Attributes returns the advertised capability set, ungated. Use
// Attributes().ForLevel(Level()) for the set a DA1 response would carry.
func (c *Conformance) Attributes() DeviceAttributes {
	return c.attrs
}

// SetAttributes replaces the advertised capability set.
func (c *Conformance) SetAttributes(attrs DeviceAttributes) {
	c.attrs = attrs
}

// SetFirmware sets the firmware revision reported in DA2.
func (c *Conformance) SetFirmware(version int) {
	c.firmware = version
}

// SetKeyboard sets the keyboard type reported in DA2.
func (c *Conformance) SetKeyboard(kbd int) {
	c.keyboard = kbd
}

// SupportsC1Controls reports whether the current level honors 8-bit C1
// controls.
func (c *Conformance) SupportsC1Controls() bool {
	return c.level.SupportsC1Controls()
}

// Filter decides the fate of one parsed action. forward reports whether the
// action should reach the screen model; response holds any bytes owed to the
// program that sent the sequence (identification replies). Both failure
// categories here are silent: a malformed or level-insufficient sequence
// produces forward=false with no response and no error.
func (c *Conformance) Filter(a Action) (forward bool, response []byte) {
	switch v := a.(type) {
	case CsiDispatch:
		return c.filterCsi(v)
	case EscDispatch:
		return c.filterEsc(v)
	case DcsHook:
		if c.level < VT220 {
			c.dcsGated = true
			return false, nil
		}
		return true, nil
	case DcsPut:
		return !c.dcsGated, nil
	case DcsUnhook:
		if c.dcsGated {
			c.dcsGated = false
			return false, nil
		}
		return true, nil
	case StringDispatch:
		return c.level >= VT220, nil
	}
	// Print, Execute, and OSC are universal.
	return true, nil
}

func (c *Conformance) filterCsi(a CsiDispatch) (bool, []byte) {
	// DECSCL: CSI Ps ; Ps " p
	if a.Final == 'p' && a.Marker == 0 && len(a.Intermediates) == 1 && a.Intermediates[0] == '"' {
		if len(a.Params) > 0 {
			if level, ok := VtLevelFromDECSCLParam(int(a.Params[0])); ok {
				// The optional second parameter selects 7-bit or 8-bit
				// response transmission; level selection ignores it.
				c.level = level
			}
		}
		// Silent on success and on an unrecognized parameter.
		return false, nil
	}

	if a.Final == 'c' && len(a.Intermediates) == 0 {
		switch a.Marker {
		case 0:
			if a.param(0, 0) == 0 {
				return false, []byte(c.da1Response())
			}
			return false, nil
		case '>':
			if a.param(0, 0) == 0 {
				return false, []byte(c.da2Response())
			}
			return false, nil
		case '=':
			// DA3 exists from the VT420 on; earlier terminals stay silent.
			if c.level >= VT420 && a.param(0, 0) == 0 {
				return false, []byte("\x1bP!|00000000\x1b\\")
			}
			return false, nil
		}
	}

	// DSR 5: operating status, always "ready, no malfunctions".
	if a.Final == 'n' && a.Marker == 0 && len(a.Intermediates) == 0 && a.param(0, 0) == 5 {
		return false, []byte("\x1b[0n")
	}

	return c.level >= MinLevelForCSI(a.classifierKey(), a.Private()), nil
}

func (c *Conformance) filterEsc(a EscDispatch) (bool, []byte) {
	if a.Intermediate == 0 {
		switch a.Final {
		case 'Z':
			// DECID is answered like DA1.
			return false, []byte(c.da1Response())
		case 'c':
			// RIS restores the construction-time conformance state and is
			// still forwarded so the screen model resets too.
			c.level = c.initialLevel
			c.extension = c.initialExtension
			c.attrs = c.initialAttrs
			c.dcsGated = false
			return true, nil
		}
	}
	return c.level >= MinLevelForESC(a.Intermediate, a.Final), nil
}

// da1Response formats the primary device attributes reply, excluding every
// capability the current level cannot support.
func (c *Conformance) da1Response() string {
	return c.attrs.ForLevel(c.level).ToResponse()
}

// da2Response formats the secondary device attributes reply.
func (c *Conformance) da2Response() string {
	return fmt.Sprintf("\x1b[>%d;%d;%dc", c.level.DA2Param(), c.firmware, c.keyboard)
}
