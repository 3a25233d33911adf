// Package keyboard loads keyboard layout descriptions: physical keys with
// per-modifier legends, dead-key composition tables, and ligatures. A set of
// layouts is embedded in the binary; an external directory can add to or
// override them, mirroring the dataset override behavior.
package keyboard

// Legends holds the character produced by a key on each modifier layer.
// Absent layers are empty strings.
type Legends struct {
	Base       string `json:"base,omitempty"`
	Shift      string `json:"shift,omitempty"`
	Caps       string `json:"caps,omitempty"`
	AltGr      string `json:"altgr,omitempty"`
	ShiftAltGr string `json:"shift_altgr,omitempty"`
	Ctrl       string `json:"ctrl,omitempty"`
	Alt        string `json:"alt,omitempty"`
}

// layers lists the populated legend values.
func (l Legends) layers() []string {
	all := []string{l.Base, l.Shift, l.Caps, l.AltGr, l.ShiftAltGr, l.Ctrl, l.Alt}
	populated := all[:0]
	for _, s := range all {
		if s != "" {
			populated = append(populated, s)
		}
	}
	return populated
}

// Key is one physical key: its ISO position, matrix coordinates, virtual-key
// name, and legends. Dead keys produce no output until composed.
type Key struct {
	Pos     string   `json:"pos,omitempty"`
	Row     int      `json:"row"`
	Col     int      `json:"col"`
	VK      string   `json:"vk,omitempty"`
	SC      string   `json:"sc,omitempty"`
	Legends Legends  `json:"legends"`
	Dead    bool     `json:"dead,omitempty"`
	Notes   []string `json:"notes,omitempty"`
}

// DeadKey describes a composition table: pressing the trigger then a key from
// the compose map yields the mapped character.
type DeadKey struct {
	Name    string            `json:"name,omitempty"`
	Trigger string            `json:"trigger"`
	Compose map[string]string `json:"compose"`
}

// Ligature maps a key sequence to a multi-character output.
type Ligature struct {
	Keys   []string `json:"keys"`
	Output string   `json:"output"`
}

// Layout is a complete keyboard layout. IDs follow the
// <language>-<region>-<name> convention, e.g. "de-DE-qwertz".
type Layout struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Source     string          `json:"source"`
	ISOVariant string          `json:"iso_variant,omitempty"`
	Flags      map[string]bool `json:"flags,omitempty"`
	Keys       []Key           `json:"keys"`
	DeadKeys   []DeadKey       `json:"dead_keys,omitempty"`
	Ligatures  []Ligature      `json:"ligatures,omitempty"`
	Meta       map[string]any  `json:"meta,omitempty"`
}

// Language returns the language code encoded in the layout ID (the segment
// before the first dash).
func (l *Layout) Language() string {
	for i := 0; i < len(l.ID); i++ {
		if l.ID[i] == '-' {
			return l.ID[:i]
		}
	}
	return l.ID
}

// Typeable returns the set of characters reachable on the layout: every
// populated legend on every layer, dead-key compositions, and ligature
// outputs.
func (l *Layout) Typeable() map[string]struct{} {
	chars := make(map[string]struct{})
	for _, key := range l.Keys {
		for _, ch := range key.Legends.layers() {
			chars[ch] = struct{}{}
		}
	}
	for _, dead := range l.DeadKeys {
		for _, composed := range dead.Compose {
			chars[composed] = struct{}{}
		}
	}
	for _, lig := range l.Ligatures {
		if lig.Output != "" {
			chars[lig.Output] = struct{}{}
		}
	}
	return chars
}
