package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
)

// DeckStatus is a ProtonDB compatibility tier. The zero value is
// DeckUnknown.
type DeckStatus int

const (
	DeckUnknown DeckStatus = iota
	DeckPlatinum
	DeckGold
	DeckBronze
	DeckBorked
)

// Compat is the display metadata attached to a DeckStatus.
type Compat struct {
	Class string
	Label string
	Icon  string
}

var compatTable = map[DeckStatus]Compat{
	DeckPlatinum: {Class: "steamdeck-platinum", Label: "Platinum", Icon: "#medal-platinum"},
	DeckGold:     {Class: "steamdeck-gold", Label: "Gold", Icon: "#medal-gold"},
	DeckBronze:   {Class: "steamdeck-bronze", Label: "Bronze", Icon: "#medal-bronze"},
	DeckBorked:   {Class: "steamdeck-borked", Label: "Borked", Icon: "#medal-borked"},
	DeckUnknown:  {Class: "steamdeck-unknown", Label: "Unknown", Icon: "#medal-unknown"},
}

var deckNames = map[string]DeckStatus{
	"platinum": DeckPlatinum,
	"gold":     DeckGold,
	"bronze":   DeckBronze,
	"borked":   DeckBorked,
	"unknown":  DeckUnknown,
}

// ParseDeckStatus maps a tier name to its status, ignoring case.
// Anything unrecognized is DeckUnknown.
func ParseDeckStatus(s string) DeckStatus {
	if st, ok := deckNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st
	}
	return DeckUnknown
}

func (s DeckStatus) String() string {
	switch s {
	case DeckPlatinum:
		return "platinum"
	case DeckGold:
		return "gold"
	case DeckBronze:
		return "bronze"
	case DeckBorked:
		return "borked"
	}
	return "unknown"
}

// Playable reports whether the tier is good enough to count as
// available on the Steam Deck.
func (s DeckStatus) Playable() bool {
	return s == DeckPlatinum || s == DeckGold
}

// Compat returns the display metadata for the tier, falling back to the
// unknown entry.
func (s DeckStatus) Compat() Compat {
	if c, ok := compatTable[s]; ok {
		return c
	}
	return compatTable[DeckUnknown]
}

func (s DeckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts any JSON value. Non-string values decode as
// DeckUnknown.
func (s *DeckStatus) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		*s = DeckUnknown
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseDeckStatus(raw)
	return nil
}
