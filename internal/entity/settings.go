package entity

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CardValue is one selectable estimate: either a number or a sentinel
// label like "?" or "coffee". It marshals back to whichever JSON form it
// was created from.
type CardValue struct {
	Number  float64
	Label   string
	Numeric bool
}

func NumberCard(n float64) CardValue {
	return CardValue{Number: n, Numeric: true}
}

func LabelCard(label string) CardValue {
	return CardValue{Label: label}
}

func (c CardValue) String() string {
	if c.Numeric {
		return fmt.Sprintf("%g", c.Number)
	}
	return c.Label
}

// Equal compares two card values. A numeric card never equals a label
// card, even when the label spells the same digits.
func (c CardValue) Equal(other CardValue) bool {
	if c.Numeric != other.Numeric {
		return false
	}
	if c.Numeric {
		return c.Number == other.Number
	}
	return c.Label == other.Label
}

func (c CardValue) MarshalJSON() ([]byte, error) {
	if c.Numeric {
		return json.Marshal(c.Number)
	}
	return json.Marshal(c.Label)
}

func (c *CardValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*c = NumberCard(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("card value must be a number or a string: %w", err)
	}
	*c = LabelCard(s)
	return nil
}

// RoomSettings lists every recognized room option. Overrides are applied
// field by field onto the defaults, no deep merge.
type RoomSettings struct {
	Anonymous  bool        `json:"anonymous"`
	CardValues []CardValue `json:"cardValues"`
}

// SettingsOverride carries the optional per-field overrides accepted at
// room creation. Nil fields keep the default.
type SettingsOverride struct {
	Anonymous  *bool       `json:"anonymous,omitempty"`
	CardValues []CardValue `json:"cardValues,omitempty"`
}

// DefaultSettings returns the standard estimation deck with anonymous
// voting off.
func DefaultSettings() RoomSettings {
	return RoomSettings{
		Anonymous: false,
		CardValues: []CardValue{
			NumberCard(0), NumberCard(1), NumberCard(2), NumberCard(3),
			NumberCard(5), NumberCard(8), NumberCard(13), NumberCard(20),
			NumberCard(40), NumberCard(100),
			LabelCard("?"), LabelCard("coffee"),
		},
	}
}

// Apply merges the override onto s, override wins per key.
func (s RoomSettings) Apply(o *SettingsOverride) RoomSettings {
	if o == nil {
		return s
	}
	if o.Anonymous != nil {
		s.Anonymous = *o.Anonymous
	}
	if len(o.CardValues) > 0 {
		s.CardValues = o.CardValues
	}
	return s
}

// AllowsValue reports whether v is a member of the room's configured
// deck.
func (s RoomSettings) AllowsValue(v CardValue) bool {
	for _, cv := range s.CardValues {
		if cv.Equal(v) {
			return true
		}
	}
	return false
}
