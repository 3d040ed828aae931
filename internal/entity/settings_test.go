package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardValue_JSONForms(t *testing.T) {
	deck := []CardValue{NumberCard(0.5), NumberCard(13), LabelCard("?")}

	data, err := json.Marshal(deck)
	require.NoError(t, err)
	assert.JSONEq(t, `[0.5, 13, "?"]`, string(data), "numbers stay numbers, sentinels stay strings")

	var back []CardValue
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 3)
	assert.True(t, back[0].Equal(NumberCard(0.5)))
	assert.True(t, back[2].Equal(LabelCard("?")))
}

func TestCardValue_RejectsOtherJSONTypes(t *testing.T) {
	var v CardValue
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &v))
}

func TestSettings_ApplyIsPerKey(t *testing.T) {
	defaults := DefaultSettings()

	assert.Equal(t, defaults, defaults.Apply(nil))

	anon := true
	merged := defaults.Apply(&SettingsOverride{Anonymous: &anon})
	assert.True(t, merged.Anonymous)
	assert.Equal(t, defaults.CardValues, merged.CardValues, "unset override keys keep the default")

	deck := []CardValue{NumberCard(1), NumberCard(2)}
	merged = defaults.Apply(&SettingsOverride{CardValues: deck})
	assert.False(t, merged.Anonymous)
	assert.Equal(t, deck, merged.CardValues)
}

func TestSettings_AllowsValue(t *testing.T) {
	s := DefaultSettings()

	assert.True(t, s.AllowsValue(NumberCard(13)))
	assert.True(t, s.AllowsValue(LabelCard("coffee")))
	assert.False(t, s.AllowsValue(NumberCard(4)))
	assert.False(t, s.AllowsValue(LabelCard("13")), "label \"13\" is not the numeric 13 card")
}
