package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := map[string]string{
		"Industrial Mixer X":       "industrial-mixer-x",
		"  Presse à Vis 200  ":     "presse-a-vis-200",
		"Förderband / Typ-B":       "forderband-typ-b",
		"Straße & Co.":             "strasse-co",
		"---":                      "",
		"CNC 5-Axis (Pro) Edition": "cnc-5-axis-pro-edition",
	}
	for in, want := range tests {
		assert.Equal(t, want, Make(in), "Make(%q)", in)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("industrial-mixer-x"))
	assert.True(t, Valid("a1"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("Upper-Case"))
	assert.False(t, Valid("double--hyphen"))
	assert.False(t, Valid("-leading"))
	assert.False(t, Valid("with space"))
}
