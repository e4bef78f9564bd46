package editor

import (
	"testing"

	"github.com/forgeline/equipment-cms/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecEditor_EveryChangeEmitsFullMap(t *testing.T) {
	var calls []model.SpecMap
	e := NewSpecEditor(model.SpecMap{"power": model.Text("5 kW")}, func(m model.SpecMap) {
		calls = append(calls, m)
	})

	key := e.Append()
	assert.Equal(t, "field_2", key)
	require.Len(t, calls, 1)
	assert.Len(t, calls[0], 2)

	require.True(t, e.Rename(key, "speed"))
	require.True(t, e.ChangeType("speed", model.KindNumber))
	require.True(t, e.SetValue("speed", "120"))

	last := calls[len(calls)-1]
	assert.Len(t, last, 2)
	assert.True(t, last["speed"].Equal(model.Number(120)))
	assert.True(t, last["power"].Equal(model.Text("5 kW")))
}

func TestSpecEditor_MalformedNumberBecomesZero(t *testing.T) {
	e := NewSpecEditor(model.SpecMap{"speed": model.Number(10)}, nil)
	require.True(t, e.SetValue("speed", "fast"))
	assert.True(t, e.Map()["speed"].Equal(model.Number(0)))
}

func TestSpecEditor_ArrayTypeChanges(t *testing.T) {
	e := NewSpecEditor(model.SpecMap{"materials": model.List("a", "b")}, nil)

	require.True(t, e.ChangeType("materials", model.KindNumber))
	assert.True(t, e.Map()["materials"].Equal(model.Number(0)))

	e = NewSpecEditor(model.SpecMap{"materials": model.List("a", "b")}, nil)
	require.True(t, e.ChangeType("materials", model.KindText))
	assert.NotEqual(t, "a,b", e.Map()["materials"].AsText())
}

func TestSpecEditor_ListInputSplits(t *testing.T) {
	e := NewSpecEditor(model.SpecMap{"voltages": model.List()}, nil)
	require.True(t, e.SetValue("voltages", " 230 , 400,, "))
	assert.Equal(t, []string{"230", "400"}, e.Map()["voltages"].AsList())
}

func TestSpecEditor_RenameGuards(t *testing.T) {
	e := NewSpecEditor(model.SpecMap{"a": model.Text("1"), "b": model.Text("2")}, nil)

	assert.False(t, e.Rename("a", "b"), "rename onto an existing key")
	assert.False(t, e.Rename("a", "  "), "rename to blank")
	assert.False(t, e.Rename("missing", "c"))
	assert.True(t, e.Rename("a", "a"))

	rows := e.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].Key)
}

func TestSpecEditor_AppendSkipsTakenPlaceholders(t *testing.T) {
	e := NewSpecEditor(model.SpecMap{"field_2": model.Text("")}, nil)
	assert.Equal(t, "field_3", e.Append())
	assert.Equal(t, "field_4", e.Append())
}

func TestSpecEditor_Remove(t *testing.T) {
	var last model.SpecMap
	e := NewSpecEditor(model.SpecMap{"a": model.Text("1")}, func(m model.SpecMap) { last = m })
	require.True(t, e.Remove("a"))
	assert.NotNil(t, last)
	assert.Empty(t, last)
	assert.False(t, e.Remove("a"))
}

func TestNewSpecEditorFromRows_KeepsOrderDropsDuplicates(t *testing.T) {
	e := NewSpecEditorFromRows([]SpecRow{
		{Key: "z", Value: model.Text("1")},
		{Key: "a", Value: model.Text("2")},
		{Key: "z", Value: model.Text("3")},
	}, nil)

	rows := e.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "z", rows[0].Key)
	assert.Equal(t, "1", rows[0].Value.AsText())
	assert.Equal(t, "a", rows[1].Key)
}
