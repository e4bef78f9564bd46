package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecValue_Convert(t *testing.T) {
	tests := []struct {
		name string
		in   SpecValue
		to   SpecKind
		want SpecValue
	}{
		{"text to number", Text(" 42.5 "), KindNumber, Number(42.5)},
		{"malformed text to number", Text("approx 40"), KindNumber, Number(0)},
		{"empty text to number", Text(""), KindNumber, Number(0)},
		{"bool to number", Bool(true), KindNumber, Number(1)},
		{"non numeric list to number", List("a", "b"), KindNumber, Number(0)},
		{"single numeric list to number", List("7"), KindNumber, Number(7)},
		{"empty list to number", List(), KindNumber, Number(0)},
		{"non-empty text to bool", Text("no"), KindBool, Bool(true)},
		{"empty text to bool", Text(""), KindBool, Bool(false)},
		{"zero to bool", Number(0), KindBool, Bool(false)},
		{"empty list to bool", List(), KindBool, Bool(true)},
		{"text to list", Text(" steel, , aluminium ,"), KindList, List("steel", "aluminium")},
		{"number to list", Number(3), KindList, List("3")},
		{"number to text", Number(1500), KindText, Text("1500")},
		{"bool to text", Bool(false), KindText, Text("false")},
		{"list to text", List("a", "b"), KindText, Text("a, b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Convert(tt.to)
			assert.True(t, tt.want.Equal(got), "want %v (%s), got %v (%s)", tt.want, tt.want.Kind(), got, got.Kind())
		})
	}
}

func TestSpecValue_ListToTextDoesNotCollapse(t *testing.T) {
	got := List("a", "b").Convert(KindText)
	assert.NotEqual(t, "a,b", got.AsText())
}

func TestSpecValue_ZeroIsEmptyText(t *testing.T) {
	var v SpecValue
	assert.Equal(t, KindText, v.Kind())
	assert.Equal(t, "", v.String())
}

func TestSpecMap_JSONInfersKinds(t *testing.T) {
	var m SpecMap
	raw := `{"power":"5 kW","speed":120,"cnc":true,"materials":["steel",3],"extra":{"a":1},"none":null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.Equal(t, KindText, m["power"].Kind())
	assert.Equal(t, KindNumber, m["speed"].Kind())
	assert.Equal(t, 120.0, m["speed"].AsNumber())
	assert.Equal(t, KindBool, m["cnc"].Kind())
	assert.Equal(t, []string{"steel", "3"}, m["materials"].AsList())
	assert.Equal(t, KindText, m["extra"].Kind())
	assert.Equal(t, "", m["none"].AsText())

	out, err := json.Marshal(SpecMap{"speed": Number(120), "materials": List("steel")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"speed":120,"materials":["steel"]}`, string(out))
}

func TestSpecMap_ScanValue(t *testing.T) {
	src := SpecMap{"voltage": Number(400), "phases": List("L1", "L2", "L3")}
	v, err := src.Value()
	require.NoError(t, err)

	var dst SpecMap
	require.NoError(t, dst.Scan(v))
	assert.True(t, dst["voltage"].Equal(Number(400)))
	assert.True(t, dst["phases"].Equal(List("L1", "L2", "L3")))

	var empty SpecMap
	require.NoError(t, empty.Scan(nil))
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

func TestMediaTypeFromName(t *testing.T) {
	assert.Equal(t, MediaImage, MediaTypeFromName("https://cdn.example.com/a/B.JPG?w=400"))
	assert.Equal(t, MediaVideo, MediaTypeFromName("demo.webm"))
	assert.Equal(t, MediaDocument, MediaTypeFromName("manual.pdf"))
	assert.Equal(t, MediaDocument, MediaTypeFromName("no-extension"))
}

func TestBuildCategoryTree(t *testing.T) {
	root := "root"
	missing := "gone"
	flat := []Category{
		{BaseModel: BaseModel{ID: "root"}, Name: "Machines"},
		{BaseModel: BaseModel{ID: "child"}, Name: "Mixers", ParentID: &root},
		{BaseModel: BaseModel{ID: "orphan"}, Name: "Orphan", ParentID: &missing},
	}

	tree := BuildCategoryTree(flat)
	require.Len(t, tree, 2)
	assert.Equal(t, "root", tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "child", tree[0].Children[0].ID)
	assert.Equal(t, "orphan", tree[1].ID)
}

func TestValidationError(t *testing.T) {
	v := NewValidationError()
	assert.NoError(t, v.Err())

	v.Add("name", "is required")
	v.Add("name", "ignored second message")
	err := v.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "is required", v.Fields["name"])
}
