package form_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formedit/form"
)

const sampleForm = `<form><init><caption>Test</caption><control name="c1" xpos="10" ypos="20" refvar="R1" hotlink="true"/></init><paint><text xpos="5" ypos="5" color="#ff0000" style="font-size:18px">Hello</text></paint></form>`

func TestParseSample(t *testing.T) {
	f, err := form.Parse([]byte(sampleForm))
	require.NoError(t, err)

	want := &form.Form{
		Caption: "Test",
		Elements: []form.Element{
			{ID: "label-0", Kind: form.KindLabel, X: 5, Y: 5, Content: "Hello", Color: "#ff0000", FontSize: 18},
			{ID: "c1", Kind: form.KindCheckbox, X: 10, Y: 20, Refvar: "R1"},
		},
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
	assert.NoError(t, f.Validate())
}

func TestParseDefaults(t *testing.T) {
	f, err := form.Parse([]byte(`<form>
<paint>
  <text xpos="abc">plain</text>
  <text xpos="1" ypos="2" style="color:red; font-size: 22px">big</text>
</paint>
<init>
  <control xpos="3" ypos="4" fieldtype="readonly" refvar="V"/>
  <control xpos="1e400"/>
</init>
</form>`))
	require.NoError(t, err)
	assert.Equal(t, "", f.Caption)
	require.Len(t, f.Elements, 4)

	plain := f.Elements[0]
	assert.Equal(t, "label-0", plain.ID)
	assert.Equal(t, 0.0, plain.X)
	assert.Equal(t, form.DefaultColor, plain.Color)
	assert.Equal(t, form.DefaultFontSize, plain.FontSize)

	assert.Equal(t, 22, f.Elements[1].FontSize)

	ro := f.Elements[2]
	assert.Equal(t, "control-0", ro.ID)
	assert.Equal(t, form.KindReadonly, ro.Kind)
	assert.Equal(t, "V", ro.Refvar)

	assert.Equal(t, "control-1", f.Elements[3].ID)
	assert.Equal(t, form.KindCheckbox, f.Elements[3].Kind)
	assert.Equal(t, 0.0, f.Elements[3].X)
}

func TestParseDuplicateNames(t *testing.T) {
	f, err := form.Parse([]byte(`<form><paint><text>a</text></paint><init>
<control name="x"/><control name="x"/><control name="label-0"/></init></form>`))
	require.NoError(t, err)

	var ids []string
	for _, e := range f.Elements {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"label-0", "x", "x-2", "label-0-2"}, ids)
	assert.NoError(t, f.Validate())
}

func TestParsePartial(t *testing.T) {
	f, err := form.Parse([]byte(`<form><init><caption> T </caption><control name="a" xpos="1" ypos="2"/></init><paint><text xpos="1" ypos="1">Hi`))
	require.Error(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "T", f.Caption)
	require.Len(t, f.Elements, 1)
	assert.Equal(t, "a", f.Elements[0].ID)
}

func TestParseMismatchedTag(t *testing.T) {
	f, err := form.Parse([]byte(`<form><text xpos="1">a</txt></form>`))
	require.Error(t, err)
	require.NotNil(t, f)
	assert.Empty(t, f.Elements)
}

func TestParseNotAForm(t *testing.T) {
	for _, doc := range []string{"", "   ", "<dialog><text>x</text></dialog>"} {
		f, err := form.Parse([]byte(doc))
		require.NotNil(t, f, "%q", doc)
		assert.Empty(t, f.Elements, "%q", doc)
		assert.True(t, errors.Is(err, form.ErrNoForm), "%q: %v", doc, err)
	}
}

func TestParseCharset(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><form><paint><text xpos=\"0\" ypos=\"0\">caf\xe9</text></paint></form>"
	f, err := form.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, f.Elements, 1)
	assert.Equal(t, "café", f.Elements[0].Content)
}

func TestParseNestedTextContent(t *testing.T) {
	f, err := form.Parse([]byte(`<form><paint><text>a<b>b</b>c</text></paint></form>`))
	require.NoError(t, err)
	require.Len(t, f.Elements, 1)
	assert.Equal(t, "abc", f.Elements[0].Content)
}
