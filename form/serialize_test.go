package form_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formedit/form"
)

func TestMarshalSample(t *testing.T) {
	f, err := form.Parse([]byte(sampleForm))
	require.NoError(t, err)

	want := `<?xml version="1.0"?>
<form>
<init>
<caption>Test</caption>
<control name="c1" ypos="20" xpos="10" refvar="R1" hotlink="true"/>
</init>
<paint>
<text xpos="5" ypos="5" color="#ff0000" style="font-size:18px">Hello</text>
</paint>
</form>
`
	if diff := cmp.Diff(want, string(form.Marshal(f, form.Identity))); diff != "" {
		t.Errorf("Marshal mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalReadonly(t *testing.T) {
	f := &form.Form{Elements: []form.Element{
		{ID: "r", Kind: form.KindReadonly, X: 1, Y: 2, Refvar: "$R[1]"},
	}}
	out := string(form.Marshal(f, form.Identity))
	assert.Contains(t, out, `<control name="r" ypos="2" xpos="1" fieldtype="readonly" refvar="$R[1]" hotlink="true"/>`)
}

func TestEscapeRoundTrip(t *testing.T) {
	f := &form.Form{
		Caption: `Tom's "form"`,
		Elements: []form.Element{
			{ID: "label-0", Kind: form.KindLabel, Content: "A & B <C>", Color: "#000", FontSize: 14},
			{ID: `a"b`, Kind: form.KindCheckbox, Refvar: `x<'y'>`},
		},
	}
	out := form.Marshal(f, form.Identity)
	assert.Contains(t, string(out), ">A &amp; B &lt;C&gt;</text>")
	assert.Contains(t, string(out), "<caption>Tom&apos;s &quot;form&quot;</caption>")
	assert.Contains(t, string(out), `name="a&quot;b"`)

	back, err := form.Parse(out)
	require.NoError(t, err)
	if diff := cmp.Diff(f, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripAndIdempotence(t *testing.T) {
	f, err := form.Parse([]byte(`<form>
<init><caption>Spindle</caption>
<control name="on" xpos="100" ypos="40" refvar="DB10.DBX1.0"/>
<control name="speed" xpos="100" ypos="70.5" fieldtype="readonly" refvar="$AA_S[1]"/>
</init>
<paint>
<text xpos="10" ypos="40" color="#00f">Spindle on</text>
<text xpos="10" ypos="70" color="#123456" style="font-size:20px">Speed</text>
</paint>
</form>`))
	require.NoError(t, err)

	first := form.Marshal(f, form.Identity)
	assert.True(t, bytes.Equal(first, form.Marshal(f, form.Identity)), "export is not idempotent")

	again, err := form.Parse(first)
	require.NoError(t, err)
	if diff := cmp.Diff(f, again); diff != "" {
		t.Errorf("re-parse mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(string(first), string(form.Marshal(again, form.Identity))); diff != "" {
		t.Errorf("re-export mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalScaled(t *testing.T) {
	f := &form.Form{Elements: []form.Element{
		{ID: "label-0", Kind: form.KindLabel, X: 3, Y: 10, Content: "x", Color: "#000", FontSize: 10},
		{ID: "c", Kind: form.KindCheckbox, X: 3, Y: 7},
	}}
	before := append([]form.Element(nil), f.Elements...)

	out := string(form.Marshal(f, form.Scale{Font: 1.5, Line: 2}))
	assert.Contains(t, out, `<text xpos="3" ypos="20" color="#000" style="font-size:15px">x</text>`)
	assert.Contains(t, out, `<control name="c" ypos="14" xpos="3"`)
	assert.Equal(t, before, f.Elements, "scaling leaked into element data")
}

func TestMarshalZeroScaleIsIdentity(t *testing.T) {
	f, err := form.Parse([]byte(sampleForm))
	require.NoError(t, err)
	assert.Equal(t, form.Marshal(f, form.Identity), form.Marshal(f, form.Scale{}))
}

func TestIdentityExportKeepsPrecision(t *testing.T) {
	f, err := form.Parse([]byte(`<form><init><control name="c" xpos="1.0625" ypos="2.2"/></init><paint><text xpos="10.125" ypos="3.14159">a</text></paint></form>`))
	require.NoError(t, err)
	out := string(form.Marshal(f, form.Identity))
	assert.Contains(t, out, `<text xpos="10.125" ypos="3.14159"`)
	assert.Contains(t, out, `ypos="2.2" xpos="1.0625"`)

	again, err := form.Parse([]byte(out))
	require.NoError(t, err)
	if diff := cmp.Diff(f, again); diff != "" {
		t.Errorf("identity export changed the form (-want +got):\n%s", diff)
	}
}

func TestScaledExportDropsFloatNoise(t *testing.T) {
	f := &form.Form{Elements: []form.Element{
		{ID: "c", Kind: form.KindCheckbox, X: 0, Y: 70 / 1.1},
	}}
	out := string(form.Marshal(f, form.Scale{Font: 1, Line: 1.1}))
	assert.Contains(t, out, `ypos="70"`)
}

func TestFormatNumber(t *testing.T) {
	for in, want := range map[float64]string{
		0:          "0",
		10:         "10",
		-0.001:     "-0.001",
		33.3333333: "33.3333333",
		10.125:     "10.125",
		7.5:        "7.5",
		-12:        "-12",
	} {
		assert.Equal(t, want, form.FormatNumber(in), "%v", in)
	}
	assert.Equal(t, "0", form.FormatNumber(math.Copysign(0, -1)))
}

func TestEncodeWriter(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, form.Encode(&sb, &form.Form{}, form.Identity))
	assert.Equal(t, "<?xml version=\"1.0\"?>\n<form>\n<init>\n<caption></caption>\n</init>\n<paint>\n</paint>\n</form>\n", sb.String())
}
