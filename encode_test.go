package brewxml

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func representativeRecipe() Recipe {
	return Recipe{
		Name:         "Oatmeal Stout",
		Version:      1,
		Type:         "All Grain",
		Brewer:       "Ash",
		BatchSize:    ptr(20.0),
		BoilSize:     ptr(24.5),
		BoilTime:     ptr(60.0),
		Efficiency:   ptr(70.0),
		Notes:        "Mash at 67C <high> & long",
		TasteRating:  ptr(42.5),
		OG:           ptr(1.058),
		FG:           ptr(1.016),
		IBU:          ptr(35.0),
		IBUMethod:    "Rager",
		PrimaryAge:   ptr(14.0),
		PrimaryTemp:  ptr(19.0),
		TertiaryTemp: ptr(2.5),
		Date:         "2024-11-02",
		Carbonation:  ptr(2.1),
		DisplayOG:    "1.058",
		Hops: []Hop{
			{Name: "East Kent Goldings", Alpha: ptr(5.0), Amount: ptr(0.05), Use: "Boil", Time: ptr(60.0), Form: "Leaf"},
			{Name: "Fuggle", Alpha: ptr(4.5), Amount: ptr(0.01), Use: "Aroma", Time: ptr(5.0), Myrcene: ptr(40.0)},
		},
		Fermentables: []Fermentable{
			{Name: "Maris Otter", Type: "Grain", Amount: ptr(4.0), Yield: ptr(81.0), Color: ptr(3.0), RecommendMash: ptr(true)},
			{Name: "Lactose", Type: "Sugar", Amount: ptr(0.25), AddAfterBoil: true},
		},
		Yeasts: []Yeast{
			{Name: "Irish Ale", Type: "Ale", Form: "Liquid", Amount: ptr(0.125), Laboratory: "Wyeast",
				ProductID: "1084", Attenuation: ptr(73.0), TimesCultured: ptr(0), AddToSecondary: ptr(false)},
		},
		Miscs: []Misc{
			{Name: "Gypsum", Type: "Water Agent", Use: "Mash", Amount: ptr(0.003), AmountIsWeight: true, BatchSize: ptr(10.0)},
		},
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	r := representativeRecipe()
	out, err := Encode([]Recipe{r}, true)
	require.NoError(t, err)

	back, err := Decode(out)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, r, back[0])
}

func TestEncodeRoundTripFixture(t *testing.T) {
	first, err := Decode(readFixture(t, "full.xml"))
	require.NoError(t, err)

	out, err := Encode(first, false)
	require.NoError(t, err)
	second, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncodeIsIdempotent(t *testing.T) {
	rs := []Recipe{representativeRecipe(), {Name: "Second"}}
	for _, pretty := range []bool{true, false} {
		a, err := Encode(rs, pretty)
		require.NoError(t, err)
		b, err := Encode(rs, pretty)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestEncodeCanonicalCompactOutput(t *testing.T) {
	r := Recipe{
		Name:      "Tiny",
		Version:   0,
		BatchSize: ptr(10.0),
		Notes:     "",
		Hops:      []Hop{{Name: "Nugget", Alpha: ptr(13.0), Time: ptr(60.0)}},
		Fermentables: []Fermentable{
			{Name: "DME", AddAfterBoil: false},
		},
	}
	out, err := Encode([]Recipe{r}, false)
	require.NoError(t, err)

	want := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<RECIPES><RECIPE>` +
		`<HOPS><HOP><NAME>Nugget</NAME><VERSION>1</VERSION><ALPHA>13</ALPHA><TIME>60</TIME></HOP></HOPS>` +
		`<FERMENTABLES><FERMENTABLE><NAME>DME</NAME><VERSION>1</VERSION><ADD_AFTER_BOIL>FALSE</ADD_AFTER_BOIL></FERMENTABLE></FERMENTABLES>` +
		`<NAME>Tiny</NAME><VERSION>1</VERSION><BATCH_SIZE>10</BATCH_SIZE>` +
		`</RECIPE></RECIPES>`
	assert.Equal(t, want, string(out))
	assert.Equal(t, 0, r.Version, "input is not mutated")
}

func TestEncodePrettyAndCompactCarrySameContent(t *testing.T) {
	rs := []Recipe{representativeRecipe()}
	pretty, err := Encode(rs, true)
	require.NoError(t, err)
	compact, err := Encode(rs, false)
	require.NoError(t, err)

	assert.Contains(t, string(pretty), "\n  <RECIPE>\n")
	assert.NotContains(t, string(compact), "\n")
	assert.True(t, strings.HasPrefix(string(pretty), `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.True(t, strings.HasPrefix(string(compact), `<?xml version="1.0" encoding="UTF-8"?>`))

	fromPretty, err := Decode(pretty)
	require.NoError(t, err)
	fromCompact, err := Decode(compact)
	require.NoError(t, err)
	assert.Equal(t, fromCompact, fromPretty)
}

func TestEncodeCustomIndent(t *testing.T) {
	out, err := New(Options{Indent: 4}).Encode([]Recipe{{Name: "x"}}, true)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n    <RECIPE>\n        <NAME>x</NAME>")
}

func TestEncodeEmptyInput(t *testing.T) {
	out, err := Encode(nil, true)
	assert.Nil(t, out)
	require.ErrorIs(t, err, ErrNoRecipes)

	var ee *EncodeError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, -1, ee.Index)

	_, err = Encode([]Recipe{}, false)
	require.ErrorIs(t, err, ErrNoRecipes)
}

func TestEncodeOmitsEmptyCollections(t *testing.T) {
	out, err := Encode([]Recipe{{Name: "Water", Version: 1}}, true)
	require.NoError(t, err)
	s := string(out)
	for _, tag := range []string{"<HOPS", "<FERMENTABLES", "<YEASTS", "<MISCS"} {
		assert.NotContains(t, s, tag)
	}
	assert.Contains(t, s, "<RECIPES>")
}

func TestEncodeNeverWritesEmptyTags(t *testing.T) {
	out, err := Encode([]Recipe{{Name: " \t ", Hops: []Hop{{}}}}, false)
	require.NoError(t, err)
	s := string(out)
	assert.NotContains(t, s, "<NAME")
	assert.NotContains(t, s, "/>")
	assert.Contains(t, s, "<HOP><VERSION>1</VERSION></HOP>")
}

func TestEncodeWrapsRecipeFailures(t *testing.T) {
	cases := []struct {
		name   string
		recipe Recipe
	}{
		{"nan", Recipe{Name: "Broken", OG: ptr(math.NaN())}},
		{"inf in addition", Recipe{Name: "Broken", Hops: []Hop{{Name: "h", Amount: ptr(math.Inf(1))}}}},
		{"control character", Recipe{Name: "Broken", Notes: "bell\x07"}},
		{"invalid utf8", Recipe{Name: "Broken", Miscs: []Misc{{Name: "\xff"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode([]Recipe{{Name: "Fine"}, tc.recipe}, true)
			require.ErrorIs(t, err, ErrUnencodable)

			var ee *EncodeError
			require.True(t, errors.As(err, &ee))
			assert.Equal(t, "Broken", ee.Recipe)
			assert.Equal(t, 1, ee.Index)
			assert.Contains(t, err.Error(), `"Broken"`)
		})
	}
}

func TestEncodeRoundTripBoundaryValues(t *testing.T) {
	r := Recipe{
		Name:               "Edge",
		Version:            -1,
		Efficiency:         ptr(110.0),
		BoilTime:           ptr(-5.0),
		BatchSize:          ptr(1e21),
		TasteRating:        ptr(5e-324),
		FermentationStages: ptr(math.MaxInt32),
		Hops:               []Hop{{Name: "Hot", Alpha: ptr(150.0), Time: ptr(-1.0)}},
		Yeasts:             []Yeast{{Name: "Odd", Attenuation: ptr(-3.0), MaxReuse: ptr(math.MinInt32)}},
		Fermentables:       []Fermentable{{Name: "Over", Yield: ptr(101.5)}},
	}
	for _, pretty := range []bool{true, false} {
		out, err := Encode([]Recipe{r}, pretty)
		require.NoError(t, err)
		back, err := Decode(out)
		require.NoError(t, err)
		require.Len(t, back, 1)
		assert.Equal(t, r, back[0])
	}
}

func TestEncodeEnforcesDecodeConstraints(t *testing.T) {
	c := New(Options{Constraints: strictRanges})

	_, err := c.Encode([]Recipe{{Name: "Fine"}, {Name: "Hot Mash", Efficiency: ptr(110.0)}}, false)
	var ee *EncodeError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "Hot Mash", ee.Recipe)
	assert.Equal(t, 1, ee.Index)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "recipe", ve.Entity)
	assert.Equal(t, "efficiency", ve.Fields[0].Field)

	_, err = c.Encode([]Recipe{{Name: "IPA", Hops: []Hop{{Name: "Hot", Alpha: ptr(150.0)}}}}, false)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "hop", ve.Entity)
	assert.Contains(t, err.Error(), "hop 0")

	// Whatever Encode accepts, Decode keeps.
	ok := Recipe{Name: "IPA", Version: 1, Efficiency: ptr(100.0), Hops: []Hop{{Name: "Citra", Alpha: ptr(12.0)}}}
	out, err := c.Encode([]Recipe{ok}, false)
	require.NoError(t, err)
	back, err := c.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, []Recipe{ok}, back)
}

func TestEncodeRoundTripKeepsFreeText(t *testing.T) {
	r := Recipe{
		Name:       " Spaced ",
		Version:    1,
		Notes:      "line1\r\nline2  ",
		TasteNotes: "\tcrisp\n",
		Hops:       []Hop{{Name: "Saaz", Notes: "a\rb"}},
	}
	for _, pretty := range []bool{true, false} {
		out, err := Encode([]Recipe{r}, pretty)
		if err != nil {
			t.Fatalf("Encode(pretty=%v): %v", pretty, err)
		}
		if !strings.Contains(string(out), "line1&#xD;\nline2  ") {
			t.Fatalf("CR not escaped in %q", out)
		}
		back, err := Decode(out)
		if err != nil {
			t.Fatalf("Decode(pretty=%v): %v", pretty, err)
		}
		got := back[0]
		if got.Name != r.Name || got.Notes != r.Notes || got.TasteNotes != r.TasteNotes {
			t.Fatalf("pretty=%v: got name=%q notes=%q taste=%q", pretty, got.Name, got.Notes, got.TasteNotes)
		}
		if got.Hops[0].Notes != "a\rb" {
			t.Fatalf("pretty=%v: hop notes = %q", pretty, got.Hops[0].Notes)
		}
	}
}

func TestEncodeSingleRecipeUsesPluralRoot(t *testing.T) {
	rs, err := Decode(readFixture(t, "single.xml"))
	require.NoError(t, err)
	out, err := Encode(rs, false)
	require.NoError(t, err)
	assert.Contains(t, string(out), "?><RECIPES><RECIPE>")
}

func TestDocumentCodec(t *testing.T) {
	dc := New(Options{}).Documents(false)
	b, err := dc.Encode([]Recipe{{Name: "Kölsch", Version: 1}})
	require.NoError(t, err)
	rs, err := dc.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, "Kölsch", rs[0].Name)
}
