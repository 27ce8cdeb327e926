package brewxml

// Recipe is a decoded or to-be-encoded BeerXML recipe.
//
// Text fields use the empty string for "absent"; optional numbers are nil
// when absent. Additions keep document order on decode. A Recipe is a plain
// value: the codec never mutates one it was given.
//
// Numbers carry any finite value; the codec applies no range checks of its
// own. Callers that need stricter rules register them through
// Options.Constraints, and Decode and Encode then enforce the same rules.
type Recipe struct {
	Name            string   `json:"name"`
	Version         int      `json:"version"`
	Type            string   `json:"type,omitempty"`
	Brewer          string   `json:"brewer,omitempty"`
	AssistantBrewer string   `json:"assistant_brewer,omitempty"`
	BatchSize       *float64 `json:"batch_size,omitempty"`
	BoilSize        *float64 `json:"boil_size,omitempty"`
	BoilTime        *float64 `json:"boil_time,omitempty"`
	Efficiency      *float64 `json:"efficiency,omitempty"`

	Hops         []Hop         `json:"hops,omitempty"`
	Fermentables []Fermentable `json:"fermentables,omitempty"`
	Yeasts       []Yeast       `json:"yeasts,omitempty"`
	Miscs        []Misc        `json:"miscs,omitempty"`

	Notes       string   `json:"notes,omitempty"`
	TasteNotes  string   `json:"taste_notes,omitempty"`
	TasteRating *float64 `json:"taste_rating,omitempty"`

	OG               *float64 `json:"og,omitempty"`
	FG               *float64 `json:"fg,omitempty"`
	EstOG            *float64 `json:"est_og,omitempty"`
	EstFG            *float64 `json:"est_fg,omitempty"`
	EstColor         *float64 `json:"est_color,omitempty"`
	IBU              *float64 `json:"ibu,omitempty"`
	IBUMethod        string   `json:"ibu_method,omitempty"`
	EstABV           *float64 `json:"est_abv,omitempty"`
	ABV              *float64 `json:"abv,omitempty"`
	ActualEfficiency *float64 `json:"actual_efficiency,omitempty"`

	FermentationStages *int     `json:"fermentation_stages,omitempty"`
	PrimaryAge         *float64 `json:"primary_age,omitempty"`
	PrimaryTemp        *float64 `json:"primary_temp,omitempty"`
	SecondaryAge       *float64 `json:"secondary_age,omitempty"`
	SecondaryTemp      *float64 `json:"secondary_temp,omitempty"`
	TertiaryAge        *float64 `json:"tertiary_age,omitempty"`
	TertiaryTemp       *float64 `json:"tertiary_temp,omitempty"`
	Age                *float64 `json:"age,omitempty"`
	AgeTemp            *float64 `json:"age_temp,omitempty"`
	Date               string   `json:"date,omitempty"`
	Carbonation        *float64 `json:"carbonation,omitempty"`

	// Pre-formatted values carried through untouched.
	DisplayBatchSize     string `json:"display_batch_size,omitempty"`
	DisplayBoilSize      string `json:"display_boil_size,omitempty"`
	DisplayOG            string `json:"display_og,omitempty"`
	DisplayFG            string `json:"display_fg,omitempty"`
	DisplayPrimaryTemp   string `json:"display_primary_temp,omitempty"`
	DisplaySecondaryTemp string `json:"display_secondary_temp,omitempty"`
	DisplayTertiaryTemp  string `json:"display_tertiary_temp,omitempty"`
	DisplayAgeTemp       string `json:"display_age_temp,omitempty"`
}

// Hop is a single hop addition. Time is in minutes, or days for dry hops.
type Hop struct {
	Name          string   `json:"name"`
	Alpha         *float64 `json:"alpha,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	Use           string   `json:"use,omitempty"`
	Time          *float64 `json:"time,omitempty"`
	Form          string   `json:"form,omitempty"`
	Origin        string   `json:"origin,omitempty"`
	Beta          *float64 `json:"beta,omitempty"`
	HSI           *float64 `json:"hsi,omitempty"`
	Humulene      *float64 `json:"humulene,omitempty"`
	Caryophyllene *float64 `json:"caryophyllene,omitempty"`
	Cohumulone    *float64 `json:"cohumulone,omitempty"`
	Myrcene       *float64 `json:"myrcene,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	DisplayAmount string   `json:"display_amount,omitempty"`
	DisplayTime   string   `json:"display_time,omitempty"`
}

// Fermentable is a grain, extract, sugar or adjunct addition.
type Fermentable struct {
	Name           string   `json:"name"`
	Type           string   `json:"type,omitempty"`
	Amount         *float64 `json:"amount,omitempty"`
	Yield          *float64 `json:"yield,omitempty"`
	Color          *float64 `json:"color,omitempty"`
	AddAfterBoil   bool     `json:"add_after_boil"`
	RecommendMash  *bool    `json:"recommend_mash,omitempty"`
	Origin         string   `json:"origin,omitempty"`
	Supplier       string   `json:"supplier,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	CoarseFineDiff *float64 `json:"coarse_fine_diff,omitempty"`
	Moisture       *float64 `json:"moisture,omitempty"`
	DiastaticPower *float64 `json:"diastatic_power,omitempty"`
	Protein        *float64 `json:"protein,omitempty"`
	MaxInBatch     *float64 `json:"max_in_batch,omitempty"`
	DisplayAmount  string   `json:"display_amount,omitempty"`
	DisplayColor   string   `json:"display_color,omitempty"`
}

// Yeast is a yeast or bacteria culture.
type Yeast struct {
	Name           string   `json:"name"`
	Type           string   `json:"type,omitempty"`
	Form           string   `json:"form,omitempty"`
	Amount         *float64 `json:"amount,omitempty"`
	AmountIsWeight bool     `json:"amount_is_weight"`
	Laboratory     string   `json:"laboratory,omitempty"`
	ProductID      string   `json:"product_id,omitempty"`
	MinTemperature *float64 `json:"min_temperature,omitempty"`
	MaxTemperature *float64 `json:"max_temperature,omitempty"`
	Flocculation   string   `json:"flocculation,omitempty"`
	Attenuation    *float64 `json:"attenuation,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	BestFor        string   `json:"best_for,omitempty"`
	TimesCultured  *int     `json:"times_cultured,omitempty"`
	MaxReuse       *int     `json:"max_reuse,omitempty"`
	AddToSecondary *bool    `json:"add_to_secondary,omitempty"`
	DisplayAmount  string   `json:"display_amount,omitempty"`
	DisplayMinTemp string   `json:"display_min_temp,omitempty"`
	DisplayMaxTemp string   `json:"display_max_temp,omitempty"`
}

// Misc is a spice, fining, water agent or other miscellaneous addition.
// BatchSize overrides the recipe batch size for independently scaled items.
type Misc struct {
	Name           string   `json:"name"`
	Type           string   `json:"type,omitempty"`
	Use            string   `json:"use,omitempty"`
	Amount         *float64 `json:"amount,omitempty"`
	Time           *float64 `json:"time,omitempty"`
	AmountIsWeight bool     `json:"amount_is_weight"`
	UseFor         string   `json:"use_for,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	DisplayAmount  string   `json:"display_amount,omitempty"`
	DisplayTime    string   `json:"display_time,omitempty"`
	BatchSize      *float64 `json:"batch_size,omitempty"`
}
