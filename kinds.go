package brewxml

import (
	"github.com/unkn0wn-root/brewxml/internal/lenient"
)

// additionKind describes one ingredient category: where it lives on the wire
// and how its fields are read and written. Field order inside write is the
// canonical encode order.
type additionKind[T any] struct {
	name       string // for logs and hooks
	collection string // wrapping element, e.g. HOPS
	element    string // record element, e.g. HOP
	read       func(r lenient.Reader) T
	write      func(w *fieldWriter, v *T)
}

var hopKind = additionKind[Hop]{
	name:       "hop",
	collection: "HOPS",
	element:    "HOP",
	read: func(r lenient.Reader) Hop {
		return Hop{
			Name:          r.Text("NAME"),
			Alpha:         r.Float("ALPHA"),
			Amount:        r.Float("AMOUNT"),
			Use:           r.Text("USE"),
			Time:          r.Float("TIME"),
			Form:          r.Text("FORM"),
			Origin:        r.Text("ORIGIN"),
			Beta:          r.Float("BETA"),
			HSI:           r.Float("HSI"),
			Humulene:      r.Float("HUMULENE"),
			Caryophyllene: r.Float("CARYOPHYLLENE"),
			Cohumulone:    r.Float("COHUMULONE"),
			Myrcene:       r.Float("MYRCENE"),
			Notes:         r.Text("NOTES"),
			DisplayAmount: r.Text("DISPLAY_AMOUNT"),
			DisplayTime:   r.Text("DISPLAY_TIME"),
		}
	},
	write: func(w *fieldWriter, h *Hop) {
		w.record(h.Name)
		w.float("ALPHA", h.Alpha)
		w.float("AMOUNT", h.Amount)
		w.text("USE", h.Use)
		w.float("TIME", h.Time)
		w.text("FORM", h.Form)
		w.text("ORIGIN", h.Origin)
		w.float("BETA", h.Beta)
		w.float("HSI", h.HSI)
		w.float("HUMULENE", h.Humulene)
		w.float("CARYOPHYLLENE", h.Caryophyllene)
		w.float("COHUMULONE", h.Cohumulone)
		w.float("MYRCENE", h.Myrcene)
		w.text("NOTES", h.Notes)
		w.text("DISPLAY_AMOUNT", h.DisplayAmount)
		w.text("DISPLAY_TIME", h.DisplayTime)
	},
}

var fermentableKind = additionKind[Fermentable]{
	name:       "fermentable",
	collection: "FERMENTABLES",
	element:    "FERMENTABLE",
	read: func(r lenient.Reader) Fermentable {
		return Fermentable{
			Name:           r.Text("NAME"),
			Type:           r.Text("TYPE"),
			Amount:         r.Float("AMOUNT"),
			Yield:          r.Float("YIELD"),
			Color:          r.Float("COLOR"),
			AddAfterBoil:   r.Bool("ADD_AFTER_BOIL"),
			RecommendMash:  r.OptBool("RECOMMEND_MASH"),
			Origin:         r.Text("ORIGIN"),
			Supplier:       r.Text("SUPPLIER"),
			Notes:          r.Text("NOTES"),
			CoarseFineDiff: r.Float("COARSE_FINE_DIFF"),
			Moisture:       r.Float("MOISTURE"),
			DiastaticPower: r.Float("DIASTATIC_POWER"),
			Protein:        r.Float("PROTEIN"),
			MaxInBatch:     r.Float("MAX_IN_BATCH"),
			DisplayAmount:  r.Text("DISPLAY_AMOUNT"),
			DisplayColor:   r.Text("DISPLAY_COLOR"),
		}
	},
	write: func(w *fieldWriter, f *Fermentable) {
		w.record(f.Name)
		w.text("TYPE", f.Type)
		w.float("AMOUNT", f.Amount)
		w.float("YIELD", f.Yield)
		w.float("COLOR", f.Color)
		w.bool("ADD_AFTER_BOIL", f.AddAfterBoil)
		w.optBool("RECOMMEND_MASH", f.RecommendMash)
		w.text("ORIGIN", f.Origin)
		w.text("SUPPLIER", f.Supplier)
		w.text("NOTES", f.Notes)
		w.float("COARSE_FINE_DIFF", f.CoarseFineDiff)
		w.float("MOISTURE", f.Moisture)
		w.float("DIASTATIC_POWER", f.DiastaticPower)
		w.float("PROTEIN", f.Protein)
		w.float("MAX_IN_BATCH", f.MaxInBatch)
		w.text("DISPLAY_AMOUNT", f.DisplayAmount)
		w.text("DISPLAY_COLOR", f.DisplayColor)
	},
}

var yeastKind = additionKind[Yeast]{
	name:       "yeast",
	collection: "YEASTS",
	element:    "YEAST",
	read: func(r lenient.Reader) Yeast {
		return Yeast{
			Name:           r.Text("NAME"),
			Type:           r.Text("TYPE"),
			Form:           r.Text("FORM"),
			Amount:         r.Float("AMOUNT"),
			AmountIsWeight: r.Bool("AMOUNT_IS_WEIGHT"),
			Laboratory:     r.Text("LABORATORY"),
			ProductID:      r.Text("PRODUCT_ID"),
			MinTemperature: r.Float("MIN_TEMPERATURE"),
			MaxTemperature: r.Float("MAX_TEMPERATURE"),
			Flocculation:   r.Text("FLOCCULATION"),
			Attenuation:    r.Float("ATTENUATION"),
			Notes:          r.Text("NOTES"),
			BestFor:        r.Text("BEST_FOR"),
			TimesCultured:  r.Int("TIMES_CULTURED"),
			MaxReuse:       r.Int("MAX_REUSE"),
			AddToSecondary: r.OptBool("ADD_TO_SECONDARY"),
			DisplayAmount:  r.Text("DISP_AMOUNT"),
			DisplayMinTemp: r.Text("DISP_MIN_TEMP"),
			DisplayMaxTemp: r.Text("DISP_MAX_TEMP"),
		}
	},
	write: func(w *fieldWriter, y *Yeast) {
		w.record(y.Name)
		w.text("TYPE", y.Type)
		w.text("FORM", y.Form)
		w.float("AMOUNT", y.Amount)
		w.bool("AMOUNT_IS_WEIGHT", y.AmountIsWeight)
		w.text("LABORATORY", y.Laboratory)
		w.text("PRODUCT_ID", y.ProductID)
		w.float("MIN_TEMPERATURE", y.MinTemperature)
		w.float("MAX_TEMPERATURE", y.MaxTemperature)
		w.text("FLOCCULATION", y.Flocculation)
		w.float("ATTENUATION", y.Attenuation)
		w.text("NOTES", y.Notes)
		w.text("BEST_FOR", y.BestFor)
		w.int("TIMES_CULTURED", y.TimesCultured)
		w.int("MAX_REUSE", y.MaxReuse)
		w.optBool("ADD_TO_SECONDARY", y.AddToSecondary)
		w.text("DISP_AMOUNT", y.DisplayAmount)
		w.text("DISP_MIN_TEMP", y.DisplayMinTemp)
		w.text("DISP_MAX_TEMP", y.DisplayMaxTemp)
	},
}

var miscKind = additionKind[Misc]{
	name:       "misc",
	collection: "MISCS",
	element:    "MISC",
	read: func(r lenient.Reader) Misc {
		return Misc{
			Name:           r.Text("NAME"),
			Type:           r.Text("TYPE"),
			Use:            r.Text("USE"),
			Amount:         r.Float("AMOUNT"),
			Time:           r.Float("TIME"),
			AmountIsWeight: r.Bool("AMOUNT_IS_WEIGHT"),
			UseFor:         r.Text("USE_FOR"),
			Notes:          r.Text("NOTES"),
			DisplayAmount:  r.Text("DISPLAY_AMOUNT"),
			DisplayTime:    r.Text("DISPLAY_TIME"),
			BatchSize:      r.Float("BATCH_SIZE"),
		}
	},
	write: func(w *fieldWriter, m *Misc) {
		w.record(m.Name)
		w.text("TYPE", m.Type)
		w.text("USE", m.Use)
		w.float("AMOUNT", m.Amount)
		w.float("TIME", m.Time)
		w.bool("AMOUNT_IS_WEIGHT", m.AmountIsWeight)
		w.text("USE_FOR", m.UseFor)
		w.text("NOTES", m.Notes)
		w.text("DISPLAY_AMOUNT", m.DisplayAmount)
		w.text("DISPLAY_TIME", m.DisplayTime)
		w.float("BATCH_SIZE", m.BatchSize)
	},
}
