package brewxml

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
)

// ErrUnencodable is wrapped when a value cannot be represented in BeerXML,
// such as a NaN amount or text containing characters XML 1.0 forbids.
var ErrUnencodable = errors.New("brewxml: value cannot be represented in XML")

const (
	xmlDecl       = `version="1.0" encoding="UTF-8"`
	recordVersion = "1"
)

// Encode serializes recipes under a RECIPES root, even for a single recipe.
// Fields follow a fixed canonical order and absent or empty values are
// omitted. pretty selects indented output; otherwise no whitespace is added
// between elements. Encoding the same recipes twice yields identical bytes.
//
// A recipe or addition that breaks a rule registered through
// Options.Constraints fails the whole call, so Encode never writes what
// Decode would drop.
func (c *Codec) Encode(recipes []Recipe, pretty bool) ([]byte, error) {
	if len(recipes) == 0 {
		return nil, &EncodeError{Index: -1, Err: ErrNoRecipes}
	}

	doc := etree.NewDocument()
	// Canonical text mode writes CR as &#xD; so CRLF notes survive the
	// reader's end-of-line normalisation.
	doc.WriteSettings.CanonicalText = true
	doc.CreateProcInst("xml", xmlDecl)
	root := doc.CreateElement(tagRecipes)
	for i := range recipes {
		if err := c.encodeRecipe(root, &recipes[i]); err != nil {
			c.log.Warn("encode failed", Fields{"index": i, "recipe": recipes[i].Name, "err": err.Error()})
			return nil, &EncodeError{Recipe: recipes[i].Name, Index: i, Err: err}
		}
	}

	if pretty {
		doc.Indent(c.indent)
	}
	b, err := doc.WriteToBytes()
	if err != nil {
		return nil, &EncodeError{Index: -1, Err: err}
	}
	return b, nil
}

func (c *Codec) encodeRecipe(parent *etree.Element, r *Recipe) error {
	if err := checkStruct(c.validate, "recipe", r); err != nil {
		return err
	}
	el := parent.CreateElement(tagRecipe)

	if err := encodeAdditions(c, el, r.Hops, hopKind); err != nil {
		return err
	}
	if err := encodeAdditions(c, el, r.Fermentables, fermentableKind); err != nil {
		return err
	}
	if err := encodeAdditions(c, el, r.Yeasts, yeastKind); err != nil {
		return err
	}
	if err := encodeAdditions(c, el, r.Miscs, miscKind); err != nil {
		return err
	}

	w := &fieldWriter{el: el}
	version := r.Version
	if version == 0 {
		version = 1
	}
	w.text("NAME", r.Name)
	w.int("VERSION", &version)
	w.text("TYPE", r.Type)
	w.text("BREWER", r.Brewer)
	w.text("ASST_BREWER", r.AssistantBrewer)
	w.float("BATCH_SIZE", r.BatchSize)
	w.float("BOIL_SIZE", r.BoilSize)
	w.float("BOIL_TIME", r.BoilTime)
	w.float("EFFICIENCY", r.Efficiency)
	w.text("NOTES", r.Notes)
	w.text("TASTE_NOTES", r.TasteNotes)
	w.float("TASTE_RATING", r.TasteRating)
	w.float("OG", r.OG)
	w.float("FG", r.FG)
	w.float("EST_OG", r.EstOG)
	w.float("EST_FG", r.EstFG)
	w.float("EST_COLOR", r.EstColor)
	w.float("IBU", r.IBU)
	w.text("IBU_METHOD", r.IBUMethod)
	w.float("EST_ABV", r.EstABV)
	w.float("ABV", r.ABV)
	w.float("ACTUAL_EFFICIENCY", r.ActualEfficiency)
	w.int("FERMENTATION_STAGES", r.FermentationStages)
	w.float("PRIMARY_AGE", r.PrimaryAge)
	w.float("PRIMARY_TEMP", r.PrimaryTemp)
	w.float("SECONDARY_AGE", r.SecondaryAge)
	w.float("SECONDARY_TEMP", r.SecondaryTemp)
	w.float("TERTIARY_AGE", r.TertiaryAge)
	w.float("TERTIARY_TEMP", r.TertiaryTemp)
	w.float("AGE", r.Age)
	w.float("AGE_TEMP", r.AgeTemp)
	w.text("DATE", r.Date)
	w.float("CARBONATION", r.Carbonation)
	w.text("DISPLAY_BATCH_SIZE", r.DisplayBatchSize)
	w.text("DISPLAY_BOIL_SIZE", r.DisplayBoilSize)
	w.text("DISPLAY_OG", r.DisplayOG)
	w.text("DISPLAY_FG", r.DisplayFG)
	w.text("DISPLAY_PRIMARY_TEMP", r.DisplayPrimaryTemp)
	w.text("DISPLAY_SECONDARY_TEMP", r.DisplaySecondaryTemp)
	w.text("DISPLAY_TERTIARY_TEMP", r.DisplayTertiaryTemp)
	w.text("DISPLAY_AGE_TEMP", r.DisplayAgeTemp)
	return w.err
}

// encodeAdditions writes the collection element for kind k. An empty
// sequence writes nothing at all.
func encodeAdditions[T any](c *Codec, parent *etree.Element, items []T, k additionKind[T]) error {
	if len(items) == 0 {
		return nil
	}
	coll := parent.CreateElement(k.collection)
	for i := range items {
		if err := checkStruct(c.validate, k.name, &items[i]); err != nil {
			return fmt.Errorf("%s %d: %w", k.name, i, err)
		}
		w := &fieldWriter{el: coll.CreateElement(k.element)}
		k.write(w, &items[i])
		if w.err != nil {
			return fmt.Errorf("%s %d: %w", k.name, i, w.err)
		}
	}
	return nil
}

// fieldWriter appends leaf elements to el. The first unencodable value is
// kept in err; later writes become no-ops.
type fieldWriter struct {
	el  *etree.Element
	err error
}

// record writes the NAME and record VERSION that open every addition.
func (w *fieldWriter) record(name string) {
	w.text("NAME", name)
	w.leaf("VERSION", recordVersion)
}

// text writes v verbatim. Whitespace-only text reads back as absent, so it
// is omitted like the empty string.
func (w *fieldWriter) text(tag, v string) {
	if strings.TrimSpace(v) == "" || w.err != nil {
		return
	}
	if !xmlSafe(v) {
		w.err = fmt.Errorf("%s: %w: invalid character data", tag, ErrUnencodable)
		return
	}
	w.leaf(tag, v)
}

func (w *fieldWriter) float(tag string, v *float64) {
	if v == nil || w.err != nil {
		return
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		w.err = fmt.Errorf("%s: %w: %v", tag, ErrUnencodable, *v)
		return
	}
	w.leaf(tag, strconv.FormatFloat(*v, 'f', -1, 64))
}

func (w *fieldWriter) int(tag string, v *int) {
	if v == nil || w.err != nil {
		return
	}
	w.leaf(tag, strconv.Itoa(*v))
}

func (w *fieldWriter) bool(tag string, v bool) {
	if w.err != nil {
		return
	}
	if v {
		w.leaf(tag, "TRUE")
	} else {
		w.leaf(tag, "FALSE")
	}
}

func (w *fieldWriter) optBool(tag string, v *bool) {
	if v != nil {
		w.bool(tag, *v)
	}
}

func (w *fieldWriter) leaf(tag, text string) {
	w.el.CreateElement(tag).SetText(text)
}

// xmlSafe reports whether s is valid UTF-8 made only of characters allowed
// by the XML 1.0 Char production.
func xmlSafe(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == 0x9 || r == 0xA || r == 0xD:
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}
