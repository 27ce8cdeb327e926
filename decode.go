package brewxml

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/unkn0wn-root/brewxml/internal/lenient"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode turns doc into recipes in document order.
//
// Structural failures (size limit, malformed markup, wrong root, no RECIPE
// elements, nothing decodable) return *DecodeError. Leaves that fail
// coercion become absent. Additions and recipes that break a rule from
// Options.Constraints are skipped.
func (c *Codec) Decode(doc []byte) ([]Recipe, error) {
	elems, derr := c.locate(doc)
	if derr != nil {
		c.log.Debug("decode rejected", Fields{"err": derr.Error(), "bytes": len(doc)})
		return nil, derr
	}

	out := make([]Recipe, 0, len(elems))
	for i, el := range elems {
		r, err := c.decodeRecipe(i, el)
		if err != nil {
			c.log.Debug("recipe skipped", Fields{"index": i, "name": r.Name, "err": err.Error()})
			c.hooks.RecipeSkipped(i, r.Name, err)
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, decodeErr(ErrNoRecipesDecoded,
			"none of the %d RECIPE elements could be decoded", len(elems))
	}
	return out, nil
}

// locate parses doc and returns its RECIPE elements. It owns every
// structural check shared by Decode and Validate.
func (c *Codec) locate(doc []byte) ([]*etree.Element, *DecodeError) {
	if c.maxSize > 0 && len(doc) > c.maxSize {
		return nil, &DecodeError{
			Cause: fmt.Sprintf("document is %d bytes, limit is %d", len(doc), c.maxSize),
			Err:   ErrDocumentTooLarge,
		}
	}

	root, err := parse(doc)
	if err != nil {
		return nil, &DecodeError{Cause: fmt.Sprintf("malformed document: %v", err), Err: ErrMalformedDocument}
	}

	switch root.Tag {
	case tagRecipe:
		return []*etree.Element{root}, nil
	case tagRecipes:
		elems := root.SelectElements(tagRecipe)
		if len(elems) == 0 {
			return nil, decodeErr(ErrNoRecipeElements, "%s root contains no %s elements", tagRecipes, tagRecipe)
		}
		return elems, nil
	default:
		return nil, decodeErr(ErrUnexpectedRoot,
			"root element is <%s>, expected <%s> or <%s>", root.FullTag(), tagRecipes, tagRecipe)
	}
}

// parse reads doc into a tree and returns its single root element.
func parse(doc []byte) (*etree.Element, error) {
	doc = bytes.TrimPrefix(doc, utf8BOM)

	d := etree.NewDocument()
	d.ReadSettings.CharsetReader = charsetReader
	if err := d.ReadFromBytes(doc); err != nil {
		return nil, err
	}

	var root *etree.Element
	for _, tok := range d.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if root != nil {
				return nil, fmt.Errorf("multiple root elements <%s> and <%s>", root.FullTag(), t.FullTag())
			}
			root = t
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return nil, fmt.Errorf("text outside the root element")
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("no root element")
	}
	return root, nil
}

// charsetReader lets documents declare legacy encodings such as
// ISO-8859-1 or windows-1252, which several brewing tools still emit.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

func (c *Codec) decodeRecipe(index int, el *etree.Element) (Recipe, error) {
	r := c.reader(el, tagRecipe)
	rec := Recipe{
		Name:            r.Text("NAME"),
		Version:         r.IntOr("VERSION", 1),
		Type:            r.Text("TYPE"),
		Brewer:          r.Text("BREWER"),
		AssistantBrewer: r.Text("ASST_BREWER"),
		BatchSize:       r.Float("BATCH_SIZE"),
		BoilSize:        r.Float("BOIL_SIZE"),
		BoilTime:        r.Float("BOIL_TIME"),
		Efficiency:      r.Float("EFFICIENCY"),

		Hops:         decodeAdditions(c, index, el, hopKind),
		Fermentables: decodeAdditions(c, index, el, fermentableKind),
		Yeasts:       decodeAdditions(c, index, el, yeastKind),
		Miscs:        decodeAdditions(c, index, el, miscKind),

		Notes:       r.Text("NOTES"),
		TasteNotes:  r.Text("TASTE_NOTES"),
		TasteRating: r.Float("TASTE_RATING"),

		OG:               r.Float("OG"),
		FG:               r.Float("FG"),
		EstOG:            r.Float("EST_OG"),
		EstFG:            r.Float("EST_FG"),
		EstColor:         r.Float("EST_COLOR"),
		IBU:              r.Float("IBU"),
		IBUMethod:        r.Text("IBU_METHOD"),
		EstABV:           r.Float("EST_ABV"),
		ABV:              r.Float("ABV"),
		ActualEfficiency: r.Float("ACTUAL_EFFICIENCY"),

		FermentationStages: r.Int("FERMENTATION_STAGES"),
		PrimaryAge:         r.Float("PRIMARY_AGE"),
		PrimaryTemp:        r.Float("PRIMARY_TEMP"),
		SecondaryAge:       r.Float("SECONDARY_AGE"),
		SecondaryTemp:      r.Float("SECONDARY_TEMP"),
		TertiaryAge:        r.Float("TERTIARY_AGE"),
		TertiaryTemp:       r.Float("TERTIARY_TEMP"),
		Age:                r.Float("AGE"),
		AgeTemp:            r.Float("AGE_TEMP"),
		Date:               r.Text("DATE"),
		Carbonation:        r.Float("CARBONATION"),

		DisplayBatchSize:     r.Text("DISPLAY_BATCH_SIZE"),
		DisplayBoilSize:      r.Text("DISPLAY_BOIL_SIZE"),
		DisplayOG:            r.Text("DISPLAY_OG"),
		DisplayFG:            r.Text("DISPLAY_FG"),
		DisplayPrimaryTemp:   r.Text("DISPLAY_PRIMARY_TEMP"),
		DisplaySecondaryTemp: r.Text("DISPLAY_SECONDARY_TEMP"),
		DisplayTertiaryTemp:  r.Text("DISPLAY_TERTIARY_TEMP"),
		DisplayAgeTemp:       r.Text("DISPLAY_AGE_TEMP"),
	}
	if err := checkStruct(c.validate, "recipe", &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// decodeAdditions reads every record of kind k under parent's collection
// element, in document order, dropping records that break a constraint.
func decodeAdditions[T any](c *Codec, recipeIndex int, parent *etree.Element, k additionKind[T]) []T {
	coll := parent.SelectElement(k.collection)
	if coll == nil {
		return nil
	}
	var out []T
	for i, el := range coll.SelectElements(k.element) {
		v := k.read(c.reader(el, k.element))
		if err := checkStruct(c.validate, k.name, &v); err != nil {
			c.log.Debug("addition skipped", Fields{
				"kind": k.name, "recipe": recipeIndex, "index": i, "err": err.Error(),
			})
			c.hooks.AdditionSkipped(k.name, recipeIndex, i, err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func (c *Codec) reader(el *etree.Element, element string) lenient.Reader {
	return lenient.New(el, func(field, raw string) {
		c.hooks.FieldFallback(element, field, raw)
	})
}
