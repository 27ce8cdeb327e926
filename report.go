package brewxml

import "fmt"

// Report is the result of Validate. Errors make a document invalid;
// warnings are informational and never change Valid.
type Report struct {
	Valid       bool     `json:"valid"`
	RecipeCount int      `json:"recipe_count"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
}

// Validate performs a structural pre-check of doc without decoding fields.
// It never fails: malformed markup, a wrong root or an empty collection are
// reported as errors, recipes lacking NAME or VERSION as warnings.
func (c *Codec) Validate(doc []byte) Report {
	rep := Report{Errors: []string{}, Warnings: []string{}}

	elems, derr := c.locate(doc)
	if derr != nil {
		rep.Errors = append(rep.Errors, derr.Cause)
		return rep
	}

	rep.RecipeCount = len(elems)
	for i, el := range elems {
		r := c.reader(el, tagRecipe)
		for _, tag := range []string{"NAME", "VERSION"} {
			switch {
			case !r.Has(tag):
				rep.Warnings = append(rep.Warnings, fmt.Sprintf("recipe %d: missing %s", i+1, tag))
			case r.Text(tag) == "":
				rep.Warnings = append(rep.Warnings, fmt.Sprintf("recipe %d: empty %s", i+1, tag))
			}
		}
	}
	rep.Valid = rep.RecipeCount > 0
	return rep
}
