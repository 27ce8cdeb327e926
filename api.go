package brewxml

import (
	"github.com/go-playground/validator/v10"
)

const (
	defaultIndent = 2

	// Root and record tags.
	tagRecipes = "RECIPES"
	tagRecipe  = "RECIPE"
)

// Options tune a Codec. The zero value is ready to use.
type Options struct {
	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used

	// MaxDocumentSize is the largest document Decode and Validate accept,
	// in bytes. <= 0 disables the ceiling.
	MaxDocumentSize int

	// Indent is the number of spaces per level in pretty output; 0 => 2.
	Indent int

	// Constraints registers extra rules on the Codec's validator, e.g.
	// RegisterStructValidation for Recipe or Hop. Decode skips elements that
	// break a rule; Encode fails on them. Field names in FieldError are the
	// json tag names.
	Constraints func(v *validator.Validate)
}

// Codec decodes, encodes and validates BeerXML documents. It holds only
// immutable configuration and is safe for concurrent use.
type Codec struct {
	log      Logger
	hooks    Hooks
	validate *validator.Validate
	maxSize  int
	indent   int
}

// New returns a Codec configured by opts.
func New(opts Options) *Codec {
	v := newValidator()
	if opts.Constraints != nil {
		opts.Constraints(v)
	}
	return &Codec{
		log:      coalesce[Logger](opts.Logger, NopLogger{}),
		hooks:    coalesce[Hooks](opts.Hooks, NopHooks{}),
		validate: v,
		maxSize:  opts.MaxDocumentSize,
		indent:   coalesce(opts.Indent, defaultIndent),
	}
}

// Validate runs the structural pre-check with default options.
func Validate(doc []byte) Report { return New(Options{}).Validate(doc) }

// Decode decodes doc with default options.
func Decode(doc []byte) ([]Recipe, error) { return New(Options{}).Decode(doc) }

// Encode encodes recipes with default options.
func Encode(recipes []Recipe, pretty bool) ([]byte, error) {
	return New(Options{}).Encode(recipes, pretty)
}
