package brewxml

import (
	"errors"
	"fmt"
)

// Structural and export failures. DecodeError and EncodeError wrap these, so
// callers can test with errors.Is.
var (
	ErrMalformedDocument = errors.New("brewxml: document is not well-formed XML")
	ErrUnexpectedRoot    = errors.New("brewxml: unexpected root element")
	ErrNoRecipeElements  = errors.New("brewxml: no RECIPE elements found")
	ErrNoRecipesDecoded  = errors.New("brewxml: no recipes could be decoded")
	ErrDocumentTooLarge  = errors.New("brewxml: document exceeds size limit")
	ErrNoRecipes         = errors.New("brewxml: no recipes to encode")
)

// DecodeError is the single structural error type returned by Decode.
type DecodeError struct {
	Cause string // human readable
	Err   error  // one of the Err* sentinels, possibly wrapping a parser error
}

func (e *DecodeError) Error() string {
	if e.Cause == "" {
		return fmt.Sprintf("decode beerxml: %v", e.Err)
	}
	return fmt.Sprintf("decode beerxml: %s", e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError is returned by Encode. Recipe names the recipe that failed to
// serialize; it is empty when the failure is not tied to one recipe.
type EncodeError struct {
	Recipe string
	Index  int
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Recipe == "" && e.Index < 0 {
		return fmt.Sprintf("encode beerxml: %v", e.Err)
	}
	return fmt.Sprintf("encode beerxml: recipe %d %q: %v", e.Index, e.Recipe, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

func decodeErr(sentinel error, format string, args ...any) *DecodeError {
	return &DecodeError{Cause: fmt.Sprintf(format, args...), Err: sentinel}
}
