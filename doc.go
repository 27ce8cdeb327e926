// Package brewxml converts between BeerXML documents and a validated recipe
// value model, in both directions.
//
// Components:
//   - Validate: cheap structural pre-check returning a Report, never an error.
//   - Decode:   bytes -> []Recipe. Best effort per element: a bad numeric
//     leaf becomes absent, text is kept as written, and an addition or
//     recipe breaking a caller constraint is skipped. Only structural
//     problems fail the call (*DecodeError).
//   - Encode:   []Recipe -> bytes. Always a RECIPES root, canonical field
//     order, empty values omitted. All or nothing (*EncodeError).
//
// Wire shape:
//
//	<RECIPES>                 (or a bare <RECIPE> root on decode)
//	  <RECIPE>
//	    <HOPS><HOP>...</HOP></HOPS>
//	    <FERMENTABLES><FERMENTABLE>...</FERMENTABLE></FERMENTABLES>
//	    <YEASTS><YEAST>...</YEAST></YEASTS>
//	    <MISCS><MISC>...</MISC></MISCS>
//	    <NAME>...</NAME><VERSION>1</VERSION>...
//	  </RECIPE>
//	</RECIPES>
//
// The codec is stateless: a Codec only holds immutable options, so one value
// may be shared by any number of goroutines. Caching of decoded uploads and
// encoded exports lives in the doccache package.
package brewxml
