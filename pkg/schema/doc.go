// Package schema implements the typed garment parameter schema.
//
// A schema is an ordered tree of parameter nodes. Each leaf declares a value
// type, a valid domain and a sampling weight. The package validates and
// normalizes raw design parameter trees into domain.DesignSpecification
// values, resolves asymmetric left/right overrides, and can sample random
// design specifications from the declared domains.
//
// Validation fails at the first offending leaf with a *ValidationError
// carrying the dotted path of that leaf:
//
//	spec, err := schema.Validate(raw)
//	var verr *schema.ValidationError
//	if errors.As(err, &verr) {
//	    log.Printf("bad parameter %s: %s", verr.Path, verr.Reason)
//	}
package schema
