package goquery

import "github.com/fwojciec/docmodel"

// ValidateSchema compiles every XPath and CSS rule of schema and of the
// schemas it composes, so malformed rules fail before any extraction.
func ValidateSchema(schema *docmodel.Schema) error {
	return validateFields(schema.Fields(), make(map[*docmodel.Schema]bool))
}

func validateFields(fields []*docmodel.Field, seen map[*docmodel.Schema]bool) error {
	for _, f := range fields {
		var err error
		switch f.Kind() {
		case docmodel.KindXPath:
			_, err = compileXPath(f.Rule())
		case docmodel.KindCSS:
			_, err = compileCSS(f.Rule())
		}
		if err != nil {
			return err
		}

		if m := f.Model(); m != nil && !seen[m] {
			seen[m] = true
			if err := validateFields(m.Fields(), seen); err != nil {
				return err
			}
		}
	}
	return nil
}
