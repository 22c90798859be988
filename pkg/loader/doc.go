// Package loader reads schema documents from JSON and YAML.
//
// Schemas decode into *schema.Object rather than plain maps so that the rule
// order written in the document is the order the engine evaluates:
//
//	obj, err := loader.LoadFile("schemas/signup.yaml")
//	if err != nil {
//		return err
//	}
//	s, err := v.Parse(obj)
//
// DecodeValues and LoadValuesFile read the data side, for example the
// payload given to "rulekit validate --data".
package loader
