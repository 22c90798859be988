// Package engine evaluates parsed schemas against value bags.
//
// Each field runs through a fixed sequence:
//
//  1. pre-processors transform the value in declared order;
//  2. an empty value takes the "default" parameter when one is declared;
//  3. an empty value without presence rules, or with "optional", is valid;
//  4. an empty value with presence rules is valid once they all pass;
//  5. the remaining rules run in order and the first failure is reported;
//  6. post-processors transform the value of a valid field.
//
// Failures are data: a Response with Valid false, the rule type and
// function, and the formatted message. Validate only returns an error for
// schemas built outside the parser and for rules whose external lookup
// failed.
//
// Nested schemas recurse with a fresh field context for the sub-object and
// report sub-field responses in Children, keyed by field name or, for
// arrayOfSchema, by index.
package engine
