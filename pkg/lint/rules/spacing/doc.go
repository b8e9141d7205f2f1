// Package spacing provides lint rules for spacing around abbreviations and
// citation macros.
//
// Rules in this package:
//   - SP01: e.g./i.e. need a comma or an explicit inter-word space
//   - SP02: No whitespace before a citation macro
//   - SP03: A tilde before a citation macro
package spacing
