// Package convention provides lint rules for writing conventions.
//
// Rules in this package:
//   - CV01: ASCII quotation marks instead of a quoting macro
//   - CV02: Canonical spelling of configured terms
//   - CV03: Words banned by the style guide
package convention
