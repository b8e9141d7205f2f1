// Package references provides lint rules for cross-references and labels.
//
// Rules in this package:
//   - RF01: \cref/\Cref capitalization by sentence position
//   - RF02: Every sectioning command carries a matching \label
//   - RF03: Labels defined more than once in a file
package references
