// Package naming derives output paths for processed images and resolves
// collisions when several inputs in one run map to the same output.
//
// Outputs sit next to their input as <stem><suffix><ext> unless an explicit
// path is given. The suffixes double as markers so watch mode can skip files
// pixr wrote itself (see IsDerived).
package naming
