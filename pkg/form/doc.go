// Package form assembles typed fields into a positioned grid. The Builder
// accumulates field descriptors under an id-uniqueness constraint and
// produces a Layout, which places labels, controls, and validity markers
// into rows and columns and aggregates every field's validity into one
// observable flag.
package form
