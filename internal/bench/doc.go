// Package bench drives a synthetic dependency graph of observable cells.
//
// Build lays out the graph described by a config.Config: a row of source
// number cells, a number of computed layers where every cell sums a window of
// the layer below, a top cell summing the last layer, and an array cell with
// a computed total. Run performs the configured writes against it and reports
// how many evaluations and notifications they caused.
//
// Because every layer sums a circular window of the same width, the top cell
// always equals fanout^depth times the sum of the source values. Run checks
// this after the last write.
package bench
