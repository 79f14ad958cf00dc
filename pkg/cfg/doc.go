// Package cfg builds directed control-flow graphs from simplified,
// statement-oriented source text.
//
// The input may use brace-delimited syntax (C, Java, JavaScript, ...) or
// indentation-delimited syntax (Python, pseudocode). The mode is inferred
// from the text, never configured. Parsing is deliberately shallow: there is
// no expression parsing, no symbol resolution, and no validation that the
// input is well-formed. Any line that does not start with a recognized
// control-flow keyword is treated as opaque statement text and batched into
// a basic block.
//
// The resulting graph has exactly one entry node (START) and models
// conditionals, conditional chains (if/elif/else), loops with back-edges,
// and early returns. It is the input for metrics calculation (package
// metrics) and diagram rendering (package render).
package cfg
