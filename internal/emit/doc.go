// Package emit assembles, verifies and links accessor programs.
//
// A Program is the generated code of one accessor unit: a field layout and
// one instruction sequence per entry point. Linking verifies the sequences
// against a simulated sort stack and binds every entry to a closure
// instantiated from a generic helper for the exact (field sort, access sort)
// pair, so the hot path never dispatches on kinds.
//
// Programs can also be rendered as a listing or exported as YAML or JSON.
package emit
