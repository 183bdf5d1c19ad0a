// Package accessor generates fast field accessors.
//
// Create synthesizes, for one field of one struct type, a unit with a typed
// getter and setter for every primitive sort plus a generic pair taking any.
// The unit is materialized through a loader.Registry in the scope of its
// field, so each generated name is defined exactly once.
//
// Reads may narrow: a field of sort F can be read through the getter of any
// numeric sort of lower or equal rank. Writes may widen: a value of sort T can
// be stored into a field of higher or equal rank. Every other typed entry
// point exists but fails with ErrIllegalArgument.
//
//	f, _ := accessor.FieldFor[Box]("count")
//	acc, _ := accessor.Create(f)
//	n, _ := acc.GetInt32(&box)
package accessor
