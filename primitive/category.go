package primitive

import "maps"

type CategoryEnum int

type ConversionPair struct {
	From, To SortEnum
}

const (
	CategoryIdentity  CategoryEnum = 1 << iota // same sort on both sides
	CategoryNarrowing                          // numeric, target rank lower than source rank
	CategoryWidening                           // numeric, target rank higher than source rank
	CategoryBoxing                             // primitive -> object: value is wrapped into an interface
	CategoryUnboxing                           // object -> primitive: interface is unwrapped and converted
	CategoryReference                          // object -> object: assignability check on the reference

	CategoryAll  = (1 << iota) - 1 //all categories combined
	CategoryNone = 0               // no categories selected
)

var conversionPairs map[CategoryEnum]map[ConversionPair]struct{}

func init() {
	conversionPairs = make(map[CategoryEnum]map[ConversionPair]struct{})

	conversionPairs[CategoryIdentity] = map[ConversionPair]struct{}{}
	for _, s := range Sorts {
		if s == SortObject {
			continue
		}

		conversionPairs[CategoryIdentity][ConversionPair{s, s}] = struct{}{}
	}

	// CategoryNarrowing, CategoryWidening: rank ordered numeric conversions
	conversionPairs[CategoryNarrowing] = map[ConversionPair]struct{}{}
	conversionPairs[CategoryWidening] = map[ConversionPair]struct{}{}
	for fromSort := SortEnum(0); int(fromSort) < SortTotal; fromSort++ {
		if !fromSort.IsNumber() {
			continue
		}

		for toSort := SortEnum(0); int(toSort) < SortTotal; toSort++ {
			if !toSort.IsNumber() {
				continue
			}

			pair := ConversionPair{fromSort, toSort}
			switch {
			case toSort.Rank() < fromSort.Rank():
				conversionPairs[CategoryNarrowing][pair] = struct{}{}
			case toSort.Rank() > fromSort.Rank():
				conversionPairs[CategoryWidening][pair] = struct{}{}
			}
		}
	}

	// CategoryBoxing, CategoryUnboxing
	conversionPairs[CategoryBoxing] = map[ConversionPair]struct{}{}
	conversionPairs[CategoryUnboxing] = map[ConversionPair]struct{}{}
	for _, s := range Sorts {
		if s == SortObject {
			continue
		}

		conversionPairs[CategoryBoxing][ConversionPair{s, SortObject}] = struct{}{}
		conversionPairs[CategoryUnboxing][ConversionPair{SortObject, s}] = struct{}{}
	}

	conversionPairs[CategoryReference] = map[ConversionPair]struct{}{
		{SortObject, SortObject}: {},
	}
}

// Classify returns the single category the pair belongs to, or CategoryNone
// when no conversion exists (bool and char never cross-convert).
func Classify(pair ConversionPair) CategoryEnum {
	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		if _, ok := conversionPairs[category][pair]; ok {
			return category
		}
	}

	return CategoryNone
}

// Allowed returns the union of the pairs of every selected category.
func Allowed(allowed CategoryEnum) map[ConversionPair]struct{} {
	res := map[ConversionPair]struct{}{}

	for category := CategoryEnum(1); category&CategoryAll > 0; category <<= 1 {
		if allowed&category == 0 {
			continue
		}

		maps.Copy(res, conversionPairs[category])
	}

	return res
}

// IsCastable reports whether a field of sort field can be read as, or written
// from, sort access without going through the generic object path.
//
// Only equal sorts and numeric pairs with access rank not above field rank
// qualify: reads may narrow, writes may widen, and an int32 field can never be
// read as int64. Bool and char only match themselves.
func IsCastable(field, access SortEnum) bool {
	if field == access {
		return true
	}

	return field.IsNumber() && access.IsNumber() && access.Rank() <= field.Rank()
}

// IsAccessible is the generation rule shared by getters and setters: the
// generic object entry is always generated live, primitive entries only when
// castable.
func IsAccessible(field, access SortEnum) bool {
	return access == SortObject || IsCastable(field, access)
}
