package schema

// Merge copies the elements of src into a copy of dst and returns it.
// Neither input is modified and the result shares nothing with them.
//
// Without clobber, an element dst already has is left alone; with clobber
// the src copy replaces it. Classes present in both are merged attribute by
// attribute under the same rule, and their slot lists are unioned.
func Merge(dst, src *Schema, clobber bool) *Schema {
	out := dst.Clone()
	out.normalize()
	if src == nil {
		return out
	}

	for name, uri := range src.Prefixes.All() {
		if clobber || !out.Prefixes.Has(name) {
			out.Prefixes.Set(name, uri)
		}
	}
	for _, imp := range src.Imports {
		if !containsString(out.Imports, imp) {
			out.Imports = append(out.Imports, imp)
		}
	}
	mergeInto(out.Subsets, src.Subsets, clobber, (*Subset).Clone)
	mergeInto(out.Types, src.Types, clobber, (*Type).Clone)
	mergeInto(out.Enums, src.Enums, clobber, (*Enum).Clone)
	mergeInto(out.Slots, src.Slots, clobber, (*Slot).Clone)

	for name, c := range src.Classes.All() {
		existing, ok := out.Classes.Get(name)
		if !ok {
			out.Classes.Set(name, c.Clone())
			continue
		}
		if clobber {
			merged := c.Clone()
			merged.Attributes = existing.Attributes
			mergeInto(merged.Attributes, c.Attributes, true, (*Slot).Clone)
			merged.Slots = unionStrings(existing.Slots, c.Slots)
			out.Classes.Set(name, merged)
			continue
		}
		mergeInto(existing.Attributes, c.Attributes, false, (*Slot).Clone)
		existing.Slots = unionStrings(existing.Slots, c.Slots)
	}
	return out
}

func mergeInto[V any](dst, src *OrderedMap[V], clobber bool, clone func(V) V) {
	for name, v := range src.All() {
		if clobber || !dst.Has(name) {
			dst.Set(name, clone(v))
		}
	}
}

func unionStrings(a, b []string) []string {
	out := append([]string(nil), a...)
	for _, s := range b {
		if !containsString(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
