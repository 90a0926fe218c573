package ordering

// Next picks the order value for a newly created row. An explicit non-zero
// value wins. Zero means "unset": the row goes after its last sibling, or gets
// 0 when there are no ordered siblings. Asking explicitly for 0 is therefore
// indistinguishable from not asking.
func Next(max *int, explicit int) int {
	if explicit != 0 {
		return explicit
	}

	if max == nil {
		return 0
	}

	return *max + 1
}
