package gvalue

import "strconv"

// formatInt/formatFloat back Number.String. Rendering is a pure ambient
// convenience (SPEC_FULL.md §13, grounded on original_source's
// data/src/data/display.rs) never consulted by control flow.
func formatInt(v int64) string { return strconv.FormatInt(v, 10) }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
