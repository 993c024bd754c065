package feed

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RowFromMap coerces one duck-typed board row into a RawRow. The upstream
// board serializes numbers inconsistently (15, "15", 15.0), so every field
// goes through Stringify before anything else looks at it.
func RowFromMap(m map[string]any) RawRow {
	return RawRow{
		CourtID:     pick(m, "court_id", "courtId", "id"),
		CourtNumber: pick(m, "court_no", "courtNo", "court_number"),
		CaseInfo:    pick(m, "case_info", "caseInfo", "case_details"),
		Serial:      pick(m, "sr_no", "srNo", "serial"),
	}
}

// pick returns the first key whose coerced value is non-empty.
func pick(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := Stringify(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// Stringify normalizes a loosely-typed row value to a trimmed string.
// Whole floats render without the trailing ".0" the board's JSON encoder
// sometimes produces.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
