package option

import (
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Literal rendering for condition fragments. The produced text is handed
// to an external SQL runner as-is, so every caller supplied value goes
// through one of these, never through string concatenation.

func intLiteral[T constraints.Integer](v T) string {
	if v < 0 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatUint(uint64(v), 10)
}

// stringLiteral renders v as a single quoted SQL string, doubling any
// embedded quote.
func stringLiteral(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

func intList[T constraints.Integer](values []T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, intLiteral(v))
	}
	return strings.Join(parts, ",")
}

func stringList[T ~string](values []T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, stringLiteral(string(v)))
	}
	return strings.Join(parts, ",")
}
