package repository

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Excel caps sheet names at 31 characters.
const maxSheetNameLen = 31

// Excel rejects these characters anywhere in a sheet name.
var sheetNameSanitizer = strings.NewReplacer(
	":", "-", "\\", "-", "/", "-", "?", "-", "*", "-", "[", "-", "]", "-",
)

// BuildSheetName derives the history sheet name for one flight identity:
// dep-arr_date_airline_flightNo with the 航空 suffix stripped from the
// airline and characters Excel forbids replaced. When the full name exceeds
// the Excel limit the date segment is dropped, and a short hash of the full
// identity is appended so that different dates for the same flight never
// collapse into one sheet.
func BuildSheetName(depLabel, arrLabel, flightDate, airline, flightNo string) string {
	if airline == "" {
		airline = "未知航空"
	}
	airline = strings.ReplaceAll(airline, "航空", "")
	if flightNo == "" {
		flightNo = "NA"
	}

	full := sheetNameSanitizer.Replace(
		fmt.Sprintf("%s-%s_%s_%s_%s", depLabel, arrLabel, flightDate, airline, flightNo))
	if runeLen(full) <= maxSheetNameLen {
		return full
	}

	h := fnv.New32a()
	h.Write([]byte(full))
	suffix := fmt.Sprintf("_%04x", h.Sum32()&0xffff)

	short := sheetNameSanitizer.Replace(
		fmt.Sprintf("%s-%s_%s_%s", depLabel, arrLabel, airline, flightNo))
	short = truncateRunes(short, maxSheetNameLen-runeLen(suffix))
	return short + suffix
}

func runeLen(s string) int {
	return len([]rune(s))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
