package parsers

import "strings"

// Canonical field names resolved from source headers.
const (
	fieldDate   = "date"
	fieldSeries = "series"
	fieldNumber = "number"
	fieldType   = "type"
	fieldVOEN   = "voen"
	fieldName   = "name"
	fieldNet    = "net"
	fieldTax    = "tax"
	fieldGross  = "gross"
	fieldStatus = "status"
)

// columnAliases maps each canonical field to the raw header spellings seen
// across qaimə export variants, in preference order. This is an explicit
// configuration table: new variants get a new synonym here, not heuristics
// at parse time.
var columnAliases = map[string][]string{
	fieldDate:   {"Qaimə tarixi", "Tarih", "Tarix", "Date"},
	fieldSeries: {"Qaimə seriyası", "Seriya"},
	fieldNumber: {"Qaimə nömrəsi", "Nömrə", "No"},
	fieldType:   {"Tipi", "Növü", "Təlimat"},
	fieldVOEN:   {"VÖEN", "VOEN"},
	fieldName:   {"Adı", "Unvan", "Name"},
	fieldNet:    {"Malın ƏDV-siz dəyəri", "ƏDV-siz", "Net"},
	fieldTax:    {"ƏDV məbləği", "ƏDV", "EDV"},
	fieldGross:  {"Yekun məbləğ", "Yekun", "Toplam", "Gross"},
	fieldStatus: {"Vəziyyəti", "Status"},
}

func trimHeader(s string) string {
	return strings.TrimSpace(s)
}

// resolveColumns intersects the alias table with the actual headers once
// per batch, returning canonical field -> raw header. Headers are matched
// after trimming; absent fields are simply missing from the map.
func resolveColumns(headers []string) map[string]string {
	present := make(map[string]string, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = strings.TrimSpace(h)
	}

	resolved := make(map[string]string, len(columnAliases))
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if raw, ok := present[alias]; ok {
				resolved[field] = raw
				break
			}
		}
	}
	return resolved
}
