package calendar

import "fmt"

// Blend combines two computed liturgical years for congregations that
// observe more than one tradition. Seasons, cycle, and moveable dates
// come from the primary year; special days are merged from both. When
// both years carry an observance with the same name on the same date,
// the higher-ranked record wins. Neither input is modified.
//
// Both years must describe the same Advent year.
func Blend(primary, secondary *LiturgicalYearInfo) (*LiturgicalYearInfo, error) {
	if primary.AdventYear != secondary.AdventYear {
		return nil, fmt.Errorf("blend: mismatched liturgical years %d and %d", primary.AdventYear, secondary.AdventYear)
	}

	type key struct {
		date string
		name string
	}
	seen := make(map[key]int, len(primary.SpecialDays))

	merged := make([]SpecialDay, 0, len(primary.SpecialDays)+len(secondary.SpecialDays))
	for _, d := range primary.SpecialDays {
		seen[key{FormatDate(d.Date), d.Name}] = len(merged)
		merged = append(merged, d)
	}
	for _, d := range secondary.SpecialDays {
		k := key{FormatDate(d.Date), d.Name}
		if i, ok := seen[k]; ok {
			if d.Rank > merged[i].Rank {
				merged[i] = d
			}
			continue
		}
		seen[k] = len(merged)
		merged = append(merged, d)
	}
	sortSpecialDays(merged)

	blended := *primary
	blended.Seasons = append([]Season(nil), primary.Seasons...)
	blended.SpecialDays = merged
	return &blended, nil
}
