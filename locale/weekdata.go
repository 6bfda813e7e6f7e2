package locale

import "time"

// firstDay — первый день недели по региону, CLDR supplementalData.xml, weekData/firstDay.
// Регионы, которых нет в таблице, используют значение для 001 (понедельник).
var firstDay = map[string]time.Weekday{
	// @formatter:off
	"AG": time.Sunday, "AS": time.Sunday, "BD": time.Sunday, "BR": time.Sunday, "BS": time.Sunday,
	"BT": time.Sunday, "BW": time.Sunday, "BZ": time.Sunday, "CA": time.Sunday, "CN": time.Sunday,
	"CO": time.Sunday, "DM": time.Sunday, "DO": time.Sunday, "ET": time.Sunday, "GT": time.Sunday,
	"GU": time.Sunday, "HK": time.Sunday, "HN": time.Sunday, "ID": time.Sunday, "IL": time.Sunday,
	"IN": time.Sunday, "JM": time.Sunday, "JP": time.Sunday, "KE": time.Sunday, "KH": time.Sunday,
	"KR": time.Sunday, "LA": time.Sunday, "MH": time.Sunday, "MM": time.Sunday, "MO": time.Sunday,
	"MT": time.Sunday, "MX": time.Sunday, "MZ": time.Sunday, "NI": time.Sunday, "NP": time.Sunday,
	"PA": time.Sunday, "PE": time.Sunday, "PH": time.Sunday, "PK": time.Sunday, "PR": time.Sunday,
	"PT": time.Sunday, "PY": time.Sunday, "SA": time.Sunday, "SG": time.Sunday, "SV": time.Sunday,
	"TH": time.Sunday, "TT": time.Sunday, "TW": time.Sunday, "UM": time.Sunday, "US": time.Sunday,
	"VE": time.Sunday, "VI": time.Sunday, "WS": time.Sunday, "YE": time.Sunday, "ZA": time.Sunday,
	"ZW": time.Sunday,

	"AE": time.Saturday, "AF": time.Saturday, "BH": time.Saturday, "DJ": time.Saturday, "DZ": time.Saturday,
	"EG": time.Saturday, "IQ": time.Saturday, "IR": time.Saturday, "JO": time.Saturday, "KW": time.Saturday,
	"LY": time.Saturday, "OM": time.Saturday, "QA": time.Saturday, "SD": time.Saturday, "SY": time.Saturday,

	"MV": time.Friday,
	// @formatter:on
}

func regionFirstDay(region string) time.Weekday {
	if wd, ok := firstDay[region]; ok {
		return wd
	}
	return time.Monday
}

// parseWeekday разбирает значение ключа -u-fw- (sun, mon, ...).
func parseWeekday(s string) (time.Weekday, bool) {
	// @formatter:off
	switch s {
	case "sun": return time.Sunday,    true
	case "mon": return time.Monday,    true
	case "tue": return time.Tuesday,   true
	case "wed": return time.Wednesday, true
	case "thu": return time.Thursday,  true
	case "fri": return time.Friday,    true
	case "sat": return time.Saturday,  true
	default:    return -1,             false
	}
	// @formatter:on
}
