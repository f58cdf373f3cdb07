package stepstone

// regions maps URL slugs to the German regions StepStone knows about.
var regions = map[string]string{
	"baden-wuerttemberg":     "Baden-Württemberg",
	"bayern":                 "Bayern",
	"berlin":                 "Berlin",
	"brandenburg":            "Brandenburg",
	"bremen":                 "Bremen",
	"hamburg":                "Hamburg",
	"hessen":                 "Hessen",
	"mecklenburg-vorpommern": "Mecklenburg-Vorpommern",
	"niedersachsen":          "Niedersachsen",
	"nordrhein-westfalen":    "Nordrhein-Westfalen",
	"rheinland-pfalz":        "Rheinland-Pfalz",
	"saarland":               "Saarland",
	"sachsen":                "Sachsen",
	"sachsen-anhalt":         "Sachsen-Anhalt",
	"schleswig-holstein":     "Schleswig-Holstein",
	"thueringen":             "Thüringen",
}

// Regions returns a copy of the slug → display name region map.
func Regions() map[string]string {
	out := make(map[string]string, len(regions))
	for k, v := range regions {
		out[k] = v
	}
	return out
}
