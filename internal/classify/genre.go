package classify

import "strings"

// GenreFamily is a broad genre bucket derived from a free-text genre tag.
type GenreFamily string

// Genre families in priority order.
const (
	GenrePop     GenreFamily = "Pop"
	GenreIndie   GenreFamily = "Indie / Alternative"
	GenreRnB     GenreFamily = "R&B / Soul"
	GenreHipHop  GenreFamily = "Hip-Hop / Rap"
	GenreEDM     GenreFamily = "EDM / Electronic"
	GenreRock    GenreFamily = "Rock"
	GenreLatin   GenreFamily = "Latin / Global Pop"
	GenreCountry GenreFamily = "Country / Folk"
	GenreJazz    GenreFamily = "Jazz / Blues / Funk"
	GenreOther   GenreFamily = "Other / Soundtrack / Misc."
)

// genreRule maps any of its keywords to a family.
type genreRule struct {
	family   GenreFamily
	keywords []string
}

// genreRules is evaluated top to bottom and the first hit wins. Keyword sets
// overlap ("permanent wave" is listed under Pop and Rock, "dance pop" contains
// "pop"), so reordering this table changes results.
var genreRules = []genreRule{
	{GenrePop, []string{
		"pop", "boy band", "candy pop", "folk-pop", "barbadian pop", "colombian pop",
		"australian pop", "canadian pop", "art pop", "indie pop", "permanent wave",
		"baroque pop", "moroccan pop",
	}},
	{GenreIndie, []string{
		"indie", "alaska indie", "escape room", "neo mellow", "alternative",
	}},
	{GenreRnB, []string{
		"r&b", "soul", "british soul", "canadian contemporary r&b", "alternative r&b",
	}},
	{GenreHipHop, []string{
		"hip hop", "hip-pop", "hip pop", "rap", "trap", "brostep", "electronic trap",
		"detroit hip hop", "atl hip hop", "canadian hip hop",
	}},
	{GenreEDM, []string{
		"dance pop", "big room", "complextro", "electro", "electropop", "edm", "house",
		"electronic", "australian dance", "tropical house", "downtempo", "electro house",
		"metropopolis",
	}},
	{GenreRock, []string{
		"rock", "celtic rock", "permanent wave",
	}},
	{GenreLatin, []string{
		"latin", "canadian latin",
	}},
	{GenreCountry, []string{
		"folk", "country", "irish singer-songwriter",
	}},
	{GenreJazz, []string{
		"jazz", "funk",
	}},
}

// GenreFamilies lists every family in declared order, fallback last.
var GenreFamilies = []GenreFamily{
	GenrePop, GenreIndie, GenreRnB, GenreHipHop, GenreEDM,
	GenreRock, GenreLatin, GenreCountry, GenreJazz, GenreOther,
}

// GenreFamilyOf maps a genre tag to its family by case-insensitive substring
// match. Unmatched tags fall through to GenreOther.
func GenreFamilyOf(tag string) GenreFamily {
	tag = strings.ToLower(tag)
	for _, rule := range genreRules {
		for _, kw := range rule.keywords {
			if strings.Contains(tag, kw) {
				return rule.family
			}
		}
	}
	return GenreOther
}
