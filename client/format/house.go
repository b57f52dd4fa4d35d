package format

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hectorherrerafullstack/astroApi/client"
)

var houseNames = [12]string{
	"Identity",
	"Resources",
	"Communication",
	"Home",
	"Creativity",
	"Health",
	"Partnership",
	"Transformation",
	"Expansion",
	"Career",
	"Friendships",
	"Spirituality",
}

// HouseName returns the theme of house n. ok is false outside 1..12.
func HouseName(n int) (name string, ok bool) {
	if n < 1 || n > len(houseNames) {
		return "", false
	}
	return houseNames[n-1], true
}

// FormattedHouse is an activated house ready for display. Name is empty for
// house numbers outside 1..12.
type FormattedHouse struct {
	Number  int
	Name    string
	Planets string
	Weight  float64
}

// FormatHouse maps h to its theme name and a list of its planets.
func FormatHouse(h client.HouseActivation) FormattedHouse {
	name, _ := HouseName(h.House)
	planets := make([]string, 0, len(h.Planets))
	for _, p := range h.Planets {
		planets = append(planets, Capitalize(p.Planet))
	}
	return FormattedHouse{
		Number:  h.House,
		Name:    name,
		Planets: strings.Join(planets, ", "),
		Weight:  h.Weight,
	}
}

// Capitalize upper-cases the first rune of s and leaves the rest alone.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
