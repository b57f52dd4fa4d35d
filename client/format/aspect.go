// Package format turns horoscope records into display values and HTML.
// Every function is pure and degrades to neutral or empty labels instead of
// failing on unfamiliar input.
package format

import (
	"fmt"
	"strings"

	"github.com/hectorherrerafullstack/astroApi/client"
)

// AspectKind is the closed set of aspects the service reports.
type AspectKind int

const (
	Unknown AspectKind = iota
	Conjunction
	Sextile
	Square
	Trine
	Opposition
)

// Quality is the tone of an aspect, also used as its CSS class.
type Quality string

const (
	Positive    Quality = "positive"
	Challenging Quality = "challenging"
	Neutral     Quality = "neutral"
)

// PlaceholderIcon is shown for aspects that ParseAspectKind does not know.
const PlaceholderIcon = "○"

var aspectNames = map[string]AspectKind{
	"conjunction": Conjunction,
	"conjunción":  Conjunction,
	"conjuncion":  Conjunction,
	"sextile":     Sextile,
	"sextil":      Sextile,
	"square":      Square,
	"cuadratura":  Square,
	"trine":       Trine,
	"trígono":     Trine,
	"trigono":     Trine,
	"opposition":  Opposition,
	"oposición":   Opposition,
	"oposicion":   Opposition,
}

// ParseAspectKind maps an English or Spanish aspect name, in any case, to
// its kind. Anything else is Unknown.
func ParseAspectKind(name string) AspectKind {
	return aspectNames[strings.ToLower(strings.TrimSpace(name))]
}

func (k AspectKind) String() string {
	switch k {
	case Conjunction:
		return "Conjunction"
	case Sextile:
		return "Sextile"
	case Square:
		return "Square"
	case Trine:
		return "Trine"
	case Opposition:
		return "Opposition"
	default:
		return "Unknown"
	}
}

// Icon returns the glyph for k.
func (k AspectKind) Icon() string {
	switch k {
	case Conjunction:
		return "☌"
	case Sextile:
		return "⚹"
	case Square:
		return "□"
	case Trine:
		return "△"
	case Opposition:
		return "☍"
	default:
		return PlaceholderIcon
	}
}

// Quality returns the tone of k.
func (k AspectKind) Quality() Quality {
	switch k {
	case Sextile, Trine:
		return Positive
	case Square, Opposition:
		return Challenging
	default:
		return Neutral
	}
}

// FormattedAspect is an aspect ready for display.
type FormattedAspect struct {
	Icon        string
	Quality     Quality
	Text        string // "Mars □ Venus"
	Description string // aspect name as sent by the service
	Orb         string // two decimals
	Applying    bool
}

// FormatAspect maps a to its icon, tone and display text.
func FormatAspect(a client.Aspect) FormattedAspect {
	kind := ParseAspectKind(a.Kind)
	return FormattedAspect{
		Icon:        kind.Icon(),
		Quality:     kind.Quality(),
		Text:        Capitalize(a.TransitPlanet) + " " + kind.Icon() + " " + Capitalize(a.NatalPlanet),
		Description: a.Kind,
		Orb:         fmt.Sprintf("%.2f", a.Orb),
		Applying:    a.Applying,
	}
}
