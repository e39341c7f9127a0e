package service

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"festivals-backend/internal/domains/festival"
)

// genres feeds both the festival name and the genre list; gofakeit has
// no music genre generator.
var genres = []string{
	"Techno", "House", "Trance", "Rock", "Indie", "Metal",
	"Jazz", "Hip-Hop", "Pop", "Folk", "Drum & Bass", "Hardstyle",
}

// randomFestival produces one schema-valid synthetic festival document:
// every attribute populated, locationType drawn from the enum, genre
// and lineup as 3-element lists, coordinates as a valid lon/lat pair.
func randomFestival() map[string]any {
	return map[string]any{
		"name":        gofakeit.RandomString(genres) + " Festival",
		"description": gofakeit.Paragraph(1, 3, 12, " "),
		"review":      float64(gofakeit.Number(0, 10)),
		"location": map[string]any{
			"type":        "Point",
			"coordinates": []any{gofakeit.Longitude(), gofakeit.Latitude()},
		},
		"locationType": gofakeit.RandomString(festival.LocationTypes),
		"imageUrl":     "https://picsum.photos/seed/" + gofakeit.LetterN(8) + "/600/400",
		"hasBookmark":  gofakeit.Bool(),
		"date":         gofakeit.FutureDate().UTC().Format(time.RFC3339),
		"organizer":    gofakeit.Company(),
		"countryCode":  strings.ToLower(gofakeit.CountryAbr()),
		"genre": []string{
			gofakeit.RandomString(genres),
			gofakeit.RandomString(genres),
			gofakeit.RandomString(genres),
		},
		"lineup": []string{
			gofakeit.Name(),
			gofakeit.Name(),
			gofakeit.Name(),
		},
	}
}
