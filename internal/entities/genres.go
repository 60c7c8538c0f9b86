package entities

import "slices"

type Genre string

const (
	GenreFiction        Genre = "Fiction"
	GenreNonFiction     Genre = "Non-Fiction"
	GenreScienceFiction Genre = "Science Fiction"
	GenreFantasy        Genre = "Fantasy"
	GenreMystery        Genre = "Mystery"
	GenreThriller       Genre = "Thriller"
	GenreRomance        Genre = "Romance"
	GenreBiography      Genre = "Biography"
	GenreHistory        Genre = "History"
	GenreSelfHelp       Genre = "Self-Help"
	GenreBusiness       Genre = "Business"
	GenreScience        Genre = "Science"
	GenreTechnology     Genre = "Technology"
	GenreArt            Genre = "Art"
	GenreTravel         Genre = "Travel"
	GenreCooking        Genre = "Cooking"
	GenrePoetry         Genre = "Poetry"
	GenreComics         Genre = "Comics"
	GenreYoungAdult     Genre = "Young Adult"
)

// Genres is the curated browse list, in display order.
var Genres = []Genre{
	GenreFiction,
	GenreNonFiction,
	GenreScienceFiction,
	GenreFantasy,
	GenreMystery,
	GenreThriller,
	GenreRomance,
	GenreBiography,
	GenreHistory,
	GenreSelfHelp,
	GenreBusiness,
	GenreScience,
	GenreTechnology,
	GenreArt,
	GenreTravel,
	GenreCooking,
	GenrePoetry,
	GenreComics,
	GenreYoungAdult,
}

// FeaturedGenres are shown as tabs on the home view.
var FeaturedGenres = []Genre{
	GenreFiction,
	GenreMystery,
	GenreRomance,
	GenreScienceFiction,
	GenreFantasy,
	GenreBiography,
}

func IsFeaturedGenre(g Genre) bool {
	return slices.Contains(FeaturedGenres, g)
}
