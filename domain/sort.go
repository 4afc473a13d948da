package domain

import "fmt"

// SortType is a listing sort key understood by the forum API.
type SortType string

const (
	SortActive        SortType = "Active"
	SortHot           SortType = "Hot"
	SortNew           SortType = "New"
	SortOld           SortType = "Old"
	SortTop           SortType = "Top"
	SortTopDay        SortType = "TopDay"
	SortTopWeek       SortType = "TopWeek"
	SortTopMonth      SortType = "TopMonth"
	SortTopYear       SortType = "TopYear"
	SortTopAll        SortType = "TopAll"
	SortMostComments  SortType = "MostComments"
	SortNewComments   SortType = "NewComments"
	SortControversial SortType = "Controversial"
	SortScaled        SortType = "Scaled"
)

// PostSorts lists the keys accepted for post and community listings.
var PostSorts = []SortType{
	SortActive, SortHot, SortNew, SortOld,
	SortTopDay, SortTopWeek, SortTopMonth, SortTopYear, SortTopAll,
	SortMostComments, SortNewComments, SortControversial, SortScaled,
}

// CommentSorts lists the keys accepted for comment listings.
var CommentSorts = []SortType{SortHot, SortTop, SortNew, SortOld, SortControversial}

// ValidateSort returns ErrInvalidQuery when s is not one of allowed.
func ValidateSort(s SortType, allowed []SortType) error {
	for _, a := range allowed {
		if s == a {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown sort %q", ErrInvalidQuery, string(s))
}
