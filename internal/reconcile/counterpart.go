package reconcile

import (
	"github.com/vmunix/plexdeck/internal/match"
	"github.com/vmunix/plexdeck/internal/media"
)

// MatchedBy says how a counterpart was found.
type MatchedBy string

const (
	ByIdentifier MatchedBy = "identifier"
	ByTitle      MatchedBy = "title"
)

// Match is the result of Counterpart. Item is nil when nothing matched.
// Ambiguous is set when several candidates shared the title and the year
// did not single one out.
type Match struct {
	Item      *media.Item
	Index     int
	By        MatchedBy
	Ambiguous bool
}

// compareIDs compares identifiers of the same kind. decided is false when
// the two items share no identifier kind, in which case title matching
// applies.
func compareIDs(a, b media.ExternalIDs) (equal, decided bool) {
	switch {
	case a.TMDB != 0 && b.TMDB != 0:
		return a.TMDB == b.TMDB, true
	case a.TVDB != 0 && b.TVDB != 0:
		return a.TVDB == b.TVDB, true
	case a.IMDB != "" && b.IMDB != "":
		return a.IMDB == b.IMDB, true
	}
	return false, false
}

// sameKind treats an unknown kind as compatible with any.
func sameKind(a, b media.Kind) bool {
	return a == "" || b == "" || a == b
}

// Counterpart finds item's equivalent among candidates: first by external
// identifier, then by case-insensitive exact title. Candidates whose
// identifiers contradict item's are never matched by title.
func Counterpart(item media.Item, candidates []media.Item) Match {
	var titled []int
	for i := range candidates {
		c := &candidates[i]
		if !sameKind(item.Kind, c.Kind) {
			continue
		}
		equal, decided := compareIDs(item.ExternalIDs, c.ExternalIDs)
		if decided {
			if equal {
				return Match{Item: c, Index: i, By: ByIdentifier}
			}
			continue
		}
		if match.TitleEqual(item.Title, c.Title) {
			titled = append(titled, i)
		}
	}

	switch len(titled) {
	case 0:
		return Match{Index: -1}
	case 1:
		return Match{Item: &candidates[titled[0]], Index: titled[0], By: ByTitle}
	}

	pick, sameYear := titled[0], 0
	for j := len(titled) - 1; j >= 0; j-- {
		if i := titled[j]; item.Year != 0 && candidates[i].Year == item.Year {
			pick = i
			sameYear++
		}
	}
	return Match{
		Item:      &candidates[pick],
		Index:     pick,
		By:        ByTitle,
		Ambiguous: sameYear != 1,
	}
}

// MarkInLibrary flags every result that has a counterpart in library and
// records the library id. Results that came from the library itself are
// already flagged.
func MarkInLibrary(results []media.Item, library []media.Item) {
	for i := range results {
		r := &results[i]
		if r.HasOrigin(media.SourceMediaServer) {
			r.InLibrary = true
			continue
		}
		if m := Counterpart(*r, library); m.Item != nil {
			r.InLibrary = true
			r.LibraryID = m.Item.LibraryID
		}
	}
}
