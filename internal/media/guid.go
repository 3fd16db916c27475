package media

import (
	"strconv"
	"strings"
)

// ExternalIDs are the cross-service identifiers of a title. Zero values
// mean unknown.
type ExternalIDs struct {
	TMDB int64  `json:"tmdb,omitempty"`
	TVDB int64  `json:"tvdb,omitempty"`
	IMDB string `json:"imdb,omitempty"`
}

// Empty reports whether no identifier is known.
func (e ExternalIDs) Empty() bool {
	return e.TMDB == 0 && e.TVDB == 0 && e.IMDB == ""
}

// Merge fills unknown fields of e from o.
func (e ExternalIDs) Merge(o ExternalIDs) ExternalIDs {
	if e.TMDB == 0 {
		e.TMDB = o.TMDB
	}
	if e.TVDB == 0 {
		e.TVDB = o.TVDB
	}
	if e.IMDB == "" {
		e.IMDB = o.IMDB
	}
	return e
}

var agentSchemes = map[string]string{
	"tmdb":                          "tmdb",
	"tvdb":                          "tvdb",
	"imdb":                          "imdb",
	"com.plexapp.agents.themoviedb": "tmdb",
	"com.plexapp.agents.thetvdb":    "tvdb",
	"com.plexapp.agents.imdb":       "imdb",
}

// ParseExternalIDs extracts identifiers from Plex guids in both the current
// ("tmdb://603") and legacy agent
// ("com.plexapp.agents.thetvdb://81189/1/2?lang=en") forms. Unknown
// schemes such as "plex://" are ignored.
func ParseExternalIDs(guids []string) ExternalIDs {
	var ids ExternalIDs
	for _, g := range guids {
		scheme, rest, ok := strings.Cut(g, "://")
		if !ok {
			continue
		}
		kind, ok := agentSchemes[scheme]
		if !ok {
			continue
		}
		if i := strings.IndexAny(rest, "/?"); i >= 0 {
			rest = rest[:i]
		}
		if rest == "" {
			continue
		}

		switch kind {
		case "imdb":
			if ids.IMDB == "" && strings.HasPrefix(rest, "tt") {
				ids.IMDB = rest
			}
		case "tmdb":
			if n, err := strconv.ParseInt(rest, 10, 64); err == nil && ids.TMDB == 0 {
				ids.TMDB = n
			}
		case "tvdb":
			if n, err := strconv.ParseInt(rest, 10, 64); err == nil && ids.TVDB == 0 {
				ids.TVDB = n
			}
		}
	}
	return ids
}
