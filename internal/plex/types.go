package plex

// Identity is the server's answer to GET /.
type Identity struct {
	FriendlyName      string `json:"friendlyName"`
	MachineIdentifier string `json:"machineIdentifier"`
	Version           string `json:"version"`
}

// Section is a library section (GET /library/sections).
type Section struct {
	Key       string `json:"key"`
	Title     string `json:"title"`
	Type      string `json:"type"` // movie, show, artist, photo
	Agent     string `json:"agent"`
	Scanner   string `json:"scanner"`
	Language  string `json:"language"`
	UUID      string `json:"uuid"`
	Thumb     string `json:"thumb,omitempty"`
	Art       string `json:"art,omitempty"`
	UpdatedAt int64  `json:"updatedAt"`
	ScannedAt int64  `json:"scannedAt"`
}

// Metadata is one MediaContainer.Metadata entry: a movie, show, season or
// episode depending on Type.
type Metadata struct {
	RatingKey             string  `json:"ratingKey"`
	Key                   string  `json:"key"`
	ParentRatingKey       string  `json:"parentRatingKey,omitempty"`
	GrandparentRatingKey  string  `json:"grandparentRatingKey,omitempty"`
	GrandparentTitle      string  `json:"grandparentTitle,omitempty"`
	ParentTitle           string  `json:"parentTitle,omitempty"`
	GUID                  string  `json:"guid"`
	GUIDs                 []GUID  `json:"Guid,omitempty"`
	Type                  string  `json:"type"`
	Title                 string  `json:"title"`
	Year                  int     `json:"year,omitempty"`
	Summary               string  `json:"summary,omitempty"`
	Tagline               string  `json:"tagline,omitempty"`
	Studio                string  `json:"studio,omitempty"`
	ContentRating         string  `json:"contentRating,omitempty"`
	Rating                float64 `json:"rating,omitempty"`
	AudienceRating        float64 `json:"audienceRating,omitempty"`
	Thumb                 string  `json:"thumb,omitempty"`
	Art                   string  `json:"art,omitempty"`
	Duration              int64   `json:"duration,omitempty"` // milliseconds
	ViewCount             int     `json:"viewCount,omitempty"`
	ViewOffset            int64   `json:"viewOffset,omitempty"`
	AddedAt               int64   `json:"addedAt,omitempty"`
	UpdatedAt             int64   `json:"updatedAt,omitempty"`
	LastViewedAt          int64   `json:"lastViewedAt,omitempty"`
	OriginallyAvailableAt string  `json:"originallyAvailableAt,omitempty"`
	Index                 int     `json:"index,omitempty"`       // season or episode number
	ParentIndex           int     `json:"parentIndex,omitempty"` // season number of an episode
	LeafCount             int     `json:"leafCount,omitempty"`
	ViewedLeafCount       int     `json:"viewedLeafCount,omitempty"`
	ChildCount            int     `json:"childCount,omitempty"`
	Genres                []Tag   `json:"Genre,omitempty"`
	Directors             []Tag   `json:"Director,omitempty"`
	Roles                 []Role  `json:"Role,omitempty"`
	Media                 []Media `json:"Media,omitempty"`
}

// GUID is an external agent reference such as "tmdb://603".
type GUID struct {
	ID string `json:"id"`
}

// Tag is a genre/director entry.
type Tag struct {
	Tag string `json:"tag"`
}

// Role is a cast member.
type Role struct {
	ID    int64  `json:"id"`
	Tag   string `json:"tag"`
	Role  string `json:"role,omitempty"`
	Thumb string `json:"thumb,omitempty"`
}

type Media struct {
	ID              int64  `json:"id"`
	Duration        int64  `json:"duration,omitempty"`
	Bitrate         int    `json:"bitrate,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	VideoResolution string `json:"videoResolution,omitempty"`
	Container       string `json:"container,omitempty"`
	Parts           []Part `json:"Part,omitempty"`
}

type Part struct {
	ID        int64  `json:"id"`
	Key       string `json:"key"`
	File      string `json:"file,omitempty"`
	Size      int64  `json:"size,omitempty"`
	Container string `json:"container,omitempty"`
}

// GenreNames flattens Genre[].tag.
func (m *Metadata) GenreNames() []string {
	if len(m.Genres) == 0 {
		return nil
	}
	out := make([]string, len(m.Genres))
	for i, g := range m.Genres {
		out[i] = g.Tag
	}
	return out
}

// FirstPart returns the first playable file part, or nil.
func (m *Metadata) FirstPart() *Part {
	for _, media := range m.Media {
		if len(media.Parts) > 0 {
			return &media.Parts[0]
		}
	}
	return nil
}

// GUIDStrings returns the primary guid followed by every Guid[].id.
func (m *Metadata) GUIDStrings() []string {
	out := make([]string, 0, len(m.GUIDs)+1)
	if m.GUID != "" {
		out = append(out, m.GUID)
	}
	for _, g := range m.GUIDs {
		out = append(out, g.ID)
	}
	return out
}

type mediaContainer struct {
	MediaContainer struct {
		Size              int        `json:"size"`
		FriendlyName      string     `json:"friendlyName,omitempty"`
		MachineIdentifier string     `json:"machineIdentifier,omitempty"`
		Version           string     `json:"version,omitempty"`
		Directory         []Section  `json:"Directory,omitempty"`
		Metadata          []Metadata `json:"Metadata,omitempty"`
	} `json:"MediaContainer"`
}
