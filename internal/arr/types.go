package arr

import (
	"bytes"
	"encoding/json"
)

// SystemStatus is the subset of /system/status used for connection tests.
type SystemStatus struct {
	AppName      string `json:"appName"`
	InstanceName string `json:"instanceName"`
	Version      string `json:"version"`
}

type QualityProfile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type RootFolder struct {
	ID         int    `json:"id"`
	Path       string `json:"path"`
	Accessible bool   `json:"accessible"`
	FreeSpace  int64  `json:"freeSpace"`
}

type Tag struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

type Image struct {
	CoverType string `json:"coverType"`
	URL       string `json:"url,omitempty"`
	RemoteURL string `json:"remoteUrl,omitempty"`
}

// Ratings accepts both the flat {votes,value} shape and the per-source
// {imdb:{...},tmdb:{...}} shape newer Radarr builds return. The original
// bytes are written back unchanged.
type Ratings struct {
	Votes int     `json:"votes"`
	Value float64 `json:"value"`
	raw   json.RawMessage
}

func (r *Ratings) UnmarshalJSON(data []byte) error {
	r.raw = append(json.RawMessage(nil), data...)

	var flat struct {
		Votes *int     `json:"votes"`
		Value *float64 `json:"value"`
	}
	if err := json.Unmarshal(data, &flat); err == nil && (flat.Votes != nil || flat.Value != nil) {
		if flat.Votes != nil {
			r.Votes = *flat.Votes
		}
		if flat.Value != nil {
			r.Value = *flat.Value
		}
		return nil
	}

	var bySource map[string]struct {
		Votes int     `json:"votes"`
		Value float64 `json:"value"`
	}
	if err := json.Unmarshal(data, &bySource); err != nil {
		return err
	}
	for _, src := range []string{"tmdb", "imdb", "trakt"} {
		if s, ok := bySource[src]; ok && s.Votes > 0 {
			r.Votes, r.Value = s.Votes, s.Value
			return nil
		}
	}
	return nil
}

func (r Ratings) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	type plain struct {
		Votes int     `json:"votes"`
		Value float64 `json:"value"`
	}
	return json.Marshal(plain{Votes: r.Votes, Value: r.Value})
}

// posterURL returns the remote poster URL, falling back to the local one.
func posterURL(images []Image) string {
	for _, img := range images {
		if img.CoverType == "poster" {
			if img.RemoteURL != "" {
				return img.RemoteURL
			}
			return img.URL
		}
	}
	return ""
}

// Command is the response to POST /command.
type Command struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// QueueItem is one entry of /queue for either service.
type QueueItem struct {
	ID                      int64         `json:"id"`
	SeriesID                int64         `json:"seriesId,omitempty"`
	EpisodeID               int64         `json:"episodeId,omitempty"`
	MovieID                 int64         `json:"movieId,omitempty"`
	Title                   string        `json:"title"`
	Status                  string        `json:"status"`
	TrackedDownloadStatus   string        `json:"trackedDownloadStatus,omitempty"`
	TrackedDownloadState    string        `json:"trackedDownloadState,omitempty"`
	Size                    float64       `json:"size"`
	SizeLeft                float64       `json:"sizeleft"`
	TimeLeft                string        `json:"timeleft,omitempty"`
	EstimatedCompletionTime string        `json:"estimatedCompletionTime,omitempty"`
	DownloadID              string        `json:"downloadId,omitempty"`
	DownloadClient          string        `json:"downloadClient,omitempty"`
	Protocol                string        `json:"protocol,omitempty"`
	Series                  *QueueTitle   `json:"series,omitempty"`
	Episode                 *QueueEpisode `json:"episode,omitempty"`
	Movie                   *QueueTitle   `json:"movie,omitempty"`
}

// QueueTitle is the embedded series or movie summary of a queue record.
type QueueTitle struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// QueueEpisode is the embedded episode summary of a queue record.
type QueueEpisode struct {
	Title         string `json:"title"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
}

// Progress returns the completed fraction in [0,1].
func (q QueueItem) Progress() float64 {
	if q.Size <= 0 {
		return 0
	}
	return (q.Size - q.SizeLeft) / q.Size
}

// queuePage accepts both the paged v3 shape and a bare array.
type queuePage struct {
	Records []QueueItem
}

func (p *queuePage) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(data, &p.Records)
	}
	var paged struct {
		Records []QueueItem `json:"records"`
	}
	if err := json.Unmarshal(data, &paged); err != nil {
		return err
	}
	p.Records = paged.Records
	return nil
}
