package v1

import (
	"context"
	"net/http"

	"github.com/vmunix/plexdeck/internal/media"
	"github.com/vmunix/plexdeck/internal/plex"
	"github.com/vmunix/plexdeck/internal/reconcile"
	"github.com/vmunix/plexdeck/internal/services"
)

func (s *Server) listSections(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	sections, err := c.Plex.Sections(r.Context())
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}
	if sections == nil {
		sections = []plex.Section{}
	}
	writeJSON(w, http.StatusOK, listSectionsResponse{Sections: sections})
}

func (s *Server) listSectionItems(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	s.writeItems(w, r, c.Plex, func(ctx context.Context) ([]plex.Metadata, error) {
		return c.Plex.SectionItems(ctx, r.PathValue("id"))
	})
}

func (s *Server) listRecent(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	s.writeItems(w, r, c.Plex, c.Plex.RecentlyAdded)
}

func (s *Server) listOnDeck(w http.ResponseWriter, r *http.Request, c *services.Clients) {
	s.writeItems(w, r, c.Plex, c.Plex.OnDeck)
}

// writeItems fetches library metadata and writes it as unified items,
// truncated to the optional limit query parameter.
func (s *Server) writeItems(w http.ResponseWriter, r *http.Request, images reconcile.ImageResolver, fetch func(context.Context) ([]plex.Metadata, error)) {
	found, err := fetch(r.Context())
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}
	if limit := queryInt(r, "limit", 0); limit > 0 && limit < len(found) {
		found = found[:limit]
	}
	items := make([]media.Item, len(found))
	for i := range found {
		items[i] = reconcile.FromPlex(&found[i], images)
	}
	writeJSON(w, http.StatusOK, listItemsResponse{Items: items})
}
