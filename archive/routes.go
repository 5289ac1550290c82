package archive

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/elevenlabs-stt/errors"
	"github.com/kbukum/elevenlabs-stt/server"
)

// RegisterRoutes serves the archive read-only:
//
//	GET /transcripts      list of IDs
//	GET /transcripts/:id  one record
//
// The list also accepts language, q, since (RFC 3339) and limit, which
// query the index and add the matching entries as "results".
func (a *Archive) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/transcripts")
	g.GET("", a.handleList)
	g.GET("/:id", a.handleGet)
}

func (a *Archive) handleList(c *gin.Context) {
	q, filtered, appErr := parseQuery(c)
	if appErr != nil {
		server.RespondWithError(c, appErr)
		return
	}
	if filtered {
		a.handleSearch(c, q)
		return
	}

	ids, err := a.List(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ids": ids})
}

func (a *Archive) handleGet(c *gin.Context) {
	id := c.Param("id")
	if validID(id) != nil {
		server.RespondWithError(c, apperrors.Validation("invalid transcript id"))
		return
	}

	rec, err := a.Load(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		server.RespondWithError(c, apperrors.NotFound("transcript", id))
		return
	}
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (a *Archive) handleSearch(c *gin.Context, q Query) {
	entries, err := a.Search(c.Request.Context(), q)
	if errors.Is(err, ErrNoIndex) {
		server.RespondWithError(c, apperrors.Validation("search filters require a transcript index"))
		return
	}
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	c.JSON(http.StatusOK, gin.H{"ids": ids, "results": entries})
}

func parseQuery(c *gin.Context) (Query, bool, *apperrors.AppError) {
	q := Query{
		Language: c.Query("language"),
		Text:     c.Query("q"),
	}
	if v := c.Query("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return q, false, apperrors.Validation("since must be an RFC 3339 timestamp")
		}
		q.Since = t
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return q, false, apperrors.Validation("limit must be a positive integer")
		}
		q.Limit = n
	}
	filtered := q.Language != "" || q.Text != "" || !q.Since.IsZero() || q.Limit > 0
	return q, filtered, nil
}
