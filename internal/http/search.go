package http

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/alhifz/hifz/internal/search"
)

type SearchController struct {
	engine *search.Engine
}

func NewSearchController(engine *search.Engine) *SearchController {
	return &SearchController{engine: engine}
}

// Search handles GET /api/search?q=...&book=...&limit=...&offset=...
func (controller *SearchController) Search(c *gin.Context) {
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit", Code: "validation"})
		return
	}
	offset, err := intQuery(c, "offset", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset", Code: "validation"})
		return
	}

	result, err := controller.engine.Search(c.Request.Context(), search.Query{
		Text:   c.Query("q"),
		Book:   c.Query("book"),
		Grade:  c.Query("grade"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, result)
}

// Autocomplete handles GET /api/search/autocomplete?q=...&limit=...
// Queries shorter than two characters are rejected rather than
// searched; suggestions for a single keystroke are noise.
func (controller *SearchController) Autocomplete(c *gin.Context) {
	q := c.Query("q")
	if utf8.RuneCountInString(strings.TrimSpace(q)) < 2 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query must be at least 2 characters", Code: "validation"})
		return
	}
	limit, err := intQuery(c, "limit", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit", Code: "validation"})
		return
	}

	result, err := controller.engine.Autocomplete(c.Request.Context(), q, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, result)
}

// Verify handles GET /api/search/verify?text=... Short fragments are
// rejected up front: anything under ten characters matches half the
// corpus and verifies nothing.
func (controller *SearchController) Verify(c *gin.Context) {
	text := c.Query("text")
	if utf8.RuneCountInString(strings.TrimSpace(text)) < 10 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "text must be at least 10 characters", Code: "validation"})
		return
	}

	verification, err := controller.engine.Verify(c.Request.Context(), text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, verification)
}

// Rebuild handles POST /api/search/reindex. It returns once the new
// snapshot is published; callers may invoke it repeatedly.
func (controller *SearchController) Rebuild(c *gin.Context) {
	if err := controller.engine.RebuildIndex(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "index rebuilt"})
}
