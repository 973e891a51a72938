package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/postable/content-api/internal/api/metrics"
	"github.com/postable/content-api/internal/core/domain"
	"github.com/postable/content-api/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations. Every route runs
// behind the Auth middleware; the resolved identity scopes all queries and
// is forced as the owner on create.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

type postRequest struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text"  validate:"required"`
}

// List returns the caller's posts with vote counts.
//
// @Summary      List own posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int     false  "Page size (default 10, max 100)"
// @Param        skip    query     int     false  "Offset"
// @Param        search  query     string  false  "Title substring filter"
// @Success      200     {array}   ports.PostWithVotes
// @Failure      401     {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	skip, _ := strconv.Atoi(c.QueryParam("skip"))

	posts, err := h.service.List(c.Request().Context(), ports.ListPostsInput{
		AccountID: user.ID,
		Search:    c.QueryParam("search"),
		Limit:     limit,
		Skip:      skip,
	})
	if err != nil {
		return err
	}
	if posts == nil {
		posts = []ports.PostWithVotes{}
	}
	return c.JSON(http.StatusOK, posts)
}

// Get returns one owned post with its vote count. A post owned by someone
// else is reported as 404, identical to a missing one.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  ports.PostWithVotes
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	post, err := h.service.Get(c.Request().Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create inserts a post owned by the caller.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postRequest  true  "Post content"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	post, err := h.service.Create(c.Request().Context(), ports.CreatePostInput{
		AccountID: user.ID,
		Title:     req.Title,
		Text:      req.Text,
	})
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, post)
}

// Update replaces an owned post's title and text.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Post id"
// @Param        body  body      postRequest  true  "New content"
// @Success      200   {object}  domain.Post
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	post, err := h.service.Update(c.Request().Context(), ports.UpdatePostInput{
		ID:        id,
		AccountID: user.ID,
		Title:     req.Title,
		Text:      req.Text,
	})
	if err != nil {
		return postWriteError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// Delete removes an owned post; its votes go with it via the cascade.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}

	if err := h.service.Delete(c.Request().Context(), id, user.ID); err != nil {
		return postWriteError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "post deleted"})
}

// postWriteError maps write failures: missing posts stay 404, while writes
// to someone else's post get an explicit 403. Reads, in contrast, hide
// existence behind 404.
func postWriteError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
	}
	return err
}
