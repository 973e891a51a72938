package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postable/content-api/internal/api/metrics"
	"github.com/postable/content-api/internal/core/domain"
	"github.com/postable/content-api/internal/core/ports"
)

// VoteHandler handles the single vote endpoint: option 1 adds an up-vote,
// option 0 withdraws it.
type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{service: service}
}

type voteRequest struct {
	PostID     uint `json:"post_id"     validate:"required"`
	VoteOption *int `json:"vote_option" validate:"required,oneof=0 1"`
}

// Cast adds or withdraws the caller's vote on a post.
//
// @Summary      Cast or withdraw a vote
// @Tags         votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      voteRequest  true  "Vote: post id and option (1 add, 0 withdraw)"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /votes [post]
func (h *VoteHandler) Cast(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	err = h.service.Cast(c.Request().Context(), ports.CastVoteInput{
		UserID: user.ID,
		PostID: req.PostID,
		Option: *req.VoteOption,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPostNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
		case errors.Is(err, domain.ErrVoteNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "vote not found"})
		case errors.Is(err, domain.ErrVoteExists):
			return c.JSON(http.StatusConflict, map[string]string{"error": "vote already exists"})
		}
		return err
	}

	if *req.VoteOption == domain.VoteAdd {
		metrics.VotesTotal.WithLabelValues("add").Inc()
		return c.JSON(http.StatusCreated, map[string]string{"msg": "added vote"})
	}
	metrics.VotesTotal.WithLabelValues("withdraw").Inc()
	return c.JSON(http.StatusCreated, map[string]string{"msg": "deleted vote"})
}
