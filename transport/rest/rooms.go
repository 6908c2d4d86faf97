package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/caro-backend/internal/apperror"
	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

const defaultResultsLimit = 20

type roomReader interface {
	RoomState(code string) (entity.RoomState, error)
}

type resultReader interface {
	ListByRoom(ctx context.Context, room string, limit int) ([]entity.Result, error)
	Score(ctx context.Context, room string) (entity.Score, error)
}

type ResultsResponse struct {
	Room    string          `json:"room"`
	Score   entity.Score    `json:"score"`
	Results []entity.Result `json:"results"`
}

type roomHandler struct {
	logger  *slog.Logger
	rooms   roomReader
	results resultReader
}

func (that *roomHandler) getRoom(c *gin.Context) {
	log := that.logger.With("method", "getRoom")

	state, err := that.rooms.RoomState(c.Param("code"))
	if errors.Is(err, apperror.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	if err != nil {
		log.Error("failed to get room state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (that *roomHandler) getResults(c *gin.Context) {
	log := that.logger.With("method", "getResults")

	if that.results == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "results are not recorded"})
		return
	}

	limit := defaultResultsLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	code := c.Param("code")
	ctx := c.Request.Context()

	results, err := that.results.ListByRoom(ctx, code, limit)
	if err != nil {
		log.Error("failed to list results", "room", code, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	score, err := that.results.Score(ctx, code)
	if err != nil {
		log.Error("failed to get score", "room", code, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, ResultsResponse{Room: code, Score: score, Results: results})
}
