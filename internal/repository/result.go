package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

// MaxResultsPerRoom bounds the history kept for one room code.
const MaxResultsPerRoom = 100

type ResultRepository interface {
	Save(ctx context.Context, result entity.Result) error
	ListByRoom(ctx context.Context, room string, limit int) ([]entity.Result, error)
	Score(ctx context.Context, room string) (entity.Score, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

func resultsKey(room string) string {
	return "results:" + room
}

func scoreKey(room string) string {
	return "score:" + room
}

// Save prepends the result to the room history and bumps the stored tally.
func (that *dbResult) Save(ctx context.Context, result entity.Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	pipe := that.client.TxPipeline()
	pipe.LPush(ctx, resultsKey(result.Room), resultJSON)
	pipe.LTrim(ctx, resultsKey(result.Room), 0, MaxResultsPerRoom-1)
	pipe.HIncrBy(ctx, scoreKey(result.Room), result.Winner.String(), 1)

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

// ListByRoom returns the newest results first.
func (that *dbResult) ListByRoom(ctx context.Context, room string, limit int) ([]entity.Result, error) {
	if limit <= 0 || limit > MaxResultsPerRoom {
		limit = MaxResultsPerRoom
	}

	response, err := that.client.LRange(ctx, resultsKey(room), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	results := make([]entity.Result, 0, len(response))
	for _, item := range response {
		var result entity.Result
		if err = json.Unmarshal([]byte(item), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		results = append(results, result)
	}

	return results, nil
}

func (that *dbResult) Score(ctx context.Context, room string) (entity.Score, error) {
	response, err := that.client.HGetAll(ctx, scoreKey(room)).Result()
	if err != nil {
		return entity.Score{}, fmt.Errorf("failed to get score: %w", err)
	}

	var score entity.Score
	for field, value := range response {
		count, err := strconv.Atoi(value)
		if err != nil {
			return entity.Score{}, fmt.Errorf("invalid score %q: %w", field, err)
		}

		switch field {
		case entity.WinnerX.String():
			score.X = count
		case entity.WinnerO.String():
			score.O = count
		case entity.WinnerDraw.String():
			score.Draws = count
		}
	}

	return score, nil
}
