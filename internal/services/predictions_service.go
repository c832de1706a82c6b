package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thereayou/netsentinel/internal/websocket"
)

type PredictionsService struct {
	predictor Predictor
	publisher EventPublisher
}

func NewPredictionsService(predictor Predictor, publisher EventPublisher) *PredictionsService {
	return &PredictionsService{predictor: predictor, publisher: publisher}
}

// LatestPredictions отдаёт сводку как есть и на каждый успешный запрос публикует alert
func (s *PredictionsService) LatestPredictions(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.predictor.Predictions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRelay, err)
	}

	s.publisher.Publish(ctx, websocket.NewAlert(PredictionsAlertMessage))
	return raw, nil
}
