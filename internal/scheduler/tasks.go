package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskRouteWarmup = "routing.cache.warmup"

// RouteWarmupPayload identifies one endpoint pair whose cached route should
// be refreshed.
type RouteWarmupPayload struct {
	FromName string `json:"fromName"`
	ToName   string `json:"toName"`
}

func NewRouteWarmupTask(payload RouteWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRouteWarmup, data), nil
}

func ParseRouteWarmupPayload(task *asynq.Task) (RouteWarmupPayload, error) {
	var payload RouteWarmupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return RouteWarmupPayload{}, err
	}
	return payload, nil
}
