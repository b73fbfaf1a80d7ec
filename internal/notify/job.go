package notify

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/suPer8Hu/goldsmith-storefront/internal/common"
)

// Job is the queued envelope consumed by cmd/worker.
type Job struct {
	ID           string       `json:"id"`
	Notification Notification `json:"notification"`
	CreatedAt    time.Time    `json:"created_at"`
}

func NewJob(n Notification) (Job, error) {
	id, err := common.NewULID()
	if err != nil {
		return Job{}, err
	}
	return Job{ID: id, Notification: n, CreatedAt: time.Now().UTC()}, nil
}

// DecodeJob parses a queued body. Bodies without an id are rejected.
func DecodeJob(body []byte) (Job, error) {
	var j Job
	if err := json.Unmarshal(body, &j); err != nil {
		return Job{}, err
	}
	if j.ID == "" {
		return Job{}, errors.New("notify: job id missing")
	}
	return j, nil
}
