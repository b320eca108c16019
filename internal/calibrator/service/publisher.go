package service

import (
	"context"
	"time"
)

type CalibrationEvent struct {
	Base      string    `json:"base"`
	Target    string    `json:"target"`
	Amount    float64   `json:"amount"`
	Converted float64   `json:"converted"`
	Rate      *float64  `json:"rate"`
	Average   float64   `json:"average"`
	Days      int       `json:"days"`
	Points    int       `json:"points"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	PublishCalibration(ctx context.Context, event CalibrationEvent) error
}

type NopPublisher struct{}

func (NopPublisher) PublishCalibration(context.Context, CalibrationEvent) error {
	return nil
}
