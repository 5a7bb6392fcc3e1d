package services

import (
	"context"
	"io"

	"classwatch-backend/internal/models"
)

// Detector is the detection stage. The recorder persists whatever it
// produces; swapping in a real inference backend only means implementing this
// interface.
type Detector interface {
	Detect(ctx context.Context, frame io.Reader) (models.Detection, error)
}

// StubDetector returns a fixed bounding box and confidence for every frame.
type StubDetector struct{}

func NewStubDetector() *StubDetector {
	return &StubDetector{}
}

func (d *StubDetector) Detect(ctx context.Context, frame io.Reader) (models.Detection, error) {
	return models.Detection{
		XAxis:      10,
		YAxis:      20,
		WAxis:      10,
		HAxis:      20,
		Confidence: 0.5,
		Category:   "hand-raising",
	}, nil
}
