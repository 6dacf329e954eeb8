package grading

import (
	"context"

	"github.com/pickemhq/pickem/internal/domain/event"
	"github.com/pickemhq/pickem/internal/domain/pick"
)

// Repository applies a grading pass atomically: the answered event contents
// and every pick's points land in one transaction so readers never see
// answers without points.
type Repository interface {
	ApplyAnswers(ctx context.Context, events []event.Event, updates []pick.PointsUpdate) error
}
