package public

import (
	"context"

	"github.com/langowen/calibrator/internal/calibrator/service"
)

type Service interface {
	Calibrate(ctx context.Context, in service.Input) (*service.Report, error)
}
