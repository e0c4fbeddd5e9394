package services

import (
	"context"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
)

// ReportingSvcFacade defines operations for aggregate summaries over a
// filtered transaction collection.
type ReportingSvcFacade interface {
	// Summary computes counts, paid/unpaid splits and the distinct
	// counterparty and line-item display lists for the matching records.
	// The unfiltered summary is served from a cache that the invalidation
	// bus clears on every ledger mutation.
	Summary(ctx context.Context, params dto.SummaryParams) (*domain.Metrics, error)
}
