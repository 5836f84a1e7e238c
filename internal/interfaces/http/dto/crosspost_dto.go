package dto

import (
	"time"

	"github.com/shopspring/decimal"

	appcrosspost "github.com/vintagecrib/backend/internal/application/crosspost"
	"github.com/vintagecrib/backend/internal/domain/crosspost"
)

// PublishRequest is the body of POST /items/:id/publish
type PublishRequest struct {
	// Platforms is the list of platform codes to publish to
	Platforms []string `json:"platforms" binding:"required,min=1,dive,platform"`
}

// RetryFailedRequest is the body of POST /items/retry-failed
type RetryFailedRequest struct {
	// Platform optionally narrows the retry to one platform
	Platform *string `json:"platform,omitempty" binding:"omitempty,platform"`
}

// ManualPackageResponse is the copy-paste package for a manual platform
type ManualPackageResponse struct {
	Platform      string   `json:"platform"`
	ListingURL    string   `json:"listing_url"`
	FormattedText string   `json:"formatted_text"`
	Instructions  []string `json:"instructions"`
}

// PlatformResultResponse is one platform's outcome within a publish call
type PlatformResultResponse struct {
	Platform     string                 `json:"platform"`
	Success      bool                   `json:"success"`
	Mode         string                 `json:"mode"`
	Live         bool                   `json:"live"`
	ExternalID   string                 `json:"external_id,omitempty"`
	ExternalURL  string                 `json:"external_url,omitempty"`
	Fees         *decimal.Decimal       `json:"fees,omitempty"`
	Manual       *ManualPackageResponse `json:"manual,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	Timestamp    time.Time              `json:"timestamp"`
}

// PublishResponse is the aggregate outcome of one publish call
type PublishResponse struct {
	Success         bool                     `json:"success"`
	PublishedCount  int                      `json:"published_count"`
	TotalRequested  int                      `json:"total_requested"`
	DeniedPlatforms []string                 `json:"denied_platforms"`
	PublishedTo     []string                 `json:"published_to"`
	Results         []PlatformResultResponse `json:"results"`
}

// RetryOutcomeResponse is one re-attempted pair from a retry call
type RetryOutcomeResponse struct {
	ItemID string                 `json:"item_id"`
	Result PlatformResultResponse `json:"result"`
}

// RetryFailedResponse is the outcome of POST /items/retry-failed
type RetryFailedResponse struct {
	Retried  int                    `json:"retried"`
	Outcomes []RetryOutcomeResponse `json:"outcomes"`
}

// CrossPostRecordResponse is one ledger record in the status readout
type CrossPostRecordResponse struct {
	Platform     string     `json:"platform"`
	Mode         string     `json:"mode"`
	Status       string     `json:"status"`
	ExternalID   string     `json:"external_id,omitempty"`
	ExternalURL  string     `json:"external_url,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	AttemptCount int        `json:"attempt_count"`
	NextRetryAt  *time.Time `json:"next_retry_at,omitempty"`
	PostedAt     time.Time  `json:"posted_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LedgerResponse is the per-item ledger readout
type LedgerResponse struct {
	ItemID             string                    `json:"item_id"`
	Records            []CrossPostRecordResponse `json:"records"`
	AttemptsByPlatform map[string]int            `json:"attempts_by_platform"`
}

// FromPublishResult maps a domain publish result into the response shape
func FromPublishResult(result crosspost.PublishResult) PlatformResultResponse {
	resp := PlatformResultResponse{
		Platform:     result.Platform.String(),
		Success:      result.Success,
		Mode:         result.Mode.String(),
		Live:         result.IsLive(),
		ExternalID:   result.ExternalID,
		ExternalURL:  result.ExternalURL,
		ErrorMessage: result.ErrorMessage,
		Timestamp:    result.Timestamp,
	}
	if result.IsLive() {
		fees := result.Fees
		resp.Fees = &fees
	}
	if result.Manual != nil {
		resp.Manual = &ManualPackageResponse{
			Platform:      result.Manual.Platform.String(),
			ListingURL:    result.Manual.ListingURL,
			FormattedText: result.Manual.FormattedText,
			Instructions:  result.Manual.Instructions,
		}
	}
	return resp
}

// FromAggregateResult maps the engine's aggregate result into the response
// shape. Per-platform results are emitted in stable platform order.
func FromAggregateResult(agg *appcrosspost.AggregateResult) PublishResponse {
	resp := PublishResponse{
		Success:         agg.Success,
		PublishedCount:  agg.PublishedCount,
		TotalRequested:  agg.TotalRequested,
		DeniedPlatforms: platformNames(agg.DeniedPlatforms),
		PublishedTo:     platformNames(agg.PublishedTo),
		Results:         make([]PlatformResultResponse, 0, len(agg.Results)),
	}
	for _, platform := range crosspost.AllPlatforms() {
		if result, ok := agg.Results[platform]; ok {
			resp.Results = append(resp.Results, FromPublishResult(result))
		}
	}
	return resp
}

// FromRetryOutcomes maps retry outcomes into the response shape
func FromRetryOutcomes(outcomes []appcrosspost.RetryOutcome) RetryFailedResponse {
	resp := RetryFailedResponse{
		Retried:  len(outcomes),
		Outcomes: make([]RetryOutcomeResponse, 0, len(outcomes)),
	}
	for _, outcome := range outcomes {
		resp.Outcomes = append(resp.Outcomes, RetryOutcomeResponse{
			ItemID: outcome.ItemID.String(),
			Result: FromPublishResult(outcome.Result),
		})
	}
	return resp
}

// FromLedgerStatus maps the engine's ledger readout into the response shape
func FromLedgerStatus(status *appcrosspost.LedgerStatus) LedgerResponse {
	resp := LedgerResponse{
		ItemID:             status.ItemID.String(),
		Records:            make([]CrossPostRecordResponse, 0, len(status.Records)),
		AttemptsByPlatform: make(map[string]int, len(status.AttemptsByPlatform)),
	}
	for _, record := range status.Records {
		resp.Records = append(resp.Records, CrossPostRecordResponse{
			Platform:     record.Platform.String(),
			Mode:         record.Mode.String(),
			Status:       record.Status.String(),
			ExternalID:   record.ExternalID,
			ExternalURL:  record.ExternalURL,
			ErrorMessage: record.ErrorMessage,
			AttemptCount: record.AttemptCount,
			NextRetryAt:  record.NextRetryAt,
			PostedAt:     record.PostedAt,
			UpdatedAt:    record.UpdatedAt,
		})
	}
	for platform, count := range status.AttemptsByPlatform {
		resp.AttemptsByPlatform[platform.String()] = count
	}
	return resp
}

func platformNames(platforms []crosspost.PlatformName) []string {
	names := make([]string, 0, len(platforms))
	for _, p := range platforms {
		names = append(names, p.String())
	}
	return names
}
