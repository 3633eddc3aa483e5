package dto

import (
	"time"

	"github.com/finsight/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AssetParamsRequest defines the optional asset forecasting inputs on a goal.
type AssetParamsRequest struct {
	InitialPrice     decimal.Decimal `json:"initialPrice" binding:"required"`
	AnnualRate       float64         `json:"annualRate"`
	DownPaymentRatio float64         `json:"downPaymentRatio" binding:"gte=0,lte=1"`
}

// CreateGoalRequest defines the data needed to create a financial goal.
type CreateGoalRequest struct {
	Name         string              `json:"name" binding:"required,min=1,max=100"`
	TargetAmount decimal.Decimal     `json:"targetAmount" binding:"required,dgt0"`
	TargetDate   time.Time           `json:"targetDate" binding:"required"`
	AssetParams  *AssetParamsRequest `json:"assetParams"` // Optional, enables asset forecasting
}

// UpdateGoalRequest defines the data allowed for updating a goal.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateGoalRequest struct {
	Name         *string             `json:"name"`
	TargetAmount *decimal.Decimal    `json:"targetAmount"`
	TargetDate   *time.Time          `json:"targetDate"`
	AssetParams  *AssetParamsRequest `json:"assetParams"`
}

// AddContributionRequest defines the data needed to record a goal contribution.
type AddContributionRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Month  time.Time       `json:"month" binding:"required"`
	Notes  string          `json:"notes" binding:"max=255"`
}

// AssetParamsResponse mirrors domain.AssetParams.
type AssetParamsResponse struct {
	InitialPrice     decimal.Decimal `json:"initialPrice"`
	AnnualRate       float64         `json:"annualRate"`
	DownPaymentRatio float64         `json:"downPaymentRatio"`
}

// GoalResponse defines the data returned for a goal.
// Mirrors domain.Goal.
type GoalResponse struct {
	GoalID        string               `json:"goalID"`
	Name          string               `json:"name"`
	TargetAmount  decimal.Decimal      `json:"targetAmount"`
	CurrentAmount decimal.Decimal      `json:"currentAmount"`
	TargetDate    time.Time            `json:"targetDate"`
	IsCompleted   bool                 `json:"isCompleted"`
	AssetParams   *AssetParamsResponse `json:"assetParams,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ContributionResponse defines the data returned for a goal contribution.
type ContributionResponse struct {
	ContributionID string          `json:"contributionID"`
	GoalID         string          `json:"goalID"`
	Amount         decimal.Decimal `json:"amount"`
	Month          time.Time       `json:"month"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ListGoalsParams defines query parameters for listing goals.
type ListGoalsParams struct {
	Limit            int     `form:"limit,default=20"`
	NextToken        *string `form:"nextToken"`
	IncludeCompleted bool    `form:"includeCompleted,default=false"`
}

// ListGoalsResponse wraps the list of goals with the pagination token.
type ListGoalsResponse struct {
	Goals     []GoalResponse `json:"goals"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ListContributionsResponse wraps a goal's contribution history.
type ListContributionsResponse struct {
	Contributions []ContributionResponse `json:"contributions"`
}

// ToGoalResponse converts a domain.Goal to GoalResponse DTO
func ToGoalResponse(g *domain.Goal) GoalResponse {
	resp := GoalResponse{
		GoalID:        g.GoalID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		TargetDate:    g.TargetDate,
		IsCompleted:   g.IsCompleted,
		CreatedAt:     g.CreatedAt,
		CreatedBy:     g.CreatedBy,
		LastUpdatedAt: g.LastUpdatedAt,
		LastUpdatedBy: g.LastUpdatedBy,
	}
	if g.AssetParams != nil {
		resp.AssetParams = &AssetParamsResponse{
			InitialPrice:     g.AssetParams.InitialPrice,
			AnnualRate:       g.AssetParams.AnnualRate,
			DownPaymentRatio: g.AssetParams.DownPaymentRatio,
		}
	}
	return resp
}

// ToListGoalsResponse converts a slice of domain.Goal to ListGoalsResponse
func ToListGoalsResponse(goals []domain.Goal, nextToken *string) ListGoalsResponse {
	res := make([]GoalResponse, len(goals))
	for i, g := range goals {
		res[i] = ToGoalResponse(&g)
	}
	return ListGoalsResponse{Goals: res, NextToken: nextToken}
}

// ToContributionResponse converts a domain.GoalContribution to ContributionResponse DTO
func ToContributionResponse(c *domain.GoalContribution) ContributionResponse {
	return ContributionResponse{
		ContributionID: c.ContributionID,
		GoalID:         c.GoalID,
		Amount:         c.Amount,
		Month:          c.Month,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		CreatedBy:      c.CreatedBy,
	}
}

// ToListContributionsResponse converts a slice of domain.GoalContribution to ListContributionsResponse
func ToListContributionsResponse(contributions []domain.GoalContribution) ListContributionsResponse {
	res := make([]ContributionResponse, len(contributions))
	for i, c := range contributions {
		res[i] = ToContributionResponse(&c)
	}
	return ListContributionsResponse{Contributions: res}
}
