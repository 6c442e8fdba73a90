package transport

// CreateCampaignRequest contains data for creating a new campaign.
type CreateCampaignRequest struct {
	Name            string  `json:"name" validate:"required,min=1,max=255"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	DailyDialTarget *int    `json:"daily_dial_target,omitempty" validate:"omitempty,min=1,max=10000"`
}

// UpdateCampaignRequest contains data for updating an existing campaign.
type UpdateCampaignRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	DailyDialTarget *int    `json:"daily_dial_target,omitempty" validate:"omitempty,min=1,max=10000"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=active paused completed"`
}
