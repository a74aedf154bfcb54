package models

type ConsistencyCheck struct {
	ConsistencyToken string `json:"consistencyToken" validate:"required"`
}

type ConsistencyResponse struct {
	ConsistencyToken string `json:"consistencyToken,omitempty"`
	Consistent       bool   `json:"consistent"`
}
