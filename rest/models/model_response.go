package models

// TablesResponse is returned by mutations that have no other result.
type TablesResponse struct {
	Success bool `json:"success"`
}
