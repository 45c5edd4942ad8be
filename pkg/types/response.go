package types

// ErrorBody is the JSON shape of every failed API response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// StatusBody is returned by liveness style endpoints.
type StatusBody struct {
	Status string `json:"status"`
}
