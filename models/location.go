package models

// State is an Indian state served by /locations/states.
type State struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// District is a district within a state.
type District struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
