package catalog

// Rating is one user's score and comment for a game.
type Rating struct {
	Score    float64 `json:"score"`
	Comment  string  `json:"comment"`
	Username string  `json:"username"`
}

// MessageResponse is the body the API returns for errors and write operations.
type MessageResponse struct {
	Message string `json:"message"`
}

// CategoryFilter is the body of a category filter request.
type CategoryFilter struct {
	Categories []string `json:"categories"`
}
