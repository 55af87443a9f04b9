package dto

type CreateTaskRequestDTO struct {
	Title string `json:"title" example:"Daily Task 1"`
	URL   string `json:"url" example:"https://example.com/task-brief"`
}

type TaskResponseDTO struct {
	ID        string `json:"id" example:"6b1bb09c-9b38-4e2b-8d54-1a62cbd3fd6a"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}
