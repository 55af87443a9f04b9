package dto

type VerifySubmissionRequestDTO struct {
	TaskID string   `json:"task_id" example:"6b1bb09c-9b38-4e2b-8d54-1a62cbd3fd6a"`
	Title  string   `json:"title" example:"Daily Task 1"`
	Images []string `json:"images" example:"data:image/png;base64,iVBORw0KGgo="`
}

type VerifySubmissionResponseDTO struct {
	Approved bool   `json:"approved"`
	Feedback string `json:"feedback" example:"Approved"`
}

type SubmitAssignmentRequestDTO struct {
	TaskID string `json:"task_id" example:"6b1bb09c-9b38-4e2b-8d54-1a62cbd3fd6a"`
	Title  string `json:"title" example:"Daily Task 1"`
	URL    string `json:"url" example:"https://example.com/proof"`
}

type GetAssignmentsResponseDTO struct {
	ID        int      `json:"id"`
	TaskID    string   `json:"task_id"`
	Title     string   `json:"title"`
	URLs      []string `json:"urls,omitempty"`
	Status    string   `json:"status" example:"approved"`
	Feedback  string   `json:"feedback,omitempty"`
	CreatedAt string   `json:"created_at" example:"2020-12-09T16:09:57+03:00"`
}

type ReviewRequestDTO struct {
	Action   string `json:"action" example:"approve"`
	Feedback string `json:"feedback,omitempty"`
}
