package dto

type ApplicationRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Company    string `json:"company"`
	Experience string `json:"experience"`
	WarStory   string `json:"warStory"`
}

type ApplicationSubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ApplicationStatusResponse reports "not_found" when no application exists.
type ApplicationStatusResponse struct {
	Status      string `json:"status"`
	SubmittedAt string `json:"submittedAt,omitempty"`
}
