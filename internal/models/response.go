package models

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type BulkRunResponse struct {
	Message        string `json:"message"`
	ProcessedCount int    `json:"processedCount"`
}

type MatchRunResponse struct {
	ID             string  `json:"id"`
	Status         string  `json:"status"`
	ProcessedCount *int    `json:"processed_count,omitempty"`
	ErrorMessage   *string `json:"error_message,omitempty"`
}

type SystemStats struct {
	TotalStudents     int64   `json:"totalStudents"`
	ActiveInternships int64   `json:"activeInternships"`
	SuccessfulMatches int64   `json:"successfulMatches"`
	AvgMatchScore     float64 `json:"avgMatchScore"`
}

type DiversityMetrics struct {
	DiversityPercentage float64 `json:"diversityPercentage"`
	TotalWithDiversity  int64   `json:"totalWithDiversity"`
	TotalStudents       int64   `json:"totalStudents"`
}

type UploadResumeResponse struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	PageCount    int    `json:"page_count"`
}
