package models

import "github.com/google/uuid"

// StudentProfile is the immutable candidate snapshot passed into scoring.
type StudentProfile struct {
	Skills        []string `json:"skills"`
	CGPA          float64  `json:"cgpa"`
	Location      string   `json:"location"`
	DiversityFlag bool     `json:"diversity_flag"`
}

// InternshipSummary is the immutable posting snapshot passed into scoring.
type InternshipSummary struct {
	ID             uuid.UUID `json:"id"`
	RequiredSkills []string  `json:"required_skills"`
	Location       string    `json:"location"`
	Title          string    `json:"title"`
}

type MatchRequest struct {
	StudentProfile StudentProfile      `json:"student_profile"`
	Internships    []InternshipSummary `json:"internships"`
}

// MatchResult is one scored pairing. SkillOverlap holds the candidate skills
// that satisfy a required skill; MissingSkills holds the required skills no
// candidate skill satisfies. Scores are clamped to [0,100] and rounded to
// two decimals.
type MatchResult struct {
	InternshipID  uuid.UUID `json:"internship_id"`
	MatchScore    float64   `json:"match_score"`
	Explanation   string    `json:"explanation"`
	SkillOverlap  []string  `json:"skill_overlap"`
	MissingSkills []string  `json:"missing_skills"`
}

type MatchResponse struct {
	Matches []MatchResult `json:"matches"`
}

// Candidate is a student enriched with their score against one internship,
// returned to companies browsing applicants.
type Candidate struct {
	Student
	MatchScore    float64  `json:"match_score"`
	Explanation   string   `json:"explanation"`
	SkillOverlap  []string `json:"skill_overlap"`
	MissingSkills []string `json:"missing_skills"`
}
