package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"internmatch/internal/models"
)

// Scoring weights. The skills term carries 50% of the composite in both the
// embedding path and the ratio fallback; the two formulas are distinct and
// individually deterministic, not approximations of each other.
const (
	skillsWeight   = 50.0
	cgpaWeight     = 20.0
	locationBonus  = 10.0
	diversityBonus = 20.0
)

// Acceptance threshold and top-K cutoffs, as configured for each surface.
const (
	AcceptThreshold   = 50.0
	BulkTopK          = 3
	PreviewTopK       = 3
	MatchListTopK     = 5
	CandidateListTopK = 20
)

type MatcherService interface {
	// CalculateMatches scores one candidate against every internship in the
	// request and returns the results sorted by score descending. It never
	// fails: if the embedding path breaks anywhere, the entire batch is
	// recomputed with the ratio fallback so no batch mixes AI-scored and
	// ratio-scored results.
	CalculateMatches(ctx context.Context, req models.MatchRequest) models.MatchResponse
}

type matcherService struct {
	provider *SimilarityProvider
}

func NewMatcherService(provider *SimilarityProvider) MatcherService {
	return &matcherService{provider: provider}
}

// CalculateMatches implements MatcherService.
func (m *matcherService) CalculateMatches(ctx context.Context, req models.MatchRequest) models.MatchResponse {
	matches, err := m.embeddingMatches(ctx, req)
	if err != nil {
		log.Printf("⚠️  Embedding path failed, falling back to basic matching: %v\n", err)
		matches = basicMatches(req)
	}

	Rank(matches)
	return models.MatchResponse{Matches: matches}
}

// embeddingMatches is the preferred path. The first embed error aborts the
// whole batch; partial results are discarded.
func (m *matcherService) embeddingMatches(ctx context.Context, req models.MatchRequest) ([]models.MatchResult, error) {
	profile := req.StudentProfile

	studentVector, err := m.provider.Embed(ctx, strings.Join(profile.Skills, ", "))
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidate skills: %w", err)
	}

	matches := make([]models.MatchResult, 0, len(req.Internships))

	for _, internship := range req.Internships {
		internshipVector, err := m.provider.Embed(ctx, strings.Join(internship.RequiredSkills, ", "))
		if err != nil {
			return nil, fmt.Errorf("failed to embed required skills for %s: %w", internship.ID, err)
		}

		similarity := CosineSimilarity(studentVector, internshipVector)
		overlap, missing := skillOverlap(profile.Skills, internship.RequiredSkills)

		skillsScore := similarity * skillsWeight
		cgpaScore := (profile.CGPA / 10) * cgpaWeight
		locationScore := 0.0
		if profile.Location == internship.Location {
			locationScore = locationBonus
		}
		diversityScore := 0.0
		if profile.DiversityFlag {
			diversityScore = diversityBonus
		}

		var explanation strings.Builder
		if similarity > 0.8 {
			explanation.WriteString("Excellent AI-powered skill match. ")
		} else if similarity > 0.6 {
			explanation.WriteString("Good skill compatibility detected. ")
		} else if similarity > 0.4 {
			explanation.WriteString("Moderate skill alignment. ")
		} else {
			explanation.WriteString("Limited skill match. ")
		}

		if len(overlap) > 0 {
			explanation.WriteString(fmt.Sprintf("Direct skill overlap: %s. ", strings.Join(overlap, ", ")))
		}
		if locationScore > 0 {
			explanation.WriteString("Location match bonus applied. ")
		}
		if cgpaScore >= 16 { // CGPA > 8.0
			explanation.WriteString("High CGPA advantage. ")
		}
		if diversityScore > 0 {
			explanation.WriteString("Diversity boost applied. ")
		}
		if len(missing) > 0 {
			explanation.WriteString(fmt.Sprintf("Recommended skills to learn: %s.", strings.Join(firstN(missing, 2), ", ")))
		}

		matches = append(matches, models.MatchResult{
			InternshipID:  internship.ID,
			MatchScore:    clampRound(skillsScore + cgpaScore + locationScore + diversityScore),
			Explanation:   strings.TrimSpace(explanation.String()),
			SkillOverlap:  overlap,
			MissingSkills: missing,
		})
	}

	return matches, nil
}

// basicMatches is the fallback path: the skills term becomes the overlap
// ratio |overlap|/max(|required|,1) instead of an embedding similarity.
func basicMatches(req models.MatchRequest) []models.MatchResult {
	profile := req.StudentProfile
	matches := make([]models.MatchResult, 0, len(req.Internships))

	for _, internship := range req.Internships {
		overlap, missing := skillOverlap(profile.Skills, internship.RequiredSkills)

		ratio := float64(len(overlap)) / math.Max(float64(len(internship.RequiredSkills)), 1)
		skillsScore := ratio * skillsWeight
		cgpaScore := (profile.CGPA / 10) * cgpaWeight
		locationScore := 0.0
		if profile.Location == internship.Location {
			locationScore = locationBonus
		}
		diversityScore := 0.0
		if profile.DiversityFlag {
			diversityScore = diversityBonus
		}

		var explanation strings.Builder
		explanation.WriteString("Basic matching (AI unavailable). ")
		if len(overlap) > 0 {
			explanation.WriteString(fmt.Sprintf("Skill overlap: %s. ", strings.Join(overlap, ", ")))
		}
		if locationScore > 0 {
			explanation.WriteString("Location match bonus. ")
		}
		if cgpaScore >= 16 {
			explanation.WriteString("High CGPA advantage. ")
		}
		if diversityScore > 0 {
			explanation.WriteString("Diversity boost. ")
		}
		if len(missing) > 0 {
			explanation.WriteString(fmt.Sprintf("Consider learning: %s.", strings.Join(firstN(missing, 2), ", ")))
		}

		matches = append(matches, models.MatchResult{
			InternshipID:  internship.ID,
			MatchScore:    clampRound(skillsScore + cgpaScore + locationScore + diversityScore),
			Explanation:   strings.TrimSpace(explanation.String()),
			SkillOverlap:  overlap,
			MissingSkills: missing,
		})
	}

	return matches
}

// skillOverlap classifies every required skill as satisfied or missing. Two
// skills match when the lowercase form of either is a substring of the
// other. Overlap holds the candidate skills with at least one match;
// missing holds the required skills with none. A skill shared by both sides
// can never land in both sets.
func skillOverlap(candidateSkills, requiredSkills []string) (overlap, missing []string) {
	overlap = make([]string, 0, len(candidateSkills))
	missing = make([]string, 0, len(requiredSkills))

	for _, skill := range candidateSkills {
		for _, required := range requiredSkills {
			if skillsMatch(skill, required) {
				overlap = append(overlap, skill)
				break
			}
		}
	}

	for _, required := range requiredSkills {
		satisfied := false
		for _, skill := range candidateSkills {
			if skillsMatch(skill, required) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			missing = append(missing, required)
		}
	}

	return overlap, missing
}

func skillsMatch(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// clampRound bounds a raw composite to [0,100] and rounds to two decimals.
func clampRound(score float64) float64 {
	score = math.Min(score, 100)
	score = math.Max(score, 0)
	return math.Round(score*100) / 100
}

// Rank sorts results by score descending in place. The sort is stable, so
// ties keep their input order.
func Rank(results []models.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
}

// TopN truncates ranked results to at most n.
func TopN(results []models.MatchResult, n int) []models.MatchResult {
	if len(results) <= n {
		return results
	}
	return results[:n]
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
