package handlers

import (
	"encoding/json"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"internmatch/internal/models"
	"internmatch/internal/repositories"
	"internmatch/internal/services"
)

type CompanyHandler struct {
	companyRepo    repositories.CompanyRepository
	internshipRepo repositories.InternshipRepository
	studentRepo    repositories.StudentRepository
	matcher        services.MatcherService
}

func NewCompanyHandler(
	companyRepo repositories.CompanyRepository,
	internshipRepo repositories.InternshipRepository,
	studentRepo repositories.StudentRepository,
	matcher services.MatcherService,
) *CompanyHandler {
	return &CompanyHandler{
		companyRepo:    companyRepo,
		internshipRepo: internshipRepo,
		studentRepo:    studentRepo,
		matcher:        matcher,
	}
}

// HandleGetProfile handles GET /companies/profile
func (h *CompanyHandler) HandleGetProfile(c *fiber.Ctx) error {
	company, err := h.companyRepo.FindByUserID(currentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Company profile not found",
		})
	}

	return c.JSON(company)
}

type updateCompanyRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Industry *string `json:"industry"`
}

// HandleUpdateProfile handles PUT /companies/profile
func (h *CompanyHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req updateCompanyRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Industry != nil {
		updates["industry"] = *req.Industry
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	company, err := h.companyRepo.Update(currentUserID(c), updates)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.JSON(company)
}

type internshipRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	Location       string   `json:"location"`
	Stipend        int      `json:"stipend"`
	Positions      int      `json:"positions"`
}

// HandleCreateInternship handles POST /internships
func (h *CompanyHandler) HandleCreateInternship(c *fiber.Ctx) error {
	company, err := h.companyRepo.FindByUserID(currentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Company profile not found",
		})
	}

	var req internshipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	skills := req.RequiredSkills
	if skills == nil {
		skills = []string{}
	}

	positions := req.Positions
	if positions <= 0 {
		positions = 1
	}

	internship := &models.Internship{
		ID:             uuid.New(),
		CompanyID:      company.ID,
		Title:          req.Title,
		Description:    req.Description,
		RequiredSkills: skills,
		Location:       req.Location,
		Stipend:        req.Stipend,
		Positions:      positions,
		IsActive:       true,
	}

	if err := h.internshipRepo.Create(internship); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create internship",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(internship)
}

// HandleListInternships handles GET /internships — the caller's postings.
func (h *CompanyHandler) HandleListInternships(c *fiber.Ctx) error {
	company, err := h.companyRepo.FindByUserID(currentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Company profile not found",
		})
	}

	internships, err := h.internshipRepo.FindByCompany(company.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch internships",
		})
	}

	return c.JSON(internships)
}

type updateInternshipRequest struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	RequiredSkills *[]string `json:"required_skills"`
	Location       *string   `json:"location"`
	Stipend        *int      `json:"stipend"`
	Positions      *int      `json:"positions"`
	IsActive       *bool     `json:"is_active"`
}

// HandleUpdateInternship handles PUT /internships/:id
func (h *CompanyHandler) HandleUpdateInternship(c *fiber.Ctx) error {
	internship, err := h.ownedInternship(c)
	if err != nil {
		return err
	}

	var req updateInternshipRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.RequiredSkills != nil {
		encoded, err := json.Marshal(*req.RequiredSkills)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid required_skills payload",
			})
		}
		updates["required_skills"] = string(encoded)
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Stipend != nil {
		updates["stipend"] = *req.Stipend
	}
	if req.Positions != nil {
		updates["positions"] = *req.Positions
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No fields to update",
		})
	}

	updated, err := h.internshipRepo.Update(internship.ID, updates)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update internship",
		})
	}

	return c.JSON(updated)
}

// HandleDeleteInternship handles DELETE /internships/:id
func (h *CompanyHandler) HandleDeleteInternship(c *fiber.Ctx) error {
	internship, err := h.ownedInternship(c)
	if err != nil {
		return err
	}

	if err := h.internshipRepo.Delete(internship.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete internship",
		})
	}

	return c.JSON(fiber.Map{"deleted": internship.ID.String()})
}

// HandleCandidates handles GET /candidates/:internshipId — every student
// scored one-to-one against the posting, ranked, top 20.
func (h *CompanyHandler) HandleCandidates(c *fiber.Ctx) error {
	internshipID, err := uuid.Parse(c.Params("internshipId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid internship ID format",
		})
	}

	internship, err := h.internshipRepo.FindByID(internshipID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Internship not found",
		})
	}

	students, err := h.studentRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch students",
		})
	}

	summary := internship.Summary()
	candidates := make([]models.Candidate, 0, len(students))

	for _, student := range students {
		response := h.matcher.CalculateMatches(c.UserContext(), models.MatchRequest{
			StudentProfile: student.Profile(),
			Internships:    []models.InternshipSummary{summary},
		})
		if len(response.Matches) == 0 {
			continue
		}

		match := response.Matches[0]
		candidates = append(candidates, models.Candidate{
			Student:       student,
			MatchScore:    match.MatchScore,
			Explanation:   match.Explanation,
			SkillOverlap:  match.SkillOverlap,
			MissingSkills: match.MissingSkills,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})

	if len(candidates) > services.CandidateListTopK {
		candidates = candidates[:services.CandidateListTopK]
	}

	return c.JSON(candidates)
}

// ownedInternship resolves :id and checks it belongs to the caller.
func (h *CompanyHandler) ownedInternship(c *fiber.Ctx) (*models.Internship, error) {
	internshipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid internship ID format")
	}

	company, err := h.companyRepo.FindByUserID(currentUserID(c))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Company profile not found")
	}

	internship, err := h.internshipRepo.FindByID(internshipID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Internship not found")
	}

	if internship.CompanyID != company.ID {
		return nil, fiber.NewError(fiber.StatusForbidden, "access denied")
	}

	return internship, nil
}
