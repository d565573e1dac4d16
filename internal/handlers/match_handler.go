package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"internmatch/internal/models"
	"internmatch/internal/repositories"
	"internmatch/internal/services"
)

type MatchHandler struct {
	studentRepo    repositories.StudentRepository
	internshipRepo repositories.InternshipRepository
	allocationRepo repositories.AllocationRepository
	companyRepo    repositories.CompanyRepository
	matcher        services.MatcherService
}

func NewMatchHandler(
	studentRepo repositories.StudentRepository,
	internshipRepo repositories.InternshipRepository,
	allocationRepo repositories.AllocationRepository,
	companyRepo repositories.CompanyRepository,
	matcher services.MatcherService,
) *MatchHandler {
	return &MatchHandler{
		studentRepo:    studentRepo,
		internshipRepo: internshipRepo,
		allocationRepo: allocationRepo,
		companyRepo:    companyRepo,
		matcher:        matcher,
	}
}

// liveMatches scores the caller's profile against all active internships.
func (h *MatchHandler) liveMatches(c *fiber.Ctx) ([]models.MatchResult, error) {
	student, err := h.studentRepo.FindByUserID(currentUserID(c))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Student profile not found")
	}

	internships, err := h.internshipRepo.FindAllActive()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load internships")
	}

	summaries := make([]models.InternshipSummary, 0, len(internships))
	for i := range internships {
		summaries = append(summaries, internships[i].Summary())
	}

	response := h.matcher.CalculateMatches(c.UserContext(), models.MatchRequest{
		StudentProfile: student.Profile(),
		Internships:    summaries,
	})

	return response.Matches, nil
}

// HandleStudentMatches handles GET /students/matches — the full match list.
func (h *MatchHandler) HandleStudentMatches(c *fiber.Ctx) error {
	matches, err := h.liveMatches(c)
	if err != nil {
		return err
	}

	return c.JSON(services.TopN(matches, services.MatchListTopK))
}

// HandleMatchPreview handles GET /match/preview — the dashboard teaser.
func (h *MatchHandler) HandleMatchPreview(c *fiber.Ctx) error {
	matches, err := h.liveMatches(c)
	if err != nil {
		return err
	}

	return c.JSON(services.TopN(matches, services.PreviewTopK))
}

type allocationStatusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateAllocationStatus handles PATCH /allocations/:id/status.
// Students may move their own allocation to "applied"; companies may move
// allocations on their postings to "shortlisted" or "rejected".
func (h *MatchHandler) HandleUpdateAllocationStatus(c *fiber.Ctx) error {
	allocationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid allocation ID format",
		})
	}

	var req allocationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	status := models.AllocationStatus(req.Status)
	if !models.ValidAllocationStatus(status) || status == models.StatusMatched {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status must be one of applied, shortlisted, rejected",
		})
	}

	allocation, err := h.allocationRepo.FindByID(allocationID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Allocation not found",
		})
	}

	switch currentRole(c) {
	case models.RoleStudent:
		if status != models.StatusApplied {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "students can only apply",
			})
		}
		student, err := h.studentRepo.FindByUserID(currentUserID(c))
		if err != nil || student.ID != allocation.StudentID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "access denied",
			})
		}
	case models.RoleCompany:
		if status != models.StatusShortlisted && status != models.StatusRejected {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "companies can only shortlist or reject",
			})
		}
		company, err := h.companyRepo.FindByUserID(currentUserID(c))
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "access denied",
			})
		}
		internship, err := h.internshipRepo.FindByID(allocation.InternshipID)
		if err != nil || internship.CompanyID != company.ID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "access denied",
			})
		}
	case models.RoleAdmin:
		// Admins may apply any transition.
	default:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	if err := h.allocationRepo.UpdateStatus(allocationID, status); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update allocation",
		})
	}

	return c.JSON(fiber.Map{
		"id":     allocationID.String(),
		"status": string(status),
	})
}
