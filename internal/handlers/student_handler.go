package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"internmatch/internal/models"
	"internmatch/internal/repositories"
	"internmatch/internal/services"
)

type StudentHandler struct {
	studentRepo    repositories.StudentRepository
	feedbackRepo   repositories.FeedbackRepository
	storageService services.StorageService
	resumeParser   services.ResumeParserService
	maxFileSize    int64
}

func NewStudentHandler(
	studentRepo repositories.StudentRepository,
	feedbackRepo repositories.FeedbackRepository,
	storageService services.StorageService,
	resumeParser services.ResumeParserService,
	maxFileSize int64,
) *StudentHandler {
	return &StudentHandler{
		studentRepo:    studentRepo,
		feedbackRepo:   feedbackRepo,
		storageService: storageService,
		resumeParser:   resumeParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleGetProfile handles GET /students/profile
func (h *StudentHandler) HandleGetProfile(c *fiber.Ctx) error {
	student, err := h.studentRepo.FindByUserID(currentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student profile not found",
		})
	}

	return c.JSON(student)
}

type updateStudentRequest struct {
	Name          *string   `json:"name"`
	Skills        *[]string `json:"skills"`
	CGPA          *float64  `json:"cgpa"`
	Location      *string   `json:"location"`
	DiversityFlag *bool     `json:"diversity_flag"`
}

// HandleUpdateProfile handles PUT /students/profile
func (h *StudentHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req updateStudentRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	updates := map[string]interface{}{
		"profile_completed": true,
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Skills != nil {
		// Map updates bypass the gorm serializer, so encode the jsonb
		// column value here.
		encoded, err := json.Marshal(*req.Skills)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid skills payload",
			})
		}
		updates["skills"] = string(encoded)
	}
	if req.CGPA != nil {
		updates["cgpa"] = *req.CGPA
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.DiversityFlag != nil {
		updates["diversity_flag"] = *req.DiversityFlag
	}

	student, err := h.studentRepo.Update(currentUserID(c), updates)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.JSON(student)
}

type feedbackRequest struct {
	InternshipID string `json:"internship_id"`
	Feedback     string `json:"feedback"`
}

// HandleSubmitFeedback handles POST /students/feedback
func (h *StudentHandler) HandleSubmitFeedback(c *fiber.Ctx) error {
	var req feedbackRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	internshipID, err := uuid.Parse(req.InternshipID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid internship_id format",
		})
	}

	value := models.FeedbackValue(req.Feedback)
	if value != models.FeedbackGood && value != models.FeedbackPoor {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "feedback must be good or poor",
		})
	}

	student, err := h.studentRepo.FindByUserID(currentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student profile not found",
		})
	}

	feedback := &models.MatchFeedback{
		ID:           uuid.New(),
		StudentID:    student.ID,
		InternshipID: internshipID,
		Feedback:     value,
	}

	if err := h.feedbackRepo.Create(feedback); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit feedback",
		})
	}

	return c.JSON(feedback)
}

// HandleUploadResume handles POST /students/resume. Saves the PDF, extracts
// its text and stores both on the profile.
func (h *StudentHandler) HandleUploadResume(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveResume(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume: %v", err),
		})
	}

	content, err := h.resumeParser.ExtractText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to parse resume: %v", err),
		})
	}

	if _, err := h.studentRepo.Update(currentUserID(c), map[string]interface{}{
		"resume_filename": filename,
		"resume_text":     content.Text,
	}); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store resume on profile",
		})
	}

	return c.JSON(models.UploadResumeResponse{
		Filename:     filename,
		OriginalName: file.Filename,
		PageCount:    content.PageCount,
	})
}
