package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"internmatch/internal/models"
	"internmatch/internal/repositories"
	"internmatch/internal/services"
)

type AdminHandler struct {
	statsService   services.StatsService
	allocator      services.AllocatorService
	allocationRepo repositories.AllocationRepository
	runRepo        repositories.MatchRunRepository
	worker         services.Worker
}

func NewAdminHandler(
	statsService services.StatsService,
	allocator services.AllocatorService,
	allocationRepo repositories.AllocationRepository,
	runRepo repositories.MatchRunRepository,
	worker services.Worker,
) *AdminHandler {
	return &AdminHandler{
		statsService:   statsService,
		allocator:      allocator,
		allocationRepo: allocationRepo,
		runRepo:        runRepo,
		worker:         worker,
	}
}

// HandleStats handles GET /admin/stats
func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.statsService.SystemStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get stats",
		})
	}

	return c.JSON(stats)
}

// HandleFairness handles GET /admin/fairness
func (h *AdminHandler) HandleFairness(c *fiber.Ctx) error {
	metrics, err := h.statsService.DiversityMetrics()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get fairness metrics",
		})
	}

	return c.JSON(metrics)
}

// HandleAudit handles GET /admin/audit — the full allocation trail, no cap.
func (h *AdminHandler) HandleAudit(c *fiber.Ctx) error {
	details, err := h.allocationRepo.FindWithDetails()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get audit trail",
		})
	}

	return c.JSON(details)
}

// HandleRunMatching handles POST /admin/match/run — the synchronous full
// pass over every student.
func (h *AdminHandler) HandleRunMatching(c *fiber.Ctx) error {
	processedCount, err := h.allocator.RunBulk(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to run matching process",
		})
	}

	return c.JSON(models.BulkRunResponse{
		Message:        fmt.Sprintf("Processed %d students", processedCount),
		ProcessedCount: processedCount,
	})
}

// HandleEnqueueRun handles POST /admin/match/bulk — queues a run for the
// background worker and returns its id immediately.
func (h *AdminHandler) HandleEnqueueRun(c *fiber.Ctx) error {
	run := &models.MatchRun{
		ID:     uuid.New(),
		Status: models.RunQueued,
	}

	if err := h.runRepo.Create(run); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create match run",
		})
	}

	h.worker.EnqueueRun(run.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.MatchRunResponse{
		ID:     run.ID.String(),
		Status: string(run.Status),
	})
}

// HandleGetRun handles GET /admin/match/runs/:id
func (h *AdminHandler) HandleGetRun(c *fiber.Ctx) error {
	runID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid match run ID format",
		})
	}

	run, err := h.runRepo.FindByID(runID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Match run not found",
		})
	}

	return c.JSON(models.MatchRunResponse{
		ID:             run.ID.String(),
		Status:         string(run.Status),
		ProcessedCount: run.ProcessedCount,
		ErrorMessage:   run.ErrorMessage,
	})
}
