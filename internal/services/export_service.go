package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/workshopwise/marketplace-service/internal/repositories"
)

type exportService struct {
	repo     repositories.Repository
	workshop WorkshopService
	logger   *slog.Logger
}

func NewExportService(repo repositories.Repository, workshop WorkshopService, logger *slog.Logger) ExportService {
	return &exportService{
		repo:     repo,
		workshop: workshop,
		logger:   logger,
	}
}

// ExportWorkshopRegistrations builds an xlsx attendee sheet for the owning
// enterprise. Returns the file bytes and a suggested filename.
func (s *exportService) ExportWorkshopRegistrations(ctx context.Context, userID, workshopID uint) ([]byte, string, error) {
	// Ownership check and data fetch share the workshop service path
	registrations, err := s.workshop.GetRegistrations(ctx, userID, workshopID)
	if err != nil {
		return nil, "", err
	}

	workshop, err := s.repo.Workshop().GetByID(ctx, nil, workshopID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, "", ErrWorkshopNotFound
		}
		return nil, "", fmt.Errorf("failed to get workshop: %w", err)
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Registrations"
	file.SetSheetName(file.GetSheetName(0), sheet)

	headers := []string{"#", "Name", "Email", "Status", "Reason", "Payment Proof", "Registered At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, header)
	}

	for row, entry := range registrations {
		values := []interface{}{
			row + 1,
			entry.User.Name,
			entry.User.Email,
			string(entry.Registration.Status),
			derefOrEmpty(entry.Registration.Reason),
			derefOrEmpty(entry.Registration.PaymentScreenshot),
			entry.Registration.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			file.SetCellValue(sheet, cell, value)
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write export file: %w", err)
	}

	filename := fmt.Sprintf("workshop-%d-registrations-%s.xlsx", workshop.ID, time.Now().Format("2006-01-02"))
	s.logger.Info("registrations exported",
		"workshop_id", workshopID, "user_id", userID, "rows", len(registrations))

	return buffer.Bytes(), filename, nil
}

func derefOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
