package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/utils"
)

const (
	exportSheet     = "Users"
	exportBatchSize = 500
)

var exportHeader = []interface{}{
	"User ID", "First Name", "Last Name", "Email", "Phone", "Date of Birth",
	"Gender", "Role", "Guardian", "Special Needs", "Active", "Created At",
}

// Export streams every user matching filters into an XLSX workbook.
func (s *userService) Export(ctx context.Context, filters repositories.UserFilters, w io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Error("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return utils.Internal(err, "Failed to prepare export")
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return utils.Internal(err, "Failed to prepare export")
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(exportSheet, 1, 1, style)
	}

	// account ids of guardians, resolved lazily for the Guardian column
	guardians := map[string]string{}

	filters.Limit = exportBatchSize
	filters.Offset = 0
	row := 2
	for {
		users, total, err := s.repo.User().List(ctx, s.db, filters)
		if err != nil {
			return fmt.Errorf("failed to list users for export: %w", err)
		}

		for _, u := range users {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return utils.Internal(err, "Failed to write export")
			}
			values := exportRow(u, s.guardianAccountID(ctx, u, guardians))
			if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
				return utils.Internal(err, "Failed to write export")
			}
			row++
		}

		filters.Offset += len(users)
		if len(users) == 0 || int64(filters.Offset) >= total {
			break
		}
	}

	if err := f.SetColWidth(exportSheet, "A", "L", 18); err != nil {
		return utils.Internal(err, "Failed to write export")
	}
	if err := f.Write(w); err != nil {
		return utils.Internal(err, "Failed to write export")
	}

	s.logger.Info("Users exported", "rows", row-2)
	return nil
}

func (s *userService) guardianAccountID(ctx context.Context, u *models.User, cache map[string]string) string {
	if !u.IsDependent() {
		return ""
	}
	if id, ok := cache[*u.GuardianID]; ok {
		return id
	}
	guardian, err := s.repo.User().GetByID(ctx, s.db, *u.GuardianID)
	if err != nil {
		s.logger.Warn("Guardian lookup failed during export", "guardian_id", *u.GuardianID, "error", err)
		return ""
	}
	cache[*u.GuardianID] = guardian.UserID
	return guardian.UserID
}

func exportRow(u *models.User, guardian string) []interface{} {
	dob := ""
	if u.DOB != nil {
		dob = utils.FormatDate(time.Time(*u.DOB))
	}
	return []interface{}{
		u.UserID, u.FirstName, u.LastName, u.Email, deref(u.Phone), dob,
		deref(u.Gender), string(u.Role), guardian, yesNo(u.SpecialNeeds), yesNo(u.IsActive),
		u.CreatedAt.Format(time.RFC3339),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
