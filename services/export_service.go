package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/repositories"
)

// ExportService produces the admin console's XLSX dump of all submissions
type ExportService struct {
	store repositories.Store
}

func NewExportService(store repositories.Store) *ExportService {
	return &ExportService{store: store}
}

var exportHeaders = []string{
	"ID", "Title", "Status", "Category", "Region", "StoryMap URL",
	"Submitted By", "Team Size", "Average Score", "Submission Date",
}

// Export builds a workbook with one row per submission, all review states
// included. Admin only.
func (s *ExportService) Export(ctx context.Context, caller CallerContext) (*excelize.File, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}

	submissions, err := s.store.Submissions().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Submissions"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, sub := range submissions {
		categoryName := sub.CategoryID
		if sub.Category != nil {
			categoryName = sub.Category.Name
		}
		owner := sub.SubmittedBy
		if sub.Owner != nil {
			owner = strings.TrimSpace(sub.Owner.FirstName + " " + sub.Owner.LastName)
		}

		values := []interface{}{
			sub.ID,
			sub.Title,
			string(sub.Status),
			categoryName,
			sub.Region,
			sub.StoryMapURL,
			owner,
			len(sub.TeamMembers),
			sub.AverageScore,
			sub.SubmissionDate.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	if err := f.AutoFilter(sheet, fmt.Sprintf("A1:J%d", len(submissions)+1), nil); err != nil {
		return nil, err
	}

	return f, nil
}
