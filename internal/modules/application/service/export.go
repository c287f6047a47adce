package service

import (
	"bytes"
	"context"
	"fmt"

	"anoa.com/magangportal/internal/entity"
	"anoa.com/magangportal/internal/modules/application/dto"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const historySheet = "Riwayat"

var historyHeaders = []string{
	"No", "NIK", "Nama", "Jenis Kelamin", "Universitas", "Jurusan", "IPK",
	"Posisi", "Departemen", "Status", "Tanggal Daftar", "Tanggal Review",
}

var historyColumnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 6},
	{"B", "B", 20},
	{"C", "L", 22},
}

// ExportHistory renders the reviewed applications matching filter as an
// xlsx workbook and returns it with a download file name.
func (s *applicationService) ExportHistory(ctx context.Context, filter dto.HistoryFilter) (*bytes.Buffer, string, error) {
	applications, err := s.findHistory(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(historySheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]any, len(historyHeaders))
	for i, h := range historyHeaders {
		header[i] = h
	}
	if err := writeRow(f, 1, header); err != nil {
		return nil, "", fmt.Errorf("failed to write header: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(historyHeaders), 1)
	if err != nil {
		return nil, "", err
	}
	if err := f.SetCellStyle(historySheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, "", fmt.Errorf("failed to style header: %w", err)
	}
	for _, w := range historyColumnWidths {
		if err := f.SetColWidth(historySheet, w.from, w.to, w.width); err != nil {
			return nil, "", fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, a := range applications {
		row := i + 2
		if err := writeRow(f, row, s.historyRow(i+1, a)); err != nil {
			return nil, "", fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write history workbook", zap.Error(err))
		return nil, "", fmt.Errorf("failed to write workbook: %w", err)
	}

	filename := fmt.Sprintf("riwayat-pendaftaran-%s.xlsx", s.now().In(s.loc).Format("20060102"))
	return buf, filename, nil
}

func (s *applicationService) historyRow(no int, a *entity.Application) []any {
	row := make([]any, len(historyHeaders))
	row[0] = no
	if ap := a.Applicant; ap != nil {
		row[1] = ap.NationalID
		row[2] = ap.Name
		row[3] = entity.GenderLabel(ap.Gender)
		row[4] = ap.University
		row[5] = ap.Major
		if ap.GPA != nil {
			row[6] = *ap.GPA
		} else {
			row[6] = "-"
		}
	}
	if p := a.Posting; p != nil {
		row[7] = p.Title
		row[8] = p.Department.Name
	}
	row[9] = string(a.Status)
	row[10] = a.CreatedAt.In(s.loc).Format("02 Jan 2006")
	row[11] = a.UpdatedAt.In(s.loc).Format("02 Jan 2006 15:04")
	return row
}

// cell returns the A1 reference of a zero-based column and one-based row.
// writeRow fills row of the history sheet from column A onwards.
func writeRow(f *excelize.File, row int, values []any) error {
	for col, v := range values {
		name, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(historySheet, name, v); err != nil {
			return err
		}
	}
	return nil
}
