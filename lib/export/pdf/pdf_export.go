package pdfexport

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	taskapimodels "task-flow-backend/models/api/task"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const (
	fontFamily   = "Arial"
	coreFamily   = "Helvetica"
	labelWidth   = 50
	lineHeight   = 7
	dateTimeView = "02.01.2006 15:04"
)

var fontFiles = map[string]string{
	"":  "Arial.ttf",
	"B": "Arial Bold.ttf",
}

// SubmissionSheet лист проверки работы. При отсутствии шрифтов в fontDir используется встроенный Helvetica
func SubmissionSheet(fontDir string, sub taskapimodels.SubmissionView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("SubmissionSheet panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", fontDir)
	family := coreFamily
	if hasFonts(fontDir) {
		for style, file := range fontFiles {
			pdf.AddUTF8Font(fontFamily, style, file)
		}
		family = fontFamily
	}
	pdf.SetTitle("Лист проверки "+sub.SubmittedID, true)
	pdf.AddPage()
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 12, "Лист проверки работы "+sub.SubmittedID, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	taskTitle := sub.TaskID
	if sub.TaskTitle != "" {
		taskTitle += " " + sub.TaskTitle
	}
	if taskTitle == "" {
		taskTitle = "задача удалена"
	}
	reason := ""
	if sub.RejectionReason != nil {
		reason = *sub.RejectionReason
	}
	employee := sub.Employee.Name
	if employee == "" {
		employee = sub.Employee.ID
	}
	rows := [][2]string{
		{"Задача", taskTitle},
		{"Сотрудник", employee},
		{"Статус", string(sub.Status)},
		{"Отправлена", formatTime(&sub.CreatedAt)},
		{"Изменена", formatTime(&sub.UpdatedAt)},
		{"Проверена", formatTime(sub.ReviewedAt)},
		{"Причина отклонения", reason},
		{"Вложение", sub.Attachment},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.SetFont(family, "B", 11)
		pdf.CellFormat(labelWidth, lineHeight, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont(family, "", 11)
		pdf.MultiCell(0, lineHeight, row[1], "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont(family, "B", 13)
	pdf.MultiCell(0, lineHeight+1, sub.Title, "", "L", false)
	pdf.SetFont(family, "", 11)
	for _, line := range strings.Split(sub.Description, "\n") {
		pdf.MultiCell(0, lineHeight, line, "", "L", false)
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func hasFonts(fontDir string) bool {
	if fontDir == "" {
		return false
	}
	for _, file := range fontFiles {
		if _, err := os.Stat(filepath.Join(fontDir, file)); err != nil {
			return false
		}
	}
	return true
}

func formatTime(value *time.Time) string {
	if value == nil || value.IsZero() {
		return ""
	}
	return value.Format(dateTimeView)
}
