package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/kiranshivaraju/sentilytics/internal/api/response"
	"github.com/kiranshivaraju/sentilytics/internal/report"
	"github.com/kiranshivaraju/sentilytics/internal/table"
	"github.com/kiranshivaraju/sentilytics/pkg/models"
)

// TableAnalyzer turns a parsed table into a dashboard report.
type TableAnalyzer interface {
	AnalyzeTable(ctx context.Context, source string, raw *table.Table) (report.Report, error)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// NewAnalyzeDatasetHandler returns an http.HandlerFunc for POST /analyze-dataset.
// The upload is read from the multipart field "file" and parsed as XLSX when
// its name or content type says so, as CSV otherwise.
func NewAnalyzeDatasetHandler(svc TableAnalyzer, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			if isTooLarge(err) {
				writeServiceError(w, err)
				return
			}
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Missing file upload with key 'file'", nil)
			return
		}
		defer file.Close()

		if header.Filename == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Empty filename for uploaded file", nil)
			return
		}

		source, t, err := readUpload(file, header)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "PARSE_ERROR",
				fmt.Sprintf("Failed to parse %s file: %v", strings.ToUpper(source), err), nil)
			return
		}

		rep, err := svc.AnalyzeTable(r.Context(), source, t)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		response.Raw(w, http.StatusOK, rep)
	}
}

func readUpload(file io.Reader, header *multipart.FileHeader) (string, *table.Table, error) {
	if isXLSX(header) {
		t, err := table.ReadXLSX(file)
		return models.SourceXLSX, t, err
	}
	t, err := table.ReadCSV(file)
	return models.SourceCSV, t, err
}

func isXLSX(header *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		return true
	}
	return header.Header.Get("Content-Type") == xlsxContentType
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}
