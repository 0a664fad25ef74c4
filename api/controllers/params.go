package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agencydesk/agencydesk-backend/api/validators"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	pkgerrors "github.com/agencydesk/agencydesk-backend/pkg/errors"
)

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	return validators.ParsePathUUID(chi.URLParam(r, param), param)
}

// exportFormat reads the format query parameter, defaulting to PDF.
func exportFormat(r *http.Request) (enums.ExportFormat, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("format"))
	if raw == "" {
		return enums.ExportFormatPDF, nil
	}
	format, err := enums.ParseExportFormat(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid export format")
	}
	return format, nil
}
