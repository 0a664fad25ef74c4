package controllers

import (
	"net/http"
	"strings"

	"github.com/agencydesk/agencydesk-backend/api/responses"
	"github.com/agencydesk/agencydesk-backend/internal/statistics"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	pkgerrors "github.com/agencydesk/agencydesk-backend/pkg/errors"
	"github.com/agencydesk/agencydesk-backend/pkg/logger"
)

// StatisticsOverview returns the subscription activity picture for one period.
// The period defaults to monthly.
func StatisticsOverview(svc statistics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "statistics service unavailable"))
			return
		}

		period := enums.StatsPeriodMonthly
		if raw := strings.TrimSpace(r.URL.Query().Get("period")); raw != "" {
			parsed, err := enums.ParseStatsPeriod(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid period"))
				return
			}
			period = parsed
		}

		overview, err := svc.Overview(r.Context(), period)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, overview)
	}
}
