package exports

import (
	"context"
	"fmt"

	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	"github.com/agencydesk/agencydesk-backend/pkg/logger"
)

// Request describes a single export ask: which data set and in what format.
type Request struct {
	Scope  enums.ExportScope
	Format enums.ExportFormat
	// Subject narrows folder and client scoped exports to one record.
	Subject string
}

// Exporter receives export requests. Implementations decide what producing a
// document actually means.
type Exporter interface {
	Request(ctx context.Context, req Request) error
}

// LogExporter acknowledges export requests in the logs without producing
// files. It is the shipped implementation until document rendering lands.
type LogExporter struct {
	logg *logger.Logger
}

// NewLogExporter builds the logging exporter.
func NewLogExporter(logg *logger.Logger) (*LogExporter, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &LogExporter{logg: logg}, nil
}

// Request validates the ask and records it.
func (e *LogExporter) Request(ctx context.Context, req Request) error {
	if !req.Scope.IsValid() {
		return fmt.Errorf("invalid export scope %q", req.Scope)
	}
	if !req.Format.IsValid() {
		return fmt.Errorf("invalid export format %q", req.Format)
	}
	fields := map[string]any{
		"scope":  req.Scope.String(),
		"format": req.Format.String(),
	}
	if req.Subject != "" {
		fields["subject"] = req.Subject
	}
	e.logg.Info(e.logg.WithFields(ctx, fields), "export requested")
	return nil
}
