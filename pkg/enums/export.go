package enums

import "fmt"

// ExportFormat is a requested output format for an export job.
type ExportFormat string

const (
	ExportFormatPDF   ExportFormat = "pdf"
	ExportFormatExcel ExportFormat = "excel"
	ExportFormatImage ExportFormat = "image"
	ExportFormatJSON  ExportFormat = "json"
)

var validExportFormats = []ExportFormat{
	ExportFormatPDF,
	ExportFormatExcel,
	ExportFormatImage,
	ExportFormatJSON,
}

// String implements fmt.Stringer.
func (f ExportFormat) String() string {
	return string(f)
}

// IsValid reports whether the value is known.
func (f ExportFormat) IsValid() bool {
	for _, candidate := range validExportFormats {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseExportFormat converts raw input into an ExportFormat.
func ParseExportFormat(value string) (ExportFormat, error) {
	for _, candidate := range validExportFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid export format %q", value)
}

// ExportScope names the slice of data an export request covers.
type ExportScope string

const (
	ExportScopeFolder        ExportScope = "folder"
	ExportScopeAllFolders    ExportScope = "all_folders"
	ExportScopeSubscriptions ExportScope = "subscriptions"
	ExportScopeClientTasks   ExportScope = "client_tasks"
)

var validExportScopes = []ExportScope{
	ExportScopeFolder,
	ExportScopeAllFolders,
	ExportScopeSubscriptions,
	ExportScopeClientTasks,
}

// String implements fmt.Stringer.
func (s ExportScope) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s ExportScope) IsValid() bool {
	for _, candidate := range validExportScopes {
		if candidate == s {
			return true
		}
	}
	return false
}
