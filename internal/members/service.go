package members

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/internal/exports"
	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	pkgerrors "github.com/agencydesk/agencydesk-backend/pkg/errors"
	"github.com/agencydesk/agencydesk-backend/pkg/pagination"
)

type memberRepository interface {
	CreateFolder(ctx context.Context, folder *models.Folder) error
	FindFolder(ctx context.Context, id uuid.UUID) (*models.Folder, error)
	ListFolders(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Folder, error)
	UpdateFolder(ctx context.Context, folder *models.Folder) error
	DeleteFolder(ctx context.Context, id uuid.UUID) error
	CreateContact(ctx context.Context, contact *models.Contact) error
	FindContact(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	UpdateContact(ctx context.Context, contact *models.Contact) error
	DeleteContact(ctx context.Context, folderID, contactID uuid.UUID) error
}

// FolderPage is one cursor page of folders.
type FolderPage struct {
	Folders    []models.Folder `json:"folders"`
	NextCursor string          `json:"nextCursor,omitempty"`
}

// Service exposes folder and contact operations.
type Service interface {
	CreateFolder(ctx context.Context, input CreateFolderInput) (*models.Folder, error)
	GetFolder(ctx context.Context, id uuid.UUID) (*models.Folder, error)
	ListFolders(ctx context.Context, params pagination.Params) (*FolderPage, error)
	UpdateFolder(ctx context.Context, id uuid.UUID, input UpdateFolderInput) (*models.Folder, error)
	DeleteFolder(ctx context.Context, id uuid.UUID) error
	AddContact(ctx context.Context, folderID uuid.UUID, input ContactInput) (*models.Contact, error)
	UpdateContact(ctx context.Context, folderID, contactID uuid.UUID, input ContactInput) (*models.Contact, error)
	DeleteContact(ctx context.Context, folderID, contactID uuid.UUID) error
	RequestFolderExport(ctx context.Context, folderID uuid.UUID, format enums.ExportFormat) error
	RequestAllFoldersExport(ctx context.Context, format enums.ExportFormat) error
}

type service struct {
	repo     memberRepository
	exporter exports.Exporter
}

// NewService builds a members service with the provided dependencies.
func NewService(repo memberRepository, exporter exports.Exporter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("member repository required")
	}
	if exporter == nil {
		return nil, fmt.Errorf("exporter required")
	}
	return &service{repo: repo, exporter: exporter}, nil
}

func (s *service) CreateFolder(ctx context.Context, input CreateFolderInput) (*models.Folder, error) {
	folder := &models.Folder{
		ID:   uuid.New(),
		Name: input.Name,
	}
	if err := s.repo.CreateFolder(ctx, folder); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create folder")
	}
	return folder, nil
}

func (s *service) GetFolder(ctx context.Context, id uuid.UUID) (*models.Folder, error) {
	folder, err := s.repo.FindFolder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "folder not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load folder")
	}
	return folder, nil
}

func (s *service) ListFolders(ctx context.Context, params pagination.Params) (*FolderPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	folders, err := s.repo.ListFolders(ctx, pagination.LimitWithBuffer(params.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list folders")
	}

	page := &FolderPage{Folders: folders}
	if len(folders) > limit {
		page.Folders = folders[:limit]
		last := page.Folders[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) UpdateFolder(ctx context.Context, id uuid.UUID, input UpdateFolderInput) (*models.Folder, error) {
	folder, err := s.GetFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	folder.Name = input.Name
	if err := s.repo.UpdateFolder(ctx, folder); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update folder")
	}
	return folder, nil
}

func (s *service) DeleteFolder(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteFolder(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "folder not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete folder")
	}
	return nil
}

func (s *service) AddContact(ctx context.Context, folderID uuid.UUID, input ContactInput) (*models.Contact, error) {
	if _, err := s.GetFolder(ctx, folderID); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		ID:           uuid.New(),
		FolderID:     folderID,
		PhoneNumber:  input.PhoneNumber,
		CompanyName:  input.CompanyName,
		PersonalName: input.PersonalName,
		Nationality:  input.Nationality,
	}
	if input.Social != nil {
		contact.Social = *input.Social
	}
	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contact")
	}
	return contact, nil
}

func (s *service) UpdateContact(ctx context.Context, folderID, contactID uuid.UUID, input ContactInput) (*models.Contact, error) {
	contact, err := s.repo.FindContact(ctx, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contact")
	}
	if contact.FolderID != folderID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
	}

	contact.PhoneNumber = input.PhoneNumber
	contact.CompanyName = input.CompanyName
	contact.PersonalName = input.PersonalName
	contact.Nationality = input.Nationality
	if input.Social != nil {
		contact.Social = *input.Social
	}
	if err := s.repo.UpdateContact(ctx, contact); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update contact")
	}
	return contact, nil
}

func (s *service) DeleteContact(ctx context.Context, folderID, contactID uuid.UUID) error {
	if err := s.repo.DeleteContact(ctx, folderID, contactID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete contact")
	}
	return nil
}

func (s *service) RequestFolderExport(ctx context.Context, folderID uuid.UUID, format enums.ExportFormat) error {
	if _, err := s.GetFolder(ctx, folderID); err != nil {
		return err
	}
	return s.requestExport(ctx, exports.Request{
		Scope:   enums.ExportScopeFolder,
		Format:  format,
		Subject: folderID.String(),
	})
}

func (s *service) RequestAllFoldersExport(ctx context.Context, format enums.ExportFormat) error {
	return s.requestExport(ctx, exports.Request{
		Scope:  enums.ExportScopeAllFolders,
		Format: format,
	})
}

func (s *service) requestExport(ctx context.Context, req exports.Request) error {
	if !req.Format.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid export format")
	}
	if err := s.exporter.Request(ctx, req); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "request export")
	}
	return nil
}
