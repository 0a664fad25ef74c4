package members

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agencydesk/agencydesk-backend/internal/exports"
	"github.com/agencydesk/agencydesk-backend/pkg/db/models"
	"github.com/agencydesk/agencydesk-backend/pkg/enums"
	pkgerrors "github.com/agencydesk/agencydesk-backend/pkg/errors"
	"github.com/agencydesk/agencydesk-backend/pkg/pagination"
)

type stubMemberRepo struct {
	folder  *models.Folder
	folders []models.Folder
	contact *models.Contact

	deletedContact bool
}

func (s *stubMemberRepo) CreateFolder(_ context.Context, folder *models.Folder) error {
	s.folder = folder
	return nil
}

func (s *stubMemberRepo) FindFolder(_ context.Context, _ uuid.UUID) (*models.Folder, error) {
	if s.folder == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.folder, nil
}

func (s *stubMemberRepo) ListFolders(_ context.Context, limit int, _ *pagination.Cursor) ([]models.Folder, error) {
	if limit > len(s.folders) {
		limit = len(s.folders)
	}
	return s.folders[:limit], nil
}

func (s *stubMemberRepo) UpdateFolder(_ context.Context, folder *models.Folder) error {
	s.folder = folder
	return nil
}

func (s *stubMemberRepo) DeleteFolder(_ context.Context, _ uuid.UUID) error {
	if s.folder == nil {
		return gorm.ErrRecordNotFound
	}
	s.folder = nil
	return nil
}

func (s *stubMemberRepo) CreateContact(_ context.Context, contact *models.Contact) error {
	s.contact = contact
	return nil
}

func (s *stubMemberRepo) FindContact(_ context.Context, _ uuid.UUID) (*models.Contact, error) {
	if s.contact == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.contact, nil
}

func (s *stubMemberRepo) UpdateContact(_ context.Context, contact *models.Contact) error {
	s.contact = contact
	return nil
}

func (s *stubMemberRepo) DeleteContact(_ context.Context, _, _ uuid.UUID) error {
	if s.contact == nil {
		return gorm.ErrRecordNotFound
	}
	s.deletedContact = true
	return nil
}

type stubMemberExporter struct {
	requests []exports.Request
}

func (s *stubMemberExporter) Request(_ context.Context, req exports.Request) error {
	s.requests = append(s.requests, req)
	return nil
}

func newMemberService(t *testing.T, repo *stubMemberRepo) (Service, *stubMemberExporter) {
	t.Helper()
	exporter := &stubMemberExporter{}
	svc, err := NewService(repo, exporter)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, exporter
}

func TestListFoldersPagination(t *testing.T) {
	base := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	folders := make([]models.Folder, 0, 5)
	for i := 0; i < 5; i++ {
		folders = append(folders, models.Folder{
			ID:        uuid.New(),
			Name:      "folder",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	repo := &stubMemberRepo{folders: folders}
	svc, _ := newMemberService(t, repo)

	page, err := svc.ListFolders(context.Background(), pagination.Params{Limit: 3})
	if err != nil {
		t.Fatalf("list folders: %v", err)
	}

	if len(page.Folders) != 3 {
		t.Fatalf("expected 3 folders got %d", len(page.Folders))
	}
	if page.NextCursor == "" {
		t.Fatal("expected a next cursor for a full page")
	}

	cursor, err := pagination.ParseCursor(page.NextCursor)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if cursor.ID != page.Folders[2].ID {
		t.Fatal("cursor should point at the last returned folder")
	}
}

func TestListFoldersLastPageHasNoCursor(t *testing.T) {
	repo := &stubMemberRepo{folders: []models.Folder{{ID: uuid.New(), Name: "only"}}}
	svc, _ := newMemberService(t, repo)

	page, err := svc.ListFolders(context.Background(), pagination.Params{Limit: 10})
	if err != nil {
		t.Fatalf("list folders: %v", err)
	}
	if page.NextCursor != "" {
		t.Fatalf("expected no cursor, got %q", page.NextCursor)
	}
}

func TestListFoldersRejectsBadCursor(t *testing.T) {
	svc, _ := newMemberService(t, &stubMemberRepo{})

	_, err := svc.ListFolders(context.Background(), pagination.Params{Cursor: "not-base64!"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddContactRequiresFolder(t *testing.T) {
	svc, _ := newMemberService(t, &stubMemberRepo{})

	_, err := svc.AddContact(context.Background(), uuid.New(), ContactInput{PersonalName: "Layla"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateContactInWrongFolder(t *testing.T) {
	repo := &stubMemberRepo{contact: &models.Contact{
		ID:       uuid.New(),
		FolderID: uuid.New(),
	}}
	svc, _ := newMemberService(t, repo)

	_, err := svc.UpdateContact(context.Background(), uuid.New(), repo.contact.ID, ContactInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for cross-folder update, got %v", err)
	}
}

func TestFolderExportScopes(t *testing.T) {
	repo := &stubMemberRepo{folder: &models.Folder{ID: uuid.New(), Name: "clients"}}
	svc, exporter := newMemberService(t, repo)

	if err := svc.RequestFolderExport(context.Background(), repo.folder.ID, enums.ExportFormatPDF); err != nil {
		t.Fatalf("folder export: %v", err)
	}
	if err := svc.RequestAllFoldersExport(context.Background(), enums.ExportFormatExcel); err != nil {
		t.Fatalf("all folders export: %v", err)
	}

	if len(exporter.requests) != 2 {
		t.Fatalf("expected two export requests got %d", len(exporter.requests))
	}
	if exporter.requests[0].Scope != enums.ExportScopeFolder || exporter.requests[0].Subject == "" {
		t.Fatalf("unexpected folder export request %+v", exporter.requests[0])
	}
	if exporter.requests[1].Scope != enums.ExportScopeAllFolders {
		t.Fatalf("unexpected all-folders export request %+v", exporter.requests[1])
	}

	err := svc.RequestAllFoldersExport(context.Background(), enums.ExportFormat("csv"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
