package app

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/cv"
	"github.com/ousmanseid/job-site-sub000/internal/domain/user"
	"github.com/ousmanseid/job-site-sub000/internal/storage"
)

const maxCVFileSize = 5 << 20

var allowedCVExtensions = map[string]bool{".pdf": true, ".doc": true, ".docx": true}

type CVService struct {
	repo  cv.Repository
	blobs storage.BlobStore
}

func NewCVService(repo cv.Repository, blobs storage.BlobStore) *CVService {
	return &CVService{repo: repo, blobs: blobs}
}

// Create stores a built CV. The first CV a job seeker creates becomes the
// default.
func (s *CVService) Create(ctx context.Context, p user.Principal, c cv.CV) (*cv.CV, error) {
	if p.Role != user.RoleJobSeeker {
		return nil, common.NewError(common.CodeForbidden, "only job seekers own CVs", nil)
	}
	c.OwnerID = p.ID
	c.Kind = cv.KindBuilt
	if c.HasFileContent() {
		return nil, common.NewError(common.CodeInvalidCV, "a CV is either built or uploaded, not both", nil)
	}
	if !c.HasBuiltContent() {
		return nil, common.NewError(common.CodeInvalidCV, "cv content is required", nil)
	}
	return s.createWithDefault(ctx, c)
}

func (s *CVService) Upload(ctx context.Context, p user.Principal, fileName, mimeType string, size int64, r io.Reader) (*cv.CV, error) {
	if p.Role != user.RoleJobSeeker {
		return nil, common.NewError(common.CodeForbidden, "only job seekers own CVs", nil)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedCVExtensions[ext] {
		return nil, common.NewError(common.CodeInvalidCV, "unsupported file type", nil)
	}
	if size <= 0 || size > maxCVFileSize {
		return nil, common.NewError(common.CodeInvalidCV, "file size must be between 1 byte and 5 MiB", nil)
	}
	key := common.NewUUID().String() + ext
	written, err := s.blobs.Save(ctx, key, io.LimitReader(r, maxCVFileSize))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to store cv file", err)
	}
	c := cv.CV{
		OwnerID:  p.ID,
		Kind:     cv.KindUploaded,
		FileName: filepath.Base(fileName),
		FileKey:  key,
		FileSize: written,
		MimeType: mimeType,
	}
	return s.createWithDefault(ctx, c)
}

func (s *CVService) createWithDefault(ctx context.Context, c cv.CV) (*cv.CV, error) {
	count, err := s.repo.CountByOwner(ctx, c.OwnerID)
	if err != nil {
		return nil, err
	}
	c.IsDefault = count == 0
	created, err := s.repo.Create(ctx, c)
	if err != nil && c.IsDefault && common.Is(err, common.CodeConflict) {
		// Lost a race for the first-CV default; insert as non-default.
		c.IsDefault = false
		created, err = s.repo.Create(ctx, c)
	}
	return created, err
}

// Update edits a CV's content. Setting is_default here routes through
// SetDefault so the single-default invariant holds.
func (s *CVService) Update(ctx context.Context, p user.Principal, id common.UUID, c cv.CV) (*cv.CV, error) {
	current, err := s.getOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}
	c.ID = current.ID
	c.OwnerID = current.OwnerID
	c.Kind = current.Kind
	if current.Kind == cv.KindUploaded {
		if c.HasBuiltContent() {
			return nil, common.NewError(common.CodeInvalidCV, "an uploaded CV cannot carry built content", nil)
		}
		c.FileName = current.FileName
		c.FileKey = current.FileKey
		c.FileSize = current.FileSize
		c.MimeType = current.MimeType
	} else {
		if c.HasFileContent() {
			return nil, common.NewError(common.CodeInvalidCV, "a built CV cannot carry a file reference", nil)
		}
		if !c.HasBuiltContent() {
			return nil, common.NewError(common.CodeInvalidCV, "cv content is required", nil)
		}
	}
	wantDefault := c.IsDefault && !current.IsDefault
	c.IsDefault = current.IsDefault
	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	if wantDefault {
		if err := s.repo.SetDefault(ctx, id, p.ID); err != nil {
			return nil, err
		}
		return s.repo.GetByID(ctx, id)
	}
	return updated, nil
}

func (s *CVService) SetDefault(ctx context.Context, p user.Principal, id common.UUID) error {
	if _, err := s.getOwned(ctx, p, id); err != nil {
		return err
	}
	return s.repo.SetDefault(ctx, id, p.ID)
}

// Delete never promotes another CV to default; the UI prompts for that.
func (s *CVService) Delete(ctx context.Context, p user.Principal, id common.UUID) error {
	current, err := s.getOwned(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, p.ID); err != nil {
		return err
	}
	if current.Kind == cv.KindUploaded && current.FileKey != "" {
		_ = s.blobs.Remove(ctx, current.FileKey)
	}
	return nil
}

func (s *CVService) List(ctx context.Context, p user.Principal) ([]cv.CV, error) {
	return s.repo.ListByOwner(ctx, p.ID)
}

func (s *CVService) Get(ctx context.Context, p user.Principal, id common.UUID) (*cv.CV, error) {
	return s.getOwned(ctx, p, id)
}

func (s *CVService) getOwned(ctx context.Context, p user.Principal, id common.UUID) (*cv.CV, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != p.ID {
		return nil, common.NewError(common.CodeForbidden, "cv belongs to another job seeker", nil)
	}
	return c, nil
}
