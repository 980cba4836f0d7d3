package cv

import (
	"time"

	"github.com/ousmanseid/job-site-sub000/internal/common"
)

type Kind string

const (
	KindBuilt    Kind = "built"
	KindUploaded Kind = "uploaded"
)

// CV is either built from structured fields or an uploaded file reference,
// never both.
type CV struct {
	ID         common.UUID `json:"id"`
	OwnerID    common.UUID `json:"owner_id"`
	Kind       Kind        `json:"kind"`
	Summary    string      `json:"summary,omitempty"`
	Experience string      `json:"experience,omitempty"`
	Education  string      `json:"education,omitempty"`
	Skills     []string    `json:"skills,omitempty"`
	Template   string      `json:"template,omitempty"`
	FileName   string      `json:"file_name,omitempty"`
	FileKey    string      `json:"file_key,omitempty"`
	FileSize   int64       `json:"file_size,omitempty"`
	MimeType   string      `json:"mime_type,omitempty"`
	IsDefault  bool        `json:"is_default"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (c CV) HasBuiltContent() bool {
	return c.Summary != "" || c.Experience != "" || c.Education != "" || len(c.Skills) > 0 || c.Template != ""
}

func (c CV) HasFileContent() bool {
	return c.FileName != "" || c.FileKey != ""
}
