package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity is a named placeholder code, e.g. "Full name" with code "{FIO}".
type Entity struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Client is a party documents are generated for.
type Client struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Value is a client's value for one entity. (EntityID, ClientID) is unique.
type Value struct {
	ID        uuid.UUID `db:"id" json:"id"`
	EntityID  uuid.UUID `db:"entity_id" json:"entity_id"`
	ClientID  uuid.UUID `db:"client_id" json:"client_id"`
	ValueText string    `db:"value_text" json:"value_text"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ResolvedValue joins a stored value with its entity code.
type ResolvedValue struct {
	Code      string `db:"code" json:"code"`
	ValueText string `db:"value_text" json:"value_text"`
}

// Template is an uploaded DOCX template.
type Template struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Filename   string    `db:"filename" json:"filename"`
	StorageKey string    `db:"storage_key" json:"storage_key"`
	FileSize   int64     `db:"file_size" json:"file_size"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// GenerationHistory records one produced output document.
type GenerationHistory struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	UserID         *uuid.UUID `db:"user_id" json:"user_id"`
	ClientID       uuid.UUID  `db:"client_id" json:"client_id"`
	TemplateID     uuid.UUID  `db:"template_id" json:"template_id"`
	OutputFilename string     `db:"output_filename" json:"output_filename"`
	StorageKey     string     `db:"storage_key" json:"storage_key"`
	GeneratedAt    time.Time  `db:"generated_at" json:"generated_at"`
}

// HistoryFilter narrows history listings. Nil fields are ignored.
type HistoryFilter struct {
	ClientID   *uuid.UUID
	TemplateID *uuid.UUID
}
