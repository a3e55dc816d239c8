package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrEntityNotFound      = errors.New("entity not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrValueNotFound       = errors.New("value not found")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrHistoryNotFound     = errors.New("generation history entry not found")
	ErrDuplicateEntityCode = errors.New("entity code already exists")
	ErrDuplicateClientName = errors.New("client name already exists")
	ErrInvalidEntityCode   = errors.New("entity code must look like {UPPER_SNAKE_CASE}")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrInvalidTemplate     = errors.New("template is not a readable docx document")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrNoClients           = errors.New("at least one client is required")
	ErrTooManyClients      = errors.New("too many clients in one generation request")
	ErrInvalidImport       = errors.New("spreadsheet does not match the expected import layout")
)
