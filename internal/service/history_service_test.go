package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docgen/internal/csvexport"
	"docgen/internal/domain"
	"docgen/internal/service"
	"docgen/mocks"
)

type historyMocks struct {
	history   *mocks.MockHistoryRepo
	clients   *mocks.MockClientRepo
	templates *mocks.MockTemplateRepo
	storage   *mocks.MockObjectStorage
}

func newHistoryService() (service.HistoryService, historyMocks) {
	m := historyMocks{
		history:   new(mocks.MockHistoryRepo),
		clients:   new(mocks.MockClientRepo),
		templates: new(mocks.MockTemplateRepo),
		storage:   new(mocks.MockObjectStorage),
	}
	return service.NewHistoryService(m.history, m.clients, m.templates, m.storage, testS3Config()), m
}

func historyEntries(clientID, templateID uuid.UUID) []domain.GenerationHistory {
	at := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	return []domain.GenerationHistory{
		{ID: uuid.New(), ClientID: clientID, TemplateID: templateID, OutputFilename: "offer__Ivan.docx", StorageKey: "outputs/1/offer__Ivan.docx", GeneratedAt: at},
		{ID: uuid.New(), ClientID: clientID, TemplateID: templateID, OutputFilename: "offer__Ivan.docx", StorageKey: "outputs/2/offer__Ivan.docx", GeneratedAt: at.Add(time.Hour)},
	}
}

func TestHistoryService_Export_CSV(t *testing.T) {
	svc, m := newHistoryService()
	clientID, templateID := uuid.New(), uuid.New()
	filter := domain.HistoryFilter{ClientID: &clientID}

	m.history.On("ListAll", mock.Anything, filter).Return(historyEntries(clientID, templateID), nil)
	m.clients.On("GetByID", mock.Anything, clientID).Return(&domain.Client{ID: clientID, Name: "Ivan"}, nil).Once()
	m.templates.On("GetByID", mock.Anything, templateID).Return(&domain.Template{ID: templateID, Name: "Offer"}, nil).Once()

	out, err := svc.Export(context.Background(), filter, domain.ExportCSV)

	require.NoError(t, err)
	assert.Equal(t, domain.ContentTypeCSV, out.ContentType)
	assert.True(t, strings.HasPrefix(out.Filename, "generation_history_"))
	assert.True(t, strings.HasSuffix(out.Filename, ".csv"))
	require.True(t, bytes.HasPrefix(out.Content, csvexport.BOM))

	records, err := csv.NewReader(bytes.NewReader(out.Content[len(csvexport.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "History ID", records[0][0])
	assert.Contains(t, records[1], "Ivan")
	assert.Contains(t, records[1], "Offer")
	m.clients.AssertNumberOfCalls(t, "GetByID", 1)
	m.templates.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestHistoryService_Export_XLSX(t *testing.T) {
	svc, m := newHistoryService()
	clientID, templateID := uuid.New(), uuid.New()

	m.history.On("ListAll", mock.Anything, domain.HistoryFilter{}).Return(historyEntries(clientID, templateID), nil)
	m.clients.On("GetByID", mock.Anything, clientID).Return(nil, domain.ErrClientNotFound)
	m.templates.On("GetByID", mock.Anything, templateID).Return(&domain.Template{ID: templateID, Name: "Offer"}, nil)

	out, err := svc.Export(context.Background(), domain.HistoryFilter{}, domain.ExportXLSX)

	require.NoError(t, err)
	assert.Equal(t, domain.ContentTypeXLSX, out.ContentType)
	assert.True(t, strings.HasSuffix(out.Filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(out.Content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(csvexport.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "", rows[1][2], "deleted client leaves the name empty")
	assert.Equal(t, "Offer", rows[1][3])
}

func TestHistoryService_Export_RepoError(t *testing.T) {
	svc, m := newHistoryService()
	m.history.On("ListAll", mock.Anything, domain.HistoryFilter{}).Return(nil, errors.New("db down"))

	_, err := svc.Export(context.Background(), domain.HistoryFilter{}, domain.ExportCSV)

	assert.Error(t, err)
}

func TestHistoryService_GetDownloadURL(t *testing.T) {
	svc, m := newHistoryService()
	id := uuid.New()
	m.history.On("GetByID", mock.Anything, id).Return(&domain.GenerationHistory{ID: id, StorageKey: "outputs/x/a.docx"}, nil)
	m.storage.On("GetPresignedURL", mock.Anything, "test-bucket", "outputs/x/a.docx", int64(600)).Return("https://signed", nil)

	url, err := svc.GetDownloadURL(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "https://signed", url)
}

func TestHistoryService_GetDownloadURL_NotFound(t *testing.T) {
	svc, m := newHistoryService()
	id := uuid.New()
	m.history.On("GetByID", mock.Anything, id).Return(nil, domain.ErrHistoryNotFound)

	_, err := svc.GetDownloadURL(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrHistoryNotFound)
}

func TestHistoryService_Export_DeletedTemplateKeepsRows(t *testing.T) {
	svc, m := newHistoryService()
	clientID, templateID := uuid.New(), uuid.New()
	filter := domain.HistoryFilter{TemplateID: &templateID}

	m.history.On("ListAll", mock.Anything, filter).Return(historyEntries(clientID, templateID), nil)
	m.clients.On("GetByID", mock.Anything, clientID).Return(&domain.Client{ID: clientID, Name: "Ivan"}, nil)
	m.templates.On("GetByID", mock.Anything, templateID).Return(nil, domain.ErrTemplateNotFound).Once()

	out, err := svc.Export(context.Background(), filter, domain.ExportCSV)

	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(out.Content[len(csvexport.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Ivan", records[1][2])
	assert.Equal(t, "", records[1][3])
	assert.Equal(t, "outputs/1/offer__Ivan.docx", records[1][6])
	m.templates.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestHistoryService_GetDownloadURL_AfterTemplateDeleted(t *testing.T) {
	svc, m := newHistoryService()
	id := uuid.New()
	m.history.On("GetByID", mock.Anything, id).
		Return(&domain.GenerationHistory{ID: id, TemplateID: uuid.New(), StorageKey: "outputs/y/b.docx"}, nil)
	m.storage.On("GetPresignedURL", mock.Anything, "test-bucket", "outputs/y/b.docx", int64(600)).Return("https://signed", nil)

	url, err := svc.GetDownloadURL(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "https://signed", url)
	m.templates.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
