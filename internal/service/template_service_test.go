package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docgen/internal/config"
	"docgen/internal/docx/docxtest"
	"docgen/internal/domain"
	"docgen/internal/port"
	"docgen/internal/service"
	"docgen/mocks"
)

func testS3Config() *config.S3Config {
	return &config.S3Config{
		Bucket:        "test-bucket",
		Region:        "us-east-1",
		MaxFileSizeMB: 1,
		PresignExpiry: 600,
	}
}

// createMultipartFile creates a multipart.File and FileHeader for testing.
func createMultipartFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "application/octet-stream")

	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write(content)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	file, err := form.File["file"][0].Open()
	require.NoError(t, err)
	return file, form.File["file"][0]
}

func templateContent() []byte {
	return docxtest.Build(docxtest.Paragraph(docxtest.Run("Dear {FI"), docxtest.Run("O}, code {CODE}")))
}

func TestTemplateService_Upload_Success(t *testing.T) {
	repo := new(mocks.MockTemplateRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewTemplateService(repo, storage, testS3Config())

	content := templateContent()
	file, header := createMultipartFile(t, "offer.docx", content)

	repo.On("FilenameExists", mock.Anything, "offer.docx").Return(false, nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "test-bucket" && in.ContentType == domain.ContentTypeDocx && in.Size == int64(len(content))
	})).Return(&port.UploadOutput{Location: "loc"}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Template")).Return(nil)

	tmpl, err := svc.Upload(context.Background(), service.TemplateUploadInput{File: file, Header: header})

	require.NoError(t, err)
	assert.Equal(t, "offer", tmpl.Name)
	assert.Equal(t, "offer.docx", tmpl.Filename)
	assert.Equal(t, "templates/"+tmpl.ID.String()+"/offer.docx", tmpl.StorageKey)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestTemplateService_Upload_DuplicateFilenameGetsSuffix(t *testing.T) {
	repo := new(mocks.MockTemplateRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewTemplateService(repo, storage, testS3Config())

	file, header := createMultipartFile(t, "offer.docx", templateContent())

	repo.On("FilenameExists", mock.Anything, "offer.docx").Return(true, nil)
	repo.On("FilenameExists", mock.Anything, "offer_1.docx").Return(true, nil)
	repo.On("FilenameExists", mock.Anything, "offer_2.docx").Return(false, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).Return(&port.UploadOutput{}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Template")).Return(nil)

	tmpl, err := svc.Upload(context.Background(), service.TemplateUploadInput{Name: "Offer", File: file, Header: header})

	require.NoError(t, err)
	assert.Equal(t, "offer_2.docx", tmpl.Filename)
	assert.Equal(t, "Offer", tmpl.Name)
}

func TestTemplateService_Upload_WrongExtension(t *testing.T) {
	repo := new(mocks.MockTemplateRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewTemplateService(repo, storage, testS3Config())

	file, header := createMultipartFile(t, "offer.pdf", templateContent())

	_, err := svc.Upload(context.Background(), service.TemplateUploadInput{File: file, Header: header})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestTemplateService_Upload_TooLarge(t *testing.T) {
	repo := new(mocks.MockTemplateRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewTemplateService(repo, storage, testS3Config())

	file, header := createMultipartFile(t, "big.docx", bytes.Repeat([]byte{'x'}, 1024*1024+1))

	_, err := svc.Upload(context.Background(), service.TemplateUploadInput{File: file, Header: header})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestTemplateService_Upload_NotADocx(t *testing.T) {
	repo := new(mocks.MockTemplateRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewTemplateService(repo, storage, testS3Config())

	// A zip without word/document.xml passes the magic-byte check only.
	file, header := createMultipartFile(t, "fake.docx", docxtest.BuildParts(map[string]string{"readme.txt": "hi"}))

	_, err := svc.Upload(context.Background(), service.TemplateUploadInput{File: file, Header: header})

	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestTemplateService_Upload_PlainTextRejected(t *testing.T) {
	repo := new(mocks.MockTemplateRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewTemplateService(repo, storage, testS3Config())

	file, header := createMultipartFile(t, "notes.docx", []byte("just some text pretending to be a document"))

	_, err := svc.Upload(context.Background(), service.TemplateUploadInput{File: file, Header: header})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestTemplateService_Upload_StorageFailure(t *testing.T) {
	repo := new(mocks.MockTemplateRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewTemplateService(repo, storage, testS3Config())

	file, header := createMultipartFile(t, "offer.docx", templateContent())

	repo.On("FilenameExists", mock.Anything, "offer.docx").Return(false, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).Return(nil, errors.New("s3 down"))

	_, err := svc.Upload(context.Background(), service.TemplateUploadInput{File: file, Header: header})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTemplateService_Upload_MetadataFailureRemovesBlob(t *testing.T) {
	repo := new(mocks.MockTemplateRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewTemplateService(repo, storage, testS3Config())

	file, header := createMultipartFile(t, "offer.docx", templateContent())

	repo.On("FilenameExists", mock.Anything, "offer.docx").Return(false, nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).Return(&port.UploadOutput{}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Template")).Return(errors.New("db down"))
	storage.On("Delete", mock.Anything, "test-bucket", mock.AnythingOfType("string")).Return(nil)

	_, err := svc.Upload(context.Background(), service.TemplateUploadInput{File: file, Header: header})

	assert.Error(t, err)
	storage.AssertCalled(t, "Delete", mock.Anything, "test-bucket", mock.AnythingOfType("string"))
}

func TestTemplateService_Placeholders(t *testing.T) {
	repo := new(mocks.MockTemplateRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewTemplateService(repo, storage, testS3Config())

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Template{ID: id, StorageKey: "templates/x/offer.docx"}, nil)
	storage.On("Download", mock.Anything, "test-bucket", "templates/x/offer.docx").Return(templateContent(), nil)

	tokens, err := svc.Placeholders(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, []string{"{CODE}", "{FIO}"}, tokens)
}

func TestTemplateService_Delete_RemovesBlobThenRow(t *testing.T) {
	repo := new(mocks.MockTemplateRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewTemplateService(repo, storage, testS3Config())

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Template{ID: id, StorageKey: "templates/x/offer.docx"}, nil)
	storage.On("Delete", mock.Anything, "test-bucket", "templates/x/offer.docx").Return(nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	err := svc.Delete(context.Background(), id)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
	storage.AssertNumberOfCalls(t, "Delete", 1)
}

func TestTemplateService_Delete_NotFound(t *testing.T) {
	repo := new(mocks.MockTemplateRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewTemplateService(repo, storage, testS3Config())

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrTemplateNotFound)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
