package study

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/model"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/pkg/logger"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/pkg/pdfextract"
)

type DocumentService struct {
	docs      DocumentStore
	events    EventPublisher
	log       *logger.Logger
	uploadDir string
}

func NewDocumentService(docs DocumentStore, events EventPublisher, log *logger.Logger, uploadDir string) *DocumentService {
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentService{
		docs:      docs,
		events:    events,
		log:       log,
		uploadDir: uploadDir,
	}
}

// Upload extracts text from the PDF bytes, stores the file under the upload
// directory and persists the document record. The document is not created
// when extraction fails outright.
func (s *DocumentService) Upload(ctx context.Context, filename string, data []byte) (*model.Document, error) {
	if filename == "" || len(data) == 0 {
		return nil, ErrInvalidInput
	}

	result, err := pdfextract.Extract(data)
	if err != nil {
		return nil, err
	}
	if result.Scanned {
		s.log.Warn("pdf has pages but no extractable text", "filename", filename, "pages", len(result.Pages))
	} else {
		s.log.Info("pdf text extracted", "filename", filename, "pages", len(result.Pages), "method", result.Method)
	}

	id := uuid.NewString()
	filePath := filepath.Join(s.uploadDir, id+".pdf")
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return nil, fmt.Errorf("store pdf file failed: %w", err)
	}

	doc := &model.Document{
		ID:         id,
		Filename:   filename,
		FilePath:   filePath,
		FileSize:   int64(len(data)),
		TotalPages: len(result.Pages),
		IsScanned:  result.Scanned,
		UploadedAt: time.Now(),
	}
	doc.SetPages(result.Pages)

	if err := s.docs.Create(doc); err != nil {
		_ = os.Remove(filePath)
		return nil, err
	}

	s.recordEvent(ctx, model.EventDocumentUploaded, doc.ID, filename)
	return doc, nil
}

func (s *DocumentService) List() ([]model.Document, error) {
	return s.docs.List()
}

func (s *DocumentService) Get(id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	doc, err := s.docs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// Delete removes the document, its stored file and every dependent record
// (quizzes, their attempts, bound chat sessions).
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.docs.DeleteCascade(id); err != nil {
		return err
	}
	if doc.FilePath != "" {
		if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
			s.log.Warn("remove pdf file failed", "path", doc.FilePath, "error", err)
		}
	}
	s.recordEvent(ctx, model.EventDocumentDeleted, id, doc.Filename)
	return nil
}

func (s *DocumentService) recordEvent(ctx context.Context, kind, subjectID, detail string) {
	if s.events == nil {
		return
	}
	event := model.StudyEvent{
		Kind:      kind,
		SubjectID: subjectID,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn("publish study event failed", "kind", kind, "error", err)
	}
}
