package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/surveyportal/surveyportal/config"
	"github.com/surveyportal/surveyportal/internal/apperror"
	"github.com/surveyportal/surveyportal/internal/dto"
	"github.com/surveyportal/surveyportal/internal/model"
	"github.com/surveyportal/surveyportal/internal/repository"
	"gorm.io/gorm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

type DocumentService interface {
	AttachToSurvey(c *gin.Context, surveyID uint, file *multipart.FileHeader) (*dto.DocumentUploadResponse, error)
	AttachToQuestion(c *gin.Context, questionID uint, file *multipart.FileHeader) (*dto.DocumentUploadResponse, error)
}

type documentService struct {
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
	documentRepo repository.DocumentRepository
	uploadDir    string
}

func NewDocumentService(
	surveyRepo repository.SurveyRepository,
	questionRepo repository.QuestionRepository,
	documentRepo repository.DocumentRepository,
	cfg *config.Config,
) DocumentService {
	return &documentService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		documentRepo: documentRepo,
		uploadDir:    cfg.UploadDir,
	}
}

// AttachToSurvey stores an uploaded file on disk and records its URL for the
// survey. A survey has at most one document; a second upload replaces the
// recorded URL.
func (s *documentService) AttachToSurvey(c *gin.Context, surveyID uint, file *multipart.FileHeader) (*dto.DocumentUploadResponse, error) {
	if _, err := s.surveyRepo.FindByID(surveyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("fetching survey %d: %w", surveyID, err)
	}
	return s.store(c, model.DocumentSurvey, surveyID, surveyID, file)
}

func (s *documentService) AttachToQuestion(c *gin.Context, questionID uint, file *multipart.FileHeader) (*dto.DocumentUploadResponse, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching question %d: %w", questionID, err)
	}
	return s.store(c, model.DocumentQuestion, questionID, question.SurveyID, file)
}

func (s *documentService) store(c *gin.Context, kind int, ownerID, surveyID uint, file *multipart.FileHeader) (*dto.DocumentUploadResponse, error) {
	name := unsafeFilenameChars.ReplaceAllString(filepath.Base(file.Filename), "_")
	dir := filepath.Join(s.uploadDir, "survey_documents", fmt.Sprintf("%d", surveyID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	dst := filepath.Join(dir, fmt.Sprintf("%d_%s", ownerID, name))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		log.Error().Err(err).Str("path", dst).Msg("Document upload: could not save file")
		return nil, fmt.Errorf("saving uploaded file: %w", err)
	}

	// Served via the static /uploads route, so the stored URL is relative
	// to the upload root.
	url := "/uploads/" + filepath.ToSlash(filepath.Join("survey_documents", fmt.Sprintf("%d", surveyID), fmt.Sprintf("%d_%s", ownerID, name)))
	if err := s.documentRepo.Upsert(kind, ownerID, url); err != nil {
		return nil, fmt.Errorf("recording document: %w", err)
	}

	log.Info().Int("kind", kind).Uint("owner_id", ownerID).Str("url", url).Msg("Document attached")
	return &dto.DocumentUploadResponse{URL: url}, nil
}
