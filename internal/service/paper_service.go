package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"algodraft-be/internal/dto"
	"algodraft-be/internal/pkg/apperror"
	"algodraft-be/internal/pkg/logger"
	"algodraft-be/pkg/retrieval"
)

var allowedPaperExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
	".md":  true,
	".tex": true,
}

type IPaperService interface {
	Upload(ctx context.Context, filename string, content io.Reader) (dto.UploadPaperResponse, error)
	Remove(ctx context.Context, filename string) error
	List(ctx context.Context) (dto.ListPapersResponse, error)
}

type paperService struct {
	ingestor  retrieval.Ingestor
	papersDir string
	log       logger.ILogger
}

func NewPaperService(ingestor retrieval.Ingestor, papersDir string, log logger.ILogger) IPaperService {
	return &paperService{
		ingestor:  ingestor,
		papersDir: papersDir,
		log:       log,
	}
}

// Upload stores the paper locally and hands it to the retrieval service
// for ingestion. The local copy survives a retriever restart.
func (s *paperService) Upload(ctx context.Context, filename string, content io.Reader) (dto.UploadPaperResponse, error) {
	name, err := cleanPaperName(filename)
	if err != nil {
		return dto.UploadPaperResponse{}, err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return dto.UploadPaperResponse{}, apperror.Wrap(apperror.KindMalformedRequest, "failed to read upload body", err)
	}
	if len(data) == 0 {
		return dto.UploadPaperResponse{}, apperror.New(apperror.KindMalformedRequest, "uploaded file is empty")
	}

	if err := os.MkdirAll(s.papersDir, 0o755); err != nil {
		return dto.UploadPaperResponse{}, apperror.Wrap(apperror.KindPersistence, "failed to create papers directory", err)
	}
	if err := os.WriteFile(filepath.Join(s.papersDir, name), data, 0o644); err != nil {
		return dto.UploadPaperResponse{}, apperror.Wrap(apperror.KindPersistence, "failed to store paper", err)
	}

	if err := s.ingestor.Upload(ctx, name, bytes.NewReader(data)); err != nil {
		return dto.UploadPaperResponse{}, err
	}

	s.log.Info("paper", "paper ingested", map[string]interface{}{
		"filename": name,
		"bytes":    len(data),
	})
	return dto.UploadPaperResponse{Status: "ok", Filename: name}, nil
}

// Remove drops the paper from the index and the local copy. A missing
// local file is not an error.
func (s *paperService) Remove(ctx context.Context, filename string) error {
	name, err := cleanPaperName(filename)
	if err != nil {
		return err
	}

	if err := s.ingestor.Remove(ctx, name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.papersDir, name)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("paper", "failed to remove local copy", map[string]interface{}{
			"filename": name,
			"error":    err.Error(),
		})
	}

	s.log.Info("paper", "paper removed", map[string]interface{}{"filename": name})
	return nil
}

func (s *paperService) List(ctx context.Context) (dto.ListPapersResponse, error) {
	papers, err := s.ingestor.List(ctx)
	if err != nil {
		return dto.ListPapersResponse{}, err
	}
	if papers == nil {
		papers = []string{}
	}
	return dto.ListPapersResponse{Papers: papers}, nil
}

// cleanPaperName strips any path components and enforces the supported
// document types.
func cleanPaperName(filename string) (string, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", apperror.New(apperror.KindMalformedRequest, "filename must not be empty")
	}
	if !allowedPaperExtensions[strings.ToLower(filepath.Ext(name))] {
		return "", apperror.Newf(apperror.KindMalformedRequest,
			"unsupported document type %q (expected .pdf, .txt, .md or .tex)", filepath.Ext(name))
	}
	return name, nil
}
