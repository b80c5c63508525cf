package note

import (
	"context"
	"errors"
	"net/http"
	"time"

	"lemonpay/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errNoteNotFound = apperror.New(
		apperror.CodeNotFound,
		"note not found",
		http.StatusNotFound,
	)

	errNotAuthor = apperror.New(
		apperror.CodeForbidden,
		"only the author can modify a note",
		http.StatusForbidden,
	)
)

type Service interface {
	Create(ctx context.Context, authorID string, req CreateNoteRequest) (NoteResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]NoteResponse, error)
	Update(ctx context.Context, authorID, id string, req UpdateNoteRequest) (NoteResponse, error)
	Delete(ctx context.Context, authorID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("note.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("note.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, authorID string, req CreateNoteRequest) (NoteResponse, error) {
	n := &Note{
		ID:         uuid.New(),
		EmployeeID: req.EmployeeID,
		AuthorID:   authorID,
		Body:       req.Body,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("create note persist failed", zap.Error(err))
		return NoteResponse{}, err
	}
	return mapToResponse(*n), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]NoteResponse, error) {
	notes, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]NoteResponse, len(notes))
	for i, n := range notes {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, authorID, id string, req UpdateNoteRequest) (NoteResponse, error) {
	n, err := s.findOwned(ctx, authorID, id)
	if err != nil {
		return NoteResponse{}, err
	}

	n.Body = req.Body
	if err := s.repo.Update(ctx, n); err != nil {
		return NoteResponse{}, err
	}
	return mapToResponse(*n), nil
}

func (s *service) Delete(ctx context.Context, authorID, id string) error {
	if _, err := s.findOwned(ctx, authorID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) findOwned(ctx context.Context, authorID, id string) (*Note, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNoteNotFound
		}
		return nil, err
	}
	if n.AuthorID != authorID {
		return nil, errNotAuthor
	}
	return n, nil
}

func mapToResponse(n Note) NoteResponse {
	return NoteResponse{
		ID:         n.ID.String(),
		EmployeeID: n.EmployeeID,
		AuthorID:   n.AuthorID,
		Body:       n.Body,
		CreatedAt:  n.CreatedAt.UTC().Format(time.RFC3339),
	}
}
