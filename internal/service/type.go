package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"mydocs/internal/model"
	"mydocs/internal/repository"
)

const (
	maxTitleLen        = 30
	maxAbbreviationLen = 5
)

// TypeInput carries the fields of a type write. On update, nil fields are kept.
type TypeInput struct {
	Title        *string
	Abbreviation *string
}

// TypeService manages document classifications.
type TypeService interface {
	List(ctx context.Context) ([]model.Type, error)
	Get(ctx context.Context, id int64) (*model.Type, error)
	Create(ctx context.Context, in TypeInput) (*model.Type, error)
	Update(ctx context.Context, id int64, in TypeInput) (*model.Type, error)
	Delete(ctx context.Context, id int64) error
}

type typeService struct {
	repo repository.TypeRepository
}

// NewTypeService constructs a new TypeService.
func NewTypeService(repo repository.TypeRepository) TypeService {
	return &typeService{repo: repo}
}

func (s *typeService) List(ctx context.Context) ([]model.Type, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}
	return items, nil
}

func (s *typeService) Get(ctx context.Context, id int64) (*model.Type, error) {
	tp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, typeError(id, err)
	}
	return tp, nil
}

func (s *typeService) Create(ctx context.Context, in TypeInput) (*model.Type, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, &ValidationError{Field: "title", Message: "is required"}
	}
	if in.Abbreviation == nil || strings.TrimSpace(*in.Abbreviation) == "" {
		return nil, &ValidationError{Field: "abbreviation", Message: "is required"}
	}

	tp := &model.Type{}
	if err := apply(tp, in); err != nil {
		return nil, err
	}
	stored, err := s.repo.Create(ctx, tp)
	if err != nil {
		return nil, fmt.Errorf("%w: insert type: %w", ErrPersistence, err)
	}
	return stored, nil
}

func (s *typeService) Update(ctx context.Context, id int64, in TypeInput) (*model.Type, error) {
	tp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, typeError(id, err)
	}
	if err := apply(tp, in); err != nil {
		return nil, err
	}
	stored, err := s.repo.Update(ctx, tp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("%w: update type %d: %w", ErrPersistence, id, err)
	}
	return stored, nil
}

func (s *typeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTypeNotFound
		}
		return fmt.Errorf("%w: delete type %d: %w", ErrPersistence, id, err)
	}
	return nil
}

// apply validates the set fields of in and copies them onto tp.
func apply(tp *model.Type, in TypeInput) error {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return &ValidationError{Field: "title", Message: "must not be empty"}
		}
		if utf8.RuneCountInString(title) > maxTitleLen {
			return &ValidationError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", maxTitleLen)}
		}
		tp.Title = title
	}
	if in.Abbreviation != nil {
		abbr := strings.TrimSpace(*in.Abbreviation)
		if abbr == "" {
			return &ValidationError{Field: "abbreviation", Message: "must not be empty"}
		}
		if utf8.RuneCountInString(abbr) > maxAbbreviationLen {
			return &ValidationError{Field: "abbreviation", Message: fmt.Sprintf("must be at most %d characters", maxAbbreviationLen)}
		}
		tp.Abbreviation = abbr
	}
	return nil
}

func typeError(id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTypeNotFound
	}
	return fmt.Errorf("find type %d: %w", id, err)
}
