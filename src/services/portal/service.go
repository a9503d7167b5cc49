// Package portal assembles what a respondent sees: the event config, the
// class picker and the questions targeted at the chosen class.
package portal

import (
	"context"

	"Backend-TanyaPintar/src/errs"
	"Backend-TanyaPintar/src/models"
	"Backend-TanyaPintar/src/services/targeting"
)

type Gate interface {
	GetConfig(ctx context.Context) (*models.EventConfig, error)
}

type ClassNames interface {
	Names(ctx context.Context) ([]string, error)
}

type Catalog interface {
	ActiveQuestions(ctx context.Context) ([]models.Question, error)
}

type Service struct {
	gate    Gate
	classes ClassNames
	catalog Catalog
}

func NewService(gate Gate, classes ClassNames, catalog Catalog) *Service {
	return &Service{gate: gate, classes: classes, catalog: catalog}
}

// Form returns the portal view. Without a class, or while the portal is
// closed, the question list is empty. An unregistered class is rejected.
func (s *Service) Form(ctx context.Context, className string) (*models.PortalForm, error) {
	cfg, err := s.gate.GetConfig(ctx)
	if err != nil {
		return nil, errs.Store(err, "load event config")
	}
	names, err := s.classes.Names(ctx)
	if err != nil {
		return nil, err
	}

	form := &models.PortalForm{
		Config:    *cfg,
		Classes:   names,
		Questions: []models.Question{},
	}

	className = models.NormalizeClassName(className)
	if className == "" {
		return form, nil
	}
	if !contains(names, className) {
		return nil, errs.ErrUnknownClass
	}
	form.ClassName = className
	if !cfg.IsOpen {
		return form, nil
	}

	catalog, err := s.catalog.ActiveQuestions(ctx)
	if err != nil {
		return nil, err
	}
	form.Questions = targeting.Resolve(className, catalog)
	return form, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
