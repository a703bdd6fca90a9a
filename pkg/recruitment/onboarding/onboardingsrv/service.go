package onboardingsrv

import (
	"context"

	"github.com/Abraxas-365/hrms/pkg/errx"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding"
)

// OnboardingService mantiene la lista de sesiones de cada postulación.
type OnboardingService struct {
	repo    onboarding.Repository
	appRepo application.Repository
}

func NewOnboardingService(repo onboarding.Repository, appRepo application.Repository) *OnboardingService {
	return &OnboardingService{
		repo:    repo,
		appRepo: appRepo,
	}
}

// AttachSession adds the session to the application's onboarding, creating
// the record on first use. Attaching an id twice leaves one entry.
func (s *OnboardingService) AttachSession(ctx context.Context, applicationID kernel.ApplicationID, sessionID kernel.SessionID) error {
	_, err := s.repo.FindByApplication(ctx, applicationID)
	switch {
	case err == nil:
		return s.append(ctx, applicationID, sessionID)
	case errx.IsCode(err, onboarding.CodeOnboardingNotFound):
		o := onboarding.New(applicationID)
		o.Attach(sessionID)
		err := s.repo.Create(ctx, o)
		if errx.IsCode(err, onboarding.CodeAlreadyExists) {
			// creado en paralelo; basta con añadir
			return s.append(ctx, applicationID, sessionID)
		}
		if err != nil {
			return errx.Wrap(err, "failed to create onboarding", errx.TypeInternal)
		}
		return nil
	default:
		return errx.Wrap(err, "failed to load onboarding", errx.TypeInternal)
	}
}

func (s *OnboardingService) append(ctx context.Context, applicationID kernel.ApplicationID, sessionID kernel.SessionID) error {
	if err := s.repo.AppendSession(ctx, applicationID, sessionID); err != nil {
		return errx.Wrap(err, "failed to attach session to onboarding", errx.TypeInternal)
	}
	return nil
}

// DetachSession pulls the session from the onboarding of its application. A
// missing onboarding is not an error; the record is kept even when empty.
func (s *OnboardingService) DetachSession(ctx context.Context, session *interview.Session) error {
	err := s.repo.RemoveSession(ctx, session.ApplicationID, session.ID)
	if err != nil && !errx.IsCode(err, onboarding.CodeOnboardingNotFound) {
		return errx.Wrap(err, "failed to detach session from onboarding", errx.TypeInternal)
	}
	return nil
}

// GetByApplication returns the onboarding of an existing application.
func (s *OnboardingService) GetByApplication(ctx context.Context, applicationID kernel.ApplicationID) (*onboarding.Onboarding, error) {
	if _, err := s.appRepo.FindByID(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.repo.FindByApplication(ctx, applicationID)
}
