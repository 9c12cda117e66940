package registry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	dErrors "passportal/pkg/domain-errors"
	"passportal/pkg/platform/sentinel"
	"passportal/pkg/requestcontext"
)

// renewalWindow is how close to expiry an existing passport must be before
// the holder becomes eligible for renewal.
const renewalWindow = 6 * 30 * 24 * time.Hour

const expiryLayout = "2006-01-02"

// Service answers person-level queries over the fixture datasets.
type Service struct {
	store  *Store
	logger *slog.Logger
}

func NewService(store *Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// FetchDetails aggregates NID, birth certificate and issued passports for one
// person and computes renewal eligibility.
func (s *Service) FetchDetails(ctx context.Context, nidNumber string) (*PersonDetails, error) {
	nid, err := s.store.FindNID(nidNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no record found for this NID number")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "registry lookup failed")
	}

	details := &PersonDetails{
		NID:       nid,
		Passports: s.store.PassportsByNID(nidNumber),
	}
	if details.Passports == nil {
		details.Passports = []PassportRecord{}
	}

	// Birth registrations are matched by person, not by a shared key, so the
	// mock links them by exact name and date of birth.
	for i := range s.store.certificates {
		c := s.store.certificates[i]
		if c.Name == nid.Name && c.DateOfBirth == nid.DateOfBirth {
			details.BirthCertificate = &c
			break
		}
	}

	now := requestcontext.Now(ctx)
	for _, p := range details.Passports {
		expiry, err := time.Parse(expiryLayout, p.ExpiryDate)
		if err != nil {
			s.logger.WarnContext(ctx, "fixture passport has malformed expiry date",
				"passport_number", p.PassportNumber,
				"expiry_date", p.ExpiryDate,
			)
			continue
		}
		if expiry.Sub(now) <= renewalWindow {
			details.IsEligibleForRenewal = true
			break
		}
	}
	return details, nil
}
