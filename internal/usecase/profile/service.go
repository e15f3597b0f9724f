package profile

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"devconnect/internal/domain/profile"
	"devconnect/internal/infrastructure/cache"
)

var ErrInternal = errors.New("internal error")

const listCacheKey = "profiles:all"

// UpsertInput mirrors the create-or-update request body. Nil pointers mean
// the field was not supplied and must leave the stored value untouched;
// skills arrive as one comma-separated string.
type UpsertInput struct {
	Company        *string
	Website        *string
	Location       *string
	Status         *string
	Skills         *string
	Bio            *string
	GithubUsername *string
	Youtube        *string
	Twitter        *string
	Facebook       *string
	Linkedin       *string
	Instagram      *string
}

type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

type Usecase interface {
	Upsert(ctx context.Context, userID uuid.UUID, in UpsertInput) (profile.Profile, error)
	Get(ctx context.Context, userID uuid.UUID) (profile.WithOwner, error)
	GetByUserID(ctx context.Context, rawUserID string) (profile.WithOwner, error)
	List(ctx context.Context) ([]profile.WithOwner, error)
	Delete(ctx context.Context, userID uuid.UUID) error

	AddExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (profile.Profile, error)
	RemoveExperience(ctx context.Context, userID uuid.UUID, rawEntryID string) (profile.Profile, error)
	AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (profile.Profile, error)
	RemoveEducation(ctx context.Context, userID uuid.UUID, rawEntryID string) (profile.Profile, error)
}

type Service struct {
	profiles profile.Repository
	cache    *cache.Redis
}

func NewService(profiles profile.Repository, listCache *cache.Redis) *Service {
	return &Service{profiles: profiles, cache: listCache}
}

func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, in UpsertInput) (profile.Profile, error) {
	patch := profile.Patch{
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Status:         in.Status,
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Social: profile.SocialPatch{
			Youtube:   in.Youtube,
			Twitter:   in.Twitter,
			Facebook:  in.Facebook,
			Linkedin:  in.Linkedin,
			Instagram: in.Instagram,
		},
	}
	if in.Skills != nil {
		patch.Skills = SplitSkills(*in.Skills)
	}

	p, err := s.profiles.Upsert(ctx, userID, patch)
	if err != nil {
		return profile.Profile{}, err
	}
	s.invalidateList(ctx)
	return p, nil
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (profile.WithOwner, error) {
	return s.profiles.GetWithOwner(ctx, userID)
}

// GetByUserID resolves an arbitrary user id from the URL. A malformed id and
// an absent profile produce the same outcome so the endpoint leaks nothing
// about which ids exist.
func (s *Service) GetByUserID(ctx context.Context, rawUserID string) (profile.WithOwner, error) {
	userID, err := uuid.Parse(strings.TrimSpace(rawUserID))
	if err != nil {
		return profile.WithOwner{}, profile.ErrNotFound
	}
	return s.profiles.GetWithOwner(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]profile.WithOwner, error) {
	var cached []profile.WithOwner
	if hit, err := s.cache.GetJSON(ctx, listCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	out, err := s.profiles.ListWithOwners(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, listCacheKey, out, 0); err != nil {
		log.Printf("[Profile] list cache write failed: %v", err)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.profiles.DeleteWithUser(ctx, userID); err != nil {
		return err
	}
	s.invalidateList(ctx)
	return nil
}

func (s *Service) AddExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}

	entry := profile.Experience{
		ID:          uuid.New(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}

	entries := append([]profile.Experience{entry}, p.Experience...)
	if err := s.profiles.SetExperience(ctx, userID, entries); err != nil {
		return profile.Profile{}, err
	}
	p.Experience = entries
	s.invalidateList(ctx)
	return p, nil
}

func (s *Service) RemoveExperience(ctx context.Context, userID uuid.UUID, rawEntryID string) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}

	entryID, err := uuid.Parse(strings.TrimSpace(rawEntryID))
	if err != nil {
		// Unknown ids are a no-op; the profile is returned unchanged.
		return p, nil
	}

	idx := -1
	for i, e := range p.Experience {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return p, nil
	}

	entries := append([]profile.Experience{}, p.Experience[:idx]...)
	entries = append(entries, p.Experience[idx+1:]...)
	if err := s.profiles.SetExperience(ctx, userID, entries); err != nil {
		return profile.Profile{}, err
	}
	p.Experience = entries
	s.invalidateList(ctx)
	return p, nil
}

func (s *Service) AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}

	entry := profile.Education{
		ID:           uuid.New(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}

	entries := append([]profile.Education{entry}, p.Education...)
	if err := s.profiles.SetEducation(ctx, userID, entries); err != nil {
		return profile.Profile{}, err
	}
	p.Education = entries
	s.invalidateList(ctx)
	return p, nil
}

func (s *Service) RemoveEducation(ctx context.Context, userID uuid.UUID, rawEntryID string) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, err
	}

	entryID, err := uuid.Parse(strings.TrimSpace(rawEntryID))
	if err != nil {
		return p, nil
	}

	idx := -1
	for i, e := range p.Education {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return p, nil
	}

	entries := append([]profile.Education{}, p.Education[:idx]...)
	entries = append(entries, p.Education[idx+1:]...)
	if err := s.profiles.SetEducation(ctx, userID, entries); err != nil {
		return profile.Profile{}, err
	}
	p.Education = entries
	s.invalidateList(ctx)
	return p, nil
}

func (s *Service) invalidateList(ctx context.Context) {
	if err := s.cache.Delete(ctx, listCacheKey); err != nil {
		log.Printf("[Profile] list cache invalidation failed: %v", err)
	}
}

// SplitSkills turns "Go, SQL ,,Redis" into ["Go","SQL","Redis"].
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
