package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"devconnect/internal/domain/profile"
)

type memProfileRepo struct {
	profiles map[uuid.UUID]profile.Profile
	owners   map[uuid.UUID]profile.Owner

	deletedUsers []uuid.UUID
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{
		profiles: map[uuid.UUID]profile.Profile{},
		owners:   map[uuid.UUID]profile.Owner{},
	}
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func (m *memProfileRepo) Upsert(_ context.Context, userID uuid.UUID, p profile.Patch) (profile.Profile, error) {
	existing, ok := m.profiles[userID]
	if !ok {
		existing = profile.Profile{
			ID:         uuid.New(),
			UserID:     userID,
			Skills:     []string{},
			Experience: []profile.Experience{},
			Education:  []profile.Education{},
		}
	}

	apply(&existing.Company, p.Company)
	apply(&existing.Website, p.Website)
	apply(&existing.Location, p.Location)
	apply(&existing.Status, p.Status)
	apply(&existing.Bio, p.Bio)
	apply(&existing.GithubUsername, p.GithubUsername)
	if p.Skills != nil {
		existing.Skills = p.Skills
	}
	apply(&existing.Social.Youtube, p.Social.Youtube)
	apply(&existing.Social.Twitter, p.Social.Twitter)
	apply(&existing.Social.Facebook, p.Social.Facebook)
	apply(&existing.Social.Linkedin, p.Social.Linkedin)
	apply(&existing.Social.Instagram, p.Social.Instagram)

	m.profiles[userID] = existing
	return existing, nil
}

func (m *memProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return p, nil
}

func (m *memProfileRepo) GetWithOwner(ctx context.Context, userID uuid.UUID) (profile.WithOwner, error) {
	p, err := m.GetByUserID(ctx, userID)
	if err != nil {
		return profile.WithOwner{}, err
	}
	return profile.WithOwner{Profile: p, Owner: m.owners[userID]}, nil
}

func (m *memProfileRepo) ListWithOwners(_ context.Context) ([]profile.WithOwner, error) {
	out := make([]profile.WithOwner, 0, len(m.profiles))
	for userID, p := range m.profiles {
		out = append(out, profile.WithOwner{Profile: p, Owner: m.owners[userID]})
	}
	return out, nil
}

func (m *memProfileRepo) SetExperience(_ context.Context, userID uuid.UUID, entries []profile.Experience) error {
	p, ok := m.profiles[userID]
	if !ok {
		return profile.ErrNotFound
	}
	p.Experience = entries
	m.profiles[userID] = p
	return nil
}

func (m *memProfileRepo) SetEducation(_ context.Context, userID uuid.UUID, entries []profile.Education) error {
	p, ok := m.profiles[userID]
	if !ok {
		return profile.ErrNotFound
	}
	p.Education = entries
	m.profiles[userID] = p
	return nil
}

func (m *memProfileRepo) DeleteWithUser(_ context.Context, userID uuid.UUID) error {
	delete(m.profiles, userID)
	delete(m.owners, userID)
	m.deletedUsers = append(m.deletedUsers, userID)
	return nil
}

func strptr(s string) *string { return &s }

func TestService_Upsert_DisjointFieldsUnion(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, UpsertInput{
		Status: strptr("Developer"),
		Skills: strptr("Go, SQL"),
	})
	require.NoError(t, err)

	p, err := svc.Upsert(context.Background(), userID, UpsertInput{
		Company: strptr("Acme"),
		Youtube: strptr("https://youtube.com/acme"),
	})
	require.NoError(t, err)

	// Union of both calls, not just the latest one.
	require.Equal(t, "Developer", p.Status)
	require.Equal(t, []string{"Go", "SQL"}, p.Skills)
	require.Equal(t, "Acme", p.Company)
	require.Equal(t, "https://youtube.com/acme", p.Social.Youtube)
}

func TestService_Upsert_EmptyStringOverwrites(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, UpsertInput{
		Status:  strptr("Developer"),
		Skills:  strptr("Go"),
		Company: strptr("Acme"),
	})
	require.NoError(t, err)

	// Supplied-as-empty clears the field; absent leaves it alone.
	p, err := svc.Upsert(context.Background(), userID, UpsertInput{Company: strptr("")})
	require.NoError(t, err)
	require.Equal(t, "", p.Company)
	require.Equal(t, "Developer", p.Status)
}

func TestSplitSkills(t *testing.T) {
	require.Equal(t, []string{"Go", "SQL", "Redis"}, SplitSkills(" Go ,SQL,, Redis "))
	require.Empty(t, SplitSkills("  , ,"))
}

func TestService_AddExperience_PrependsNewest(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, UpsertInput{Status: strptr("Dev"), Skills: strptr("Go")})
	require.NoError(t, err)

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := svc.AddExperience(context.Background(), userID, ExperienceInput{
			Title: title, Company: "Acme", From: "2020-01-01",
		})
		require.NoError(t, err)
	}

	p, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, p.Experience, 3)
	require.Equal(t, "Third", p.Experience[0].Title)
	require.Equal(t, "Second", p.Experience[1].Title)
	require.Equal(t, "First", p.Experience[2].Title)
}

func TestService_RemoveExperience_MiddleKeepsOrderAndIdentity(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, UpsertInput{Status: strptr("Dev"), Skills: strptr("Go")})
	require.NoError(t, err)

	for _, title := range []string{"First", "Second", "Third"} {
		_, err := svc.AddExperience(context.Background(), userID, ExperienceInput{
			Title: title, Company: "Acme", From: "2020-01-01",
		})
		require.NoError(t, err)
	}

	before, err := repo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	newest, middle, oldest := before.Experience[0], before.Experience[1], before.Experience[2]

	p, err := svc.RemoveExperience(context.Background(), userID, middle.ID.String())
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)
	require.Equal(t, newest.ID, p.Experience[0].ID)
	require.Equal(t, oldest.ID, p.Experience[1].ID)
}

func TestService_RemoveExperience_MissIsNoOp(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, UpsertInput{Status: strptr("Dev"), Skills: strptr("Go")})
	require.NoError(t, err)
	_, err = svc.AddExperience(context.Background(), userID, ExperienceInput{
		Title: "Only", Company: "Acme", From: "2020-01-01",
	})
	require.NoError(t, err)

	// Unknown and malformed ids both leave the sequence untouched; the
	// last entry in particular must survive.
	p, err := svc.RemoveExperience(context.Background(), userID, uuid.NewString())
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)

	p, err = svc.RemoveExperience(context.Background(), userID, "not-a-uuid")
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
}

func TestService_AddEducation_NoProfileIsNotFound(t *testing.T) {
	svc := NewService(newMemProfileRepo(), nil)

	// Education mirrors the experience guard: no profile, no entry.
	_, err := svc.AddEducation(context.Background(), uuid.New(), EducationInput{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01",
	})
	require.ErrorIs(t, err, profile.ErrNotFound)

	_, err = svc.AddExperience(context.Background(), uuid.New(), ExperienceInput{
		Title: "Dev", Company: "Acme", From: "2020-01-01",
	})
	require.ErrorIs(t, err, profile.ErrNotFound)
}

func TestService_AddAndRemoveEducation(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, UpsertInput{Status: strptr("Dev"), Skills: strptr("Go")})
	require.NoError(t, err)

	p, err := svc.AddEducation(context.Background(), userID, EducationInput{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01",
	})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)

	p, err = svc.RemoveEducation(context.Background(), userID, p.Education[0].ID.String())
	require.NoError(t, err)
	require.Empty(t, p.Education)
}

func TestService_Delete_RemovesProfileAndUser(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil)
	userID := uuid.New()

	_, err := svc.Upsert(context.Background(), userID, UpsertInput{Status: strptr("Dev"), Skills: strptr("Go")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), userID))
	require.Contains(t, repo.deletedUsers, userID)

	_, err = svc.Get(context.Background(), userID)
	require.ErrorIs(t, err, profile.ErrNotFound)
}

func TestService_GetByUserID_MalformedIDIsNotFound(t *testing.T) {
	svc := NewService(newMemProfileRepo(), nil)

	_, malformed := svc.GetByUserID(context.Background(), "definitely-not-a-uuid")
	_, absent := svc.GetByUserID(context.Background(), uuid.NewString())

	require.ErrorIs(t, malformed, profile.ErrNotFound)
	require.ErrorIs(t, absent, profile.ErrNotFound)
	require.Equal(t, malformed.Error(), absent.Error())
}

func TestService_List_JoinsOwners(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewService(repo, nil)

	userA, userB := uuid.New(), uuid.New()
	repo.owners[userA] = profile.Owner{ID: userA, Name: "Alice", Avatar: "https://www.gravatar.com/avatar/a"}
	repo.owners[userB] = profile.Owner{ID: userB, Name: "Bob", Avatar: "https://www.gravatar.com/avatar/b"}

	_, err := svc.Upsert(context.Background(), userA, UpsertInput{Status: strptr("Dev"), Skills: strptr("Go")})
	require.NoError(t, err)
	_, err = svc.Upsert(context.Background(), userB, UpsertInput{Status: strptr("Ops"), Skills: strptr("SQL")})
	require.NoError(t, err)

	out, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)

	names := map[string]string{}
	for _, po := range out {
		names[po.Owner.Name] = po.Owner.Avatar
	}
	require.Contains(t, names, "Alice")
	require.Contains(t, names, "Bob")
	require.NotEmpty(t, names["Alice"])
	require.NotEmpty(t, names["Bob"])
}
