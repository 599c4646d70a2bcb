//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/amit-tzadok/LDR/database"
	"github.com/amit-tzadok/LDR/internal/model"
	repo "github.com/amit-tzadok/LDR/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "ldr_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/ldr_test?sslmode=disable", host, port.Port())
	if err := database.Migrate(ctx, dsn); err != nil {
		panic(err)
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *repo.Connection {
	t.Helper()
	conn, err := repo.NewConnection(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func newSpace(creator uuid.UUID) model.Space {
	suffix := uuid.NewString()[:8]
	return model.Space{
		ID:             "space" + suffix,
		Members:        []uuid.UUID{creator},
		PairInviteCode: "pair" + suffix + "abcdef",
		TrioInviteCode: "trio" + suffix + "abcdef",
		MembersMeta:    map[uuid.UUID]model.MemberMeta{creator: {ID: creator, Name: "Alice"}},
		CreatedBy:      creator,
	}
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	require.NoError(t, conn.Ping(ctx))

	t.Run("user_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		u := model.User{
			ID:           uuid.New(),
			Email:        "user@example.com",
			PasswordHash: []byte("hash"),
		}
		saved, err := ur.Create(ctx, u, model.Profile{ID: u.ID, Name: "user", Email: u.Email})
		require.NoError(t, err)
		require.Equal(t, u.ID, saved.ID)

		profile, err := repo.NewProfileRepository(conn).GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "user", profile.Name)
		assert.Empty(t, profile.Couples)

		byEmail, err := ur.GetByEmail(ctx, "USER@example.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, byEmail.ID)

		byID, err := ur.GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, u.Email, byID.Email)

		retry := uuid.New()
		_, err = ur.Create(ctx, model.User{ID: retry, Email: "User@Example.com", PasswordHash: []byte("x")}, model.Profile{ID: retry})
		require.ErrorIs(t, err, model.ErrEmailTaken)
		_, err = repo.NewProfileRepository(conn).GetByID(ctx, retry)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("user_create_rolls_back_on_profile_failure", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		first := uuid.New()
		_, err := ur.Create(ctx, model.User{ID: first, Email: "first@example.com", PasswordHash: []byte("h")}, model.Profile{ID: first})
		require.NoError(t, err)

		// The profile id collides, so the second account must not be kept.
		_, err = ur.Create(ctx, model.User{ID: uuid.New(), Email: "second@example.com", PasswordHash: []byte("h")}, model.Profile{ID: first})
		require.Error(t, err)

		_, err = ur.GetByEmail(ctx, "second@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("profile_repository", func(t *testing.T) {
		pr := repo.NewProfileRepository(conn)
		id := uuid.New()
		legacy := "legacyspace"
		_, err := repo.NewUserRepository(conn).Create(ctx,
			model.User{ID: id, Email: "bob@example.com", PasswordHash: []byte("h")},
			model.Profile{ID: id, Name: "Bob", CoupleCode: &legacy})
		require.NoError(t, err)

		got, err := pr.GetByID(ctx, id)
		require.NoError(t, err)
		require.Empty(t, got.Couples)
		require.True(t, got.NeedsLegacyUpgrade())

		name := "Robert"
		got, err = pr.UpdateDetails(ctx, id, model.MemberMetaPatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Robert", got.Name)

		got, err = pr.AddMembership(ctx, id, "s1")
		require.NoError(t, err)
		got, err = pr.AddMembership(ctx, id, "s1")
		require.NoError(t, err)
		assert.Equal(t, []string{"legacyspace", "s1"}, got.Couples)
		assert.Equal(t, "s1", got.Memberships().Active())
		require.NotNil(t, got.CoupleCode)
		assert.Equal(t, legacy, *got.CoupleCode)

		require.NoError(t, pr.SetMemberships(ctx, id, model.Memberships{}))
		got, err = pr.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, got.Couples)
		assert.Nil(t, got.ActiveCoupleCode)
		assert.Nil(t, got.CoupleCode)

		_, err = pr.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("space_repository", func(t *testing.T) {
		sr := repo.NewSpaceRepository(conn)
		creator, partner := uuid.New(), uuid.New()
		s := newSpace(creator)

		saved, err := sr.Create(ctx, s)
		require.NoError(t, err)
		require.Equal(t, model.SpaceStatusActive, saved.Status)

		byCode, err := sr.GetByInviteCode(ctx, s.TrioInviteCode)
		require.NoError(t, err)
		require.Equal(t, s.ID, byCode.ID)

		_, err = sr.AddMember(ctx, s.ID, partner, model.MemberMeta{ID: partner}, 2)
		require.ErrorIs(t, err, model.ErrMembershipConflict)

		joined, err := sr.AddMember(ctx, s.ID, partner, model.MemberMeta{ID: partner, Name: "Bob"}, 1)
		require.NoError(t, err)
		require.Equal(t, []uuid.UUID{creator, partner}, joined.Members)
		require.Equal(t, "Bob", joined.MembersMeta[partner].Name)

		listed, err := sr.ListByMember(ctx, partner)
		require.NoError(t, err)
		require.Len(t, listed, 1)

		photo := "https://cdn/p.png"
		require.NoError(t, sr.PatchMemberMeta(ctx, s.ID, partner, model.MemberMetaPatch{PhotoURL: &photo}))
		got, err := sr.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bob", got.MembersMeta[partner].Name)
		assert.Equal(t, photo, got.MembersMeta[partner].PhotoURL)

		assert.Nil(t, got.Settings.NextMeetDate)
		meet := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
		start := time.Date(2021, 6, 5, 0, 0, 0, 0, time.UTC)
		_, err = sr.UpdateSettings(ctx, s.ID, model.SpaceSettingsPatch{NextMeetDate: &model.DateChange{Date: &meet}})
		require.NoError(t, err)
		settings, err := sr.UpdateSettings(ctx, s.ID, model.SpaceSettingsPatch{RelationshipStart: &model.DateChange{Date: &start}})
		require.NoError(t, err)
		assert.Equal(t, "2025-02-14", model.FormatDate(settings.NextMeetDate))
		assert.Equal(t, "2021-06-05", model.FormatDate(settings.RelationshipStart))
		settings, err = sr.UpdateSettings(ctx, s.ID, model.SpaceSettingsPatch{NextMeetDate: &model.DateChange{}})
		require.NoError(t, err)
		assert.Nil(t, settings.NextMeetDate)
		got, err = sr.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, "2021-06-05", model.FormatDate(got.Settings.RelationshipStart))
		_, err = sr.UpdateSettings(ctx, "missing", model.SpaceSettingsPatch{NextMeetDate: &model.DateChange{}})
		require.ErrorIs(t, err, model.ErrNotFound)

		custom := "Us"
		require.NoError(t, sr.SetCustomName(ctx, s.ID, &custom))

		left, err := sr.RemoveMember(ctx, s.ID, partner)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{creator}, left.Members)
		assert.NotContains(t, left.MembersMeta, partner)
		assert.Equal(t, "Us", *left.CustomName)

		require.NoError(t, sr.SetStatus(ctx, s.ID, model.SpaceStatusDissolved))
		got, err = sr.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive())
	})

	t.Run("item_repository", func(t *testing.T) {
		ir := repo.NewItemRepository(conn)
		author := uuid.New()

		first, err := ir.Create(ctx, model.Item{
			ID: uuid.New(), SpaceID: "s-items", Collection: model.CollectionBooks, Title: "Dune", CreatedBy: author,
			Fields: map[string]any{"author": "Herbert"},
		})
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		second, err := ir.Create(ctx, model.Item{
			ID: uuid.New(), SpaceID: "s-items", Collection: model.CollectionBooks, Title: "Emma", CreatedBy: author,
		})
		require.NoError(t, err)

		list, err := ir.List(ctx, "s-items", model.CollectionBooks)
		require.NoError(t, err)
		require.Len(t, list, 2)

		updated, err := ir.GetUpdatedAfter(ctx, "s-items", model.CollectionBooks, first.UpdatedAt)
		require.NoError(t, err)
		require.Len(t, updated, 1)
		require.Equal(t, second.ID, updated[0].ID)

		first.Completed = true
		saved, err := ir.Update(ctx, first)
		require.NoError(t, err)
		assert.True(t, saved.Completed)
		assert.Equal(t, "Herbert", saved.Fields["author"])

		require.NoError(t, ir.SoftDelete(ctx, second.ID))
		require.ErrorIs(t, ir.SoftDelete(ctx, second.ID), model.ErrNotFound)

		tombs, err := ir.GetDeletedAfter(ctx, "s-items", model.CollectionBooks, time.Time{})
		require.NoError(t, err)
		require.Len(t, tombs, 1)

		_, err = ir.GetByID(ctx, second.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestSpaceRepository_ConcurrentJoinsNeverExceedCap(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	sr := repo.NewSpaceRepository(conn)

	creator := uuid.New()
	s := newSpace(creator)
	_, err := sr.Create(ctx, s)
	require.NoError(t, err)

	const joiners = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			userID := uuid.New()
			for expected := 1; expected < model.MaxSpaceMembers; expected++ {
				_, err := sr.AddMember(ctx, s.ID, userID, model.MemberMeta{ID: userID}, expected)
				if err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
					return
				}
			}
		}()
	}
	wg.Wait()

	got, err := sr.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, got.Members, model.MaxSpaceMembers)
	assert.Equal(t, model.MaxSpaceMembers-1, successes)
}
