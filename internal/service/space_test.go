package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amit-tzadok/LDR/internal/invite"
	"github.com/amit-tzadok/LDR/internal/mocks"
	"github.com/amit-tzadok/LDR/internal/model"
	"github.com/amit-tzadok/LDR/internal/testutil"
)

func TestSpaceService_CreateSpace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.newUser(t, "Alice")

	first, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)
	second, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)

	assert.NotEqual(t, first.PairInviteCode, first.TrioInviteCode)
	assert.Len(t, first.PairInviteCode, 16)
	assert.Equal(t, strings.ToLower(first.PairInviteCode), first.PairInviteCode)
	assert.Contains(t, first.PairInviteLink, "invite="+first.PairInviteCode)

	s := f.getSpace(t, first.SpaceID)
	assert.Equal(t, []uuid.UUID{alice}, s.Members)
	assert.Equal(t, "Alice", s.MembersMeta[alice].Name)
	assert.Equal(t, alice, s.CreatedBy)

	p := f.getProfile(t, alice)
	assert.Equal(t, []string{first.SpaceID, second.SpaceID}, p.Couples)
	assert.Equal(t, second.SpaceID, p.Memberships().Active())
}

func TestSpaceService_CreateSpace_NoProfileSeedsAccountEmail(t *testing.T) {
	ctx := context.Background()
	spaces := mocks.NewSpaceStore(t)
	profiles := mocks.NewProfileStore(t)
	users := mocks.NewUserStore(t)
	gen, err := invite.NewGenerator(16, "https://ldr.example/")
	require.NoError(t, err)
	svc := NewSpace(spaces, profiles, users, gen, nil, false, testutil.MakeNoopLogger())

	userID := uuid.New()
	profiles.On("GetByID", mock.Anything, userID).Return(model.Profile{}, model.ErrNotFound).Once()
	users.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, Email: "u@example.com"}, nil).Once()
	spaces.On("Create", mock.Anything, mock.MatchedBy(func(s model.Space) bool {
		return s.MembersMeta[userID] == model.MemberMeta{ID: userID, Email: "u@example.com"} &&
			s.Status == model.SpaceStatusActive &&
			len(s.Members) == 1
	})).Return(model.Space{ID: "s1"}, nil).Once()
	profiles.On("AddMembership", mock.Anything, userID, mock.Anything).Return(model.Profile{}, nil).Once()

	created, err := svc.CreateSpace(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "s1", created.SpaceID)
}

func TestSpaceService_CreateSpace_FillsMissingProfileEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	zoe := uuid.New()
	_, err := f.users.Create(ctx, model.User{ID: zoe, Email: "zoe@example.com"}, model.Profile{ID: zoe, Name: "Zoe"})
	require.NoError(t, err)

	created, err := f.space.CreateSpace(ctx, zoe)
	require.NoError(t, err)

	meta := f.getSpace(t, created.SpaceID).MembersMeta[zoe]
	assert.Equal(t, "Zoe", meta.Name)
	assert.Equal(t, "zoe@example.com", meta.Email)
}

func TestSpaceService_CreateSpace_KeepsLegacySpace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.newUser(t, "Alice")

	_, err := f.spaces.Create(ctx, model.Space{
		ID:      "legacy1",
		Members: []uuid.UUID{alice},
		Status:  model.SpaceStatusActive,
	})
	require.NoError(t, err)
	require.NoError(t, f.profiles.SetMemberships(ctx, alice, model.Memberships{CoupleCode: ptr("legacy1")}))

	created, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)

	_, err = f.reconciler.Reconcile(ctx, alice)
	require.NoError(t, err)

	p := f.getProfile(t, alice)
	assert.Equal(t, []string{"legacy1", created.SpaceID}, p.Couples)
	assert.Equal(t, created.SpaceID, p.Memberships().Active())
}

// Alice creates S1; Bob joins with the pair code; Carol's reuse of the pair
// code is rejected; Carol joins with the trio code; Dave's trio attempt finds
// the space full.
func TestSpaceService_JoinScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice, bob, carol, dave := f.newUser(t, "Alice"), f.newUser(t, "Bob"), f.newUser(t, "Carol"), f.newUser(t, "Dave")

	created, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)

	s, err := f.space.JoinSpace(ctx, bob, created.PairInviteCode)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{alice, bob}, s.Members)

	_, err = f.space.JoinSpace(ctx, carol, created.PairInviteCode)
	require.ErrorIs(t, err, model.ErrInviteTypeMismatch)

	s, err = f.space.JoinSpace(ctx, carol, created.TrioInviteCode)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{alice, bob, carol}, s.Members)

	_, err = f.space.JoinSpace(ctx, dave, created.TrioInviteCode)
	require.ErrorIs(t, err, model.ErrSpaceFull)

	_, err = f.space.JoinSpace(ctx, bob, created.PairInviteCode)
	require.ErrorIs(t, err, model.ErrAlreadyMember)

	final := f.getSpace(t, created.SpaceID)
	assert.Equal(t, []uuid.UUID{alice, bob, carol}, final.Members)
	assert.Equal(t, "Bob", final.MembersMeta[bob].Name)

	p := f.getProfile(t, carol)
	assert.Equal(t, []string{created.SpaceID}, p.Couples)
	assert.Equal(t, created.SpaceID, p.Memberships().Active())
}

func TestSpaceService_JoinSpace_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice, bob := f.newUser(t, "Alice"), f.newUser(t, "Bob")

	created, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)

	tests := []struct {
		name    string
		userID  uuid.UUID
		input   string
		wantErr error
	}{
		{name: "unknown code", userID: bob, input: "zzzzzzzzzzzzzzzz", wantErr: model.ErrInvalidInviteCode},
		{name: "blank code", userID: bob, input: "   ", wantErr: model.ErrInvalidInviteCode},
		{name: "creator uses own pair code", userID: alice, input: created.PairInviteCode, wantErr: model.ErrAlreadyMember},
		{name: "trio code before second member", userID: bob, input: created.TrioInviteCode, wantErr: model.ErrInviteTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.space.JoinSpace(ctx, tt.userID, tt.input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, []uuid.UUID{alice}, f.getSpace(t, created.SpaceID).Members)
}

func TestSpaceService_JoinSpace_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice, bob := f.newUser(t, "Alice"), f.newUser(t, "Bob")

	_, err := f.spaces.Create(ctx, model.Space{
		ID:             "s-case",
		Members:        []uuid.UUID{alice},
		PairInviteCode: "abc123xyz",
		TrioInviteCode: "def456uvw",
		CreatedBy:      alice,
	})
	require.NoError(t, err)

	s, err := f.space.JoinSpace(ctx, bob, "  AbC123xyz ")
	require.NoError(t, err)
	assert.Equal(t, "s-case", s.ID)
}

func TestSpaceService_JoinSpace_AcceptsInviteLink(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice, bob := f.newUser(t, "Alice"), f.newUser(t, "Bob")

	created, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)

	link := strings.Replace(created.PairInviteLink, created.PairInviteCode, strings.ToUpper(created.PairInviteCode), 1)
	s, err := f.space.JoinSpace(ctx, bob, link)
	require.NoError(t, err)
	assert.Equal(t, created.SpaceID, s.ID)
}

func TestSpaceService_JoinSpace_ConcurrentJoinsNeverExceedCap(t *testing.T) {
	tests := []struct {
		name          string
		seedMembers   int
		useTrio       bool
		wantSuccesses int
	}{
		{name: "race for pair slot", seedMembers: 1, wantSuccesses: 1},
		{name: "race for trio slot", seedMembers: 2, useTrio: true, wantSuccesses: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, false)
			alice := f.newUser(t, "Alice")
			created, err := f.space.CreateSpace(ctx, alice)
			require.NoError(t, err)
			if tt.seedMembers == 2 {
				_, err := f.space.JoinSpace(ctx, f.newUser(t, "Bob"), created.PairInviteCode)
				require.NoError(t, err)
			}

			code := created.PairInviteCode
			if tt.useTrio {
				code = created.TrioInviteCode
			}

			const racers = 16
			joiners := make([]uuid.UUID, racers)
			for i := range joiners {
				joiners[i] = f.newUser(t, fmt.Sprintf("racer%d", i))
			}

			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				successes int
				failures  []error
			)
			for _, id := range joiners {
				wg.Add(1)
				go func(id uuid.UUID) {
					defer wg.Done()
					_, err := f.space.JoinSpace(ctx, id, code)
					mu.Lock()
					defer mu.Unlock()
					if err == nil {
						successes++
						return
					}
					failures = append(failures, err)
				}(id)
			}
			wg.Wait()

			assert.Equal(t, tt.wantSuccesses, successes)
			for _, err := range failures {
				assert.True(t, errors.Is(err, model.ErrInviteTypeMismatch) || errors.Is(err, model.ErrSpaceFull), "unexpected error: %v", err)
			}

			s := f.getSpace(t, created.SpaceID)
			assert.Len(t, s.Members, tt.seedMembers+tt.wantSuccesses)
			assert.LessOrEqual(t, len(s.Members), model.MaxSpaceMembers)
			seen := make(map[uuid.UUID]bool)
			for _, m := range s.Members {
				assert.False(t, seen[m], "duplicate member %s", m)
				seen[m] = true
			}
		})
	}
}

func TestSpaceService_JoinSpace_LostRaceIsReclassified(t *testing.T) {
	ctx := context.Background()
	spaces := mocks.NewSpaceStore(t)
	profiles := mocks.NewProfileStore(t)
	gen, err := invite.NewGenerator(16, "https://ldr.example/")
	require.NoError(t, err)
	svc := NewSpace(spaces, profiles, nil, gen, nil, false, testutil.MakeNoopLogger())

	creator, rival, joiner := uuid.New(), uuid.New(), uuid.New()
	before := model.Space{ID: "s1", Members: []uuid.UUID{creator}, PairInviteCode: "paircode", TrioInviteCode: "triocode"}
	after := before
	after.Members = []uuid.UUID{creator, rival}

	spaces.On("GetByInviteCode", mock.Anything, "paircode").Return(before, nil).Once()
	profiles.On("GetByID", mock.Anything, joiner).Return(model.Profile{}, errors.New("permission denied")).Once()
	spaces.On("AddMember", mock.Anything, "s1", joiner, model.MemberMeta{ID: joiner}, 1).Return(model.Space{}, model.ErrMembershipConflict).Once()
	spaces.On("GetByID", mock.Anything, "s1").Return(after, nil).Once()

	_, err = svc.JoinSpace(ctx, joiner, "PAIRCODE")
	require.ErrorIs(t, err, model.ErrInviteTypeMismatch)
	profiles.AssertNotCalled(t, "AddMembership", mock.Anything, mock.Anything, mock.Anything)
}

func TestSpaceService_JoinSpace_ProfileWrite(t *testing.T) {
	creator, joiner := uuid.New(), uuid.New()
	space := model.Space{ID: "s1", Members: []uuid.UUID{creator}, PairInviteCode: "paircode", TrioInviteCode: "triocode", Status: model.SpaceStatusActive}
	joined := space
	joined.Members = []uuid.UUID{creator, joiner}

	tests := []struct {
		name     string
		failures int
		wantErr  error
	}{
		{name: "retried once", failures: 1},
		{name: "gives up", failures: maxProfileWriteAttempts, wantErr: model.ErrJoinIncomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			spaces := mocks.NewSpaceStore(t)
			profiles := mocks.NewProfileStore(t)
			gen, err := invite.NewGenerator(16, "https://ldr.example/")
			require.NoError(t, err)
			svc := NewSpace(spaces, profiles, nil, gen, nil, false, testutil.MakeNoopLogger())

			spaces.On("GetByInviteCode", mock.Anything, "paircode").Return(space, nil).Once()
			profiles.On("GetByID", mock.Anything, joiner).Return(model.Profile{ID: joiner, Name: "Bob"}, nil).Once()
			spaces.On("AddMember", mock.Anything, "s1", joiner, mock.Anything, 1).Return(joined, nil).Once()
			profiles.On("AddMembership", mock.Anything, joiner, "s1").Return(model.Profile{}, errors.New("connection reset")).Times(tt.failures)
			if tt.failures < maxProfileWriteAttempts {
				profiles.On("AddMembership", mock.Anything, joiner, "s1").Return(model.Profile{ID: joiner}, nil).Once()
			}

			got, err := svc.JoinSpace(ctx, joiner, "paircode")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), "recover the space")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, joined.Members, got.Members)
		})
	}
}

func TestSpaceService_JoinSpace_ReadFailure(t *testing.T) {
	spaces := mocks.NewSpaceStore(t)
	profiles := mocks.NewProfileStore(t)
	gen, err := invite.NewGenerator(16, "https://ldr.example/")
	require.NoError(t, err)
	svc := NewSpace(spaces, profiles, nil, gen, nil, false, testutil.MakeNoopLogger())

	spaces.On("GetByInviteCode", mock.Anything, "somecode").Return(model.Space{}, errors.New("connection reset")).Once()

	_, err = svc.JoinSpace(context.Background(), uuid.New(), "somecode")
	require.ErrorIs(t, err, model.ErrReadFailure)
}

func TestSpaceService_LeaveSpace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice, bob := f.newUser(t, "Alice"), f.newUser(t, "Bob")

	s1, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)
	s2, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)
	_, err = f.space.JoinSpace(ctx, bob, s1.PairInviteCode)
	require.NoError(t, err)

	require.NoError(t, f.space.SwitchActiveSpace(ctx, alice, s1.SpaceID))
	require.NoError(t, f.profiles.SetMemberships(ctx, alice, model.Memberships{
		Couples:          []string{s1.SpaceID, s2.SpaceID},
		ActiveCoupleCode: ptr(s1.SpaceID),
		CoupleCode:       ptr(s1.SpaceID),
	}))

	require.NoError(t, f.space.LeaveSpace(ctx, alice, s1.SpaceID))

	p := f.getProfile(t, alice)
	assert.Equal(t, []string{s2.SpaceID}, p.Couples)
	assert.Equal(t, s2.SpaceID, p.Memberships().Active())
	assert.Nil(t, p.CoupleCode)

	space := f.getSpace(t, s1.SpaceID)
	assert.Equal(t, []uuid.UUID{bob}, space.Members)
	assert.NotContains(t, space.MembersMeta, alice)
	assert.True(t, space.IsActive())

	require.ErrorIs(t, f.space.LeaveSpace(ctx, alice, s1.SpaceID), model.ErrNotAMember)
}

func TestSpaceService_LeaveSpace_LastSpaceClearsActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.newUser(t, "Alice")

	created, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)
	require.NoError(t, f.space.LeaveSpace(ctx, alice, created.SpaceID))

	p := f.getProfile(t, alice)
	assert.Empty(t, p.Couples)
	assert.Nil(t, p.ActiveCoupleCode)
	assert.Empty(t, f.getSpace(t, created.SpaceID).Members)
}

func TestSpaceService_LeaveSpace_DissolvePolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	alice, bob, carol := f.newUser(t, "Alice"), f.newUser(t, "Bob"), f.newUser(t, "Carol")

	created, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)
	_, err = f.space.JoinSpace(ctx, bob, created.PairInviteCode)
	require.NoError(t, err)

	require.NoError(t, f.space.LeaveSpace(ctx, bob, created.SpaceID))
	assert.False(t, f.getSpace(t, created.SpaceID).IsActive())

	_, err = f.space.JoinSpace(ctx, carol, created.PairInviteCode)
	require.ErrorIs(t, err, model.ErrInvalidInviteCode)

	removed, err := f.reconciler.Reconcile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{created.SpaceID}, removed)
}

func TestSpaceService_LeaveSpace_StaleProfileEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.newUser(t, "Alice")

	require.NoError(t, f.profiles.SetMemberships(ctx, alice, model.Memberships{
		Couples:          []string{"gone"},
		ActiveCoupleCode: ptr("gone"),
	}))

	require.NoError(t, f.space.LeaveSpace(ctx, alice, "gone"))
	p := f.getProfile(t, alice)
	assert.Empty(t, p.Couples)
	assert.Nil(t, p.ActiveCoupleCode)
}

func TestSpaceService_SwitchActiveSpace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice := f.newUser(t, "Alice")

	s1, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)
	_, err = f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)

	require.NoError(t, f.space.SwitchActiveSpace(ctx, alice, s1.SpaceID))
	assert.Equal(t, s1.SpaceID, f.getProfile(t, alice).Memberships().Active())

	require.ErrorIs(t, f.space.SwitchActiveSpace(ctx, alice, "not-mine"), model.ErrNotAMember)
}

func TestSpaceService_RenameAndView(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice, bob, eve := f.newUser(t, "Alice"), f.newUser(t, "Bob"), f.newUser(t, "Eve")

	created, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)
	_, err = f.space.JoinSpace(ctx, bob, created.PairInviteCode)
	require.NoError(t, err)

	view, err := f.space.GetSpace(ctx, alice, created.SpaceID)
	require.NoError(t, err)
	assert.Equal(t, "Alice & Bob's Space", view.DisplayName)
	assert.True(t, view.Selected)
	require.Len(t, view.ResolvedMembers, 2)
	assert.Equal(t, model.MemberSourceProfile, view.ResolvedMembers[0].Source)

	require.NoError(t, f.space.RenameSpace(ctx, bob, created.SpaceID, "  Our Place "))
	view, err = f.space.GetSpace(ctx, bob, created.SpaceID)
	require.NoError(t, err)
	assert.Equal(t, "Our Place", view.DisplayName)
	assert.True(t, view.Selected)

	require.NoError(t, f.space.RenameSpace(ctx, bob, created.SpaceID, "   "))
	assert.Nil(t, f.getSpace(t, created.SpaceID).CustomName)

	require.ErrorIs(t, f.space.RenameSpace(ctx, eve, created.SpaceID, "mine"), model.ErrNotAMember)
	_, err = f.space.GetSpace(ctx, eve, created.SpaceID)
	require.ErrorIs(t, err, model.ErrNotAMember)
}

func TestSpaceService_ListAndRecover(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	alice, bob := f.newUser(t, "Alice"), f.newUser(t, "Bob")

	s1, err := f.space.CreateSpace(ctx, alice)
	require.NoError(t, err)
	_, err = f.space.JoinSpace(ctx, bob, s1.PairInviteCode)
	require.NoError(t, err)

	// Bob's profile loses the space while the space still lists him.
	require.NoError(t, f.profiles.SetMemberships(ctx, bob, model.Memberships{Couples: []string{"ghost"}}))

	views, err := f.space.ListSpaces(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, views)

	recoverable, err := f.space.ListRecoverableSpaces(ctx, bob)
	require.NoError(t, err)
	require.Len(t, recoverable, 1)
	assert.Equal(t, s1.SpaceID, recoverable[0].ID)
	assert.False(t, recoverable[0].InProfile)

	require.NoError(t, f.space.RecoverSpace(ctx, bob, s1.SpaceID))
	views, err = f.space.ListSpaces(ctx, bob)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Selected)

	require.ErrorIs(t, f.space.RecoverSpace(ctx, bob, "ghost"), model.ErrNotAMember)
}

func TestSpaceService_ListSpaces_SkipsUnreadable(t *testing.T) {
	spaces := mocks.NewSpaceStore(t)
	profiles := mocks.NewProfileStore(t)
	gen, err := invite.NewGenerator(16, "https://ldr.example/")
	require.NoError(t, err)
	svc := NewSpace(spaces, profiles, nil, gen, nil, false, testutil.MakeNoopLogger())

	userID := uuid.New()
	profiles.On("GetByID", mock.Anything, userID).Return(model.Profile{
		ID:               userID,
		Name:             "Alice",
		Couples:          []string{"s1", "s2"},
		ActiveCoupleCode: ptr("s2"),
	}, nil)
	spaces.On("GetByID", mock.Anything, "s1").Return(model.Space{}, errors.New("timeout")).Once()
	spaces.On("GetByID", mock.Anything, "s2").Return(model.Space{ID: "s2", Members: []uuid.UUID{userID}}, nil).Once()

	views, err := svc.ListSpaces(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "s2", views[0].ID)
	assert.Equal(t, "My Space", views[0].DisplayName)
	assert.True(t, views[0].Selected)
}

func TestSpaceService_SpaceSettings(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	f := newFixture(t, false)
	alice, bob, spaceID := pairedSpace(t, f)
	outsider := f.newUser(t, "Eve")

	settings, err := f.space.GetSpaceSettings(ctx, bob, spaceID)
	require.NoError(t, err)
	assert.Equal(t, model.SpaceSettings{}, settings)

	events, stop, err := f.broker.Subscribe(ctx, spaceID)
	require.NoError(t, err)
	defer stop()

	meet := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	start := time.Date(2021, 6, 5, 0, 0, 0, 0, time.UTC)
	_, err = f.space.UpdateSpaceSettings(ctx, alice, spaceID, model.SpaceSettingsPatch{
		NextMeetDate: &model.DateChange{Date: &meet},
	})
	require.NoError(t, err)

	select {
	case e := <-events:
		assert.Equal(t, model.EventSpaceUpdated, e.Kind)
		assert.Equal(t, alice, e.ActorID)
	case <-ctx.Done():
		t.Fatal("settings update was not published")
	}

	settings, err = f.space.UpdateSpaceSettings(ctx, bob, spaceID, model.SpaceSettingsPatch{
		RelationshipStart: &model.DateChange{Date: &start},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-14", model.FormatDate(settings.NextMeetDate))
	assert.Equal(t, "2021-06-05", model.FormatDate(settings.RelationshipStart))

	settings, err = f.space.UpdateSpaceSettings(ctx, alice, spaceID, model.SpaceSettingsPatch{
		NextMeetDate: &model.DateChange{},
	})
	require.NoError(t, err)
	assert.Nil(t, settings.NextMeetDate)
	assert.Equal(t, "2021-06-05", model.FormatDate(settings.RelationshipStart))

	got, err := f.space.GetSpaceSettings(ctx, alice, spaceID)
	require.NoError(t, err)
	assert.Equal(t, settings, got)

	_, err = f.space.GetSpaceSettings(ctx, outsider, spaceID)
	require.ErrorIs(t, err, model.ErrNotAMember)
	_, err = f.space.UpdateSpaceSettings(ctx, outsider, spaceID, model.SpaceSettingsPatch{NextMeetDate: &model.DateChange{Date: &meet}})
	require.ErrorIs(t, err, model.ErrNotAMember)
	_, err = f.space.UpdateSpaceSettings(ctx, alice, spaceID, model.SpaceSettingsPatch{})
	require.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = f.space.GetSpaceSettings(ctx, alice, "missing")
	require.ErrorIs(t, err, model.ErrNotAMember)
}

func TestSpaceService_UpdateSpaceSettings_StoreFailure(t *testing.T) {
	spaces := mocks.NewSpaceStore(t)
	gen, err := invite.NewGenerator(16, "https://ldr.example/")
	require.NoError(t, err)
	svc := NewSpace(spaces, mocks.NewProfileStore(t), nil, gen, nil, false, testutil.MakeNoopLogger())

	userID := uuid.New()
	patch := model.SpaceSettingsPatch{RelationshipStart: &model.DateChange{}}
	spaces.On("GetByID", mock.Anything, "s1").Return(model.Space{ID: "s1", Members: []uuid.UUID{userID}}, nil).Once()
	spaces.On("UpdateSettings", mock.Anything, "s1", patch).Return(model.SpaceSettings{}, assert.AnError).Once()

	_, err = svc.UpdateSpaceSettings(context.Background(), userID, "s1", patch)
	require.ErrorIs(t, err, assert.AnError)
}
