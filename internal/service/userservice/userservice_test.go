package userservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/gtonledger/internal/domain"
	"github.com/GlebRadaev/gtonledger/internal/events"
	"github.com/GlebRadaev/gtonledger/internal/service/balanceservice"
	"github.com/GlebRadaev/gtonledger/internal/settings"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

type mocks struct {
	users     *MockUserRepo
	wallets   *MockWalletRepo
	referrals *MockReferralRepo
	balance   *MockCrediter
	publisher *events.MockPublisher
}

func NewMock(t *testing.T, snap settings.Snapshot) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		users:     NewMockUserRepo(ctrl),
		wallets:   NewMockWalletRepo(ctrl),
		referrals: NewMockReferralRepo(ctrl),
		balance:   NewMockCrediter(ctrl),
		publisher: events.NewMockPublisher(ctrl),
	}
	store := NewMockStore(ctrl)
	store.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }).AnyTimes()
	svc := New(store, m.users, m.wallets, m.referrals, m.balance, settings.Fixed(snap), m.publisher)
	svc.now = func() time.Time { return now }
	return svc, m
}

func created(m *mocks, id int64) {
	m.users.EXPECT().FindByExternalID(gomock.Any(), int64(1000+id)).Return(nil, nil)
	m.users.EXPECT().Create(gomock.Any(), &domain.User{ExternalID: 1000 + id, Username: "alice"}).DoAndReturn(
		func(_ context.Context, u *domain.User) (*domain.User, error) {
			u.ID, u.CreatedAt = id, now
			return u, nil
		})
	m.wallets.EXPECT().CreateForUpdate(gomock.Any(), id, domain.WalletMain).Return(&domain.Wallet{ID: 1, UserID: id, Kind: domain.WalletMain}, nil)
}

func edge(referrer, referred int64, level int) *domain.Referral {
	return &domain.Referral{ReferrerID: referrer, ReferredID: referred, Level: level, IsActive: true}
}

func TestService_Register(t *testing.T) {
	base := settings.Defaults(settings.Base{Timezone: "UTC"})
	withWelcome := base
	withWelcome.WelcomeBonus = decimal.NewFromInt(25)
	withWelcome.WelcomeTTL = 48 * time.Hour

	tests := []struct {
		name        string
		snap        settings.Snapshot
		referrerID  *int64
		prepareMock func(m *mocks)
		expectErr   error
		check       func(t *testing.T, r *Registration)
	}{
		{
			name: "Plain registration",
			snap: base,
			prepareMock: func(m *mocks) {
				created(m, 5)
			},
			check: func(t *testing.T, r *Registration) {
				assert.True(t, r.Created)
				assert.Equal(t, int64(5), r.User.ID)
				assert.Empty(t, r.Referrals)
				assert.Nil(t, r.Welcome)
			},
		},
		{
			name: "Known external id",
			snap: base,
			prepareMock: func(m *mocks) {
				m.users.EXPECT().FindByExternalID(gomock.Any(), int64(1005)).Return(&domain.User{ID: 5, ExternalID: 1005}, nil)
			},
			check: func(t *testing.T, r *Registration) {
				assert.False(t, r.Created)
				assert.Equal(t, int64(5), r.User.ID)
			},
		},
		{
			name:       "Three ancestor levels",
			snap:       base,
			referrerID: func() *int64 { v := int64(4); return &v }(),
			prepareMock: func(m *mocks) {
				m.users.EXPECT().FindByExternalID(gomock.Any(), int64(1005)).Return(nil, nil)
				m.users.EXPECT().FindByID(gomock.Any(), int64(4)).Return(&domain.User{ID: 4}, nil)
				m.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *domain.User) (*domain.User, error) {
						u.ID = 5
						return u, nil
					})
				m.wallets.EXPECT().CreateForUpdate(gomock.Any(), int64(5), domain.WalletMain).Return(&domain.Wallet{}, nil)
				gomock.InOrder(
					m.referrals.EXPECT().Create(gomock.Any(), edge(4, 5, 1)).Return(true, nil),
					m.referrals.EXPECT().Parent(gomock.Any(), int64(4)).Return(&domain.Referral{ReferrerID: 3, ReferredID: 4, Level: 1}, nil),
					m.referrals.EXPECT().Create(gomock.Any(), edge(3, 5, 2)).Return(true, nil),
					m.referrals.EXPECT().Parent(gomock.Any(), int64(3)).Return(&domain.Referral{ReferrerID: 2, ReferredID: 3, Level: 1}, nil),
					m.referrals.EXPECT().Create(gomock.Any(), edge(2, 5, 3)).Return(true, nil),
				)
			},
			check: func(t *testing.T, r *Registration) {
				require.Len(t, r.Referrals, 3)
				for i, ref := range r.Referrals {
					assert.Equal(t, i+1, ref.Level)
					assert.Equal(t, int64(4-i), ref.ReferrerID)
				}
			},
		},
		{
			name:       "Short chain with a cycle",
			snap:       base,
			referrerID: func() *int64 { v := int64(4); return &v }(),
			prepareMock: func(m *mocks) {
				m.users.EXPECT().FindByExternalID(gomock.Any(), int64(1005)).Return(nil, nil)
				m.users.EXPECT().FindByID(gomock.Any(), int64(4)).Return(&domain.User{ID: 4}, nil)
				m.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *domain.User) (*domain.User, error) {
						u.ID = 5
						return u, nil
					})
				m.wallets.EXPECT().CreateForUpdate(gomock.Any(), int64(5), domain.WalletMain).Return(&domain.Wallet{}, nil)
				m.referrals.EXPECT().Create(gomock.Any(), edge(4, 5, 1)).Return(true, nil)
				m.referrals.EXPECT().Parent(gomock.Any(), int64(4)).Return(&domain.Referral{ReferrerID: 5, ReferredID: 4, Level: 1}, nil)
			},
			check: func(t *testing.T, r *Registration) {
				assert.Len(t, r.Referrals, 1)
			},
		},
		{
			name:       "Unknown referrer",
			snap:       base,
			referrerID: func() *int64 { v := int64(9); return &v }(),
			prepareMock: func(m *mocks) {
				m.users.EXPECT().FindByExternalID(gomock.Any(), int64(1005)).Return(nil, nil)
				m.users.EXPECT().FindByID(gomock.Any(), int64(9)).Return(nil, nil)
			},
			expectErr: domain.ErrNotFound,
		},
		{
			name: "Welcome bonus",
			snap: withWelcome,
			prepareMock: func(m *mocks) {
				created(m, 5)
				expires := now.Add(48 * time.Hour)
				m.balance.EXPECT().Credit(gomock.Any(), balanceservice.Operation{
					UserID:     5,
					Amount:     decimal.NewFromInt(25),
					WalletKind: domain.WalletBonus,
					Source:     domain.SourceBonus,
					Action:     ActionWelcome,
					Reason:     "welcome bonus",
					ExpiresAt:  &expires,
				}).Return(&balanceservice.Result{Transaction: domain.Transaction{ID: 77, UserID: 5}}, nil)
				m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(1)
			},
			check: func(t *testing.T, r *Registration) {
				require.NotNil(t, r.Welcome)
				assert.Equal(t, int64(77), r.Welcome.ID)
			},
		},
		{
			name: "Wallet creation fails",
			snap: base,
			prepareMock: func(m *mocks) {
				m.users.EXPECT().FindByExternalID(gomock.Any(), int64(1005)).Return(nil, nil)
				m.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *domain.User) (*domain.User, error) {
						u.ID = 5
						return u, nil
					})
				m.wallets.EXPECT().CreateForUpdate(gomock.Any(), int64(5), domain.WalletMain).Return(nil, domain.ErrBusy)
			},
			expectErr: domain.ErrBusy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := NewMock(t, tt.snap)
			tt.prepareMock(m)

			res, err := svc.Register(context.Background(), 1005, "alice", tt.referrerID)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestService_Get(t *testing.T) {
	svc, m := NewMock(t, settings.Defaults(settings.Base{}))

	m.users.EXPECT().FindByID(gomock.Any(), int64(5)).Return(&domain.User{ID: 5}, nil)
	user, err := svc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)

	m.users.EXPECT().FindByID(gomock.Any(), int64(6)).Return(nil, nil)
	_, err = svc.Get(context.Background(), 6)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	m.users.EXPECT().FindByID(gomock.Any(), int64(7)).Return(nil, errors.New("db error"))
	_, err = svc.Get(context.Background(), 7)
	assert.EqualError(t, err, "db error")
}
