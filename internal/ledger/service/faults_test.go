package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"ledger/internal/ledger/models"
	"ledger/internal/ledger/service/mocks"
	dErrors "ledger/pkg/domain-errors"
	"ledger/pkg/platform/sentinel"
)

// Fault-path tests use mocks because the in-memory stores cannot be made to
// fail on demand.

type faultFixture struct {
	agencies     *mocks.MockAgencyStore
	users        *mocks.MockUserStore
	contracts    *mocks.MockContractStore
	transactions *mocks.MockTransactionStore
	service      *Service
}

func newFaultFixture(t *testing.T) *faultFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &faultFixture{
		agencies:     mocks.NewMockAgencyStore(ctrl),
		users:        mocks.NewMockUserStore(ctrl),
		contracts:    mocks.NewMockContractStore(ctrl),
		transactions: mocks.NewMockTransactionStore(ctrl),
	}
	svc, err := New(f.agencies, f.users, f.contracts, f.transactions)
	require.NoError(t, err)
	f.service = svc
	return f
}

func (f *faultFixture) expectChecksPass() {
	f.contracts.EXPECT().Lock(gomock.Any(), int64(100)).
		Return(&models.Contract{ID: 100, AgencyID: 1, Status: models.ContractActive}, nil)
	f.agencies.EXPECT().FindByID(gomock.Any(), int64(1)).
		Return(&models.Agency{ID: 1, Name: "Central", Active: true}, nil)
	f.users.EXPECT().FindByID(gomock.Any(), int64(10)).
		Return(&models.User{ID: 10, Active: true}, nil)
}

// countingTx wraps a StoreTx and counts how many transaction units run.
type countingTx struct {
	inner StoreTx
	runs  int
}

func (c *countingTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	c.runs++
	return c.inner.RunInTx(ctx, fn)
}

func faultRequest() models.TransactionRequest {
	return models.TransactionRequest{
		ContractID:  100,
		Type:        models.TypeDeposit,
		Amount:      decimal.NewFromInt(100),
		AgencyID:    1,
		PerformedBy: 10,
	}
}

func TestAddTransactionStoreFaults(t *testing.T) {
	t.Run("insert failure surfaces as internal error", func(t *testing.T) {
		f := newFaultFixture(t)
		f.expectChecksPass()
		f.transactions.EXPECT().NextReferenceSeq(gomock.Any()).Return(int64(1), nil)
		f.transactions.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))

		outcome, err := f.service.AddTransaction(context.Background(), faultRequest())
		require.Error(t, err)
		assert.Nil(t, outcome)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	t.Run("reference collision redraws and succeeds", func(t *testing.T) {
		f := newFaultFixture(t)
		// The redraw reruns the whole unit, validation checks included.
		f.expectChecksPass()
		f.expectChecksPass()
		gomock.InOrder(
			f.transactions.EXPECT().NextReferenceSeq(gomock.Any()).Return(int64(1), nil),
			f.transactions.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), sentinel.ErrConflict),
			f.transactions.EXPECT().NextReferenceSeq(gomock.Any()).Return(int64(2), nil),
			f.transactions.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(55), nil),
		)

		outcome, err := f.service.AddTransaction(context.Background(), faultRequest())
		require.NoError(t, err)
		assert.True(t, outcome.Success)
		assert.Equal(t, int64(55), outcome.TransactionID)
	})

	t.Run("reference collision retries each run in a fresh transaction", func(t *testing.T) {
		f := newFaultFixture(t)
		runner := &countingTx{inner: NewInMemoryTx()}
		svc, err := New(f.agencies, f.users, f.contracts, f.transactions, WithTx(runner))
		require.NoError(t, err)

		f.expectChecksPass()
		f.expectChecksPass()
		gomock.InOrder(
			f.transactions.EXPECT().NextReferenceSeq(gomock.Any()).Return(int64(1), nil),
			f.transactions.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), sentinel.ErrConflict),
			f.transactions.EXPECT().NextReferenceSeq(gomock.Any()).Return(int64(2), nil),
			f.transactions.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(55), nil),
		)

		outcome, err := svc.AddTransaction(context.Background(), faultRequest())
		require.NoError(t, err)
		assert.True(t, outcome.Success)
		// After the unique violation the aborted transaction cannot run
		// further statements, so the second draw must not share the first
		// insert's unit.
		assert.Equal(t, 2, runner.runs)
	})

	t.Run("exhausted reference retries surface as internal error", func(t *testing.T) {
		f := newFaultFixture(t)
		for i := 0; i < referenceRetries+1; i++ {
			f.expectChecksPass()
		}
		f.transactions.EXPECT().NextReferenceSeq(gomock.Any()).Return(int64(1), nil).Times(referenceRetries + 1)
		f.transactions.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), sentinel.ErrConflict).Times(referenceRetries + 1)

		outcome, err := f.service.AddTransaction(context.Background(), faultRequest())
		require.Error(t, err)
		assert.Nil(t, outcome)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	t.Run("balance read failure on withdrawal surfaces as internal error", func(t *testing.T) {
		f := newFaultFixture(t)
		f.expectChecksPass()
		f.transactions.EXPECT().Balance(gomock.Any(), int64(100)).Return(decimal.Zero, errors.New("connection reset"))

		req := faultRequest()
		req.Type = models.TypeWithdrawal
		outcome, err := f.service.AddTransaction(context.Background(), req)
		require.Error(t, err)
		assert.Nil(t, outcome)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	t.Run("activation failure rolls the outcome back to an error", func(t *testing.T) {
		f := newFaultFixture(t)
		f.contracts.EXPECT().Lock(gomock.Any(), int64(100)).
			Return(&models.Contract{ID: 100, AgencyID: 1, Status: models.ContractDraft}, nil)
		f.agencies.EXPECT().FindByID(gomock.Any(), int64(1)).
			Return(&models.Agency{ID: 1, Name: "Central", Active: true}, nil)
		f.users.EXPECT().FindByID(gomock.Any(), int64(10)).
			Return(&models.User{ID: 10, Active: true}, nil)
		f.transactions.EXPECT().NextReferenceSeq(gomock.Any()).Return(int64(1), nil)
		f.transactions.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(7), nil)
		f.contracts.EXPECT().ActivateIfDraft(gomock.Any(), int64(100)).Return(errors.New("connection reset"))

		req := faultRequest()
		req.Type = models.TypePayment
		outcome, err := f.service.AddTransaction(context.Background(), req)
		require.Error(t, err)
		assert.Nil(t, outcome)
	})

	t.Run("stats store failure surfaces as internal error", func(t *testing.T) {
		f := newFaultFixture(t)
		f.transactions.EXPECT().StatsTotals(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset")).AnyTimes()
		f.transactions.EXPECT().StatsByType(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		f.transactions.EXPECT().StatsByAgency(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := f.service.GetTransactionStats(context.Background(), models.StatsFilter{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
