package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordDeliveryAttemptCommandHandler_Handle_FailedAttemptWithRetry(t *testing.T) {
	ctx := t.Context()
	tr := activeTracking(t, kernel.NewUUID(), false)
	retryAt := time.Now().UTC().Add(4 * time.Hour)

	cmd, err := commands.NewRecordDeliveryAttemptCommand(
		tr.TrackingNumber(), commands.AttemptFailed, "recipient absent", &retryAt)
	require.NoError(t, err)

	trackingRepo := new(MockTrackingRepository)
	uow := new(MockTrackingUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		trackingRepo.On("GetByNumber", ctx, tr.TrackingNumber()).Return(tr, nil).Once(),
		trackingRepo.On("Update", ctx, tr).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTrackingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordDeliveryAttemptCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Len(t, tr.Attempts(), 1)
	attempt := tr.Attempts()[0]
	assert.Equal(t, commands.AttemptFailed, attempt.Outcome)
	assert.Equal(t, "recipient absent", attempt.Reason)
	require.NotNil(t, attempt.NextAttempt)
	assert.Equal(t, retryAt, *attempt.NextAttempt)
	assert.Equal(t, tracking.StatusPending, tr.Status())
	trackingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNewRecordDeliveryAttemptCommand_RejectsUnknownOutcome(t *testing.T) {
	_, err := commands.NewRecordDeliveryAttemptCommand("TRK-1", "lost", "", nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
