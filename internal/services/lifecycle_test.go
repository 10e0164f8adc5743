package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/rosenook/internal/models"
)

func newTestOrder(status string) *models.Order {
	order := &models.Order{
		OrderNumber:   "RN1700000000123001",
		Status:        status,
		PaymentStatus: models.PaymentPending,
	}
	order.ID = uuid.New()
	return order
}

func TestApplyTransition(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("rejects unknown status", func(t *testing.T) {
		order := newTestOrder(models.StatusPending)

		_, err := applyTransition(order, TransitionInput{Status: "TELEPORTED"}, now)

		require.ErrorIs(t, err, ErrUnknownStatus)
		assert.Equal(t, models.StatusPending, order.Status)
	})

	t.Run("appends history with default note", func(t *testing.T) {
		order := newTestOrder(models.StatusConfirmed)

		history, err := applyTransition(order, TransitionInput{Status: models.StatusShipped}, now)

		require.NoError(t, err)
		require.NotNil(t, history)
		assert.Equal(t, order.ID, history.OrderID)
		assert.Equal(t, models.StatusShipped, history.Status)
		assert.Equal(t, "Order status updated to SHIPPED", history.Notes)
	})

	t.Run("caller notes win over default note", func(t *testing.T) {
		order := newTestOrder(models.StatusConfirmed)

		history, err := applyTransition(order, TransitionInput{
			Status: models.StatusShipped,
			Notes:  "handed to courier at 12:00",
		}, now)

		require.NoError(t, err)
		require.NotNil(t, history)
		assert.Equal(t, "handed to courier at 12:00", history.Notes)
		assert.Equal(t, "handed to courier at 12:00", order.AdminNotes)
	})

	t.Run("same status appends no history", func(t *testing.T) {
		order := newTestOrder(models.StatusShipped)

		history, err := applyTransition(order, TransitionInput{Status: models.StatusShipped}, now)

		require.NoError(t, err)
		assert.Nil(t, history)
	})

	t.Run("payment status updates without a transition", func(t *testing.T) {
		order := newTestOrder(models.StatusConfirmed)

		history, err := applyTransition(order, TransitionInput{
			Status:        models.StatusConfirmed,
			PaymentStatus: models.PaymentPaid,
		}, now)

		require.NoError(t, err)
		assert.Nil(t, history)
		assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	})
}

func TestApplyTransition_Timestamps(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(2 * time.Hour)

	t.Run("shippedAt stamped on first SHIPPED entry", func(t *testing.T) {
		order := newTestOrder(models.StatusConfirmed)

		_, err := applyTransition(order, TransitionInput{Status: models.StatusShipped}, now)

		require.NoError(t, err)
		require.NotNil(t, order.ShippedAt)
		assert.Equal(t, now, *order.ShippedAt)
	})

	t.Run("shippedAt never re-stamped", func(t *testing.T) {
		order := newTestOrder(models.StatusConfirmed)

		_, err := applyTransition(order, TransitionInput{Status: models.StatusShipped}, now)
		require.NoError(t, err)

		// Bounce back and ship again much later.
		_, err = applyTransition(order, TransitionInput{Status: models.StatusConfirmed}, later)
		require.NoError(t, err)
		_, err = applyTransition(order, TransitionInput{Status: models.StatusShipped}, later)
		require.NoError(t, err)

		require.NotNil(t, order.ShippedAt)
		assert.Equal(t, now, *order.ShippedAt)
	})

	t.Run("deliveredAt stamped once on DELIVERED", func(t *testing.T) {
		order := newTestOrder(models.StatusShipped)

		_, err := applyTransition(order, TransitionInput{Status: models.StatusDelivered}, now)
		require.NoError(t, err)
		require.NotNil(t, order.DeliveredAt)
		assert.Equal(t, now, *order.DeliveredAt)

		_, err = applyTransition(order, TransitionInput{Status: models.StatusShipped}, later)
		require.NoError(t, err)
		_, err = applyTransition(order, TransitionInput{Status: models.StatusDelivered}, later)
		require.NoError(t, err)
		assert.Equal(t, now, *order.DeliveredAt)
	})

	t.Run("cancelling stamps nothing", func(t *testing.T) {
		order := newTestOrder(models.StatusPending)

		history, err := applyTransition(order, TransitionInput{Status: models.StatusCancelled}, now)

		require.NoError(t, err)
		require.NotNil(t, history)
		assert.Nil(t, order.ShippedAt)
		assert.Nil(t, order.DeliveredAt)
	})
}

func TestApplyTransition_AssignsCourier(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	courierID := uuid.New()
	order := newTestOrder(models.StatusConfirmed)

	history, err := applyTransition(order, TransitionInput{
		Status:           models.StatusShipped,
		DeliveryPersonID: &courierID,
	}, now)

	require.NoError(t, err)
	require.NotNil(t, history)
	require.NotNil(t, order.DeliveryPersonID)
	assert.Equal(t, courierID, *order.DeliveryPersonID)
}
