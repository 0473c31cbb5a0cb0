package sales

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a-nebula-dev/ProjectLaserBunny/model"
)

func TestUpdateFulfillmentForwardProgression(t *testing.T) {
	svc, store, publisher, sale := draftedSale(t)

	for _, status := range []model.FulfillmentStatus{
		model.FulfillmentPacking,
		model.FulfillmentShipped,
		model.FulfillmentDelivered,
	} {
		updated, err := svc.UpdateFulfillment(context.Background(), sale.ID, status, "")
		require.NoError(t, err)
		require.Equal(t, status, updated.Fulfillment.Status)
	}

	require.Equal(t, model.FulfillmentDelivered, store.m[sale.ID].Fulfillment.Status)
	require.Len(t, publisher.events, 3)
	require.Equal(t, "order.fulfillment_updated", publisher.events[0].topic)
}

func TestUpdateFulfillmentStampsShippedAtOnce(t *testing.T) {
	svc, store, _, sale := draftedSale(t)

	first, err := svc.UpdateFulfillment(context.Background(), sale.ID, model.FulfillmentShipped, "")
	require.NoError(t, err)
	require.NotNil(t, first.Fulfillment.ShippedAt)
	stamped := *first.Fulfillment.ShippedAt

	second, err := svc.UpdateFulfillment(context.Background(), sale.ID, model.FulfillmentShipped, "BR123456789")
	require.NoError(t, err)
	require.NotNil(t, second.Fulfillment.ShippedAt)
	require.Equal(t, stamped, *second.Fulfillment.ShippedAt)
	require.Equal(t, "BR123456789", store.m[sale.ID].Fulfillment.TrackingCode)
}

func TestUpdateFulfillmentRejectsBackwardTransition(t *testing.T) {
	svc, store, _, sale := draftedSale(t)

	_, err := svc.UpdateFulfillment(context.Background(), sale.ID, model.FulfillmentShipped, "")
	require.NoError(t, err)

	_, err = svc.UpdateFulfillment(context.Background(), sale.ID, model.FulfillmentPacking, "")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, model.FulfillmentShipped, store.m[sale.ID].Fulfillment.Status)
}

func TestUpdateFulfillmentInvalidStatus(t *testing.T) {
	svc, _, _, sale := draftedSale(t)

	_, err := svc.UpdateFulfillment(context.Background(), sale.ID, "lost", "")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateFulfillmentSaleNotFound(t *testing.T) {
	svc, _, _ := newTestService(catalogP1())

	_, err := svc.UpdateFulfillment(context.Background(), 404, model.FulfillmentPacking, "")
	require.ErrorIs(t, err, ErrSaleNotFound)
}

func TestUpdateFulfillmentKeepsTrackingCode(t *testing.T) {
	svc, store, _, sale := draftedSale(t)

	_, err := svc.UpdateFulfillment(context.Background(), sale.ID, model.FulfillmentShipped, "BR111")
	require.NoError(t, err)

	// empty tracking code on a later update does not wipe the stored one
	_, err = svc.UpdateFulfillment(context.Background(), sale.ID, model.FulfillmentDelivered, "")
	require.NoError(t, err)
	require.Equal(t, "BR111", store.m[sale.ID].Fulfillment.TrackingCode)
}
