package services

import (
	"strings"
	"testing"

	"threadswap_backend/internal/models"
	"threadswap_backend/internal/shipping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shippingFixture struct {
	service   ShippingService
	shipments *fakeShipmentRepo
	wardrobe  *fakeWardrobeRepo
	swaps     *fakeSwapRepo
	owner     *models.User
	item      *models.WardrobeItem
}

func newShippingFixture(t *testing.T) *shippingFixture {
	t.Helper()
	owner := &models.User{BaseModel: models.BaseModel{ID: "owner-1"}}
	item := &models.WardrobeItem{OwnerID: owner.ID, Title: "Parka"}
	wardrobe := newFakeWardrobeRepo(item)
	swaps := newFakeSwapRepo(wardrobe)
	shipments := newFakeShipmentRepo()
	return &shippingFixture{
		service:   NewShippingService(shipments, wardrobe, swaps),
		shipments: shipments,
		wardrobe:  wardrobe,
		swaps:     swaps,
		owner:     owner,
		item:      item,
	}
}

func sampleAddress(state string) shipping.Address {
	return shipping.Address{
		Name: "Nora", Street: "1 Main St", City: "Somewhere",
		State: state, PostalCode: "90001", Country: "US",
	}
}

func TestEstimate(t *testing.T) {
	f := newShippingFixture(t)

	t.Run("returns the full catalog", func(t *testing.T) {
		quotes, err := f.service.Estimate(EstimateInput{
			From: sampleAddress("CA"), To: sampleAddress("NY"), WeightOz: 16,
		})

		require.NoError(t, err)
		require.Len(t, quotes, 4)
		for _, quote := range quotes {
			assert.Greater(t, quote.PriceCents, int64(0))
			assert.False(t, quote.EstimatedDelivery.IsZero())
		}
	})

	t.Run("missing state rejected", func(t *testing.T) {
		_, err := f.service.Estimate(EstimateInput{
			From: sampleAddress("CA"), To: sampleAddress(""), WeightOz: 16,
		})
		assert.Equal(t, 400, httpCode(t, err))
	})
}

func TestCreateLabel(t *testing.T) {
	input := func(itemID string) CreateLabelInput {
		return CreateLabelInput{
			ItemID:  itemID,
			Carrier: "usps", Service: "priority mail",
			From: sampleAddress("CA"), To: sampleAddress("NV"), WeightOz: 12,
		}
	}

	t.Run("owner buys a label at the estimator's price", func(t *testing.T) {
		f := newShippingFixture(t)
		quotes, err := f.service.Estimate(EstimateInput{
			From: sampleAddress("CA"), To: sampleAddress("NV"), WeightOz: 12,
		})
		require.NoError(t, err)
		var want int64
		for _, quote := range quotes {
			if quote.Carrier == "USPS" && quote.Service == "Priority Mail" {
				want = quote.PriceCents
			}
		}
		require.NotZero(t, want)

		shipment, err := f.service.CreateLabel(f.owner.ID, input(f.item.ID))

		require.NoError(t, err)
		assert.Equal(t, want, shipment.PriceCents)
		assert.Equal(t, "USPS", shipment.Carrier)
		assert.Equal(t, models.ShipmentStatusPending, shipment.Status)
		assert.True(t, strings.HasPrefix(shipment.TrackingNumber, "9400"))
		assert.Contains(t, shipment.LabelURL, shipment.TrackingNumber)
	})

	t.Run("unknown carrier/service combination rejected", func(t *testing.T) {
		f := newShippingFixture(t)
		bad := input(f.item.ID)
		bad.Service = "Overnight Teleport"

		_, err := f.service.CreateLabel(f.owner.ID, bad)
		assert.Equal(t, 400, httpCode(t, err))
	})

	t.Run("stranger gets a 404", func(t *testing.T) {
		f := newShippingFixture(t)
		_, err := f.service.CreateLabel("stranger", input(f.item.ID))
		assert.Equal(t, 404, httpCode(t, err))
	})

	t.Run("swap requester may label the swapped item", func(t *testing.T) {
		f := newShippingFixture(t)
		f.swaps.swaps["swap-1"] = &models.SwapRequest{
			ItemID: f.item.ID, OwnerID: f.owner.ID, RequesterID: "requester-1",
			Status: models.SwapStatusAccepted,
		}
		withSwap := input(f.item.ID)
		withSwap.SwapID = "swap-1"

		shipment, err := f.service.CreateLabel("requester-1", withSwap)

		require.NoError(t, err)
		assert.Equal(t, "swap-1", shipment.SwapID)
	})

	t.Run("swap must reference the item", func(t *testing.T) {
		f := newShippingFixture(t)
		f.swaps.swaps["swap-2"] = &models.SwapRequest{
			ItemID: "some-other-item", OwnerID: f.owner.ID, RequesterID: "requester-1",
			Status: models.SwapStatusAccepted,
		}
		mismatched := input(f.item.ID)
		mismatched.SwapID = "swap-2"

		_, err := f.service.CreateLabel(f.owner.ID, mismatched)
		assert.Equal(t, 400, httpCode(t, err))
	})

	t.Run("tracking numbers are unique per label", func(t *testing.T) {
		f := newShippingFixture(t)
		first, err := f.service.CreateLabel(f.owner.ID, input(f.item.ID))
		require.NoError(t, err)
		second, err := f.service.CreateLabel(f.owner.ID, input(f.item.ID))
		require.NoError(t, err)

		assert.NotEqual(t, first.TrackingNumber, second.TrackingNumber)
	})
}

func TestTrack(t *testing.T) {
	f := newShippingFixture(t)
	shipment, err := f.service.CreateLabel(f.owner.ID, CreateLabelInput{
		ItemID:  f.item.ID,
		Carrier: "FedEx", Service: "Express Saver",
		From: sampleAddress("CA"), To: sampleAddress("WA"), WeightOz: 8,
	})
	require.NoError(t, err)
	require.NoError(t, f.shipments.UpdateStatus(shipment.ID, models.ShipmentStatusInTransit))

	info, err := f.service.Track(shipment.TrackingNumber)

	require.NoError(t, err)
	assert.Equal(t, models.ShipmentStatusInTransit, info.Status)
	assert.Equal(t, "FedEx", info.Carrier)

	_, err = f.service.Track("no-such-tracking")
	assert.Equal(t, 404, httpCode(t, err))
}
