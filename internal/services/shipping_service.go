package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"threadswap_backend/internal/logger"
	"threadswap_backend/internal/models"
	"threadswap_backend/internal/repositories"
	"threadswap_backend/internal/shipping"
	"threadswap_backend/pkg/apperrors"

	"github.com/google/uuid"

	"gorm.io/datatypes"
)

type EstimateInput struct {
	From     shipping.Address `json:"from" validate:"required"`
	To       shipping.Address `json:"to" validate:"required"`
	WeightOz float64          `json:"weight_oz" validate:"required,gt=0"`
}

type CreateLabelInput struct {
	ItemID   string           `json:"item_id" validate:"required,uuid"`
	SwapID   string           `json:"swap_id" validate:"omitempty,uuid"`
	Carrier  string           `json:"carrier" validate:"required"`
	Service  string           `json:"service" validate:"required"`
	From     shipping.Address `json:"from" validate:"required"`
	To       shipping.Address `json:"to" validate:"required"`
	WeightOz float64          `json:"weight_oz" validate:"required,gt=0"`
}

// TrackingInfo is the public view of a shipment's progress.
type TrackingInfo struct {
	TrackingNumber string                `json:"tracking_number"`
	Carrier        string                `json:"carrier"`
	Service        string                `json:"service"`
	Status         models.ShipmentStatus `json:"status"`
	LabelURL       string                `json:"label_url,omitempty"`
}

type ShippingService interface {
	Estimate(input EstimateInput) ([]shipping.RateQuote, error)
	CreateLabel(userID string, input CreateLabelInput) (*models.Shipment, error)
	Track(trackingNumber string) (*TrackingInfo, error)
}

type shippingService struct {
	shipments repositories.ShipmentRepository
	wardrobe  repositories.WardrobeRepository
	swaps     repositories.SwapRepository
}

func NewShippingService(
	shipments repositories.ShipmentRepository,
	wardrobe repositories.WardrobeRepository,
	swaps repositories.SwapRepository,
) ShippingService {
	return &shippingService{
		shipments: shipments,
		wardrobe:  wardrobe,
		swaps:     swaps,
	}
}

func (s *shippingService) Estimate(input EstimateInput) ([]shipping.RateQuote, error) {
	if input.From.State == "" || input.To.State == "" {
		return nil, apperrors.ValidationError("from.state and to.state are required")
	}
	return shipping.EstimateRates(input.From, input.To, input.WeightOz, time.Now()), nil
}

func (s *shippingService) CreateLabel(userID string, input CreateLabelInput) (*models.Shipment, error) {
	item, err := s.wardrobe.FindByID(input.ItemID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Only a participant in the item's movement may buy its label: the
	// current owner always, the swap requester when a swap is named.
	authorized := item.OwnerID == userID
	if input.SwapID != "" {
		swap, err := s.swaps.FindByID(input.SwapID)
		if err != nil {
			if errors.Is(err, repositories.ErrSwapNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
		if swap.ItemID != item.ID {
			return nil, apperrors.ValidationError("swap does not reference this item")
		}
		authorized = authorized || swap.RequesterID == userID
	}
	if !authorized {
		return nil, apperrors.ErrNotFound(repositories.ErrItemNotFound)
	}

	quote, err := matchQuote(input.From, input.To, input.WeightOz, input.Carrier, input.Service)
	if err != nil {
		return nil, err
	}

	trackingNumber := generateTrackingNumber(quote.Carrier)
	fromJSON, _ := json.Marshal(input.From)
	toJSON, _ := json.Marshal(input.To)

	shipment := &models.Shipment{
		ItemID:         item.ID,
		SwapID:         input.SwapID,
		Carrier:        quote.Carrier,
		Service:        quote.Service,
		TrackingNumber: trackingNumber,
		Status:         models.ShipmentStatusPending,
		PriceCents:     quote.PriceCents,
		LabelURL:       fmt.Sprintf("/api/v1/shipping/labels/%s.pdf", trackingNumber),
		FromAddress:    datatypes.JSON(fromJSON),
		ToAddress:      datatypes.JSON(toJSON),
	}
	if err := s.shipments.Create(shipment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("shipping label created",
		"tracking_number", trackingNumber, "item_id", item.ID, "carrier", quote.Carrier)
	return shipment, nil
}

func (s *shippingService) Track(trackingNumber string) (*TrackingInfo, error) {
	shipment, err := s.shipments.FindByTracking(trackingNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrShipmentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return &TrackingInfo{
		TrackingNumber: shipment.TrackingNumber,
		Carrier:        shipment.Carrier,
		Service:        shipment.Service,
		Status:         shipment.Status,
		LabelURL:       shipment.LabelURL,
	}, nil
}

// matchQuote re-runs the estimator and picks the carrier/service the caller
// asked for; the stored price is always the estimator's, never the client's.
func matchQuote(from, to shipping.Address, weightOz float64, carrier, service string) (*shipping.RateQuote, error) {
	for _, quote := range shipping.EstimateRates(from, to, weightOz, time.Now()) {
		if strings.EqualFold(quote.Carrier, carrier) && strings.EqualFold(quote.Service, service) {
			return &quote, nil
		}
	}
	return nil, apperrors.ValidationError("unknown carrier/service combination")
}

func generateTrackingNumber(carrier string) string {
	prefix := "TS"
	switch strings.ToUpper(carrier) {
	case "USPS":
		prefix = "9400"
	case "UPS":
		prefix = "1Z"
	case "FEDEX":
		prefix = "7489"
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:16]
	return prefix + suffix
}
