package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"

	"threadswap_backend/internal/email"
	"threadswap_backend/internal/logger"
	"threadswap_backend/internal/models"
	"threadswap_backend/internal/repositories"
	"threadswap_backend/internal/tiers"
	"threadswap_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type CreateSwapInput struct {
	ItemID         string `json:"item_id" validate:"required,uuid"`
	DeliveryMethod string `json:"delivery_method" validate:"omitempty,oneof=ship meetup"`
	Note           string `json:"note" validate:"max=1000"`
}

type SwapMessageInput struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

type SwapService interface {
	CreateSwap(requesterID string, tier models.Tier, input CreateSwapInput) (*models.SwapRequest, error)
	GetSwap(userID, swapID string) (*models.SwapRequest, error)
	ListSwaps(filter repositories.SwapListFilter) ([]models.SwapRequest, int64, error)

	// Transitions. Accept/Decline are owner-only; Complete and Cancel are
	// open to either participant.
	Accept(userID, swapID string) (*models.SwapRequest, error)
	Decline(userID, swapID string) (*models.SwapRequest, error)
	Complete(userID, swapID string) (*models.SwapRequest, error)
	Cancel(userID, swapID string) (*models.SwapRequest, error)

	SendMessage(userID, swapID string, input SwapMessageInput) (*models.SwapMessage, error)
	ListMessages(userID, swapID string) ([]models.SwapMessage, error)
}

type swapService struct {
	swaps    repositories.SwapRepository
	wardrobe repositories.WardrobeRepository
	users    repositories.UserRepository
	mailer   email.Provider
}

func NewSwapService(
	swaps repositories.SwapRepository,
	wardrobe repositories.WardrobeRepository,
	users repositories.UserRepository,
	mailer email.Provider,
) SwapService {
	return &swapService{
		swaps:    swaps,
		wardrobe: wardrobe,
		users:    users,
		mailer:   mailer,
	}
}

func (s *swapService) CreateSwap(requesterID string, tier models.Tier, input CreateSwapInput) (*models.SwapRequest, error) {
	item, err := s.wardrobe.FindByID(input.ItemID)
	if err != nil {
		if errors.Is(err, repositories.ErrItemNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if item.OwnerID == requesterID {
		return nil, apperrors.ErrSwapSelf
	}
	if item.Status != models.ItemStatusAvailable || !item.AvailableForSwap {
		return nil, apperrors.ErrItemNotAvailable
	}

	active, err := s.swaps.CountActiveByRequester(requesterID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if tiers.HasReachedLimit(tier, tiers.ResourceActiveSwaps, int(active)) {
		return nil, apperrors.ErrTierLimit
	}

	deliveryMethod := input.DeliveryMethod
	if deliveryMethod == "" {
		deliveryMethod = "ship"
	}

	swap := &models.SwapRequest{
		RequesterID:    requesterID,
		OwnerID:        item.OwnerID,
		ItemID:         item.ID,
		Status:         models.SwapStatusPending,
		DeliveryMethod: deliveryMethod,
		Note:           input.Note,
	}
	history := historyEntry(models.HistoryEventSwapRequested, map[string]interface{}{
		"requester_id": requesterID,
	})

	// The reservation (item AVAILABLE -> ON_LOAN) and the swap insert commit
	// together; a concurrent request for the same item loses the race and
	// sees a conflict rather than a double booking.
	if err := s.swaps.CreateWithReservation(swap, history); err != nil {
		if errors.Is(err, repositories.ErrItemStateConflict) {
			return nil, apperrors.ErrItemNotAvailable
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("swap requested", "swap_id", swap.ID, "item_id", item.ID, "requester_id", requesterID)
	return swap, nil
}

func (s *swapService) GetSwap(userID, swapID string) (*models.SwapRequest, error) {
	return s.participantSwap(userID, swapID)
}

func (s *swapService) ListSwaps(filter repositories.SwapListFilter) ([]models.SwapRequest, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	swaps, total, err := s.swaps.List(filter)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return swaps, total, nil
}

func (s *swapService) Accept(userID, swapID string) (*models.SwapRequest, error) {
	swap, err := s.participantSwap(userID, swapID)
	if err != nil {
		return nil, err
	}
	if swap.OwnerID != userID {
		return nil, apperrors.ErrNotItemOwner
	}
	if swap.Status != models.SwapStatusPending {
		return nil, apperrors.ErrStateConflict("swaps", "only a pending swap can be accepted")
	}

	if err := s.swaps.Accept(swapID); err != nil {
		if errors.Is(err, repositories.ErrSwapStateConflict) {
			return nil, apperrors.ErrStateConflict("swaps", "swap is no longer pending")
		}
		return nil, apperrors.InternalError(err)
	}
	swap.Status = models.SwapStatusAccepted

	s.notify(swap.RequesterID, swap, s.mailer.SendSwapAccepted)
	return swap, nil
}

func (s *swapService) Decline(userID, swapID string) (*models.SwapRequest, error) {
	swap, err := s.participantSwap(userID, swapID)
	if err != nil {
		return nil, err
	}
	if swap.OwnerID != userID {
		return nil, apperrors.ErrNotItemOwner
	}
	if swap.Status != models.SwapStatusPending {
		return nil, apperrors.ErrStateConflict("swaps", "only a pending swap can be declined")
	}

	history := historyEntry(models.HistoryEventSwapDeclined, nil)
	if err := s.swaps.Decline(swapID, swap.ItemID, history); err != nil {
		if errors.Is(err, repositories.ErrSwapStateConflict) {
			return nil, apperrors.ErrStateConflict("swaps", "swap is no longer pending")
		}
		return nil, apperrors.InternalError(err)
	}
	swap.Status = models.SwapStatusDeclined
	return swap, nil
}

func (s *swapService) Complete(userID, swapID string) (*models.SwapRequest, error) {
	swap, err := s.participantSwap(userID, swapID)
	if err != nil {
		return nil, err
	}
	if swap.Status != models.SwapStatusAccepted {
		return nil, apperrors.ErrStateConflict("swaps", "only an accepted swap can be completed")
	}

	// The previous owner appears in the permanent record only as a one-way
	// digest, so the log carries no recoverable identifier.
	history := historyEntry(models.HistoryEventOwnerChanged, map[string]interface{}{
		"previous_owner": anonymizeOwner(swap.OwnerID),
		"swap_id":        swap.ID,
	})

	if err := s.swaps.Complete(swapID, swap.ItemID, swap.RequesterID, history); err != nil {
		if errors.Is(err, repositories.ErrSwapStateConflict) {
			return nil, apperrors.ErrStateConflict("swaps", "swap is no longer accepted")
		}
		return nil, apperrors.InternalError(err)
	}
	swap.Status = models.SwapStatusComplete

	logger.Info("swap completed", "swap_id", swap.ID, "item_id", swap.ItemID, "new_owner_id", swap.RequesterID)
	s.notify(swap.RequesterID, swap, s.mailer.SendSwapCompleted)
	s.notify(swap.OwnerID, swap, s.mailer.SendSwapCompleted)
	return swap, nil
}

func (s *swapService) Cancel(userID, swapID string) (*models.SwapRequest, error) {
	swap, err := s.participantSwap(userID, swapID)
	if err != nil {
		return nil, err
	}
	if swap.Status == models.SwapStatusComplete {
		return nil, apperrors.ErrStateConflict("swaps", "a completed swap cannot be canceled")
	}
	if swap.Status.IsTerminal() {
		return nil, apperrors.ErrStateConflict("swaps", "swap is already closed")
	}

	history := historyEntry(models.HistoryEventSwapCanceled, map[string]interface{}{
		"canceled_by": anonymizeOwner(userID),
	})
	if err := s.swaps.Cancel(swapID, swap.ItemID, swap.Status, history); err != nil {
		if errors.Is(err, repositories.ErrSwapStateConflict) {
			return nil, apperrors.ErrStateConflict("swaps", "swap status changed, refresh and retry")
		}
		return nil, apperrors.InternalError(err)
	}
	swap.Status = models.SwapStatusCanceled
	return swap, nil
}

// Messages

func (s *swapService) SendMessage(userID, swapID string, input SwapMessageInput) (*models.SwapMessage, error) {
	// Messaging is never status-gated: a declined or completed swap still
	// accepts messages from its participants.
	if _, err := s.participantSwap(userID, swapID); err != nil {
		return nil, err
	}

	message := &models.SwapMessage{
		SwapID:   swapID,
		SenderID: userID,
		Body:     input.Body,
	}
	if err := s.swaps.CreateMessage(message); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return message, nil
}

func (s *swapService) ListMessages(userID, swapID string) ([]models.SwapMessage, error) {
	if _, err := s.participantSwap(userID, swapID); err != nil {
		return nil, err
	}
	messages, err := s.swaps.ListMessages(swapID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return messages, nil
}

// participantSwap loads a swap and checks the caller is the requester or the
// owner. Outsiders get the same 404 as a missing swap.
func (s *swapService) participantSwap(userID, swapID string) (*models.SwapRequest, error) {
	swap, err := s.swaps.FindByID(swapID)
	if err != nil {
		if errors.Is(err, repositories.ErrSwapNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if swap.RequesterID != userID && swap.OwnerID != userID {
		return nil, apperrors.ErrNotFound(repositories.ErrSwapNotFound)
	}
	return swap, nil
}

// notify sends a swap email best effort; a send failure is logged, never
// surfaced to the caller.
func (s *swapService) notify(userID string, swap *models.SwapRequest, send func(to, itemTitle string) error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		logger.Warn("swap notification skipped", "user_id", userID, "error", err)
		return
	}
	title := ""
	if swap.Item != nil {
		title = swap.Item.Title
	}
	if err := send(user.Email, title); err != nil {
		logger.Warn("swap notification failed", "user_id", userID, "swap_id", swap.ID, "error", err)
	}
}

// anonymizeOwner reduces a user identifier to a one-way digest for history
// records.
func anonymizeOwner(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}

func historyEntry(eventType string, metadata map[string]interface{}) *models.ItemHistory {
	entry := &models.ItemHistory{EventType: eventType}
	if metadata != nil {
		if raw, err := json.Marshal(metadata); err == nil {
			entry.Metadata = datatypes.JSON(raw)
		}
	}
	return entry
}
