package models

type UserStatus string
type Tier string
type ItemStatus string
type SwapStatus string
type ShipmentStatus string
type DiscountType string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPro      Tier = "pro"

	ItemStatusAvailable ItemStatus = "available"
	ItemStatusOnLoan    ItemStatus = "on_loan"
	ItemStatusDeleted   ItemStatus = "deleted"

	SwapStatusPending  SwapStatus = "pending"
	SwapStatusAccepted SwapStatus = "accepted"
	SwapStatusDeclined SwapStatus = "declined"
	SwapStatusComplete SwapStatus = "completed"
	SwapStatusCanceled SwapStatus = "canceled"

	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"

	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// IsTerminal reports whether a swap status permits no further transition.
func (s SwapStatus) IsTerminal() bool {
	switch s {
	case SwapStatusDeclined, SwapStatusComplete, SwapStatusCanceled:
		return true
	}
	return false
}
