package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"threadswap_backend/internal/ai"
	"threadswap_backend/internal/models"
	"threadswap_backend/internal/payments"
	"threadswap_backend/internal/repositories"
	"threadswap_backend/internal/tiers"

	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the stores' conflict semantics
// (expected-status guards, counter guards) so the services' behavior under
// contention is testable without a database.

type fakeUserRepo struct {
	users         map[string]*models.User
	refreshTokens map[string]*models.RefreshToken
	consumed      map[string]int
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{
		users:         map[string]*models.User{},
		refreshTokens: map[string]*models.RefreshToken{},
		consumed:      map[string]int{},
	}
	for _, u := range users {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if _, err := r.FindByEmail(user.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateProfile(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateTier(userID string, tier models.Tier) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Tier = tier
	return nil
}

func (r *fakeUserRepo) ConsumeAICredit(userID string, now time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if tiers.PeriodExpired(u.CreditsPeriodStart, now) {
		u.AICreditsUsed = 1
		u.CreditsPeriodStart = now
	} else {
		u.AICreditsUsed++
	}
	r.consumed[userID]++
	return nil
}

func (r *fakeUserRepo) CreateRefreshToken(token *models.RefreshToken) error {
	r.refreshTokens[token.Token] = token
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(token string) (*models.RefreshToken, error) {
	if t, ok := r.refreshTokens[token]; ok {
		return t, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) DeleteRefreshToken(token string) error {
	delete(r.refreshTokens, token)
	return nil
}

func (r *fakeUserRepo) DeleteUserRefreshTokens(userID string) error {
	for token, t := range r.refreshTokens {
		if t.UserID == userID {
			delete(r.refreshTokens, token)
		}
	}
	return nil
}

type fakeWardrobeRepo struct {
	items   map[string]*models.WardrobeItem
	images  map[string][]*models.ItemImage
	history []*models.ItemHistory
}

func newFakeWardrobeRepo(items ...*models.WardrobeItem) *fakeWardrobeRepo {
	r := &fakeWardrobeRepo{
		items:  map[string]*models.WardrobeItem{},
		images: map[string][]*models.ItemImage{},
	}
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.Status == "" {
			item.Status = models.ItemStatusAvailable
		}
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeWardrobeRepo) FindByID(id string) (*models.WardrobeItem, error) {
	if item, ok := r.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, repositories.ErrItemNotFound
}

func (r *fakeWardrobeRepo) Create(item *models.WardrobeItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeWardrobeRepo) Update(item *models.WardrobeItem) error {
	stored, ok := r.items[item.ID]
	if !ok {
		return repositories.ErrItemNotFound
	}
	*stored = *item
	return nil
}

func (r *fakeWardrobeRepo) List(filter repositories.ItemFilter) ([]models.WardrobeItem, int64, error) {
	var out []models.WardrobeItem
	for _, item := range r.items {
		if item.Status == models.ItemStatusDeleted {
			continue
		}
		if filter.OwnerID != "" && item.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeWardrobeRepo) CountActiveByOwner(ownerID string) (int64, error) {
	var count int64
	for _, item := range r.items {
		if item.OwnerID == ownerID && item.Status != models.ItemStatusDeleted {
			count++
		}
	}
	return count, nil
}

func (r *fakeWardrobeRepo) UpdateStatusIfCurrent(itemID string, expected, next models.ItemStatus) error {
	item, ok := r.items[itemID]
	if !ok || item.Status != expected {
		return repositories.ErrItemStateConflict
	}
	item.Status = next
	return nil
}

func (r *fakeWardrobeRepo) SoftDelete(itemID string) error {
	item, ok := r.items[itemID]
	if !ok || item.Status == models.ItemStatusDeleted {
		return repositories.ErrItemNotFound
	}
	item.Status = models.ItemStatusDeleted
	return nil
}

func (r *fakeWardrobeRepo) AddImage(image *models.ItemImage) error {
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	if image.IsPrimary {
		for _, existing := range r.images[image.ItemID] {
			existing.IsPrimary = false
		}
	}
	r.images[image.ItemID] = append(r.images[image.ItemID], image)
	return nil
}

func (r *fakeWardrobeRepo) CountImages(itemID string) (int64, error) {
	return int64(len(r.images[itemID])), nil
}

func (r *fakeWardrobeRepo) SetPrimaryImage(itemID, imageID string) error {
	found := false
	for _, image := range r.images[itemID] {
		image.IsPrimary = image.ID == imageID
		if image.IsPrimary {
			found = true
		}
	}
	if !found {
		return repositories.ErrImageNotFound
	}
	return nil
}

func (r *fakeWardrobeRepo) DeleteImage(itemID, imageID string) error {
	images := r.images[itemID]
	for i, image := range images {
		if image.ID == imageID {
			r.images[itemID] = append(images[:i], images[i+1:]...)
			return nil
		}
	}
	return repositories.ErrImageNotFound
}

func (r *fakeWardrobeRepo) AppendHistory(entry *models.ItemHistory) error {
	r.history = append(r.history, entry)
	return nil
}

func (r *fakeWardrobeRepo) ListHistory(itemID string) ([]models.ItemHistory, error) {
	var out []models.ItemHistory
	for _, entry := range r.history {
		if entry.ItemID == itemID {
			out = append(out, *entry)
		}
	}
	return out, nil
}

type fakeSwapRepo struct {
	swaps    map[string]*models.SwapRequest
	messages map[string][]*models.SwapMessage
	wardrobe *fakeWardrobeRepo
}

func newFakeSwapRepo(wardrobe *fakeWardrobeRepo) *fakeSwapRepo {
	return &fakeSwapRepo{
		swaps:    map[string]*models.SwapRequest{},
		messages: map[string][]*models.SwapMessage{},
		wardrobe: wardrobe,
	}
}

func (r *fakeSwapRepo) FindByID(id string) (*models.SwapRequest, error) {
	swap, ok := r.swaps[id]
	if !ok {
		return nil, repositories.ErrSwapNotFound
	}
	copied := *swap
	if item, err := r.wardrobe.FindByID(swap.ItemID); err == nil {
		copied.Item = item
	}
	return &copied, nil
}

func (r *fakeSwapRepo) List(filter repositories.SwapListFilter) ([]models.SwapRequest, int64, error) {
	var out []models.SwapRequest
	for _, swap := range r.swaps {
		participant := swap.RequesterID == filter.UserID || swap.OwnerID == filter.UserID
		switch filter.Role {
		case "requester":
			participant = swap.RequesterID == filter.UserID
		case "owner":
			participant = swap.OwnerID == filter.UserID
		}
		if !participant {
			continue
		}
		if filter.Status != "" && swap.Status != filter.Status {
			continue
		}
		out = append(out, *swap)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSwapRepo) CountActiveByRequester(requesterID string) (int64, error) {
	var count int64
	for _, swap := range r.swaps {
		if swap.RequesterID == requesterID &&
			(swap.Status == models.SwapStatusPending || swap.Status == models.SwapStatusAccepted) {
			count++
		}
	}
	return count, nil
}

func (r *fakeSwapRepo) CreateWithReservation(swap *models.SwapRequest, history *models.ItemHistory) error {
	if err := r.wardrobe.UpdateStatusIfCurrent(swap.ItemID, models.ItemStatusAvailable, models.ItemStatusOnLoan); err != nil {
		return err
	}
	if swap.ID == "" {
		swap.ID = uuid.NewString()
	}
	r.swaps[swap.ID] = swap
	history.ItemID = swap.ItemID
	return r.wardrobe.AppendHistory(history)
}

func (r *fakeSwapRepo) Accept(swapID string) error {
	swap, ok := r.swaps[swapID]
	if !ok || swap.Status != models.SwapStatusPending {
		return repositories.ErrSwapStateConflict
	}
	swap.Status = models.SwapStatusAccepted
	return nil
}

func (r *fakeSwapRepo) Decline(swapID, itemID string, history *models.ItemHistory) error {
	swap, ok := r.swaps[swapID]
	if !ok || swap.Status != models.SwapStatusPending {
		return repositories.ErrSwapStateConflict
	}
	swap.Status = models.SwapStatusDeclined
	r.releaseItem(itemID)
	history.ItemID = itemID
	return r.wardrobe.AppendHistory(history)
}

func (r *fakeSwapRepo) Cancel(swapID, itemID string, current models.SwapStatus, history *models.ItemHistory) error {
	swap, ok := r.swaps[swapID]
	if !ok || swap.Status != current {
		return repositories.ErrSwapStateConflict
	}
	swap.Status = models.SwapStatusCanceled
	r.releaseItem(itemID)
	history.ItemID = itemID
	return r.wardrobe.AppendHistory(history)
}

func (r *fakeSwapRepo) Complete(swapID, itemID, newOwnerID string, history *models.ItemHistory) error {
	swap, ok := r.swaps[swapID]
	if !ok || swap.Status != models.SwapStatusAccepted {
		return repositories.ErrSwapStateConflict
	}
	swap.Status = models.SwapStatusComplete

	item := r.wardrobe.items[itemID]
	item.OwnerID = newOwnerID
	item.Status = models.ItemStatusAvailable
	item.SwapCount++

	history.ItemID = itemID
	return r.wardrobe.AppendHistory(history)
}

func (r *fakeSwapRepo) releaseItem(itemID string) {
	if item, ok := r.wardrobe.items[itemID]; ok {
		item.Status = models.ItemStatusAvailable
	}
}

func (r *fakeSwapRepo) CreateMessage(message *models.SwapMessage) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	r.messages[message.SwapID] = append(r.messages[message.SwapID], message)
	return nil
}

func (r *fakeSwapRepo) ListMessages(swapID string) ([]models.SwapMessage, error) {
	var out []models.SwapMessage
	for _, m := range r.messages[swapID] {
		out = append(out, *m)
	}
	return out, nil
}

// staleReadSwapRepo serves reads from a snapshot taken at construction while
// writes hit the live store, imitating a racing writer that got in between a
// handler's read and its update.
type staleReadSwapRepo struct {
	*fakeSwapRepo
	snapshots map[string]models.SwapRequest
}

func newStaleReadSwapRepo(inner *fakeSwapRepo) *staleReadSwapRepo {
	snapshots := map[string]models.SwapRequest{}
	for id, swap := range inner.swaps {
		snapshots[id] = *swap
	}
	return &staleReadSwapRepo{fakeSwapRepo: inner, snapshots: snapshots}
}

func (r *staleReadSwapRepo) FindByID(id string) (*models.SwapRequest, error) {
	if snapshot, ok := r.snapshots[id]; ok {
		copied := snapshot
		return &copied, nil
	}
	return nil, repositories.ErrSwapNotFound
}

type fakeCreatorRepo struct {
	profiles   map[string]*models.CreatorProfile
	promotions map[string]*models.Promotion
}

func newFakeCreatorRepo(profiles ...*models.CreatorProfile) *fakeCreatorRepo {
	r := &fakeCreatorRepo{
		profiles:   map[string]*models.CreatorProfile{},
		promotions: map[string]*models.Promotion{},
	}
	for _, p := range profiles {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		r.profiles[p.ID] = p
	}
	return r
}

func (r *fakeCreatorRepo) FindByID(id string) (*models.CreatorProfile, error) {
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrCreatorNotFound
}

func (r *fakeCreatorRepo) FindByUserID(userID string) (*models.CreatorProfile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, repositories.ErrCreatorNotFound
}

func (r *fakeCreatorRepo) Create(profile *models.CreatorProfile) error {
	if _, err := r.FindByUserID(profile.UserID); err == nil {
		return repositories.ErrCreatorAlreadyExists
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeCreatorRepo) Update(profile *models.CreatorProfile) error {
	if _, ok := r.profiles[profile.ID]; !ok {
		return repositories.ErrCreatorNotFound
	}
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeCreatorRepo) UpdateStripeStatus(profileID, stripeAccountID string, onboardingComplete, payoutsEnabled bool) error {
	p, ok := r.profiles[profileID]
	if !ok {
		return repositories.ErrCreatorNotFound
	}
	p.StripeAccountID = stripeAccountID
	p.OnboardingComplete = onboardingComplete
	p.PayoutsEnabled = payoutsEnabled
	return nil
}

func (r *fakeCreatorRepo) CreatePromotion(promotion *models.Promotion) error {
	if promotion.ID == "" {
		promotion.ID = uuid.NewString()
	}
	r.promotions[promotion.ID] = promotion
	return nil
}

func (r *fakeCreatorRepo) FindPromotion(id string) (*models.Promotion, error) {
	if p, ok := r.promotions[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrPromotionNotFound
}

func (r *fakeCreatorRepo) FindPromotionByCode(creatorID, code string) (*models.Promotion, error) {
	for _, p := range r.promotions {
		if p.CreatorID == creatorID && p.Code == code {
			return p, nil
		}
	}
	return nil, repositories.ErrPromotionNotFound
}

func (r *fakeCreatorRepo) ListPromotions(creatorID string) ([]models.Promotion, error) {
	var out []models.Promotion
	for _, p := range r.promotions {
		if p.CreatorID == creatorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeCreatorRepo) CountActivePromotions(creatorID string) (int64, error) {
	var count int64
	for _, p := range r.promotions {
		if p.CreatorID == creatorID && p.IsActive {
			count++
		}
	}
	return count, nil
}

func (r *fakeCreatorRepo) UpdatePromotion(promotion *models.Promotion) error {
	if _, ok := r.promotions[promotion.ID]; !ok {
		return repositories.ErrPromotionNotFound
	}
	r.promotions[promotion.ID] = promotion
	return nil
}

func (r *fakeCreatorRepo) DeletePromotion(id string) error {
	if _, ok := r.promotions[id]; !ok {
		return repositories.ErrPromotionNotFound
	}
	delete(r.promotions, id)
	return nil
}

func (r *fakeCreatorRepo) IncrementPromotionUsage(id string) error {
	p, ok := r.promotions[id]
	if !ok {
		return repositories.ErrPromotionNotFound
	}
	if p.UsageCap > 0 && p.UsedCount >= p.UsageCap {
		return repositories.ErrPromotionCapReached
	}
	p.UsedCount++
	return nil
}

func (r *fakeCreatorRepo) DecrementPromotionUsage(id string) error {
	p, ok := r.promotions[id]
	if !ok || p.UsedCount == 0 {
		return repositories.ErrPromotionNotFound
	}
	p.UsedCount--
	return nil
}

// fakePaymentProvider records calls and returns canned handles.
type fakePaymentProvider struct {
	intents []fakeIntent
	fail    bool
}

type fakeIntent struct {
	AmountCents         int64
	Currency            string
	Destination         string
	ApplicationFeeCents int64
	IdempotencyKey      string
}

func (p *fakePaymentProvider) CreateConnectedAccount(email string) (string, error) {
	if p.fail {
		return "", fmt.Errorf("provider unavailable")
	}
	return "acct_test_" + email, nil
}

func (p *fakePaymentProvider) CreateOnboardingLink(accountID string) (string, error) {
	if p.fail {
		return "", fmt.Errorf("provider unavailable")
	}
	return "https://connect.example/" + accountID, nil
}

func (p *fakePaymentProvider) CreatePaymentIntent(amountCents int64, currency, destination string, applicationFeeCents int64, idempotencyKey string) (string, string, error) {
	if p.fail {
		return "", "", fmt.Errorf("provider unavailable")
	}
	p.intents = append(p.intents, fakeIntent{
		AmountCents:         amountCents,
		Currency:            currency,
		Destination:         destination,
		ApplicationFeeCents: applicationFeeCents,
		IdempotencyKey:      idempotencyKey,
	})
	return "pi_test_123", "secret_test_123", nil
}

func (p *fakePaymentProvider) AccountStatus(accountID string) (bool, bool, error) {
	return true, true, nil
}

func (p *fakePaymentProvider) ListPayouts(accountID string, limit int) ([]payments.PayoutInfo, error) {
	return nil, nil
}

func (p *fakePaymentProvider) CreatePayout(accountID string, amountCents int64, currency, idempotencyKey string) (string, error) {
	return "po_test_123", nil
}

type fakeCollectionRepo struct {
	collections map[string]*models.Collection
	members     map[string][]*models.CollectionItem
}

func newFakeCollectionRepo(collections ...*models.Collection) *fakeCollectionRepo {
	r := &fakeCollectionRepo{
		collections: map[string]*models.Collection{},
		members:     map[string][]*models.CollectionItem{},
	}
	for _, c := range collections {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		r.collections[c.ID] = c
	}
	return r
}

func (r *fakeCollectionRepo) FindByID(id string) (*models.Collection, error) {
	c, ok := r.collections[id]
	if !ok {
		return nil, repositories.ErrCollectionNotFound
	}
	copied := *c
	copied.Items = nil
	for _, m := range r.members[id] {
		copied.Items = append(copied.Items, *m)
	}
	sort.Slice(copied.Items, func(i, j int) bool {
		return copied.Items[i].Position < copied.Items[j].Position
	})
	return &copied, nil
}

func (r *fakeCollectionRepo) ListByUser(userID string) ([]models.Collection, error) {
	var out []models.Collection
	for _, c := range r.collections {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCollectionRepo) CountByUser(userID string) (int64, error) {
	var count int64
	for _, c := range r.collections {
		if c.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCollectionRepo) Create(collection *models.Collection) error {
	if collection.ID == "" {
		collection.ID = uuid.NewString()
	}
	r.collections[collection.ID] = collection
	return nil
}

func (r *fakeCollectionRepo) Update(collection *models.Collection) error {
	stored, ok := r.collections[collection.ID]
	if !ok {
		return repositories.ErrCollectionNotFound
	}
	stored.Name = collection.Name
	stored.Description = collection.Description
	stored.IsPublic = collection.IsPublic
	return nil
}

func (r *fakeCollectionRepo) Delete(id string) error {
	if _, ok := r.collections[id]; !ok {
		return repositories.ErrCollectionNotFound
	}
	delete(r.collections, id)
	delete(r.members, id)
	return nil
}

func (r *fakeCollectionRepo) AddItem(collectionID, itemID string) error {
	for _, m := range r.members[collectionID] {
		if m.ItemID == itemID {
			return repositories.ErrCollectionItemDup
		}
	}
	r.members[collectionID] = append(r.members[collectionID], &models.CollectionItem{
		CollectionID: collectionID,
		ItemID:       itemID,
		Position:     len(r.members[collectionID]),
	})
	return nil
}

func (r *fakeCollectionRepo) RemoveItem(collectionID, itemID string) error {
	members := r.members[collectionID]
	for i, m := range members {
		if m.ItemID == itemID {
			r.members[collectionID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return repositories.ErrCollectionItemGone
}

func (r *fakeCollectionRepo) Reorder(collectionID string, itemIDs []string) error {
	for position, itemID := range itemIDs {
		found := false
		for _, m := range r.members[collectionID] {
			if m.ItemID == itemID {
				m.Position = position
				found = true
				break
			}
		}
		if !found {
			return repositories.ErrCollectionItemGone
		}
	}
	return nil
}

type fakeShipmentRepo struct {
	shipments map[string]*models.Shipment
}

func newFakeShipmentRepo() *fakeShipmentRepo {
	return &fakeShipmentRepo{shipments: map[string]*models.Shipment{}}
}

func (r *fakeShipmentRepo) Create(shipment *models.Shipment) error {
	if shipment.ID == "" {
		shipment.ID = uuid.NewString()
	}
	r.shipments[shipment.ID] = shipment
	return nil
}

func (r *fakeShipmentRepo) FindByID(id string) (*models.Shipment, error) {
	if s, ok := r.shipments[id]; ok {
		return s, nil
	}
	return nil, repositories.ErrShipmentNotFound
}

func (r *fakeShipmentRepo) FindByTracking(trackingNumber string) (*models.Shipment, error) {
	for _, s := range r.shipments {
		if s.TrackingNumber == trackingNumber {
			return s, nil
		}
	}
	return nil, repositories.ErrShipmentNotFound
}

func (r *fakeShipmentRepo) ListBySwap(swapID string) ([]models.Shipment, error) {
	var out []models.Shipment
	for _, s := range r.shipments {
		if s.SwapID == swapID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeShipmentRepo) UpdateStatus(id string, status models.ShipmentStatus) error {
	s, ok := r.shipments[id]
	if !ok {
		return repositories.ErrShipmentNotFound
	}
	s.Status = status
	return nil
}

// fakeAnalyzer returns canned analysis results.
type fakeAnalyzer struct {
	calls int
	fail  bool
}

func (a *fakeAnalyzer) AnalyzeImage(ctx context.Context, apiKey string, imageData []byte, mimeType string) (*ai.AnalysisResult, error) {
	a.calls++
	if a.fail {
		return nil, fmt.Errorf("model unavailable")
	}
	return &ai.AnalysisResult{
		Classification: &ai.Classification{Category: "tops", Colors: []string{"blue"}},
	}, nil
}

func (a *fakeAnalyzer) Describe(ctx context.Context, apiKey, prompt string) (string, error) {
	a.calls++
	if a.fail {
		return "", fmt.Errorf("model unavailable")
	}
	return "A lovely pre-loved piece.", nil
}
