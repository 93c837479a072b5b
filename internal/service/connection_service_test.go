package service

import (
	"sort"
	"testing"
	"time"

	"flatmate/internal/apperr"
	"flatmate/internal/model"
	"flatmate/internal/repository"
	"flatmate/pkg/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRequestStore is an in-memory requestStore enforcing the same
// (sender, listing) uniqueness the real index does. hideFromPrecheck
// simulates a racing insert that the pre-check cannot see.
type fakeRequestStore struct {
	byID             map[uint]*model.ConnectionRequest
	nextID           uint
	hideFromPrecheck bool
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{byID: make(map[uint]*model.ConnectionRequest), nextID: 1}
}

func (s *fakeRequestStore) Create(req *model.ConnectionRequest) error {
	for _, existing := range s.byID {
		if existing.SenderID == req.SenderID && existing.ListingID == req.ListingID {
			return repository.ErrDuplicateKey
		}
	}
	req.ID = s.nextID
	s.nextID++
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	s.byID[req.ID] = req
	return nil
}

func (s *fakeRequestStore) GetByID(id uint) (*model.ConnectionRequest, error) {
	req, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return req, nil
}

func (s *fakeRequestStore) GetBySenderAndListing(senderID, listingID uint) (*model.ConnectionRequest, error) {
	if s.hideFromPrecheck {
		return nil, repository.ErrNotFound
	}
	for _, req := range s.byID {
		if req.SenderID == senderID && req.ListingID == listingID {
			return req, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeRequestStore) GetAcceptedForUser(listingID, userID uint) (*model.ConnectionRequest, error) {
	for _, req := range s.byID {
		if req.ListingID == listingID && req.Status == model.StatusAccepted &&
			(req.SenderID == userID || req.ReceiverID == userID) {
			return req, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeRequestStore) ListIncoming(receiverID uint) ([]*model.ConnectionRequest, error) {
	var requests []*model.ConnectionRequest
	for _, req := range s.byID {
		if req.ReceiverID == receiverID {
			requests = append(requests, req)
		}
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return requests, nil
}

func (s *fakeRequestStore) UpdateStatus(id uint, status string) (bool, error) {
	req, ok := s.byID[id]
	if !ok || req.Status != model.StatusPending {
		return false, nil
	}
	req.Status = status
	return true, nil
}

func (s *fakeRequestStore) CountPending(receiverID uint) (int64, error) {
	var count int64
	for _, req := range s.byID {
		if req.ReceiverID == receiverID && req.Status == model.StatusPending {
			count++
		}
	}
	return count, nil
}

type fakeListingStore struct {
	byID map[uint]*model.Listing
}

func (s *fakeListingStore) GetByID(id uint) (*model.Listing, error) {
	l, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return l, nil
}

type fakeNotifier struct {
	sent map[uint][]*redis.Notification
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(map[uint][]*redis.Notification)}
}

func (n *fakeNotifier) Notify(userID uint, notification *redis.Notification) {
	n.sent[userID] = append(n.sent[userID], notification)
}

// Fixture: user 1 sends requests, user 2 owns listing 10.
func newConnectionFixture() (*ConnectionService, *fakeRequestStore, *fakeNotifier) {
	requests := newFakeRequestStore()
	listings := &fakeListingStore{byID: map[uint]*model.Listing{
		10: {ID: 10, OwnerID: 2, Title: "2BHK near campus", IsAvailable: true},
	}}
	notifier := newFakeNotifier()
	return NewConnectionService(requests, listings, notifier), requests, notifier
}

func TestCreateRequest(t *testing.T) {
	svc, _, notifier := newConnectionFixture()

	req, err := svc.Create(1, 10)
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, req.Status)
	assert.Equal(t, uint(1), req.SenderID)
	assert.Equal(t, uint(2), req.ReceiverID, "receiver is the listing owner at creation time")
	assert.Equal(t, uint(10), req.ListingID)

	require.Len(t, notifier.sent[2], 1)
	assert.Equal(t, "request_created", notifier.sent[2][0].Type)
}

func TestCreateRequestUnauthenticated(t *testing.T) {
	svc, _, _ := newConnectionFixture()

	_, err := svc.Create(0, 10)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestCreateRequestListingMissing(t *testing.T) {
	svc, _, _ := newConnectionFixture()

	_, err := svc.Create(1, 999)
	assert.ErrorIs(t, err, apperr.ErrListingNotFound)
}

func TestCreateRequestSelfForbidden(t *testing.T) {
	svc, _, _ := newConnectionFixture()

	// user 2 owns listing 10
	_, err := svc.Create(2, 10)
	assert.ErrorIs(t, err, apperr.ErrSelfRequest)
}

func TestCreateRequestDuplicate(t *testing.T) {
	svc, requests, _ := newConnectionFixture()

	first, err := svc.Create(1, 10)
	require.NoError(t, err)

	// duplicate regardless of the first request's current status
	for _, status := range []string{model.StatusPending, model.StatusAccepted, model.StatusRejected} {
		requests.byID[first.ID].Status = status
		_, err := svc.Create(1, 10)
		assert.ErrorIs(t, err, apperr.ErrDuplicateRequest, "status %s", status)
	}
}

func TestCreateRequestDuplicateRace(t *testing.T) {
	svc, requests, _ := newConnectionFixture()

	_, err := svc.Create(1, 10)
	require.NoError(t, err)

	// the racing insert is invisible to the pre-check; the store's
	// uniqueness constraint must still surface the same error
	requests.hideFromPrecheck = true
	_, err = svc.Create(1, 10)
	assert.ErrorIs(t, err, apperr.ErrDuplicateRequest)
}

func TestRespondAcceptDisclosesContact(t *testing.T) {
	svc, requests, notifier := newConnectionFixture()

	req, err := svc.Create(1, 10)
	require.NoError(t, err)
	requests.byID[req.ID].Sender = &model.User{ID: 1, Phone: "+91 98765 43210", Email: "sender@iitd.ac.in"}

	decision, err := svc.Respond(2, req.ID, model.StatusAccepted)
	require.NoError(t, err)

	assert.Equal(t, model.StatusAccepted, decision.Request.Status)
	require.NotNil(t, decision.Contact)
	assert.Equal(t, "+91 98765 43210", decision.Contact.Phone)
	assert.Equal(t, "sender@iitd.ac.in", decision.Contact.Email)

	require.Len(t, notifier.sent[1], 1)
	assert.Equal(t, "request_decided", notifier.sent[1][0].Type)
	assert.Equal(t, model.StatusAccepted, notifier.sent[1][0].Status)
}

func TestRespondRejectWithholdsContact(t *testing.T) {
	svc, requests, _ := newConnectionFixture()

	req, err := svc.Create(1, 10)
	require.NoError(t, err)
	requests.byID[req.ID].Sender = &model.User{ID: 1, Phone: "+91 98765 43210", Email: "sender@iitd.ac.in"}

	decision, err := svc.Respond(2, req.ID, model.StatusRejected)
	require.NoError(t, err)

	assert.Equal(t, model.StatusRejected, decision.Request.Status)
	assert.Nil(t, decision.Contact)
}

func TestRespondOnlyReceiverMayDecide(t *testing.T) {
	svc, _, _ := newConnectionFixture()

	req, err := svc.Create(1, 10)
	require.NoError(t, err)

	// the sender cannot accept their own outgoing request
	_, err = svc.Respond(1, req.ID, model.StatusAccepted)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// nor can an unrelated user
	_, err = svc.Respond(3, req.ID, model.StatusAccepted)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestRespondMissingRequest(t *testing.T) {
	svc, _, _ := newConnectionFixture()

	_, err := svc.Respond(2, 999, model.StatusAccepted)
	assert.ErrorIs(t, err, apperr.ErrRequestNotFound)
}

func TestRespondInvalidDecision(t *testing.T) {
	svc, _, _ := newConnectionFixture()

	req, err := svc.Create(1, 10)
	require.NoError(t, err)

	_, err = svc.Respond(2, req.ID, "MAYBE")
	require.Error(t, err)
	assert.Equal(t, "INVALID_INPUT", apperr.From(err).Code)

	// PENDING is a starting state, not a decision
	_, err = svc.Respond(2, req.ID, model.StatusPending)
	require.Error(t, err)
	assert.Equal(t, "INVALID_INPUT", apperr.From(err).Code)
}

func TestRespondTerminalStateIsFinal(t *testing.T) {
	svc, _, _ := newConnectionFixture()

	req, err := svc.Create(1, 10)
	require.NoError(t, err)

	_, err = svc.Respond(2, req.ID, model.StatusAccepted)
	require.NoError(t, err)

	// no flipping after disclosure already happened
	_, err = svc.Respond(2, req.ID, model.StatusRejected)
	assert.ErrorIs(t, err, apperr.ErrRequestDecided)

	// re-accepting is equally refused
	_, err = svc.Respond(2, req.ID, model.StatusAccepted)
	assert.ErrorIs(t, err, apperr.ErrRequestDecided)
}

func TestContactGatedOnAcceptance(t *testing.T) {
	svc, requests, _ := newConnectionFixture()

	req, err := svc.Create(1, 10)
	require.NoError(t, err)
	requests.byID[req.ID].Sender = &model.User{ID: 1, Phone: "111", Email: "a@x.in"}
	requests.byID[req.ID].Receiver = &model.User{ID: 2, Phone: "222", Email: "b@x.in"}

	// no disclosure while pending
	_, err = svc.Contact(1, 10)
	assert.ErrorIs(t, err, apperr.ErrNoConnection)

	_, err = svc.Respond(2, req.ID, model.StatusAccepted)
	require.NoError(t, err)

	// each party sees the counterpart, never themselves
	senderView, err := svc.Contact(1, 10)
	require.NoError(t, err)
	assert.Equal(t, "222", senderView.Phone)
	assert.Equal(t, "b@x.in", senderView.Email)

	receiverView, err := svc.Contact(2, 10)
	require.NoError(t, err)
	assert.Equal(t, "111", receiverView.Phone)
	assert.Equal(t, "a@x.in", receiverView.Email)

	// an uninvolved user stays locked out
	_, err = svc.Contact(3, 10)
	assert.ErrorIs(t, err, apperr.ErrNoConnection)
}

func TestContactAfterRejectionStaysForbidden(t *testing.T) {
	svc, _, _ := newConnectionFixture()

	req, err := svc.Create(1, 10)
	require.NoError(t, err)

	_, err = svc.Respond(2, req.ID, model.StatusRejected)
	require.NoError(t, err)

	_, err = svc.Contact(1, 10)
	assert.ErrorIs(t, err, apperr.ErrNoConnection)
	_, err = svc.Contact(2, 10)
	assert.ErrorIs(t, err, apperr.ErrNoConnection)
}

func TestIncomingOnlyReceiversRequests(t *testing.T) {
	requests := newFakeRequestStore()
	listings := &fakeListingStore{byID: map[uint]*model.Listing{
		10: {ID: 10, OwnerID: 2},
		11: {ID: 11, OwnerID: 3},
	}}
	svc := NewConnectionService(requests, listings, nil)

	// two requests to user 2, one to user 3
	older, err := svc.Create(1, 10)
	require.NoError(t, err)
	requests.byID[older.ID].CreatedAt = time.Now().Add(-time.Hour)

	newer, err := svc.Create(4, 10)
	require.NoError(t, err)

	_, err = svc.Create(1, 11)
	require.NoError(t, err)

	incoming, err := svc.Incoming(2)
	require.NoError(t, err)
	require.Len(t, incoming, 2)

	// newest first, nothing addressed to anyone else
	assert.Equal(t, newer.ID, incoming[0].ID)
	assert.Equal(t, older.ID, incoming[1].ID)
	for _, r := range incoming {
		assert.Equal(t, uint(2), r.ReceiverID)
	}
}

func TestPendingCountFallsBackToStore(t *testing.T) {
	svc, _, _ := newConnectionFixture()

	// redis is not initialized in tests; the count comes from the store
	_, err := svc.Create(1, 10)
	require.NoError(t, err)

	count, err := svc.PendingCount(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
