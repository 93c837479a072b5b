package service

import (
	"errors"
	"time"

	"flatmate/internal/apperr"
	"flatmate/internal/model"
	"flatmate/internal/repository"
	"flatmate/pkg/logger"
	"flatmate/pkg/redis"

	"go.uber.org/zap"
)

// Stores the engine needs from the persistence layer. Narrow interfaces so
// tests run against in-memory fakes.

type requestStore interface {
	Create(req *model.ConnectionRequest) error
	GetByID(id uint) (*model.ConnectionRequest, error)
	GetBySenderAndListing(senderID, listingID uint) (*model.ConnectionRequest, error)
	GetAcceptedForUser(listingID, userID uint) (*model.ConnectionRequest, error)
	ListIncoming(receiverID uint) ([]*model.ConnectionRequest, error)
	UpdateStatus(id uint, status string) (bool, error)
	CountPending(receiverID uint) (int64, error)
}

type listingGetter interface {
	GetByID(id uint) (*model.Listing, error)
}

// Notifier pushes request events to the receiver's live channel or queue.
type Notifier interface {
	Notify(userID uint, n *redis.Notification)
}

// Contact is the gated disclosure payload.
type Contact struct {
	Phone string
	Email string
}

// Decision is the result of the receiver responding to a request. Contact
// is only set when the decision was ACCEPTED.
type Decision struct {
	Request *model.ConnectionRequest
	Contact *Contact
}

// ConnectionService enforces the connection-request state machine:
// one request per (sender, listing), no self-requests, a single PENDING to
// ACCEPTED/REJECTED transition driven by the receiver, and contact
// disclosure gated strictly on an ACCEPTED connection.
type ConnectionService struct {
	requests requestStore
	listings listingGetter
	notify   Notifier
}

func NewConnectionService(requests requestStore, listings listingGetter, notify Notifier) *ConnectionService {
	return &ConnectionService{requests: requests, listings: listings, notify: notify}
}

// Create sends a connection request from actor to the listing's owner.
// The duplicate pre-check is an early exit only; the store's unique
// (sender, listing) index is the authoritative guard, and a racing insert
// surfaces as the same duplicate error.
func (s *ConnectionService) Create(actorID, listingID uint) (*model.ConnectionRequest, error) {
	if actorID == 0 {
		return nil, apperr.ErrUnauthorized
	}

	listing, err := s.listings.GetByID(listingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrListingNotFound
		}
		return nil, apperr.Internal(err)
	}

	if listing.OwnerID == actorID {
		return nil, apperr.ErrSelfRequest
	}

	// early exit; any prior status forecloses a second request
	if _, err := s.requests.GetBySenderAndListing(actorID, listingID); err == nil {
		return nil, apperr.ErrDuplicateRequest
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(err)
	}

	req := &model.ConnectionRequest{
		SenderID:   actorID,
		ReceiverID: listing.OwnerID, // frozen at creation time
		ListingID:  listingID,
		Status:     model.StatusPending,
	}
	if err := s.requests.Create(req); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.ErrDuplicateRequest
		}
		return nil, apperr.Internal(err)
	}

	if err := redis.IncrementPendingCount(listing.OwnerID); err != nil {
		logger.Warn("pending count increment failed", zap.Error(err), zap.Uint("user_id", listing.OwnerID))
	}
	if s.notify != nil {
		s.notify.Notify(listing.OwnerID, &redis.Notification{
			Type:      "request_created",
			RequestID: req.ID,
			ListingID: listingID,
			FromID:    actorID,
			CreatedAt: time.Now(),
		})
	}

	return req, nil
}

// Respond decides a pending request. Only the receiver may decide, the
// transition happens exactly once, and ACCEPTED is the only path that
// discloses the sender's contact fields.
func (s *ConnectionService) Respond(actorID, requestID uint, decision string) (*Decision, error) {
	if actorID == 0 {
		return nil, apperr.ErrUnauthorized
	}
	if decision != model.StatusAccepted && decision != model.StatusRejected {
		return nil, apperr.Invalid("status must be ACCEPTED or REJECTED")
	}

	req, err := s.requests.GetByID(requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrRequestNotFound
		}
		return nil, apperr.Internal(err)
	}

	if req.ReceiverID != actorID {
		return nil, apperr.ErrForbidden
	}
	if req.IsTerminal() {
		return nil, apperr.ErrRequestDecided
	}

	// conditional update; a concurrent responder loses here
	ok, err := s.requests.UpdateStatus(requestID, decision)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !ok {
		return nil, apperr.ErrRequestDecided
	}
	req.Status = decision

	if err := redis.DecrementPendingCount(actorID); err != nil {
		logger.Warn("pending count decrement failed", zap.Error(err), zap.Uint("user_id", actorID))
	}
	if s.notify != nil {
		s.notify.Notify(req.SenderID, &redis.Notification{
			Type:      "request_decided",
			RequestID: req.ID,
			ListingID: req.ListingID,
			FromID:    actorID,
			Status:    decision,
			CreatedAt: time.Now(),
		})
	}

	result := &Decision{Request: req}
	if decision == model.StatusAccepted && req.Sender != nil {
		result.Contact = &Contact{
			Phone: req.Sender.Phone,
			Email: req.Sender.Email,
		}
	}
	return result, nil
}

// Contact resolves the other party's contact details for a listing. It
// requires an ACCEPTED request on the listing with the actor on either
// side; the disclosed identity is always the counterpart.
func (s *ConnectionService) Contact(actorID, listingID uint) (*Contact, error) {
	if actorID == 0 {
		return nil, apperr.ErrUnauthorized
	}

	req, err := s.requests.GetAcceptedForUser(listingID, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrNoConnection
		}
		return nil, apperr.Internal(err)
	}

	other := req.Receiver
	if req.SenderID != actorID {
		other = req.Sender
	}
	if other == nil {
		return nil, apperr.Internal(errors.New("connection row missing party record"))
	}

	return &Contact{Phone: other.Phone, Email: other.Email}, nil
}

// Incoming lists all requests addressed to the actor, newest first, with
// sender and listing summaries attached. Contact fields never travel here.
func (s *ConnectionService) Incoming(actorID uint) ([]*model.ConnectionRequest, error) {
	if actorID == 0 {
		return nil, apperr.ErrUnauthorized
	}

	requests, err := s.requests.ListIncoming(actorID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return requests, nil
}

// PendingCount serves the inbox badge from the redis counter, recounting
// from the store on a miss.
func (s *ConnectionService) PendingCount(actorID uint) (int64, error) {
	if actorID == 0 {
		return 0, apperr.ErrUnauthorized
	}

	if count, err := redis.GetPendingCount(actorID); err == nil && count >= 0 {
		return count, nil
	}

	count, err := s.requests.CountPending(actorID)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	if err := redis.SetPendingCount(actorID, count); err != nil {
		logger.Warn("pending count cache set failed", zap.Error(err), zap.Uint("user_id", actorID))
	}
	return count, nil
}
