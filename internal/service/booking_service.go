// Package service holds the booking eligibility rules: who may reserve a
// hotel room, which room, and when a room is full.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/iliyamo/conference-booking/internal/model"
	"github.com/iliyamo/conference-booking/internal/queue"
	"github.com/iliyamo/conference-booking/internal/repository"
)

// BookingStore is the booking persistence the service needs.
// *repository.BookingRepo implements it.
type BookingStore interface {
	FindByUserID(ctx context.Context, userID uint64) (model.BookingWithRoom, error)
	FindByID(ctx context.Context, id uint64) (model.Booking, error)
	CreateInRoom(ctx context.Context, userID, roomID uint64, admit repository.AdmitFunc) (uint64, error)
	MoveToRoom(ctx context.Context, bookingID, roomID uint64, check repository.MoveFunc) error
}

// EnrollmentStore looks up enrollments.
type EnrollmentStore interface {
	FindWithAddressByUserID(ctx context.Context, userID uint64) (model.Enrollment, error)
}

// TicketStore looks up tickets.
type TicketStore interface {
	FindByEnrollmentID(ctx context.Context, enrollmentID uint64) (model.Ticket, error)
}

// EventPublisher receives booking events after a successful write.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error
}

// BookingView is what callers get back for a user's booking: its id and
// the room, without the internal foreign keys and timestamps.
type BookingView struct {
	ID   uint64
	Room model.Room
}

// BookingService decides whether a booking may be created or changed and
// executes it.
type BookingService struct {
	bookings    BookingStore
	enrollments EnrollmentStore
	tickets     TicketStore
	events      EventPublisher
	now         func() time.Time
}

// NewBookingService wires the service to its stores.  events may be nil,
// in which case no events are published.
func NewBookingService(bookings BookingStore, enrollments EnrollmentStore, tickets TicketStore, events EventPublisher) *BookingService {
	return &BookingService{
		bookings:    bookings,
		enrollments: enrollments,
		tickets:     tickets,
		events:      events,
		now:         time.Now,
	}
}

// GetOneByUserID returns the user's booking.  It fails with NotFoundError
// when the user has none.
func (s *BookingService) GetOneByUserID(ctx context.Context, userID uint64) (BookingView, error) {
	b, err := s.bookings.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrBookingNotFound) {
		return BookingView{}, NotFoundError()
	}
	if err != nil {
		return BookingView{}, err
	}
	return BookingView{ID: b.ID, Room: b.Room}, nil
}

// CreateBooking reserves roomID for userID and returns the new booking id.
// The user needs a paid, in-person ticket that includes the hotel
// (Forbidden), the room must exist (NotFoundError) and must have a free
// slot (OutOfCapacity).
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID uint64) (uint64, error) {
	if err := s.checkUserTicket(ctx, userID); err != nil {
		return 0, err
	}
	id, err := s.bookings.CreateInRoom(ctx, userID, roomID, checkCapacity)
	if err != nil {
		return 0, roomError(err)
	}
	s.publish(ctx, queue.EventBookingCreated, id, userID, roomID)
	return id, nil
}

// UpdateBooking moves the user's booking to roomID and returns the
// booking id.  A booking that does not exist and one owned by another
// user are both reported as Forbidden.  The ticket is not checked again.
// Moving a booking into the room it already occupies always succeeds.
func (s *BookingService) UpdateBooking(ctx context.Context, bookingID, userID, roomID uint64) (uint64, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if errors.Is(err, repository.ErrBookingNotFound) {
		return 0, ForbiddenError()
	}
	if err != nil {
		return 0, err
	}
	if b.UserID != userID {
		return 0, ForbiddenError()
	}

	err = s.bookings.MoveToRoom(ctx, bookingID, roomID, func(current model.Booking, occ model.RoomOccupancy) error {
		if current.UserID != userID {
			return ForbiddenError()
		}
		if current.RoomID == occ.Room.ID {
			return nil
		}
		return checkCapacity(occ)
	})
	if errors.Is(err, repository.ErrBookingNotFound) {
		return 0, ForbiddenError()
	}
	if err != nil {
		return 0, roomError(err)
	}
	s.publish(ctx, queue.EventBookingUpdated, bookingID, userID, roomID)
	return bookingID, nil
}

// checkUserTicket fails with Forbidden unless the user is enrolled and
// holds a ticket that allows a hotel booking.
func (s *BookingService) checkUserTicket(ctx context.Context, userID uint64) error {
	enrollment, err := s.enrollments.FindWithAddressByUserID(ctx, userID)
	if errors.Is(err, repository.ErrEnrollmentNotFound) {
		return ForbiddenError()
	}
	if err != nil {
		return err
	}
	ticket, err := s.tickets.FindByEnrollmentID(ctx, enrollment.ID)
	if errors.Is(err, repository.ErrTicketNotFound) {
		return ForbiddenError()
	}
	if err != nil {
		return err
	}
	if !ticket.AllowsHotelBooking() {
		return ForbiddenError()
	}
	return nil
}

func checkCapacity(occ model.RoomOccupancy) error {
	if occ.IsFull() {
		return OutOfCapacityError()
	}
	return nil
}

func roomError(err error) error {
	if errors.Is(err, repository.ErrRoomNotFound) {
		return NotFoundError()
	}
	return err
}

func (s *BookingService) publish(ctx context.Context, event string, bookingID, userID, roomID uint64) {
	if s.events == nil {
		return
	}
	ev := queue.BookingEvent{
		Event:      event,
		BookingID:  bookingID,
		UserID:     userID,
		RoomID:     roomID,
		OccurredAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.events.PublishBookingEvent(ctx, ev); err != nil {
		log.Printf("booking-service: publish %s for booking %d failed: %v", event, bookingID, err)
	}
}
