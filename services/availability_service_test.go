package services

import (
	"math/rand"
	"testing"
	"time"

	"hotelhub-backend/models"
)

func TestIsRoomAvailableEmptyRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	room := createTestRoom(t, db, "101", 100)

	ok, err := svc.IsRoomAvailable(room.ID, day(2024, 6, 1), day(2024, 6, 3), 0)
	if err != nil {
		t.Fatalf("IsRoomAvailable: %v", err)
	}
	if !ok {
		t.Fatal("expected room with no bookings to be available")
	}
}

func TestBackToBackBookingsDoNotConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	room := createTestRoom(t, db, "101", 100)
	user := createTestUser(t, db, models.RoleUser)

	bookings := NewBookingService(db)
	if _, err := bookings.CreateBooking(asPrincipal(user), CreateBookingInput{
		RoomID: room.ID, CheckIn: day(2024, 6, 1), CheckOut: day(2024, 6, 3), Guests: 2,
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// Existing checkout == new check-in: half-open intervals, no conflict.
	ok, err := svc.IsRoomAvailable(room.ID, day(2024, 6, 3), day(2024, 6, 5), 0)
	if err != nil {
		t.Fatalf("IsRoomAvailable: %v", err)
	}
	if !ok {
		t.Fatal("back-to-back stay must not conflict")
	}

	// And the mirror: new checkout == existing check-in.
	ok, err = svc.IsRoomAvailable(room.ID, day(2024, 5, 30), day(2024, 6, 1), 0)
	if err != nil {
		t.Fatalf("IsRoomAvailable: %v", err)
	}
	if !ok {
		t.Fatal("stay ending at existing check-in must not conflict")
	}
}

func TestOverlappingIntervalsConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	room := createTestRoom(t, db, "101", 100)
	user := createTestUser(t, db, models.RoleUser)

	bookings := NewBookingService(db)
	if _, err := bookings.CreateBooking(asPrincipal(user), CreateBookingInput{
		RoomID: room.ID, CheckIn: day(2024, 6, 10), CheckOut: day(2024, 6, 15), Guests: 2,
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	cases := []struct {
		name    string
		in, out time.Time
	}{
		{"starts inside", day(2024, 6, 12), day(2024, 6, 20)},
		{"ends inside", day(2024, 6, 8), day(2024, 6, 11)},
		{"contains existing", day(2024, 6, 9), day(2024, 6, 16)},
		{"contained by existing", day(2024, 6, 11), day(2024, 6, 14)},
		{"identical", day(2024, 6, 10), day(2024, 6, 15)},
	}
	for _, tc := range cases {
		ok, err := svc.IsRoomAvailable(room.ID, tc.in, tc.out, 0)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if ok {
			t.Errorf("%s: expected conflict", tc.name)
		}
	}

	// FindOverlapping names the booking causing the rejection.
	conflicts, err := svc.FindOverlapping(room.ID, day(2024, 6, 12), day(2024, 6, 20), 0)
	if err != nil {
		t.Fatalf("FindOverlapping: %v", err)
	}
	if len(conflicts) != 1 || conflicts[0].RoomID != room.ID {
		t.Fatalf("conflicts = %d, want the one existing booking", len(conflicts))
	}
}

func TestCancelledAndCompletedBookingsDoNotBlock(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	room := createTestRoom(t, db, "101", 100)
	user := createTestUser(t, db, models.RoleUser)

	for _, status := range []string{models.BookingStatusCancelled, models.BookingStatusCompleted} {
		b := models.Booking{
			ReferenceCode: "BK-TEST-" + status,
			RoomID:        room.ID,
			UserID:        user.ID,
			CheckInDate:   day(2024, 6, 10),
			CheckOutDate:  day(2024, 6, 15),
			Guests:        2,
			Status:        status,
		}
		if err := db.Create(&b).Error; err != nil {
			t.Fatalf("insert %s booking: %v", status, err)
		}
	}

	ok, err := svc.IsRoomAvailable(room.ID, day(2024, 6, 10), day(2024, 6, 15), 0)
	if err != nil {
		t.Fatalf("IsRoomAvailable: %v", err)
	}
	if !ok {
		t.Fatal("cancelled/completed bookings must not block the room")
	}
}

func TestExcludeBookingOnRecheck(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	room := createTestRoom(t, db, "101", 100)
	user := createTestUser(t, db, models.RoleUser)

	bookings := NewBookingService(db)
	booking, err := bookings.CreateBooking(asPrincipal(user), CreateBookingInput{
		RoomID: room.ID, CheckIn: day(2024, 6, 10), CheckOut: day(2024, 6, 15), Guests: 2,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// Re-checking a booking's own range during an update must not self-conflict.
	ok, err := svc.IsRoomAvailable(room.ID, day(2024, 6, 10), day(2024, 6, 15), booking.ID)
	if err != nil {
		t.Fatalf("IsRoomAvailable: %v", err)
	}
	if !ok {
		t.Fatal("expected own booking to be excluded from the check")
	}
}

// TestOverlapMatchesPredicate cross-checks the database answer against the
// overlap predicate (in < b.out && out > b.in) for random interval pairs.
func TestOverlapMatchesPredicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	room := createTestRoom(t, db, "101", 100)
	user := createTestUser(t, db, models.RoleUser)

	const existingIn, existingOut = 10, 20
	base := day(2024, 6, 1)
	offset := func(n int) time.Time { return base.AddDate(0, 0, n) }

	b := models.Booking{
		ReferenceCode: "BK-PROP",
		RoomID:        room.ID,
		UserID:        user.ID,
		CheckInDate:   offset(existingIn),
		CheckOutDate:  offset(existingOut),
		Guests:        2,
		Status:        models.BookingStatusConfirmed,
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("insert booking: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		in := rng.Intn(30)
		out := in + 1 + rng.Intn(30-in)

		wantAvailable := !(in < existingOut && out > existingIn)
		got, err := svc.IsRoomAvailable(room.ID, offset(in), offset(out), 0)
		if err != nil {
			t.Fatalf("IsRoomAvailable([%d,%d)): %v", in, out, err)
		}
		if got != wantAvailable {
			t.Fatalf("interval [%d,%d): got available=%v, want %v", in, out, got, wantAvailable)
		}
	}
}
