package services

import (
	"errors"
	"testing"

	"hotelhub-backend/models"
)

func TestCreateRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	admin := createTestUser(t, db, models.RoleAdmin)
	user := createTestUser(t, db, models.RoleUser)

	room := models.Room{RoomNumber: "301", Type: "Suite", Capacity: 4, PricePerNight: 250}

	if err := svc.Create(asPrincipal(user), &room); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-admin create: err = %v, want ErrForbidden", err)
	}

	if err := svc.Create(asPrincipal(admin), &room); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if room.ID == 0 {
		t.Fatal("room id not assigned")
	}
	if room.Status != models.RoomStatusReady {
		t.Errorf("status = %q, want default Ready", room.Status)
	}
	if !room.IsAvailable {
		t.Error("new room should be available")
	}
}

func TestCreateRoomDuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	admin := createTestUser(t, db, models.RoleAdmin)
	createTestRoom(t, db, "101", 100)

	dup := models.Room{RoomNumber: "101", Type: "Double", Capacity: 2, PricePerNight: 100}
	if err := svc.Create(asPrincipal(admin), &dup); !errors.Is(err, ErrDuplicateRoomNumber) {
		t.Fatalf("err = %v, want ErrDuplicateRoomNumber", err)
	}
}

func TestCreateRoomValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	admin := createTestUser(t, db, models.RoleAdmin)
	p := asPrincipal(admin)

	cases := []struct {
		name string
		room models.Room
	}{
		{"missing number", models.Room{Type: "Double", Capacity: 2, PricePerNight: 100}},
		{"bad type", models.Room{RoomNumber: "102", Type: "Penthouse", Capacity: 2, PricePerNight: 100}},
		{"zero capacity", models.Room{RoomNumber: "103", Type: "Double", Capacity: 0, PricePerNight: 100}},
		{"negative price", models.Room{RoomNumber: "104", Type: "Double", Capacity: 2, PricePerNight: -1}},
		{"bad status", models.Room{RoomNumber: "105", Type: "Double", Capacity: 2, PricePerNight: 100, Status: "Closed"}},
	}
	for _, tc := range cases {
		err := svc.Create(p, &tc.room)
		var svcErr *Error
		if !errors.As(err, &svcErr) || svcErr.Kind != KindValidation {
			t.Errorf("%s: err = %v, want validation error", tc.name, err)
		}
	}
}

func TestListRoomsOnlyAvailable(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	createTestRoom(t, db, "101", 100)
	busy := createTestRoom(t, db, "102", 100)

	if err := db.Model(&models.Room{}).Where("id = ?", busy.ID).
		Update("is_available", false).Error; err != nil {
		t.Fatalf("flag room: %v", err)
	}

	all, err := svc.List(false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all rooms = %d, want 2", len(all))
	}

	available, err := svc.List(true)
	if err != nil {
		t.Fatalf("List available: %v", err)
	}
	if len(available) != 1 || available[0].RoomNumber != "101" {
		t.Fatalf("available rooms = %d", len(available))
	}
}

func TestUpdateRoomPatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	admin := createTestUser(t, db, models.RoleAdmin)
	room := createTestRoom(t, db, "101", 100)
	p := asPrincipal(admin)

	updated, err := svc.Update(p, room.ID, map[string]interface{}{
		"price_per_night": 175.0,
		"description":     "Renovated",
		"id":              9999, // must be stripped
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != room.ID {
		t.Error("protected id field leaked into the patch")
	}
	if updated.PricePerNight != 175 {
		t.Errorf("price = %v, want 175", updated.PricePerNight)
	}
	if updated.Description != "Renovated" {
		t.Errorf("description = %q", updated.Description)
	}

	if _, err := svc.Update(p, room.ID, map[string]interface{}{"type": "Penthouse"}); err == nil {
		t.Fatal("expected validation error for bad type")
	}
	if _, err := svc.Update(p, room.ID, map[string]interface{}{"id": 5}); err == nil {
		t.Fatal("patch of only protected fields should be rejected")
	}

	other := createTestRoom(t, db, "102", 100)
	if _, err := svc.Update(p, other.ID, map[string]interface{}{"room_number": "101"}); !errors.Is(err, ErrDuplicateRoomNumber) {
		t.Fatalf("err = %v, want ErrDuplicateRoomNumber", err)
	}
}

func TestSetRoomStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	admin := createTestUser(t, db, models.RoleAdmin)
	room := createTestRoom(t, db, "101", 100)
	p := asPrincipal(admin)

	updated, err := svc.SetStatus(p, room.ID, models.RoomStatusCleaning)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != models.RoomStatusCleaning {
		t.Errorf("status = %q, want Cleaning", updated.Status)
	}

	if _, err := svc.SetStatus(p, room.ID, "Closed"); err == nil {
		t.Fatal("expected validation error for unknown status")
	}
}

func TestDeleteRoomWithActiveBookings(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomService(db)
	bookings := NewBookingService(db)
	admin := createTestUser(t, db, models.RoleAdmin)
	user := createTestUser(t, db, models.RoleUser)
	room := createTestRoom(t, db, "101", 100)

	booking, err := bookings.CreateBooking(asPrincipal(user), CreateBookingInput{
		RoomID: room.ID, CheckIn: day(2024, 6, 1), CheckOut: day(2024, 6, 3), Guests: 2,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if err := rooms.Delete(asPrincipal(admin), room.ID); !errors.Is(err, ErrRoomHasBookings) {
		t.Fatalf("delete with active booking: err = %v, want ErrRoomHasBookings", err)
	}

	if _, err := bookings.CancelBooking(asPrincipal(user), booking.ID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}

	if err := rooms.Delete(asPrincipal(admin), room.ID); err != nil {
		t.Fatalf("delete after cancel: %v", err)
	}
	if _, err := rooms.GetByID(room.ID); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("get deleted: err = %v, want ErrRoomNotFound", err)
	}
}

func TestAddImages(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	admin := createTestUser(t, db, models.RoleAdmin)
	room := createTestRoom(t, db, "101", 100)
	p := asPrincipal(admin)

	updated, err := svc.AddImages(p, room.ID, []string{"/uploads/rooms/a.jpg"})
	if err != nil {
		t.Fatalf("AddImages: %v", err)
	}
	updated, err = svc.AddImages(p, updated.ID, []string{"/uploads/rooms/b.jpg"})
	if err != nil {
		t.Fatalf("AddImages: %v", err)
	}
	if got := string(updated.Images); got != `["/uploads/rooms/a.jpg","/uploads/rooms/b.jpg"]` {
		t.Errorf("images = %s", got)
	}
}
