package services

import "hotelhub-backend/models"

// Principal is the acting identity of a request, extracted once from the
// access token by the auth middleware and passed into every service call.
type Principal struct {
	ID   uint
	Role string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// IsStaff reports whether the principal has back-office powers (staff or admin).
func (p Principal) IsStaff() bool {
	return p.Role == models.RoleAdmin || p.Role == models.RoleStaff
}

// CanManageRooms: room inventory mutation is admin only.
func (p Principal) CanManageRooms() bool {
	return p.IsAdmin()
}

// CanModerateBookings covers status updates and guest administration.
func (p Principal) CanModerateBookings() bool {
	return p.IsStaff()
}

// CanAccessBooking: the owner may read/cancel their own booking, staff and
// admins may touch any booking.
func (p Principal) CanAccessBooking(b *models.Booking) bool {
	return b.UserID == p.ID || p.IsStaff()
}
