package domain

import "time"

type UserRole string

const (
	RoleCustomer      UserRole = "customer"
	RoleHotelAdmin    UserRole = "hotel_admin"
	RolePlatformAdmin UserRole = "platform_admin"
)

type User struct {
	ID            string    `json:"id"`
	Role          UserRole  `json:"role"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	HotelIDs      []string  `json:"hotelIds"`
	PasswordHash  string    `json:"passwordHash"`
	WalletBalance int64     `json:"walletBalance"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CanAccessHotel is true for platform admins and for hotel admins assigned to hotelID.
func (u *User) CanAccessHotel(hotelID string) bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case RolePlatformAdmin:
		return true
	case RoleHotelAdmin:
		for _, id := range u.HotelIDs {
			if id == hotelID {
				return true
			}
		}
	}
	return false
}

// PublicUser is a User without credentials.
type PublicUser struct {
	ID            string   `json:"id"`
	Role          UserRole `json:"role"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	HotelIDs      []string `json:"hotelIds"`
	WalletBalance int64    `json:"walletBalance"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Role:          u.Role,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		HotelIDs:      append([]string(nil), u.HotelIDs...),
		WalletBalance: u.WalletBalance,
	}
}
