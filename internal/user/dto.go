// AngelaMos | 2026
// dto.go

package user

type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
	}
}
