package userservice

// userResponse ответ UserService на /internal/users/{id}
type userResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	IsStaff  bool    `json:"is_staff"`
}

// errorResponse тело ошибки от UserService
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Contact контакты аккаунта для гостевых полей бронирования
// Пустое поле означает, что в аккаунте значения нет
type Contact struct {
	UserID int64
	Name   string
	Email  string
	Phone  string
}

// toContact имя берется из полного имени, иначе из username
func (u *userResponse) toContact() *Contact {
	contact := &Contact{
		UserID: u.ID,
		Name:   u.FullName,
		Email:  u.Email,
	}
	if contact.Name == "" {
		contact.Name = u.Username
	}
	if u.Phone != nil {
		contact.Phone = *u.Phone
	}
	return contact
}
