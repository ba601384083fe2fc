package service

import (
	"net/mail"
	"regexp"

	"picturestream/database"
	"picturestream/database/model"
	"picturestream/logger"
	"picturestream/util/crypto"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

var alphanumeric = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

type UserService struct{}

// validateRegistration checks the registration policy and returns the first
// violated rule.
func validateRegistration(username, email, password string) error {
	if !alphanumeric.MatchString(username) {
		return ErrUsernameNotAlphanumeric
	}
	if len(username) < minUsernameLength {
		return ErrUsernameTooShort
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return ErrEmailInvalid
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// Register validates the policy, hashes the password and inserts the user.
// Uniqueness violations come back as ErrUsernameTaken / ErrEmailTaken when
// the driver names the colliding column, ErrDuplicateUser otherwise.
func (s *UserService) Register(username, email, password string) (*model.User, error) {
	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	hashedPassword, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}

	db := database.GetDB()
	if err := db.Create(user).Error; err != nil {
		if database.IsDuplicate(err) {
			switch database.DuplicateColumn(err) {
			case "username":
				return nil, ErrUsernameTaken
			case "email":
				return nil, ErrEmailTaken
			default:
				return nil, ErrDuplicateUser
			}
		}
		logger.Warning("register user err:", err)
		return nil, err
	}

	return user, nil
}

// CheckUser looks up the user by exact username and verifies the password.
func (s *UserService) CheckUser(username string, password string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("username = ?", username).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil, ErrUsernameNotFound
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil, err
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// CountUsers returns the number of registered users.
func (s *UserService) CountUsers() (int64, error) {
	var count int64
	err := database.GetDB().Model(model.User{}).Count(&count).Error
	return count, err
}
