package notes

import (
	"context"
	"errors"

	"github.com/kotche/notes/internal/model"
	"github.com/kotche/notes/internal/service/events"
	"github.com/kotche/notes/internal/validation"
)

func (d *DefaultService) RegisterUser(ctx context.Context, name, surname, email, password string) (ok bool, err error) {
	ctx, done := d.start(ctx, "RegisterUser")
	defer func() { done(err) }()

	v, err := validation.Validate(
		validation.Required(validation.UserName, name),
		validation.Required(validation.UserSurname, surname),
		validation.Required(validation.UserEmail, email),
		validation.Required(validation.UserPassword, password),
	)
	if err != nil {
		return false, err
	}
	name, surname, email, password = v[0], v[1], v[2], v[3]

	_, err = d.repo.FindUserByEmail(ctx, email)
	if err == nil {
		return false, errEmailExists(email)
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return false, err
	}

	hash, err := d.hasher.Hash(password)
	if err != nil {
		return false, err
	}

	userID, err := d.repo.CreateUser(ctx, model.User{
		Name:         name,
		Surname:      surname,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return false, errEmailExists(email)
		}
		return false, err
	}

	d.logger.Info("user registered", "user_id", userID)
	d.publish(ctx, events.Event{Type: events.UserRegistered, UserID: userID})

	return true, nil
}

func (d *DefaultService) AuthenticateUser(ctx context.Context, email, password string) (userID model.UserID, err error) {
	ctx, done := d.start(ctx, "AuthenticateUser")
	defer func() { done(err) }()

	v, err := validation.Validate(
		validation.Required(validation.UserEmail, email),
		validation.Required(validation.UserPassword, password),
	)
	if err != nil {
		return "", err
	}

	user, err := d.authenticate(ctx, v[0], v[1])
	if err != nil {
		return "", err
	}

	return user.ID, nil
}

func (d *DefaultService) RetrieveUser(ctx context.Context, userID model.UserID) (profile *model.Profile, err error) {
	ctx, done := d.start(ctx, "RetrieveUser")
	defer func() { done(err) }()

	v, err := validation.Validate(validation.Required(validation.UserID, userID))
	if err != nil {
		return nil, err
	}
	userID = model.UserID(v[0])

	user, err := d.owner(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := user.Profile()
	return &p, nil
}

// UpdateUser re-checks the current credentials and applies the new profile.
// newEmail and newPassword are optional: blank means unchanged.
func (d *DefaultService) UpdateUser(ctx context.Context, userID model.UserID, name, surname, email, password, newEmail, newPassword string) (ok bool, err error) {
	ctx, done := d.start(ctx, "UpdateUser")
	defer func() { done(err) }()

	v, err := validation.Validate(
		validation.Required(validation.UserID, userID),
		validation.Required(validation.UserName, name),
		validation.Required(validation.UserSurname, surname),
		validation.Required(validation.UserEmail, email),
		validation.Required(validation.UserPassword, password),
	)
	if err != nil {
		return false, err
	}
	userID, name, surname, email, password = model.UserID(v[0]), v[1], v[2], v[3], v[4]

	user, err := d.authenticateAs(ctx, userID, email, password)
	if err != nil {
		return false, err
	}

	user.Name = name
	user.Surname = surname
	user.Email = email

	if newEmail, ok := validation.Optional(newEmail); ok {
		if newEmail != user.Email {
			other, err := d.repo.FindUserByEmail(ctx, newEmail)
			switch {
			case err == nil && other.ID != user.ID:
				return false, errEmailExists(newEmail)
			case err != nil && !errors.Is(err, model.ErrUserNotFound):
				return false, err
			}
		}
		user.Email = newEmail
	}

	if newPassword, ok := validation.Optional(newPassword); ok {
		hash, err := d.hasher.Hash(newPassword)
		if err != nil {
			return false, err
		}
		user.PasswordHash = hash
	}

	if err = d.repo.SaveUser(ctx, *user); err != nil {
		switch {
		case errors.Is(err, model.ErrEmailTaken):
			return false, errEmailExists(user.Email)
		case errors.Is(err, model.ErrUserNotFound):
			return false, errNoUser(userID)
		}
		return false, err
	}

	d.logger.Info("user updated", "user_id", userID)
	d.publish(ctx, events.Event{Type: events.UserUpdated, UserID: userID})

	return true, nil
}

func (d *DefaultService) UnregisterUser(ctx context.Context, userID model.UserID, email, password string) (ok bool, err error) {
	ctx, done := d.start(ctx, "UnregisterUser")
	defer func() { done(err) }()

	v, err := validation.Validate(
		validation.Required(validation.UserID, userID),
		validation.Required(validation.UserEmail, email),
		validation.Required(validation.UserPassword, password),
	)
	if err != nil {
		return false, err
	}
	userID = model.UserID(v[0])

	if _, err = d.authenticateAs(ctx, userID, v[1], v[2]); err != nil {
		return false, err
	}

	if err = d.repo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return false, errNoUser(userID)
		}
		return false, err
	}

	d.logger.Info("user unregistered", "user_id", userID)
	d.publish(ctx, events.Event{Type: events.UserUnregistered, UserID: userID})

	return true, nil
}

// authenticate finds the account matching both email and password. Any
// mismatch yields the same generic error.
func (d *DefaultService) authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := d.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, errWrongCredentials()
		}
		return nil, err
	}

	match, err := d.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, errWrongCredentials()
	}

	return user, nil
}

// authenticateAs authenticates and requires the account to be userID.
func (d *DefaultService) authenticateAs(ctx context.Context, userID model.UserID, email, password string) (*model.User, error) {
	user, err := d.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user.ID != userID {
		return nil, errNoUserForCredentials(userID)
	}
	return user, nil
}

func (d *DefaultService) owner(ctx context.Context, userID model.UserID) (*model.User, error) {
	user, err := d.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, errNoUser(userID)
		}
		return nil, err
	}
	return user, nil
}
