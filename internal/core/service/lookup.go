package service

import (
	"errors"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

// errUnchanged aborts a Modify cycle that has nothing to write.
var errUnchanged = errors.New("unchanged")

func indexByID(users []domain.User, id int) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func indexByEmail(users []domain.User, email string) int {
	for i, u := range users {
		if u.Email == email {
			return i
		}
	}
	return -1
}

func roleIndexByID(roles []domain.Role, id int) int {
	for i, r := range roles {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func roleIndexByName(roles []domain.Role, name string) int {
	for i, r := range roles {
		if r.Name == name {
			return i
		}
	}
	return -1
}

func maxUserID(users []domain.User) int {
	top := 0
	for _, u := range users {
		if u.ID > top {
			top = u.ID
		}
	}
	return top
}

func maxRoleID(roles []domain.Role) int {
	top := 0
	for _, r := range roles {
		if r.ID > top {
			top = r.ID
		}
	}
	return top
}
