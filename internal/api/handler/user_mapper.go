package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// --- Service result → HTTP response ---

func fromBusiness(u *domain.User) userDTO {
	return userDTO{
		ID:        copyID(u.ID),
		Name:      u.Name,
		CreatedAt: copyTime(u.CreatedAt),
	}
}

func fromBusinessList(users []*domain.User) []userDTO {
	out := make([]userDTO, len(users))
	for i, u := range users {
		out[i] = fromBusiness(u)
	}
	return out
}

// --- Request → Service input ---

func toBusiness(d userDTO) *domain.User {
	return &domain.User{
		ID:        copyID(d.ID),
		Name:      d.Name,
		CreatedAt: copyTime(d.CreatedAt),
	}
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func copyTime(ts *time.Time) *time.Time {
	if ts == nil {
		return nil
	}
	v := *ts
	return &v
}
