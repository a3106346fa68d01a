package handler

import (
	"time"

	"github.com/google/uuid"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// userDTO is the wire representation of a user. On create requests id and
// createdAt must be absent; responses always carry both.
type userDTO struct {
	ID        *uuid.UUID `json:"id,omitempty"        swaggertype:"string" format:"uuid"`
	Name      string     `json:"name"                validate:"required,notblank,nonul,max=255"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}
