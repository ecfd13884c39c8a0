// nolint: revive,staticcheck
// swagger:meta
package httpt

import "goldenorders/internal/entity"

// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// swagger:model SuccessResponse
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// swagger:model CredentialsRequest
type CredentialsRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// swagger:model DescriptionRequest
type DescriptionRequest struct {
	Description string `json:"description" binding:"required"`
}

// swagger:model DescriptionResponse
type DescriptionResponse struct {
	Description string `json:"description"`
}

// swagger:model ProposalResponse
type ProposalResponse struct {
	Message string `json:"message"`
}

// swagger:model CheckRequest
type CheckRequest struct {
	Kind  string `json:"kind"  binding:"required"`
	Value string `json:"value"`
}

// swagger:model SessionResponse
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *entity.User `json:"user,omitempty"`
}

// swagger:model Order
type Order entity.Order

// swagger:model Item
type Item entity.Item

// swagger:model Contact
type Contact entity.Contact

// swagger:model Address
type Address entity.Address

// swagger:model User
type User entity.User
