package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tradehub/marketplace-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID  uuid.UUID
	Role    enums.MemberRole
	BuyerID *uuid.UUID
	JTI     string
}

// AccessTokenClaims represents the typed JWT presented by clients. BuyerID is
// set for buyer accounts and used as the default pricing context.
type AccessTokenClaims struct {
	UserID  uuid.UUID        `json:"user_id"`
	Role    enums.MemberRole `json:"role"`
	BuyerID *uuid.UUID       `json:"buyer_id,omitempty"`
	jwt.RegisteredClaims
}

// IsBuyer reports whether the token belongs to a buyer with a buyer id.
func (c *AccessTokenClaims) IsBuyer() bool {
	return c != nil && c.Role == enums.MemberRoleBuyer && c.BuyerID != nil
}
