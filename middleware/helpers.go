package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// GetAdminIDFromContext returns the authenticated admin's ID from claims
// stored by RequireAdmin.
func GetAdminIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(adminClaimsKey).(jwt.MapClaims)
	if !ok {
		return 0, errors.New("admin claims not found in context")
	}

	idClaim, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, fmt.Errorf("missing %q claim in token", jwtClaimUserID)
	}

	// encoding/json decodes JWT numbers as float64.
	idFloat, ok := idClaim.(float64)
	if !ok {
		return 0, fmt.Errorf("invalid type for %q claim: %T", jwtClaimUserID, idClaim)
	}

	adminID := int(idFloat)
	if adminID <= 0 || idFloat != float64(adminID) {
		return 0, fmt.Errorf("invalid admin ID in %q claim: %v", jwtClaimUserID, idClaim)
	}
	return adminID, nil
}
