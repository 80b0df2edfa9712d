package testutil

import (
	"net/http"

	id "idverify/pkg/domain"
	"idverify/pkg/requestcontext"
)

// AsUser attaches an authenticated caller to req, as the auth middleware
// would after validating a bearer token.
func AsUser(req *http.Request, userID id.UserID, roles ...string) *http.Request {
	ctx := requestcontext.WithUserID(req.Context(), userID)
	if len(roles) > 0 {
		ctx = requestcontext.WithRoles(ctx, roles...)
	}
	return req.WithContext(ctx)
}
