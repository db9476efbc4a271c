// Package auth guards operational HTTP endpoints with bearer-token
// authentication.
//
// healthd leaves status reads public and protects the refresh endpoint, which
// forces every registered check to run, with a JWT:
//
//	authn := auth.NewJWTAuthenticator(auth.JWTConfig{
//	    Issuer:   "ops",
//	    Audience: "healthd",
//	}, auth.NewStaticKeyProvider([]byte(secret)))
//
//	r.With(auth.Middleware(authn)).Post("/health/refresh", health.RefreshHandler(agg))
package auth
