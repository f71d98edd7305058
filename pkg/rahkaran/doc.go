// Package rahkaran is a Go client for the Rahkaran ERP web services.
//
// A Client holds the ERP base URL and an authenticated cookie session. It is
// created either from cookies obtained elsewhere or by running the login
// handshake through an Authenticator:
//
//	c, err := rahkaran.New(ctx, "https://erp.example.com/sg3g/x5200d5ed",
//	    rahkaran.Credentials{Cookies: map[string]string{"sg-auth-sg3g": token}},
//	)
//
//	c, err := rahkaran.New(ctx, baseURL,
//	    rahkaran.Credentials{Username: "api", Password: secret},
//	    rahkaran.WithAuthenticator(loginsvc.New(loginURL, 10*time.Second)),
//	)
//
// Every operation issues exactly one HTTP request. Responses are returned as
// generic JSON trees (Record, RecordSet) because the server schema is not
// enumerated here. Failures are reported as one of *ConfigError, *AuthError,
// *ServerError, *TransportError or *ParseError and can be told apart with
// errors.As:
//
//	spec, err := c.GetVoucherSpecification(ctx, 12)
//	var srvErr *rahkaran.ServerError
//	if errors.As(err, &srvErr) && srvErr.Status == http.StatusNotFound {
//	    // unknown voucher specification
//	}
//
// The client performs no retries. A Client is not safe for concurrent use;
// create one per goroutine or serialize access.
package rahkaran
