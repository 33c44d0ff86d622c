/*
Package accountsdk provides a client SDK for the FlowMerce accounts service.

# Overview

The package is organised around two types:

  - Client: public operations such as registration, activation, login and the
    password reset flow
  - Session: operations that need a bearer token, returned by Client.Login

A typical flow:

	client := accountsdk.NewClient("https://accounts.example.com")

	_, err := client.Register(ctx, accountsdk.RegisterRequest{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
		FullName: "Alice Example",
	})

	session, err := client.Login(ctx, "alice@example.com", "Passw0rd!")
	profile, err := session.Profile(ctx)

	merchant, err := session.CreateMerchant(ctx, "Alice's Shop")

	_, err = session.Logout(ctx)

# Errors

Every non-2xx response is returned as *APIError carrying the service's error
envelope. Use errors.As to inspect it:

	var apiErr *accountsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
		// email already registered
	}

Request types expose Validate, which applies the same field rules as the
service so callers can reject bad input before a round trip.
*/
package accountsdk
