// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the service account credential for the spreadsheet backend.

Guests are not authenticated; this package only concerns the server's own
identity toward the spreadsheet API.

# Private Keys

Keys copied from a JSON credential file usually end up in env files with
escaped newlines. NormalizePrivateKey turns "\n" sequences back into real
newlines and strips surrounding quotes:

	key := auth.NormalizePrivateKey(os.Getenv("GOOGLE_PRIVATE_KEY"))

# Token Source

	sa := auth.ServiceAccount{Email: email, PrivateKey: key}
	ts, err := sa.TokenSource(ctx) // spreadsheets scope by default

Validate fails fast when the email is empty or the key is not PEM encoded.

# Diagnostics

Presence reports "Set" or "Missing" for a setting without echoing it.
*/
package auth
