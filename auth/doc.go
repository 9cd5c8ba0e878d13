// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(groupID, salt)
	err := auth.ValidateAdminKey(groupID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same group ID and salt always produce the same key. This allows validation
without storing the key in the database.

# Participant Tokens

Participant tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateParticipantToken()

Tokens are URL-safe base64 encoded. After the draw, a participant's token is
the only credential that reveals their recipient - nobody else, including the
organizer, can derive another participant's assignment through the API.

# Share Slugs

Share slugs create URL-friendly identifiers for groups:

	slug := auth.GenerateShareSlug(groupID, salt)

Slugs are base62 encoded (alphanumeric only) for easy sharing. Like admin keys,
they're deterministic from the group ID and salt.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
