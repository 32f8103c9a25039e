/*
Package identity resolves the caller's roster identity and guards
moderation operations.

# Identity Resolution

There are no accounts. Each client picks a name from the fixed roster
and sends it on every identity-dependent request:

	X-User-Id: Amjad

FromRequest validates the header against models.Roster:

	user, err := identity.FromRequest(r)

An absent header yields ErrNoIdentity; an off-roster name yields
ErrUnknownUser. Handlers translate both into a 401 with error code
identity_required, which clients use to re-open the name picker. A
write with no identity never reaches the persistence layer.

# Admin Key

Take deletion is the only moderation operation. It requires the shared
secret configured at startup:

	X-Admin-Key: <secret>

ValidateAdminKey compares in constant time via hmac.Equal.

# ID Generation

Random hex IDs for new takes:

	id, err := identity.GenerateID(12)  // 24 hex characters
*/
package identity
