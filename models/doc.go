/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - ToggleReactionRequest: emoji
  - AddTakeRequest: text
  - CastVoteRequest: side
  - SaveRankingRequest: teams (32-code permutation)
  - SelectIdentityRequest: name

# Response Types

Types for JSON responses:

  - ToggleReactionResponse: added, reactions
  - AddTakeResponse: take
  - CastVoteResponse: votes
  - RankingResponse: user_id, teams, updated_at
  - ConsensusResponse: users, teams, disagreements
  - IdentityResponse: name, roster
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Take: a hot take (≤280 chars, immutable, deletable)
  - VoteSet: agree/disagree user lists for one take
  - ReactionSet: emoji → user list for one news item
  - Article: ephemeral normalized feed item
  - Team / ConsensusRow / Disagreement: power-ranking types

# Constants

Vote sides:

	SideAgree    = "agree"
	SideDisagree = "disagree"

Caps:

	MaxTakeLength = 280
	MaxTakes      = 50
	MaxArticles   = 30

Roster and Emojis hold the fixed friend group and reaction set. Teams
holds the 32 NFL franchises in canonical order.
*/
package models
