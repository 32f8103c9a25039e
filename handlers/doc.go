/*
Package handlers contains HTTP request handlers for the Commission API.

# Handler Types

Each handler is a struct with its dependencies injected via a
constructor:

  - FeedHandler: aggregated news feed (cached)
  - ReactionsHandler: emoji reaction toggles on news articles
  - TakesHandler: hot takes board, agree/disagree votes, admin deletion
  - RankingsHandler: per-user power rankings and group consensus
  - GameHandler: live scorecard from the schedule API
  - HistoryHandler: franchise history dashboard
  - FactsHandler: page-summary trivia lookups
  - IdentityHandler: device identity for local mode

# Identity

Write operations require the X-User-Id header naming a roster member;
middleware.RequireIdentity rejects everything else with 401 and error
code "identity_required". Take deletion additionally requires the
X-Admin-Key header.

# Toggle Semantics

Reactions toggle per (article, emoji, user). Votes are three-way per
(take, user): same side removes, other side switches. Every write
returns the authoritative post-write state so clients render from the
response instead of assuming success.

# Consensus

The group consensus over power rankings is computed in consensus.go:

	rows := ComputeConsensus(rankings)
	splits := Disagreements(rows)

Average rank is the mean 1-based position across submissions; teams
nobody ranked sort last. Disagreements are the five widest high/low
spreads of at least five spots.
*/
package handlers
