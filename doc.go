/*
Package main provides the entry point for the Commission API server.

The Commission is the backend for a friend-group NFL fan site: an
aggregated news feed with emoji reactions, a hot-takes board with
agree/disagree voting, per-member power rankings with a group
consensus view, a live Seahawks scorecard, and a franchise history
dashboard.

# Starting the Server

The server runs in local-only mode with no configuration at all:

	go run .

Point it at a shared backend with environment variables or CLI flags:

	DATABASE_URL=postgres://... go run .
	go run . -b dynamo -dynamo-prefix commission_

# Configuration

Backend selection (pick one; default is local):

  - DATABASE_URL (-d): PostgreSQL connection string
  - DYNAMO_TABLE_PREFIX (-dynamo-prefix): DynamoDB table name prefix
  - LOCAL_DB_PATH (-local-db): sqlite file for sqlite/local modes

Optional settings:

  - PORT (-p): Server port (default: 8034)
  - ADMIN_KEY (-admin-key): Secret enabling take deletion
  - FEED_URLS (-feeds): Comma-separated RSS source list
  - FEED_PROXY_URL (-feed-proxy): RSS-to-JSON proxy base
  - SCHEDULE_URL (-schedule-url): Team schedule endpoint
  - FACT_BASE_URL (-fact-url): Page-summary endpoint base

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (feed, takes, rankings, game, history)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, identity, metrics, JSON helpers
  - models: Request/response types and the NFL team table
  - store: Persistence backends (postgres, dynamo, sqlite, local)
  - identity: Roster identity and admin key checks
  - feed, game, history, facts: Upstream clients and aggregation
  - cache, metrics: TTL cache and Prometheus collectors
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
