/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (godotenv); CLI
flags take precedence over environment variables.

# Backend Selection

The persistence backend is picked once at startup and never swapped:

  - postgres: requires DATABASE_URL (-d)
  - dynamo:   requires DYNAMO_TABLE_PREFIX (-dynamo-prefix)
  - sqlite:   single-node SQL backend with full semantics (-local-db)
  - local:    degraded per-device fallback, always available

When -b/BACKEND is unset, the backend is inferred from which
configuration is present, defaulting to local. Running local-only is
not an error; shared features degrade per the store contract.

# Other Settings

  - PORT (-p): listen port, default 8034
  - ADMIN_KEY (-admin-key): secret for take deletion; empty disables it
  - FEED_URLS (-feeds): comma-separated source list, defaults built in
  - FEED_PROXY_URL (-feed-proxy): RSS-to-JSON proxy base; empty means
    feeds are fetched and parsed as RSS directly
  - SCHEDULE_URL (-schedule-url): team schedule endpoint
  - FACT_BASE_URL (-fact-url): page-summary endpoint base
*/
package cliparse
