package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend selection constants. The backend is chosen once at startup
// and never reassigned at runtime.
const (
	BackendPostgres = "postgres"
	BackendDynamo   = "dynamo"
	BackendSQLite   = "sqlite"
	BackendLocal    = "local"
)

// DefaultFeedURLs is the out-of-the-box list of aggregated sources.
var DefaultFeedURLs = []string{
	"https://www.seahawks.com/news/rss.xml",
	"https://www.espn.com/espn/rss/nfl/news",
	"https://www.reddit.com/r/Seahawks/.rss",
	"https://www.reddit.com/r/nfl/.rss",
	"https://profootballtalk.nbcsports.com/feed/",
	"https://www.cbssports.com/rss/headlines/nfl/",
	"https://www.nfl.com/rss/rsslanding?searchString=home",
}

const (
	defaultScheduleURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/teams/sea/schedule"
	defaultFactBase    = "https://en.wikipedia.org/api/rest_v1/page/summary/"
	defaultLocalDB     = "commission.db"
)

type Config struct {
	Port    int
	Backend string

	// Postgres backend
	DatabaseURL string

	// DynamoDB backend
	DynamoTablePrefix string

	// Local fallback store (sqlite file)
	LocalDBPath string

	// Shared secret for take deletion; empty disables moderation.
	AdminKey string

	// Upstream endpoints
	FeedURLs     []string
	FeedProxyURL string
	ScheduleURL  string
	FactBaseURL  string

	// Cache for upstream fetches
	CacheSizeMB  int
	FeedCacheTTL time.Duration
}

// ParseFlags validates flags and fills in environment fallbacks.
func ParseFlags(args []string) (Config, error) {
	// A .env file is optional; ignore a missing one.
	_ = godotenv.Load()

	var cfg Config
	var feedURLs string

	fs := flag.NewFlagSet("commission", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.Backend, "b", "", "Backend (postgres, dynamo or local)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Postgres URL")
	fs.StringVar(&cfg.DynamoTablePrefix, "dynamo-prefix", "", "DynamoDB table name prefix")
	fs.StringVar(&cfg.LocalDBPath, "local-db", "", "Path to local sqlite store")
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key for take deletion (prefer env)")
	fs.StringVar(&feedURLs, "feeds", "", "Comma-separated feed URLs")
	fs.StringVar(&cfg.FeedProxyURL, "feed-proxy", "", "RSS-to-JSON proxy base URL (empty: fetch RSS directly)")
	fs.StringVar(&cfg.ScheduleURL, "schedule-url", "", "Team schedule endpoint")
	fs.StringVar(&cfg.FactBaseURL, "fact-url", "", "Page-summary endpoint base")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8034 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DynamoTablePrefix == "" {
		cfg.DynamoTablePrefix = os.Getenv("DYNAMO_TABLE_PREFIX")
	}
	if cfg.LocalDBPath == "" {
		cfg.LocalDBPath = os.Getenv("LOCAL_DB_PATH")
	}
	if cfg.LocalDBPath == "" {
		cfg.LocalDBPath = defaultLocalDB
	}
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}

	if cfg.Backend == "" {
		cfg.Backend = os.Getenv("BACKEND")
	}
	if cfg.Backend == "" {
		// Pick the backend from whichever configuration is present.
		// Only one remote backend is ever active; no failover between them.
		switch {
		case cfg.DatabaseURL != "":
			cfg.Backend = BackendPostgres
		case cfg.DynamoTablePrefix != "":
			cfg.Backend = BackendDynamo
		default:
			cfg.Backend = BackendLocal
		}
	}
	switch cfg.Backend {
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("postgres backend requires -d or DATABASE_URL")
		}
	case BackendDynamo:
		if cfg.DynamoTablePrefix == "" {
			return Config{}, errors.New("dynamo backend requires -dynamo-prefix or DYNAMO_TABLE_PREFIX")
		}
	case BackendSQLite, BackendLocal:
	default:
		return Config{}, errors.New("unknown backend: " + cfg.Backend)
	}

	if feedURLs == "" {
		feedURLs = os.Getenv("FEED_URLS")
	}
	if feedURLs != "" {
		for _, u := range strings.Split(feedURLs, ",") {
			if u = strings.TrimSpace(u); u != "" {
				cfg.FeedURLs = append(cfg.FeedURLs, u)
			}
		}
	} else {
		cfg.FeedURLs = append(cfg.FeedURLs, DefaultFeedURLs...)
	}

	if cfg.FeedProxyURL == "" {
		cfg.FeedProxyURL = os.Getenv("FEED_PROXY_URL")
	}
	if cfg.ScheduleURL == "" {
		cfg.ScheduleURL = os.Getenv("SCHEDULE_URL")
	}
	if cfg.ScheduleURL == "" {
		cfg.ScheduleURL = defaultScheduleURL
	}
	if cfg.FactBaseURL == "" {
		cfg.FactBaseURL = os.Getenv("FACT_BASE_URL")
	}
	if cfg.FactBaseURL == "" {
		cfg.FactBaseURL = defaultFactBase
	}

	if cfg.CacheSizeMB == 0 {
		cfg.CacheSizeMB = 8
	}
	if cfg.FeedCacheTTL == 0 {
		cfg.FeedCacheTTL = 5 * time.Minute
	}

	return cfg, nil
}
