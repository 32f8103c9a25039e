package models

import "time"

// Vote side constants
const (
	SideAgree    = "agree"
	SideDisagree = "disagree"
)

// MaxTakeLength is the character limit for a single take.
const MaxTakeLength = 280

// MaxTakes caps how many takes are kept and returned, newest first.
const MaxTakes = 50

// MaxArticles caps the merged feed after sorting and deduplication.
const MaxArticles = 30

// Roster is the fixed friend group. Identity is a pick from this list,
// there are no accounts.
var Roster = []string{"Amjad", "Chris", "Mike", "Jay", "Rico"}

// Emojis are the reactions offered on each news card.
var Emojis = []string{"🔥", "💀", "🤡", "🏈"}

// IsRosterMember reports whether name is part of the fixed group.
func IsRosterMember(name string) bool {
	for _, m := range Roster {
		if m == name {
			return true
		}
	}
	return false
}

// IsKnownEmoji reports whether e is one of the offered reactions.
func IsKnownEmoji(e string) bool {
	for _, known := range Emojis {
		if known == e {
			return true
		}
	}
	return false
}

// IsVoteSide reports whether s is a valid vote side.
func IsVoteSide(s string) bool {
	return s == SideAgree || s == SideDisagree
}

// Request types

type ToggleReactionRequest struct {
	Emoji string `json:"emoji"`
}

type AddTakeRequest struct {
	Text string `json:"text"`
}

type CastVoteRequest struct {
	Side string `json:"side"`
}

type SaveRankingRequest struct {
	Teams []string `json:"teams"`
}

type SelectIdentityRequest struct {
	Name string `json:"name"`
}

// Response types

type ToggleReactionResponse struct {
	Added     bool        `json:"added"`
	Reactions ReactionSet `json:"reactions"`
}

type FeedResponse struct {
	Articles []Article `json:"articles"`
}

type AddTakeResponse struct {
	Take Take `json:"take"`
}

type CastVoteResponse struct {
	Votes VoteSet `json:"votes"`
}

type RankingResponse struct {
	UserID    string   `json:"user_id"`
	Teams     []string `json:"teams"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

type ConsensusResponse struct {
	Users         []string       `json:"users"`
	Teams         []ConsensusRow `json:"teams"`
	Disagreements []Disagreement `json:"disagreements"`
}

type IdentityResponse struct {
	Name   string   `json:"name,omitempty"`
	Roster []string `json:"roster"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ErrorCodeIdentityRequired is set in ErrorResponse.Error when a write
// arrives without a valid roster identity. Clients treat it as a signal
// to re-open the name picker rather than show a failure.
const ErrorCodeIdentityRequired = "identity_required"

// Domain types

// ReactionSet groups reactions on one target by emoji. The user lists
// preserve insertion order so counts and "who reacted" render stably.
type ReactionSet map[string][]string

// VoteSet is the tally for one take. Both slices are always non-nil.
type VoteSet struct {
	Agree    []string `json:"agree"`
	Disagree []string `json:"disagree"`
}

// NewVoteSet returns an empty tally with both sides allocated.
func NewVoteSet() VoteSet {
	return VoteSet{Agree: []string{}, Disagree: []string{}}
}

type Take struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TakeWithVotes is what the takes board renders: each take plus its tally.
type TakeWithVotes struct {
	Take
	Votes VoteSet `json:"votes"`
}

// Article is an ephemeral feed item. It is never persisted; its ID is a
// stable hash of the link (or title) so reactions can reference it
// across fetch cycles.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Snippet   string    `json:"snippet"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Source    string    `json:"source"`
	PubDate   time.Time `json:"pub_date"`
}

// ConsensusRow is one team's aggregate position across all submitted
// rankings. AvgRank is 99 for teams nobody has ranked; those sort last
// and are excluded from disagreement computation.
type ConsensusRow struct {
	Abbr     string         `json:"abbr"`
	Name     string         `json:"name"`
	Division string         `json:"division"`
	AvgRank  float64        `json:"avg_rank"`
	Ranks    map[string]int `json:"ranks"`
}

// Disagreement is a team the group is split on: ranked as high as High
// and as low as Low, Spread = Low - High.
type Disagreement struct {
	Abbr   string `json:"abbr"`
	Name   string `json:"name"`
	High   int    `json:"high"`
	Low    int    `json:"low"`
	Spread int    `json:"spread"`
}
