package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/amjadhq/commission/models"
)

// Dynamo is the document-store backend. Tables (with a configurable
// name prefix):
//
//	reactions: PK target_id (S), SK react_key (S, "emoji#user")
//	takes:     PK id (S)
//	votes:     PK take_id (S), SK user_id (S)
//	rankings:  PK user_id (S)
//
// Toggle semantics use conditional writes keyed by the uniqueness
// invariant, so concurrent toggles from the same user converge instead
// of double-applying.
type Dynamo struct {
	client *dynamodb.Client
	prefix string
}

const dynamoBatchMax = 25

// OpenDynamo builds a client from the ambient AWS configuration.
func OpenDynamo(ctx context.Context, prefix string) (*Dynamo, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Dynamo{client: dynamodb.NewFromConfig(cfg), prefix: prefix}, nil
}

func (s *Dynamo) Ready() bool { return true }

func (s *Dynamo) Close() error { return nil }

func (s *Dynamo) table(name string) *string {
	return aws.String(s.prefix + name)
}

type dynamoReaction struct {
	TargetID  string `dynamodbav:"target_id"`
	ReactKey  string `dynamodbav:"react_key"`
	Emoji     string `dynamodbav:"emoji"`
	UserID    string `dynamodbav:"user_id"`
	CreatedAt int64  `dynamodbav:"created_at"`
}

type dynamoTake struct {
	ID        string `dynamodbav:"id"`
	Body      string `dynamodbav:"body"`
	AuthorID  string `dynamodbav:"author_id"`
	CreatedAt int64  `dynamodbav:"created_at"`
}

type dynamoVote struct {
	TakeID    string `dynamodbav:"take_id"`
	UserID    string `dynamodbav:"user_id"`
	Side      string `dynamodbav:"side"`
	CreatedAt int64  `dynamodbav:"created_at"`
}

type dynamoRanking struct {
	UserID    string   `dynamodbav:"user_id"`
	Teams     []string `dynamodbav:"teams"`
	UpdatedAt int64    `dynamodbav:"updated_at"`
}

func reactKey(emoji, userID string) string {
	return emoji + "#" + userID
}

func (s *Dynamo) GetReactions(ctx context.Context, targetID string) (models.ReactionSet, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              s.table("reactions"),
		KeyConditionExpression: aws.String("target_id = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberS{Value: targetID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query reactions: %w", err)
	}

	var rows []dynamoReaction
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reactions: %w", err)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedAt != rows[j].CreatedAt {
			return rows[i].CreatedAt < rows[j].CreatedAt
		}
		return rows[i].UserID < rows[j].UserID
	})

	set := models.ReactionSet{}
	for _, r := range rows {
		set[r.Emoji] = append(set[r.Emoji], r.UserID)
	}
	return set, nil
}

func (s *Dynamo) ToggleReaction(ctx context.Context, targetID, emoji, userID string) (bool, error) {
	key := map[string]types.AttributeValue{
		"target_id": &types.AttributeValueMemberS{Value: targetID},
		"react_key": &types.AttributeValueMemberS{Value: reactKey(emoji, userID)},
	}

	// Try to remove an existing reaction first; the condition tells us
	// whether one was there without a separate read.
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           s.table("reactions"),
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(react_key)"),
	})
	if err == nil {
		return false, nil
	}
	var condFailed *types.ConditionalCheckFailedException
	if !errors.As(err, &condFailed) {
		return false, fmt.Errorf("failed to remove reaction: %w", err)
	}

	item, err := attributevalue.MarshalMap(dynamoReaction{
		TargetID:  targetID,
		ReactKey:  reactKey(emoji, userID),
		Emoji:     emoji,
		UserID:    userID,
		CreatedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal reaction: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: s.table("reactions"),
		Item:      item,
	})
	if err != nil {
		return false, fmt.Errorf("failed to add reaction: %w", err)
	}
	return true, nil
}

func (s *Dynamo) GetTakes(ctx context.Context) ([]models.Take, error) {
	// The takes table stays tiny (capped list, friend-group scale), so
	// a scan plus in-memory sort is fine.
	out, err := s.client.Scan(ctx, &dynamodb.ScanInput{TableName: s.table("takes")})
	if err != nil {
		return nil, fmt.Errorf("failed to scan takes: %w", err)
	}

	var rows []dynamoTake
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal takes: %w", err)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedAt != rows[j].CreatedAt {
			return rows[i].CreatedAt > rows[j].CreatedAt
		}
		return rows[i].ID > rows[j].ID
	})
	if len(rows) > models.MaxTakes {
		rows = rows[:models.MaxTakes]
	}

	takes := make([]models.Take, 0, len(rows))
	for _, r := range rows {
		takes = append(takes, models.Take{
			ID:        r.ID,
			Text:      r.Body,
			AuthorID:  r.AuthorID,
			CreatedAt: time.UnixMilli(r.CreatedAt),
		})
	}
	return takes, nil
}

func (s *Dynamo) AddTake(ctx context.Context, text, authorID string) (models.Take, error) {
	now := time.Now()
	take := models.Take{ID: uuid.NewString(), Text: text, AuthorID: authorID, CreatedAt: now}

	item, err := attributevalue.MarshalMap(dynamoTake{
		ID:        take.ID,
		Body:      take.Text,
		AuthorID:  take.AuthorID,
		CreatedAt: now.UnixMilli(),
	})
	if err != nil {
		return models.Take{}, fmt.Errorf("failed to marshal take: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           s.table("takes"),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return models.Take{}, fmt.Errorf("failed to put take: %w", err)
	}
	return take, nil
}

func (s *Dynamo) DeleteTake(ctx context.Context, takeID string) error {
	// No cascade in a document store: drop the take row first so
	// CastVote's existence check starts rejecting new votes, then
	// sweep the votes that were already there.
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: s.table("takes"),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: takeID},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete take: %w", err)
	}

	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              s.table("votes"),
		KeyConditionExpression: aws.String("take_id = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberS{Value: takeID},
		},
		ProjectionExpression: aws.String("take_id, user_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to query votes for cascade: %w", err)
	}

	for start := 0; start < len(out.Items); start += dynamoBatchMax {
		end := start + dynamoBatchMax
		if end > len(out.Items) {
			end = len(out.Items)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, item := range out.Items[start:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: item},
			})
		}

		batch, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.prefix + "votes": requests,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to cascade-delete votes: %w", err)
		}
		// Retry unprocessed deletes with backoff before giving up.
		backoff := 500 * time.Millisecond
		for attempt := 0; len(batch.UnprocessedItems) > 0 && attempt < 3; attempt++ {
			time.Sleep(backoff)
			backoff *= 2
			batch, err = s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: batch.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("failed to retry vote cascade: %w", err)
			}
		}
		if len(batch.UnprocessedItems) > 0 {
			return fmt.Errorf("vote cascade left unprocessed deletes for take %s", takeID)
		}
	}

	return nil
}

func (s *Dynamo) GetVotes(ctx context.Context, takeID string) (models.VoteSet, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              s.table("votes"),
		KeyConditionExpression: aws.String("take_id = :t"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberS{Value: takeID},
		},
	})
	if err != nil {
		return models.VoteSet{}, fmt.Errorf("failed to query votes: %w", err)
	}

	var rows []dynamoVote
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &rows); err != nil {
		return models.VoteSet{}, fmt.Errorf("failed to unmarshal votes: %w", err)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedAt != rows[j].CreatedAt {
			return rows[i].CreatedAt < rows[j].CreatedAt
		}
		return rows[i].UserID < rows[j].UserID
	})

	votes := models.NewVoteSet()
	for _, v := range rows {
		switch v.Side {
		case models.SideAgree:
			votes.Agree = append(votes.Agree, v.UserID)
		case models.SideDisagree:
			votes.Disagree = append(votes.Disagree, v.UserID)
		}
	}
	return votes, nil
}

func (s *Dynamo) CastVote(ctx context.Context, takeID, side, userID string) error {
	key := map[string]types.AttributeValue{
		"take_id": &types.AttributeValueMemberS{Value: takeID},
		"user_id": &types.AttributeValueMemberS{Value: userID},
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      s.table("votes"),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to read existing vote: %w", err)
	}

	var prev string
	if len(out.Item) > 0 {
		var existing dynamoVote
		if err := attributevalue.UnmarshalMap(out.Item, &existing); err != nil {
			return fmt.Errorf("failed to unmarshal existing vote: %w", err)
		}
		prev = existing.Side
	}

	if prev == side {
		// Toggle off. Conditional on the side we read: a concurrent
		// switch makes the delete a no-op instead of clobbering the
		// newer vote. Removing a vote never needs the take to exist.
		_, err = s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName:           s.table("votes"),
			Key:                 key,
			ConditionExpression: aws.String("side = :s"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":s": &types.AttributeValueMemberS{Value: prev},
			},
		})
		if err != nil {
			var condFailed *types.ConditionalCheckFailedException
			if !errors.As(err, &condFailed) {
				return fmt.Errorf("failed to remove vote: %w", err)
			}
		}
		return nil
	}

	item, err := attributevalue.MarshalMap(dynamoVote{
		TakeID:    takeID,
		UserID:    userID,
		Side:      side,
		CreatedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal vote: %w", err)
	}

	// Insert and switch both land as a single put, conditioned on the
	// state we read so a concurrent toggle loses cleanly.
	put := &types.Put{
		TableName: s.table("votes"),
		Item:      item,
	}
	if prev == "" {
		put.ConditionExpression = aws.String("attribute_not_exists(take_id)")
	} else {
		put.ConditionExpression = aws.String("side = :s")
		put.ExpressionAttributeValues = map[string]types.AttributeValue{
			":s": &types.AttributeValueMemberS{Value: prev},
		}
	}

	// Without a foreign key, orphan prevention is a transactional
	// condition check: the take row must still exist when the vote
	// lands, otherwise a vote on a deleted (or never-created) take
	// would outlive every cascade.
	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{ConditionCheck: &types.ConditionCheck{
				TableName: s.table("takes"),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: takeID},
				},
				ConditionExpression: aws.String("attribute_exists(id)"),
			}},
			{Put: put},
		},
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			for i, reason := range canceled.CancellationReasons {
				if aws.ToString(reason.Code) != "ConditionalCheckFailed" {
					continue
				}
				if i == 0 {
					return ErrNotFound
				}
				// Lost a race with a concurrent toggle; the newer
				// vote stands.
				return nil
			}
		}
		return fmt.Errorf("failed to put vote: %w", err)
	}
	return nil
}

func (s *Dynamo) SaveRanking(ctx context.Context, userID string, order []string) error {
	item, err := attributevalue.MarshalMap(dynamoRanking{
		UserID:    userID,
		Teams:     order,
		UpdatedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal ranking: %w", err)
	}
	// Plain put: full overwrite is the contract.
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: s.table("rankings"),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to save ranking: %w", err)
	}
	return nil
}

func (s *Dynamo) GetRanking(ctx context.Context, userID string) ([]string, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: s.table("rankings"),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get ranking: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var row dynamoRanking
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ranking: %w", err)
	}
	return row.Teams, nil
}

func (s *Dynamo) GetAllRankings(ctx context.Context) (map[string][]string, error) {
	out, err := s.client.Scan(ctx, &dynamodb.ScanInput{TableName: s.table("rankings")})
	if err != nil {
		return nil, fmt.Errorf("failed to scan rankings: %w", err)
	}

	var rows []dynamoRanking
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rankings: %w", err)
	}

	all := make(map[string][]string, len(rows))
	for _, r := range rows {
		all[r.UserID] = r.Teams
	}
	return all, nil
}
