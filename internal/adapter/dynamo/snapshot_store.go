// Package dynamo keeps legacy leaderboard snapshots in a DynamoDB table.
//
// Table layout: partition key organization_id (N), sort key sort_key (S). Rows live under
// "<kind>@<generation>#<position, zero padded>"; the item "head#<kind>" names the
// generation readers see. Save writes a new generation, flips the head with a single
// PutItem and only then removes the previous generation, so a failed save never
// changes what readers get.
package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"

	"donorboard/internal/domain"
)

// maxBatchWrite is the BatchWriteItem request limit.
const maxBatchWrite = 25

const (
	maxUnprocessedRetries = 5
	defaultRetryDelay     = 50 * time.Millisecond
	maxRetryDelay         = 2 * time.Second
	headPrefix            = "head#"
)

// API is the subset of *dynamodb.Client the store uses.
type API interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

type snapshotItem struct {
	domain.LegacySnapshotRow
	SortKey string `dynamodbav:"sort_key"`
}

type headItem struct {
	OrganizationID int64     `dynamodbav:"organization_id"`
	SortKey        string    `dynamodbav:"sort_key"`
	Generation     string    `dynamodbav:"generation"`
	Rows           int       `dynamodbav:"rows"`
	SavedAt        time.Time `dynamodbav:"saved_at"`
}

// SnapshotStore implements domain.SnapshotStore on DynamoDB.
type SnapshotStore struct {
	client    API
	tableName string
	logger    zerolog.Logger

	// RetryDelay is the first pause before resending unprocessed items; it doubles on
	// every attempt.
	RetryDelay time.Duration
	Clock      func() time.Time
}

// NewSnapshotStore creates a store over tableName.
func NewSnapshotStore(client API, tableName string, logger zerolog.Logger) *SnapshotStore {
	return &SnapshotStore{
		client:     client,
		tableName:  tableName,
		logger:     logger,
		RetryDelay: defaultRetryDelay,
		Clock:      time.Now,
	}
}

// HasOrganization reports whether any snapshot was committed for the organization.
func (s *SnapshotStore) HasOrganization(ctx context.Context, organizationID int64) (bool, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("organization_id = :org AND begins_with(sort_key, :prefix)"),
		ExpressionAttributeValues: map[string]dynamodbtypes.AttributeValue{
			":org":    orgValue(organizationID),
			":prefix": &dynamodbtypes.AttributeValueMemberS{Value: headPrefix},
		},
		ProjectionExpression: aws.String("sort_key"),
		Limit:                aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("%w: query legacy organization: %w", domain.ErrDataSourceUnavailable, err)
	}
	return len(out.Items) > 0, nil
}

// Snapshot returns the committed generation of one snapshot ordered by position. A
// snapshot that was never committed is empty.
func (s *SnapshotStore) Snapshot(ctx context.Context, organizationID int64, kind domain.SnapshotKind) ([]domain.LegacySnapshotRow, error) {
	head, ok, err := s.head(ctx, organizationID, kind)
	if err != nil || !ok {
		return nil, err
	}
	items, err := s.query(ctx, organizationID, generationPrefix(kind, head.Generation), "")
	if err != nil {
		return nil, err
	}
	rows := make([]domain.LegacySnapshotRow, 0, len(items))
	for _, item := range items {
		var decoded snapshotItem
		if err := attributevalue.UnmarshalMap(item, &decoded); err != nil {
			return nil, fmt.Errorf("%w: decode legacy snapshot: %w", domain.ErrDataSourceUnavailable, err)
		}
		rows = append(rows, decoded.LegacySnapshotRow)
	}
	return rows, nil
}

// Save replaces a snapshot. Rows are written under a new generation, the head is
// switched to it, then the previous generation is removed. Failing to remove the old
// generation is logged and does not fail the save.
func (s *SnapshotStore) Save(ctx context.Context, organizationID int64, kind domain.SnapshotKind, rows []domain.LegacySnapshotRow) error {
	previous, hadPrevious, err := s.head(ctx, organizationID, kind)
	if err != nil {
		return err
	}

	savedAt := s.Clock().UTC()
	generation := fmt.Sprintf("%020d", savedAt.UnixNano())
	if hadPrevious && generation <= previous.Generation {
		generation = previous.Generation + "1"
	}

	puts := make([]dynamodbtypes.WriteRequest, 0, len(rows))
	for _, row := range rows {
		row.OrganizationID = organizationID
		row.Kind = kind
		item, err := attributevalue.MarshalMap(snapshotItem{LegacySnapshotRow: row, SortKey: rowKey(kind, generation, row.Position)})
		if err != nil {
			return fmt.Errorf("marshal legacy snapshot row: %w", err)
		}
		puts = append(puts, dynamodbtypes.WriteRequest{PutRequest: &dynamodbtypes.PutRequest{Item: item}})
	}
	if err := s.batchWrite(ctx, puts); err != nil {
		return err
	}

	head, err := attributevalue.MarshalMap(headItem{
		OrganizationID: organizationID,
		SortKey:        headKey(kind),
		Generation:     generation,
		Rows:           len(rows),
		SavedAt:        savedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal legacy snapshot head: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(s.tableName), Item: head}); err != nil {
		return fmt.Errorf("%w: commit legacy snapshot: %w", domain.ErrDataSourceUnavailable, err)
	}

	deleted := 0
	if hadPrevious {
		deleted, err = s.deleteGeneration(ctx, organizationID, kind, previous.Generation)
		if err != nil {
			s.logger.Warn().Err(err).
				Int64("organization_id", organizationID).
				Str("kind", string(kind)).
				Str("generation", previous.Generation).
				Msg("failed to remove previous legacy snapshot generation")
		}
	}

	s.logger.Info().
		Int64("organization_id", organizationID).
		Str("kind", string(kind)).
		Str("generation", generation).
		Int("deleted", deleted).
		Int("written", len(rows)).
		Msg("legacy snapshot saved to dynamodb")
	return nil
}

func (s *SnapshotStore) head(ctx context.Context, organizationID int64, kind domain.SnapshotKind) (headItem, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]dynamodbtypes.AttributeValue{
			"organization_id": orgValue(organizationID),
			"sort_key":        &dynamodbtypes.AttributeValueMemberS{Value: headKey(kind)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return headItem{}, false, fmt.Errorf("%w: read legacy snapshot head: %w", domain.ErrDataSourceUnavailable, err)
	}
	if len(out.Item) == 0 {
		return headItem{}, false, nil
	}
	var head headItem
	if err := attributevalue.UnmarshalMap(out.Item, &head); err != nil {
		return headItem{}, false, fmt.Errorf("%w: decode legacy snapshot head: %w", domain.ErrDataSourceUnavailable, err)
	}
	return head, head.Generation != "", nil
}

func (s *SnapshotStore) deleteGeneration(ctx context.Context, organizationID int64, kind domain.SnapshotKind, generation string) (int, error) {
	keys, err := s.query(ctx, organizationID, generationPrefix(kind, generation), "organization_id, sort_key")
	if err != nil {
		return 0, err
	}
	requests := make([]dynamodbtypes.WriteRequest, 0, len(keys))
	for _, key := range keys {
		requests = append(requests, dynamodbtypes.WriteRequest{
			DeleteRequest: &dynamodbtypes.DeleteRequest{Key: map[string]dynamodbtypes.AttributeValue{
				"organization_id": key["organization_id"],
				"sort_key":        key["sort_key"],
			}},
		})
	}
	return len(requests), s.batchWrite(ctx, requests)
}

func (s *SnapshotStore) query(ctx context.Context, organizationID int64, prefix, projection string) ([]map[string]dynamodbtypes.AttributeValue, error) {
	var (
		items            []map[string]dynamodbtypes.AttributeValue
		lastEvaluatedKey map[string]dynamodbtypes.AttributeValue
	)
	for {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			KeyConditionExpression: aws.String("organization_id = :org AND begins_with(sort_key, :prefix)"),
			ExpressionAttributeValues: map[string]dynamodbtypes.AttributeValue{
				":org":    orgValue(organizationID),
				":prefix": &dynamodbtypes.AttributeValueMemberS{Value: prefix},
			},
			ExclusiveStartKey: lastEvaluatedKey,
		}
		if projection != "" {
			input.ProjectionExpression = aws.String(projection)
		}
		out, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("%w: query legacy snapshot: %w", domain.ErrDataSourceUnavailable, err)
		}
		items = append(items, out.Items...)
		lastEvaluatedKey = out.LastEvaluatedKey
		if len(lastEvaluatedKey) == 0 {
			return items, nil
		}
	}
}

func (s *SnapshotStore) batchWrite(ctx context.Context, requests []dynamodbtypes.WriteRequest) error {
	for start := 0; start < len(requests); start += maxBatchWrite {
		end := min(start+maxBatchWrite, len(requests))
		pending := map[string][]dynamodbtypes.WriteRequest{s.tableName: requests[start:end]}
		for attempt := 0; len(pending[s.tableName]) > 0; attempt++ {
			if attempt > maxUnprocessedRetries {
				return fmt.Errorf("%w: batch write: %d items left unprocessed", domain.ErrDataSourceUnavailable, len(pending[s.tableName]))
			}
			if attempt > 0 {
				if err := s.backoff(ctx, attempt); err != nil {
					return fmt.Errorf("%w: batch write: %w", domain.ErrDataSourceUnavailable, err)
				}
			}
			out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return fmt.Errorf("%w: batch write: %w", domain.ErrDataSourceUnavailable, err)
			}
			pending = out.UnprocessedItems
		}
	}
	return nil
}

// backoff waits RetryDelay * 2^(attempt-1), capped at maxRetryDelay, or until ctx ends.
func (s *SnapshotStore) backoff(ctx context.Context, attempt int) error {
	delay := s.RetryDelay << (attempt - 1)
	if delay > maxRetryDelay || delay < 0 {
		delay = maxRetryDelay
	}
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func orgValue(organizationID int64) dynamodbtypes.AttributeValue {
	return &dynamodbtypes.AttributeValueMemberN{Value: strconv.FormatInt(organizationID, 10)}
}

func headKey(kind domain.SnapshotKind) string {
	return headPrefix + string(kind)
}

func generationPrefix(kind domain.SnapshotKind, generation string) string {
	return string(kind) + "@" + generation + "#"
}

func rowKey(kind domain.SnapshotKind, generation string, position int) string {
	return fmt.Sprintf("%s%06d", generationPrefix(kind, generation), position)
}

var _ domain.SnapshotStore = (*SnapshotStore)(nil)
