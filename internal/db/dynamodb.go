package db

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/spacesedan/evalflow/internal/clients"
	"github.com/spacesedan/evalflow/internal/models"
	"github.com/spacesedan/evalflow/internal/utils"
)

const DEFAULT_EXPORT_TABLE = "EvaluationRecords"

type BatchWriter interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// Exporter writes recoded evaluation records to a DynamoDB table keyed by
// record_id.
type Exporter struct {
	Client     BatchWriter
	Table      string
	MaxRetries int
	Backoff    time.Duration
	Now        func() time.Time
}

func NewExporter(client BatchWriter, table string) *Exporter {
	if table == "" {
		table = DEFAULT_EXPORT_TABLE
	}
	return &Exporter{
		Client:     client,
		Table:      table,
		MaxRetries: clients.MAX_RETRIES,
		Backoff:    clients.INITIAL_BACKOFF,
		Now:        time.Now,
	}
}

type ExportSummary struct {
	ExportID    string
	Written     int
	Unprocessed int
}

type exportItem struct {
	RecordID        string            `dynamodbav:"record_id"`
	ExportID        string            `dynamodbav:"export_id"`
	Key             string            `dynamodbav:"clave,omitempty"`
	NameEmail       string            `dynamodbav:"name_email,omitempty"`
	Program         string            `dynamodbav:"program,omitempty"`
	Results         map[string]string `dynamodbav:"results"`
	Scores          map[string]int    `dynamodbav:"scores,omitempty"`
	Tags            map[string]string `dynamodbav:"tags"`
	FullObservation string            `dynamodbav:"full_observation,omitempty"`
	ExportedAt      int64             `dynamodbav:"exported_at"`
}

// RecordToItem builds the DynamoDB item for the record at index. The id is
// "<Clave>#<row>", or "row-<row>" without a Clave, so a sheet that repeats a
// Clave still yields distinct keys within one BatchWriteItem request.
func RecordToItem(rec models.RecodedRecord, index int, exportID string, at time.Time) (map[string]types.AttributeValue, error) {
	row := strconv.Itoa(index + 1)
	id := "row-" + row
	if rec.Source.Key != "" {
		id = rec.Source.Key + "#" + row
	}

	item := exportItem{
		RecordID:        id,
		ExportID:        exportID,
		Key:             rec.Source.Key,
		NameEmail:       rec.Source.NameEmail,
		Program:         rec.Source.Program,
		Results:         make(map[string]string, models.ResultFields),
		Tags:            make(map[string]string, models.ResultFields),
		FullObservation: rec.FullObservation,
		ExportedAt:      at.Unix(),
	}
	for i := 0; i < models.ResultFields; i++ {
		item.Results[models.ResultColumns[i]] = rec.Source.Results[i]
		item.Tags[models.ObservationColumns[i]] = string(rec.Observations[i].Tag)
		if s := rec.Scores[i]; s != nil {
			if item.Scores == nil {
				item.Scores = make(map[string]int, models.ResultFields)
			}
			item.Scores[models.ResultColumns[i]] = *s
		}
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] failed to marshal record %s: %w", id, err)
	}
	return av, nil
}

// ExportRecodedRecords writes records in batches of 25, retrying unprocessed
// items with a doubling backoff. Items still unprocessed after the last retry
// are counted in the summary, not returned as an error.
func (e *Exporter) ExportRecodedRecords(ctx context.Context, records []models.RecodedRecord) (ExportSummary, error) {
	summary := ExportSummary{ExportID: uuid.NewString()}
	at := e.Now()

	requests := make([]types.WriteRequest, 0, len(records))
	for i, rec := range records {
		item, err := RecordToItem(rec, i, summary.ExportID, at)
		if err != nil {
			return summary, err
		}
		requests = append(requests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}

	for _, batch := range utils.Chunk(requests, utils.DYNAMO_BATCH_SIZE) {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return summary, ctx.Err()
		default:
		}

		left, err := e.writeBatch(ctx, batch)
		if err != nil {
			return summary, err
		}
		summary.Written += len(batch) - left
		summary.Unprocessed += left
	}

	slog.Info("[DynamoDB] Export finished",
		slog.String("table", e.Table),
		slog.String("export_id", summary.ExportID),
		slog.Int("written", summary.Written),
		slog.Int("unprocessed", summary.Unprocessed))
	return summary, nil
}

// writeBatch returns how many requests of batch were left unprocessed.
func (e *Exporter) writeBatch(ctx context.Context, batch []types.WriteRequest) (int, error) {
	out, err := e.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{
			e.Table: batch,
		},
	})
	if err != nil {
		return 0, fmt.Errorf("[DynamoDB] Failed to batch write records: %w", err)
	}

	retryCount := 0
	backoff := e.Backoff
	for len(out.UnprocessedItems[e.Table]) > 0 && retryCount < e.MaxRetries {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2

		slog.Warn("[DynamoDB] Retrying unprocessed items...",
			slog.Int("retry_attempt", retryCount+1),
			slog.Int("remaining_items", len(out.UnprocessedItems[e.Table])))

		out, err = e.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: out.UnprocessedItems,
		})
		if err != nil {
			return 0, fmt.Errorf("[DynamoDB] Failed to retry batch write: %w", err)
		}
		retryCount++
	}

	left := len(out.UnprocessedItems[e.Table])
	if left > 0 {
		slog.Error("[DynamoDB] Some items were not written even after retries",
			slog.Int("remaining_items", left))
	}
	return left, nil
}
