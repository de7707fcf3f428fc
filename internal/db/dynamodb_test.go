package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/evalflow/internal/models"
	"github.com/spacesedan/evalflow/internal/recoder"
)

func sampleRecords(t *testing.T, n int) []models.RecodedRecord {
	t.Helper()
	header := []string{"Clave", "Nombre y Email", "Prog", "Res1", "Res2", "Res3", "Observ1", "Observ2", "Observ3"}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, []string{"", "Ana", "ING", "BUENO", "No disponible", "ACEPTABLE", "Bien (p)", "", "Mal (n)"})
	}
	rows[0][0] = "A-1"
	records, err := recoder.RecodeBatch(header, rows)
	require.NoError(t, err)
	return records
}

func TestRecordToItem(t *testing.T) {
	records := sampleRecords(t, 2)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	item, err := RecordToItem(records[0], 0, "exp-1", at)
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "A-1#1"}, item["record_id"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "A-1"}, item["clave"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "exp-1"}, item["export_id"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1714564800"}, item["exported_at"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "Bien Mal"}, item["full_observation"])

	scores, ok := item["scores"].(*types.AttributeValueMemberM)
	require.True(t, ok)
	assert.Len(t, scores.Value, 2, "unavailable results have no score")
	assert.Equal(t, &types.AttributeValueMemberN{Value: "3"}, scores.Value["Res1"])

	tags, ok := item["tags"].(*types.AttributeValueMemberM)
	require.True(t, ok)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "neutral"}, tags.Value["Observ2"])

	item, err = RecordToItem(records[1], 1, "exp-1", at)
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "row-2"}, item["record_id"])
	assert.NotContains(t, item, "clave")
}

type fakeWriter struct {
	calls       []int
	ids         []string
	unprocessed int
	err         error
}

func (f *fakeWriter) BatchWriteItem(_ context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	var reqs []types.WriteRequest
	var table string
	for name, r := range in.RequestItems {
		table, reqs = name, r
	}
	f.calls = append(f.calls, len(reqs))
	for _, r := range reqs {
		if id, ok := r.PutRequest.Item["record_id"].(*types.AttributeValueMemberS); ok {
			f.ids = append(f.ids, id.Value)
		}
	}

	out := &dynamodb.BatchWriteItemOutput{}
	if f.unprocessed > 0 && len(reqs) > 0 {
		n := f.unprocessed
		if n > len(reqs) {
			n = len(reqs)
		}
		f.unprocessed -= n
		out.UnprocessedItems = map[string][]types.WriteRequest{table: reqs[:n]}
	}
	return out, nil
}

func newTestExporter(w BatchWriter) *Exporter {
	e := NewExporter(w, "")
	e.Backoff = time.Millisecond
	return e
}

func TestExportBatchesOf25(t *testing.T) {
	w := &fakeWriter{}
	summary, err := newTestExporter(w).ExportRecodedRecords(context.Background(), sampleRecords(t, 60))
	require.NoError(t, err)

	assert.Equal(t, []int{25, 25, 10}, w.calls)
	assert.Equal(t, 60, summary.Written)
	assert.Zero(t, summary.Unprocessed)
	assert.NotEmpty(t, summary.ExportID)
}

func TestExportRepeatedClaveKeepsDistinctIDs(t *testing.T) {
	records := sampleRecords(t, 30)
	for i := range records {
		records[i].Source.Key = "A-1"
	}
	w := &fakeWriter{}
	_, err := newTestExporter(w).ExportRecodedRecords(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, []int{25, 5}, w.calls)
	require.Len(t, w.ids, 30)
	seen := make(map[string]bool)
	for _, id := range w.ids {
		assert.False(t, seen[id], "duplicate record_id %s", id)
		seen[id] = true
	}
	assert.True(t, seen["A-1#30"])
}

func TestExportRetriesUnprocessed(t *testing.T) {
	w := &fakeWriter{unprocessed: 4}
	summary, err := newTestExporter(w).ExportRecodedRecords(context.Background(), sampleRecords(t, 5))
	require.NoError(t, err)

	assert.Equal(t, []int{5, 4}, w.calls)
	assert.Equal(t, 5, summary.Written)
}

func TestExportGivesUpAfterMaxRetries(t *testing.T) {
	w := &fakeWriter{unprocessed: 100}
	summary, err := newTestExporter(w).ExportRecodedRecords(context.Background(), sampleRecords(t, 3))
	require.NoError(t, err)

	// first write plus three retries
	assert.Len(t, w.calls, 4)
	assert.Zero(t, summary.Written)
	assert.Equal(t, 3, summary.Unprocessed)
}

func TestExportWriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("throttled")}
	_, err := newTestExporter(w).ExportRecodedRecords(context.Background(), sampleRecords(t, 1))
	assert.ErrorContains(t, err, "throttled")
}

func TestExportCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestExporter(&fakeWriter{}).ExportRecodedRecords(ctx, sampleRecords(t, 1))
	assert.ErrorIs(t, err, context.Canceled)
}
