package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// projectionDoc is the Mongo document shape a ProjectionRow maps to -
// read-optimized reporting data lives outside the relational schema
// entirely, denormalized per (tenant, aggregate type, period).
type projectionDoc struct {
	TenantID               string         `bson:"tenant_id"`
	AggregateType          string         `bson:"aggregate_type"`
	Period                 string         `bson:"period"`
	Data                   map[string]any `bson:"data"`
	DataFreshnessTimestamp int64          `bson:"data_freshness_timestamp"`
}

// MongoProjectionStore implements ProjectionStore against a single Mongo
// collection, keyed by (tenant_id, aggregate_type, period).
type MongoProjectionStore struct {
	collection *mongo.Collection
}

// NewMongoProjectionStore wraps the "report_projections" collection of
// db as a ProjectionStore.
func NewMongoProjectionStore(db *mongo.Database) *MongoProjectionStore {
	return &MongoProjectionStore{collection: db.Collection("report_projections")}
}

// Upsert replaces the projection row for row's key, or inserts it if
// this is the first refresh for that aggregate/period.
func (s *MongoProjectionStore) Upsert(ctx context.Context, row ProjectionRow) error {
	filter := bson.M{
		"tenant_id":      row.TenantID.String(),
		"aggregate_type": row.AggregateType,
		"period":         row.Period,
	}
	doc := projectionDoc{
		TenantID:               row.TenantID.String(),
		AggregateType:          row.AggregateType,
		Period:                 row.Period,
		Data:                   row.Data,
		DataFreshnessTimestamp: row.DataFreshnessTimestamp.Unix(),
	}
	_, err := s.collection.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("reporting: upsert projection: %w", err)
	}
	return nil
}

// Rows returns every projection row for tenantID and aggregateType,
// across all periods refreshed so far.
func (s *MongoProjectionStore) Rows(ctx context.Context, tenantID uuid.UUID, aggregateType string) ([]ProjectionRow, error) {
	filter := bson.M{"tenant_id": tenantID.String(), "aggregate_type": aggregateType}
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("reporting: find projections: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []projectionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("reporting: decode projections: %w", err)
	}

	rows := make([]ProjectionRow, 0, len(docs))
	for _, d := range docs {
		id, err := uuid.Parse(d.TenantID)
		if err != nil {
			return nil, fmt.Errorf("reporting: decode projection tenant id: %w", err)
		}
		rows = append(rows, ProjectionRow{
			TenantID:               id,
			AggregateType:          d.AggregateType,
			Period:                 d.Period,
			Data:                   d.Data,
			DataFreshnessTimestamp: time.Unix(d.DataFreshnessTimestamp, 0).UTC(),
		})
	}
	return rows, nil
}
