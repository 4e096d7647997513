package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/emlakopoly/backend/internal/game/models"
)

// SettlementStore archives completed-session records.
type SettlementStore struct {
	collection *mongo.Collection
}

// NewSettlementStore creates the store on the configured collection.
func NewSettlementStore(client *mongo.Client, database, collection string) *SettlementStore {
	return &SettlementStore{
		collection: client.Database(database).Collection(collection),
	}
}

// SaveSettlement writes one completed-session record.
func (s *SettlementStore) SaveSettlement(ctx context.Context, record models.SessionRecord) error {
	_, err := s.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to insert settlement for session %s: %w", record.SessionID, err)
	}
	return nil
}

// GetSettlement fetches a session's archived record.
func (s *SettlementStore) GetSettlement(ctx context.Context, sessionID string) (*models.SessionRecord, error) {
	var record models.SessionRecord
	err := s.collection.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&record)
	if err != nil {
		return nil, fmt.Errorf("failed to find settlement for session %s: %w", sessionID, err)
	}
	return &record, nil
}
