package domain

import (
	"context"
	"encoding/json"
)

// Collection names one of the per-user entity blobs in durable storage.
type Collection string

const (
	CollectionFinancialData Collection = "financialData"
	CollectionFunds         Collection = "funds"
	CollectionCreditCards   Collection = "creditCards"
	CollectionSavingsGoals  Collection = "savingsGoals"
	CollectionCreditGoals   Collection = "creditGoals"
	CollectionTransactions  Collection = "transactions"
)

// Collections lists every per-user blob in load order.
var Collections = []Collection{
	CollectionFinancialData,
	CollectionFunds,
	CollectionCreditCards,
	CollectionSavingsGoals,
	CollectionCreditGoals,
	CollectionTransactions,
}

// Key returns the storage key for a user's copy of this collection.
func (c Collection) Key(userID string) string {
	return string(c) + "_" + userID
}

// Gateway is the persistence port: per-user JSON blobs keyed by collection.
// Missing collections are reported as absent keys in the LoadAll result, not
// as errors.
type Gateway interface {
	LoadAll(ctx context.Context, userID string) (map[Collection]json.RawMessage, error)
	SaveCollection(ctx context.Context, userID string, collection Collection, data json.RawMessage) error
}
