package main

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewStoreRepository(t *testing.T) {
	// Arrange
	var db *pgxpool.Pool // Mock pool

	// Act
	repo := NewStoreRepository(db)

	// Assert
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgresStoreRepository{}, repo)
}

func TestMockTxSatisfiesTxInterface(t *testing.T) {
	var tx Tx = new(MockTx)
	assert.NotNil(t, tx)
}
