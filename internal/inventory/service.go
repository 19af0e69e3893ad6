package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"artesanos-be/internal/logger"

	"go.uber.org/zap"
)

// Service covers stock administration outside the order engine.
type Service interface {
	// ReceiveStock records an incoming delivery: stock is incremented and a
	// purchase movement is appended, atomically.
	ReceiveStock(ctx context.Context, productID int64, quantity int, reference, note string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) ReceiveStock(ctx context.Context, productID int64, quantity int, reference, note string) error {
	if quantity <= 0 {
		return fmt.Errorf("received quantity must be positive, got %d", quantity)
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ReceiveStock"),
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.Restock(ctx, tx, productID, quantity); err != nil {
		log.Error("failed to increment stock", zap.Error(err))
		return err
	}

	if err := s.repo.LogMovement(ctx, tx, productID, quantity, MovementPurchase, reference, note); err != nil {
		log.Error("failed to log purchase movement", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("stock received")
	return nil
}
