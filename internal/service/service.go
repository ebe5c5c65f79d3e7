package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/transactions-service/internal/models"
	"github.com/Dan9191/transactions-service/internal/repository"
)

// Store is the persistence contract the service depends on
type Store interface {
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	AddTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error)
	Ping(ctx context.Context) error
}

// Service handles transaction use cases
type Service struct {
	repo Store
	log  *logrus.Logger
}

// NewService initializes a new service
func NewService(repo Store, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListTransactions returns all stored transactions
func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	transactions, err := s.repo.ListTransactions(ctx)
	if err != nil {
		s.log.WithError(err).Error("Failed to list transactions")
		return nil, err
	}

	s.log.WithField("count", len(transactions)).Debug("Listed transactions")
	return transactions, nil
}

// AddTransaction persists a new transaction and returns the stored record
func (s *Service) AddTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	entry := s.log.WithField("transaction_id", t.ID)

	stored, err := s.repo.AddTransaction(ctx, t)
	if err != nil {
		switch {
		case repository.IsUniqueViolation(err):
			entry.WithError(err).Warn("Transaction id already exists")
		case repository.IsNotFound(err):
			entry.WithError(err).Error("Insert returned no row")
		default:
			entry.WithError(err).Error("Failed to add transaction")
		}
		return nil, err
	}

	entry.WithFields(logrus.Fields{
		"trx_type": stored.TrxType,
		"amount":   stored.Amount,
	}).Info("Transaction added")
	return stored, nil
}

// Ping checks storage reachability
func (s *Service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		s.log.WithError(err).Warn("Storage health check failed")
		return err
	}
	return nil
}
