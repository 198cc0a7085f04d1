package repository

import (
	"context"
	"errors"
	"time"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
	"github.com/PrecisionBh/melo-escrow-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultWalletRepository implements domain.LedgerService. Every balance
// mutation is a single relative-increment UPDATE; application code never
// reads a balance to write it back.
type DefaultWalletRepository struct {
	DB *gorm.DB
}

func NewDefaultWalletRepository(db *gorm.DB) *DefaultWalletRepository {
	return &DefaultWalletRepository{DB: db}
}

func (r *DefaultWalletRepository) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	var wallet models.WalletModel
	if err := r.DB.WithContext(ctx).First(&wallet, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &domain.Wallet{
		UserID:           wallet.UserID,
		PendingBalance:   wallet.PendingBalance,
		AvailableBalance: wallet.AvailableBalance,
		UpdatedAt:        wallet.UpdatedAt,
	}, nil
}

func (r *DefaultWalletRepository) AdjustPending(ctx context.Context, userID string, delta int64) (int64, error) {
	return r.adjust(ctx, r.DB, userID, "pending_balance", delta)
}

func (r *DefaultWalletRepository) AdjustAvailable(ctx context.Context, userID string, delta int64) (int64, error) {
	return r.adjust(ctx, r.DB, userID, "available_balance", delta)
}

func (r *DefaultWalletRepository) adjust(ctx context.Context, tx *gorm.DB, userID, column string, delta int64) (int64, error) {
	if delta >= 0 {
		if err := r.ensureWallet(ctx, tx, userID); err != nil {
			return 0, err
		}
	}

	// The balance guard lives in the WHERE clause: a debit below zero matches
	// no row and fails instead of going negative.
	res := tx.WithContext(ctx).
		Model(&models.WalletModel{}).
		Where("user_id = ?", userID).
		Where(column+" + ? >= 0", delta).
		Update(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, domain.ErrInsufficientFunds
	}

	var wallet models.WalletModel
	if err := tx.WithContext(ctx).Select(column).First(&wallet, "user_id = ?", userID).Error; err != nil {
		return 0, err
	}
	if column == "pending_balance" {
		return wallet.PendingBalance, nil
	}
	return wallet.AvailableBalance, nil
}

func (r *DefaultWalletRepository) ensureWallet(ctx context.Context, tx *gorm.DB, userID string) error {
	return tx.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.WalletModel{
			UserID:    userID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}).Error
}

// ReleasePending moves amount from pending to available in one statement.
// The pending guard keeps a double release from overdrawing.
func (r *DefaultWalletRepository) ReleasePending(ctx context.Context, userID string, amount int64) error {
	res := r.DB.WithContext(ctx).
		Model(&models.WalletModel{}).
		Where("user_id = ? AND pending_balance >= ?", userID, amount).
		Updates(map[string]interface{}{
			"pending_balance":   gorm.Expr("pending_balance - ?", amount),
			"available_balance": gorm.Expr("available_balance + ?", amount),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

// CreditPendingForOrder is the idempotent unit behind webhook crediting. The
// wallet_credited flip and the pending increment commit together: a replay
// that finds the flag already set does nothing, and a crash between charge
// and credit is resumed safely on redelivery.
func (r *DefaultWalletRepository) CreditPendingForOrder(ctx context.Context, orderID, sellerID string, amount int64) (bool, error) {
	credited := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.OrderModel{}).
			Where("id = ? AND wallet_credited = ?", orderID, false).
			Update("wallet_credited", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already credited, idempotent replay.
			return nil
		}
		if _, err := r.adjust(ctx, tx, sellerID, "pending_balance", amount); err != nil {
			return err
		}
		credited = true
		return nil
	})
	return credited, err
}

// FailPayoutAndRecredit uses the payout row's PENDING status as the
// idempotency marker: the FAILED flip and the available-balance re-credit
// commit together, so a crash can never strand the seller's funds between
// the two writes.
func (r *DefaultWalletRepository) FailPayoutAndRecredit(ctx context.Context, payoutID, userID string, amount int64, reason string) (bool, error) {
	failed := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PayoutModel{}).
			Where("id = ? AND status = ?", payoutID, domain.PayoutPending).
			Updates(map[string]interface{}{
				"status":         domain.PayoutFailed,
				"failure_reason": reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already terminal, replayed provider event.
			return nil
		}
		if _, err := r.adjust(ctx, tx, userID, "available_balance", amount); err != nil {
			return err
		}
		failed = true
		return nil
	})
	return failed, err
}

func (r *DefaultWalletRepository) ReversePendingForOrder(ctx context.Context, orderID, sellerID string, amount int64) (bool, error) {
	reversed := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.OrderModel{}).
			Where("id = ? AND wallet_credited = ?", orderID, true).
			Updates(map[string]interface{}{
				"wallet_credited": false,
				"wallet_reversed": true,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if _, err := r.adjust(ctx, tx, sellerID, "pending_balance", -amount); err != nil {
			return err
		}
		reversed = true
		return nil
	})
	return reversed, err
}
