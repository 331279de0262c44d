package closing

import (
	"context"
	"time"

	"github.com/aurumpos/backend/internal/repo"
	"github.com/aurumpos/backend/pkg/db/models"
	"github.com/aurumpos/backend/pkg/enums"
	"gorm.io/gorm"
)

// MethodTotal is one row of the per-method payment breakdown.
type MethodTotal struct {
	Method enums.PaymentMethod
	Amount int64
}

// Repository aggregates committed sales and manages till sessions.
type Repository struct {
	repo.Base
}

// NewRepository constructs a closing repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// CountAndTotal sums sale headers committed within [from, to).
func (r *Repository) CountAndTotal(ctx context.Context, from, to time.Time) (int64, int64, error) {
	var row struct {
		Count int64
		Total int64
	}
	err := r.DB(ctx).
		Raw("SELECT COUNT(*) AS count, COALESCE(SUM(total), 0) AS total FROM sales WHERE timestamp >= ? AND timestamp < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Count, row.Total, nil
}

// PaymentBreakdown groups payment amounts by method for sales committed
// within [from, to), largest first. Methods without payments are omitted.
func (r *Repository) PaymentBreakdown(ctx context.Context, from, to time.Time) ([]MethodTotal, error) {
	var rows []MethodTotal
	err := r.DB(ctx).
		Raw(`SELECT p.method AS method, SUM(p.amount) AS amount
FROM payments p
JOIN sales s ON s.id = p.sale_id
WHERE s.timestamp >= ? AND s.timestamp < ?
GROUP BY p.method
ORDER BY SUM(p.amount) DESC`, from, to).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateSession opens a new till session.
func (r *Repository) CreateSession(ctx context.Context, session *models.TillSession) error {
	return r.DB(ctx).Create(session).Error
}

// FindSessionByID loads a till session.
func (r *Repository) FindSessionByID(ctx context.Context, id int64) (*models.TillSession, error) {
	var session models.TillSession
	if err := r.DB(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindOpenSession returns the most recently opened session without a
// close timestamp, or gorm.ErrRecordNotFound.
func (r *Repository) FindOpenSession(ctx context.Context) (*models.TillSession, error) {
	var session models.TillSession
	err := r.DB(ctx).
		Where("closed_at IS NULL").
		Order("opened_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CloseSession stamps the close fields on an open session.
func (r *Repository) CloseSession(ctx context.Context, id int64, closedBy int64, countedAmount int64, at time.Time) error {
	return r.DB(ctx).
		Model(&models.TillSession{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"closed_at":      at,
			"closed_by":      closedBy,
			"counted_amount": countedAmount,
		}).Error
}
