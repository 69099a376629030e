package payment

import (
	"context"
	"database/sql"
	"time"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"github.com/pot-code/course-platform/internal/infrastructure/uuid"
)

type PaymentSQL struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ PaymentRepository = &PaymentSQL{}

func NewPaymentRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *PaymentSQL {
	return &PaymentSQL{Conn, UUIDGenerator}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (repo *PaymentSQL) SavePayment(ctx context.Context, payment *Payment) error {
	id, err := repo.UUIDGenerator.Generate()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	payment.ID = id
	payment.CreatedAt = now
	payment.UpdatedAt = now

	_, err = repo.Conn.ExecContext(ctx, `INSERT INTO "payments"(
	"id", "payment_key", "order_id", "amount", "status", "message", "user_id", "course_id", "created_at", "updated_at")
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		payment.ID, payment.PaymentKey, payment.OrderID, payment.Amount, payment.Status, payment.Message,
		nullable(payment.UserID), nullable(payment.CourseID), payment.CreatedAt, payment.UpdatedAt)
	return domain.NewStoreError("SavePayment", err)
}

func (repo *PaymentSQL) ListPayments(ctx context.Context, orderID string) ([]*Payment, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT "id", "payment_key", "order_id", "amount", "status",
	COALESCE("message", ''), COALESCE("user_id", ''), COALESCE("course_id", ''), "created_at", "updated_at"
	FROM "payments" WHERE "order_id" = $1 ORDER BY "created_at" ASC`, orderID)
	if err != nil {
		return nil, domain.NewStoreError("ListPayments", err)
	}
	defer rows.Close()

	result := []*Payment{}
	for rows.Next() {
		item := new(Payment)
		if err := rows.Scan(&item.ID, &item.PaymentKey, &item.OrderID, &item.Amount, &item.Status,
			&item.Message, &item.UserID, &item.CourseID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, domain.NewStoreError("ListPayments", err)
		}
		result = append(result, item)
	}
	return result, domain.NewStoreError("ListPayments", rows.Err())
}
