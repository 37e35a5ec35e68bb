package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/vatmoss/internal/db"
	"github.com/nikolayk812/vatmoss/internal/domain"
	"github.com/nikolayk812/vatmoss/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const foreignKeyViolation = "23503"

type orderRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		dbtx: tx, // use provided transaction instead
	}
}

type loadedOrders struct {
	orders  []domain.Order
	skipped []domain.SkippedOrder
}

func (r *orderRepository) FetchOrders(ctx context.Context, filter domain.ReportFilter) ([]domain.Order, []domain.SkippedOrder, error) {
	if err := filter.Validate(); err != nil {
		return nil, nil, fmt.Errorf("filter.Validate: %w", err)
	}

	loaded, err := withTx(ctx, r.dbtx, readSnapshot, func(q *db.Queries) (loadedOrders, error) {
		rows, err := q.FetchOrders(ctx, mapReportFilterToDB(filter))
		if err != nil {
			return loadedOrders{}, fmt.Errorf("q.FetchOrders: %w", err)
		}

		return loadOrders(ctx, q, rows)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("withTx: %w", err)
	}

	return loaded.orders, loaded.skipped, nil
}

// GetOrdersByIDs returns orders in the order of the first occurrence of each id.
// Unknown ids are reported as skipped.
func (r *orderRepository) GetOrdersByIDs(ctx context.Context, orderIDs []int64) ([]domain.Order, []domain.SkippedOrder, error) {
	if err := domain.ValidateOrderIDs(orderIDs); err != nil {
		return nil, nil, err
	}

	ids := lo.Uniq(orderIDs)

	loaded, err := withTx(ctx, r.dbtx, readSnapshot, func(q *db.Queries) (loadedOrders, error) {
		dbRows, err := q.GetOrdersByIDs(ctx, ids)
		if err != nil {
			return loadedOrders{}, fmt.Errorf("q.GetOrdersByIDs: %w", err)
		}

		byID := lo.SliceToMap(dbRows, func(row db.GetOrdersByIDsRow) (int64, db.FetchOrdersRow) {
			return row.ID, db.FetchOrdersRow(row)
		})

		var (
			rows    []db.FetchOrdersRow
			missing []domain.SkippedOrder
		)
		for _, id := range ids {
			row, ok := byID[id]
			if !ok {
				missing = append(missing, domain.SkippedOrder{OrderID: id, Reason: domain.ErrNotFound.Error()})
				continue
			}
			rows = append(rows, row)
		}

		loaded, err := loadOrders(ctx, q, rows)
		if err != nil {
			return loadedOrders{}, err
		}
		loaded.skipped = append(loaded.skipped, missing...)

		return loaded, nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("withTx: %w", err)
	}

	return loaded.orders, loaded.skipped, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (int64, error) {
	if len(order.Items) == 0 {
		return 0, errors.New("no items in order")
	}

	status := order.Status
	if status == "" {
		status = domain.OrderStatusPending
	}

	orderID, err := withTx(ctx, r.dbtx, pgx.TxOptions{}, func(q *db.Queries) (int64, error) {
		orderID, err := q.InsertOrder(ctx, db.InsertOrderParams{
			PurchaseKey:    order.PurchaseKey,
			Status:         string(status),
			BuyerName:      order.BuyerName,
			BuyerCountry:   order.BuyerCountry,
			BuyerVatNumber: order.BuyerVATNumber,
			Currency:       order.Currency.String(),
			VatRate:        toNullDecimal(order.VatRate),
			CompletedAt:    order.CompletedAt,
		})
		if err != nil {
			return 0, fmt.Errorf("q.InsertOrder: %w", err)
		}

		for i, item := range order.Items {
			itemPosition := int32(i)

			if err := q.InsertOrderItem(ctx, db.InsertOrderItemParams{
				OrderID:   orderID,
				Position:  itemPosition,
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Tax:       item.Tax,
				VatRate:   toNullDecimal(item.VatRate),
			}); err != nil {
				return 0, fmt.Errorf("q.InsertOrderItem: %w", err)
			}

			for j, fee := range item.Fees {
				if err := q.InsertOrderItemFee(ctx, db.InsertOrderItemFeeParams{
					OrderID:      orderID,
					ItemPosition: itemPosition,
					Position:     int32(j),
					Amount:       fee.Amount,
					Label:        fee.Label,
				}); err != nil {
					return 0, fmt.Errorf("q.InsertOrderItemFee: %w", err)
				}
			}
		}

		return orderID, nil
	})
	if err != nil {
		return 0, fmt.Errorf("withTx: %w", err)
	}

	return orderID, nil
}

func (r *orderRepository) SetSubmissionMarker(ctx context.Context, orderID int64, marker domain.SubmissionMarker) error {
	if orderID <= 0 {
		return fmt.Errorf("orderID is empty")
	}

	if marker.SubmissionID == "" {
		return fmt.Errorf("submissionID is empty")
	}

	_, err := r.q.UpsertSubmissionMarker(ctx, db.UpsertSubmissionMarkerParams{
		OrderID:       orderID,
		SubmissionID:  marker.SubmissionID,
		CorrelationID: marker.CorrelationID,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("q.UpsertSubmissionMarker: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("q.UpsertSubmissionMarker: %w", err)
	}

	return nil
}

// ClearSubmissionMarker is a no-op for orders without a marker.
func (r *orderRepository) ClearSubmissionMarker(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return fmt.Errorf("orderID is empty")
	}

	if _, err := r.q.DeleteSubmissionMarker(ctx, orderID); err != nil {
		return fmt.Errorf("q.DeleteSubmissionMarker: %w", err)
	}

	return nil
}

func mapReportFilterToDB(filter domain.ReportFilter) db.FetchOrdersParams {
	statuses := lo.Map(domain.CompletedStatuses(), func(s domain.OrderStatus, _ int) string {
		return string(s)
	})

	return db.FetchOrdersParams{
		Statuses:        statuses,
		CompletedAfter:  filter.Start,
		CompletedBefore: filter.End,
		MarkerFilter:    filter.MarkerPredicate().String(),
	}
}

type itemKey struct {
	orderID  int64
	position int32
}

// loadOrders attaches items and fees to the order rows, preserving row order.
// Rows that do not map to a valid order are skipped.
func loadOrders(ctx context.Context, q *db.Queries, rows []db.FetchOrdersRow) (loadedOrders, error) {
	var result loadedOrders

	if len(rows) == 0 {
		return result, nil
	}

	orderIDs := lo.Map(rows, func(row db.FetchOrdersRow, _ int) int64 { return row.ID })

	dbItems, err := q.GetOrderItems(ctx, orderIDs)
	if err != nil {
		return result, fmt.Errorf("q.GetOrderItems: %w", err)
	}

	dbFees, err := q.GetOrderItemFees(ctx, orderIDs)
	if err != nil {
		return result, fmt.Errorf("q.GetOrderItemFees: %w", err)
	}

	itemsByOrder := lo.GroupBy(dbItems, func(item db.OrderItem) int64 { return item.OrderID })
	feesByItem := lo.GroupBy(dbFees, func(fee db.OrderItemFee) itemKey {
		return itemKey{orderID: fee.OrderID, position: fee.ItemPosition}
	})

	for _, row := range rows {
		order, err := mapFetchOrdersRowToDomain(row, itemsByOrder[row.ID], feesByItem)
		if err == nil {
			err = order.Validate()
		}
		if err != nil {
			result.skipped = append(result.skipped, domain.SkippedOrder{OrderID: row.ID, Reason: err.Error()})
			continue
		}

		result.orders = append(result.orders, order)
	}

	return result, nil
}

func mapFetchOrdersRowToDomain(row db.FetchOrdersRow, dbItems []db.OrderItem, feesByItem map[itemKey][]db.OrderItemFee) (domain.Order, error) {
	var o domain.Order

	parsedCurrency, err := currency.ParseISO(row.Currency)
	if err != nil {
		return o, fmt.Errorf("%w: currency[%s] is not valid: %w", domain.ErrMalformedOrder, row.Currency, err)
	}

	status, err := domain.ToOrderStatus(row.Status)
	if err != nil {
		return o, fmt.Errorf("%w: domain.ToOrderStatus[%s]: %w", domain.ErrMalformedOrder, row.Status, err)
	}

	items := lo.Map(dbItems, func(item db.OrderItem, _ int) domain.LineItem {
		fees := feesByItem[itemKey{orderID: item.OrderID, position: item.Position}]
		return mapOrderItemToDomain(item, fees)
	})

	var submission *domain.SubmissionMarker
	if row.SubmissionID != nil {
		submission = &domain.SubmissionMarker{
			SubmissionID:  *row.SubmissionID,
			CorrelationID: lo.FromPtr(row.CorrelationID),
			MarkedAt:      lo.FromPtr(row.MarkedAt),
		}
	}

	return domain.Order{
		ID:             row.ID,
		PurchaseKey:    row.PurchaseKey,
		Status:         status,
		BuyerName:      row.BuyerName,
		BuyerCountry:   row.BuyerCountry,
		BuyerVATNumber: row.BuyerVatNumber,
		Currency:       parsedCurrency,
		VatRate:        fromNullDecimal(row.VatRate),
		Items:          items,
		Submission:     submission,
		CompletedAt:    row.CompletedAt,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}, nil
}

func mapOrderItemToDomain(item db.OrderItem, fees []db.OrderItemFee) domain.LineItem {
	return domain.LineItem{
		ProductID: item.ProductID,
		Name:      item.Name,
		Price:     item.Price,
		Tax:       item.Tax,
		VatRate:   fromNullDecimal(item.VatRate),
		Fees: lo.Map(fees, func(fee db.OrderItemFee, _ int) domain.FeeAdjustment {
			return domain.FeeAdjustment{Amount: fee.Amount, Label: fee.Label}
		}),
	}
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return lo.ToPtr(d.Decimal)
}
