package repository

//go:generate mockgen -source=sale.go -destination=mocks/sale.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/vfg2006/salesvision-api/infrastructure/database/postgres"
	"github.com/vfg2006/salesvision-api/internal/domain"
)

const (
	salesTable = "sales"

	// 10 colunas por linha mantém cada INSERT bem abaixo do limite de parâmetros do Postgres
	salesInsertBatchSize = 500
)

type SaleOrderBy string

const (
	OrderByCreatedAt SaleOrderBy = "created_at"
	OrderByDate      SaleOrderBy = "date"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

var ErrInvalidOrdering = errors.New("ordenação inválida")

var saleColumns = []string{
	"id", "date", "product_name", "category", "quantity", "unit_price",
	"total_amount", "region", "salesperson", "uploaded_by", "created_at",
}

type SaleRepository interface {
	InsertSales(ctx context.Context, sales []domain.Sale) error
	ListSales(ctx context.Context, orderBy SaleOrderBy, direction SortDirection) ([]domain.Sale, error)
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

// InsertSales grava o lote inteiro em uma única transação; qualquer falha desfaz tudo
func (r *saleRepository) InsertSales(ctx context.Context, sales []domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(sales); start += salesInsertBatchSize {
			end := min(start+salesInsertBatchSize, len(sales))
			if err := insertSalesBatch(ctx, tx, sales[start:end]); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertSalesBatch(ctx context.Context, q postgres.Queryer, sales []domain.Sale) error {
	queryBuilder := squirrel.
		Insert(salesTable).
		Columns("date", "product_name", "category", "quantity", "unit_price", "total_amount", "region", "salesperson", "uploaded_by").
		PlaceholderFormat(squirrel.Dollar)

	for _, sale := range sales {
		queryBuilder = queryBuilder.Values(
			sale.Date,
			sale.ProductName,
			sale.Category,
			sale.Quantity,
			sale.UnitPrice,
			sale.TotalAmount,
			sale.Region,
			sale.Salesperson,
			sale.UploadedBy,
		)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao inserir vendas: %w", err)
	}

	return nil
}

func (r *saleRepository) ListSales(ctx context.Context, orderBy SaleOrderBy, direction SortDirection) ([]domain.Sale, error) {
	if orderBy != OrderByCreatedAt && orderBy != OrderByDate {
		return nil, fmt.Errorf("%w: coluna %q", ErrInvalidOrdering, orderBy)
	}
	if direction != SortAsc && direction != SortDesc {
		return nil, fmt.Errorf("%w: direção %q", ErrInvalidOrdering, direction)
	}

	query, args, err := squirrel.
		Select(saleColumns...).
		From(salesTable).
		OrderBy(fmt.Sprintf("%s %s", orderBy, direction), fmt.Sprintf("id %s", direction)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0)
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(
			&sale.ID,
			&sale.Date,
			&sale.ProductName,
			&sale.Category,
			&sale.Quantity,
			&sale.UnitPrice,
			&sale.TotalAmount,
			&sale.Region,
			&sale.Salesperson,
			&sale.UploadedBy,
			&sale.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sales, nil
}
