package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ratefeed/converter-api/internal/apperrors"
	"github.com/ratefeed/converter-api/internal/core/domain"
	portsrepo "github.com/ratefeed/converter-api/internal/core/ports/repositories"
)

// PgxCurrencyRegistry serves the currency table from PostgreSQL. It lets
// operators extend or disable supported symbols without a redeploy.
type PgxCurrencyRegistry struct {
	pool *pgxpool.Pool
}

// NewPgxCurrencyRegistry creates a new registry backed by the given pool.
func NewPgxCurrencyRegistry(pool *pgxpool.Pool) *PgxCurrencyRegistry {
	return &PgxCurrencyRegistry{pool: pool}
}

// FindCurrencyBySymbol retrieves a currency by its 3-letter symbol.
func (r *PgxCurrencyRegistry) FindCurrencyBySymbol(ctx context.Context, symbol string) (*domain.Currency, error) {
	query := `
		SELECT symbol, numeric_code, name
		FROM currencies
		WHERE symbol = $1 AND enabled;
	`
	var currency domain.Currency
	err := r.pool.QueryRow(ctx, query, strings.ToUpper(symbol)).Scan(
		&currency.Symbol,
		&currency.NumericCode,
		&currency.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by symbol %s: %w", symbol, err)
	}
	return &currency, nil
}

// ListCurrencies retrieves all enabled currencies ordered by symbol.
func (r *PgxCurrencyRegistry) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `
		SELECT symbol, numeric_code, name
		FROM currencies
		WHERE enabled
		ORDER BY symbol;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		var currency domain.Currency
		if err := rows.Scan(&currency.Symbol, &currency.NumericCode, &currency.Name); err != nil {
			return nil, fmt.Errorf("failed to scan currency row: %w", err)
		}
		currencies = append(currencies, currency)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate currency rows: %w", err)
	}
	return currencies, nil
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRegistry = (*PgxCurrencyRegistry)(nil)
