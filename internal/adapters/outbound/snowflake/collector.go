// Package snowflake implements domain.MetadataCollector over the Snowflake
// INFORMATION_SCHEMA catalog views.
package snowflake

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sf "github.com/snowflakedb/gosnowflake"

	"github.com/abdidvp/iceready/internal/domain"
)

const connectTimeout = 10 * time.Second

// Collector reads catalog metadata through a live Snowflake session. Reading
// the catalog requires only read privileges on INFORMATION_SCHEMA; a
// privilege failure surfaces as a query error, not a core concern.
type Collector struct {
	db *sql.DB
}

// Connect opens and pings a Snowflake session from connection config.
func Connect(cfg domain.ConnectionConfig) (*Collector, error) {
	dsn, err := sf.DSN(&sf.Config{
		Account:   cfg.Account,
		User:      cfg.User,
		Password:  cfg.Password,
		Role:      cfg.Role,
		Warehouse: cfg.Warehouse,
		Database:  cfg.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("building DSN: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("snowflake ping failed: %w", err)
	}

	return &Collector{db: db}, nil
}

func (c *Collector) Close() error { return c.db.Close() }

// DB exposes the underlying session for collaborators that run SQL through
// the same connection (the Cortex narrator).
func (c *Collector) DB() *sql.DB { return c.db }

// Databases lists database names visible to the session.
func (c *Collector) Databases(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, fmt.Errorf("listing databases: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	nameIdx := -1
	for i, col := range cols {
		if col == "name" {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("SHOW DATABASES returned no name column")
	}

	var names []string
	values := make([]any, len(cols))
	for i := range values {
		values[i] = new(sql.RawBytes)
	}
	for rows.Next() {
		if err := rows.Scan(values...); err != nil {
			return nil, err
		}
		names = append(names, string(*values[nameIdx].(*sql.RawBytes)))
	}
	return names, rows.Err()
}

// Tables returns one descriptor per base or temporary table in the database,
// optionally narrowed to a schema, in stable catalog order. Column order
// follows ORDINAL_POSITION.
func (c *Collector) Tables(ctx context.Context, database, schema string) ([]domain.TableDescriptor, error) {
	db, err := quoteIdent(database)
	if err != nil {
		return nil, err
	}

	tables, order, err := c.fetchTables(ctx, db, schema)
	if err != nil {
		return nil, err
	}
	if err := c.fetchColumns(ctx, db, schema, tables); err != nil {
		return nil, err
	}

	result := make([]domain.TableDescriptor, 0, len(order))
	for _, key := range order {
		result = append(result, *tables[key])
	}
	return result, nil
}

func (c *Collector) fetchTables(ctx context.Context, db, schema string) (map[string]*domain.TableDescriptor, []string, error) {
	query := fmt.Sprintf(`
		SELECT TABLE_SCHEMA, TABLE_NAME, TABLE_TYPE, IS_TRANSIENT,
		       IFNULL(CLUSTERING_KEY, ''), IFNULL(RETENTION_TIME, 0)
		FROM %s.INFORMATION_SCHEMA.TABLES
		WHERE TABLE_TYPE IN ('BASE TABLE', 'TEMPORARY TABLE')`, db)
	args := []any{}
	if schema != "" {
		query += " AND TABLE_SCHEMA = ?"
		args = append(args, schema)
	}
	query += " ORDER BY TABLE_SCHEMA, TABLE_NAME"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching tables: %w", err)
	}
	defer rows.Close()

	tables := map[string]*domain.TableDescriptor{}
	var order []string
	for rows.Next() {
		var tableSchema, tableName, tableType, isTransient, clusteringKey string
		var retention int
		if err := rows.Scan(&tableSchema, &tableName, &tableType, &isTransient, &clusteringKey, &retention); err != nil {
			return nil, nil, err
		}
		t := &domain.TableDescriptor{
			Schema:         tableSchema,
			Name:           tableName,
			Kind:           tableKind(tableType, isTransient),
			ClusteringKeys: ParseClusteringKey(clusteringKey),
			RetentionDays:  retention,
		}
		key := tableSchema + "." + tableName
		tables[key] = t
		order = append(order, key)
	}
	return tables, order, rows.Err()
}

func (c *Collector) fetchColumns(ctx context.Context, db, schema string, tables map[string]*domain.TableDescriptor) error {
	query := fmt.Sprintf(`
		SELECT TABLE_SCHEMA, TABLE_NAME, COLUMN_NAME, DATA_TYPE,
		       IFNULL(COLLATION_NAME, ''), DATETIME_PRECISION, IS_NULLABLE
		FROM %s.INFORMATION_SCHEMA.COLUMNS`, db)
	args := []any{}
	if schema != "" {
		query += " WHERE TABLE_SCHEMA = ?"
		args = append(args, schema)
	}
	query += " ORDER BY TABLE_SCHEMA, TABLE_NAME, ORDINAL_POSITION"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("fetching columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tableSchema, tableName, columnName, dataType, collation, nullable string
		var precision sql.NullInt64
		if err := rows.Scan(&tableSchema, &tableName, &columnName, &dataType, &collation, &precision, &nullable); err != nil {
			return err
		}
		t, ok := tables[tableSchema+"."+tableName]
		if !ok {
			continue // view or external table column
		}
		col := domain.ColumnDescriptor{
			Name:      columnName,
			DataType:  strings.ToUpper(dataType),
			Collation: collation,
			Nullable:  nullable == "YES",
		}
		if precision.Valid {
			p := int(precision.Int64)
			col.DatetimePrecision = &p
		}
		t.Columns = append(t.Columns, col)
	}
	return rows.Err()
}

func tableKind(tableType, isTransient string) string {
	switch {
	case tableType == "TEMPORARY TABLE":
		return domain.KindTemporary
	case isTransient == "YES":
		return domain.KindTransient
	case isTransient == "NO":
		return domain.KindPermanent
	default:
		// Unknown catalog value; let descriptor validation fail this table.
		return isTransient
	}
}

// ParseClusteringKey extracts column names from a Snowflake clustering key
// expression such as "LINEAR(region, created_at)". Empty input means the
// table has no clustering key.
func ParseClusteringKey(expr string) []string {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	if open := strings.Index(expr, "("); open >= 0 && strings.HasSuffix(expr, ")") {
		expr = expr[open+1 : len(expr)-1]
	}
	var keys []string
	for _, part := range strings.Split(expr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			keys = append(keys, part)
		}
	}
	return keys
}

// quoteIdent quotes a database identifier for interpolation into catalog
// queries; bind parameters cannot stand in for identifiers.
func quoteIdent(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("database name is required")
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`, nil
}
