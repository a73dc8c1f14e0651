package report

import (
	"context"
	"database/sql"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	DailyRevenue(ctx context.Context, days int) ([]DailyRevenue, error)
	CategorySales(ctx context.Context) ([]CategorySales, error)
}

type repository struct {
	db       *sql.DB
	products *mongo.Collection
}

func NewRepository(db *sql.DB, mongoDB *mongo.Database) Repository {
	return &repository{
		db:       db,
		products: mongoDB.Collection("products"),
	}
}

func (r *repository) DailyRevenue(ctx context.Context, days int) ([]DailyRevenue, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT TO_CHAR(DATE(created_at), 'YYYY-MM-DD') AS day,
		       COUNT(*) AS orders,
		       SUM(total) AS revenue
		FROM orders
		WHERE created_at >= NOW() - make_interval(days => $1)
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at) DESC
	`, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily revenue: %w", err)
	}
	defer rows.Close()

	var results []DailyRevenue
	for rows.Next() {
		var row DailyRevenue
		if err := rows.Scan(&row.Date, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan daily revenue row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily revenue rows: %w", err)
	}

	return results, nil
}

func (r *repository) CategorySales(ctx context.Context) ([]CategorySales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := r.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category sales: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Category string `bson:"_id"`
		Count    int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode category sales: %w", err)
	}

	results := make([]CategorySales, 0, len(docs))
	for _, d := range docs {
		results = append(results, CategorySales{Category: d.Category, Count: d.Count})
	}

	return results, nil
}
