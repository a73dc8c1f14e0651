package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Reader is the read-only capability the checkout coordinator depends on.
// A miss is a typed outcome (ErrProductNotFound), never a panic.
type Reader interface {
	LookupByID(ctx context.Context, id string) (*Product, error)
}

type Repository interface {
	Reader
	Insert(ctx context.Context, input ProductInput) (*Product, error)
	Update(ctx context.Context, id string, update ProductUpdate) (*Product, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, q ListQuery) ([]*Product, error)
	Count(ctx context.Context, q ListQuery) (int64, error)
}

type productDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	SKU       string             `bson:"sku"`
	Name      string             `bson:"name"`
	Price     float64            `bson:"price"`
	Category  string             `bson:"category"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *productDoc) toProduct() *Product {
	return &Product{
		ID:        d.ID.Hex(),
		SKU:       d.SKU,
		Name:      d.Name,
		Price:     decimal.NewFromFloat(d.Price),
		Category:  d.Category,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewRepository(database *mongo.Database) Repository {
	return &mongoRepository{collection: database.Collection("products")}
}

func (m *mongoRepository) LookupByID(ctx context.Context, id string) (*Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Not a catalog identifier, so no record can exist for it.
		return nil, ErrProductNotFound
	}

	var doc productDoc
	err = m.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	return doc.toProduct(), nil
}

func (m *mongoRepository) Insert(ctx context.Context, input ProductInput) (*Product, error) {
	now := time.Now()
	doc := productDoc{
		SKU:       input.SKU,
		Name:      input.Name,
		Price:     input.Price.InexactFloat64(),
		Category:  input.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	res, err := m.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSKUExists
		}
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toProduct(), nil
}

func (m *mongoRepository) Update(ctx context.Context, id string, update ProductUpdate) (*Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Price != nil {
		set["price"] = update.Price.InexactFloat64()
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDoc
	err = m.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return doc.toProduct(), nil
}

func (m *mongoRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrProductNotFound
	}

	res, err := m.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

func buildFilter(q ListQuery) bson.M {
	filter := bson.M{}
	if q.Name != "" {
		filter["name"] = bson.M{"$regex": q.Name, "$options": "i"}
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	return filter
}

func (m *mongoRepository) Find(ctx context.Context, q ListQuery) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Find"),
	)

	sortDir := -1
	if q.Sort == "price_asc" {
		sortDir = 1
	}

	skip := int64(q.Page-1) * int64(q.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "price", Value: sortDir}}).
		SetSkip(skip).
		SetLimit(int64(q.Limit))

	cursor, err := m.collection.Find(ctx, buildFilter(q), opts)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*Product
	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, doc.toProduct())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return products, nil
}

func (m *mongoRepository) Count(ctx context.Context, q ListQuery) (int64, error) {
	count, err := m.collection.CountDocuments(ctx, buildFilter(q))
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
