package services

import (
	"context"
	"crypto/tls"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shutterhub/backend/internal/logger"
	"github.com/shutterhub/backend/internal/models"
)

type MongoProductService struct {
	client       *mongo.Client
	db           *mongo.Database
	productsColl *mongo.Collection
}

type mongoProductDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Price       float64   `bson:"price"`
	Category    string    `bson:"category"`
	SubCategory string    `bson:"sub_category,omitempty"`
	Brand       string    `bson:"brand"`
	Model       string    `bson:"model,omitempty"`
	Tags        []string  `bson:"tags,omitempty"`
	Location    string    `bson:"location,omitempty"`
	ImageURL    string    `bson:"image_url"`
	Stock       int       `bson:"stock"`
	IsAvailable *bool     `bson:"is_available"`
	CreatedAt   time.Time `bson:"created_at"`
}

func NewMongoProductService(ctx context.Context, mongoURI, dbName string) (*MongoProductService, error) {
	// Atlas occasionally fails TLS negotiation in some environments unless we force TLS 1.2.
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	products := db.Collection("products")

	// Best-effort indexes.
	_, _ = products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
		{Keys: bson.D{{Key: "is_available", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}}},
	})

	logger.WithService("products").Info("MongoDB connected", "db", dbName)
	return &MongoProductService{
		client:       client,
		db:           db,
		productsColl: products,
	}, nil
}

func (s *MongoProductService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func productDocToModel(d mongoProductDoc) *models.Product {
	return &models.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		SubCategory: d.SubCategory,
		Brand:       d.Brand,
		Model:       d.Model,
		Tags:        d.Tags,
		Location:    d.Location,
		ImageURL:    d.ImageURL,
		Stock:       d.Stock,
		IsAvailable: d.IsAvailable,
		CreatedAt:   d.CreatedAt,
	}
}

func (s *MongoProductService) Create(req *models.CreateProductRequest) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	available := true
	doc := mongoProductDoc{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Brand:       req.Brand,
		Model:       req.Model,
		Tags:        req.Tags,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		IsAvailable: &available,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.productsColl.InsertOne(ctx, doc); err != nil {
		return nil, err
	}

	return productDocToModel(doc), nil
}

func (s *MongoProductService) GetByID(id string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc mongoProductDoc
	if err := s.productsColl.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return productDocToModel(doc), nil
}

func (s *MongoProductService) Update(id string, req *models.UpdateProductRequest) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	set := bson.M{
		"name":         req.Name,
		"description":  req.Description,
		"price":        req.Price,
		"category":     req.Category,
		"sub_category": req.SubCategory,
		"brand":        req.Brand,
		"model":        req.Model,
		"tags":         req.Tags,
		"location":     req.Location,
		"image_url":    req.ImageURL,
		"stock":        req.Stock,
	}
	if req.IsAvailable != nil {
		set["is_available"] = *req.IsAvailable
	}

	res := s.productsColl.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated mongoProductDoc
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return productDocToModel(updated), nil
}

func (s *MongoProductService) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := s.productsColl.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *MongoProductService) ListAll() ([]models.Product, error) {
	return s.find(bson.M{})
}

func (s *MongoProductService) ListAvailable() ([]models.Product, error) {
	// Absent flag counts as available.
	return s.find(bson.M{"is_available": bson.M{"$ne": false}})
}

func (s *MongoProductService) Categories() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	raw, err := s.productsColl.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok && str != "" {
			categories = append(categories, str)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *MongoProductService) find(filter bson.M) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cur, err := s.productsColl.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Product, 0)
	for cur.Next(ctx) {
		var doc mongoProductDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, *productDocToModel(doc))
	}
	return out, cur.Err()
}
