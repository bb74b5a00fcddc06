package services

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shutterhub/backend/internal/logger"
	"github.com/shutterhub/backend/internal/models"
)

type MongoOrderService struct {
	client       *mongo.Client
	db           *mongo.Database
	ordersColl   *mongo.Collection
	usersColl    *mongo.Collection
	productsColl *mongo.Collection
}

type mongoOrderLine struct {
	ProductID string `bson:"product_id"`
	Quantity  int    `bson:"quantity"`
}

type mongoOrderDoc struct {
	ID          string           `bson:"_id"`
	UserID      string           `bson:"user_id"`
	Lines       []mongoOrderLine `bson:"products"`
	RentalStart time.Time        `bson:"rental_start"`
	RentalEnd   time.Time        `bson:"rental_end"`
	TotalPrice  float64          `bson:"total_price"`
	Status      string           `bson:"status"`
	CreatedAt   time.Time        `bson:"created_at"`
}

func NewMongoOrderService(ctx context.Context, mongoURI, dbName string) (*MongoOrderService, error) {
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
	orders := db.Collection("orders")

	// Best-effort indexes.
	_, _ = orders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})

	logger.WithService("orders").Info("MongoDB connected", "db", dbName)
	return &MongoOrderService{
		client:       client,
		db:           db,
		ordersColl:   orders,
		usersColl:    db.Collection("users"),
		productsColl: db.Collection("products"),
	}, nil
}

func (s *MongoOrderService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func orderDocToModel(d mongoOrderDoc) *models.Order {
	lines := make([]models.OrderLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, models.OrderLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return &models.Order{
		ID:          d.ID,
		UserID:      d.UserID,
		Lines:       lines,
		RentalStart: d.RentalStart,
		RentalEnd:   d.RentalEnd,
		TotalPrice:  d.TotalPrice,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
	}
}

func (s *MongoOrderService) Create(userID string, req *models.CreateOrderRequest, totalPrice float64) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lines := make([]mongoOrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, mongoOrderLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	doc := mongoOrderDoc{
		ID:          uuid.New().String(),
		UserID:      userID,
		Lines:       lines,
		RentalStart: req.RentalStart,
		RentalEnd:   req.RentalEnd,
		TotalPrice:  totalPrice,
		Status:      models.OrderStatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.ordersColl.InsertOne(ctx, doc); err != nil {
		return nil, err
	}

	return orderDocToModel(doc), nil
}

func (s *MongoOrderService) GetByID(id string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc mongoOrderDoc
	if err := s.ordersColl.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return orderDocToModel(doc), nil
}

func (s *MongoOrderService) ListByUser(userID string) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cur, err := s.ordersColl.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.Order, 0)
	for cur.Next(ctx) {
		var doc mongoOrderDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, *orderDocToModel(doc))
	}
	return out, cur.Err()
}

func (s *MongoOrderService) ListAllDetailed() ([]models.OrderDetail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cur, err := s.ordersColl.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	docs := make([]mongoOrderDoc, 0)
	for cur.Next(ctx) {
		var doc mongoOrderDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(docs))
	productIDs := make([]string, 0)
	for _, d := range docs {
		userIDs = append(userIDs, d.UserID)
		for _, l := range d.Lines {
			productIDs = append(productIDs, l.ProductID)
		}
	}

	users, err := s.fetchUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	products, err := s.fetchProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.OrderDetail, 0, len(docs))
	for _, d := range docs {
		detail := models.OrderDetail{Order: *orderDocToModel(d)}
		if u, ok := users[d.UserID]; ok {
			detail.Customer = u
		}
		for _, l := range d.Lines {
			if p, ok := products[l.ProductID]; ok {
				detail.Products = append(detail.Products, *p)
			}
		}
		out = append(out, detail)
	}
	return out, nil
}

func (s *MongoOrderService) UpdateStatus(orderID, status string) (*models.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res := s.ordersColl.FindOneAndUpdate(
		ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated mongoOrderDoc
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return orderDocToModel(updated), nil
}

func (s *MongoOrderService) fetchUsers(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User)
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.usersColl.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc mongoUserDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out[doc.ID] = userDocToModel(doc)
	}
	return out, cur.Err()
}

func (s *MongoOrderService) fetchProducts(ctx context.Context, ids []string) (map[string]*models.Product, error) {
	out := make(map[string]*models.Product)
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := s.productsColl.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc mongoProductDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out[doc.ID] = productDocToModel(doc)
	}
	return out, cur.Err()
}
