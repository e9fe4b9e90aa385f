package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection        *mongo.Collection
	AddressCollection     *mongo.Collection
	ProductCollection     *mongo.Collection
	StockCollection       *mongo.Collection
	BrandCollection       *mongo.Collection
	CategoryCollection    *mongo.Collection
	OfferCollection       *mongo.Collection
	CouponCollection      *mongo.Collection
	OrderCollection       *mongo.Collection
	TransactionCollection *mongo.Collection
	ImageCollection       *mongo.Collection
	IdempotencyCollection *mongo.Collection
	Client                *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "vastradb"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database(dbName).Collection("users")
	AddressCollection = Client.Database(dbName).Collection("addresses")
	ProductCollection = Client.Database(dbName).Collection("products")
	StockCollection = Client.Database(dbName).Collection("stocks")
	BrandCollection = Client.Database(dbName).Collection("brands")
	CategoryCollection = Client.Database(dbName).Collection("categories")
	OfferCollection = Client.Database(dbName).Collection("offers")
	CouponCollection = Client.Database(dbName).Collection("coupons")
	OrderCollection = Client.Database(dbName).Collection("orders")
	TransactionCollection = Client.Database(dbName).Collection("transactions")
	ImageCollection = Client.Database(dbName).Collection("images")
	IdempotencyCollection = Client.Database(dbName).Collection("idempotency")
}
